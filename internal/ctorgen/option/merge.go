package option

import (
	"errors"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/sublee/ctorgen/internal/codefmt"
)

// Merge merges options decoded from all directives of a field into a [Set].
// Each option may be specified at most once. Otherwise an error is reported at
// the last occurrence.
func Merge(pkger codefmt.Pkger, opts []*Option) (Set, error) {
	byKey := linkedhashmap.New() // Key -> []*Option
	for _, spec := range specs {
		byKey.Put(spec.Key, []*Option(nil))
	}
	for _, opt := range opts {
		prev, ok := byKey.Get(opt.Key)
		if !ok {
			panic("unknown option key: " + string(opt.Key))
		}
		byKey.Put(opt.Key, append(prev.([]*Option), opt))
	}

	var set Set
	var errs error

	it := byKey.Iterator()
	for it.Next() {
		occurrences := it.Value().([]*Option)
		switch len(occurrences) {
		case 0:
			continue
		case 1:
			set.set(occurrences[0])
			continue
		}

		first, last := occurrences[0], occurrences[len(occurrences)-1]
		err := codefmt.Errorf(pkger, last, "duplicate option `%s`", string(last.Key))
		err = codefmt.WithHelp(err, "remove the duplicate option")
		err = codefmt.WithNote(err, "first specified at %b", first)
		errs = errors.Join(errs, err)
	}
	if errs != nil {
		return Set{}, errs
	}
	return set, nil
}
