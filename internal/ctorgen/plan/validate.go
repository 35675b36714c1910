package plan

import (
	"errors"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/sublee/ctorgen/internal/codefmt"
)

// validate checks the fields of a struct together. Argument names must be
// unique and must not shadow identifiers used by the constructor body.
func (pl *Planner) validate(s *Struct) error {
	var errs error

	args := linkedhashmap.New() // string -> *Field
	for _, f := range s.Params() {
		if v, ok := args.Get(f.Arg); ok {
			prev := v.(*Field)
			err := codefmt.Errorf(pl, codefmt.Pos(f.ArgPos()), "duplicate argument name `%s`", f.Arg)
			err = codefmt.WithHelp(err, `rename one of them with //ctor:name="..."`)
			err = codefmt.WithNote(err, "first used by %o at %b", prev.Member, prev.ArgPos())
			errs = errors.Join(errs, err)
			continue
		}
		args.Put(f.Arg, f)
	}

	refs := s.refs()
	it := args.Iterator()
	for it.Next() {
		name := it.Key().(string)
		if !refs.Contains(name) {
			continue
		}
		f := it.Value().(*Field)
		err := codefmt.Errorf(pl, codefmt.Pos(f.ArgPos()), "argument name `%s` shadows `%s` used by the constructor", name, name)
		errs = errors.Join(errs, codefmt.WithHelp(err, `rename the argument with //ctor:name="..."`))
	}

	return errs
}

// refs collects the identifiers the constructor writes besides its arguments.
func (s *Struct) refs() *linkedhashset.Set {
	refs := linkedhashset.New() // string
	refs.Add(s.Name)
	for _, name := range s.TypeParamNames() {
		refs.Add(name)
	}
	for _, f := range s.Fields {
		for _, ref := range f.Refs {
			refs.Add(ref)
		}
	}
	return refs
}

// keepFieldNames reverts lower camel argument names to the field names when
// they collide with another argument or an identifier the constructor writes:
//
//	struct{ ID int; id int } => (ID, id)
//
// Names given by the name option are never changed.
func (pl *Planner) keepFieldNames(s *Struct) {
	refs := s.refs()
	count := make(map[string]int)
	for _, f := range s.Params() {
		count[f.Arg]++
	}
	for _, f := range s.Params() {
		if f.Options.Name != nil || f.Arg == f.Member.Name() {
			continue
		}
		if count[f.Arg] > 1 || refs.Contains(f.Arg) {
			count[f.Arg]--
			f.Arg = f.Member.Name()
			count[f.Arg]++
		}
	}
}
