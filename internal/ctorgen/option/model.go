// Package option decodes and merges "//ctor:" field options.
package option

import (
	"go/token"
	"slices"
	"strings"
)

// Key identifies an option.
type Key string

const (
	KeyName    Key = "name"
	KeyDefault Key = "default"
	KeyValue   Key = "value"
)

// Kind tells whether an option takes a value.
type Kind int

const (
	KindFlag   Kind = iota // default
	KindString             // name="arg"
)

// Spec describes a supported option.
type Spec struct {
	Key   Key
	Kind  Kind
	Usage string
}

// specs is the registry of supported options in canonical order.
var specs = []Spec{
	{Key: KeyName, Kind: KindString, Usage: `name="arg"`},
	{Key: KeyDefault, Kind: KindFlag, Usage: `default`},
	{Key: KeyValue, Kind: KindString, Usage: `value="expr"`},
}

// Lookup finds the spec of an option by its key.
func Lookup(key string) (Spec, bool) {
	i := slices.IndexFunc(specs, func(spec Spec) bool {
		return string(spec.Key) == key
	})
	if i == -1 {
		return Spec{}, false
	}
	return specs[i], true
}

// Specs returns the supported options in canonical order.
func Specs() []Spec {
	return slices.Clone(specs)
}

// Supported returns the usage texts of all supported options for
// diagnostics.
//
//	`name="arg"`, `default`, `value="expr"`
func Supported() string {
	usages := make([]string, len(specs))
	for i, spec := range specs {
		usages[i] = "`" + spec.Usage + "`"
	}
	return strings.Join(usages, ", ")
}

// Option is a decoded option. Value is empty for flags.
type Option struct {
	Key   Key
	Value string

	pos token.Pos
	end token.Pos
}

// Pos returns the position of the option key.
func (o *Option) Pos() token.Pos { return o.pos }

// End returns the position right after the option.
func (o *Option) End() token.Pos { return o.end }

// Set holds the options of a field. Absent options are nil.
type Set struct {
	Name    *Option
	Default *Option
	Value   *Option
}

// Get returns the option of the given key. It returns nil if absent.
func (s Set) Get(key Key) *Option {
	switch key {
	case KeyName:
		return s.Name
	case KeyDefault:
		return s.Default
	case KeyValue:
		return s.Value
	}
	return nil
}

func (s *Set) set(opt *Option) {
	switch opt.Key {
	case KeyName:
		s.Name = opt
	case KeyDefault:
		s.Default = opt
	case KeyValue:
		s.Value = opt
	}
}

// IsEmpty reports whether no option is set.
func (s Set) IsEmpty() bool {
	return s.Name == nil && s.Default == nil && s.Value == nil
}
