// Package plan decides the signature and the body of each constructor.
package plan

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/ctorgen/internal/codefmt"
	"github.com/sublee/ctorgen/internal/ctorgen/option"
	"github.com/sublee/ctorgen/internal/ctorgen/parse"
)

// Shape tells how a struct is constructed.
type Shape int

const (
	ShapeNamed      Shape = iota // T{A: a, B: b}
	ShapePositional              // T{a, b}
)

// Struct is the plan of a constructor.
type Struct struct {
	Agg *parse.Aggregate

	// Name is the struct type name. Ctor is the constructor name.
	Name string
	Ctor string

	Shape Shape

	// TypeParams are the type parameters of a generic struct. The
	// constructor declares them before the type parameters of arguments.
	TypeParams *types.TypeParamList

	// Fields are the fields to initialize in declaration order. Blank fields
	// are not included.
	Fields []*Field
}

func (s *Struct) Pos() token.Pos { return s.Agg.Pos() }

// Params returns the fields taking an argument in declaration order.
func (s *Struct) Params() []*Field {
	var params []*Field
	for _, f := range s.Fields {
		if f.Kind == KindArg {
			params = append(params, f)
		}
	}
	return params
}

// TypeParamNames returns the names of the struct type parameters.
func (s *Struct) TypeParamNames() []string {
	if s.TypeParams == nil {
		return nil
	}
	names := make([]string, s.TypeParams.Len())
	for i := range names {
		names[i] = s.TypeParams.At(i).Obj().Name()
	}
	return names
}

// Planner assembles [Struct] plans for the marked types of a package.
type Planner struct {
	pkg *packages.Package
	res *Resolver
}

// New creates a new [Planner].
func New(pkg *packages.Package, cfg Config) *Planner {
	return &Planner{pkg: pkg, res: NewResolver(pkg, cfg)}
}

func (pl *Planner) Pkg() *packages.Package { return pl.pkg }

// Assemble decodes the options of every field, resolves the fields, and
// validates them together. It collects the errors of all fields. The
// aggregate must be validated by [parse.Parser.Validate] before.
func (pl *Planner) Assemble(agg *parse.Aggregate) (*Struct, error) {
	s := &Struct{
		Agg:        agg,
		Name:       agg.Name(),
		Ctor:       agg.Ctor,
		Shape:      ShapeNamed,
		TypeParams: agg.TypeParams(),
	}
	if agg.Positional() {
		s.Shape = ShapePositional
	}

	var errs error
	for _, m := range agg.Members {
		set, err := pl.options(m)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if m.Name() == "_" {
			if !set.IsEmpty() {
				err := codefmt.Errorf(pl, m.Directives[0], "blank fields cannot take options")
				errs = errors.Join(errs, codefmt.WithHelp(err, "remove the option"))
			}
			continue
		}

		f, err := pl.res.Resolve(m, set)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		s.Fields = append(s.Fields, f)
	}
	if errs != nil {
		return nil, errs
	}

	pl.keepFieldNames(s)
	if err := pl.validate(s); err != nil {
		return nil, err
	}

	pl.allocTypeParams(s)
	return s, nil
}

// options decodes all "//ctor:" directives of a field and merges them.
func (pl *Planner) options(m parse.Member) (option.Set, error) {
	var opts []*option.Option
	var errs error
	for _, dir := range m.Directives {
		decoded, err := option.Decode(pl, dir.TextPos, dir.Text)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		opts = append(opts, decoded...)
	}
	if errs != nil {
		return option.Set{}, errs
	}
	return option.Merge(pl, opts)
}

// allocTypeParams names the type parameters of converted arguments as P0, P1,
// and so on. The names avoid the arguments, the struct type parameters, and
// the types written in the constructor.
func (pl *Planner) allocTypeParams(s *Struct) {
	var reserved []string
	for _, f := range s.Params() {
		reserved = append(reserved, f.Arg)
	}
	reserved = append(reserved, s.Name)
	reserved = append(reserved, s.TypeParamNames()...)
	for _, f := range s.Fields {
		reserved = append(reserved, pl.res.typeRefs(f.Type())...)
		reserved = append(reserved, f.Refs...)
	}

	ns := codefmt.NewLocalNS(reserved...)
	i := 0
	for _, f := range s.Params() {
		if f.Convert == nil {
			continue
		}
		f.TypeParam = ns.Name(fmt.Sprintf("P%d", i))
		i++
	}
}
