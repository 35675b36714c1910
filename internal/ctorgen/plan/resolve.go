package plan

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/ctorgen/internal/codefmt"
	"github.com/sublee/ctorgen/internal/ctorgen/option"
	"github.com/sublee/ctorgen/internal/ctorgen/parse"
	"github.com/sublee/ctorgen/internal/typeinfo"
	"github.com/sublee/ctorgen/internal/words"
)

// Kind tells how a field is initialized.
type Kind int

const (
	KindArg   Kind = iota // from an argument
	KindZero              // with the zero value
	KindValue             // with an expression
)

// Field is a resolved field of a constructor.
type Field struct {
	Member  parse.Member
	Options option.Set
	Kind    Kind

	// Arg is the argument name. It is set only for KindArg.
	Arg string

	// Convert is the basic type which constrains the type parameter of the
	// argument. The field is initialized by a conversion from the argument.
	// If it is nil, the argument has the exact field type.
	Convert *types.Basic

	// TypeParam is the type parameter name of the argument for Convert. It is
	// allocated by [Planner.Assemble].
	TypeParam string

	// Value is the expression for KindValue.
	Value *Expr

	// Refs are the root identifiers referenced by the initializer, like
	// "string" of "string(name)" or "time" of "time.Now()".
	Refs []string

	argPoser codefmt.Poser
}

// ArgPos returns where the argument name comes from. It is the name option if
// given, otherwise the field.
func (f *Field) ArgPos() token.Pos {
	if f.argPoser == nil {
		return f.Member.Pos()
	}
	return f.argPoser.Pos()
}

// Type returns the field type.
func (f *Field) Type() types.Type { return f.Member.Type() }

// Zero returns how to write the zero value of the field type.
func (f *Field) Zero() typeinfo.Zero { return typeinfo.TypeOf(f.Type()).Zero() }

// Expr is a Go expression given by the value option. It is type-checked in
// the scope of the struct declaration with its own file set and type info, so
// that the package under analysis is never mutated.
type Expr struct {
	Text string
	AST  ast.Expr
	Fset *token.FileSet
	Info *types.Info
}

// Config controls the resolution of fields.
type Config struct {
	// Convert enables type parameters constrained by the underlying basic
	// type of fields.
	Convert bool

	// LowerArgs lower-cases the leading word of natural argument names.
	LowerArgs bool
}

// DefaultConfig returns the default [Config].
func DefaultConfig() Config {
	return Config{Convert: true, LowerArgs: true}
}

// Resolver resolves a field with its options into a [Field].
type Resolver struct {
	pkg *packages.Package
	cfg Config
}

// NewResolver creates a new [Resolver].
func NewResolver(pkg *packages.Package, cfg Config) *Resolver {
	return &Resolver{pkg: pkg, cfg: cfg}
}

func (r *Resolver) Pkg() *packages.Package { return r.pkg }

// Resolve validates the options of a field and decides how the field is
// initialized. It stops at the first error.
func (r *Resolver) Resolve(m parse.Member, set option.Set) (*Field, error) {
	if err := r.validate(m, set); err != nil {
		return nil, err
	}

	f := &Field{Member: m, Options: set}

	switch {
	case set.Default != nil:
		f.Kind = KindZero
		f.Refs = r.zeroRefs(m.Type())

	case set.Value != nil:
		expr, err := r.checkValue(m, set.Value)
		if err != nil {
			return nil, err
		}
		f.Kind = KindValue
		f.Value = expr
		f.Refs = r.exprRefs(expr)

	case set.Name != nil:
		f.Kind = KindArg
		f.Arg = set.Name.Value
		f.argPoser = set.Name
		r.convert(f)

	case !m.Embedded():
		f.Kind = KindArg
		f.Arg = r.naturalName(m.Name())
		r.convert(f)

	default:
		panic("unreachable: embedded field without options")
	}

	return f, nil
}

// validate checks the options of a field in a fixed order.
func (r *Resolver) validate(m parse.Member, set option.Set) error {
	if m.Embedded() && set.IsEmpty() {
		err := codefmt.Errorf(r, m, "unnamed members must specify `name`")
		err = codefmt.WithHelp(err, `add //ctor:name="..." to the field`)
		return codefmt.WithNote(err, "embedded fields have no natural parameter name")
	}

	if set.Default != nil && set.Name != nil {
		err := codefmt.Errorf(r, laterOf(set.Default, set.Name), "`default` cannot be combined with `name`")
		return codefmt.WithHelp(err, "remove one of them")
	}
	if set.Value != nil && set.Name != nil {
		err := codefmt.Errorf(r, laterOf(set.Value, set.Name), "`value` cannot be combined with `name`")
		return codefmt.WithHelp(err, "remove one of them")
	}
	if set.Value != nil && set.Default != nil {
		err := codefmt.Errorf(r, laterOf(set.Value, set.Default), "`value` cannot be combined with `default`")
		return codefmt.WithHelp(err, "remove one of them")
	}

	if set.Name != nil {
		name := set.Name.Value
		if name == "" {
			return codefmt.Errorf(r, set.Name, "name value cannot be empty")
		}
		if !token.IsIdentifier(name) || name == "_" {
			return codefmt.Errorf(r, set.Name, "name value %q is not a valid identifier", name)
		}
	}

	if set.Value != nil && set.Value.Value == "" {
		return codefmt.Errorf(r, set.Value, "value cannot be empty")
	}

	return nil
}

// laterOf returns the option specified later.
func laterOf(a, b *option.Option) *option.Option {
	if a.Pos() > b.Pos() {
		return a
	}
	return b
}

// naturalName returns the argument name derived from the field name. It falls
// back to the field name if lower-casing yields a keyword.
//
//	UserID => userID
//	Type   => Type
func (r *Resolver) naturalName(name string) string {
	if !r.cfg.LowerArgs {
		return name
	}
	lower := words.LowerCamel(name)
	if token.IsKeyword(lower) {
		return name
	}
	return lower
}

// convert decides the argument type of the field.
func (r *Resolver) convert(f *Field) {
	if !r.cfg.Convert {
		return
	}
	basic, ok := typeinfo.TypeOf(f.Type()).ConversionSource()
	if !ok {
		return
	}
	f.Convert = basic
	f.Refs = r.typeRefs(f.Type())
}

// checkValue parses and type-checks the expression of a value option. The
// expression must be assignable to the field.
func (r *Resolver) checkValue(m parse.Member, opt *option.Option) (*Expr, error) {
	fset := token.NewFileSet()
	astExpr, err := parser.ParseExprFrom(fset, "", opt.Value, 0)
	if err != nil {
		return nil, codefmt.Errorf(r, opt, "value %q is not a valid expression", opt.Value)
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Instances:  make(map[*ast.Ident]types.Instance),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
	// Fields declared in another package, like in "type T U", are resolved
	// in the package scope.
	scopePos := m.Pos()
	if m.Var.Pkg() != r.pkg.Types {
		scopePos = token.NoPos
	}
	if err := types.CheckExpr(fset, r.pkg.Types, scopePos, astExpr, info); err != nil {
		msg := err.Error()
		var typeErr types.Error
		if errors.As(err, &typeErr) {
			msg = typeErr.Msg
		}
		err := codefmt.Errorf(r, opt, "cannot use value %q: %s", opt.Value, msg)
		return nil, codefmt.WithNote(err, "the value is resolved in the scope of package %s", r.pkg.Name)
	}

	tv := info.Types[astExpr]
	if !tv.IsValue() {
		return nil, codefmt.Errorf(r, opt, "cannot use value %q as %t; not a value", opt.Value, codefmt.Type(m.Type()))
	}
	if !types.AssignableTo(tv.Type, m.Type()) {
		return nil, codefmt.Errorf(r, opt, "cannot use value %q (%t) as %t", opt.Value, codefmt.Type(tv.Type), codefmt.Type(m.Type()))
	}
	if basic, ok := m.Type().Underlying().(*types.Basic); ok && tv.Value != nil {
		if !typeinfo.Representable(tv.Value, basic, r.pkg.TypesSizes) {
			return nil, codefmt.Errorf(r, opt, "cannot use value %q as %t; constant %s is not representable by %t", opt.Value, codefmt.Type(m.Type()), tv.Value, codefmt.Type(basic))
		}
	}

	return &Expr{Text: opt.Value, AST: astExpr, Fset: fset, Info: info}, nil
}

// rootName returns the identifier to refer the object at the package level.
// Objects in other packages are referred by their package names.
func (r *Resolver) rootName(obj types.Object) string {
	if pkg := obj.Pkg(); pkg != nil && pkg != r.pkg.Types {
		return pkg.Name()
	}
	return obj.Name()
}

// typeRefs returns the root identifiers to write the type.
func (r *Resolver) typeRefs(t types.Type) []string {
	var refs []string
	for obj := range typeinfo.Refs(t) {
		refs = append(refs, r.rootName(obj))
	}
	return refs
}

// zeroRefs returns the root identifiers to write the zero value of the type.
func (r *Resolver) zeroRefs(t types.Type) []string {
	switch typeinfo.TypeOf(t).Zero() {
	case typeinfo.ZeroBool:
		return []string{"false"}
	case typeinfo.ZeroNil:
		return []string{"nil"}
	case typeinfo.ZeroComposite:
		return r.typeRefs(t)
	case typeinfo.ZeroNew:
		return append([]string{"new"}, r.typeRefs(t)...)
	}
	return nil
}

// exprRefs returns the root identifiers referenced by the expression.
// Selectors, field keys and local variables of function literals are not root
// identifiers.
func (r *Resolver) exprRefs(expr *Expr) []string {
	var refs []string
	ast.Inspect(expr.AST, func(node ast.Node) bool {
		switch node := node.(type) {
		case *ast.SelectorExpr:
			// Sel is not a root identifier.
			refs = append(refs, r.exprRefs(&Expr{AST: node.X, Info: expr.Info})...)
			return false

		case *ast.Ident:
			obj := expr.Info.Uses[node]
			if obj == nil {
				return false
			}
			if name, ok := r.refName(obj); ok {
				refs = append(refs, name)
			}
		}
		return true
	})
	return refs
}

// refName returns the root name of an object used in an expression. It
// reports false for objects which cannot be shadowed by arguments.
func (r *Resolver) refName(obj types.Object) (string, bool) {
	switch obj := obj.(type) {
	case *types.PkgName:
		return obj.Imported().Name(), true
	case *types.Var:
		if obj.IsField() {
			return "", false
		}
	case *types.TypeName:
		if _, ok := obj.Type().(*types.TypeParam); ok {
			return obj.Name(), true
		}
	}

	switch obj.Parent() {
	case types.Universe, r.pkg.Types.Scope():
		return obj.Name(), true
	}
	return "", false
}
