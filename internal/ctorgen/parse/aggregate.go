package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sublee/ctorgen"
	"github.com/sublee/ctorgen/internal/codefmt"
)

// Aggregate is a type declaration marked with "//ctorgen:generate". The type
// is not guaranteed to be a struct type until validated by [Parser.Validate].
type Aggregate struct {
	Obj  *types.TypeName
	Spec *ast.TypeSpec

	// Struct is nil if the type is not a struct type.
	Struct *types.Struct

	// Marker is the "//ctorgen:generate" directive.
	Marker Directive

	// Ctor is the name of the constructor to generate. It is given by the
	// marker or derived from the type name.
	Ctor string

	// TypeDirectives are "//ctor:" directives attached to the type itself.
	// They are not allowed.
	TypeDirectives []Directive

	// Members are the fields in declaration order.
	Members []Member
}

func (a *Aggregate) Name() string    { return a.Obj.Name() }
func (a *Aggregate) Pos() token.Pos  { return a.Spec.Name.Pos() }
func (a *Aggregate) End() token.Pos  { return a.Spec.Name.End() }
func (a *Aggregate) Type() types.Type { return a.Obj.Type() }

// TypeParams returns the type parameters of a generic struct. It returns nil
// for non-generic types.
func (a *Aggregate) TypeParams() *types.TypeParamList {
	if named, ok := a.Obj.Type().(*types.Named); ok {
		return named.TypeParams()
	}
	return nil
}

// Positional reports whether all fields are embedded. A positional struct is
// constructed by an unkeyed composite literal.
func (a *Aggregate) Positional() bool {
	if len(a.Members) == 0 {
		return false
	}
	for _, m := range a.Members {
		if !m.Embedded() {
			return false
		}
	}
	return true
}

// Member is a field of an [Aggregate].
type Member struct {
	Var *types.Var

	// Index is the index of the field in the struct.
	Index int

	// Directives are "//ctor:" directives attached to the field, from its doc
	// comment and then its line comment. A field declaring multiple names
	// like "A, B int" shares the directives.
	Directives []Directive
}

// Name returns the field name. For embedded fields, it is the type name.
func (m Member) Name() string     { return m.Var.Name() }
func (m Member) Embedded() bool   { return m.Var.Embedded() }
func (m Member) Type() types.Type { return m.Var.Type() }
func (m Member) Pos() token.Pos   { return m.Var.Pos() }
func (m Member) Object() types.Object {
	return m.Var
}

// ParseAggregates finds and parses all type declarations marked with
// "//ctorgen:generate" in source order.
func (p *Parser) ParseAggregates() ([]*Aggregate, error) {
	var aggs []*Aggregate
	var errs error

	for _, file := range p.SourceFiles() {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				docs := []*ast.CommentGroup{ts.Doc}
				if !gen.Lparen.IsValid() {
					// type T struct{...}
					// The doc comment belongs to the declaration.
					docs = append(docs, gen.Doc)
				}

				markers := findMarkers(docs...)
				if len(markers) == 0 {
					continue
				}
				for _, dup := range markers[1:] {
					err := codefmt.Errorf(p, dup, "duplicate %s directive", ctorgen.GenerateDirective)
					errs = errors.Join(errs, codefmt.WithHelp(err, "remove the duplicate directive"))
				}

				agg, err := p.parseAggregate(ts, markers[0], append(docs, ts.Comment))
				if err != nil {
					errs = errors.Join(errs, err)
					continue
				}
				aggs = append(aggs, agg)
			}
		}
	}

	return aggs, errs
}

// findMarkers collects "//ctorgen:generate" directives. The directive may be
// followed by a constructor name separated by spaces.
func findMarkers(groups ...*ast.CommentGroup) []Directive {
	var markers []Directive
	for _, dir := range findDirectives(ctorgen.GenerateDirective, groups...) {
		if dir.Text != "" && !strings.HasPrefix(dir.Text, " ") && !strings.HasPrefix(dir.Text, "\t") {
			// Another directive sharing the prefix
			continue
		}
		markers = append(markers, dir)
	}
	return markers
}

func (p *Parser) parseAggregate(ts *ast.TypeSpec, marker Directive, groups []*ast.CommentGroup) (*Aggregate, error) {
	obj, ok := p.pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil, codefmt.Errorf(p, ts.Name, "cannot resolve type %s", ts.Name.Name) // unreachable
	}

	ctor := strings.TrimSpace(marker.Text)
	if ctor == "" {
		ctor = DefaultCtorName(obj.Name())
	} else if !token.IsIdentifier(ctor) || ctor == "_" {
		err := codefmt.Errorf(p, marker, "constructor name %q is not a valid identifier", ctor)
		return nil, codefmt.WithHelp(err, "write %s or %s %s", ctorgen.GenerateDirective, ctorgen.GenerateDirective, DefaultCtorName(obj.Name()))
	}

	agg := &Aggregate{
		Obj:            obj,
		Spec:           ts,
		Marker:         marker,
		Ctor:           ctor,
		TypeDirectives: findDirectives(ctorgen.OptionDirective, groups...),
	}

	if ts.Assign.IsValid() {
		// Type aliases are rejected by Validate.
		return agg, nil
	}

	st, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return agg, nil
	}
	agg.Struct = st

	// Directives are available only if the struct is declared by a literal.
	// For "type T U", the fields are declared by U.
	var fieldDirectives [][]Directive
	if lit, ok := ts.Type.(*ast.StructType); ok {
		for _, field := range lit.Fields.List {
			dirs := findDirectives(ctorgen.OptionDirective, field.Doc, field.Comment)
			n := max(len(field.Names), 1)
			for range n {
				fieldDirectives = append(fieldDirectives, dirs)
			}
		}
	}

	for i := range st.NumFields() {
		m := Member{Var: st.Field(i), Index: i}
		if i < len(fieldDirectives) {
			m.Directives = fieldDirectives[i]
		}
		agg.Members = append(agg.Members, m)
	}

	return agg, nil
}

// DefaultCtorName returns the constructor name for the type name. Unexported
// types get an unexported constructor.
//
//	User => NewUser
//	user => newUser
func DefaultCtorName(typeName string) string {
	if token.IsExported(typeName) {
		return "New" + typeName
	}
	r, size := utf8.DecodeRuneInString(typeName)
	return "new" + string(unicode.ToUpper(r)) + typeName[size:]
}
