// Package emit writes the code of constructors.
package emit

import (
	"go/format"
	"strings"

	"github.com/sublee/ctorgen/internal/codefmt"
	"github.com/sublee/ctorgen/internal/ctorgen/plan"
	"github.com/sublee/ctorgen/internal/typeinfo"
)

// Write writes the function declaration of a constructor:
//
//	// NewUser creates a new instance of [User].
//	func NewUser[P0 ~string | ~[]byte | ~[]rune](name P0, tags []string) User {
//		return User{
//			Name: string(name),
//			Tags: tags,
//		}
//	}
//
// Packages referenced by the code are recorded in the writer.
func Write(w *codefmt.Writer, s *plan.Struct) {
	typ := s.Name
	var tparams []string
	if names := s.TypeParamNames(); len(names) != 0 {
		// Box[T]
		typ += "[" + strings.Join(names, ", ") + "]"
		tparams = append(tparams, w.TypeParams(s.TypeParams))
	}

	var params []string
	for _, f := range s.Params() {
		if f.Convert != nil {
			tparams = append(tparams, f.TypeParam+" "+typeinfo.ConversionConstraint(f.Convert))
			params = append(params, f.Arg+" "+f.TypeParam)
			continue
		}
		params = append(params, f.Arg+" "+w.Sprintf("%t", f.Type()))
	}

	w.Printf("// %s creates a new instance of [%s].\n", s.Ctor, s.Name)
	w.Printf("func %s", s.Ctor)
	if len(tparams) != 0 {
		w.Printf("[%s]", strings.Join(tparams, ", "))
	}
	w.Printf("(%s) %s {\n", strings.Join(params, ", "), typ)

	switch s.Shape {
	case plan.ShapePositional:
		inits := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			inits[i] = initExpr(w, f)
		}
		w.Printf("\treturn %s{%s}\n", typ, strings.Join(inits, ", "))

	default:
		w.Printf("\treturn %s{\n", typ)
		for _, f := range s.Fields {
			w.Printf("\t\t%s: %s,\n", f.Member.Name(), initExpr(w, f))
		}
		w.Printf("\t}\n")
	}

	w.Printf("}\n")
}

// initExpr returns the expression to initialize the field.
func initExpr(w *codefmt.Writer, f *plan.Field) string {
	switch f.Kind {
	case plan.KindZero:
		return zeroExpr(w, f)
	case plan.KindValue:
		return valueExpr(w, f.Value)
	}

	if f.Convert != nil {
		return w.Sprintf("%t(%s)", f.Type(), f.Arg)
	}
	return f.Arg
}

// zeroExpr returns the zero value of the field type.
func zeroExpr(w *codefmt.Writer, f *plan.Field) string {
	switch f.Zero() {
	case typeinfo.ZeroNumber:
		return "0"
	case typeinfo.ZeroString:
		return `""`
	case typeinfo.ZeroBool:
		return "false"
	case typeinfo.ZeroNil:
		return "nil"
	case typeinfo.ZeroComposite:
		return w.Sprintf("%t{}", f.Type())
	}
	return w.Sprintf("*new(%t)", f.Type())
}

// valueExpr returns the expression of a value option. Package qualifiers are
// rewritten to the names imported by the generated file.
func valueExpr(w *codefmt.Writer, expr *plan.Expr) string {
	node := codefmt.RewriteImports(w, expr.Info, expr.AST)

	var b strings.Builder
	if err := format.Node(&b, expr.Fset, node); err != nil {
		panic(err) // should never happen because the expression has been parsed
	}
	return b.String()
}
