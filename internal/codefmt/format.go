package codefmt

import (
	"fmt"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Formatter formats types, objects, and positions relative to a package.
type Formatter struct {
	PkgPath   string
	Fset      *token.FileSet
	TypesInfo *types.Info
}

func New(pkg *packages.Package) Formatter {
	if pkg == nil {
		return Formatter{}
	}
	return Formatter{pkg.PkgPath, pkg.Fset, pkg.TypesInfo}
}

func newByPkger(pkger Pkger) Formatter {
	if pkger == nil {
		return New(nil)
	}
	return New(pkger.Pkg())
}

// qf is a [types.Qualifier] for types.ObjectString and types.TypeString.
func (f Formatter) qf(pkg *types.Package) string {
	if pkg.Path() == f.PkgPath {
		return ""
	}
	return pkg.Name()
}

// Type returns a string representation of the given type.
//
// e.g., f.Type([types.Type for bytes.Buffer]) => "bytes.Buffer"
func (f Formatter) Type(typ types.Type) string {
	return types.TypeString(typ, f.qf)
}

// Obj returns a code string to refer the given object.
//
// e.g., f.Obj([types.Object for url.URL]) => "url.URL"
func (f Formatter) Obj(obj types.Object) string {
	if pkg := obj.Pkg(); pkg != nil && f.qf(pkg) != "" {
		return f.qf(pkg) + "." + obj.Name()
	}
	return obj.Name()
}

// TypeParams returns the declaration form of the given type parameters
// without brackets.
//
// e.g., f.TypeParams([K comparable, V any]) => "K comparable, V any"
func (f Formatter) TypeParams(tparams *types.TypeParamList) string {
	if tparams == nil {
		return ""
	}

	var b strings.Builder
	for i := 0; i < tparams.Len(); i++ {
		if i != 0 {
			b.WriteString(", ")
		}
		tparam := tparams.At(i)
		b.WriteString(tparam.Obj().Name())
		b.WriteByte(' ')
		b.WriteString(f.Constraint(tparam.Constraint()))
	}
	return b.String()
}

// Constraint returns a string representation of a type constraint. Implicit
// interfaces like "~int | ~string" are written without the interface wrapper.
func (f Formatter) Constraint(typ types.Type) string {
	if iface, ok := typ.(*types.Interface); ok && iface.IsImplicit() && iface.NumEmbeddeds() == 1 {
		return f.Type(iface.EmbeddedType(0))
	}
	return f.Type(typ)
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
