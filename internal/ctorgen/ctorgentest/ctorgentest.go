// Package ctorgentest type-checks Go source code in memory for tests.
package ctorgentest

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// PkgPath is the import path of packages created by [Load].
const PkgPath = "example.com/p"

// Load parses and type-checks files as a single package. Each file is a pair
// of its name and source code:
//
//	pkg := ctorgentest.Load(t, "p.go", "package p; type T struct{}")
//
// Standard packages are imported from source.
func Load(t testing.TB, nameAndSrcs ...string) *packages.Package {
	t.Helper()
	require.True(t, len(nameAndSrcs)%2 == 0, "need pairs of name and source")

	fset := token.NewFileSet()
	var files []*ast.File
	var names []string
	for i := 0; i < len(nameAndSrcs); i += 2 {
		name, src := nameAndSrcs[i], nameAndSrcs[i+1]
		file, err := parser.ParseFile(fset, name, src, parser.ParseComments|parser.AllErrors)
		require.NoError(t, err)
		files = append(files, file)
		names = append(names, name)
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
	sizes := types.SizesFor("gc", "amd64")
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil), Sizes: sizes}
	pkg, err := conf.Check(PkgPath, fset, files, info)
	require.NoError(t, err)

	return &packages.Package{
		ID:         PkgPath,
		Name:       pkg.Name(),
		PkgPath:    PkgPath,
		GoFiles:    names,
		Fset:       fset,
		Syntax:     files,
		Types:      pkg,
		TypesInfo:  info,
		TypesSizes: sizes,
	}
}

// AssertNoDiff reports a unified diff between want and got.
func AssertNoDiff(t testing.TB, want, got string) bool {
	t.Helper()
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if diff != "" {
		t.Error(diff)
		return false
	}
	return true
}
