package typeinfo_test

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/ctorgen/internal/typeinfo"
)

func parse(code string) (*ast.File, *types.Info, *types.Package, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", code, parser.AllErrors)
	if err != nil {
		return nil, nil, nil, err
	}

	info := &types.Info{Types: make(map[ast.Expr]types.TypeAndValue)}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("pkg", fset, []*ast.File{file}, info)
	if err != nil {
		return nil, nil, nil, err
	}

	return file, info, pkg, nil
}

func parseType(typeExpr string) (types.Type, error) {
	_, _, pkg, err := parse(fmt.Sprintf("package p; var x %s", typeExpr))
	if err != nil {
		return nil, err
	}
	x := pkg.Scope().Lookup("x")
	return x.Type(), nil
}

func TestTypeOfComposite(t *testing.T) {
	ty, err := parseType("[3]int")
	require.NoError(t, err)
	ti := typeinfo.TypeOf(ty)
	assert.True(t, ti.IsArray())
	assert.True(t, ti.Elem.IsBasic())
	assert.Equal(t, int64(3), ti.Len)

	ty, err = parseType("map[int]string")
	require.NoError(t, err)
	ti = typeinfo.TypeOf(ty)
	assert.True(t, ti.IsMap())
	assert.True(t, ti.Key.IsBasic())
	assert.True(t, ti.Elem.IsBasic())

	ty, err = parseType("chan int")
	require.NoError(t, err)
	ti = typeinfo.TypeOf(ty)
	assert.True(t, ti.IsChan())

	ty, err = parseType("func(int) error")
	require.NoError(t, err)
	ti = typeinfo.TypeOf(ty)
	assert.True(t, ti.IsFunc())
}

func TestTypeOfPointer(t *testing.T) {
	ty, err := parseType("**int")
	require.NoError(t, err)

	ti := typeinfo.TypeOf(ty)
	assert.True(t, ti.IsPointer())
	assert.True(t, ti.Elem.IsPointer())
	assert.True(t, ti.Elem.Elem.IsBasic())
}

func TestTypeOfNamed(t *testing.T) {
	_, _, pkg, err := parse(`
package p
type myInt int
var x myInt
`)
	require.NoError(t, err)

	ty := pkg.Scope().Lookup("x").Type()

	ti := typeinfo.TypeOf(ty)
	assert.True(t, ti.IsNamed())
	assert.True(t, ti.IsBasic())
	assert.Equal(t, "myInt", ti.Named.Obj().Name())
	assert.Equal(t, "int", ti.Basic.Name())
}

func TestTypeOfTypeParam(t *testing.T) {
	_, _, pkg, err := parse(`
package p
type Box[T any] struct{ v T }
`)
	require.NoError(t, err)

	st := pkg.Scope().Lookup("Box").Type().Underlying().(*types.Struct)
	ti := typeinfo.TypeOf(st.Field(0).Type())
	assert.True(t, ti.IsTypeParam())
	assert.Equal(t, typeinfo.ZeroNew, ti.Zero())

	_, ok := ti.ConversionSource()
	assert.False(t, ok)
}

func TestConversionSource(t *testing.T) {
	tests := []struct {
		typeExpr string
		want     string
	}{
		{"string", "string"},
		{"uint8", "uint8"},
		{"time.Duration", "int64"},
		{"[]byte", ""},
		{"*int", ""},
		{"error", ""},
		{"unsafe.Pointer", ""},
	}
	for _, test := range tests {
		t.Run(test.typeExpr, func(t *testing.T) {
			_, _, pkg, err := parse(fmt.Sprintf(`package p; import ("time"; "unsafe"); var _ time.Duration; var _ unsafe.Pointer; var x %s`, test.typeExpr))
			require.NoError(t, err)

			ti := typeinfo.TypeOf(pkg.Scope().Lookup("x").Type())
			basic, ok := ti.ConversionSource()
			if test.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, test.want, basic.Name())
		})
	}
}

func TestConversionConstraint(t *testing.T) {
	tests := []struct {
		basic *types.Basic
		want  string
	}{
		{types.Typ[types.Uint8], "~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr | ~float32 | ~float64"},
		{types.Typ[types.Float64], "~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr | ~float32 | ~float64"},
		{types.Typ[types.Complex128], "~complex64 | ~complex128"},
		{types.Typ[types.String], "~string | ~[]byte | ~[]rune"},
		{types.Typ[types.Bool], "~bool"},
	}
	for _, test := range tests {
		t.Run(test.basic.Name(), func(t *testing.T) {
			assert.Equal(t, test.want, typeinfo.ConversionConstraint(test.basic))
		})
	}
}

// TestConversionConstraintUntyped checks that a generic function constrained
// by the union accepts untyped constants and named types alike.
func TestConversionConstraintUntyped(t *testing.T) {
	src := fmt.Sprintf(`package p

type Age uint8
type Name string

func f[P0 %s, P1 %s](name P0, age P1) (string, uint8) {
	return string(name), uint8(age)
}

var _, _ = f("Awiteb", 20)
var _, _ = f(Name("Awiteb"), Age(20))
var _, _ = f([]byte("Awiteb"), 20.0)
`, typeinfo.ConversionConstraint(types.Typ[types.String]), typeinfo.ConversionConstraint(types.Typ[types.Uint8]))
	_, _, _, err := parse(src)
	assert.NoError(t, err)
}

func TestRepresentable(t *testing.T) {
	tests := []struct {
		value string
		basic types.BasicKind
		want  bool
	}{
		{"255", types.Uint8, true},
		{"256", types.Uint8, false},
		{"-1", types.Uint8, false},
		{"-128", types.Int8, true},
		{"-129", types.Int8, false},
		{"127", types.Int8, true},
		{"128", types.Int8, false},
		{"2.0", types.Int, true},
		{"2.5", types.Int, false},
		{"1 << 63", types.Int64, false},
		{"1<<63 - 1", types.Int64, true},
		{"1 << 64", types.Uint64, false},
		{"1e38", types.Float32, true},
		{"1e39", types.Float32, false},
		{"1e39", types.Float64, true},
		{"'a'", types.Int32, true},
		{`"x"`, types.String, true},
		{"true", types.Bool, true},
	}
	for _, tt := range tests {
		basic := types.Typ[tt.basic]
		t.Run(tt.value+" as "+basic.Name(), func(t *testing.T) {
			tv, err := types.Eval(token.NewFileSet(), nil, token.NoPos, tt.value)
			require.NoError(t, err)
			require.NotNil(t, tv.Value)
			assert.Equal(t, tt.want, typeinfo.Representable(tv.Value, basic, nil))
		})
	}
}

func TestZero(t *testing.T) {
	tests := []struct {
		typeExpr string
		want     typeinfo.Zero
	}{
		{"int", typeinfo.ZeroNumber},
		{"float64", typeinfo.ZeroNumber},
		{"string", typeinfo.ZeroString},
		{"bool", typeinfo.ZeroBool},
		{"*int", typeinfo.ZeroNil},
		{"[]int", typeinfo.ZeroNil},
		{"map[int]int", typeinfo.ZeroNil},
		{"chan int", typeinfo.ZeroNil},
		{"func()", typeinfo.ZeroNil},
		{"error", typeinfo.ZeroNil},
		{"[2]int", typeinfo.ZeroComposite},
		{"struct{ x int }", typeinfo.ZeroComposite},
	}
	for _, test := range tests {
		t.Run(test.typeExpr, func(t *testing.T) {
			ty, err := parseType(test.typeExpr)
			require.NoError(t, err)
			assert.Equal(t, test.want, typeinfo.TypeOf(ty).Zero())
		})
	}
}

func TestRefs(t *testing.T) {
	_, _, pkg, err := parse(`
package p
import "time"
type Pair[K comparable, V any] struct{ k K; v V }
var x map[string][]Pair[int, time.Time]
`)
	require.NoError(t, err)

	var names []string
	for obj := range typeinfo.Refs(pkg.Scope().Lookup("x").Type()) {
		if obj.Pkg() != nil && obj.Pkg() != pkg {
			names = append(names, obj.Pkg().Name()+"."+obj.Name())
			continue
		}
		names = append(names, obj.Name())
	}
	assert.Equal(t, []string{"string", "Pair", "int", "time.Time"}, names)
	assert.False(t, slices.Contains(names, "map"))
}
