package typeinfo

import (
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"iter"
	"math"
)

// Type describes a type information. It holds information of [types.Type] that
// is necessary from the Ctorgen's perspective.
type Type struct {
	T types.Type

	Basic     *types.Basic
	Array     *types.Array
	Slice     *types.Slice
	Map       *types.Map
	Chan      *types.Chan
	Signature *types.Signature
	Struct    *types.Struct
	Interface *types.Interface
	Pointer   *types.Pointer
	Named     *types.Named
	TypeParam *types.TypeParam

	Elem *Type
	Key  *Type
	Len  int64
}

func (t Type) Type() types.Type { return t.T }
func (t Type) String() string   { return t.T.String() }

func (t Type) IsBasic() bool     { return t.Basic != nil }
func (t Type) IsArray() bool     { return t.Array != nil }
func (t Type) IsSlice() bool     { return t.Slice != nil }
func (t Type) IsMap() bool       { return t.Map != nil }
func (t Type) IsChan() bool      { return t.Chan != nil }
func (t Type) IsFunc() bool      { return t.Signature != nil }
func (t Type) IsStruct() bool    { return t.Struct != nil }
func (t Type) IsInterface() bool { return t.Interface != nil }
func (t Type) IsPointer() bool   { return t.Pointer != nil }
func (t Type) IsNamed() bool     { return t.Named != nil }
func (t Type) IsTypeParam() bool { return t.TypeParam != nil }

// TypeOf inspects the given type and returns a new [Type].
func TypeOf(t types.Type) Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		return Type{T: t, Basic: tt}
	case *types.Array:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Array: tt, Elem: &elem, Len: tt.Len()}
	case *types.Slice:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Slice: tt, Elem: &elem}
	case *types.Map:
		elem := TypeOf(tt.Elem())
		key := TypeOf(tt.Key())
		return Type{T: t, Map: tt, Elem: &elem, Key: &key}
	case *types.Chan:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Chan: tt, Elem: &elem}
	case *types.Signature:
		return Type{T: t, Signature: tt}
	case *types.Struct:
		return Type{T: t, Struct: tt}
	case *types.Interface:
		return Type{T: t, Interface: tt}
	case *types.Pointer:
		elem := TypeOf(tt.Elem())
		return Type{T: t, Pointer: tt, Elem: &elem}
	case *types.Named:
		info := TypeOf(tt.Underlying())
		info.T = t
		info.Named = tt
		return info
	case *types.TypeParam:
		return Type{T: t, TypeParam: tt}
	}
	panic(fmt.Errorf("unknown type: %T", t))
}

// ConversionSource returns the basic type U a constructor argument converts to
// with a plain U(arg) conversion. Type parameters, untyped basic types, and
// unsafe.Pointer have no such U.
//
//	string          => string
//	time.Duration   => int64
//	[]byte          => false
func (t Type) ConversionSource() (*types.Basic, bool) {
	if !t.IsBasic() || t.IsTypeParam() {
		return nil, false
	}
	info := t.Basic.Info()
	if info&types.IsUntyped != 0 || t.Basic.Kind() == types.UnsafePointer || t.Basic.Kind() == types.Invalid {
		return nil, false
	}
	return t.Basic, true
}

const (
	numericUnion = "~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr | ~float32 | ~float64"
	complexUnion = "~complex64 | ~complex128"
	stringUnion  = "~string | ~[]byte | ~[]rune"
	boolUnion    = "~bool"
)

// ConversionConstraint returns the type constraint of an argument converted to
// the basic type. Every type in the constraint's type set converts to basic,
// and the default type of every untyped constant of the same kind is in it, so
// both NewT(20) and NewT(Age(20)) infer a type argument.
//
//	uint8   => ~int | ~int8 | ... | ~float64
//	string  => ~string | ~[]byte | ~[]rune
func ConversionConstraint(basic *types.Basic) string {
	info := basic.Info()
	switch {
	case info&types.IsBoolean != 0:
		return boolUnion
	case info&types.IsString != 0:
		return stringUnion
	case info&types.IsComplex != 0:
		return complexUnion
	case info&types.IsNumeric != 0:
		return numericUnion
	}
	return "~" + basic.Name()
}

// Representable reports whether the constant value fits in the basic type
// without overflow or truncation. Integer sizes follow sizes, or amd64 if it is
// nil.
//
//	300 => uint8:  false
//	2.5 => int:    false
//	1e9 => int32:  true
func Representable(v constant.Value, basic *types.Basic, sizes types.Sizes) bool {
	if v.Kind() == constant.Unknown {
		return true
	}
	if sizes == nil {
		sizes = types.SizesFor("gc", "amd64")
	}

	info := basic.Info()
	switch {
	case info&types.IsUntyped != 0:
		return true

	case info&types.IsInteger != 0:
		x := constant.ToInt(v)
		if x.Kind() != constant.Int {
			return false
		}
		bits := int(8 * sizes.Sizeof(basic))
		if info&types.IsUnsigned != 0 {
			return constant.Sign(x) >= 0 && constant.BitLen(x) <= bits
		}
		if constant.Sign(x) >= 0 {
			return constant.BitLen(x) < bits
		}
		// -2^(bits-1) is the smallest one.
		minAbs := constant.Shift(constant.MakeInt64(1), token.SHL, uint(bits-1))
		return constant.Compare(constant.UnaryOp(token.SUB, x, 0), token.LEQ, minAbs)

	case info&types.IsFloat != 0:
		x := constant.ToFloat(v)
		if x.Kind() == constant.Unknown {
			return false
		}
		return fitsFloat(x, basic.Kind() == types.Float32)

	case info&types.IsComplex != 0:
		x := constant.ToComplex(v)
		if x.Kind() == constant.Unknown {
			return false
		}
		f32 := basic.Kind() == types.Complex64
		return fitsFloat(constant.Real(x), f32) && fitsFloat(constant.Imag(x), f32)
	}
	return true
}

func fitsFloat(x constant.Value, f32 bool) bool {
	if f32 {
		f, _ := constant.Float32Val(x)
		return !math.IsInf(float64(f), 0)
	}
	f, _ := constant.Float64Val(x)
	return !math.IsInf(f, 0)
}

// Zero describes how to write the zero value of a type.
type Zero int

const (
	ZeroNumber    Zero = iota // 0
	ZeroString                // ""
	ZeroBool                  // false
	ZeroNil                   // nil
	ZeroComposite             // T{}
	ZeroNew                   // *new(T)
)

// Zero returns the way to write the zero value of the type.
func (t Type) Zero() Zero {
	switch {
	case t.IsTypeParam():
		return ZeroNew
	case t.IsBasic():
		info := t.Basic.Info()
		switch {
		case info&types.IsBoolean != 0:
			return ZeroBool
		case info&types.IsString != 0:
			return ZeroString
		case info&types.IsNumeric != 0:
			return ZeroNumber
		}
		return ZeroNil // unsafe.Pointer
	case t.IsPointer(), t.IsSlice(), t.IsMap(), t.IsChan(), t.IsFunc(), t.IsInterface():
		return ZeroNil
	case t.IsStruct(), t.IsArray():
		return ZeroComposite
	}
	return ZeroNew
}

// Refs yields the type names which must be resolvable to write the type in Go
// source code. Predeclared types like int are yielded as universe objects.
//
//	map[string]time.Time => string, time.Time
func Refs(t types.Type) iter.Seq[*types.TypeName] {
	return func(yield func(*types.TypeName) bool) {
		walkRefs(t, yield)
	}
}

func walkRefs(t types.Type, yield func(*types.TypeName) bool) bool {
	switch t := t.(type) {
	case *types.Alias:
		return yield(t.Obj())
	case *types.Basic:
		obj, ok := types.Universe.Lookup(t.Name()).(*types.TypeName)
		if !ok {
			// unsafe.Pointer or untyped types
			return true
		}
		return yield(obj)
	case *types.Named:
		if !yield(t.Obj()) {
			return false
		}
		if targs := t.TypeArgs(); targs != nil {
			for i := 0; i < targs.Len(); i++ {
				if !walkRefs(targs.At(i), yield) {
					return false
				}
			}
		}
		return true
	case *types.TypeParam:
		return yield(t.Obj())
	case *types.Pointer:
		return walkRefs(t.Elem(), yield)
	case *types.Slice:
		return walkRefs(t.Elem(), yield)
	case *types.Array:
		return walkRefs(t.Elem(), yield)
	case *types.Chan:
		return walkRefs(t.Elem(), yield)
	case *types.Map:
		return walkRefs(t.Key(), yield) && walkRefs(t.Elem(), yield)
	case *types.Signature:
		for v := range t.Params().Variables() {
			if !walkRefs(v.Type(), yield) {
				return false
			}
		}
		for v := range t.Results().Variables() {
			if !walkRefs(v.Type(), yield) {
				return false
			}
		}
		return true
	case *types.Struct:
		for field := range t.Fields() {
			if !walkRefs(field.Type(), yield) {
				return false
			}
		}
		return true
	case *types.Interface:
		for i := 0; i < t.NumEmbeddeds(); i++ {
			if !walkRefs(t.EmbeddedType(i), yield) {
				return false
			}
		}
		for method := range t.ExplicitMethods() {
			if !walkRefs(method.Type(), yield) {
				return false
			}
		}
		return true
	}
	return true
}
