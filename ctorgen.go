// Package ctorgen generates constructor functions for struct types.
//
// Ctorgen removes the boilerplate of writing NewT functions by hand. Mark a
// struct type with a generate directive, and the generator produces a
// constructor taking one argument per field:
//
//	// source:
//	//ctorgen:generate
//	type User struct {
//		Name string
//		Age  uint8
//	}
//
//	// generated:
//	// NewUser creates a new instance of [User].
//	func NewUser[
//		P0 ~string | ~[]byte | ~[]rune,
//		P1 ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr | ~float32 | ~float64,
//	](name P0, age P1) User {
//		return User{
//			Name: string(name),
//			Age:  uint8(age),
//		}
//	}
//
// After marking types, run the ctorgen command. It will generate ctorgen_gen.go
// for your package:
//
//	go run github.com/sublee/ctorgen/cmd/ctorgen
//
// The generated file is guarded by "//go:build !ctorgen". The generator loads
// packages with the "ctorgen" build tag, so a stale generated file never
// conflicts with a new generation.
//
// # Constructor names
//
// A constructor is named "New" followed by the type name. Unexported types get
// an unexported constructor, "newUser" for "user". Pass a name to the directive
// to choose another one:
//
//	//ctorgen:generate MakeUser
//	type User struct{ ... }
//
// # Field options
//
// Fields are configured with "//ctor:" directive comments, in the field's doc
// comment or at the end of its line. A directive holds one or more options
// separated by commas:
//
//	type User struct {
//		Name  string    //ctor:name="fullName"
//		Tags  []string  //ctor:default
//		Since time.Time //ctor:value="time.Now()"
//	}
//
// The options are:
//
//   - name="arg": rename the argument. The name is used verbatim.
//   - default: take no argument and initialize the field with its zero value.
//   - value="expr": take no argument and initialize the field with a Go
//     expression. The expression is resolved in the scope of the package.
//
// A field takes at most one of them. Without options, a field takes an
// argument named after the field in lower camel case, "userID" for "UserID".
//
// Embedded fields have no natural argument name, so they must specify one of
// the options. A struct whose fields are all embedded gets a constructor
// building an unkeyed composite literal:
//
//	//ctorgen:generate
//	type Pair struct {
//		Label //ctor:name="x"
//		Count //ctor:name="y"
//	}
//
//	// generated:
//	func NewPair[P0 ~string | ~[]byte | ~[]rune, P1 ~int | ... | ~float64](x P0, y P1) Pair {
//		return Pair{Label(x), Count(y)}
//	}
//
// # Conversions
//
// A field whose underlying type is a basic type takes a type parameter whose
// type set converts to the field type: every numeric type for numeric fields,
// "~string | ~[]byte | ~[]rune" for string fields, and "~bool" for boolean
// fields. Untyped constants and named types can be passed without an explicit
// conversion at the call site, NewUser("alice", 20) as well as
// NewUser(Name("alice"), Age(20)). Turn it off with "convert: false" in
// .ctorgen.yaml to take exact field types instead.
package ctorgen

const (
	// GenerateDirective marks a struct type for constructor generation. It
	// takes an optional constructor name.
	GenerateDirective = "//ctorgen:generate"

	// OptionDirective prefixes field options.
	OptionDirective = "//ctor:"

	// BuildTag is the build tag set while loading packages. Generated files
	// are excluded by it.
	BuildTag = "ctorgen"
)
