package codefmt

import (
	"fmt"
	"go/token"
	"go/types"
	"io"

	"golang.org/x/tools/go/packages"
)

type (
	Pkger    interface{ Pkg() *packages.Package }
	Poser    interface{ Pos() token.Pos }
	Ender    interface{ End() token.Pos }
	Objecter interface{ Object() types.Object }
	Typer    interface{ Type() types.Type }
)

// wrapPrintfArgs replaces the arguments the Formatter knows how to print with
// [formatArg]. Others are left for the fmt package.
func (f Formatter) wrapPrintfArgs(args []any) []any {
	for i, arg := range args {
		switch arg.(type) {
		case token.Pos, types.Object, types.Type, Poser, Objecter, Typer:
			args[i] = formatArg{arg, f}
		}
	}
	return args
}

// formatArg is a printf argument viewed as an object, a type, or a position,
// whichever the verb asks for.
type formatArg struct {
	x   any
	fmt Formatter
}

func (f formatArg) object() types.Object {
	switch x := f.x.(type) {
	case types.Object:
		return x
	case Objecter:
		return x.Object()
	}
	// A named type stands for its type name.
	if named, ok := f.typ().(*types.Named); ok {
		return named.Obj()
	}
	return nil
}

func (f formatArg) typ() types.Type {
	switch x := f.x.(type) {
	case types.Type:
		return x
	case types.Object:
		return x.Type()
	case Typer:
		return x.Type()
	case Objecter:
		return x.Object().Type()
	}
	return nil
}

func (f formatArg) pos() token.Pos {
	switch x := f.x.(type) {
	case token.Pos:
		return x
	case Poser:
		return x.Pos()
	}
	if obj := f.object(); obj != nil {
		return obj.Pos()
	}
	return token.NoPos
}

// Format implements fmt.Formatter interface.
//
// Supported verbs:
//
//	%o: the name to refer an object or a named type, like "Label" or "url.URL"
//	%t: the type, like "map[string]*url.URL"
//	%b: the position, like "main.go:4:2"
//
// For other verbs, it falls back to the default formatting of fmt package.
func (f formatArg) Format(s fmt.State, verb rune) {
	switch verb {
	case 'o':
		obj := f.object()
		if obj == nil {
			fmt.Fprintf(s, "[%%o cannot format %T]", f.x)
			return
		}
		_, _ = io.WriteString(s, f.fmt.Obj(obj))

	case 't':
		typ := f.typ()
		if typ == nil {
			fmt.Fprintf(s, "[%%t cannot format %T]", f.x)
			return
		}
		_, _ = io.WriteString(s, f.fmt.Type(typ))

	case 'b':
		pos := f.pos()
		if !pos.IsValid() || f.fmt.Fset == nil {
			fmt.Fprintf(s, "[%%b cannot format %T]", f.x)
			return
		}
		_, _ = io.WriteString(s, FormatPosition(f.fmt.Fset.Position(pos)))

	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), f.x)
	}
}

// Sprintf is like fmt.Sprintf with the verbs of [formatArg.Format].
func (f Formatter) Sprintf(format string, args ...any) string {
	args = f.wrapPrintfArgs(args)
	return fmt.Sprintf(format, args...)
}

// Fprintf is like fmt.Fprintf with the verbs of [formatArg.Format].
func (f Formatter) Fprintf(w io.Writer, format string, args ...any) (int, error) {
	args = f.wrapPrintfArgs(args)
	return fmt.Fprintf(w, format, args...)
}
