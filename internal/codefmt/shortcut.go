package codefmt

import (
	"go/token"
	"go/types"
)

// Errorf is a shorthand for [Formatter.Errorf].
func Errorf(pkger Pkger, poser Poser, format string, args ...any) error {
	return newByPkger(pkger).Errorf(poser, format, args...)
}

type poser struct{ pos token.Pos }

func (p poser) Pos() token.Pos { return p.pos }
func Pos(pos token.Pos) Poser  { return poser{pos} }

type typer struct{ typ types.Type }

func (t typer) Type() types.Type { return t.typ }
func Type(typ types.Type) Typer  { return typer{typ} }
