package codefmt

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// CodeError indicates where the error occurred in user's source code. It may
// carry a help text suggesting the exact fix and a note explaining why the rule
// exists.
type CodeError struct {
	err  error
	pos  token.Pos
	end  token.Pos
	fmt  Formatter

	help string
	note string
}

// Unwrap returns the underlying error.
func (e CodeError) Unwrap() error { return e.err }

// Pos returns the position where the error occurred. It may be invalid.
func (e CodeError) Pos() token.Pos { return e.pos }

// End returns the end position of the error. It may be invalid.
func (e CodeError) End() token.Pos { return e.end }

// Help returns the remediation text. It may be empty.
func (e CodeError) Help() string { return e.help }

// Note returns the text explaining the rule. It may be empty.
func (e CodeError) Note() string { return e.note }

// Message returns the primary message without position, help, and note.
func (e CodeError) Message() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// Error implements the error interface. If pos is valid, the position is
// prepended to the error message. Help and note follow as indented lines:
//
//	main.go:10:2: unnamed members must specify `name`
//		help: add //ctor:name="..." to the field
//		note: embedded fields have no natural parameter name
func (e CodeError) Error() string {
	if e.err == nil {
		return ""
	}

	var b strings.Builder
	if e.pos.IsValid() {
		b.WriteString(FormatPosition(e.fmt.Fset.Position(e.pos)))
		b.WriteString(": ")
	}
	b.WriteString(e.err.Error())
	if e.help != "" {
		b.WriteString("\n\thelp: ")
		b.WriteString(e.help)
	}
	if e.note != "" {
		b.WriteString("\n\tnote: ")
		b.WriteString(e.note)
	}
	return b.String()
}

// Errorf formats an error message. The error will indicate the position in the
// source code if the position is valid.
func (f Formatter) Errorf(poser Poser, format string, args ...any) error {
	// Prevent wrapping error in args
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			panic("CodeError cannot wrap error")
		}
	}

	var pos, end token.Pos
	if poser != nil {
		pos = poser.Pos()
		if ender, ok := poser.(Ender); ok {
			end = ender.End()
		}
	}

	args = f.wrapPrintfArgs(args)
	err := fmt.Errorf(format, args...)
	return &CodeError{err: err, pos: pos, end: end, fmt: f}
}

// WithHelp attaches a help text to a [CodeError]. Other errors are returned as
// is. The format takes the verbs of [Formatter.Sprintf].
func WithHelp(err error, format string, args ...any) error {
	var codeErr *CodeError
	if !errors.As(err, &codeErr) {
		return err
	}
	clone := *codeErr
	clone.help = codeErr.fmt.Sprintf(format, args...)
	return &clone
}

// WithNote attaches a note to a [CodeError]. Other errors are returned as is.
// The format takes the verbs of [Formatter.Sprintf], so a note can point to
// another position with %b.
func WithNote(err error, format string, args ...any) error {
	var codeErr *CodeError
	if !errors.As(err, &codeErr) {
		return err
	}
	clone := *codeErr
	clone.note = codeErr.fmt.Sprintf(format, args...)
	return &clone
}
