package option

import (
	"errors"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/sublee/ctorgen/internal/codefmt"
)

// TermKind tells the syntactic form of a [Term].
type TermKind int

const (
	TermFlag   TermKind = iota // key
	TermAssign                 // key=literal
)

// Term is a syntactically valid option which is not checked against the
// supported options yet.
type Term struct {
	Kind TermKind
	Key  string

	// Tok and Lit are the token and raw text of the value. They are set only
	// for TermAssign.
	Tok token.Token
	Lit string

	pos token.Pos
	end token.Pos
}

func (t Term) Pos() token.Pos { return t.pos }
func (t Term) End() token.Pos { return t.end }

// Decode decodes the text of a directive following "//ctor:". pos is the
// position of the first byte of text. The text is a comma-separated list of
// options:
//
//	options = option { "," option } .
//	option  = ident [ "=" literal ] .
func Decode(pkger codefmt.Pkger, pos token.Pos, text string) ([]*Option, error) {
	if strings.TrimSpace(text) == "" {
		return nil, codefmt.Errorf(pkger, codefmt.Pos(pos), "empty option is not supported, supported: %s", Supported())
	}

	terms, bad, ok := ScanTerms(pos, text)
	if !ok {
		return nil, codefmt.Errorf(pkger, codefmt.Pos(bad), "malformed option, supported: %s", Supported())
	}

	var opts []*Option
	var errs error
	for _, term := range terms {
		opt, err := decodeTerm(pkger, term)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		opts = append(opts, opt)
	}
	if errs != nil {
		return nil, errs
	}
	return opts, nil
}

// ScanTerms tokenizes text into terms. pos is the position of the first byte
// of text. If the text is malformed, it returns the position of the first
// unexpected token and false.
func ScanTerms(pos token.Pos, text string) ([]Term, token.Pos, bool) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(text))

	// Positions in the private file are translated into the caller's file.
	at := func(p token.Pos) token.Pos {
		return pos + token.Pos(file.Offset(p))
	}

	illegal := token.NoPos
	var s scanner.Scanner
	s.Init(file, []byte(text), func(p token.Position, _ string) {
		if !illegal.IsValid() {
			illegal = pos + token.Pos(p.Offset)
		}
	}, 0)

	next := func() (token.Pos, token.Token, string) {
		for {
			p, tok, lit := s.Scan()
			if tok == token.SEMICOLON && lit == "\n" {
				// Automatically inserted at the end
				continue
			}
			return at(p), tok, lit
		}
	}

	var terms []Term
	for {
		p, tok, lit := next()
		if tok != token.IDENT && !tok.IsKeyword() {
			// "default" is a keyword
			return nil, p, false
		}
		term := Term{Kind: TermFlag, Key: lit, pos: p, end: p + token.Pos(len(lit))}

		p, tok, lit = next()
		if tok == token.ASSIGN {
			p, tok, lit = next()
			if !isValueToken(tok) {
				return nil, p, false
			}
			term.Kind = TermAssign
			term.Tok = tok
			term.Lit = lit
			term.end = p + token.Pos(len(lit))

			p, tok, _ = next()
		}
		terms = append(terms, term)

		switch tok {
		case token.COMMA:
			continue
		case token.EOF:
			if illegal.IsValid() {
				return nil, illegal, false
			}
			return terms, token.NoPos, true
		}
		return nil, p, false
	}
}

// isValueToken reports whether the token can be a value of an option.
// Identifiers are accepted to diagnose values like "default=true" precisely.
func isValueToken(tok token.Token) bool {
	switch tok {
	case token.STRING, token.CHAR, token.INT, token.FLOAT, token.IMAG, token.IDENT:
		return true
	}
	return false
}

// decodeTerm checks a term against the supported options.
func decodeTerm(pkger codefmt.Pkger, term Term) (*Option, error) {
	spec, ok := Lookup(term.Key)
	if !ok {
		err := codefmt.Errorf(pkger, term, "unsupported option `%s`", term.Key)
		return nil, codefmt.WithHelp(err, "use one of %s", Supported())
	}

	switch {
	case term.Kind == TermFlag && spec.Kind == KindFlag:
		return &Option{Key: spec.Key, pos: term.pos, end: term.end}, nil

	case term.Kind == TermFlag:
		err := codefmt.Errorf(pkger, term, "unsupported option `%s`", term.Key)
		return nil, codefmt.WithHelp(err, "write `%s`", spec.Usage)

	case spec.Kind == KindFlag:
		err := codefmt.Errorf(pkger, term, "option `%s` does not take a value", term.Key)
		return nil, codefmt.WithHelp(err, "write `%s`", spec.Usage)

	case term.Tok != token.STRING:
		err := codefmt.Errorf(pkger, term, "option `%s` must be a string literal", term.Key)
		return nil, codefmt.WithHelp(err, "write `%s`", spec.Usage)
	}

	value, err := strconv.Unquote(term.Lit)
	if err != nil {
		// The scanner has already rejected broken literals.
		return nil, codefmt.Errorf(pkger, term, "malformed option, supported: %s", Supported())
	}
	return &Option{Key: spec.Key, Value: strings.TrimSpace(value), pos: term.pos, end: term.end}, nil
}
