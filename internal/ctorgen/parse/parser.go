package parse

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/ctorgen"
)

// Parser parses an AST of the underlying package to collect struct types
// marked for constructor generation.
type Parser struct {
	pkg *packages.Package

	// generated holds files excluded by the ctorgen build tag. They are
	// usually previously generated files.
	generated map[*token.File]struct{}
}

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}

	generated := make(map[*token.File]struct{})
	for _, file := range pkg.Syntax {
		if isExcludedByCtorgen(file) {
			generated[pkg.Fset.File(file.Pos())] = struct{}{}
		}
	}
	return &Parser{pkg: pkg, generated: generated}, nil
}

// SourceFiles returns the files in the package except generated ones.
// Packages loaded by the ctorgen command never contain generated files, but
// packages under static analysis may.
func (p *Parser) SourceFiles() []*ast.File {
	var files []*ast.File
	for _, file := range p.pkg.Syntax {
		if _, ok := p.generated[p.pkg.Fset.File(file.Pos())]; ok {
			continue
		}
		files = append(files, file)
	}
	return files
}

// IsGenerated reports whether the position is in a file excluded by the
// ctorgen build tag.
func (p *Parser) IsGenerated(pos token.Pos) bool {
	file := p.pkg.Fset.File(pos)
	if file == nil {
		return false
	}
	_, ok := p.generated[file]
	return ok
}

// isExcludedByCtorgen checks if the file has a "//go:build" constraint which
// is satisfied only without the ctorgen build tag, like "//go:build !ctorgen".
func isExcludedByCtorgen(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.Pos() > file.Package {
			// Build constraints must appear before the package clause.
			break
		}
		for _, comment := range group.List {
			if !constraint.IsGoBuild(comment.Text) {
				continue
			}
			expr, err := constraint.Parse(comment.Text)
			if err != nil {
				continue
			}
			with := expr.Eval(func(string) bool { return true })
			without := expr.Eval(func(tag string) bool { return tag != ctorgen.BuildTag })
			return !with && without
		}
	}
	return false
}

// Directive is a comment line starting with a prefix like "//ctor:".
type Directive struct {
	// Text is the text following the prefix.
	Text string

	// TextPos is the position of the first byte of Text.
	TextPos token.Pos

	comment *ast.Comment
}

func (d Directive) Pos() token.Pos { return d.comment.Pos() }
func (d Directive) End() token.Pos { return d.comment.End() }

// findDirectives collects comment lines starting with the prefix from the
// comment groups in order.
func findDirectives(prefix string, groups ...*ast.CommentGroup) []Directive {
	var dirs []Directive
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			text, ok := strings.CutPrefix(comment.Text, prefix)
			if !ok {
				continue
			}
			dirs = append(dirs, Directive{
				Text:    text,
				TextPos: comment.Slash + token.Pos(len(prefix)),
				comment: comment,
			})
		}
	}
	return dirs
}
