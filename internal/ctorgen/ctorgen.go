package ctorgeninternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io"
	"maps"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/ctorgen/internal/codefmt"
	"github.com/sublee/ctorgen/internal/ctorgen/emit"
	"github.com/sublee/ctorgen/internal/ctorgen/parse"
	"github.com/sublee/ctorgen/internal/ctorgen/plan"
)

// Ctorgen generates constructor code for the target package. Call [Build] and
// then [Generate] to get the generated code. All potential errors are returned
// by [Build]. Once [Build] succeeds, [Generate] never fails.
type Ctorgen struct {
	p       *parse.Parser
	planner *plan.Planner
	buf     *bytes.Buffer
	w       *codefmt.Writer

	structs []*plan.Struct
}

// New creates a new [Ctorgen] for the given package. If the package does not
// satisfy the requirements, an error is returned. The package must have its
// Syntax, Types and TypesInfo.
func New(pkg *packages.Package, cfg plan.Config) (*Ctorgen, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Ctorgen{
		p:       parser,
		planner: plan.New(pkg, cfg),
		buf:     &buf,
		w:       codefmt.NewWriter(&buf, pkg),
	}, nil
}

// Build prepares code generation by parsing marked types and planning their
// constructors. All potential errors are returned by this method. It must be
// called before [Generate].
//
// A struct with errors gets no plan, but the other structs are planned anyway.
// [Structs] returns the successful plans even if Build fails.
func (cg *Ctorgen) Build() error {
	aggs, errs := cg.p.ParseAggregates()

	aggs, err := cg.p.Validate(aggs)
	errs = errors.Join(errs, err)

	for _, agg := range aggs {
		s, err := cg.planner.Assemble(agg)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		cg.structs = append(cg.structs, s)
	}

	return errs
}

// Structs returns the planned constructors in source order.
func (cg *Ctorgen) Structs() []*plan.Struct {
	return cg.structs
}

// Generate generates constructor code for the package. It must be called after
// [Build] succeeds. It returns nil if there is no marked type.
func (cg *Ctorgen) Generate() []byte {
	if len(cg.structs) == 0 {
		return nil
	}
	cg.writeCtorCode()
	return cg.frameCode()
}

// writeCtorCode writes function declaration code for all constructors.
func (cg *Ctorgen) writeCtorCode() {
	for _, s := range cg.structs {
		emit.Write(cg.w, s)
		cg.w.Printf("\n")
	}
}

func (cg *Ctorgen) frameCode() []byte {
	// Prepend header code
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !ctorgen\n\n")
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/ctorgen%s. DO NOT EDIT.\n\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n\n", cg.p.Pkg().Name)

	imports := cg.w.Imports()
	if len(imports) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, alias := range slices.Sorted(maps.Keys(imports)) {
			imp := imports[alias]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n\n")
	}

	_, _ = io.Copy(&buf, cg.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
