package ctorgeninternal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/ctorgen"
	"github.com/sublee/ctorgen/internal/ctorgen/plan"
)

var Version string

// Options controls [Main].
type Options struct {
	// Tags is the comma-separated build tags to use when loading packages in
	// addition to the ctorgen build tag.
	Tags string

	// Tests indicates whether to include test files.
	Tests bool

	// Output is the name of the output file to generate in each package.
	Output string

	// Plan controls how fields are turned into arguments.
	Plan plan.Config

	// Logger receives progress logs. If it is nil, logs are discarded.
	Logger *log.Logger
}

// Main is the main entry point for Ctorgen. It is used by the command-line tool
// directly.
//
// ctx is the context for loading packages. If the loading is too slow, ctx can
// cancel the operation. wd is the path of the working directory. env is the
// environment variables to use when running the tool. opts controls the
// generation. And patterns are the package patterns to process.
//
// It returns a map of output file paths to their contents. If any error occurs,
// it returns a non-nil error.
func Main(ctx context.Context, wd string, env []string, opts Options, patterns []string) (map[string][]byte, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	pkgs, err := load(ctx, wd, env, opts.Tags, opts.Tests, patterns)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded packages", "count", len(pkgs))

	outs := make(map[string][]byte)
	ctors := make(map[string]struct{})
	var built []*packages.Package
	var errs error

	for _, pkg := range pkgs {
		if err := fatalErrors(wd, pkg); err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		cg, err := New(pkg, opts.Plan)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if err := cg.Build(); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		built = append(built, pkg)

		for _, s := range cg.Structs() {
			ctors[s.Ctor] = struct{}{}
			logger.Debug("Planned constructor", "pkg", pkg.PkgPath, "type", s.Name, "ctor", s.Ctor, "params", len(s.Params()))
		}

		code := cg.Generate()
		if len(code) == 0 {
			logger.Debug("No constructors", "pkg", pkg.PkgPath)
			continue
		}

		outDir := filepath.Dir(pkg.GoFiles[0])
		if rel, err := filepath.Rel(wd, outDir); err == nil {
			outDir = rel
		}
		out := filepath.Join(outDir, opts.Output)
		outs[out] = code
	}

	// Constructors are excluded while loading packages. Their call sites are
	// undefined until they are generated.
	for _, pkg := range built {
		errs = errors.Join(errs, typeErrors(wd, pkg, ctors))
	}

	if errs != nil {
		// errs already contains comprehensive error messages. So we don't need
		// to attach another error message.
		return nil, reorderErrors(errs)
	}

	return outs, nil
}

// load loads packages.
func load(ctx context.Context, wd string, env []string, tags string, tests bool, patterns []string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:       packages.NeedDeps | packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        wd,
		Env:        env,
		BuildFlags: []string{"-tags=" + ctorgen.BuildTag},
		Tests:      tests,
	}
	if tags != "" {
		cfg.BuildFlags[0] += "," + tags
	}

	// Load the packages based on the provided patterns.
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}
	return pkgs, nil
}

// fatalErrors returns the errors of the package except type errors. Type
// errors are checked by [typeErrors] after all packages are built.
func fatalErrors(wd string, pkg *packages.Package) error {
	return pkgErrors(wd, pkg, func(err packages.Error) bool {
		return err.Kind != packages.TypeError
	})
}

// reUndefined matches type errors of undefined identifiers, like "undefined:
// NewUser" or "undefined: models.NewUser".
var reUndefined = regexp.MustCompile(`^undefined: (?:\w+\.)?(\w+)$`)

// typeErrors returns the type errors of the package except references to the
// constructors to generate.
func typeErrors(wd string, pkg *packages.Package, ctors map[string]struct{}) error {
	return pkgErrors(wd, pkg, func(err packages.Error) bool {
		if err.Kind != packages.TypeError {
			return false
		}
		if m := reUndefined.FindStringSubmatch(err.Msg); m != nil {
			if _, ok := ctors[m[1]]; ok {
				return false
			}
		}
		return true
	})
}

// pkgErrors joins the errors of the package selected by the filter. The
// positions are relative to wd.
func pkgErrors(wd string, pkg *packages.Package, filter func(packages.Error) bool) error {
	var errs error
	for _, err := range pkg.Errors {
		if !filter(err) {
			continue
		}

		if err.Pos == "" {
			errs = errors.Join(errs, errors.New(err.Msg))
			continue
		}

		path, rowcol, _ := strings.Cut(err.Pos, ":")
		if rel, relErr := filepath.Rel(wd, path); relErr == nil {
			err.Pos = rel + ":" + rowcol
		}
		errs = errors.Join(errs, err)
	}
	return errs
}

func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	// Flatten nested errors
	list := []error{errs}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			// errors.Join collapses errors with a single error having Unwrap()
			// []error method. The underlying errors could be retrieved using
			// the Unwrap() method.
			list = append(list, u.Unwrap()...)

			// The underlying errors are appended to the list. So the original
			// error can be removed.
			list[i] = nil
			continue
		}
	}
	list = slices.DeleteFunc(list, func(err error) bool {
		return err == nil
	})

	// Sort errors by message
	sort.Slice(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})
	return errors.Join(list...)
}
