package ctorgenanalysis

import (
	"path/filepath"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/ctorgen/internal/codefmt"
	"github.com/sublee/ctorgen/internal/config"
	ctorgeninternal "github.com/sublee/ctorgen/internal/ctorgen"
)

// Analyzer validates constructor directives and field options in the package.
//
// The convert and lowerArgs options come from .ctorgen.yaml in the package
// directory, the file "go generate" makes the ctorgen command read. The
// -config flag names a file to read instead.
var Analyzer = &analysis.Analyzer{
	Name: "ctorgen",
	Doc:  "linter for ctorgen directives",
	Run:  run,
}

// configPath is the -config flag.
var configPath string

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "config file to read instead of .ctorgen.yaml in the package directory")
}

// loadConfig reads the config file for the package. A missing default file
// means the defaults.
func loadConfig(pass *analysis.Pass) (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath, true)
	}
	if len(pass.Files) == 0 {
		return config.Default(), nil
	}
	dir := filepath.Dir(pass.Fset.Position(pass.Files[0].Package).Filename)
	return config.Load(filepath.Join(dir, config.DefaultPath), false)
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:       pass.Pkg.Name(),
		PkgPath:    pass.Pkg.Path(),
		Types:      pass.Pkg,
		Fset:       pass.Fset,
		Syntax:     pass.Files,
		TypesInfo:  pass.TypesInfo,
		TypesSizes: pass.TypesSizes,
	}

	cfg, err := loadConfig(pass)
	if err != nil {
		return nil, err
	}

	cg, err := ctorgeninternal.New(pkg, cfg.Plan())
	if err != nil {
		return nil, err
	}

	if err := cg.Build(); err != nil {
		// Unroll all errors and report them
		errs := []error{err}
		for len(errs) != 0 {
			err := errs[0]
			errs = errs[1:]

			if codeErr, ok := err.(*codefmt.CodeError); ok {
				pass.Report(diagnostic(codeErr))
				continue
			}

			if u, ok := err.(interface{ Unwrap() []error }); ok {
				errs = append(errs, u.Unwrap()...)
			}
		}
	}

	return nil, nil
}

// diagnostic converts a [codefmt.CodeError] to a diagnostic. Help and note are
// attached as related information at the same position.
func diagnostic(err *codefmt.CodeError) analysis.Diagnostic {
	d := analysis.Diagnostic{
		Pos:     err.Pos(),
		End:     err.End(),
		Message: err.Message(),
	}
	if help := err.Help(); help != "" {
		d.Related = append(d.Related, analysis.RelatedInformation{Pos: err.Pos(), End: err.End(), Message: "help: " + help})
	}
	if note := err.Note(); note != "" {
		d.Related = append(d.Related, analysis.RelatedInformation{Pos: err.Pos(), End: err.End(), Message: "note: " + note})
	}
	return d
}
