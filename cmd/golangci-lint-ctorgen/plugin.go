// golangcilintctorgen package provides a plugin for golangci-lint to integrate
// the Ctorgen analyzer. To build a custom golangci-lint binary with this
// plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-ctorgen binary that reports misplaced or
// malformed //ctorgen:generate and //ctor: directives.
//
// Each package is checked with .ctorgen.yaml in its directory. The "config"
// setting names one file for all packages instead:
//
//	linters:
//	  settings:
//	    custom:
//	      ctorgen:
//	        type: module
//	        settings:
//	          config: .ctorgen.yaml
package golangcilintctorgen

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/sublee/ctorgen/pkg/ctorgenanalysis"
)

func init() {
	register.Plugin("ctorgen", New)
}

// Settings are the plugin settings in .golangci.yml.
type Settings struct {
	Config string `json:"config"`
}

func New(settings any) (register.LinterPlugin, error) {
	s, err := register.DecodeSettings[Settings](settings)
	if err != nil {
		return nil, err
	}
	if s.Config != "" {
		if err := ctorgenanalysis.Analyzer.Flags.Set("config", s.Config); err != nil {
			return nil, err
		}
	}
	return CtorgenLinter{}, nil
}

type CtorgenLinter struct{}

func (CtorgenLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{ctorgenanalysis.Analyzer}, nil
}

func (CtorgenLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
