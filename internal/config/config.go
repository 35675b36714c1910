// Package config loads the options of the ctorgen command. Options come from
// defaults, then a YAML file, then command-line flags that were explicitly
// set.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/sublee/ctorgen/internal/ctorgen/plan"
)

// DefaultPath is the config file read when no path is given explicitly.
const DefaultPath = ".ctorgen.yaml"

// Config is the configuration of the ctorgen command.
type Config struct {
	// Output is the name of the generated file in each package.
	Output string `yaml:"output"`

	// Tags is the comma-separated build tags used in addition to "ctorgen".
	Tags string `yaml:"tags"`

	// Tests indicates whether test files are loaded.
	Tests bool `yaml:"tests"`

	// Convert lets basic-typed fields take type parameters which convert to
	// the field type, so untyped constants and named types are accepted.
	Convert bool `yaml:"convert"`

	// LowerArgs names arguments of unnamed options after their fields in
	// lower camel case.
	LowerArgs bool `yaml:"lowerArgs"`

	// Color is one of "auto", "always", and "never".
	Color string `yaml:"color"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Output:    "ctorgen_gen.go",
		Convert:   true,
		LowerArgs: true,
		Color:     "auto",
	}
}

// Load reads the config file at path over the defaults. If explicit is false,
// a missing file is not an error.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// decode overwrites the keys present in data. Unknown keys are rejected.
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the values which cannot be checked by their types.
func (c Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q: must be one of auto, always, never", c.Color)
	}
	if !strings.HasSuffix(c.Output, ".go") || strings.ContainsAny(c.Output, `/\`) {
		return fmt.Errorf("invalid output %q: must be a .go file name", c.Output)
	}
	return nil
}

// ApplyFlags overrides the configuration with the flags changed on the command
// line. Flags which are not defined in fs are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	if fs.Changed("output") {
		c.Output, err = fs.GetString("output")
		if err != nil {
			return err
		}
	}
	if fs.Changed("tags") {
		c.Tags, err = fs.GetString("tags")
		if err != nil {
			return err
		}
	}
	if fs.Changed("tests") {
		c.Tests, err = fs.GetBool("tests")
		if err != nil {
			return err
		}
	}
	if fs.Changed("color") {
		c.Color, err = fs.GetString("color")
		if err != nil {
			return err
		}
	}
	return c.Validate()
}

// Plan returns the planning part of the configuration.
func (c Config) Plan() plan.Config {
	return plan.Config{Convert: c.Convert, LowerArgs: c.LowerArgs}
}
