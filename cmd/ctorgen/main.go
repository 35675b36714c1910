// Command ctorgen generates constructors for the struct types marked with
// //ctorgen:generate in the given packages.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/sublee/ctorgen/internal/config"
	ctorgeninternal "github.com/sublee/ctorgen/internal/ctorgen"
)

var Version = "dev"

func init() {
	ctorgeninternal.Version = Version
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "ctorgen [flags] [packages]",
		Short: "Generate constructors for marked struct types",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}
			return run(cmd.Context(), cfg, verbose, args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("tags", "b", "", "comma-separated build tags")
	flags.BoolP("tests", "t", false, "include tests")
	flags.StringP("output", "o", "ctorgen_gen.go", "output file name")
	flags.StringP("color", "c", "auto", "colorize (auto|always|never)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug logs")
	flags.StringVar(&configPath, "config", config.DefaultPath, "config file")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("ctorgen", Version)
		},
	})
	return cmd
}

func run(ctx context.Context, cfg config.Config, verbose bool, patterns []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.InfoLevel})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	wd, err := os.Getwd()
	if err != nil {
		logger.Error("Failed to get working directory", "err", err)
		return err
	}

	color := false
	switch cfg.Color {
	case "auto":
		color = isatty()
	case "always":
		color = true
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	outs, err := ctorgeninternal.Main(ctx, wd, os.Environ(), ctorgeninternal.Options{
		Tags:   cfg.Tags,
		Tests:  cfg.Tests,
		Output: cfg.Output,
		Plan:   cfg.Plan(),
		Logger: logger,
	}, patterns)
	if err != nil {
		message := err.Error()
		if color {
			message = colorize(message)
		}
		fmt.Fprintln(os.Stderr, message)
		return err
	}

	var errs error
	for out, code := range outs {
		if err := os.WriteFile(out, code, 0o644); err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if relOut, err := filepath.Rel(wd, out); err == nil {
			out = relOut
		}
		logger.Info("Generated", "file", out)
	}
	if errs != nil {
		fmt.Fprintln(os.Stderr, errs)
	}
	return errs
}

// isatty reports whether the program is running in a terminal. If it is true,
// we can use ANSI color codes.
func isatty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

var (
	reTab  = regexp.MustCompile(`(?m)^\t.+`)
	reHelp = regexp.MustCompile(`^\thelp:.+`)
)

// colorize adds ANSI color codes to the message. Help lines are green and
// notes are dimmed.
func colorize(message string) string {
	const (
		green = "\033[32m"
		dim   = "\033[2m"
		reset = "\033[0m"
	)
	m := []byte(message)
	m = reTab.ReplaceAllFunc(m, func(b []byte) []byte {
		if reHelp.Match(b) {
			return []byte(green + string(b) + reset)
		}
		return []byte(dim + string(b) + reset)
	})
	return string(m)
}
