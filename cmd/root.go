// Package cmd implements the dateentry CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/dateentry/internal/clierr"
	"github.com/twiced-technology-gmbh/dateentry/internal/config"
	"github.com/twiced-technology-gmbh/dateentry/internal/date"
	"github.com/twiced-technology-gmbh/dateentry/internal/dateinput"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON      bool
	flagTable     bool
	flagCompact   bool
	flagDir       string
	flagNoColor   bool
	flagWeekStart string
)

var rootCmd = &cobra.Command{
	Use:   "dateentry",
	Short: "Keyboard-driven dd/mm/yyyy date picker for the terminal",
	Long: `dateentry asks for a date. Type it segment by segment, step fields with the
arrow keys, paste an ISO or dd/mm/yyyy date, or pick one from the month grid.
The chosen date is printed to stdout, so it composes with shell scripts:

  due=$(dateentry --label "Due date")`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runPicker,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the config directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagWeekStart, "week-start", "", "first day of the calendar week (sunday..saturday or 0-6)")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlag)
}

// normalizeFlag maps accepted spellings onto canonical flag names.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "first-day", "weekstart":
		name = "week-start"
	case "initial", "default":
		name = "value"
	case "no-button":
		name = "no-calendar-button"
	}
	return pflag.NormalizedName(name)
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError: exit with its code, print nothing.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	jsonMode := flagJSON
	if !jsonMode {
		f, _ := output.ParseFormat(os.Getenv(output.EnvVar))
		jsonMode = f == output.FormatJSON
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error: report as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// resolveDir returns the config directory named by --dir, the nearest
// .dateentry directory, or the per-user directory.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	if dir, err := config.FindDir(cwd); err == nil {
		return dir, nil
	}
	return config.UserDir()
}

// loadConfig finds and loads the config, applying --week-start. The
// per-user directory is created with defaults on first use.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flagDir != "" {
		cfg, err = config.Load(flagDir)
	} else {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return nil, fmt.Errorf("getting working directory: %w", cwdErr)
		}
		cfg, err = config.LoadOrInit(cwd)
	}
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, clierr.New(clierr.ConfigNotFound, err.Error()).
				WithDetails(map[string]any{"dir": flagDir})
		}
		return nil, err
	}

	if err := applyWeekStart(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyWeekStart(cfg *config.Config) error {
	if flagWeekStart == "" {
		return nil
	}
	if _, err := config.ParseWeekday(flagWeekStart); err != nil {
		return err
	}
	cfg.WeekStart = flagWeekStart
	return nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// parseDateArg reads a command-line date in ISO or dd/mm/yyyy form.
func parseDateArg(s string) (date.Date, error) {
	d, err := date.ParseAny(s)
	if err != nil {
		return date.Date{}, clierr.Newf(clierr.InvalidDate, "invalid date %q (expected YYYY-MM-DD or dd/mm/yyyy)", s).
			WithDetails(map[string]any{"input": s})
	}
	return d, nil
}

// parseValueArg accepts a masked value (fields may be placeholders) or any
// date parseDateArg reads, and returns it in dd/mm/yyyy form.
func parseValueArg(s string) (string, error) {
	if v, ok := dateinput.ParseValue(s); ok {
		return v.String(), nil
	}
	d, err := parseDateArg(s)
	if err != nil {
		return "", err
	}
	return d.Masked(), nil
}
