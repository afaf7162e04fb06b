package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dateentry/internal/clierr"
	"github.com/twiced-technology-gmbh/dateentry/internal/config"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a picker config",
	Long: `Creates a .dateentry directory holding config.yml in the current directory,
or in the per-user config directory with --global.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("label", "", "field label (default \"Date\")")
	initCmd.Flags().String("hint", "", "helper text shown under the label")
	initCmd.Flags().Bool("global", false, "initialize the per-user config instead")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir, err := initDir(cmd)
	if err != nil {
		return err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.InvalidInput, "config already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	cfg := config.NewDefault()
	cfg.SetDir(absDir)
	if label, _ := cmd.Flags().GetString("label"); label != "" {
		cfg.Label = label
	}
	cfg.Hint, _ = cmd.Flags().GetString("hint")
	if err := applyWeekStart(cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	const dirMode = 0o750
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":     "initialized",
			"dir":        absDir,
			"config":     cfg.ConfigPath(),
			"label":      cfg.Label,
			"week_start": cfg.WeekStart,
		})
	}

	output.Messagef(os.Stdout, "Initialized dateentry in %s", absDir)
	output.Messagef(os.Stdout, "  Config:     %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Label:      %s", cfg.Label)
	output.Messagef(os.Stdout, "  Week start: %s", cfg.WeekStart)
	return nil
}

func initDir(cmd *cobra.Command) (string, error) {
	if global, _ := cmd.Flags().GetBool("global"); global {
		return config.UserDir()
	}
	if flagDir != "" {
		return flagDir, nil
	}
	return config.DefaultDir, nil
}
