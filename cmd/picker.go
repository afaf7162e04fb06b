package cmd

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/dateentry/internal/clierr"
	"github.com/twiced-technology-gmbh/dateentry/internal/config"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
	"github.com/twiced-technology-gmbh/dateentry/internal/tui"
	"github.com/twiced-technology-gmbh/dateentry/internal/watcher"
)

func init() {
	rootCmd.Flags().String("value", "", "initial value (dd/mm/yyyy, partial like dd/03/yyyy, or YYYY-MM-DD)")
	rootCmd.Flags().String("label", "", "field label")
	rootCmd.Flags().String("hint", "", "hint shown under the label")
	rootCmd.Flags().Bool("touch", false, "touch input mode (no space toggle, tapping the field opens the calendar)")
	rootCmd.Flags().Bool("no-calendar-button", false, "hide the calendar button and disable the space toggle")
	rootCmd.Flags().Bool("no-history", false, "do not record this session in the activity log")
}

func runPicker(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return clierr.New(clierr.NotATerminal, "dateentry needs an interactive terminal (use 'dateentry normalize' in scripts)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyPickerFlags(cmd, cfg); err != nil {
		return err
	}

	model := tui.NewPicker(cfg)
	model.SetReloader(func() (*config.Config, error) {
		fresh, err := config.Load(cfg.Dir())
		if err != nil {
			return nil, err
		}
		if err := applyWeekStart(fresh); err != nil {
			return nil, err
		}
		return fresh, applyPickerFlags(cmd, fresh)
	})

	// The UI draws on stderr so stdout carries only the result.
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithOutput(os.Stderr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startConfigWatcher(ctx, model, p)

	if _, err := p.Run(); err != nil {
		return err
	}

	if !model.Submitted() {
		if outputFormat() == output.FormatJSON {
			return clierr.New(clierr.Cancelled, "no date chosen")
		}
		return &clierr.SilentError{Code: 1}
	}
	return output.Value(os.Stdout, outputFormat(), output.NewResult(model.Editor().Masked()))
}

// applyPickerFlags layers explicitly set picker flags over cfg without
// saving them.
func applyPickerFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("value") {
		raw, _ := flags.GetString("value")
		v, err := parseValueArg(raw)
		if err != nil {
			return err
		}
		cfg.Value = v
	}
	if flags.Changed("label") {
		cfg.Label, _ = flags.GetString("label")
	}
	if flags.Changed("hint") {
		cfg.Hint, _ = flags.GetString("hint")
	}
	if flags.Changed("touch") {
		cfg.Touch, _ = flags.GetBool("touch")
	}
	if off, _ := flags.GetBool("no-calendar-button"); off {
		cfg.ShowCalendarButton = new(bool)
	}
	if off, _ := flags.GetBool("no-history"); off {
		cfg.History = new(bool)
	}
	return nil
}

func startConfigWatcher(ctx context.Context, model *tui.Picker, p *tea.Program) {
	w, err := watcher.New(model.WatchDir(), []string{config.ConfigFileName}, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: the picker works without live reload
	}
	defer w.Close()
	w.Run(ctx, nil)
}
