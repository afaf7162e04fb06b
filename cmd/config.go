package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dateentry/internal/clierr"
	"github.com/twiced-technology-gmbh/dateentry/internal/config"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify picker configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	accessors := baseConfigAccessors()
	addThemeAccessors(accessors)
	return accessors
}

func baseConfigAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"label": {
			get:      func(c *config.Config) any { return c.Label },
			set:      func(c *config.Config, v string) error { c.Label = v; return nil },
			writable: true,
		},
		"hint": {
			get:      func(c *config.Config) any { return c.Hint },
			set:      func(c *config.Config, v string) error { c.Hint = v; return nil },
			writable: true,
		},
		"value": {
			get: func(c *config.Config) any { return c.Value },
			set: func(c *config.Config, v string) error {
				if v == "" {
					c.Value = ""
					return nil
				}
				masked, err := parseValueArg(v)
				if err != nil {
					return err
				}
				c.Value = masked
				return nil
			},
			writable: true,
		},
		"week_start": {
			get: func(c *config.Config) any { return c.WeekStart },
			set: func(c *config.Config, v string) error {
				d, err := config.ParseWeekday(v)
				if err != nil {
					return err
				}
				c.WeekStart = strings.ToLower(d.String())
				return nil
			},
			writable: true,
		},
		"show_calendar_button": {
			get: func(c *config.Config) any { return c.CalendarButton() },
			set: func(c *config.Config, v string) error {
				b, err := parseBoolValue("show_calendar_button", v)
				if err != nil {
					return err
				}
				c.ShowCalendarButton = &b
				return nil
			},
			writable: true,
		},
		"touch": {
			get: func(c *config.Config) any { return c.Touch },
			set: func(c *config.Config, v string) error {
				b, err := parseBoolValue("touch", v)
				if err != nil {
					return err
				}
				c.Touch = b
				return nil
			},
			writable: true,
		},
		"history": {
			get: func(c *config.Config) any { return c.HistoryEnabled() },
			set: func(c *config.Config, v string) error {
				b, err := parseBoolValue("history", v)
				if err != nil {
					return err
				}
				c.History = &b
				return nil
			},
			writable: true,
		},
	}
}

func addThemeAccessors(accessors map[string]configAccessor) {
	colors := map[string]func(*config.ThemeConfig) *string{
		"selected": func(t *config.ThemeConfig) *string { return &t.Selected },
		"today":    func(t *config.ThemeConfig) *string { return &t.Today },
		"dim":      func(t *config.ThemeConfig) *string { return &t.Dim },
		"error":    func(t *config.ThemeConfig) *string { return &t.Error },
	}
	for name, field := range colors {
		accessors["theme."+name] = configAccessor{
			get: func(c *config.Config) any {
				t := c.ThemeColors()
				return *field(&t)
			},
			set: func(c *config.Config, v string) error {
				*field(&c.Theme) = v
				return nil // validation checks the color
			},
			writable: true,
		}
	}
}

func parseBoolValue(key, v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be true or false", key, v)
	}
	return b, nil
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"label",
		"hint",
		"value",
		"week_start",
		"show_calendar_button",
		"touch",
		"history",
		"theme.selected",
		"theme.today",
		"theme.dim",
		"theme.error",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-22s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
