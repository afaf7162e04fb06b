package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/dateentry/internal/clierr"
	"github.com/twiced-technology-gmbh/dateentry/internal/dateinput"
	"github.com/twiced-technology-gmbh/dateentry/internal/filelock"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no dateentry config found (run 'dateentry init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the date picker configuration.
type Config struct {
	Version            int         `yaml:"version"`
	Label              string      `yaml:"label"`
	Hint               string      `yaml:"hint,omitempty"`
	Value              string      `yaml:"value,omitempty"`
	WeekStart          string      `yaml:"week_start"`
	ShowCalendarButton *bool       `yaml:"show_calendar_button,omitempty"`
	Touch              bool        `yaml:"touch,omitempty"`
	History            *bool       `yaml:"history,omitempty"`
	Theme              ThemeConfig `yaml:"theme,omitempty"`

	// dir is the absolute path to the config directory (not serialized).
	dir string `yaml:"-"`
}

// ThemeConfig holds ANSI 256 color codes for the picker.
type ThemeConfig struct {
	Selected string `yaml:"selected,omitempty" json:"selected,omitempty"`
	Today    string `yaml:"today,omitempty" json:"today,omitempty"`
	Dim      string `yaml:"dim,omitempty" json:"dim,omitempty"`
	Error    string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Dir returns the absolute path to the config directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the config directory path.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// LockPath returns the path of the advisory lock guarding the directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.dir, LockFileName)
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:            CurrentVersion,
		Label:              DefaultLabel,
		WeekStart:          DefaultWeekStart,
		ShowCalendarButton: boolPtr(true),
		History:            boolPtr(true),
		Theme:              DefaultTheme,
	}
}

// CalendarButton reports whether the calendar toggle is enabled. Defaults to true.
func (c *Config) CalendarButton() bool {
	if c.ShowCalendarButton == nil {
		return true
	}
	return *c.ShowCalendarButton
}

// HistoryEnabled reports whether picker activity is logged. Defaults to true.
func (c *Config) HistoryEnabled() bool {
	if c.History == nil {
		return true
	}
	return *c.History
}

// WeekStartDay returns the configured first day of the week, or Sunday when
// the setting is unparseable.
func (c *Config) WeekStartDay() time.Weekday {
	d, err := ParseWeekday(c.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return d
}

// ThemeColors returns the theme with unset colors filled from DefaultTheme.
func (c *Config) ThemeColors() ThemeConfig {
	t := c.Theme
	if t.Selected == "" {
		t.Selected = DefaultTheme.Selected
	}
	if t.Today == "" {
		t.Today = DefaultTheme.Today
	}
	if t.Dim == "" {
		t.Dim = DefaultTheme.Dim
	}
	if t.Error == "" {
		t.Error = DefaultTheme.Error
	}
	return t
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("%w: label is required", ErrInvalid)
	}
	if _, err := ParseWeekday(c.WeekStart); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Value != "" {
		if _, ok := dateinput.ParseValue(c.Value); !ok {
			return fmt.Errorf("%w: value %q is not in dd/mm/yyyy form", ErrInvalid, c.Value)
		}
	}
	return c.validateTheme()
}

func (c *Config) validateTheme() error {
	const maxColor = 255
	for name, v := range map[string]string{
		"selected": c.Theme.Selected,
		"today":    c.Theme.Today,
		"dim":      c.Theme.Dim,
		"error":    c.Theme.Error,
	} {
		if v == "" || strings.HasPrefix(v, "#") {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxColor {
			return fmt.Errorf("%w: theme.%s %q must be 0-255 or #rrggbb", ErrInvalid, name, v)
		}
	}
	return nil
}

// ParseWeekday accepts an English weekday name, its three-letter prefix or a
// number 0..6 (0 = Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n <= int(time.Saturday) {
			return time.Weekday(n), nil
		}
		return 0, clierr.Newf(clierr.InvalidWeekStart, "week start %d out of range 0-6", n)
	}
	const prefix = 3
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == prefix && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, clierr.Newf(clierr.InvalidWeekStart, "invalid week start %q", s)
}

// Init writes a default config into dir, creating the directory.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file while holding the directory lock.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return filelock.With(c.LockPath(), func() error {
		return os.WriteFile(c.ConfigPath(), data, fileMode)
	})
}

// Load reads and validates a config from the given directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a directory containing
// .dateentry/config.yml. Returns the absolute path to the config directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.ConfigNotFound,
				"no dateentry config found (run 'dateentry init' to create one)")
		}
		dir = parent
	}
}

// UserDir returns the per-user config directory, ~/.config/dateentry.
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// LoadOrInit resolves the config directory for startDir: the nearest
// .dateentry directory, else the per-user directory, which is initialized
// with defaults on first use.
func LoadOrInit(startDir string) (*Config, error) {
	if dir, err := FindDir(startDir); err == nil {
		return Load(dir)
	}

	dir, err := UserDir()
	if err != nil {
		return nil, err
	}
	cfg, err := Load(dir)
	if errors.Is(err, ErrNotFound) {
		return Init(dir)
	}
	return cfg, err
}
