package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dateentry/internal/clierr"
	"github.com/twiced-technology-gmbh/dateentry/internal/config"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

func TestNormalizeFlag(t *testing.T) {
	for in, want := range map[string]string{
		"first-day":  "week-start",
		"weekstart":  "week-start",
		"initial":    "value",
		"default":    "value",
		"no-button":  "no-calendar-button",
		"label":      "label",
		"week-start": "week-start",
	} {
		assert.Equal(t, want, string(normalizeFlag(nil, in)), in)
	}
}

func TestParseValueArg(t *testing.T) {
	got, err := parseValueArg("dd/03/yyyy")
	require.NoError(t, err)
	assert.Equal(t, "dd/03/yyyy", got)

	got, err = parseValueArg("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "29/02/2024", got)

	_, err = parseValueArg("tomorrow")
	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.InvalidDate, cliErr.Code)
}

func TestConfigKeysHaveAccessors(t *testing.T) {
	accessors := configAccessors()
	assert.Len(t, accessors, len(allConfigKeys()))
	for _, k := range allConfigKeys() {
		_, ok := accessors[k]
		assert.True(t, ok, k)
	}
	assert.False(t, accessors["version"].writable)
}

func TestConfigAccessorsSet(t *testing.T) {
	cfg := config.NewDefault()
	acc := configAccessors()

	require.NoError(t, acc["week_start"].set(cfg, "Mon"))
	assert.Equal(t, "monday", cfg.WeekStart)

	require.NoError(t, acc["show_calendar_button"].set(cfg, "false"))
	assert.Equal(t, false, acc["show_calendar_button"].get(cfg))

	require.NoError(t, acc["value"].set(cfg, "2023-11-23"))
	assert.Equal(t, "23/11/2023", cfg.Value)

	err := acc["touch"].set(cfg, "maybe")
	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.InvalidInput, cliErr.Code)

	require.NoError(t, acc["theme.today"].set(cfg, "99"))
	assert.Equal(t, "99", acc["theme.today"].get(cfg))
	require.NoError(t, cfg.Validate())
}

func TestFormatConfigValue(t *testing.T) {
	assert.Equal(t, "--", formatConfigValue(""))
	assert.Equal(t, "Date", formatConfigValue("Date"))
	assert.Equal(t, "true", formatConfigValue(true))
	assert.Equal(t, "2", formatConfigValue(2))
}

func realPath(t *testing.T, p string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return r
}

func TestResolveDir(t *testing.T) {
	t.Cleanup(func() { flagDir = "" })

	flagDir = "/srv/picker"
	got, err := resolveDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/picker", got)

	flagDir = ""
	root := t.TempDir()
	cfg, err := config.Init(filepath.Join(root, config.DefaultDir))
	require.NoError(t, err)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	got, err = resolveDir()
	require.NoError(t, err)
	assert.Equal(t, realPath(t, cfg.Dir()), realPath(t, got))
}

func TestHistoryDoesNotCreateConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(output.EnvVar, "")
	t.Chdir(t.TempDir())

	require.NoError(t, runHistory(historyCmd, nil))

	userDir, err := config.UserDir()
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(userDir, config.ConfigFileName))
	assert.True(t, os.IsNotExist(err))
}
