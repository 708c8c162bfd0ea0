// ABOUTME: Tests for settings loading, project merge, env overrides and validation
// ABOUTME: Uses temp directories and XDG_CONFIG_HOME so the user's files are never read

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// isolate points the global config dir at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	return xdg
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	s, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default().Borders, s.Borders)
	assert.Equal(t, popup.DefaultZIndex, s.ZIndex)
	assert.Equal(t, 1, s.CmdlineRows)
	assert.Equal(t, Grid{Rows: 24, Cols: 80}, s.Grid)
	assert.Empty(t, s.Files())
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	xdg := isolate(t)
	project := t.TempDir()

	writeFile(t, filepath.Join(xdg, "popgrid", "popgrid.yaml"), "borders: ascii\ncmdline_rows: 2\ntheme: dark\n")
	writeFile(t, ProjectConfigFile(project), "cmdline_rows: 3\ngrid:\n  rows: 10\n")

	s, err := Load(project)
	require.NoError(t, err)
	assert.Equal(t, BordersASCII, s.Borders, "global value kept")
	assert.Equal(t, 3, s.CmdlineRows, "project wins")
	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, 10, s.Grid.Rows)
	assert.Equal(t, 80, s.Grid.Cols, "unset nested key keeps its default")
	assert.Len(t, s.Files(), 2)
	assert.True(t, s.PopupConfig().ASCIIBorders)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("POPGRID_BORDERS", "ASCII")
	t.Setenv("POPGRID_GRID_COLS", "132")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BordersASCII, s.Borders)
	assert.Equal(t, 132, s.Grid.Cols)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad borders", content: "borders: double\n"},
		{name: "bad level", content: "log_level: loud\n"},
		{name: "negative cmdline", content: "cmdline_rows: -1\n"},
		{name: "empty grid", content: "grid:\n  rows: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			project := t.TempDir()
			writeFile(t, ProjectConfigFile(project), tt.content)
			_, err := Load(project)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		isolate(t)
		project := t.TempDir()
		writeFile(t, ProjectConfigFile(project), "borders: [unclosed\n")
		_, err := Load(project)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project config")
	})
}

func TestNormalize_ZIndex(t *testing.T) {
	t.Parallel()

	s := Default()
	s.ZIndex = 0
	s.normalize()
	assert.Equal(t, popup.DefaultZIndex, s.ZIndex)

	s.ZIndex = popup.MaxZIndex + 5
	s.normalize()
	assert.Equal(t, popup.MaxZIndex, s.ZIndex)
}

func TestLoadTheme(t *testing.T) {
	isolate(t)

	s := Default()
	th, err := s.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, "default", th.Name)

	s.Theme = "solarized"
	_, err = s.LoadTheme()
	require.ErrorIs(t, err, theme.ErrUnknownTheme)

	dir := t.TempDir()
	path := filepath.Join(dir, "mine.yaml")
	writeFile(t, path, "name: mine\ngroups:\n  Pmenu:\n    fg: \"#ffffff\"\n")
	s.ThemeFile = path
	th, err = s.LoadTheme()
	require.NoError(t, err)
	assert.Equal(t, "mine", th.Name)
}
