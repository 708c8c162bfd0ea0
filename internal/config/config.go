// ABOUTME: Settings loading with viper: global file, project file merge, POPGRID_* env overrides
// ABOUTME: Settings feed the popup manager, the screen and the theme

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mauromedda/popgrid/internal/log"
	"github.com/mauromedda/popgrid/pkg/popup"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
)

// Border styles.
const (
	BordersUnicode = "unicode"
	BordersASCII   = "ascii"
)

// ErrInvalid reports a setting with a value outside its domain.
var ErrInvalid = errors.New("invalid setting")

// Settings holds the merged configuration.
type Settings struct {
	LogLevel    string              `mapstructure:"log_level"`
	Borders     string              `mapstructure:"borders"`
	ZIndex      int                 `mapstructure:"zindex"`
	CmdlineRows int                 `mapstructure:"cmdline_rows"`
	Theme       string              `mapstructure:"theme"`
	ThemeFile   string              `mapstructure:"theme_file"`
	Grid        Grid                `mapstructure:"grid"`
	Keys        map[string][]string `mapstructure:"keys"`

	// used is the list of files that were read, global first.
	used []string
}

// Grid is the size used when no terminal is attached.
type Grid struct {
	Rows int `mapstructure:"rows"`
	Cols int `mapstructure:"cols"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("borders", BordersUnicode)
	v.SetDefault("zindex", popup.DefaultZIndex)
	v.SetDefault("cmdline_rows", 1)
	v.SetDefault("theme", "default")
	v.SetDefault("theme_file", "")
	v.SetDefault("grid.rows", 24)
	v.SetDefault("grid.cols", 80)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configBaseName)
	v.SetConfigType(configType)
	v.AddConfigPath(GlobalDir())
	v.SetEnvPrefix("POPGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads the global config, merges the project config in
// projectRoot over it and applies POPGRID_* environment overrides.
// Missing files are not an error.
func Load(projectRoot string) (*Settings, error) {
	v := newViper()
	var used []string

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("loading global config: %w", err)
		}
	} else {
		used = append(used, v.ConfigFileUsed())
	}

	if projectRoot != "" {
		project := ProjectConfigFile(projectRoot)
		if _, err := os.Stat(project); err == nil {
			v.SetConfigFile(project)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("loading project config %s: %w", project, err)
			}
			used = append(used, project)
		}
	}

	return decode(v, used)
}

// LoadFile reads a single config file with environment overrides.
func LoadFile(path string) (*Settings, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return decode(v, []string{path})
}

func decode(v *viper.Viper, used []string) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	s.used = used
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		LogLevel:    "info",
		Borders:     BordersUnicode,
		ZIndex:      popup.DefaultZIndex,
		CmdlineRows: 1,
		Theme:       "default",
		Grid:        Grid{Rows: 24, Cols: 80},
	}
}

func (s *Settings) normalize() {
	s.Borders = strings.ToLower(strings.TrimSpace(s.Borders))
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if s.ZIndex < 1 {
		s.ZIndex = popup.DefaultZIndex
	}
	s.ZIndex = min(s.ZIndex, popup.MaxZIndex)
}

// Validate checks every setting and joins the failures.
func (s *Settings) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log_level: %w", ErrInvalid, err))
	}
	if s.Borders != BordersUnicode && s.Borders != BordersASCII {
		errs = append(errs, fmt.Errorf("%w: borders %q, want %s or %s", ErrInvalid, s.Borders, BordersUnicode, BordersASCII))
	}
	if s.CmdlineRows < 0 {
		errs = append(errs, fmt.Errorf("%w: cmdline_rows %d", ErrInvalid, s.CmdlineRows))
	}
	if s.Grid.Rows < 1 || s.Grid.Cols < 1 {
		errs = append(errs, fmt.Errorf("%w: grid %dx%d", ErrInvalid, s.Grid.Rows, s.Grid.Cols))
	}
	return errors.Join(errs...)
}

// Files returns the config files that were read, global first.
func (s *Settings) Files() []string { return s.used }

// Level returns the parsed log level.
func (s *Settings) Level() slog.Level {
	l, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.LevelInfo
	}
	return l
}

// PopupConfig returns the manager configuration the settings control.
// The caller fills in the host, cursor source and grid size.
func (s *Settings) PopupConfig() popup.Config {
	return popup.Config{
		ASCIIBorders: s.Borders == BordersASCII,
		Logger:       log.Component("popup"),
	}
}

// LoadTheme resolves the theme: theme_file wins over the builtin name. A
// relative theme_file is looked up in ThemesDir.
func (s *Settings) LoadTheme() (*theme.Theme, error) {
	if s.ThemeFile != "" {
		path := s.ThemeFile
		if !filepath.IsAbs(path) {
			if _, err := os.Stat(path); err != nil {
				path = filepath.Join(ThemesDir(), path)
			}
		}
		return theme.LoadFile(path)
	}
	th := theme.Builtin(s.Theme)
	if th == nil {
		return nil, fmt.Errorf("%w: %q (have %s)", theme.ErrUnknownTheme, s.Theme, strings.Join(theme.BuiltinNames(), ", "))
	}
	return th, nil
}
