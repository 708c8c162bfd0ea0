// ABOUTME: Standard filesystem paths for popgrid configuration
// ABOUTME: Resolves $XDG_CONFIG_HOME/popgrid (or ~/.config/popgrid) and the project file

package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "popgrid"
	configBaseName = "popgrid"
	configType     = "yaml"
)

// GlobalDir returns the user-global config directory.
func GlobalDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName)
	}
	return filepath.Join(home, ".config", appName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configBaseName+"."+configType)
}

// ProjectConfigFile returns the path to the project config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(projectRoot, configBaseName+"."+configType)
}

// ThemesDir returns the directory searched for theme files given by name.
func ThemesDir() string {
	return filepath.Join(GlobalDir(), "themes")
}
