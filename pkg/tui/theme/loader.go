// ABOUTME: YAML theme files: a base theme plus highlight group overrides
// ABOUTME: Colors and links are validated; groups not listed inherit from the base

package theme

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

type yamlTheme struct {
	Name    string          `yaml:"name"`
	Extends string          `yaml:"extends"`
	Groups  map[string]Spec `yaml:"groups"`
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validColor(c string) bool {
	if c == "" || hexColor.MatchString(c) {
		return true
	}
	n, err := strconv.Atoi(c)
	return err == nil && n >= 0 && n <= 255
}

// Parse decodes a YAML theme. The base is the builtin named by "extends",
// or the default theme.
func Parse(data []byte) (*Theme, error) {
	var yt yamlTheme
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return nil, fmt.Errorf("parsing theme: %w", err)
	}

	base := Default()
	if yt.Extends != "" {
		if base = Builtin(yt.Extends); base == nil {
			return nil, fmt.Errorf("extends %q: %w", yt.Extends, ErrUnknownTheme)
		}
	}
	groups := base.Groups()
	for name, s := range yt.Groups {
		if !validColor(s.Fg) || !validColor(s.Bg) {
			return nil, fmt.Errorf("group %s: %w: fg=%q bg=%q", name, ErrBadColor, s.Fg, s.Bg)
		}
		groups[name] = s
	}

	name := yt.Name
	if name == "" {
		name = base.Name
	}
	t := New(name, groups)
	for g := range groups {
		if _, err := t.resolve(g); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// LoadFile reads a YAML theme file.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
