// ABOUTME: version and config commands: build information and effective settings
// ABOUTME: config lists the files that were merged, global first

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(a.stdout, "popgrid %s (%s) built %s\n", a.build.Version, a.build.Commit, a.build.Date)
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings and the files they came from",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s := a.settings
			files := s.Files()
			if len(files) == 0 {
				files = []string{"(defaults)"}
			}
			fmt.Fprintf(a.stdout, "files:        %s\n", strings.Join(files, ", "))
			fmt.Fprintf(a.stdout, "log_level:    %s\n", s.LogLevel)
			fmt.Fprintf(a.stdout, "borders:      %s\n", s.Borders)
			fmt.Fprintf(a.stdout, "zindex:       %d\n", s.ZIndex)
			fmt.Fprintf(a.stdout, "cmdline_rows: %d\n", s.CmdlineRows)
			fmt.Fprintf(a.stdout, "grid:         %dx%d\n", s.Grid.Rows, s.Grid.Cols)
			theme := s.Theme
			if s.ThemeFile != "" {
				theme = s.ThemeFile
			}
			fmt.Fprintf(a.stdout, "theme:        %s\n", theme)
			actions := make([]string, 0, len(s.Keys))
			for k := range s.Keys {
				actions = append(actions, k)
			}
			slices.Sort(actions)
			for _, k := range actions {
				fmt.Fprintf(a.stdout, "keys.%s: %s\n", k, strings.Join(s.Keys[k], ", "))
			}
			return nil
		},
	}
}
