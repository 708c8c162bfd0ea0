// ABOUTME: watch command: show a scene on the raw terminal and reload it on save
// ABOUTME: Uses the differential renderer directly instead of Bubble Tea

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mauromedda/popgrid/internal/host"
	"github.com/mauromedda/popgrid/internal/scene"
	"github.com/mauromedda/popgrid/pkg/tui/terminal"
)

var errNoTerminal = errors.New("stdout is not a terminal")

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch SCENE",
		Short: "Preview a scene on the terminal and reload it on save",
		Long: `Show a scene full screen with the built-in renderer. Saving the scene
file or the config reloads it; ctrl+q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !terminal.IsTerminal() {
				return errNoTerminal
			}
			path := args[0]
			sc, err := scene.Load(path)
			if err != nil {
				return err
			}
			pt := terminal.NewProcessTerminal()
			defer terminal.RestoreOnPanic(pt)

			l, err := host.NewLive(pt, sc, host.Options{
				Stage: a.stageConfig(sc),
				Keys:  a.keys,
				Theme: a.theme,
				Load:  func() (*scene.Scene, error) { return scene.Load(path) },
			})
			if err != nil {
				return err
			}
			watched := append([]string{path}, a.settings.Files()...)
			if err := l.Run(cmd.Context(), watched); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			for _, r := range l.Results() {
				fmt.Fprintln(a.stdout, r)
			}
			return nil
		},
	}
}
