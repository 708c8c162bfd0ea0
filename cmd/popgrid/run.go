// ABOUTME: run command: host a scene in a Bubble Tea program with hot reload
// ABOUTME: A file watcher feeds reloads into the program; results print on exit

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/popgrid/internal/config"
	"github.com/mauromedda/popgrid/internal/host"
	"github.com/mauromedda/popgrid/internal/log"
	"github.com/mauromedda/popgrid/internal/scene"
)

func newRunCmd(a *app) *cobra.Command {
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "run SCENE",
		Short: "Run a scene interactively",
		Long: `Open a scene in a full-screen program. Popups take keys and mouse drags
first; press ? for the keymap. The scene reloads when the file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[0], !noWatch)
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload on file changes")
	return cmd
}

func (a *app) run(ctx context.Context, path string, watch bool) error {
	sc, err := scene.Load(path)
	if err != nil {
		return err
	}
	load := func() (*scene.Scene, error) { return scene.Load(path) }
	m, err := host.New(sc, host.Options{
		Stage: a.stageConfig(sc),
		Keys:  a.keys,
		Theme: a.theme,
		Load:  load,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	ready := make(chan func(tea.Msg), 1)

	var final host.Model
	g.Go(func() error {
		defer cancel()
		var err error
		final, err = host.Run(m, func(send func(tea.Msg)) { ready <- send }, tea.WithContext(ctx))
		return err
	})
	if watch {
		g.Go(func() error {
			var send func(tea.Msg)
			select {
			case send = <-ready:
			case <-ctx.Done():
				return nil
			}
			w := config.NewWatcher([]string{path}, func(string) {
				sc, err := load()
				if err != nil {
					send(host.ErrMsg{Err: err})
					return
				}
				log.Info("run: reloaded %s", path)
				send(host.ReloadMsg{Scene: sc})
			})
			return w.Run(ctx)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range final.Results() {
		fmt.Fprintln(a.stdout, r)
	}
	return nil
}
