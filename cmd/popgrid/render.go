// ABOUTME: render command: stage a scene headless, replay its events and print the grid
// ABOUTME: Output is plain text unless --ansi; results and notices can be appended

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mauromedda/popgrid/internal/eventbus"
	"github.com/mauromedda/popgrid/internal/scene"
	"github.com/mauromedda/popgrid/pkg/popup"
)

type renderOptions struct {
	rows     int
	cols     int
	fit      bool
	ansi     bool
	noEvents bool
	results  bool
	notices  bool
}

func newRenderCmd(a *app) *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "render SCENE",
		Short: "Render a scene to stdout",
		Long: `Stage a scene without a terminal, replay its scripted events and print
the composed grid.

Examples:
  popgrid render demo.yaml
  popgrid render demo.yaml --rows 20 --cols 60 --results
  popgrid render demo.yaml --fit --ansi`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(args[0], o)
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.rows, "rows", 0, "grid rows (default: scene grid, then settings)")
	f.IntVar(&o.cols, "cols", 0, "grid columns")
	f.BoolVar(&o.fit, "fit", false, "use the size of the terminal on stdout")
	f.BoolVar(&o.ansi, "ansi", false, "style the output with the theme")
	f.BoolVar(&o.noEvents, "no-events", false, "do not replay the scene events")
	f.BoolVar(&o.results, "results", false, "print popup close results")
	f.BoolVar(&o.notices, "notices", false, "print popup lifecycle notices")
	return cmd
}

const noticeHistory = 1024

func (a *app) render(path string, o renderOptions) error {
	sc, err := scene.Load(path)
	if err != nil {
		return err
	}
	cfg := a.stageConfig(sc)
	if o.fit {
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return fmt.Errorf("--fit: %w", err)
		}
		cfg.Rows, cfg.Cols = rows, cols
	}
	if o.rows > 0 {
		cfg.Rows = o.rows
	}
	if o.cols > 0 {
		cfg.Cols = o.cols
	}
	bus := eventbus.NewWithHistory[popup.Notice](noticeHistory)
	cfg.Notices = bus

	st, err := scene.New(sc, cfg)
	if err != nil {
		return err
	}
	if !o.noEvents {
		if err := st.Replay(sc.Events); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if o.ansi {
		fmt.Fprintln(a.stdout, strings.Join(st.Lines(a.theme), "\n"))
	} else {
		fmt.Fprintln(a.stdout, st.String())
	}
	if o.results {
		fmt.Fprintln(a.stdout)
		for _, r := range st.Results() {
			fmt.Fprintln(a.stdout, r)
		}
	}
	if o.notices {
		fmt.Fprintln(a.stdout)
		for _, n := range bus.History() {
			fmt.Fprintf(a.stdout, "%s %d %dx%d+%d+%d\n", n.Kind, n.ID, n.Rect.Width, n.Rect.Height, n.Rect.Col, n.Rect.Row)
		}
	}
	return nil
}
