// ABOUTME: Root command: persistent flags, settings, logging, theme and keymap setup
// ABOUTME: Subcommands read the loaded state from the app struct

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mauromedda/popgrid/internal/config"
	"github.com/mauromedda/popgrid/internal/keybindings"
	"github.com/mauromedda/popgrid/internal/log"
	"github.com/mauromedda/popgrid/internal/scene"
	"github.com/mauromedda/popgrid/pkg/tui/theme"
)

type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app is the state shared by the subcommands.
type app struct {
	build  buildInfo
	stdout io.Writer
	stderr io.Writer

	configFile string
	projectDir string
	logLevel   string
	logFile    string

	settings *config.Settings
	theme    *theme.Theme
	keys     *keybindings.Manager
	logOut   io.Closer
}

func newRootCmd(info buildInfo, stdout, stderr io.Writer) *cobra.Command {
	a := &app{build: info, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "popgrid",
		Short: "Floating popup panels over a text grid",
		Long: `popgrid lays out and composites floating popup panels over a text grid.

A scene file describes base windows, popups and scripted input. Render it
headless, run it interactively, or watch it on the raw terminal while
editing the file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "read settings from this file only")
	pf.StringVar(&a.projectDir, "project", "", "directory holding popgrid.yaml (default: working directory)")
	pf.StringVar(&a.logLevel, "log-level", "", "override log_level (debug, info, warn, error)")
	pf.StringVar(&a.logFile, "log-file", "", "append logs to this file")

	root.AddCommand(
		newRenderCmd(a),
		newRunCmd(a),
		newWatchCmd(a),
		newKeysCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// interactive commands own the terminal, so logs only go to --log-file.
var interactive = map[string]bool{"run": true, "watch": true}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}

	var err error
	if a.configFile != "" {
		a.settings, err = config.LoadFile(a.configFile)
	} else {
		dir := a.projectDir
		if dir == "" {
			if dir, err = os.Getwd(); err != nil {
				return fmt.Errorf("working directory: %w", err)
			}
		}
		a.settings, err = config.Load(dir)
	}
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		a.settings.LogLevel = a.logLevel
		if err := a.settings.Validate(); err != nil {
			return err
		}
	}

	log.SetLevel(a.settings.Level())
	switch {
	case a.logFile != "":
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.logOut = f
		log.SetOutput(f)
	case interactive[cmd.Name()]:
		log.SetOutput(nil)
	default:
		log.SetOutput(a.stderr)
	}
	for _, f := range a.settings.Files() {
		log.Debug("config: read %s", f)
	}

	if a.theme, err = a.settings.LoadTheme(); err != nil {
		return err
	}
	theme.Set(a.theme)

	if a.keys, err = keybindings.New(a.settings.Keys); err != nil {
		return err
	}
	for _, c := range a.keys.Conflicts() {
		log.Warn("key %s is bound to %v", c.Key, c.Actions)
	}
	return nil
}

func (a *app) teardown() {
	if a.logOut != nil {
		log.SetOutput(a.stderr)
		_ = a.logOut.Close()
		a.logOut = nil
	}
}

// stageConfig derives the stage configuration from the settings. The
// settings grid applies when the scene has none.
func (a *app) stageConfig(sc *scene.Scene) scene.Config {
	s := a.settings
	cfg := scene.Config{
		CmdlineRows: s.CmdlineRows,
		ZIndex:      s.ZIndex,
		Popup:       s.PopupConfig(),
	}
	if sc.Grid == nil {
		cfg.Rows, cfg.Cols = s.Grid.Rows, s.Grid.Cols
	}
	return cfg
}
