// ABOUTME: Tests for scene parsing and validation
// ABOUTME: Covers strict fields, moved keyword and range forms, and event shape checks

package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauromedda/popgrid/pkg/popup"
)

func TestParse_Full(t *testing.T) {
	t.Parallel()

	sc, err := Parse([]byte(`
grid: {rows: 10, cols: 40}
cmdline: ":help"
header: ["title"]
windows:
  - id: 1
    name: main
    height: 3
    lines: [a, b]
    cursor: [2, 0]
    focus: true
popups:
  - name: doc
    kind: cursor
    text: [hello]
    options:
      border: []
      moved: WORD
  - name: range
    text: [x]
    options:
      moved: [3, 9]
      zindex: 70
      borderchars: ["-", "+"]
events:
  - keys: "j<CR>"
  - mouse: {action: press, row: 1, col: 2}
  - close: doc
`))
	require.NoError(t, err)

	assert.Equal(t, &Grid{Rows: 10, Cols: 40}, sc.Grid)
	assert.Equal(t, []int{2, 0}, sc.Windows[0].Cursor)
	require.Len(t, sc.Popups, 2)

	doc := sc.Popups[0]
	assert.NotNil(t, doc.Options.Border)
	assert.Empty(t, doc.Options.Border, "border: [] means every side")
	assert.Equal(t, &MovedSpec{Kind: "WORD"}, doc.Options.Moved)
	assert.Equal(t, &MovedSpec{Range: true, MinCol: 3, MaxCol: 9}, sc.Popups[1].Options.Moved)

	require.Len(t, sc.Events, 3)
	assert.Equal(t, "j<CR>", sc.Events[0].Keys)
	assert.Equal(t, &MouseSpec{Action: "press", Row: 1, Col: 2}, sc.Events[1].Mouse)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	sc, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, sc.Popups)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{name: "unknown field", yaml: "popups:\n  - txt: [x]\n"},
		{name: "malformed", yaml: "popups: [\n"},
		{name: "moved range of three", yaml: "popups:\n  - options: {moved: [1, 2, 3]}\n"},
		{name: "moved mapping", yaml: "popups:\n  - options: {moved: {a: 1}}\n"},
		{name: "bad kind", yaml: "popups:\n  - kind: tooltip\n", invalid: true},
		{name: "bad filter", yaml: "popups:\n  - options: {filter: emacs}\n", invalid: true},
		{name: "text and markdown", yaml: "popups:\n  - {text: [a], markdown: b}\n", invalid: true},
		{name: "duplicate name", yaml: "popups:\n  - {name: a}\n  - {name: a}\n", invalid: true},
		{name: "window id zero", yaml: "windows:\n  - {name: w}\n", invalid: true},
		{name: "window id collides with popups", yaml: "windows:\n  - {id: 1000}\n", invalid: true},
		{name: "duplicate window", yaml: "windows:\n  - {id: 1}\n  - {id: 1}\n", invalid: true},
		{name: "bad grid", yaml: "grid: {rows: 0, cols: 10}\n", invalid: true},
		{name: "negative header gap", yaml: "header_gap: -1\n", invalid: true},
		{name: "two actions", yaml: "events:\n  - {keys: j, close: a}\n", invalid: true},
		{name: "no action", yaml: "events:\n  - {}\n", invalid: true},
		{name: "short cursor", yaml: "events:\n  - cursor: [1]\n", invalid: true},
		{name: "bad open", yaml: "events:\n  - open: {kind: nope}\n", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("popups:\n  - kind: bogus\n"), 0o600))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), path)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	ps := PopupSpec{
		Global: true,
		Options: OptionsSpec{
			Line:   3,
			Pos:    "botright",
			Filter: "yesno",
			Moved:  &MovedSpec{Kind: "any"},
		},
	}
	o := ps.options(popup.KindNormal, 80)
	assert.Equal(t, 3, o.Line)
	assert.Equal(t, "botright", o.Pos)
	assert.NotNil(t, o.Filter)
	assert.Equal(t, &popup.MovedOption{Kind: "any"}, o.Moved)
	require.NotNil(t, o.Tab)
	assert.Equal(t, -1, *o.Tab)
	require.NotNil(t, o.ZIndex)
	assert.Equal(t, 80, *o.ZIndex, "default z-index for normal popups")

	o = ps.options(popup.KindDialog, 80)
	assert.Nil(t, o.ZIndex, "dialogs keep their own z-index")

	ps.Options.ZIndex = popup.Ptr(10)
	o = ps.options(popup.KindNormal, 80)
	assert.Equal(t, 10, *o.ZIndex)
}
