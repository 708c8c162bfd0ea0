// ABOUTME: Tests for staging scenes: rendering, scripted input and popup results
// ABOUTME: Every stage is headless; frames are compared as plain text

package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauromedda/popgrid/internal/eventbus"
	"github.com/mauromedda/popgrid/pkg/popup"
)

func mustStage(t *testing.T, src string, cfg Config) *Stage {
	t.Helper()
	sc, err := Parse([]byte(src))
	require.NoError(t, err)
	st, err := New(sc, cfg)
	require.NoError(t, err)
	return st
}

func TestStage_Render(t *testing.T) {
	t.Parallel()

	st := mustStage(t, `
grid: {rows: 8, cols: 30}
cmdline: ":e main.go"
windows:
  - id: 1
    name: main.go
    height: 4
    lines: ["package main", "", "func main() {", "}"]
    cursor: [3, 5]
popups:
  - name: info
    text: [hello]
    options: {line: 2, col: 10, border: []}
`, Config{CmdlineRows: 1})

	want := strings.Join([]string{
		"package main",
		"         ╔═════╗",
		"func main║hello║",
		"}        ╚═════╝",
		"main.go                    3,6",
		"",
		"",
		":e main.go",
	}, "\n")
	assert.Equal(t, want, st.String())

	id, ok := st.ID("info")
	require.True(t, ok)
	pos, err := st.Popups.GetPos(id)
	require.NoError(t, err)
	assert.Equal(t, 3, pos.CoreLine)
	assert.Equal(t, 11, pos.CoreCol)
}

func TestStage_HeaderGap(t *testing.T) {
	t.Parallel()

	st := mustStage(t, `
grid: {rows: 8, cols: 20}
header: [TITLE]
header_gap: 2
windows:
  - {id: 1, name: w, height: 2, lines: [alpha, beta]}
`, Config{CmdlineRows: 1})

	rows := strings.Split(st.String(), "\n")
	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, "TITLE", rows[0])
	assert.Empty(t, rows[1])
	assert.Empty(t, rows[2])
	assert.Equal(t, "alpha", rows[3])
	assert.Equal(t, "beta", rows[4])
}

func TestStage_GridOverride(t *testing.T) {
	t.Parallel()

	st := mustStage(t, "grid: {rows: 8, cols: 30}\n", Config{Rows: 4, Cols: 12})
	assert.Equal(t, popup.Size{Rows: 4, Cols: 12}, st.Screen.Size())

	st.Resize(6, 20)
	assert.Equal(t, popup.Size{Rows: 6, Cols: 20}, st.Screen.Size())
}

func TestStage_MenuResult(t *testing.T) {
	t.Parallel()

	st := mustStage(t, `
grid: {rows: 10, cols: 30}
popups:
  - name: pick
    kind: menu
    text: [one, two, three]
events:
  - keys: "j<CR>"
`, Config{})

	id, _ := st.ID("pick")
	require.NoError(t, st.Replay([]EventSpec{{Keys: "j<CR>"}}))
	assert.Equal(t, []Result{{Popup: "pick", ID: id, Value: 2}}, st.Results())
	assert.Nil(t, st.Popups.Panel(id))
	assert.Equal(t, "pick=2", st.Results()[0].String())
}

func TestStage_YesNo(t *testing.T) {
	t.Parallel()

	st := mustStage(t, `
popups:
  - name: quit
    kind: dialog
    text: ["Quit?"]
    options: {filter: yesno}
`, Config{})

	require.NoError(t, st.Apply(EventSpec{Keys: "q"}))
	assert.Empty(t, st.Results(), "other keys are swallowed")

	require.NoError(t, st.Apply(EventSpec{Keys: "y"}))
	require.Len(t, st.Results(), 1)
	assert.Equal(t, 1, st.Results()[0].Value)
}

func TestStage_CursorPopupCloses(t *testing.T) {
	t.Parallel()

	st := mustStage(t, `
grid: {rows: 10, cols: 30}
windows:
  - id: 1
    name: buf
    lines: ["foo bar baz", "next"]
    cursor: [1, 4]
popups:
  - name: doc
    kind: cursor
    text: [docs]
`, Config{})

	id, ok := st.ID("doc")
	require.True(t, ok)
	p := st.Popups.Panel(id)
	require.NotNil(t, p)
	assert.Equal(t, popup.Moved{Window: 1, Line: 1, MinCol: 4, MaxCol: 6}, p.Moved)

	require.NoError(t, st.Apply(EventSpec{Cursor: []int{1, 6}}))
	assert.NotNil(t, st.Popups.Panel(id), "still on the word")

	// an arrow key the popups do not consume moves the cursor
	require.NoError(t, st.Apply(EventSpec{Keys: "<Right>"}))
	assert.Nil(t, st.Popups.Panel(id))
	assert.Equal(t, []Result{{Popup: "doc", ID: id, Value: -1}}, st.Results())
}

func TestStage_MouseDrag(t *testing.T) {
	t.Parallel()

	st := mustStage(t, `
grid: {rows: 10, cols: 30}
popups:
  - name: box
    text: [hi]
    options: {line: 2, col: 2, border: [], drag: true}
`, Config{})

	err := st.Replay([]EventSpec{
		{Mouse: &MouseSpec{Action: "press", Row: 1, Col: 1}},
		{Mouse: &MouseSpec{Action: "drag", Row: 3, Col: 4}},
		{Mouse: &MouseSpec{Action: "release", Row: 3, Col: 4}},
	})
	require.NoError(t, err)

	id, _ := st.ID("box")
	pos, err := st.Popups.GetPos(id)
	require.NoError(t, err)
	assert.Equal(t, 4, pos.Line)
	assert.Equal(t, 5, pos.Col)

	err = st.Apply(EventSpec{Mouse: &MouseSpec{Action: "wheel"}})
	require.ErrorIs(t, err, ErrInvalid)
}

func TestStage_ScriptedChanges(t *testing.T) {
	t.Parallel()

	st := mustStage(t, `
grid: {rows: 6, cols: 20}
popups:
  - name: a
    text: [AAA]
    options: {line: 1, col: 1}
`, Config{})

	require.NoError(t, st.Apply(EventSpec{SetText: &TextSpec{Popup: "a", Lines: []string{"BBBB"}}}))
	require.NoError(t, st.Apply(EventSpec{Move: &MoveSpec{Popup: "a", Line: 3, Col: 5}}))
	rows := strings.Split(st.String(), "\n")
	assert.Equal(t, "    BBBB", rows[2])

	require.NoError(t, st.Apply(EventSpec{Hide: "a"}))
	assert.NotContains(t, st.String(), "BBBB")
	require.NoError(t, st.Apply(EventSpec{Show: "a"}))
	assert.Contains(t, st.String(), "BBBB")

	require.NoError(t, st.Apply(EventSpec{Close: "a"}))
	require.NoError(t, st.Apply(EventSpec{Close: "a"}), "closing twice is not an error")
	assert.Equal(t, []Result{{Popup: "a", ID: firstPopupID(t, st, "a"), Value: nil}}, st.Results())

	err := st.Replay([]EventSpec{{Hide: "missing"}})
	require.ErrorIs(t, err, ErrUnknownPopup)
	assert.Contains(t, err.Error(), "event 1")
}

func firstPopupID(t *testing.T, st *Stage, name string) popup.ID {
	t.Helper()
	id, ok := st.ID(name)
	require.True(t, ok)
	return id
}

func TestStage_OpenAndClear(t *testing.T) {
	t.Parallel()

	st := mustStage(t, "grid: {rows: 6, cols: 20}\n", Config{})
	require.NoError(t, st.Apply(EventSpec{Open: &PopupSpec{Name: "n", Text: []string{"x"}}}))
	require.NoError(t, st.Apply(EventSpec{Open: &PopupSpec{Name: "bad", Text: []string{"y"}, Options: OptionsSpec{Pos: "middle"}}}),
		"invalid options still open the popup")
	assert.Equal(t, 2, st.Popups.Registry().Len())

	require.NoError(t, st.Apply(EventSpec{Clear: true}))
	assert.Zero(t, st.Popups.Registry().Len())
	assert.Empty(t, st.Results(), "clear skips callbacks")
}

func TestStage_OpenRefused(t *testing.T) {
	t.Parallel()

	full := errors.New("no buffers left")
	st := mustStage(t, "grid: {rows: 6, cols: 20}\n", Config{Popup: popup.Config{
		NewContent: func([]string) (popup.Content, error) { return nil, full },
	}})

	id, err := st.Open(PopupSpec{Name: "n", Text: []string{"x"}})
	require.ErrorIs(t, err, popup.ErrAlloc)
	assert.Zero(t, id)
	_, ok := st.ID("n")
	assert.False(t, ok, "a refused popup gets no name")

	err = st.Apply(EventSpec{Open: &PopupSpec{Text: []string{"y"}}})
	require.ErrorIs(t, err, full)
	assert.Zero(t, st.Popups.Registry().Len())
}

func TestStage_Surfaces(t *testing.T) {
	t.Parallel()

	st := mustStage(t, `
grid: {rows: 6, cols: 20}
popups:
  - {name: here, text: [AAA], options: {line: 1, col: 1}}
  - {name: there, surface: 2, text: [BBB], options: {line: 2, col: 1}}
  - {name: everywhere, global: true, text: [GGG], options: {line: 3, col: 1}}
`, Config{})

	frame := st.String()
	assert.Contains(t, frame, "AAA")
	assert.NotContains(t, frame, "BBB")
	assert.Contains(t, frame, "GGG")

	require.NoError(t, st.Apply(EventSpec{Surface: popup.Ptr(2)}))
	frame = st.String()
	assert.NotContains(t, frame, "AAA")
	assert.Contains(t, frame, "BBB")
	assert.Contains(t, frame, "GGG")
}

func TestStage_Focus(t *testing.T) {
	t.Parallel()

	st := mustStage(t, `
grid: {rows: 12, cols: 20}
windows:
  - {id: 1, name: one, height: 2, lines: [a]}
  - {id: 2, name: two, height: 2, lines: [b], focus: true}
`, Config{})

	w, ok := st.Focused()
	require.True(t, ok)
	assert.Equal(t, 2, w.ID())

	st.FocusNext()
	w, _ = st.Focused()
	assert.Equal(t, 1, w.ID())

	require.ErrorIs(t, st.Apply(EventSpec{Focus: popup.Ptr(9)}), ErrInvalid)
}

func TestStage_Notices(t *testing.T) {
	t.Parallel()

	bus := eventbus.NewWithHistory[popup.Notice](8)
	st := mustStage(t, "popups:\n  - {name: a, text: [x]}\n", Config{Notices: bus})
	require.NoError(t, st.Apply(EventSpec{Close: "a"}))

	var kinds []popup.NoticeKind
	for _, n := range bus.History() {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []popup.NoticeKind{popup.NoticeCreated, popup.NoticeClosed}, kinds)
	assert.Same(t, bus, st.Notices)
}
