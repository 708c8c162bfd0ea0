// ABOUTME: Tests for filter dispatch, built-in menu and yes/no filters, and cursor auto-close
// ABOUTME: Includes panels closed by callbacks in the middle of a pass

package popup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauromedda/popgrid/pkg/tui/key"
)

func TestFilter_HighestFirst(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, Config{})
	var order []int
	filter := func(z int, consume bool) FilterFunc {
		return func(*Manager, ID, Event) bool {
			order = append(order, z)
			return consume
		}
	}
	mustCreate(t, m, []string{"a"}, Options{ZIndex: Ptr(10), Filter: filter(10, true)}, KindNormal)
	mustCreate(t, m, []string{"b"}, Options{ZIndex: Ptr(30), Filter: filter(30, false)}, KindNormal)
	mustCreate(t, m, []string{"c"}, Options{ZIndex: Ptr(20), Filter: filter(20, true)}, KindNormal)
	mustCreate(t, m, []string{"d"}, Options{ZIndex: Ptr(40)}, KindNormal)

	assert.True(t, m.Filter(RuneEvent('q')))
	assert.Equal(t, []int{30, 20}, order)
}

func TestFilter_PanelClosedMidPass(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, Config{})
	var middleCalled, bottomCalled bool
	middle := mustCreate(t, m, []string{"m"}, Options{ZIndex: Ptr(20), Filter: func(*Manager, ID, Event) bool {
		middleCalled = true
		return true
	}}, KindNormal)
	mustCreate(t, m, []string{"b"}, Options{ZIndex: Ptr(10), Filter: func(*Manager, ID, Event) bool {
		bottomCalled = true
		return true
	}}, KindNormal)
	mustCreate(t, m, []string{"t"}, Options{ZIndex: Ptr(30), Filter: func(m *Manager, _ ID, _ Event) bool {
		require.NoError(t, m.Close(middle, nil))
		return false
	}}, KindNormal)

	assert.True(t, m.Filter(RuneEvent('x')))
	assert.False(t, middleCalled, "closed panel was visited")
	assert.True(t, bottomCalled)
	assert.Nil(t, m.Panel(middle))
}

func TestFilter_CtrlCCloses(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, Config{})
	var result any
	id := mustCreate(t, m, []string{"x"}, Options{
		Filter:   func(*Manager, ID, Event) bool { return false },
		Callback: func(_ *Manager, _ ID, r any) { result = r },
	}, KindNormal)

	assert.True(t, m.Filter(KeyEvent(key.Key{Type: key.KeyCtrlC, Ctrl: true})))
	assert.Nil(t, m.Panel(id))
	assert.Equal(t, -1, result)
}

func TestFilterMenu(t *testing.T) {
	t.Parallel()

	down := KeyEvent(key.Key{Type: key.KeyDown})
	up := KeyEvent(key.Key{Type: key.KeyUp})
	enter := KeyEvent(key.Key{Type: key.KeyEnter})
	esc := KeyEvent(key.Key{Type: key.KeyEscape})

	tests := []struct {
		name   string
		events []Event
		want   any
	}{
		{name: "select first", events: []Event{enter}, want: 1},
		{name: "move down twice", events: []Event{down, RuneEvent('j'), RuneEvent(' ')}, want: 3},
		{name: "stops at last line", events: []Event{down, down, down, down, enter}, want: 3},
		{name: "up stops at first", events: []Event{up, RuneEvent('k'), enter}, want: 1},
		{name: "down then up", events: []Event{down, down, up, enter}, want: 2},
		{name: "cancel with x", events: []Event{down, RuneEvent('x')}, want: -1},
		{name: "cancel with escape", events: []Event{esc}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestManager(t, Config{})
			var got any
			id := mustCreate(t, m, []string{"one", "two", "three"}, Options{
				Callback: func(_ *Manager, _ ID, r any) { got = r },
			}, KindMenu)
			for _, ev := range tt.events {
				require.True(t, m.Filter(ev), "event %s not consumed", ev)
			}
			assert.Equal(t, tt.want, got)
			assert.Nil(t, m.Panel(id))
		})
	}
}

func TestFilterMenu_ScrollsSelection(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, Config{})
	id := mustCreate(t, m, block(10, 4), Options{MaxHeight: 3}, KindMenu)
	for range 4 {
		m.Filter(RuneEvent('j'))
	}
	p := m.Panel(id)
	assert.Equal(t, 5, p.CurrentLine())
	assert.Equal(t, 3, p.TopLine())

	for range 4 {
		m.Filter(RuneEvent('k'))
	}
	assert.Equal(t, 1, p.CurrentLine())
	assert.Equal(t, 1, p.TopLine())
}

func TestFilterMenu_OtherKeysConsumed(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, Config{})
	id := mustCreate(t, m, []string{"one"}, Options{}, KindMenu)
	assert.True(t, m.Filter(RuneEvent('z')))
	assert.NotNil(t, m.Panel(id))

	// a press on the draggable menu is left for the drag handler
	pos, err := m.GetPos(id)
	require.NoError(t, err)
	assert.False(t, m.Filter(MouseEvent(MousePress, pos.Line-1, pos.Col-1)))
}

func TestFilterYesNo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   Event
		want any
	}{
		{name: "yes", ev: RuneEvent('y'), want: 1},
		{name: "Yes", ev: RuneEvent('Y'), want: 1},
		{name: "no", ev: RuneEvent('n'), want: 0},
		{name: "x", ev: RuneEvent('x'), want: 0},
		{name: "escape", ev: KeyEvent(key.Key{Type: key.KeyEscape}), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestManager(t, Config{})
			var got any
			mustCreate(t, m, []string{"Quit?"}, Options{
				Filter:   FilterYesNo,
				Callback: func(_ *Manager, _ ID, r any) { got = r },
			}, KindDialog)
			require.True(t, m.Filter(tt.ev))
			assert.Equal(t, tt.want, got)
			assert.Zero(t, m.Registry().Len())
		})
	}

	t.Run("other keys are swallowed", func(t *testing.T) {
		t.Parallel()
		m := newTestManager(t, Config{})
		id := mustCreate(t, m, []string{"Quit?"}, Options{Filter: FilterYesNo}, KindDialog)
		assert.True(t, m.Filter(RuneEvent('q')))
		assert.NotNil(t, m.Panel(id))
	})
}

func TestCheckCursor(t *testing.T) {
	t.Parallel()

	cur := &fakeCursor{
		cur:       Cursor{Window: 1, Line: 3, Col: 4, ScreenRow: 5, ScreenCol: 6},
		wordStart: 2,
		wordLen:   5,
	}
	m := newTestManager(t, Config{Cursor: cur})
	var results []any
	cb := func(_ *Manager, _ ID, r any) { results = append(results, r) }

	word := mustCreate(t, m, []string{"doc"}, Options{Callback: cb}, KindAtCursor)
	anyMove := mustCreate(t, m, []string{"any"}, Options{Moved: &MovedOption{Kind: "any"}, Callback: cb}, KindNormal)
	plain := mustCreate(t, m, []string{"plain"}, Options{}, KindNormal)

	m.CheckCursor(Cursor{Window: 1, Line: 3, Col: 4})
	assert.Equal(t, 3, m.Registry().Len(), "cursor did not move")

	m.CheckCursor(Cursor{Window: 1, Line: 3, Col: 6})
	assert.NotNil(t, m.Panel(word), "still inside the word")
	assert.Nil(t, m.Panel(anyMove))

	m.CheckCursor(Cursor{Window: 1, Line: 4, Col: 3})
	assert.Nil(t, m.Panel(word))
	assert.NotNil(t, m.Panel(plain))
	assert.Equal(t, []any{-1, -1}, results)
}

func TestCheckCursor_CallbackClosesOthers(t *testing.T) {
	t.Parallel()

	cur := &fakeCursor{cur: Cursor{Window: 1, Line: 1, Col: 0}}
	m := newTestManager(t, Config{Cursor: cur})

	var second ID
	calls := 0
	first := mustCreate(t, m, []string{"a"}, Options{
		ZIndex: Ptr(10),
		Moved:  &MovedOption{Kind: "any"},
		Callback: func(m *Manager, _ ID, _ any) {
			calls++
			m.CloseNoCallback(second)
		},
	}, KindNormal)
	second = mustCreate(t, m, []string{"b"}, Options{
		ZIndex:   Ptr(20),
		Moved:    &MovedOption{Kind: "any"},
		Callback: func(*Manager, ID, any) { calls++ },
	}, KindNormal)

	assert.NotPanics(t, func() { m.CheckCursor(Cursor{Window: 2}) })
	assert.Equal(t, 1, calls)
	assert.Nil(t, m.Panel(first))
	assert.Nil(t, m.Panel(second))
}

func TestSetCurrentLine(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, Config{})
	id := mustCreate(t, m, block(10, 4), Options{MaxHeight: 3}, KindMenu)

	require.NoError(t, m.SetCurrentLine(id, 6))
	p := m.Panel(id)
	assert.Equal(t, 6, p.CurrentLine())
	assert.Equal(t, 4, p.TopLine())

	require.NoError(t, m.SetCurrentLine(id, 99))
	assert.Equal(t, 10, p.CurrentLine())
	require.NoError(t, m.SetCurrentLine(id, -3))
	assert.Equal(t, 1, p.CurrentLine())
	assert.Equal(t, 1, p.TopLine())

	require.ErrorIs(t, m.SetCurrentLine(4242, 1), ErrNotFound)
}
