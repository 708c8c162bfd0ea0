// ABOUTME: Tests for the static components: Text and Spacer
// ABOUTME: Verifies clipping, fixed heights and content updates

package component

import (
	"testing"

	"github.com/mauromedda/popgrid/pkg/tui"
)

func render(c tui.Component, cols int) []string {
	buf := tui.AcquireBuffer()
	defer tui.ReleaseBuffer(buf)
	c.Render(buf, cols)
	return append([]string(nil), buf.Lines...)
}

func TestText_Render(t *testing.T) {
	t.Parallel()

	got := render(NewText("hello\nworld"), 80)
	if len(got) != 2 || got[0] != "hello" || got[1] != "world" {
		t.Errorf("unexpected lines: %q", got)
	}
}

func TestText_SetContent(t *testing.T) {
	t.Parallel()

	comp := NewText("old")
	comp.SetContent("new")
	if got := render(comp, 80); len(got) != 1 || got[0] != "new" {
		t.Errorf("expected 'new', got %q", got)
	}
}

func TestText_ClipsAndFixesHeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lines  []string
		height int
		want   []string
	}{
		{name: "clipped", lines: []string{"abcdefgh"}, want: []string{"abcde"}},
		{name: "wide rune at the edge", lines: []string{"abcd日"}, want: []string{"abcd"}},
		{name: "padded", lines: []string{"a"}, height: 3, want: []string{"a", "", ""}},
		{name: "cut", lines: []string{"a", "b", "c"}, height: 2, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := render(NewLines(tt.lines, tt.height), 5)
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSpacer_Render(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct{ height, want int }{{3, 3}, {0, 0}, {-2, 0}} {
		got := render(NewSpacer(tt.height), 80)
		if len(got) != tt.want {
			t.Errorf("NewSpacer(%d) rendered %d rows, want %d", tt.height, len(got), tt.want)
		}
		for i, row := range got {
			if row != "" {
				t.Errorf("row %d = %q, want blank", i, row)
			}
		}
	}
}
