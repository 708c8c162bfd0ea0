// ABOUTME: Tests for TextBuffer metrics and anchor keyword parsing
// ABOUTME: Widths come from the tui width package, so wide runes count double

package popup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextBuffer(t *testing.T) {
	t.Parallel()

	b := NewTextBuffer("abc", "日本", "e\u0301")
	tick := b.Tick()

	assert.Equal(t, 3, b.LineCount())
	assert.Equal(t, 3, b.LineWidth(1))
	assert.Equal(t, 4, b.LineWidth(2))
	assert.Equal(t, 1, b.LineWidth(3))
	assert.Equal(t, "\u00e9", b.Line(3), "text is stored composed")
	assert.Zero(t, b.LineWidth(0))
	assert.Zero(t, b.LineWidth(4))
	assert.Empty(t, b.Line(9))

	b.SetLines([]string{"x"})
	assert.NotEqual(t, tick, b.Tick())
	assert.Equal(t, 1, b.LineCount())
}

func TestParseAnchor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Anchor
		wantErr bool
	}{
		{in: "topleft", want: AnchorTopLeft},
		{in: "topright", want: AnchorTopRight},
		{in: "botleft", want: AnchorBotLeft},
		{in: "botright", want: AnchorBotRight},
		{in: "center", want: AnchorCenter},
		{in: "middle", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAnchor(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOption)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}
