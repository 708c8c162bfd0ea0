// ABOUTME: Spacer component: a run of blank grid rows
// ABOUTME: Scenes use it for the gap between the header and the first window

package component

import "github.com/mauromedda/popgrid/pkg/tui"

// Spacer occupies Height blank rows.
type Spacer struct {
	Height int
}

func NewSpacer(height int) *Spacer {
	return &Spacer{Height: max(height, 0)}
}

func (s *Spacer) Render(out *tui.RenderBuffer, _ int) {
	for range s.Height {
		out.WriteLine("")
	}
}

func (s *Spacer) Invalidate() {}
