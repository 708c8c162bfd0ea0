// ABOUTME: Panel entity: placement constraints, decoration, and resolved geometry
// ABOUTME: Geometry fields are written only by Resolve; constraints by the Manager

package popup

// ID identifies a panel for the lifetime of the process.
type ID int

// SurfaceID identifies a logical surface ("tab") owning a group of panels.
type SurfaceID int

// SurfaceGlobal is the owner of panels that are shown on every surface.
const SurfaceGlobal SurfaceID = 0

// Z-index defaults and bounds.
const (
	DefaultZIndex      = 50
	DialogZIndex       = 200
	NotificationZIndex = 300
	MaxZIndex          = 32000
)

// Side indexes the Border, Padding and BorderHighlight arrays.
const (
	SideTop = iota
	SideRight
	SideBottom
	SideLeft
)

// Border glyph slots in Panel.BorderChars.
const (
	CharTop = iota
	CharRight
	CharBottom
	CharLeft
	CharTopLeft
	CharTopRight
	CharBotRight
	CharBotLeft
)

// Size is the dimension of the shared grid.
type Size struct {
	Rows int
	Cols int
}

// Rect is a resolved panel rectangle. Row and Col are the 0-based top-left
// cell of the whole footprint; Width and Height cover the content only.
type Rect struct {
	Row    int
	Col    int
	Width  int
	Height int
}

// Moved describes the cursor region outside of which a panel auto-closes.
// A zero Window disables the check.
type Moved struct {
	Window int
	Line   int
	MinCol int
	MaxCol int
}

// FilterFunc receives input events for a panel and reports whether the
// event was consumed. The panel may be closed from inside the callback.
type FilterFunc func(m *Manager, id ID, ev Event) bool

// CloseFunc is invoked once when a panel closes with a result value.
type CloseFunc func(m *Manager, id ID, result any)

// Panel is a floating overlay drawn above the grid.
type Panel struct {
	id      ID
	surface SurfaceID
	content Content

	// Placement constraints. Line and Col are 1-based; 0 means unset.
	Anchor    Anchor
	Line      int
	Col       int
	Fixed     bool
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
	FirstLine int
	Wrap      bool

	// Decoration.
	Border          [4]int
	Padding         [4]int
	BorderChars     [8]rune
	BorderHighlight [4]string
	Highlight       string
	Title           string
	ZIndex          int

	Drag  bool
	Moved Moved

	Filter   FilterFunc
	Callback CloseFunc

	rect     Rect
	topLine  int
	hidden   bool
	closing  bool
	lastTick uint64
	resolved bool

	// curLine is the selected line of a menu, 1-based.
	curLine int
}

// NewPanel returns a panel with default constraints over content.
// Panels created through a Manager get their id from it; a standalone panel
// has id 0 and is only useful with Resolve.
func NewPanel(content Content) *Panel {
	return &Panel{
		content:   content,
		Anchor:    AnchorTopLeft,
		FirstLine: 1,
		Wrap:      true,
		ZIndex:    DefaultZIndex,
	}
}

// ID returns the panel id.
func (p *Panel) ID() ID { return p.id }

// Surface returns the owning surface, SurfaceGlobal for global panels.
func (p *Panel) Surface() SurfaceID { return p.surface }

// Content returns the panel's content source.
func (p *Panel) Content() Content { return p.content }

// Rect returns the last resolved rectangle.
func (p *Panel) Rect() Rect { return p.rect }

// TopLine returns the first visible content line, 1-based.
func (p *Panel) TopLine() int { return p.topLine }

// Hidden reports whether the panel is hidden.
func (p *Panel) Hidden() bool { return p.hidden }

// CurrentLine returns the selected line of a menu panel, or 0.
func (p *Panel) CurrentLine() int { return p.curLine }

// topExtra is border plus padding at the top, at least 1 with a title.
func (p *Panel) topExtra() int {
	extra := p.Border[SideTop] + p.Padding[SideTop]
	if extra == 0 && p.Title != "" {
		return 1
	}
	return extra
}

// extras returns the decoration thickness per side.
func (p *Panel) extras() (top, right, bottom, left int) {
	return p.topExtra(),
		p.Border[SideRight] + p.Padding[SideRight],
		p.Border[SideBottom] + p.Padding[SideBottom],
		p.Border[SideLeft] + p.Padding[SideLeft]
}

// TotalWidth is the footprint width including border and padding.
func (p *Panel) TotalWidth() int {
	_, right, _, left := p.extras()
	return p.rect.Width + left + right
}

// TotalHeight is the footprint height including border, padding and title.
func (p *Panel) TotalHeight() int {
	top, _, bottom, _ := p.extras()
	return p.rect.Height + top + bottom
}

// ContentRect returns the absolute rectangle of the content area.
func (p *Panel) ContentRect() Rect {
	top, _, _, left := p.extras()
	return Rect{
		Row:    p.rect.Row + top,
		Col:    p.rect.Col + left,
		Width:  p.rect.Width,
		Height: p.rect.Height,
	}
}

// covers reports whether the absolute cell lies inside the footprint.
func (p *Panel) covers(row, col int) bool {
	return row >= p.rect.Row && row < p.rect.Row+p.TotalHeight() &&
		col >= p.rect.Col && col < p.rect.Col+p.TotalWidth()
}

// OnBorder reports whether row/col, relative to the top-left corner of the
// footprint, is on one of the panel's borders.
func (p *Panel) OnBorder(row, col int) bool {
	return (row == 0 && p.Border[SideTop] > 0) ||
		(row == p.TotalHeight()-1 && p.Border[SideBottom] > 0) ||
		(col == 0 && p.Border[SideLeft] > 0) ||
		(col == p.TotalWidth()-1 && p.Border[SideRight] > 0)
}

// contentChanged reports whether the content changed since the last resolve.
func (p *Panel) contentChanged() bool {
	if !p.resolved {
		return true
	}
	if p.content == nil {
		return false
	}
	return p.content.Tick() != p.lastTick
}
