// ABOUTME: Manager is the single owned context for panels, mask, and drag state
// ABOUTME: Every callback crosses by id; panels are re-fetched after it returns

package popup

import (
	"errors"
	"fmt"
)

// Logger receives debug traces. internal/log satisfies it.
type Logger interface {
	Debug(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// NoticeKind names a panel lifecycle change.
type NoticeKind int

const (
	NoticeCreated NoticeKind = iota
	NoticeClosed
	NoticeMoved
	NoticeHidden
	NoticeShown
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeCreated:
		return "created"
	case NoticeClosed:
		return "closed"
	case NoticeMoved:
		return "moved"
	case NoticeHidden:
		return "hidden"
	case NoticeShown:
		return "shown"
	}
	return "unknown"
}

// Notice reports a lifecycle change to Config.OnNotice.
type Notice struct {
	Kind NoticeKind
	ID   ID
	Rect Rect
}

// Cursor is the host's text cursor.
type Cursor struct {
	Window int
	// Line is the buffer line, 1-based; Col the byte column, 0-based.
	Line int
	Col  int
	// ScreenRow and ScreenCol are the 0-based grid cell of the cursor.
	ScreenRow int
	ScreenCol int
}

// CursorSource supplies the cursor for cursor-relative panels.
type CursorSource interface {
	Cursor() Cursor
	// WordUnderCursor returns the byte range of the word under the cursor.
	// bigWord selects whitespace-delimited words.
	WordUnderCursor(bigWord bool) (startCol, length int, ok bool)
}

// Config wires the Manager to its collaborators. Only Size is required.
type Config struct {
	Size   Size
	Host   Host
	Cursor CursorSource
	Logger Logger
	// OnNotice observes lifecycle changes.
	OnNotice func(Notice)
	// NewContent creates the content store of a new panel. Defaults to
	// NewTextBuffer.
	NewContent func(lines []string) (Content, error)
	// IsWindow reports whether an id names a host window that is not a
	// panel; lookups then fail with ErrNotPanel instead of ErrNotFound.
	IsWindow func(id int) bool
	// ASCIIBorders selects -|+ border glyphs instead of box drawing ones.
	ASCIIBorders bool
}

const firstID ID = 1000

// Manager owns all panels and the compositing state. It is not safe for
// concurrent use; hosts call it from their input/redraw loop.
type Manager struct {
	reg  *Registry
	mask *Mask
	drag dragState
	size Size

	nextID ID
	cfg    Config
	host   Host
	log    Logger

	redrawAll    bool
	clearCmdline bool
	composing    bool
}

// NewManager returns a Manager for a grid of cfg.Size.
func NewManager(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}
	if cfg.NewContent == nil {
		cfg.NewContent = func(lines []string) (Content, error) {
			return NewTextBuffer(lines...), nil
		}
	}
	return &Manager{
		reg:    NewRegistry(),
		mask:   newMask(cfg.Size),
		size:   cfg.Size,
		nextID: firstID,
		cfg:    cfg,
		host:   cfg.Host,
		log:    cfg.Logger,
	}
}

// Registry exposes the panel collections.
func (m *Manager) Registry() *Registry { return m.reg }

// Size returns the grid size.
func (m *Manager) Size() Size { return m.size }

// SetSize changes the grid size. The next Update rebuilds everything.
func (m *Manager) SetSize(size Size) {
	if size == m.size {
		return
	}
	m.size = size
	m.mask.resize(size)
	m.redrawAll = true
}

// SetSurface switches the active surface.
func (m *Manager) SetSurface(s SurfaceID) {
	m.reg.SetActive(s)
}

// Surface returns the active surface.
func (m *Manager) Surface() SurfaceID { return m.reg.Active() }

// Panel returns the live panel with the given id, or nil.
func (m *Manager) Panel(id ID) *Panel { return m.reg.Find(id) }

// lookup finds a panel or explains why there is none.
func (m *Manager) lookup(id ID) (*Panel, error) {
	if p := m.reg.Find(id); p != nil {
		return p, nil
	}
	if m.cfg.IsWindow != nil && m.cfg.IsWindow(int(id)) {
		return nil, fmt.Errorf("window %d: %w", id, ErrNotPanel)
	}
	return nil, fmt.Errorf("popup %d: %w", id, ErrNotFound)
}

func (m *Manager) notify(kind NoticeKind, p *Panel) {
	if m.cfg.OnNotice != nil {
		m.cfg.OnNotice(Notice{Kind: kind, ID: p.id, Rect: p.rect})
	}
}

// invalidate marks the mask stale and asks for a full base redraw.
func (m *Manager) invalidate() {
	m.mask.dirty = true
	m.redrawAll = true
}

// resolve recomputes p's geometry and invalidates the mask when it moved.
func (m *Manager) resolve(p *Panel) {
	if !Resolve(p, m.size) {
		return
	}
	m.log.Debug("popup %d geometry %+v", p.id, p.rect)
	m.redrawAll = true
	if !m.composing {
		m.mask.dirty = true
	}
	m.notify(NoticeMoved, p)
}

// touchesCmdline reports whether p reaches into the command area.
func (m *Manager) touchesCmdline(p *Panel) bool {
	if m.host == nil {
		return false
	}
	return p.rect.Row+p.TotalHeight() >= m.host.CmdlineRow()
}

// Close invokes the close callback with result and removes the panel.
// The callback may itself close the panel or others.
func (m *Manager) Close(id ID, result any) error {
	p, err := m.lookup(id)
	if err != nil {
		return err
	}
	if p.Callback != nil && !p.closing {
		p.closing = true
		p.Callback(m, id, result)
	}
	// the callback may have removed it already
	m.CloseNoCallback(id)
	return nil
}

// CloseNoCallback removes the panel without invoking its callback.
func (m *Manager) CloseNoCallback(id ID) bool {
	p, ok := m.reg.Remove(id)
	if !ok {
		return false
	}
	if m.touchesCmdline(p) {
		m.clearCmdline = true
	}
	if m.drag.active && m.drag.id == id {
		m.drag = dragState{}
	}
	m.invalidate()
	m.log.Debug("popup %d closed", id)
	m.notify(NoticeClosed, p)
	return true
}

// Clear removes every global panel and every panel of the active surface
// without invoking callbacks.
func (m *Manager) Clear() {
	for _, p := range m.reg.Global() {
		m.CloseNoCallback(p.id)
	}
	for _, p := range m.reg.OnSurface(m.reg.Active()) {
		m.CloseNoCallback(p.id)
	}
}

// Hide stops drawing the panel; it keeps its place in the registry.
func (m *Manager) Hide(id ID) error {
	p, err := m.lookup(id)
	if err != nil {
		return err
	}
	if !p.hidden {
		p.hidden = true
		m.invalidate()
		m.notify(NoticeHidden, p)
	}
	return nil
}

// Show makes a hidden panel visible again.
func (m *Manager) Show(id ID) error {
	p, err := m.lookup(id)
	if err != nil {
		return err
	}
	if p.hidden {
		p.hidden = false
		m.invalidate()
		m.notify(NoticeShown, p)
	}
	return nil
}

// SetText replaces the panel's text and re-resolves its geometry.
func (m *Manager) SetText(id ID, lines []string) error {
	p, err := m.lookup(id)
	if err != nil {
		return err
	}
	ts, ok := p.content.(TextSetter)
	if !ok {
		return fmt.Errorf("popup %d content is read-only: %w", id, ErrInvalidOption)
	}
	ts.SetLines(lines)
	m.resolve(p)
	return nil
}

// Move applies the position and size options of opts.
func (m *Manager) Move(id ID, opts Options) error {
	p, err := m.lookup(id)
	if err != nil {
		return err
	}
	applyErr := m.applyMoveOptions(p, opts)
	if m.touchesCmdline(p) {
		m.clearCmdline = true
	}
	m.resolve(p)
	return applyErr
}

// SetOptions applies position, size and general options.
func (m *Manager) SetOptions(id ID, opts Options) error {
	p, err := m.lookup(id)
	if err != nil {
		return err
	}
	applyErr := m.applyMoveOptions(p, opts)
	if e := m.applyGeneralOptions(p, opts); e != nil {
		applyErr = errors.Join(applyErr, e)
	}
	m.resolve(p)
	return applyErr
}

// Position describes a panel's footprint and content area, 1-based.
type Position struct {
	Line   int
	Col    int
	Width  int
	Height int

	CoreLine   int
	CoreCol    int
	CoreWidth  int
	CoreHeight int

	Visible bool
}

// GetPos returns the panel's resolved position.
func (m *Manager) GetPos(id ID) (Position, error) {
	p, err := m.lookup(id)
	if err != nil {
		return Position{}, err
	}
	top, _, _, left := p.extras()
	return Position{
		Line:       p.rect.Row + 1,
		Col:        p.rect.Col + 1,
		Width:      p.TotalWidth(),
		Height:     p.TotalHeight(),
		CoreLine:   p.rect.Row + 1 + top,
		CoreCol:    p.rect.Col + 1 + left,
		CoreWidth:  p.rect.Width,
		CoreHeight: p.rect.Height,
		Visible:    !p.hidden,
	}, nil
}
