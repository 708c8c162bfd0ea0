// ABOUTME: Scene files: base windows, popups and a scripted event list in YAML
// ABOUTME: Parsing is strict so a misspelled option is an error instead of a silent default

package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid reports a scene that parses but cannot be staged.
var ErrInvalid = errors.New("invalid scene")

// Scene is the decoded form of a scene file.
type Scene struct {
	Grid    *Grid    `yaml:"grid"`
	Cmdline string   `yaml:"cmdline"`
	Header  []string `yaml:"header"`
	// HeaderGap is the number of blank rows below the header.
	HeaderGap int          `yaml:"header_gap"`
	Windows   []WindowSpec `yaml:"windows"`
	Popups    []PopupSpec  `yaml:"popups"`
	Events    []EventSpec  `yaml:"events"`
}

// Grid is a grid size in cells.
type Grid struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// WindowSpec is a base text window. Cursor is line (1-based) and byte
// column (0-based).
type WindowSpec struct {
	ID     int      `yaml:"id"`
	Name   string   `yaml:"name"`
	Height int      `yaml:"height"`
	Lines  []string `yaml:"lines"`
	Cursor []int    `yaml:"cursor"`
	Focus  bool     `yaml:"focus"`
}

// PopupSpec is one popup. Exactly one of Text and Markdown is used.
type PopupSpec struct {
	Name     string      `yaml:"name"`
	Kind     string      `yaml:"kind"`
	Text     []string    `yaml:"text"`
	Markdown string      `yaml:"markdown"`
	Global   bool        `yaml:"global"`
	Surface  int         `yaml:"surface"`
	Options  OptionsSpec `yaml:"options"`
}

// OptionsSpec mirrors popup.Options with YAML names.
type OptionsSpec struct {
	Line            int        `yaml:"line"`
	Col             int        `yaml:"col"`
	Pos             string     `yaml:"pos"`
	Fixed           *bool      `yaml:"fixed"`
	MinWidth        int        `yaml:"minwidth"`
	MinHeight       int        `yaml:"minheight"`
	MaxWidth        int        `yaml:"maxwidth"`
	MaxHeight       int        `yaml:"maxheight"`
	FirstLine       *int       `yaml:"firstline"`
	Title           *string    `yaml:"title"`
	Wrap            *bool      `yaml:"wrap"`
	Drag            *bool      `yaml:"drag"`
	Highlight       *string    `yaml:"highlight"`
	Padding         []int      `yaml:"padding"`
	Border          []int      `yaml:"border"`
	BorderHighlight []string   `yaml:"borderhighlight"`
	BorderChars     []string   `yaml:"borderchars"`
	ZIndex          *int       `yaml:"zindex"`
	Moved           *MovedSpec `yaml:"moved"`
	Filter          string     `yaml:"filter"`
	Hidden          bool       `yaml:"hidden"`
}

// MovedSpec is either a keyword ("any", "word", "WORD") or a [min, max]
// column range.
type MovedSpec struct {
	Kind   string
	Range  bool
	MinCol int
	MaxCol int
}

// UnmarshalYAML accepts a scalar keyword or a two element sequence.
func (m *MovedSpec) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		m.Kind = n.Value
		return nil
	case yaml.SequenceNode:
		var cols []int
		if err := n.Decode(&cols); err != nil {
			return err
		}
		if len(cols) != 2 {
			return fmt.Errorf("line %d: moved range needs two columns, got %d", n.Line, len(cols))
		}
		m.Range, m.MinCol, m.MaxCol = true, cols[0], cols[1]
		return nil
	}
	return fmt.Errorf("line %d: moved must be a keyword or a column range", n.Line)
}

// EventSpec is one scripted step. Exactly one field is set.
type EventSpec struct {
	Keys    string     `yaml:"keys"`
	Mouse   *MouseSpec `yaml:"mouse"`
	Cursor  []int      `yaml:"cursor"`
	Focus   *int       `yaml:"focus"`
	Open    *PopupSpec `yaml:"open"`
	Close   string     `yaml:"close"`
	Hide    string     `yaml:"hide"`
	Show    string     `yaml:"show"`
	Move    *MoveSpec  `yaml:"move"`
	SetText *TextSpec  `yaml:"settext"`
	Resize  *Grid      `yaml:"resize"`
	Surface *int       `yaml:"surface"`
	Clear   bool       `yaml:"clear"`
	// Narrow starts narrowing the topmost menu with a pattern.
	Narrow *string `yaml:"narrow"`
}

// MouseSpec is a left button action at a 0-based cell.
type MouseSpec struct {
	Action string `yaml:"action"`
	Row    int    `yaml:"row"`
	Col    int    `yaml:"col"`
}

// MoveSpec repositions a named popup.
type MoveSpec struct {
	Popup string `yaml:"popup"`
	Line  int    `yaml:"line"`
	Col   int    `yaml:"col"`
	Pos   string `yaml:"pos"`
}

// TextSpec replaces the text of a named popup.
type TextSpec struct {
	Popup string   `yaml:"popup"`
	Lines []string `yaml:"lines"`
}

func (e EventSpec) fields() int {
	n := 0
	for _, set := range []bool{
		e.Keys != "", e.Mouse != nil, e.Cursor != nil, e.Focus != nil, e.Open != nil,
		e.Close != "", e.Hide != "", e.Show != "", e.Move != nil, e.SetText != nil,
		e.Resize != nil, e.Surface != nil, e.Clear, e.Narrow != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Parse decodes a scene and checks its structure.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var sc Scene
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Validate checks what the YAML schema cannot express.
func (sc *Scene) Validate() error {
	var errs []error
	if sc.Grid != nil && (sc.Grid.Rows < 1 || sc.Grid.Cols < 1) {
		errs = append(errs, fmt.Errorf("%w: grid %dx%d", ErrInvalid, sc.Grid.Rows, sc.Grid.Cols))
	}
	if sc.HeaderGap < 0 {
		errs = append(errs, fmt.Errorf("%w: header_gap %d", ErrInvalid, sc.HeaderGap))
	}
	ids := make(map[int]bool)
	for i, w := range sc.Windows {
		switch {
		case w.ID < 1 || w.ID >= 1000:
			errs = append(errs, fmt.Errorf("%w: window %d: id %d outside 1..999", ErrInvalid, i+1, w.ID))
		case ids[w.ID]:
			errs = append(errs, fmt.Errorf("%w: window %d: duplicate id %d", ErrInvalid, i+1, w.ID))
		}
		ids[w.ID] = true
		if len(w.Cursor) != 0 && len(w.Cursor) != 2 {
			errs = append(errs, fmt.Errorf("%w: window %d: cursor needs line and column", ErrInvalid, i+1))
		}
	}
	names := make(map[string]bool)
	for i, p := range sc.Popups {
		if err := p.validate(); err != nil {
			errs = append(errs, fmt.Errorf("popup %d: %w", i+1, err))
		}
		if p.Name != "" {
			if names[p.Name] {
				errs = append(errs, fmt.Errorf("%w: popup %d: duplicate name %q", ErrInvalid, i+1, p.Name))
			}
			names[p.Name] = true
		}
	}
	for i, e := range sc.Events {
		if n := e.fields(); n != 1 {
			errs = append(errs, fmt.Errorf("%w: event %d sets %d actions, want 1", ErrInvalid, i+1, n))
			continue
		}
		if e.Open != nil {
			if err := e.Open.validate(); err != nil {
				errs = append(errs, fmt.Errorf("event %d: %w", i+1, err))
			}
		}
		if e.Cursor != nil && len(e.Cursor) != 2 {
			errs = append(errs, fmt.Errorf("%w: event %d: cursor needs line and column", ErrInvalid, i+1))
		}
	}
	return errors.Join(errs...)
}

func (p PopupSpec) validate() error {
	if len(p.Text) > 0 && p.Markdown != "" {
		return fmt.Errorf("%w: text and markdown are exclusive", ErrInvalid)
	}
	if _, err := parseKind(p.Kind); err != nil {
		return err
	}
	if _, err := parseFilter(p.Options.Filter); err != nil {
		return err
	}
	return nil
}
