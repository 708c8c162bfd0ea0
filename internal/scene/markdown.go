// ABOUTME: Markdown popup content rendered to plain lines with glamour's notty style
// ABOUTME: Caches results keyed by content hash and wrap width

package scene

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mauromedda/popgrid/pkg/tui/width"
)

// Markdown renders markdown to popup lines.
type Markdown struct {
	cache map[string][]string
}

// NewMarkdown creates a renderer with an empty cache.
func NewMarkdown() *Markdown {
	return &Markdown{cache: make(map[string][]string)}
}

// Render wraps md at wrap cells and returns the lines without styling,
// margins or surrounding blank lines.
func (r *Markdown) Render(md string, wrap int) ([]string, error) {
	if strings.TrimSpace(md) == "" {
		return nil, nil
	}
	key := cacheKey(md, wrap)
	if cached, ok := r.cache[key]; ok {
		return cached, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	lines := strings.Split(width.StripANSI(out), "\n")
	indent := -1
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
		if lines[i] == "" {
			continue
		}
		lead := len(lines[i]) - len(strings.TrimLeft(lines[i], " "))
		if indent < 0 || lead < indent {
			indent = lead
		}
	}
	// drop the document margin glamour adds on the left
	for i, l := range lines {
		if len(l) >= indent && indent > 0 {
			lines[i] = l[indent:]
		}
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	r.cache[key] = lines
	return lines, nil
}

func cacheKey(content string, wrap int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], wrap)
}
