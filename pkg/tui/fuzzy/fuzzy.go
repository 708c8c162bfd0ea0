// ABOUTME: Fuzzy narrowing of menu lines over sahilm/fuzzy
// ABOUTME: Narrowed keeps the mapping from shown lines back to the source lines

package fuzzy

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// Match is one fuzzy match of a pattern against an item.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
}

// Find matches pattern against items, best score first.
func Find(pattern string, items []string) []Match {
	results := fuzzy.Find(pattern, items)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return matches
}

// Narrowed is a filtered view of menu lines. Line numbers are 1-based to
// match panel content.
type Narrowed struct {
	Pattern string
	Lines   []string
	origin  []int
}

// Narrow keeps the lines matching pattern, best match first. An empty
// pattern keeps every line in source order.
func Narrow(pattern string, lines []string) Narrowed {
	n := Narrowed{Pattern: pattern}
	if pattern == "" {
		n.Lines = slices.Clone(lines)
		n.origin = make([]int, len(lines))
		for i := range lines {
			n.origin[i] = i + 1
		}
		return n
	}
	for _, m := range Find(pattern, lines) {
		n.Lines = append(n.Lines, m.Str)
		n.origin = append(n.origin, m.Index+1)
	}
	return n
}

// Len returns the number of shown lines.
func (n Narrowed) Len() int { return len(n.Lines) }

// Origin maps a shown line to its source line. It returns -1 for a line
// outside the view.
func (n Narrowed) Origin(lnum int) int {
	if lnum < 1 || lnum > len(n.origin) {
		return -1
	}
	return n.origin[lnum-1]
}
