// ABOUTME: Cell-based wrapping and truncation of panel text and titles
// ABOUTME: Wrapping breaks at the column limit, not at word boundaries

package width

import "strings"

// Wrap splits s into rows of at most n cells. A newline forces a break and
// the active SGR state is re-emitted at the start of each following row.
// A cluster wider than n gets a row of its own.
func Wrap(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	var (
		rows []string
		row  strings.Builder
		used int
		sgr  SGRState
	)
	flush := func() {
		rows = append(rows, row.String())
		row.Reset()
		used = 0
		row.WriteString(sgr.String())
	}
	for s != "" {
		switch s[0] {
		case '\n':
			flush()
			s = s[1:]
		case '\x1b':
			k := seqLen(s)
			sgr.Apply(s[:k])
			row.WriteString(s[:k])
			s = s[k:]
		default:
			cluster, rest := firstCluster(s)
			w := ClusterWidth(cluster)
			if used > 0 && used+w > n {
				flush()
			}
			row.WriteString(cluster)
			used += w
			s = rest
		}
	}
	return append(rows, row.String())
}

// Truncate shortens s to at most n cells, ending in an ellipsis when
// anything was cut.
func Truncate(s string, n int) string {
	switch {
	case n <= 0:
		return ""
	case VisibleWidth(s) <= n:
		return s
	case n == 1:
		return "…"
	}
	var b strings.Builder
	for c := range Clusters(s) {
		if c.Col+c.Width > n-1 {
			break
		}
		b.WriteString(c.Text)
	}
	b.WriteRune('…')
	return b.String()
}
