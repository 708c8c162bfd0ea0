// ABOUTME: Cell-level iteration over grid text: clusters with their column and width
// ABOUTME: ANSI sequences are skipped by Clusters and kept by SliceByColumn

package width

import (
	"iter"
	"strings"
)

// Cluster is one visible grapheme cluster at a 0-based column.
type Cluster struct {
	Text  string
	Col   int
	Width int
}

// Clusters yields the visible clusters of s in order, skipping escape
// sequences. Control characters yield zero-width clusters.
func Clusters(s string) iter.Seq[Cluster] {
	return func(yield func(Cluster) bool) {
		col := 0
		for s != "" {
			if s[0] == '\x1b' {
				s = s[seqLen(s):]
				continue
			}
			cluster, rest := firstCluster(s)
			w := ClusterWidth(cluster)
			if !yield(Cluster{Text: cluster, Col: col, Width: w}) {
				return
			}
			col += w
			s = rest
		}
	}
}

// SliceByColumn returns the clusters of s that lie entirely inside columns
// [start, end). Escape sequences are kept so styling carries over. A wide
// cluster straddling either edge is dropped.
func SliceByColumn(s string, start, end int) string {
	if start >= end || s == "" {
		return ""
	}
	var b strings.Builder
	col := 0
	for s != "" {
		if s[0] == '\x1b' {
			n := seqLen(s)
			b.WriteString(s[:n])
			s = s[n:]
			continue
		}
		cluster, rest := firstCluster(s)
		w := ClusterWidth(cluster)
		if col >= start && col+w <= end {
			b.WriteString(cluster)
		}
		col += w
		s = rest
	}
	return b.String()
}

// PadRight appends spaces until s is n cells wide.
func PadRight(s string, n int) string {
	if w := VisibleWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
