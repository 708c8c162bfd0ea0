// ABOUTME: Display width of grid text: grapheme clusters measured in terminal cells
// ABOUTME: Plain ASCII takes a fast path; other strings are memoized in an LRU

package width

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const cacheSize = 512

var widthCache = newLRU[string, int](cacheSize)

// VisibleWidth returns the number of grid cells s occupies. ANSI escape
// sequences take no cells; East Asian wide characters and emoji take two.
func VisibleWidth(s string) int {
	if s == "" {
		return 0
	}
	if isPlainASCII(s) {
		return len(s)
	}
	if w, ok := widthCache.get(s); ok {
		return w
	}
	w := 0
	for c := range Clusters(s) {
		w += c.Width
	}
	widthCache.put(s, w)
	return w
}

// isPlainASCII reports whether s holds only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i]; b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// ClusterWidth returns the cells taken by one grapheme cluster. The width
// of a cluster is the width of its base rune, so combining marks add nothing.
func ClusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}

// firstCluster splits the leading grapheme cluster off s.
func firstCluster(s string) (cluster, rest string) {
	cluster, rest, _, _ = uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster, rest
}
