// ABOUTME: Escape sequence handling for grid text: stripping, sequence length and SGR carry-over
// ABOUTME: Sequence decoding is delegated to charmbracelet/x/ansi

package width

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes every escape sequence from s.
func StripANSI(s string) string {
	if strings.IndexByte(s, '\x1b') < 0 {
		return s
	}
	return ansi.Strip(s)
}

// seqLen returns the byte length of the escape sequence at the start of s.
// An unterminated sequence runs to the end of s.
func seqLen(s string) int {
	_, _, n, _ := ansi.DecodeSequence(s, ansi.NormalState, nil)
	return max(n, 1)
}

// SGRState accumulates the graphic rendition sequences seen so far so a
// wrapped row can start with the style the previous row ended in.
type SGRState struct {
	seqs []string
}

// Apply records seq when it is an SGR sequence. A reset clears the state.
func (st *SGRState) Apply(seq string) {
	if !strings.HasPrefix(seq, "\x1b[") || !strings.HasSuffix(seq, "m") {
		return
	}
	if seq == "\x1b[m" || seq == "\x1b[0m" {
		st.seqs = st.seqs[:0]
		return
	}
	st.seqs = append(st.seqs, seq)
}

// String returns the sequences that restore the current style.
func (st *SGRState) String() string {
	return strings.Join(st.seqs, "")
}
