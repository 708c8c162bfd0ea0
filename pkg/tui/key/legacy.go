// ABOUTME: CSI and SS3 escape sequences sent by common terminals for navigation keys
// ABOUTME: Covers arrows, home/end, paging, delete, and shift-tab

package key

var legacySequences = map[string]Key{
	"\x1b[A":  {Type: KeyUp},
	"\x1b[B":  {Type: KeyDown},
	"\x1b[C":  {Type: KeyRight},
	"\x1b[D":  {Type: KeyLeft},
	"\x1b[H":  {Type: KeyHome},
	"\x1b[F":  {Type: KeyEnd},
	"\x1b[5~": {Type: KeyPageUp},
	"\x1b[6~": {Type: KeyPageDown},
	"\x1b[3~": {Type: KeyDelete},
	"\x1b[1~": {Type: KeyHome},
	"\x1b[4~": {Type: KeyEnd},
	"\x1b[Z":  {Type: KeyBackTab, Shift: true},

	// application cursor mode
	"\x1bOA": {Type: KeyUp},
	"\x1bOB": {Type: KeyDown},
	"\x1bOC": {Type: KeyRight},
	"\x1bOD": {Type: KeyLeft},
	"\x1bOH": {Type: KeyHome},
	"\x1bOF": {Type: KeyEnd},
}
