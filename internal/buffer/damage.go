package buffer

// Damage is the minimal redraw scope the display must perform after a
// command. Levels only escalate between flushes: Clean < RewriteLine <
// Rewrite.
type Damage int

const (
	Clean Damage = iota
	RewriteLine
	Rewrite
)

func (d Damage) String() string {
	switch d {
	case Clean:
		return "clean"
	case RewriteLine:
		return "rewrite-line"
	case Rewrite:
		return "rewrite"
	default:
		return "unknown"
	}
}

// Refresher receives accumulated damage when the buffer flushes. Line is
// the row to redraw when level is RewriteLine; row and col locate the
// cursor.
type Refresher interface {
	Refresh(level Damage, line, row, col int)
}
