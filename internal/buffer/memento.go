package buffer

// Memento is an immutable snapshot of the buffer's auxiliary state: point
// and mark. It never refers to text content, only positions.
type Memento struct {
	point int
	mark  int
}

// Point returns the captured point offset.
func (m Memento) Point() int { return m.point }

// Mark returns the captured mark offset.
func (m Memento) Mark() int { return m.mark }

// State captures the current point and mark.
func (b *Buffer) State() Memento {
	return Memento{point: b.point, mark: b.mark}
}

// Restore sets point and mark back to the captured values. The mark
// validity invariant re-applies automatically through the Mark accessor.
func (b *Buffer) Restore(m Memento) {
	b.SetPoint(m.point)
	b.mark = m.mark
}
