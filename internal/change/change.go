// Package change defines the unit of reversible edit history. A Change is
// a closed tagged union rather than an open class hierarchy: Undo, Redo
// and Amalgamate dispatch over the variant tag, so no downcasting is ever
// needed and an unknown pairing is an explicit error instead of a panic.
package change

import (
	"errors"

	"github.com/halcyard/ebb/internal/buffer"
)

// Kind tags the variant of a Change.
type Kind int

const (
	// Insertion is a plain text insertion; it never merges.
	Insertion Kind = iota
	// MergeableInsertion is an insertion that can absorb a directly
	// following single-character insertion (a typing run).
	MergeableInsertion
	// Deletion carries the exact deleted text for undo.
	Deletion
	// Transposition is the self-inverse adjacent-character swap.
	Transposition
	// Replacement overwrites characters in place, carrying both the
	// original and the replacement text. Used by case-changing commands;
	// it never inserts or deletes, so line lengths are stable.
	Replacement
	// Composite wraps an inner change with point/mark snapshots taken
	// before and after the command that produced it.
	Composite
)

func (k Kind) String() string {
	switch k {
	case Insertion:
		return "insertion"
	case MergeableInsertion:
		return "mergeable-insertion"
	case Deletion:
		return "deletion"
	case Transposition:
		return "transposition"
	case Replacement:
		return "replacement"
	case Composite:
		return "composite"
	default:
		return "unknown"
	}
}

// ErrIncompatible reports an amalgamation attempt that violates the
// protocol: a composite may only ever be offered another composite.
var ErrIncompatible = errors.New("change: amalgamating incompatible change kinds")

// Change is one reversible edit.
type Change struct {
	kind Kind
	pos  int
	text []rune // inserted, deleted, or replacement text
	old  []rune // Replacement only: the original text

	inner         *Change // Composite only
	before, after buffer.Memento
}

// NewInsertion records text inserted at pos.
func NewInsertion(pos int, text []rune) *Change {
	return &Change{kind: Insertion, pos: pos, text: append([]rune{}, text...)}
}

// NewMergeableInsertion records an insertion open to amalgamation.
func NewMergeableInsertion(pos int, text []rune) *Change {
	return &Change{kind: MergeableInsertion, pos: pos, text: append([]rune{}, text...)}
}

// NewDeletion records deleted text removed from pos.
func NewDeletion(pos int, deleted []rune) *Change {
	return &Change{kind: Deletion, pos: pos, text: append([]rune{}, deleted...)}
}

// NewTransposition records an adjacent-character swap around pos.
func NewTransposition(pos int) *Change {
	return &Change{kind: Transposition, pos: pos}
}

// NewReplacement records an in-place overwrite at pos: old is the original
// text, text the replacement. Both must be newline-free and equal length.
func NewReplacement(pos int, old, text []rune) *Change {
	return &Change{
		kind: Replacement,
		pos:  pos,
		old:  append([]rune{}, old...),
		text: append([]rune{}, text...),
	}
}

// NewComposite wraps inner with the state snapshots taken around the
// command that produced it.
func NewComposite(before buffer.Memento, inner *Change, after buffer.Memento) *Change {
	return &Change{kind: Composite, inner: inner, before: before, after: after}
}

// Kind returns the variant tag.
func (c *Change) Kind() Kind { return c.kind }

// Pos returns the offset the change applies at.
func (c *Change) Pos() int { return c.pos }

// Text returns the change's accumulated text.
func (c *Change) Text() []rune { return c.text }

// Inner returns the wrapped change of a composite, or nil.
func (c *Change) Inner() *Change { return c.inner }

// Undo reverts the change against b.
func (c *Change) Undo(b *buffer.Buffer) {
	switch c.kind {
	case Insertion, MergeableInsertion:
		b.Delete(c.pos, len(c.text))
	case Deletion:
		b.Insert(c.pos, c.text)
	case Transposition:
		b.Transpose(c.pos)
	case Replacement:
		c.write(b, c.old)
	case Composite:
		c.inner.Undo(b)
		b.Restore(c.before)
	}
}

// Redo reapplies the change against b.
func (c *Change) Redo(b *buffer.Buffer) {
	switch c.kind {
	case Insertion, MergeableInsertion:
		b.Insert(c.pos, c.text)
	case Deletion:
		b.Delete(c.pos, len(c.text))
	case Transposition:
		b.Transpose(c.pos)
	case Replacement:
		c.write(b, c.text)
	case Composite:
		c.inner.Redo(b)
		b.Restore(c.after)
	}
}

// write overwrites characters in place starting at the change position.
func (c *Change) write(b *buffer.Buffer, text []rune) {
	for i, r := range text {
		b.SetAt(c.pos+i, r)
	}
}

// Amalgamate tries to merge other into c, so a typing run becomes a single
// history entry. It reports whether the merge happened. Only mergeable
// insertions combine: the receiver must not yet end in a newline and other
// must be the single-character insertion immediately following it.
// Offering a composite anything but another composite is a contract
// violation and returns ErrIncompatible.
func (c *Change) Amalgamate(other *Change) (bool, error) {
	switch c.kind {
	case MergeableInsertion:
		if other.kind != MergeableInsertion || len(other.text) != 1 {
			return false, nil
		}
		if len(c.text) > 0 && c.text[len(c.text)-1] == '\n' {
			return false, nil
		}
		if other.pos != c.pos+len(c.text) {
			return false, nil
		}
		c.text = append(c.text, other.text...)
		return true, nil
	case Composite:
		if other.kind != Composite {
			return false, ErrIncompatible
		}
		ok, err := c.inner.Amalgamate(other.inner)
		if err != nil {
			return false, err
		}
		if ok {
			// The merged run now ends where the newest keystroke left
			// the cursor.
			c.after = other.after
		}
		return ok, nil
	default:
		return false, nil
	}
}
