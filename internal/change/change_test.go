package change

import (
	"errors"
	"testing"

	"github.com/halcyard/ebb/internal/buffer"
)

func newBufferWith(t *testing.T, content string) *buffer.Buffer {
	t.Helper()
	b := buffer.New()
	b.Insert(0, []rune(content))
	b.SetPoint(0)
	return b
}

func contents(b *buffer.Buffer) string {
	return string(b.Contents())
}

func TestInsertionUndoRedo(t *testing.T) {
	b := newBufferWith(t, "abcd")
	b.Insert(2, []rune("XY"))
	ch := NewInsertion(2, []rune("XY"))

	ch.Undo(b)
	if got := contents(b); got != "abcd" {
		t.Errorf("after undo: contents = %q, want %q", got, "abcd")
	}
	ch.Redo(b)
	if got := contents(b); got != "abXYcd" {
		t.Errorf("after redo: contents = %q, want %q", got, "abXYcd")
	}
}

func TestDeletionUndoRedo(t *testing.T) {
	b := newBufferWith(t, "abcd")
	deleted := b.Delete(1, 2)
	ch := NewDeletion(1, deleted)

	ch.Undo(b)
	if got := contents(b); got != "abcd" {
		t.Errorf("after undo: contents = %q, want %q", got, "abcd")
	}
	ch.Redo(b)
	if got := contents(b); got != "ad" {
		t.Errorf("after redo: contents = %q, want %q", got, "ad")
	}
}

func TestDeletionAcrossLines(t *testing.T) {
	b := newBufferWith(t, "hello\nworld")
	deleted := b.Delete(3, 5)
	ch := NewDeletion(3, deleted)

	ch.Undo(b)
	if got := contents(b); got != "hello\nworld" {
		t.Errorf("after undo: contents = %q, want %q", got, "hello\nworld")
	}
}

func TestTranspositionIsSelfInverse(t *testing.T) {
	b := newBufferWith(t, "hello\nworld")
	b.Transpose(5)
	ch := NewTransposition(5)

	ch.Undo(b)
	if got := contents(b); got != "hello\nworld" {
		t.Errorf("after undo: contents = %q, want %q", got, "hello\nworld")
	}
	ch.Redo(b)
	if got := contents(b); got != "helol\nworld" {
		t.Errorf("after redo: contents = %q, want %q", got, "helol\nworld")
	}
}

func TestReplacementUndoRedo(t *testing.T) {
	b := newBufferWith(t, "go forth")
	ch := NewReplacement(3, []rune("forth"), []rune("FORTH"))

	ch.Redo(b)
	if got := contents(b); got != "go FORTH" {
		t.Errorf("after redo: contents = %q, want %q", got, "go FORTH")
	}
	ch.Undo(b)
	if got := contents(b); got != "go forth" {
		t.Errorf("after undo: contents = %q, want %q", got, "go forth")
	}
}

func TestAmalgamateTypingRun(t *testing.T) {
	c := NewMergeableInsertion(0, []rune("a"))
	for i, r := range []rune("bc") {
		other := NewMergeableInsertion(i+1, []rune{r})
		merged, err := c.Amalgamate(other)
		if err != nil {
			t.Fatalf("Amalgamate() error: %v", err)
		}
		if !merged {
			t.Fatalf("Amalgamate() = false for %q, want true", r)
		}
	}
	if got := string(c.Text()); got != "abc" {
		t.Errorf("accumulated text = %q, want %q", got, "abc")
	}
}

func TestAmalgamateRejections(t *testing.T) {
	tests := []struct {
		name  string
		c     *Change
		other *Change
	}{
		{
			"non-adjacent position",
			NewMergeableInsertion(0, []rune("ab")),
			NewMergeableInsertion(5, []rune("c")),
		},
		{
			"multi-character successor",
			NewMergeableInsertion(0, []rune("ab")),
			NewMergeableInsertion(2, []rune("cd")),
		},
		{
			"accumulated text ends in newline",
			NewMergeableInsertion(0, []rune("ab\n")),
			NewMergeableInsertion(3, []rune("c")),
		},
		{
			"plain insertion successor",
			NewMergeableInsertion(0, []rune("ab")),
			NewInsertion(2, []rune("c")),
		},
		{
			"plain insertion receiver",
			NewInsertion(0, []rune("ab")),
			NewMergeableInsertion(2, []rune("c")),
		},
		{
			"deletion receiver",
			NewDeletion(0, []rune("ab")),
			NewMergeableInsertion(0, []rune("c")),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := tt.c.Amalgamate(tt.other)
			if err != nil {
				t.Fatalf("Amalgamate() error: %v", err)
			}
			if merged {
				t.Error("Amalgamate() = true, want false")
			}
		})
	}
}

func TestCompositeAmalgamateAdoptsNewestState(t *testing.T) {
	b := newBufferWith(t, "")

	b.Insert(0, []rune("a"))
	b.SetPoint(1)
	first := NewComposite(buffer.Memento{}, NewMergeableInsertion(0, []rune("a")), b.State())

	b.Insert(1, []rune("b"))
	b.SetPoint(2)
	newest := b.State()
	second := NewComposite(first.after, NewMergeableInsertion(1, []rune("b")), newest)

	merged, err := first.Amalgamate(second)
	if err != nil {
		t.Fatalf("Amalgamate() error: %v", err)
	}
	if !merged {
		t.Fatal("Amalgamate() = false, want true")
	}
	if got := string(first.Inner().Text()); got != "ab" {
		t.Errorf("inner text = %q, want %q", got, "ab")
	}
	if first.after != newest {
		t.Errorf("after snapshot = %+v, want %+v", first.after, newest)
	}
}

func TestCompositeRejectsNonComposite(t *testing.T) {
	comp := NewComposite(buffer.Memento{}, NewMergeableInsertion(0, []rune("a")), buffer.Memento{})
	_, err := comp.Amalgamate(NewMergeableInsertion(1, []rune("b")))
	if !errors.Is(err, ErrIncompatible) {
		t.Errorf("Amalgamate() error = %v, want %v", err, ErrIncompatible)
	}
}

func TestCompositeUndoRestoresState(t *testing.T) {
	b := newBufferWith(t, "abcd")
	b.SetPoint(4)
	b.SetMark(1)
	before := b.State()

	b.Insert(4, []rune("!"))
	b.SetPoint(5)
	after := b.State()
	comp := NewComposite(before, NewInsertion(4, []rune("!")), after)

	comp.Undo(b)
	if got := contents(b); got != "abcd" {
		t.Errorf("after undo: contents = %q, want %q", got, "abcd")
	}
	if b.Point() != 4 || b.Mark() != 1 {
		t.Errorf("after undo: point, mark = %d, %d, want 4, 1", b.Point(), b.Mark())
	}

	comp.Redo(b)
	if got := contents(b); got != "abcd!" {
		t.Errorf("after redo: contents = %q, want %q", got, "abcd!")
	}
	if b.Point() != 5 {
		t.Errorf("after redo: point = %d, want 5", b.Point())
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Insertion, "insertion"},
		{MergeableInsertion, "mergeable-insertion"},
		{Deletion, "deletion"},
		{Transposition, "transposition"},
		{Replacement, "replacement"},
		{Composite, "composite"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
