package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/halcyard/ebb/internal/buffer"
	"github.com/halcyard/ebb/internal/change"
	"github.com/halcyard/ebb/internal/history"
)

// stubDisplay satisfies Display for tests and records what the editor
// asked of it.
type stubDisplay struct {
	height    int
	beeps     int
	scrolled  int
	origins   int
	cleared   int
	messages  []string
	asked     int
	askAnswer bool
	readText  string
	readOK    bool

	refreshes int
	lastLevel buffer.Damage
	lastLine  int
	lastRow   int
	lastCol   int
}

func (d *stubDisplay) Refresh(level buffer.Damage, line, row, col int) {
	d.refreshes++
	d.lastLevel, d.lastLine, d.lastRow, d.lastCol = level, line, row, col
}

func (d *stubDisplay) Scroll(lines int) { d.scrolled += lines }
func (d *stubDisplay) ChooseOrigin()    { d.origins++ }
func (d *stubDisplay) SetMessage(format string, args ...interface{}) {
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
}
func (d *stubDisplay) ClearMessage() { d.cleared++ }
func (d *stubDisplay) Beep()         { d.beeps++ }
func (d *stubDisplay) Ask(question string) bool {
	d.asked++
	return d.askAnswer
}
func (d *stubDisplay) ReadString(prompt, def string) (string, bool) {
	return d.readText, d.readOK
}
func (d *stubDisplay) Height() int { return d.height }

func newTestEditor(t *testing.T, content string) (*Editor, *stubDisplay) {
	t.Helper()
	buf := buffer.New()
	buf.Insert(0, []rune(content))
	buf.SetPoint(0)
	d := &stubDisplay{height: 10}
	e := New(Config{
		Buffer:       buf,
		History:      history.New(buf),
		Display:      d,
		ScrollMargin: 2,
	})
	return e, d
}

func TestObeyWrapsEditsInComposite(t *testing.T) {
	e, d := newTestEditor(t, "")
	ch := e.Obey(SelfInsert('x'))
	if ch == nil {
		t.Fatal("Obey() = nil for an editing command")
	}
	if got := ch.Kind(); got != change.Composite {
		t.Errorf("Kind() = %v, want %v", got, change.Composite)
	}
	if got := ch.Inner().Kind(); got != change.MergeableInsertion {
		t.Errorf("Inner().Kind() = %v, want %v", got, change.MergeableInsertion)
	}
	if d.cleared != 1 {
		t.Errorf("ClearMessage called %d times, want 1", d.cleared)
	}
	if d.refreshes != 1 {
		t.Errorf("Refresh called %d times, want 1", d.refreshes)
	}
	if level, _ := e.Buffer().Damage(); level != buffer.Clean {
		t.Errorf("Damage() after obey = %v, want %v", level, buffer.Clean)
	}
}

func TestObeyReturnsNilForMotions(t *testing.T) {
	e, d := newTestEditor(t, "ab")
	if ch := e.Obey(MoveRight); ch != nil {
		t.Errorf("Obey(MoveRight) = %v, want nil", ch)
	}
	if d.refreshes != 1 {
		t.Errorf("Refresh called %d times, want 1 (motions still flush)", d.refreshes)
	}
}

func TestTypingRunIsOneUndoEntry(t *testing.T) {
	e, _ := newTestEditor(t, "")
	for _, r := range "abc" {
		e.Dispatch(SelfInsert(r))
	}
	if got := string(e.Buffer().Contents()); got != "abc" {
		t.Fatalf("contents = %q, want %q", got, "abc")
	}
	if got := e.History().Len(); got != 1 {
		t.Errorf("history Len() = %d, want 1", got)
	}

	e.Dispatch(Undo)
	if got := string(e.Buffer().Contents()); got != "" {
		t.Errorf("contents after one undo = %q, want empty", got)
	}
	if got := e.Buffer().Point(); got != 0 {
		t.Errorf("point after undo = %d, want 0", got)
	}
}

func TestMotionBreaksTypingRun(t *testing.T) {
	e, _ := newTestEditor(t, "")
	e.Dispatch(SelfInsert('a'))
	e.Dispatch(MoveLeft)
	e.Dispatch(MoveRight)
	e.Dispatch(SelfInsert('b'))
	if got := e.History().Len(); got != 2 {
		t.Errorf("history Len() = %d, want 2", got)
	}
}

func TestUndoRestoresPointAndMark(t *testing.T) {
	e, _ := newTestEditor(t, "abcd")
	e.Buffer().SetPoint(2)
	e.Dispatch(SetMark)
	e.Dispatch(SelfInsert('x'))
	if got := string(e.Buffer().Contents()); got != "abxcd" {
		t.Fatalf("contents = %q, want %q", got, "abxcd")
	}

	e.Dispatch(Undo)
	if got := string(e.Buffer().Contents()); got != "abcd" {
		t.Errorf("contents = %q, want %q", got, "abcd")
	}
	if e.Buffer().Point() != 2 || e.Buffer().Mark() != 2 {
		t.Errorf("point, mark = %d, %d, want 2, 2", e.Buffer().Point(), e.Buffer().Mark())
	}
}

func TestUndoAtBoundaryBeeps(t *testing.T) {
	e, d := newTestEditor(t, "")
	e.Dispatch(Undo)
	if d.beeps != 1 {
		t.Errorf("beeps = %d, want 1", d.beeps)
	}
	e.Dispatch(Redo)
	if d.beeps != 2 {
		t.Errorf("beeps = %d, want 2", d.beeps)
	}
}

func TestGoalColumnSurvivesShortLine(t *testing.T) {
	e, _ := newTestEditor(t, "hello\nhi\nworld")
	e.Buffer().SetPoint(4) // row 0, column 4

	e.Dispatch(MoveDown)
	if row, col := e.Buffer().RowCol(e.Buffer().Point()); row != 1 || col != 2 {
		t.Fatalf("after first down: (%d, %d), want (1, 2)", row, col)
	}
	e.Dispatch(MoveDown)
	if row, col := e.Buffer().RowCol(e.Buffer().Point()); row != 2 || col != 4 {
		t.Errorf("after second down: (%d, %d), want (2, 4)", row, col)
	}
}

func TestGoalColumnResetsAfterOtherCommand(t *testing.T) {
	e, _ := newTestEditor(t, "hello\nhi\nworld")
	e.Buffer().SetPoint(4)

	e.Dispatch(MoveDown)
	e.Dispatch(MoveLineStart)
	e.Dispatch(MoveDown)
	if row, col := e.Buffer().RowCol(e.Buffer().Point()); row != 2 || col != 0 {
		t.Errorf("position = (%d, %d), want (2, 0)", row, col)
	}
}

func TestVerticalMotionBeepsAtBufferEdges(t *testing.T) {
	e, d := newTestEditor(t, "one\ntwo")
	e.Dispatch(MoveUp)
	if d.beeps != 1 {
		t.Errorf("beeps after up at top = %d, want 1", d.beeps)
	}
	e.Buffer().SetPoint(5)
	e.Dispatch(MoveDown)
	if d.beeps != 2 {
		t.Errorf("beeps after down at bottom = %d, want 2", d.beeps)
	}
}

func TestHorizontalMotionBeepsAtBufferEdges(t *testing.T) {
	e, d := newTestEditor(t, "ab")
	e.Dispatch(MoveLeft)
	if d.beeps != 1 {
		t.Errorf("beeps = %d, want 1", d.beeps)
	}
	e.Buffer().SetPoint(2)
	e.Dispatch(MoveRight)
	if d.beeps != 2 {
		t.Errorf("beeps = %d, want 2", d.beeps)
	}
}

func TestLineMotions(t *testing.T) {
	e, _ := newTestEditor(t, "hello\nworld")
	e.Buffer().SetPoint(8)

	e.Dispatch(MoveLineStart)
	if got := e.Buffer().Point(); got != 6 {
		t.Errorf("point after line start = %d, want 6", got)
	}
	e.Dispatch(MoveLineEnd)
	if got := e.Buffer().Point(); got != 11 {
		t.Errorf("point after line end = %d, want 11", got)
	}
	e.Dispatch(MoveBufferStart)
	if got := e.Buffer().Point(); got != 0 {
		t.Errorf("point after buffer start = %d, want 0", got)
	}
	e.Dispatch(MoveBufferEnd)
	if got := e.Buffer().Point(); got != 11 {
		t.Errorf("point after buffer end = %d, want 11", got)
	}
}

func TestPageMotion(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "x"
	}
	e, d := newTestEditor(t, strings.Join(lines, "\n"))

	e.Dispatch(MovePageDown) // height 10, margin 2
	if row, _ := e.Buffer().RowCol(e.Buffer().Point()); row != 8 {
		t.Errorf("row after page down = %d, want 8", row)
	}
	if d.scrolled != 8 {
		t.Errorf("scrolled = %d, want 8", d.scrolled)
	}

	e.Dispatch(MovePageUp)
	if row, _ := e.Buffer().RowCol(e.Buffer().Point()); row != 0 {
		t.Errorf("row after page up = %d, want 0", row)
	}

	e.Dispatch(MovePageUp)
	if d.beeps != 1 {
		t.Errorf("beeps at top = %d, want 1", d.beeps)
	}
}

func TestDeleteBackwardAndForward(t *testing.T) {
	e, d := newTestEditor(t, "abc")
	e.Dispatch(DeleteBackward)
	if d.beeps != 1 {
		t.Errorf("beeps at start = %d, want 1", d.beeps)
	}

	e.Buffer().SetPoint(3)
	e.Dispatch(DeleteForward)
	if d.beeps != 2 {
		t.Errorf("beeps at end = %d, want 2", d.beeps)
	}

	e.Dispatch(DeleteBackward)
	if got := string(e.Buffer().Contents()); got != "ab" {
		t.Errorf("contents = %q, want %q", got, "ab")
	}
	e.Buffer().SetPoint(0)
	e.Dispatch(DeleteForward)
	if got := string(e.Buffer().Contents()); got != "b" {
		t.Errorf("contents = %q, want %q", got, "b")
	}
}

func TestDeleteToLineEndJoinsLines(t *testing.T) {
	e, _ := newTestEditor(t, "hello\nworld")
	e.Buffer().SetPoint(2)

	e.Dispatch(DeleteToLineEnd)
	if got := string(e.Buffer().Contents()); got != "he\nworld" {
		t.Fatalf("contents = %q, want %q", got, "he\nworld")
	}
	e.Dispatch(DeleteToLineEnd) // at end of line: takes the newline
	if got := string(e.Buffer().Contents()); got != "heworld" {
		t.Fatalf("contents = %q, want %q", got, "heworld")
	}

	e.Dispatch(Undo)
	e.Dispatch(Undo)
	if got := string(e.Buffer().Contents()); got != "hello\nworld" {
		t.Errorf("contents after undo = %q, want %q", got, "hello\nworld")
	}
}

func TestDeleteToLineEndAtBufferEndBeeps(t *testing.T) {
	e, d := newTestEditor(t, "ab")
	e.Buffer().SetPoint(2)
	e.Dispatch(DeleteToLineEnd)
	if d.beeps != 1 {
		t.Errorf("beeps = %d, want 1", d.beeps)
	}
}

func TestTransposeCommand(t *testing.T) {
	e, _ := newTestEditor(t, "hello\nworld")
	e.Buffer().SetPoint(5)

	e.Dispatch(Transpose)
	if got := string(e.Buffer().Contents()); got != "helol\nworld" {
		t.Fatalf("contents = %q, want %q", got, "helol\nworld")
	}
	e.Dispatch(Undo)
	if got := string(e.Buffer().Contents()); got != "hello\nworld" {
		t.Errorf("contents after undo = %q, want %q", got, "hello\nworld")
	}
}

func TestTransposeBeepsOnShortLine(t *testing.T) {
	e, d := newTestEditor(t, "a")
	e.Dispatch(Transpose)
	if d.beeps != 1 {
		t.Errorf("beeps = %d, want 1", d.beeps)
	}
	if got := e.History().Len(); got != 0 {
		t.Errorf("history Len() = %d, want 0", got)
	}
}

func TestUppercaseWord(t *testing.T) {
	e, _ := newTestEditor(t, "go forth now")
	e.Buffer().SetPoint(4) // inside "forth"

	e.Dispatch(UppercaseWord)
	if got := string(e.Buffer().Contents()); got != "go FORTH now" {
		t.Fatalf("contents = %q, want %q", got, "go FORTH now")
	}
	if got := e.Buffer().Point(); got != 4 {
		t.Errorf("point = %d, want 4 (unchanged)", got)
	}

	e.Dispatch(Undo)
	if got := string(e.Buffer().Contents()); got != "go forth now" {
		t.Errorf("contents after undo = %q, want %q", got, "go forth now")
	}
	e.Dispatch(Redo)
	if got := string(e.Buffer().Contents()); got != "go FORTH now" {
		t.Errorf("contents after redo = %q, want %q", got, "go FORTH now")
	}
}

func TestUppercaseWordOffWordBeeps(t *testing.T) {
	e, d := newTestEditor(t, "go forth")
	e.Buffer().SetPoint(2) // on the space
	e.Dispatch(UppercaseWord)
	if d.beeps != 1 {
		t.Errorf("beeps = %d, want 1", d.beeps)
	}
}

func TestSetAndExchangeMark(t *testing.T) {
	e, d := newTestEditor(t, "abcdef")
	e.Buffer().SetPoint(4)
	e.Dispatch(SetMark)
	if len(d.messages) == 0 || d.messages[len(d.messages)-1] != "Mark set" {
		t.Errorf("messages = %v, want a trailing %q", d.messages, "Mark set")
	}

	e.Dispatch(MoveLeft)
	e.Dispatch(MoveLeft)
	e.Dispatch(ExchangeMark)
	if got := e.Buffer().Point(); got != 4 {
		t.Errorf("point = %d, want 4", got)
	}
	if got := e.Buffer().Mark(); got != 2 {
		t.Errorf("mark = %d, want 2", got)
	}
}

func TestQuitConfirmsWhenModified(t *testing.T) {
	e, d := newTestEditor(t, "unsaved")

	d.askAnswer = false
	e.Dispatch(Quit)
	if !e.Alive() {
		t.Fatal("Alive() = false after declined quit, want true")
	}
	if d.asked != 1 {
		t.Errorf("asked = %d, want 1", d.asked)
	}

	d.askAnswer = true
	e.Dispatch(Quit)
	if e.Alive() {
		t.Error("Alive() = true after confirmed quit, want false")
	}
}

func TestQuitWithoutEditsSkipsConfirmation(t *testing.T) {
	e, d := newTestEditor(t, "")
	e.Dispatch(Quit)
	if e.Alive() {
		t.Error("Alive() = true, want false")
	}
	if d.asked != 0 {
		t.Errorf("asked = %d, want 0", d.asked)
	}
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	e, _ := newTestEditor(t, "persist me")
	e.Buffer().SetFilename(path)

	e.Dispatch(Save)
	if e.Buffer().Modified() {
		t.Error("Modified() = true after save, want false")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if got := string(data); got != "persist me" {
		t.Errorf("file contents = %q, want %q", got, "persist me")
	}
}

func TestSavePromptsForFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.txt")
	e, d := newTestEditor(t, "data")
	d.readText, d.readOK = path, true

	e.Dispatch(Save)
	if got := e.Buffer().Filename(); got != path {
		t.Errorf("Filename() = %q, want %q", got, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestSaveCancelledKeepsModified(t *testing.T) {
	e, d := newTestEditor(t, "data")
	d.readOK = false

	e.Dispatch(Save)
	if !e.Buffer().Modified() {
		t.Error("Modified() = false after cancelled save, want true")
	}
}

func TestLoadReplacesContentAndResetsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("fresh"), 0644); err != nil {
		t.Fatal(err)
	}

	e, d := newTestEditor(t, "")
	e.Dispatch(SelfInsert('x'))
	if got := e.History().Len(); got != 1 {
		t.Fatalf("history Len() = %d, want 1", got)
	}

	d.readText, d.readOK = path, true
	e.Dispatch(Load)
	if got := string(e.Buffer().Contents()); got != "fresh" {
		t.Errorf("contents = %q, want %q", got, "fresh")
	}
	if got := e.History().Len(); got != 0 {
		t.Errorf("history Len() after load = %d, want 0", got)
	}
	if d.origins != 1 {
		t.Errorf("ChooseOrigin called %d times, want 1", d.origins)
	}
	if e.Buffer().Modified() {
		t.Error("Modified() = true after load, want false")
	}
}

func TestLoadCancelledLeavesBuffer(t *testing.T) {
	e, d := newTestEditor(t, "keep")
	d.readOK = false
	e.Dispatch(Load)
	if got := string(e.Buffer().Contents()); got != "keep" {
		t.Errorf("contents = %q, want %q", got, "keep")
	}
}
