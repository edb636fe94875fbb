package diag

import (
	"strings"
	"testing"
)

func TestFormatIncludesFileAndGutterAndCaret(t *testing.T) {
	d := New("main.glox", "var x = ;", "unexpected token", 1, 9)
	got := d.Format()
	if !strings.Contains(got, "Error in main.glox:1") {
		t.Errorf("got %q, missing header", got)
	}
	if !strings.Contains(got, "var x = ;") {
		t.Errorf("got %q, missing source line", got)
	}
	if !strings.Contains(got, "unexpected token") {
		t.Errorf("got %q, missing message", got)
	}
	lines := strings.Split(got, "\n")
	gutterLine := lines[1]
	caretLine := lines[2]
	if len(caretLine) == 0 || caretLine[len(caretLine)-1] != '^' {
		t.Errorf("got caret line %q, want it to end in ^", caretLine)
	}
	gutterWidth := len(gutterLine) - len("var x = ;")
	wantCaretLen := gutterWidth + 9
	if len(caretLine) != wantCaretLen {
		t.Errorf("got caret line length %d, want %d (caret under column 9)", len(caretLine), wantCaretLen)
	}
}

func TestFormatWithoutFileUsesLineOnlyHeader(t *testing.T) {
	d := New("", "", "boom", 5, 0)
	got := d.Format()
	if !strings.Contains(got, "Error at line 5") {
		t.Errorf("got %q, want a line-only header", got)
	}
}

func TestFormatOmitsCaretWhenColumnIsZero(t *testing.T) {
	d := New("main.glox", "print x;", "undefined variable 'x'", 1, 0)
	got := d.Format()
	if strings.Contains(got, "^") {
		t.Errorf("got %q, caret must be omitted when column is 0", got)
	}
}

func TestFormatOmitsSourceLineWhenLineOutOfRange(t *testing.T) {
	d := New("main.glox", "var x = 1;", "boom", 99, 0)
	got := d.Format()
	if strings.Contains(got, "99 | ") {
		t.Errorf("got %q, should not render a gutter for an out-of-range line", got)
	}
}

func TestBagAccumulatesAndFormatsAll(t *testing.T) {
	var bag Bag
	bag.Add(New("a.glox", "", "first", 1, 0))
	bag.Add(New("a.glox", "", "second", 2, 0))
	if bag.Len() != 2 {
		t.Fatalf("got %d, want 2", bag.Len())
	}
	got := bag.Format()
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("got %q, want both messages", got)
	}
	if idx1, idx2 := strings.Index(got, "first"), strings.Index(got, "second"); idx1 >= idx2 {
		t.Errorf("diagnostics must render in insertion order")
	}
}
