package report

import (
	"bytes"
	"testing"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Label", "Value", "Error"}
	rows := [][]string{
		{"f_D", "0.2012", ""},
		{"M_D(f_+, q2 = 0.0)", "1.9", "x"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Label               Value Error" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "f_D                0.2012" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "M_D(f_+, q2 = 0.0)    1.9 x" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthCountsCells(t *testing.T) {
	if got := displayWidth("D→π"); got != 3 {
		t.Fatalf("displayWidth = %d, want 3", got)
	}
	if got := padCell("ρ", 3, true); got != "  ρ" {
		t.Fatalf("padCell = %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTable(&buf, []string{"a", "b"}, [][]string{{"1", "2"}}, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a b\n1 2\n" {
		t.Fatalf("unexpected table: %q", buf.String())
	}
}
