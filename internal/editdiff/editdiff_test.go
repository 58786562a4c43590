package editdiff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concat(d Diff) (string, string) {
	var o, n strings.Builder
	for _, h := range d.Hunks {
		o.WriteString(h.Old)
		n.WriteString(h.New)
	}
	return o.String(), n.String()
}

func TestCompute(t *testing.T) {
	d := Compute("a\nb\nc\n", "a\nB\nc\n")
	require.Len(t, d.Hunks, 3)
	assert.Equal(t, OpEqual, d.Hunks[0].Op)
	assert.Equal(t, "a\n", d.Hunks[0].Old)
	assert.Nil(t, d.Hunks[0].Lines)

	h := d.Hunks[1]
	assert.Equal(t, OpReplace, h.Op)
	require.Len(t, h.Lines, 1)
	assert.Equal(t, "b\n", h.Lines[0].Old)
	assert.Equal(t, "B\n", h.Lines[0].New)
	assert.Equal(t, []Span{{Op: OpReplace, Old: "b", New: "B"}}, h.Lines[0].Spans)

	assert.Equal(t, OpEqual, d.Hunks[2].Op)
	assert.Equal(t, "c\n", d.Hunks[2].New)
}

func TestCompute_CoversBothTexts(t *testing.T) {
	tests := []struct{ old, new string }{
		{"", ""},
		{"", "a\n"},
		{"a\n", ""},
		{"a\nb", "a\nb\nc"},
		{"one\ntwo\nthree\n", "zero\none\nthree\nfour\n"},
		{"x = 1;\ny = 2;\n", "x = 10;\ny = 2;\n"},
	}
	for _, tt := range tests {
		d := Compute(tt.old, tt.new)
		o, n := concat(d)
		assert.Equal(t, tt.old, o)
		assert.Equal(t, tt.new, n)
		assert.Equal(t, tt.old != tt.new, d.HasChanges())
	}
}

func TestCompute_UnevenHunk(t *testing.T) {
	d := Compute("a\nb\nc\n", "x\n")
	require.Len(t, d.Hunks, 1)
	h := d.Hunks[0]
	assert.Equal(t, OpReplace, h.Op)
	require.Len(t, h.Lines, 3)
	assert.Equal(t, OpReplace, h.Lines[0].Op)
	assert.Equal(t, OpDelete, h.Lines[1].Op)
	assert.Equal(t, OpDelete, h.Lines[2].Op)
	assert.Equal(t, Stats{Added: 1, Removed: 3}, d.Stats())
}

func TestCompute_Spans(t *testing.T) {
	d := Compute("x = 1;\n", "x = 10;\n")
	require.Len(t, d.Hunks, 1)
	require.Len(t, d.Hunks[0].Lines, 1)
	spans := d.Hunks[0].Lines[0].Spans
	assert.Equal(t, []Span{
		{Op: OpEqual, Old: "x = 1", New: "x = 1"},
		{Op: OpInsert, New: "0"},
		{Op: OpEqual, Old: ";", New: ";"},
	}, spans)
}

func TestUnified(t *testing.T) {
	d := Compute("a\nb\nc\n", "a\nB\nc\n")
	want := "--- old.js\n+++ new.js\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n"
	assert.Equal(t, want, d.Unified("old.js", "new.js", 3, false))
	assert.Equal(t, "", Compute("same\n", "same\n").Unified("a", "b", 3, false))
}

func TestUnified_SeparateHunks(t *testing.T) {
	var oldLines, newLines []string
	for i := 1; i <= 10; i++ {
		oldLines = append(oldLines, "l"+string(rune('0'+i%10)))
	}
	newLines = append(newLines, oldLines...)
	newLines[1] = "L2"
	newLines[8] = "L9"
	d := Compute(strings.Join(oldLines, "\n")+"\n", strings.Join(newLines, "\n")+"\n")

	got := d.Unified("a", "b", 1, false)
	want := "--- a\n+++ b\n" +
		"@@ -1,3 +1,3 @@\n l1\n-l2\n+L2\n l3\n" +
		"@@ -8,3 +8,3 @@\n l8\n-l9\n+L9\n l0\n"
	assert.Equal(t, want, got)

	merged := d.Unified("a", "b", 3, false)
	assert.Equal(t, 1, strings.Count(merged, "@@ -"))
	assert.Contains(t, merged, "@@ -1,10 +1,10 @@")
}

func TestUnified_PureInsert(t *testing.T) {
	d := Compute("b\n", "a\nb\n")
	assert.Equal(t, "--- a\n+++ b\n@@ -0,0 +1 @@\n+a\n", d.Unified("a", "b", 0, false))
}

func TestUnified_Color(t *testing.T) {
	d := Compute("a\n", "b\n")
	got := d.Unified("x", "y", 3, true)
	assert.Contains(t, got, ansiRed+"-a"+ansiReset)
	assert.Contains(t, got, ansiGreen+"+b"+ansiReset)
	assert.Contains(t, got, ansiMagenta+"@@ -1 +1 @@"+ansiReset)
}
