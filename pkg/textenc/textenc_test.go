package textenc

import (
	"bytes"
	"testing"
)

func TestEncode_FrenchAccents(t *testing.T) {
	got := Encode("café")
	want := []byte{'c', 'a', 'f', 0x82}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode(café) = %v, want %v", got, want)
	}
}

func TestEncode_EuroSign(t *testing.T) {
	got := Encode("10€")
	want := []byte{'1', '0', 0xD5}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode(10€) = %v, want %v", got, want)
	}
}

func TestEncode_UnmappedFallsBackToLowByte(t *testing.T) {
	// U+0394 GREEK CAPITAL LETTER DELTA is not in CP858; its low byte is 0x94.
	got := Encode("Δ")
	if len(got) != 1 || got[0] != 0x94 {
		t.Errorf("Encode(Δ) = %v, want [0x94]", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		text string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 5, "hello"},
		{"héllo wörld", 8, "héllo..."},
	}
	for _, c := range cases {
		got := Truncate(c.text, c.max)
		if got != c.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", c.text, c.max, got, c.want)
		}
		if c.max >= 3 && len([]rune(got)) > c.max {
			t.Errorf("Truncate(%q, %d) length %d exceeds bound", c.text, c.max, len([]rune(got)))
		}
	}
}

// Truncate with a bound below 3 keeps only the ellipsis, which can exceed
// the bound. Pinned so the behavior does not change silently.
func TestTruncate_TinyBoundKeepsEllipsis(t *testing.T) {
	got := Truncate("hello", 2)
	if got != "..." {
		t.Errorf("Truncate(hello, 2) = %q, want %q", got, "...")
	}
}

func TestCenter_PadsLeftOnly(t *testing.T) {
	got := Center("ab", 8)
	if got != "   ab" {
		t.Errorf("Center(ab, 8) = %q, want %q", got, "   ab")
	}
}

// Center returns over-width text unchanged instead of trimming it.
func TestCenter_OverflowUnchanged(t *testing.T) {
	got := Center("abcdef", 4)
	if got != "abcdef" {
		t.Errorf("Center overflow = %q, want input unchanged", got)
	}
}

func TestRightAlign(t *testing.T) {
	got := RightAlign("42", 6)
	if got != "    42" {
		t.Errorf("RightAlign(42, 6) = %q", got)
	}
	if n := len([]rune(got)); n != 6 {
		t.Errorf("RightAlign length = %d, want 6", n)
	}
}

func TestTwoColumn_FillsWidth(t *testing.T) {
	row := TwoColumn("TOTAL", "29500 FCFA", 48)
	if n := len([]rune(row)); n != 48 {
		t.Errorf("row length = %d, want 48", n)
	}
}

func TestTwoColumn_GapNeverZero(t *testing.T) {
	row := TwoColumn("aaaaaaaa", "bbbbbbbb", 10)
	if row != "aaaaaaaa bbbbbbbb" {
		t.Errorf("row = %q, want single-space gap", row)
	}
}
