package textenc

import "strings"

// Truncate limits text to maxChars runes, replacing the tail with "..."
// when it does not fit. For maxChars >= 3 the result is exactly maxChars
// runes when truncation happens. For maxChars < 3 the cut length
// saturates to zero and the output can exceed the requested bound by up
// to two runes; that quirk is part of the established output and is kept.
func Truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	cut := maxChars - 3
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + "..."
}

// Center pads text on the left so it sits centred within width columns.
// It never pads on the right: printers trim trailing whitespace anyway.
// Text at or beyond width is returned unchanged, even if it overflows.
func Center(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RightAlign left-pads text to exactly width columns. Text at or beyond
// width is returned unchanged.
func RightAlign(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return strings.Repeat(" ", width-n) + text
}

// TwoColumn builds a row with left flush-left and right flush-right
// spanning width columns. The gap never drops below one space; when the
// two sides fill the row the gap collapses to exactly one and the row
// may exceed width.
func TwoColumn(left, right string, width int) string {
	gap := width - len([]rune(left)) - len([]rune(right))
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
