package receipt

import "github.com/shopspring/decimal"

// PrintWidth is the paper format a receipt is laid out for. Each width
// carries a fixed character column count and a maximum raster pixel
// width; both are immutable once a builder is created.
type PrintWidth int

const (
	// Width58mm is a 58 mm thermal roll, 32 columns at the standard font.
	Width58mm PrintWidth = iota
	// Width80mm is an 80 mm thermal roll, 48 columns.
	Width80mm
	// WidthA4 is an A4 / wide-carriage target, 90 columns.
	WidthA4
)

// Cols returns the printable character column count.
func (w PrintWidth) Cols() int {
	switch w {
	case Width58mm:
		return 32
	case WidthA4:
		return 90
	default:
		return 48
	}
}

// MaxImagePx returns the maximum raster image width in pixels for logo
// printing on this format.
func (w PrintWidth) MaxImagePx() int {
	switch w {
	case Width58mm:
		return 256
	case WidthA4:
		return 576
	default:
		return 384
	}
}

// IsThermal reports whether this is a roll-paper ESC/POS target.
func (w PrintWidth) IsThermal() bool {
	return w == Width58mm || w == Width80mm
}

// Align is a text alignment mode.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TaxEntry is a single tax line attached to a receipt. Included taxes
// are already part of the item prices and print for information only;
// non-included taxes are added on top of the subtotal. Entries with an
// amount at or below zero are inert: they are skipped, never errors.
type TaxEntry struct {
	Label    string
	Amount   decimal.Decimal
	Included bool
}

// NewTaxEntry is a convenience constructor.
func NewTaxEntry(label string, amount decimal.Decimal, included bool) TaxEntry {
	return TaxEntry{Label: label, Amount: amount, Included: included}
}
