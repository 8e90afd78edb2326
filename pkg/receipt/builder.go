// Package receipt provides a fluent, write-only builder that turns
// receipt-level concepts (shop headers, line items, tax blocks, totals)
// into a raw ESC/POS byte stream.
//
// A Builder only ever appends: no operation retracts or rewrites bytes
// already emitted, and the builder never tracks device state. Build
// consumes the builder; afterwards every operation is a no-op.
package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/printcore/thermoprint/pkg/escpos"
	"github.com/printcore/thermoprint/pkg/i18n"
	"github.com/printcore/thermoprint/pkg/raster"
	"github.com/printcore/thermoprint/pkg/textenc"
)

// DefaultCurrency is the currency symbol used until Currency overrides it.
const DefaultCurrency = "FCFA"

// Builder accumulates the ESC/POS byte stream for one receipt.
//
//	bytes := receipt.New(receipt.Width80mm).
//		Init().
//		ShopHeader("MA BOUTIQUE", "+221 77 000 00 00", "Dakar").
//		Item("Polo shirt", 2, decimal.NewFromInt(15000), nil).
//		Total(decimal.NewFromInt(30000)).
//		Cut().
//		Build()
type Builder struct {
	data     []byte
	width    PrintWidth
	currency string
	labels   i18n.Labels
	built    bool
}

// New creates a builder for the given paper width. The currency symbol
// defaults to "FCFA" and labels to French; override both before emitting
// the first money or label text.
func New(width PrintWidth) *Builder {
	return &Builder{
		width:    width,
		currency: DefaultCurrency,
		labels:   i18n.French.Labels(),
	}
}

// Currency sets the symbol appended to every formatted amount.
func (b *Builder) Currency(symbol string) *Builder {
	b.currency = symbol
	return b
}

// Language selects the label set used by the high-level helpers.
func (b *Builder) Language(lang i18n.Language) *Builder {
	b.labels = lang.Labels()
	return b
}

// Build consumes the builder and returns the accumulated byte stream.
// The builder yields nothing afterwards: further operations are no-ops
// and a second Build returns nil.
func (b *Builder) Build() []byte {
	if b.built {
		return nil
	}
	b.built = true
	data := b.data
	b.data = nil
	return data
}

func (b *Builder) cols() int { return b.width.Cols() }

func (b *Builder) push(bytes []byte) {
	if b.built {
		return
	}
	b.data = append(b.data, bytes...)
}

func (b *Builder) pushLF() {
	if b.built {
		return
	}
	b.data = append(b.data, escpos.LF)
}

func (b *Builder) pushText(text string) {
	b.push(textenc.Encode(text))
}

func (b *Builder) pushTextLine(text string) {
	b.pushText(text)
	b.pushLF()
}

// FormatAmount renders an amount as whole currency units plus the
// symbol. Fractional-unit display is out of scope; rounding is to
// nearest even, applied only at formatting time.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return amount.RoundBank(0).String() + " " + currency
}

func (b *Builder) fmtAmount(amount decimal.Decimal) string {
	return FormatAmount(amount, b.currency)
}

// Init resets the printer and establishes the codepage and default
// style. Always call it first. The reset is sent twice to clear residual
// state on stubborn printers.
func (b *Builder) Init() *Builder {
	b.push(escpos.Init())
	b.pushLF()
	b.push(escpos.Init())
	b.pushLF()
	b.push(escpos.CodePage858())
	b.push(escpos.AlignLeft())
	b.push(escpos.NormalSize())
	b.push(escpos.BoldOff())
	b.pushLF()
	return b
}

// Align sets the text alignment.
func (b *Builder) Align(a Align) *Builder {
	switch a {
	case AlignCenter:
		b.push(escpos.AlignCenter())
	case AlignRight:
		b.push(escpos.AlignRight())
	default:
		b.push(escpos.AlignLeft())
	}
	return b
}

// AlignLeft is shorthand for Align(AlignLeft).
func (b *Builder) AlignLeft() *Builder { return b.Align(AlignLeft) }

// AlignCenter is shorthand for Align(AlignCenter).
func (b *Builder) AlignCenter() *Builder { return b.Align(AlignCenter) }

// AlignRight is shorthand for Align(AlignRight).
func (b *Builder) AlignRight() *Builder { return b.Align(AlignRight) }

// Bold toggles bold text.
func (b *Builder) Bold(on bool) *Builder {
	if on {
		b.push(escpos.BoldOn())
	} else {
		b.push(escpos.BoldOff())
	}
	return b
}

// DoubleSize toggles double width and height.
func (b *Builder) DoubleSize(on bool) *Builder {
	if on {
		b.push(escpos.DoubleSizeOn())
	} else {
		b.push(escpos.NormalSize())
	}
	return b
}

// DoubleHeight toggles double height at normal width.
func (b *Builder) DoubleHeight(on bool) *Builder {
	if on {
		b.push(escpos.DoubleHeightOn())
	} else {
		b.push(escpos.NormalSize())
	}
	return b
}

// NormalSize resets to single width and height.
func (b *Builder) NormalSize() *Builder {
	b.push(escpos.NormalSize())
	return b
}

// Underline toggles underlining.
func (b *Builder) Underline(on bool) *Builder {
	if on {
		b.push(escpos.UnderlineOn())
	} else {
		b.push(escpos.UnderlineOff())
	}
	return b
}

// Text appends encoded text without a trailing line feed.
func (b *Builder) Text(s string) *Builder {
	b.pushText(s)
	return b
}

// TextLine appends encoded text with a trailing line feed.
func (b *Builder) TextLine(s string) *Builder {
	b.pushTextLine(s)
	return b
}

// Blank appends an empty line.
func (b *Builder) Blank() *Builder {
	b.pushLF()
	return b
}

// Divider appends ch repeated across the full column width. The rune is
// emitted as raw UTF-8, letting box-drawing characters through on
// printers that support them.
func (b *Builder) Divider(ch rune) *Builder {
	b.push([]byte(strings.Repeat(string(ch), b.cols())))
	b.pushLF()
	return b
}

// Centered appends a line padded to the centre of the row.
func (b *Builder) Centered(text string) *Builder {
	b.pushTextLine(textenc.Center(text, b.cols()))
	return b
}

// Right appends a right-aligned line.
func (b *Builder) Right(text string) *Builder {
	b.pushTextLine(textenc.RightAlign(text, b.cols()))
	return b
}

// Row appends a two-column row: label flush-left, value flush-right.
func (b *Builder) Row(left, right string) *Builder {
	b.pushTextLine(textenc.TwoColumn(left, right, b.cols()))
	return b
}

// Feed advances the paper n lines.
func (b *Builder) Feed(n byte) *Builder {
	b.push(escpos.FeedLines(n))
	return b
}

// Cut performs a partial cut, the safest default for most printers.
func (b *Builder) Cut() *Builder {
	b.push(escpos.CutPartial())
	return b
}

// CutFull performs a full cut.
func (b *Builder) CutFull() *Builder {
	b.push(escpos.CutFull())
	return b
}

// FormFeed ejects the page on A4 / impact printers.
func (b *Builder) FormFeed() *Builder {
	b.push(escpos.FormFeed())
	return b
}

// BarcodeCode128 prints a CODE128 barcode with the standard dimensions
// (module width 2, height 60 dots, HRI below in font A).
func (b *Builder) BarcodeCode128(value string) *Builder {
	return b.BarcodeCode128Custom(value, 2, 60)
}

// BarcodeCode128Custom prints a CODE128 barcode with explicit module
// width (1-6) and height in dots.
func (b *Builder) BarcodeCode128Custom(value string, barWidth, barHeight byte) *Builder {
	b.push(escpos.BarcodeWidth(barWidth))
	b.push(escpos.BarcodeHeight(barHeight))
	b.push(escpos.BarcodeHRIPosition(2))
	b.push(escpos.BarcodeHRIFont(0))
	b.push(escpos.BarcodeCode128(value))
	b.pushLF()
	return b
}

// BarcodeEAN13 prints an EAN-13 barcode. The value must be exactly 12
// digits; see escpos.BarcodeEAN13.
func (b *Builder) BarcodeEAN13(value string) *Builder {
	b.push(escpos.BarcodeWidth(2))
	b.push(escpos.BarcodeHeight(60))
	b.push(escpos.BarcodeHRIPosition(2))
	b.push(escpos.BarcodeEAN13(value))
	b.pushLF()
	return b
}

// QRCode prints a QR code. size is the module size, 1-8.
func (b *Builder) QRCode(data string, size byte) *Builder {
	b.push(escpos.QRCode(data, size))
	b.pushLF()
	return b
}

// OpenCashDrawer emits the drawer kick pulses.
func (b *Builder) OpenCashDrawer() *Builder {
	b.push(escpos.CashDrawerKick())
	return b
}

// Logo loads an image file, rasterises it at this width's maximum pixel
// width using the given dithering method and appends the raster frame.
func (b *Builder) Logo(path string, method raster.Method) (*Builder, error) {
	data, err := raster.LoadFile(path, b.width.MaxImagePx(), method)
	if err != nil {
		return b, err
	}
	return b.LogoRaw(data), nil
}

// LogoRaw appends pre-rasterised image bytes directly, for callers that
// ran the raster pipeline themselves.
func (b *Builder) LogoRaw(rasterBytes []byte) *Builder {
	b.push(rasterBytes)
	b.pushLF()
	return b
}

// ShopHeader prints the shop block: name centred in bold double size,
// phone and address beneath at normal weight, then restores left
// alignment.
func (b *Builder) ShopHeader(name, phone, address string) *Builder {
	return b.
		AlignCenter().
		Bold(true).DoubleSize(true).
		TextLine(name).
		Bold(false).NormalSize().
		TextLine(phone).
		TextLine(address).
		AlignLeft()
}

// Item prints one line item: bold truncated name, a quantity line, and
// the right-aligned line total. When discount is non-nil and positive the
// original total, the discount and the bold final price are shown
// instead. Line totals use exact decimal arithmetic; rounding happens
// only at display time.
func (b *Builder) Item(name string, qty int, unitPrice decimal.Decimal, discount *decimal.Decimal) *Builder {
	cols := b.cols()
	lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(qty)))

	b.Bold(true)
	b.pushTextLine(textenc.Truncate(name, cols-2))
	b.Bold(false)

	b.pushTextLine(fmt.Sprintf("%d x %s", qty, b.fmtAmount(unitPrice)))

	if discount != nil && discount.IsPositive() {
		b.pushTextLine(textenc.RightAlign(b.fmtAmount(lineTotal), cols))
		b.pushTextLine("  " + b.labels.ItemDiscount + " -" + b.fmtAmount(*discount))

		after := lineTotal.Sub(*discount)
		b.Bold(true)
		b.pushTextLine(textenc.RightAlign(b.fmtAmount(after), cols))
		b.Bold(false)
	} else {
		b.pushTextLine(textenc.RightAlign(b.fmtAmount(lineTotal), cols))
	}

	b.pushLF()
	return b
}

// Subtotal prints the tax-exclusive subtotal row with its parenthetical
// note underneath.
func (b *Builder) Subtotal(amount decimal.Decimal) *Builder {
	cols := b.cols()
	b.pushTextLine(textenc.TwoColumn(b.labels.SubtotalHT, b.fmtAmount(amount), cols))
	b.pushTextLine(textenc.RightAlign(b.labels.ExclTaxNote, cols))
	return b
}

// Discount prints a receipt-level discount row, optionally tagged with a
// coupon code. Amounts at or below zero are no-ops, so the call can be
// made unconditionally.
func (b *Builder) Discount(amount decimal.Decimal, couponCode string) *Builder {
	if !amount.IsPositive() {
		return b
	}
	label := b.labels.Discount
	if couponCode != "" {
		label = fmt.Sprintf("%s (%s)", label, couponCode)
	}
	b.pushTextLine(textenc.TwoColumn(label, "-"+b.fmtAmount(amount), b.cols()))
	return b
}

// TaxLines prints the tax detail block. Included taxes carry the
// "included" note and a plain amount; non-included taxes print a
// "+"-prefixed amount. Entries with amount <= 0 are skipped. When the
// non-included amounts sum above zero a separator and a synthesized
// additional-taxes row follow.
func (b *Builder) TaxLines(entries []TaxEntry) *Builder {
	cols := b.cols()

	additional := decimal.Zero
	for _, e := range entries {
		if !e.Included {
			additional = additional.Add(e.Amount)
		}
	}

	b.pushTextLine(b.labels.TaxDetails)

	for _, e := range entries {
		if !e.Amount.IsPositive() {
			continue
		}
		var label, value string
		if e.Included {
			label = fmt.Sprintf("  %s (%s)", e.Label, b.labels.TaxIncluded)
			value = b.fmtAmount(e.Amount)
		} else {
			label = "  " + e.Label
			value = "+ " + b.fmtAmount(e.Amount)
		}
		b.pushTextLine(textenc.TwoColumn(label, value, cols))
	}

	if additional.IsPositive() {
		sep := cols - 2
		if sep < 0 {
			sep = 0
		}
		b.pushTextLine("  " + strings.Repeat("-", sep))
		b.pushTextLine(textenc.TwoColumn("  "+b.labels.AdditionalTaxes, "+ "+b.fmtAmount(additional), cols))
	}

	return b
}

// Total prints the grand total row in bold double height, then restores
// normal weight and size.
func (b *Builder) Total(amount decimal.Decimal) *Builder {
	row := textenc.TwoColumn(b.labels.Total, b.fmtAmount(amount), b.cols())
	b.Bold(true).DoubleHeight(true)
	b.pushTextLine(row)
	b.NormalSize().Bold(false)
	return b
}

// Received prints the amount handed over by the customer. Amounts at or
// below zero are no-ops.
func (b *Builder) Received(amount decimal.Decimal) *Builder {
	if !amount.IsPositive() {
		return b
	}
	b.pushTextLine(textenc.TwoColumn(b.labels.Received, b.fmtAmount(amount), b.cols()))
	return b
}

// Change prints the change returned to the customer. Amounts at or below
// zero are no-ops.
func (b *Builder) Change(amount decimal.Decimal) *Builder {
	if !amount.IsPositive() {
		return b
	}
	b.pushTextLine(textenc.TwoColumn(b.labels.Change, b.fmtAmount(amount), b.cols()))
	return b
}

// ServedBy prints the staff footer line.
func (b *Builder) ServedBy(name string) *Builder {
	b.pushTextLine(b.labels.ServedBy + " " + name)
	return b
}

// ThankYou prints the centred thank-you footer and restores left
// alignment.
func (b *Builder) ThankYou(shopName string) *Builder {
	return b.
		AlignCenter().
		TextLine(b.labels.ThankYou).
		TextLine(b.labels.SeeYouAt + " " + shopName).
		AlignLeft()
}
