package template

import (
	"github.com/shopspring/decimal"

	"github.com/printcore/thermoprint/pkg/raster"
	"github.com/printcore/thermoprint/pkg/receipt"
)

// Render decodes a JSON document and renders it to ESC/POS bytes in one
// step. This is the simplest entry point to the interpreter.
func Render(data []byte) ([]byte, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return doc.Render()
}

// Render replays the document's elements, strictly in order, against a
// fresh builder and returns the receipt bytes. Rendering is
// all-or-nothing: any element failure aborts with no partial buffer.
func (d *Document) Render() ([]byte, error) {
	widthCode := d.Width
	if widthCode == "" {
		widthCode = DefaultWidth
	}
	width, err := ParseWidth(widthCode)
	if err != nil {
		return nil, err
	}

	langCode := d.Language
	if langCode == "" {
		langCode = DefaultLanguage
	}
	lang, err := ParseLanguage(langCode)
	if err != nil {
		return nil, err
	}

	b := receipt.New(width).Language(lang)
	if d.Currency != "" {
		b.Currency(d.Currency)
	}

	for i := range d.Elements {
		if err := applyElement(b, &d.Elements[i]); err != nil {
			return nil, err
		}
	}

	return b.Build(), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InvalidDecimalError{Value: s, Reason: err.Error()}
	}
	return dec, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// applyElement dispatches one element to its builder calls. Adding an
// element kind means adding a case here plus its schema fields, nothing
// else.
func applyElement(b *receipt.Builder, e *Element) error {
	switch e.Type {
	case "init":
		b.Init()

	case "shop_header":
		b.ShopHeader(e.Name, e.Phone, e.Address)

	case "text_line":
		b.TextLine(e.Text)

	case "centered":
		b.Centered(e.Text)

	case "right":
		b.Right(e.Text)

	case "row":
		b.Row(e.Left, e.Right)

	case "divider":
		ch := '-'
		for _, r := range e.Char {
			ch = r
			break
		}
		b.Divider(ch)

	case "blank":
		b.Blank()

	case "bold":
		b.Bold(boolOr(e.On, true))

	case "double_size":
		b.DoubleSize(boolOr(e.On, true))

	case "double_height":
		b.DoubleHeight(boolOr(e.On, true))

	case "normal_size":
		b.NormalSize()

	case "underline":
		b.Underline(boolOr(e.On, true))

	case "align":
		a, err := ParseAlign(e.Value)
		if err != nil {
			return err
		}
		b.Align(a)

	case "item":
		price, err := parseDecimal(e.UnitPrice)
		if err != nil {
			return err
		}
		var disc *decimal.Decimal
		if e.Discount != "" {
			d, err := parseDecimal(e.Discount)
			if err != nil {
				return err
			}
			disc = &d
		}
		b.Item(e.Name, e.Qty, price, disc)

	case "subtotal":
		amount, err := parseDecimal(e.Amount)
		if err != nil {
			return err
		}
		b.Subtotal(amount)

	case "tax":
		amount, err := parseDecimal(e.Amount)
		if err != nil {
			return err
		}
		b.TaxLines([]receipt.TaxEntry{receipt.NewTaxEntry(e.Label, amount, e.Included)})

	case "discount":
		amount, err := parseDecimal(e.Amount)
		if err != nil {
			return err
		}
		b.Discount(amount, e.CouponCode)

	case "total":
		amount, err := parseDecimal(e.Amount)
		if err != nil {
			return err
		}
		b.Total(amount)

	case "received":
		amount, err := parseDecimal(e.Amount)
		if err != nil {
			return err
		}
		b.Received(amount)

	case "change":
		amount, err := parseDecimal(e.Amount)
		if err != nil {
			return err
		}
		b.Change(amount)

	case "served_by":
		b.ServedBy(e.Name)

	case "thank_you":
		b.ThankYou(e.ShopName)

	case "barcode_code128":
		if len(e.Value) > 255 {
			return &receipt.InvalidBarcodeError{Value: e.Value, Reason: "CODE128 payload exceeds 255 bytes"}
		}
		b.BarcodeCode128(e.Value)

	case "barcode_ean13":
		if len(e.Value) != 12 || !isDigits(e.Value) {
			return &receipt.InvalidBarcodeError{Value: e.Value, Reason: "EAN-13 requires exactly 12 digits"}
		}
		b.BarcodeEAN13(e.Value)

	case "qr_code":
		size := intOr(e.Size, 4)
		if size < 0 || size > 255 {
			return &ValueRangeError{Field: "size", Value: size}
		}
		b.QRCode(e.Data, byte(size))

	case "feed":
		lines := intOr(e.Lines, 3)
		if lines < 0 || lines > 255 {
			return &ValueRangeError{Field: "lines", Value: lines}
		}
		b.Feed(byte(lines))

	case "cut":
		b.Cut()

	case "cut_full":
		b.CutFull()

	case "form_feed":
		b.FormFeed()

	case "open_cash_drawer":
		b.OpenCashDrawer()

	case "logo":
		method, err := parseDitherMethod(e.Method)
		if err != nil {
			return err
		}
		if _, err := b.Logo(e.Path, method); err != nil {
			return err
		}

	default:
		return UnknownElementError(e.Type)
	}

	return nil
}

func parseDitherMethod(s string) (raster.Method, error) {
	switch s {
	case "", "threshold":
		return raster.Threshold, nil
	case "floyd_steinberg":
		return raster.FloydSteinberg, nil
	default:
		return 0, UnknownDitherMethodError(s)
	}
}
