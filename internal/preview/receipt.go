package preview

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/printcore/thermoprint/pkg/receipt"
	"github.com/printcore/thermoprint/pkg/template"
	"github.com/printcore/thermoprint/pkg/textenc"
)

// renderElement mirrors the byte interpreter's dispatch. Text content
// is composed with the same layout helpers and labels, so the preview
// shows exactly the lines the printer would receive; only styling and
// graphics are approximated.
func (r *Renderer) renderElement(e *template.Element) error {
	switch e.Type {
	case "init":
		r.bold = false
		r.doubleWidth = false
		r.doubleHeight = false
		r.underline = false
		r.align = receipt.AlignLeft

	case "shop_header":
		r.align = receipt.AlignCenter
		r.bold = true
		r.doubleWidth = true
		r.doubleHeight = true
		r.line(e.Name)
		r.bold = false
		r.doubleWidth = false
		r.doubleHeight = false
		r.line(e.Phone)
		r.line(e.Address)
		r.align = receipt.AlignLeft

	case "text_line":
		r.line(e.Text)

	case "centered":
		r.line(textenc.Center(e.Text, r.cols()))

	case "right":
		r.line(textenc.RightAlign(e.Text, r.cols()))

	case "row":
		r.line(textenc.TwoColumn(e.Left, e.Right, r.cols()))

	case "divider":
		ch := '-'
		for _, c := range e.Char {
			ch = c
			break
		}
		r.line(strings.Repeat(string(ch), r.cols()))

	case "blank":
		r.blankLine()

	case "bold":
		r.bold = boolValue(e.On, true)

	case "double_size":
		on := boolValue(e.On, true)
		r.doubleWidth = on
		r.doubleHeight = on

	case "double_height":
		r.doubleHeight = boolValue(e.On, true)

	case "normal_size":
		r.doubleWidth = false
		r.doubleHeight = false

	case "underline":
		r.underline = boolValue(e.On, true)

	case "align":
		a, err := template.ParseAlign(e.Value)
		if err != nil {
			return err
		}
		r.align = a

	case "item":
		return r.renderItem(e)

	case "subtotal":
		amount, err := decimalValue(e.Amount)
		if err != nil {
			return err
		}
		cols := r.cols()
		r.line(textenc.TwoColumn(r.labels.SubtotalHT, r.amount(amount), cols))
		r.line(textenc.RightAlign(r.labels.ExclTaxNote, cols))

	case "tax":
		amount, err := decimalValue(e.Amount)
		if err != nil {
			return err
		}
		r.renderTaxes([]receipt.TaxEntry{receipt.NewTaxEntry(e.Label, amount, e.Included)})

	case "discount":
		amount, err := decimalValue(e.Amount)
		if err != nil {
			return err
		}
		if amount.IsPositive() {
			label := r.labels.Discount
			if e.CouponCode != "" {
				label = fmt.Sprintf("%s (%s)", label, e.CouponCode)
			}
			r.line(textenc.TwoColumn(label, "-"+r.amount(amount), r.cols()))
		}

	case "total":
		amount, err := decimalValue(e.Amount)
		if err != nil {
			return err
		}
		row := textenc.TwoColumn(r.labels.Total, r.amount(amount), r.cols())
		r.bold = true
		r.doubleHeight = true
		r.line(row)
		r.doubleHeight = false
		r.bold = false

	case "received":
		amount, err := decimalValue(e.Amount)
		if err != nil {
			return err
		}
		if amount.IsPositive() {
			r.line(textenc.TwoColumn(r.labels.Received, r.amount(amount), r.cols()))
		}

	case "change":
		amount, err := decimalValue(e.Amount)
		if err != nil {
			return err
		}
		if amount.IsPositive() {
			r.line(textenc.TwoColumn(r.labels.Change, r.amount(amount), r.cols()))
		}

	case "served_by":
		r.line(r.labels.ServedBy + " " + e.Name)

	case "thank_you":
		prev := r.align
		r.align = receipt.AlignCenter
		r.line(r.labels.ThankYou)
		r.line(r.labels.SeeYouAt + " " + e.ShopName)
		r.align = prev

	case "barcode_code128":
		return r.renderCode128(e.Value)

	case "barcode_ean13":
		return r.renderEAN13(e.Value)

	case "qr_code":
		return r.renderQRCode(e.Data)

	case "feed":
		lines := 3
		if e.Lines != nil {
			lines = *e.Lines
		}
		r.feed(lines)

	case "cut", "cut_full":
		r.cutLine()

	case "form_feed":
		r.feed(3)

	case "open_cash_drawer":
		// No visual effect.

	case "logo":
		return r.renderLogo(e.Path)

	default:
		return template.UnknownElementError(e.Type)
	}

	return nil
}

func (r *Renderer) renderItem(e *template.Element) error {
	price, err := decimalValue(e.UnitPrice)
	if err != nil {
		return err
	}
	cols := r.cols()
	lineTotal := price.Mul(decimal.NewFromInt(int64(e.Qty)))

	r.bold = true
	r.line(textenc.Truncate(e.Name, cols-2))
	r.bold = false

	r.line(fmt.Sprintf("%d x %s", e.Qty, r.amount(price)))

	if e.Discount != "" {
		disc, err := decimalValue(e.Discount)
		if err != nil {
			return err
		}
		if disc.IsPositive() {
			r.line(textenc.RightAlign(r.amount(lineTotal), cols))
			r.line("  " + r.labels.ItemDiscount + " -" + r.amount(disc))
			r.bold = true
			r.line(textenc.RightAlign(r.amount(lineTotal.Sub(disc)), cols))
			r.bold = false
			r.blankLine()
			return nil
		}
	}

	r.line(textenc.RightAlign(r.amount(lineTotal), cols))
	r.blankLine()
	return nil
}

func (r *Renderer) renderTaxes(entries []receipt.TaxEntry) {
	cols := r.cols()

	additional := decimal.Zero
	for _, e := range entries {
		if !e.Included {
			additional = additional.Add(e.Amount)
		}
	}

	r.line(r.labels.TaxDetails)

	for _, e := range entries {
		if !e.Amount.IsPositive() {
			continue
		}
		var label, value string
		if e.Included {
			label = fmt.Sprintf("  %s (%s)", e.Label, r.labels.TaxIncluded)
			value = r.amount(e.Amount)
		} else {
			label = "  " + e.Label
			value = "+ " + r.amount(e.Amount)
		}
		r.line(textenc.TwoColumn(label, value, cols))
	}

	if additional.IsPositive() {
		sep := cols - 2
		if sep < 0 {
			sep = 0
		}
		r.line("  " + strings.Repeat("-", sep))
		r.line(textenc.TwoColumn("  "+r.labels.AdditionalTaxes, "+ "+r.amount(additional), cols))
	}
}

func (r *Renderer) amount(d decimal.Decimal) string {
	return receipt.FormatAmount(d, r.currency)
}

func decimalValue(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &template.InvalidDecimalError{Value: s, Reason: err.Error()}
	}
	return d, nil
}

func boolValue(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
