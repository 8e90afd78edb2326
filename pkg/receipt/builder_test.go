package receipt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/printcore/thermoprint/pkg/i18n"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPrintWidth_Cols(t *testing.T) {
	cases := []struct {
		width PrintWidth
		cols  int
		px    int
	}{
		{Width58mm, 32, 256},
		{Width80mm, 48, 384},
		{WidthA4, 90, 576},
	}
	for _, c := range cases {
		if got := c.width.Cols(); got != c.cols {
			t.Errorf("width %d: Cols() = %d, want %d", c.width, got, c.cols)
		}
		if got := c.width.MaxImagePx(); got != c.px {
			t.Errorf("width %d: MaxImagePx() = %d, want %d", c.width, got, c.px)
		}
	}
	if WidthA4.IsThermal() {
		t.Error("A4 must not report as thermal")
	}
	if !Width58mm.IsThermal() || !Width80mm.IsThermal() {
		t.Error("roll widths must report as thermal")
	}
}

func TestBuilder_MinimalReceipt(t *testing.T) {
	out := New(Width80mm).
		Init().
		AlignCenter().
		Bold(true).DoubleSize(true).
		TextLine("MA BOUTIQUE").
		Bold(false).NormalSize().
		TextLine("Tel: +221 77 000 00 00").
		Divider('=').
		AlignLeft().
		Item("Polo Ralph Lauren", 2, dec("15000"), nil).
		Divider('-').
		Subtotal(dec("30000")).
		TaxLines([]TaxEntry{NewTaxEntry("TVA 18%", dec("5400"), true)}).
		Total(dec("35400")).
		Received(dec("40000")).
		Change(dec("4600")).
		Divider('=').
		BarcodeCode128("ORD-2024-001").
		Feed(3).
		Cut().
		Build()

	if len(out) == 0 {
		t.Fatal("receipt must not be empty")
	}
	s := string(out)
	for _, want := range []string{"MA BOUTIQUE", "TOTAL", "SOUS-TOTAL HT", "MONNAIE"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestBuilder_ZeroDiscountMatchesNoDiscount(t *testing.T) {
	zero := dec("0")
	withZero := New(Width80mm).Init().Item("Article", 1, dec("10000"), &zero).Build()
	without := New(Width80mm).Init().Item("Article", 1, dec("10000"), nil).Build()

	if !bytes.Equal(withZero, without) {
		t.Error("zero discount must be byte-identical to no discount")
	}
}

func TestBuilder_ItemDiscountBlock(t *testing.T) {
	disc := dec("1000")
	out := New(Width80mm).Init().Item("Article avec remise", 1, dec("10000"), &disc).Build()

	s := string(out)
	if !strings.Contains(s, "Remise: -1000 FCFA") {
		t.Errorf("discount line missing, got %q", s)
	}
	if !strings.Contains(s, "9000 FCFA") {
		t.Error("final discounted price missing")
	}
}

func TestBuilder_CurrencyOverride(t *testing.T) {
	out := New(Width80mm).Currency("XOF").Init().Total(dec("5000")).Build()

	s := string(out)
	if !strings.Contains(s, "XOF") {
		t.Error("custom currency symbol must appear")
	}
	if strings.Contains(s, "FCFA") {
		t.Error("default symbol must not appear after override")
	}
}

func TestBuilder_LanguageSwitch(t *testing.T) {
	out := New(Width80mm).Language(i18n.English).Init().
		Received(dec("100")).
		ServedBy("Ada").
		Build()

	s := string(out)
	if !strings.Contains(s, "AMOUNT RECEIVED") {
		t.Error("English received label missing")
	}
	if !strings.Contains(s, "Served by: Ada") {
		t.Error("English served-by footer missing")
	}
}

func TestBuilder_TaxLines(t *testing.T) {
	out := New(Width80mm).Init().TaxLines([]TaxEntry{
		NewTaxEntry("TVA 18%", dec("4500"), true),
		NewTaxEntry("Taxe Municipale 2%", dec("500"), false),
		NewTaxEntry("Autre taxe 1%", dec("250"), false),
		NewTaxEntry("Exoneree", dec("0"), false),
	}).Build()

	s := string(out)
	if !strings.Contains(s, "TVA 18% (incluse)") {
		t.Error("included tax note missing")
	}
	if !strings.Contains(s, "+ 500 FCFA") {
		t.Error("non-included tax must be +-prefixed")
	}
	if strings.Contains(s, "Exoneree") {
		t.Error("zero-amount entries must be skipped")
	}
	if !strings.Contains(s, "Taxes additionnelles") || !strings.Contains(s, "+ 750 FCFA") {
		t.Error("synthesized additional-taxes row missing")
	}
}

func TestBuilder_TaxLinesNoAdditionalRowWhenAllIncluded(t *testing.T) {
	out := New(Width80mm).Init().TaxLines([]TaxEntry{
		NewTaxEntry("TVA 18%", dec("4500"), true),
	}).Build()

	if strings.Contains(string(out), "Taxes additionnelles") {
		t.Error("additional-taxes row must not appear without non-included taxes")
	}
}

func TestBuilder_TotalUsesBoldDoubleHeight(t *testing.T) {
	out := New(Width80mm).Total(dec("62540")).Build()

	wantPrefix := []byte{0x1B, 'E', 1, 0x1B, '!', 0x10}
	if !bytes.HasPrefix(out, wantPrefix) {
		t.Errorf("total must start with bold on + double height, got %v", out[:6])
	}
	wantSuffix := []byte{0x1B, '!', 0x00, 0x1B, 'E', 0}
	if !bytes.HasSuffix(out, wantSuffix) {
		t.Error("total must restore normal size and weight")
	}
}

func TestBuilder_NoOpAmounts(t *testing.T) {
	base := New(Width80mm).Init().Build()
	withNoOps := New(Width80mm).Init().
		Discount(dec("0"), "").
		Received(dec("-5")).
		Change(dec("0")).
		Build()

	if !bytes.Equal(base, withNoOps) {
		t.Error("non-positive discount/received/change must emit nothing")
	}
}

func TestBuilder_ConsumedOnce(t *testing.T) {
	b := New(Width58mm).Init()
	first := b.Build()
	if len(first) == 0 {
		t.Fatal("first build must yield bytes")
	}

	b.TextLine("after the fact")
	if second := b.Build(); second != nil {
		t.Error("second build must yield nothing")
	}
}

func TestBuilder_DividerSpansColumns(t *testing.T) {
	out := New(Width58mm).Divider('=').Build()
	want := strings.Repeat("=", 32) + "\n"
	if string(out) != want {
		t.Errorf("divider = %q, want %q", out, want)
	}
}

func TestBuilder_RoundsToWholeUnits(t *testing.T) {
	out := New(Width80mm).Total(dec("149.99")).Build()
	if !strings.Contains(string(out), "150 FCFA") {
		t.Errorf("149.99 must display as 150, got %q", out)
	}
}

func TestBuilder_LogoRawAppendsVerbatim(t *testing.T) {
	frame := []byte{0x1D, 'v', '0', 0, 1, 0, 1, 0, 0xF0}
	out := New(Width80mm).LogoRaw(frame).Build()

	if !bytes.HasPrefix(out, frame) {
		t.Error("raster frame must be appended unchanged")
	}
	if out[len(out)-1] != 0x0A {
		t.Error("logo must end with a line feed")
	}
}
