// Package template renders declarative JSON receipt documents by
// replaying them against a fresh receipt.Builder. A successful render is
// byte-identical to the equivalent fluent builder call sequence.
//
// A document looks like:
//
//	{
//	  "width": "80mm",
//	  "currency": "FCFA",
//	  "language": "fr",
//	  "elements": [
//	    { "type": "init" },
//	    { "type": "shop_header", "name": "MA BOUTIQUE", "phone": "+221 77 000 00 00", "address": "Dakar" },
//	    { "type": "item", "name": "Polo shirt", "qty": 2, "unit_price": "15000" },
//	    { "type": "total", "amount": "30000" },
//	    { "type": "feed", "lines": 3 },
//	    { "type": "cut" }
//	  ]
//	}
package template

// Document is the root of a receipt template. The top-level fields are
// optional; empty values take the documented defaults (80mm, FCFA,
// French).
type Document struct {
	Width    string    `json:"width,omitempty"`
	Currency string    `json:"currency,omitempty"`
	Language string    `json:"language,omitempty"`
	Elements []Element `json:"elements"`
}

// Default top-level values applied when a document omits them.
const (
	DefaultWidth    = "80mm"
	DefaultLanguage = "fr"
)

// Element is one document instruction. Type selects the variant; the
// remaining fields are read per type and ignored otherwise. Optional
// fields use pointers so an absent value can take its default (style
// toggles default to on, feed to 3 lines, QR module size to 4, divider
// char to "-").
type Element struct {
	Type string `json:"type"`

	// text_line / centered / right
	Text string `json:"text,omitempty"`

	// row
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`

	// divider
	Char string `json:"char,omitempty"`

	// bold / double_size / double_height / underline
	On *bool `json:"on,omitempty"`

	// align (left/center/right); barcode values
	Value string `json:"value,omitempty"`

	// shop_header / item / served_by
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`

	// item
	Qty       int    `json:"qty,omitempty"`
	UnitPrice string `json:"unit_price,omitempty"`
	Discount  string `json:"discount,omitempty"`

	// money rows; amounts are decimal strings to keep them exact
	Amount string `json:"amount,omitempty"`

	// tax
	Label    string `json:"label,omitempty"`
	Included bool   `json:"included,omitempty"`

	// discount
	CouponCode string `json:"coupon_code,omitempty"`

	// thank_you
	ShopName string `json:"shop_name,omitempty"`

	// qr_code
	Data string `json:"data,omitempty"`
	Size *int   `json:"size,omitempty"`

	// feed
	Lines *int `json:"lines,omitempty"`

	// logo
	Path   string `json:"path,omitempty"`
	Method string `json:"method,omitempty"`
}
