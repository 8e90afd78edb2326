// Package i18n holds the fixed display strings printed on receipts, one
// complete record per supported language. Records are static data: every
// language carries every label, so lookups are total and adding a
// language never touches control flow.
package i18n

// Labels is the full set of display strings a receipt can print.
type Labels struct {
	SubtotalHT      string // subtotal excluding tax, e.g. "SUBTOTAL"
	ExclTaxNote     string // parenthetical under the subtotal, e.g. "(Excl. Tax)"
	Discount        string // receipt-level discount label
	TaxDetails      string // tax block header
	TaxIncluded     string // note on taxes already in the prices
	AdditionalTaxes string // synthesized non-included taxes row
	Total           string
	Received        string
	Change          string
	ServedBy        string // prefix, e.g. "Served by:"
	ThankYou        string
	SeeYouAt        string // prefix, e.g. "See you soon at"
	ItemDiscount    string // per-item discount prefix, e.g. "Discount:"
}

// Language identifies one of the supported label sets.
type Language int

const (
	// French is the default.
	French Language = iota
	English
	Spanish
	Portuguese
	// Arabic labels are Latin-transliterated so they survive CP858.
	Arabic
	Wolof
)

// Labels returns the label record for the language. Unknown values fall
// back to French, keeping the lookup total.
func (l Language) Labels() Labels {
	switch l {
	case English:
		return labelsEN
	case Spanish:
		return labelsES
	case Portuguese:
		return labelsPT
	case Arabic:
		return labelsAR
	case Wolof:
		return labelsWO
	default:
		return labelsFR
	}
}

// All lists every supported language.
func All() []Language {
	return []Language{French, English, Spanish, Portuguese, Arabic, Wolof}
}

var labelsFR = Labels{
	SubtotalHT:      "SOUS-TOTAL HT",
	ExclTaxNote:     "(Hors TVA)",
	Discount:        "REMISE",
	TaxDetails:      "DETAIL DES TAXES:",
	TaxIncluded:     "incluse",
	AdditionalTaxes: "Taxes additionnelles",
	Total:           "TOTAL",
	Received:        "MONTANT RECU",
	Change:          "MONNAIE",
	ServedBy:        "Servi par:",
	ThankYou:        "Merci pour votre confiance!",
	SeeYouAt:        "A bientot chez",
	ItemDiscount:    "Remise:",
}

var labelsEN = Labels{
	SubtotalHT:      "SUBTOTAL",
	ExclTaxNote:     "(Excl. Tax)",
	Discount:        "DISCOUNT",
	TaxDetails:      "TAX DETAILS:",
	TaxIncluded:     "included",
	AdditionalTaxes: "Additional taxes",
	Total:           "TOTAL",
	Received:        "AMOUNT RECEIVED",
	Change:          "CHANGE",
	ServedBy:        "Served by:",
	ThankYou:        "Thank you for your purchase!",
	SeeYouAt:        "See you soon at",
	ItemDiscount:    "Discount:",
}

var labelsES = Labels{
	SubtotalHT:      "SUBTOTAL",
	ExclTaxNote:     "(Sin IVA)",
	Discount:        "DESCUENTO",
	TaxDetails:      "DETALLE DE IMPUESTOS:",
	TaxIncluded:     "incluido",
	AdditionalTaxes: "Impuestos adicionales",
	Total:           "TOTAL",
	Received:        "MONTO RECIBIDO",
	Change:          "CAMBIO",
	ServedBy:        "Atendido por:",
	ThankYou:        "Gracias por su compra!",
	SeeYouAt:        "Hasta pronto en",
	ItemDiscount:    "Descuento:",
}

var labelsPT = Labels{
	SubtotalHT:      "SUBTOTAL",
	ExclTaxNote:     "(Sem IVA)",
	Discount:        "DESCONTO",
	TaxDetails:      "DETALHES DOS IMPOSTOS:",
	TaxIncluded:     "incluido",
	AdditionalTaxes: "Impostos adicionais",
	Total:           "TOTAL",
	Received:        "VALOR RECEBIDO",
	Change:          "TROCO",
	ServedBy:        "Atendido por:",
	ThankYou:        "Obrigado pela sua compra!",
	SeeYouAt:        "Ate breve em",
	ItemDiscount:    "Desconto:",
}

var labelsAR = Labels{
	SubtotalHT:      "AL-MAJMOU' AL-FER'I",
	ExclTaxNote:     "(Bidoun Dariba)",
	Discount:        "TAKHFID",
	TaxDetails:      "TAFASIL AD-DARIBA:",
	TaxIncluded:     "moudamana",
	AdditionalTaxes: "Daraib idafiya",
	Total:           "AL-MAJMOU'",
	Received:        "AL-MABLAGH AL-MUSTASLAM",
	Change:          "AL-BAAQI",
	ServedBy:        "Khidma min:",
	ThankYou:        "Choukran li thiqatikum!",
	SeeYouAt:        "Ila al-liqa' fi",
	ItemDiscount:    "Takhfid:",
}

var labelsWO = Labels{
	SubtotalHT:      "TOLLU NJEG",
	ExclTaxNote:     "(Bu Amul Cero)",
	Discount:        "WANAAGU NJEG",
	TaxDetails:      "CERON YI:",
	TaxIncluded:     "ci biir",
	AdditionalTaxes: "Cero yu nyul",
	Total:           "TOLLU",
	Received:        "XAALIS BU JOTNA",
	Change:          "CENNGE",
	ServedBy:        "Liggeykat bi:",
	ThankYou:        "Jere jef ci sanu confiance!",
	SeeYouAt:        "Ba beneen yoon ci",
	ItemDiscount:    "Wanaag:",
}
