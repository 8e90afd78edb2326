package template

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/printcore/thermoprint/pkg/i18n"
	"github.com/printcore/thermoprint/pkg/receipt"
)

// Parse decodes a document from JSON bytes. Structural failures return a
// *ParseError naming the cause; element-level values are checked later,
// at render time.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &doc, nil
}

// ParseFile reads and decodes a document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return Parse(data)
}

// ParseWidth maps a width code ("58mm"/"58", "80mm"/"80", "a4",
// case-insensitive) to its PrintWidth.
func ParseWidth(s string) (receipt.PrintWidth, error) {
	switch strings.ToLower(s) {
	case "58mm", "58":
		return receipt.Width58mm, nil
	case "80mm", "80":
		return receipt.Width80mm, nil
	case "a4":
		return receipt.WidthA4, nil
	default:
		return 0, UnknownWidthError(s)
	}
}

// ParseLanguage maps a language code or English full name to its
// Language, case-insensitively.
func ParseLanguage(s string) (i18n.Language, error) {
	switch strings.ToLower(s) {
	case "fr", "french":
		return i18n.French, nil
	case "en", "english":
		return i18n.English, nil
	case "es", "spanish":
		return i18n.Spanish, nil
	case "pt", "portuguese":
		return i18n.Portuguese, nil
	case "ar", "arabic":
		return i18n.Arabic, nil
	case "wo", "wolof":
		return i18n.Wolof, nil
	default:
		return 0, UnknownLanguageError(s)
	}
}

// ParseAlign maps an alignment value to its Align, case-insensitively.
func ParseAlign(s string) (receipt.Align, error) {
	switch strings.ToLower(s) {
	case "left":
		return receipt.AlignLeft, nil
	case "center":
		return receipt.AlignCenter, nil
	case "right":
		return receipt.AlignRight, nil
	default:
		return 0, UnknownAlignError(s)
	}
}
