package preview

import (
	"bytes"
	"image/png"

	"github.com/printcore/thermoprint/pkg/template"
)

// RenderPNG renders a document and encodes the preview as PNG. This is
// what the HTTP preview endpoint and the CLI serve.
func RenderPNG(doc *template.Document) ([]byte, error) {
	img, err := Render(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
