package preview

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"

	"github.com/printcore/thermoprint/pkg/raster"
	"github.com/printcore/thermoprint/pkg/receipt"
)

const barcodeHeight = 60

func (r *Renderer) renderCode128(value string) error {
	if value == "" {
		return nil
	}
	if len(value) > 255 {
		return &receipt.InvalidBarcodeError{Value: value, Reason: "CODE128 payload exceeds 255 bytes"}
	}
	code, err := code128.Encode(value)
	if err != nil {
		return &receipt.InvalidBarcodeError{Value: value, Reason: err.Error()}
	}
	return r.drawBarcode(code)
}

func (r *Renderer) renderEAN13(value string) error {
	code, err := ean.Encode(value)
	if err != nil {
		return &receipt.InvalidBarcodeError{Value: value, Reason: err.Error()}
	}
	return r.drawBarcode(code)
}

func (r *Renderer) drawBarcode(code barcode.Barcode) error {
	targetWidth := r.px - 4*marginX
	scaled, err := barcode.Scale(code, targetWidth, barcodeHeight)
	if err != nil {
		return err
	}
	r.drawCentered(scaled)
	return nil
}

func (r *Renderer) renderQRCode(data string) error {
	if data == "" {
		return nil
	}
	qr, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return err
	}

	size := r.px / 2
	if size > 300 {
		size = 300
	}
	r.drawCentered(qr.Image(size))
	return nil
}

// renderLogo draws the source image the way the printer sees it: scaled
// down to the format's raster width when wider, grayscale, never
// scaled up.
func (r *Renderer) renderLogo(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &raster.LoadError{Path: path, Err: err}
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return &raster.LoadError{Path: path, Err: err}
	}

	maxWidth := r.width.MaxImagePx()
	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Linear)
	}
	r.drawCentered(imaging.Grayscale(img))
	return nil
}

func (r *Renderer) drawCentered(img image.Image) {
	h := img.Bounds().Dy()
	w := img.Bounds().Dx()

	r.ensureHeight(h + 2*lineGap)
	x := (r.px - w) / 2
	r.ctx.DrawImage(img, x, int(r.y)+lineGap)
	r.y += float64(h + 2*lineGap)
}
