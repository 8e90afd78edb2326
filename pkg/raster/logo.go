package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// LoadError reports that a logo image could not be decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load logo from '%s': %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadFile decodes an image file and converts it to a GS v 0 raster
// command sized for maxWidthPx. Decode failures return a *LoadError
// wrapping the underlying cause.
func LoadFile(path string, maxWidthPx int, method Method) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return FromImage(img, maxWidthPx, method), nil
}

// FromImage converts a decoded image to a GS v 0 raster command via the
// standard pipeline.
func FromImage(img image.Image, maxWidthPx int, method Method) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba := make([]byte, w*h*4)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// DitherRGBA composites onto white with straight alpha, so
			// un-premultiply via the NRGBA model before filling the buffer.
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rgba[i] = n.R
			rgba[i+1] = n.G
			rgba[i+2] = n.B
			rgba[i+3] = n.A
			i += 4
		}
	}

	return DitherRGBA(rgba, w, h, maxWidthPx, method)
}
