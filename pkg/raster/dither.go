// Package raster converts pixel buffers to packed 1-bit ESC/POS raster
// frames. The pipeline is fixed: RGBA to grayscale (composited on white),
// optional bilinear downscale to the printable width, binarization by
// threshold or Floyd-Steinberg error diffusion, then MSB-first bit
// packing behind a GS v 0 header.
package raster

import (
	"fmt"

	"github.com/printcore/thermoprint/pkg/escpos"
)

// Method selects the binarization strategy.
type Method int

const (
	// Threshold marks pixels darker than 50% as black, independently.
	Threshold Method = iota
	// FloydSteinberg diffuses quantization error 7/16 right, 3/16
	// below-left, 5/16 below, 1/16 below-right. Much better for
	// photographs and gradients.
	FloydSteinberg
)

// DitherRGBA converts raw RGBA pixel data (4 bytes per pixel) into a
// complete GS v 0 raster command. Images wider than maxWidthPx are
// scaled down proportionally. The output is ready for
// receipt.Builder.LogoRaw.
//
// len(rgba) must equal width*height*4; anything else is a caller
// contract breach and panics immediately.
func DitherRGBA(rgba []byte, width, height, maxWidthPx int, method Method) []byte {
	if len(rgba) != width*height*4 {
		panic(fmt.Sprintf("raster: RGBA data length %d does not match %dx%d", len(rgba), width, height))
	}

	gray, w, h := grayscaleResized(rgba, width, height, maxWidthPx)

	var mono []bool
	switch method {
	case FloydSteinberg:
		mono = floydSteinberg(gray, w, h)
	default:
		mono = threshold(gray)
	}

	return packRaster(mono, w, h)
}

// grayscaleResized converts RGBA to a float grayscale buffer using BT.601
// luminance with the alpha channel composited against a white background,
// then bilinearly downsamples if the image is wider than maxWidthPx.
func grayscaleResized(rgba []byte, width, height, maxWidthPx int) ([]float64, int, int) {
	gray := make([]float64, width*height)
	for i := 0; i < width*height; i++ {
		r := float64(rgba[i*4])
		g := float64(rgba[i*4+1])
		b := float64(rgba[i*4+2])
		a := float64(rgba[i*4+3]) / 255.0
		gray[i] = (0.299*r+0.587*g+0.114*b)*a + 255.0*(1.0-a)
	}

	if width <= maxWidthPx {
		return gray, width, height
	}

	newW := maxWidthPx
	newH := height * maxWidthPx / width
	if newH < 1 {
		newH = 1
	}
	resized := make([]float64, 0, newW*newH)

	denomX := newW - 1
	if denomX < 1 {
		denomX = 1
	}
	denomY := newH - 1
	if denomY < 1 {
		denomY = 1
	}

	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			srcX := float64(x) * float64(width-1) / float64(denomX)
			srcY := float64(y) * float64(height-1) / float64(denomY)

			x0 := int(srcX)
			y0 := int(srcY)
			x1 := x0 + 1
			if x1 > width-1 {
				x1 = width - 1
			}
			y1 := y0 + 1
			if y1 > height-1 {
				y1 = height - 1
			}

			fx := srcX - float64(x0)
			fy := srcY - float64(y0)

			p00 := gray[y0*width+x0]
			p10 := gray[y0*width+x1]
			p01 := gray[y1*width+x0]
			p11 := gray[y1*width+x1]

			val := p00*(1-fx)*(1-fy) + p10*fx*(1-fy) + p01*(1-fx)*fy + p11*fx*fy
			resized = append(resized, val)
		}
	}

	return resized, newW, newH
}

// threshold maps each pixel independently: < 128 is black.
func threshold(gray []float64) []bool {
	mono := make([]bool, len(gray))
	for i, v := range gray {
		mono[i] = v < 128.0
	}
	return mono
}

// floydSteinberg runs a row-major scan over a float working copy so the
// diffused error accumulates across rows.
func floydSteinberg(gray []float64, w, h int) []bool {
	buf := make([]float64, len(gray))
	copy(buf, gray)
	mono := make([]bool, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			old := buf[idx]
			newVal := 255.0
			if old < 128.0 {
				newVal = 0.0
				mono[idx] = true // black = print
			}
			err := old - newVal

			if x+1 < w {
				buf[idx+1] += err * 7.0 / 16.0
			}
			if y+1 < h {
				if x > 0 {
					buf[(y+1)*w+(x-1)] += err * 3.0 / 16.0
				}
				buf[(y+1)*w+x] += err * 5.0 / 16.0
				if x+1 < w {
					buf[(y+1)*w+(x+1)] += err * 1.0 / 16.0
				}
			}
		}
	}

	return mono
}

// packRaster packs the mono bitmap into ceil(w/8) bytes per row, MSB
// first, and frames it with the raster header. Output length is always
// 8 + ceil(w/8)*h.
func packRaster(mono []bool, w, h int) []byte {
	bytesPerLine := (w + 7) / 8
	data := make([]byte, bytesPerLine*h)

	for y := 0; y < h; y++ {
		rowOff := y * bytesPerLine
		for x := 0; x < w; x++ {
			if mono[y*w+x] {
				data[rowOff+x/8] |= 1 << uint(7-x%8)
			}
		}
	}

	return escpos.RasterImage(uint16(bytesPerLine), uint16(h), data)
}
