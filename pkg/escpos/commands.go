// Package escpos builds raw ESC/POS command byte sequences.
//
// Every function is pure and returns a freshly allocated (or constant)
// slice ready to be written to a printer. Nothing here talks to hardware;
// stateful composition lives in pkg/receipt.
package escpos

// Control bytes used throughout the protocol.
const (
	ESC byte = 0x1B
	GS  byte = 0x1D
	LF  byte = 0x0A
	FF  byte = 0x0C
)

// Init returns ESC @, a full printer reset.
func Init() []byte { return []byte{ESC, '@'} }

// CodePage858 selects Code Page 858 (Western European plus the Euro sign).
func CodePage858() []byte { return []byte{ESC, 't', 19} }

// AlignLeft returns ESC a 0.
func AlignLeft() []byte { return []byte{ESC, 'a', 0} }

// AlignCenter returns ESC a 1.
func AlignCenter() []byte { return []byte{ESC, 'a', 1} }

// AlignRight returns ESC a 2.
func AlignRight() []byte { return []byte{ESC, 'a', 2} }

// BoldOn returns ESC E 1.
func BoldOn() []byte { return []byte{ESC, 'E', 1} }

// BoldOff returns ESC E 0.
func BoldOff() []byte { return []byte{ESC, 'E', 0} }

// DoubleHeightOn returns ESC ! 0x10, double height at single width.
func DoubleHeightOn() []byte { return []byte{ESC, '!', 0x10} }

// DoubleWidthOn returns ESC ! 0x20, double width at single height.
func DoubleWidthOn() []byte { return []byte{ESC, '!', 0x20} }

// DoubleSizeOn returns ESC ! 0x30, double height and width.
func DoubleSizeOn() []byte { return []byte{ESC, '!', 0x30} }

// NormalSize returns ESC ! 0x00, single height and width.
func NormalSize() []byte { return []byte{ESC, '!', 0x00} }

// UnderlineOn returns ESC - 1 (single underline).
func UnderlineOn() []byte { return []byte{ESC, '-', 1} }

// UnderlineOff returns ESC - 0.
func UnderlineOff() []byte { return []byte{ESC, '-', 0} }

// FeedLines advances the paper by n lines.
func FeedLines(n byte) []byte { return []byte{ESC, 'd', n} }

// LineFeed returns a single LF.
func LineFeed() []byte { return []byte{LF} }

// FormFeed ejects the page on A4 / impact printers.
func FormFeed() []byte { return []byte{FF} }

// CutFull returns GS V 0, a full cut with feed.
func CutFull() []byte { return []byte{GS, 'V', 0} }

// CutPartial returns GS V 66 0, a partial cut with feed.
func CutPartial() []byte { return []byte{GS, 'V', 66, 0} }

// BarcodeHRIPosition sets where the human-readable text prints:
// 0 = none, 1 = above, 2 = below, 3 = both.
func BarcodeHRIPosition(pos byte) []byte { return []byte{GS, 'H', pos} }

// BarcodeHRIFont selects the HRI font: 0 = Font A, 1 = Font B.
func BarcodeHRIFont(font byte) []byte { return []byte{GS, 'f', font} }

// BarcodeHeight sets the barcode height in dots (printer default 162).
func BarcodeHeight(dots byte) []byte { return []byte{GS, 'h', dots} }

// BarcodeWidth sets the module width, 1-6 (printer default 3).
func BarcodeWidth(width byte) []byte { return []byte{GS, 'w', width} }

// BarcodeCode128 emits GS k 73 len data. The payload is length-prefixed
// with a single byte, so values longer than 255 bytes are a caller error.
// CODE128 covers full ASCII including hyphens, which suits order numbers.
func BarcodeCode128(value string) []byte {
	cmd := make([]byte, 0, 4+len(value))
	cmd = append(cmd, GS, 'k', 73, byte(len(value)))
	cmd = append(cmd, value...)
	return cmd
}

// BarcodeEAN13 emits GS k 2 followed by the null-terminated value.
// The value must be exactly 12 ASCII digits (the printer appends the
// check digit); this is a caller precondition and is not validated here.
func BarcodeEAN13(value string) []byte {
	cmd := make([]byte, 0, 4+len(value))
	cmd = append(cmd, GS, 'k', 2)
	cmd = append(cmd, value...)
	cmd = append(cmd, 0)
	return cmd
}

// QRCode emits the four GS ( k sub-frames that print a QR symbol:
// store data, set module size (1-8), set error correction level M,
// print. The store frame's length field is little-endian len(data)+3.
func QRCode(data string, size byte) []byte {
	cmd := make([]byte, 0, 8+len(data)+24)
	plen := len(data) + 3

	// fn 80: store data in the symbol storage area
	cmd = append(cmd, GS, '(', 'k', byte(plen&0xFF), byte((plen>>8)&0xFF), 49, 80, 48)
	cmd = append(cmd, data...)

	// fn 67: module size
	cmd = append(cmd, GS, '(', 'k', 3, 0, 49, 67, size)

	// fn 69: error correction level M (15%)
	cmd = append(cmd, GS, '(', 'k', 3, 0, 49, 69, 49)

	// fn 81: print the stored symbol
	cmd = append(cmd, GS, '(', 'k', 3, 0, 49, 81, 48)

	return cmd
}

// CashDrawerKick pulses drawer pin 2 then pin 5, covering both common
// wiring conventions.
func CashDrawerKick() []byte {
	return []byte{
		ESC, 'p', 0, 25, 250, // pin 2
		ESC, 'p', 1, 25, 250, // pin 5
	}
}

// RasterImage wraps packed 1-bit rows in a GS v 0 raster frame at normal
// density. bytesPerLine is ceil(widthPx/8); both dimensions are emitted
// as little-endian 16-bit values. Rows are MSB first, 1 = print.
func RasterImage(bytesPerLine, heightPx uint16, raster []byte) []byte {
	cmd := make([]byte, 0, 8+len(raster))
	cmd = append(cmd, GS, 'v', '0', 0)
	cmd = append(cmd, byte(bytesPerLine&0xFF), byte(bytesPerLine>>8))
	cmd = append(cmd, byte(heightPx&0xFF), byte(heightPx>>8))
	cmd = append(cmd, raster...)
	return cmd
}
