package escpos

import (
	"bytes"
	"testing"
)

func TestBarcodeCode128_Framing(t *testing.T) {
	cmd := BarcodeCode128("ORD-001")

	want := []byte{GS, 'k', 73, 7}
	if !bytes.Equal(cmd[:4], want) {
		t.Errorf("CODE128 prefix = %v, want %v", cmd[:4], want)
	}
	if string(cmd[4:]) != "ORD-001" {
		t.Errorf("CODE128 payload = %q, want %q", cmd[4:], "ORD-001")
	}
}

func TestBarcodeEAN13_NullTerminated(t *testing.T) {
	cmd := BarcodeEAN13("123456789012")

	if cmd[0] != GS || cmd[1] != 'k' || cmd[2] != 2 {
		t.Errorf("EAN13 prefix = %v, want GS k 2", cmd[:3])
	}
	if cmd[len(cmd)-1] != 0 {
		t.Error("EAN13 payload must be null-terminated")
	}
	if string(cmd[3:len(cmd)-1]) != "123456789012" {
		t.Errorf("EAN13 payload = %q", cmd[3:len(cmd)-1])
	}
}

func TestQRCode_FourSubFrames(t *testing.T) {
	cmd := QRCode("https://example.com", 3)

	prefix := []byte{GS, '(', 'k'}
	count := 0
	for i := 0; i+3 <= len(cmd); i++ {
		if bytes.Equal(cmd[i:i+3], prefix) {
			count++
		}
	}
	if count != 4 {
		t.Errorf("QR command contains %d GS ( k sub-frames, want 4", count)
	}

	// Store frame length = len(data)+3, little-endian.
	plen := len("https://example.com") + 3
	if cmd[3] != byte(plen&0xFF) || cmd[4] != byte(plen>>8) {
		t.Errorf("store frame length = [%d %d], want [%d %d]", cmd[3], cmd[4], plen&0xFF, plen>>8)
	}
}

func TestRasterImage_Header(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF} // one line of 32 pixels
	cmd := RasterImage(4, 1, data)

	if !bytes.Equal(cmd[:4], []byte{GS, 'v', '0', 0}) {
		t.Errorf("raster header = %v, want GS v 0 0", cmd[:4])
	}
	if cmd[4] != 4 || cmd[5] != 0 {
		t.Errorf("xL xH = %d %d, want 4 0", cmd[4], cmd[5])
	}
	if cmd[6] != 1 || cmd[7] != 0 {
		t.Errorf("yL yH = %d %d, want 1 0", cmd[6], cmd[7])
	}
	if !bytes.Equal(cmd[8:], data) {
		t.Error("packed data must follow the 8-byte header unchanged")
	}
}

func TestCutVariants_Distinct(t *testing.T) {
	if bytes.Equal(CutFull(), CutPartial()) {
		t.Error("full and partial cut must use distinct codes")
	}
	if !bytes.Equal(CutFull(), []byte{GS, 'V', 0}) {
		t.Errorf("CutFull = %v", CutFull())
	}
	if !bytes.Equal(CutPartial(), []byte{GS, 'V', 66, 0}) {
		t.Errorf("CutPartial = %v", CutPartial())
	}
}

func TestSizeSelectors(t *testing.T) {
	cases := []struct {
		name string
		got  []byte
		arg  byte
	}{
		{"normal", NormalSize(), 0x00},
		{"double height", DoubleHeightOn(), 0x10},
		{"double width", DoubleWidthOn(), 0x20},
		{"double both", DoubleSizeOn(), 0x30},
	}
	for _, c := range cases {
		want := []byte{ESC, '!', c.arg}
		if !bytes.Equal(c.got, want) {
			t.Errorf("%s selector = %v, want %v", c.name, c.got, want)
		}
	}
}

func TestCashDrawerKick_DualPulse(t *testing.T) {
	cmd := CashDrawerKick()
	if len(cmd) != 10 {
		t.Fatalf("kick sequence length = %d, want 10", len(cmd))
	}
	if cmd[2] != 0 || cmd[7] != 1 {
		t.Error("kick must pulse pin 2 then pin 5")
	}
}
