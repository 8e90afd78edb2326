package receipt

import "fmt"

// InvalidBarcodeError reports a barcode value that breaks its symbology's
// rules, for example an EAN-13 value that is not exactly 12 digits.
// The primitive command encoders never validate; this error exists for
// layers that face untrusted input, such as the template interpreter.
type InvalidBarcodeError struct {
	Value  string
	Reason string
}

func (e *InvalidBarcodeError) Error() string {
	return fmt.Sprintf("invalid barcode value '%s': %s", e.Value, e.Reason)
}

// UnsupportedWidthError reports an operation that the selected paper
// format cannot perform.
type UnsupportedWidthError struct {
	Width PrintWidth
	Op    string
}

func (e *UnsupportedWidthError) Error() string {
	return fmt.Sprintf("operation %s not supported for width %d", e.Op, e.Width)
}
