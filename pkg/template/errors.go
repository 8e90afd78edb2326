package template

import "fmt"

// ParseError reports that the document JSON could not be decoded. It
// wraps the underlying syntax error.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("invalid template JSON: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidDecimalError reports a money field that is not a valid decimal
// string.
type InvalidDecimalError struct {
	Value  string
	Reason string
}

func (e *InvalidDecimalError) Error() string {
	return fmt.Sprintf("invalid decimal amount '%s': %s", e.Value, e.Reason)
}

// UnknownWidthError reports an unrecognized paper width code.
type UnknownWidthError string

func (e UnknownWidthError) Error() string {
	return fmt.Sprintf("unknown paper width '%s': use '58mm', '80mm', or 'a4'", string(e))
}

// UnknownLanguageError reports an unrecognized language code.
type UnknownLanguageError string

func (e UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language '%s': use 'fr', 'en', 'es', 'pt', 'ar', or 'wo'", string(e))
}

// UnknownAlignError reports an unrecognized alignment value.
type UnknownAlignError string

func (e UnknownAlignError) Error() string {
	return fmt.Sprintf("unknown alignment '%s': use 'left', 'center', or 'right'", string(e))
}

// UnknownElementError reports an element type the interpreter does not
// recognize.
type UnknownElementError string

func (e UnknownElementError) Error() string {
	return fmt.Sprintf("unknown element type '%s'", string(e))
}

// ValueRangeError reports a numeric field outside the single-byte range
// the printer protocol accepts.
type ValueRangeError struct {
	Field string
	Value int
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("field '%s' value %d is out of range 0-255", e.Field, e.Value)
}

// UnknownDitherMethodError reports an unrecognized logo dithering method.
type UnknownDitherMethodError string

func (e UnknownDitherMethodError) Error() string {
	return fmt.Sprintf("unknown dither method '%s': use 'threshold' or 'floyd_steinberg'", string(e))
}
