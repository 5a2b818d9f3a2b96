package bytetree

import "errors"

// FormatError signals malformed wire input: a bad tag byte, a truncated
// length or payload, or a request that does not match the decoded shape.
// It is one of the three error kinds of the cryptographic core (the other
// two, ArithmeticError and ProtocolError, live in package group and
// package shuffle respectively). Decode boundaries return it; the PoS
// verifier treats it as "substitute the identity element and continue"
// rather than aborting.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string {
	return "bytetree: format error: " + e.msg
}

func newFormatError(msg string) error {
	return &FormatError{msg: msg}
}

// NewFormatError constructs a FormatError for use by decode boundaries
// outside this package (group element decoding, permutation decoding, proof
// object decoding) that build on top of the byte-tree codec but detect
// their own shape violations.
func NewFormatError(msg string) error {
	return newFormatError(msg)
}

// ErrTruncated is a sentinel for input with fewer bytes than a declared
// length requires. The Reader in this package does not return or wrap it:
// truncation surfaces as a *FormatError whose message gives the byte counts.
var ErrTruncated = errors.New("truncated input")

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
