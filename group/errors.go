package group

import "github.com/takakv/mixproof/bytetree"

// ArithmeticError indicates mismatched parent groups/rings or mismatched
// array lengths: an internal bug or a malicious caller, per spec.md §7.
// It is always fatal and is never recovered inside the cryptographic core.
type ArithmeticError struct {
	msg string
}

func (e *ArithmeticError) Error() string {
	return "group: arithmetic error: " + e.msg
}

func newArithmeticError(msg string) error {
	return &ArithmeticError{msg: msg}
}

func panicArithmetic(msg string) {
	panic(newArithmeticError(msg))
}

// newGroupFormatError builds the shared FormatError kind (bytetree.FormatError)
// for group-element decode failures: bad width, bad tag shape, or failed
// membership check in safe mode.
func newGroupFormatError(msg string) error {
	return bytetree.NewFormatError("group: " + msg)
}
