package shuffle

// ProtocolError reports that a witness failed one of the prover's own
// preconditions (the provers in this module raise it when the witness
// dimensions do not match the instance size). It is fatal for the prover; the verifier cannot trigger it
// unless the transcript it is replaying is already self-inconsistent.
type ProtocolError struct {
	msg string
}

func (e *ProtocolError) Error() string {
	return "shuffle: protocol error: " + e.msg
}

func newProtocolError(msg string) error {
	return &ProtocolError{msg: msg}
}

// NewProtocolError constructs a ProtocolError for use by the variant
// packages (ccpos, posc) that share this package's witness-precondition
// semantics without duplicating the error kind.
func NewProtocolError(msg string) error {
	return newProtocolError(msg)
}
