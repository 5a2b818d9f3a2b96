// Package group implements the prime-order group carriers used by the
// shuffle proof: a safe-prime multiplicative group and several elliptic
// curves, all behind one Element/Group vocabulary, plus the Z_q scalar
// ring and product-group composition spec.md §3 asks for.
//
// Carrier polymorphism follows spec.md §9: every element carries a
// reference to its parent carrier, and incompatible carriers are a fatal
// (panicking) ArithmeticError, never a silent coercion.
package group

import (
	"encoding"
	"encoding/json"
	"math/big"

	"github.com/takakv/mixproof/bytetree"
)

// Element represents an element of a prime-order group.
type Element interface {
	// Add sets the receiver to X + Y, and returns it.
	Add(X, Y Element) Element
	// Subtract sets the receiver to X - Y and returns it.
	Subtract(X, Y Element) Element
	// Negate sets the receiver to -X, and returns it.
	Negate(X Element) Element
	// Scale performs the group operation s times with X,
	// sets the receiver to the result, and returns it.
	Scale(X Element, s *big.Int) Element
	// BaseScale performs the group operation s times with the
	// group's generator, sets the receiver to the result, and returns it.
	BaseScale(s *big.Int) Element
	// Set the receiver to X, and returns it.
	Set(X Element) Element
	// SetBytes recovers a group element from a byte representation,
	// sets the receiver to this element, and returns it.
	SetBytes(b []byte) Element
	// MapToGroup hashes a message (s) and produces a group element
	// with uniform distribution whose discrete logarithm is not known.
	MapToGroup(s string) (Element, error)
	// IsEqual returns true if the receiver is equal to X.
	IsEqual(X Element) bool
	// IsIdentity returns true if the receiver is the group's
	// identity element.
	IsIdentity() bool
	// GroupOrder returns the number of elements in the group.
	GroupOrder() *big.Int
	// FieldOrder returns the number of elements in the field
	// over which the group is defined.
	FieldOrder() *big.Int
	// String returns a string representation of the element.
	String() string
	// BinaryMarshaler returns a byte representation of the element.
	encoding.BinaryMarshaler
	// BinaryUnmarshaler recovers an element from a byte representation
	// produced by encoding.BinaryMarshaler.
	encoding.BinaryUnmarshaler
	// Marshaler returns a JSON representation of the element, used for
	// debug/demo output only -- never fed to the Fiat-Shamir challenger.
	json.Marshaler
	// Unmarshaler recovers an element from a JSON representation
	// produced by json.Marshaler.
	json.Unmarshaler

	// EncodeTree returns the canonical byte-tree leaf for this element.
	// This, not the JSON encoding, is what feeds the random oracle and the
	// proof-directory files.
	EncodeTree() *bytetree.Node
	// DecodeTree recovers the element from a byte-tree leaf produced by
	// EncodeTree. In safe mode, the element's membership in the group is
	// verified as part of decoding; in unsafe mode only the syntactic shape
	// is checked, and the caller commits to verifying membership later
	// (e.g. via Group.VerifyMember, batched in parallel).
	DecodeTree(n *bytetree.Node, safe bool) error
}

// Group represents a prime-order group over a prime-order field.
// The group can be either multiplicative or additive.
type Group interface {
	// Name returns the name of the group.
	Name() string

	// Element creates a new group element.
	Element() Element
	// Generator creates a group element set to the group's generator.
	Generator() Element
	// Identity creates a group element set to the group's identity element.
	Identity() Element

	// Random returns uniformly sampled element from the group by sampling a
	// random scalar r and returning rG.
	Random() Element

	// P returns the prime-order of the field.
	P() *big.Int
	// N returns the prime-order of the group.
	N() *big.Int

	// ElementByteLen returns the fixed encoded width, in bytes, of an
	// element's canonical byte-tree leaf.
	ElementByteLen() int

	// VerifyMember reports whether e is a member of this group. Used by the
	// "safe" decode path and by batched unsafe-decode verification.
	VerifyMember(e Element) bool
}
