package group

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/takakv/mixproof/bytetree"
)

// Ring is the scalar field Z_q associated with a Group of order q: elements
// are integers mod q with add/sub/mul/neg/inner-product and canonical
// fixed-width big-endian encoding, spec.md §3's "the ring".
type Ring struct {
	q       *big.Int
	byteLen int
}

// NewRing constructs the ring of integers modulo q.
func NewRing(q *big.Int) *Ring {
	return &Ring{q: q, byteLen: (q.BitLen() + 7) / 8}
}

// RingOf returns the scalar ring associated with g, i.e. Z mod g.N().
func RingOf(g Group) *Ring {
	return NewRing(g.N())
}

// Order returns q.
func (r *Ring) Order() *big.Int {
	return r.q
}

// ByteLen returns the fixed encoded width, in bytes, of a ring element.
func (r *Ring) ByteLen() int {
	return r.byteLen
}

// Zero returns the additive identity.
func (r *Ring) Zero() *big.Int {
	return big.NewInt(0)
}

// Reduce returns x mod q, in [0, q).
func (r *Ring) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, r.q)
}

// Random draws a uniform element of the ring from crypto/rand.Reader.
func (r *Ring) Random() *big.Int {
	return r.RandomFrom(rand.Reader)
}

// RandomFrom draws a uniform element of the ring from rng, the entry point
// for threading a single named RandomSource through the prover (spec.md
// §5).
func (r *Ring) RandomFrom(rng io.Reader) *big.Int {
	x, err := rand.Int(rng, r.q)
	if err != nil {
		panic("group: ring: random source failure: " + err.Error())
	}
	return x
}

// Add returns (a + b) mod q.
func (r *Ring) Add(a, b *big.Int) *big.Int {
	return r.Reduce(new(big.Int).Add(a, b))
}

// Sub returns (a - b) mod q.
func (r *Ring) Sub(a, b *big.Int) *big.Int {
	return r.Reduce(new(big.Int).Sub(a, b))
}

// Mul returns (a * b) mod q.
func (r *Ring) Mul(a, b *big.Int) *big.Int {
	return r.Reduce(new(big.Int).Mul(a, b))
}

// Neg returns (-a) mod q.
func (r *Ring) Neg(a *big.Int) *big.Int {
	return r.Reduce(new(big.Int).Neg(a))
}

// InnerProduct returns sum_i a_i*b_i mod q. a and b must have equal length.
func (r *Ring) InnerProduct(a, b []*big.Int) *big.Int {
	if len(a) != len(b) {
		panicArithmetic("ring inner product: mismatched lengths")
	}
	acc := big.NewInt(0)
	tmp := new(big.Int)
	for i := range a {
		tmp.Mul(a[i], b[i])
		acc.Add(acc, tmp)
	}
	return r.Reduce(acc)
}

// Encode renders x as a fixed-width big-endian byte-tree leaf.
func (r *Ring) Encode(x *big.Int) *bytetree.Node {
	return bytetree.LeafInt(r.Reduce(x), r.byteLen)
}

// Decode reads a fixed-width leaf produced by Encode. Values that do not
// fit the fixed width, or that decode to an integer outside [0, q), are a
// FormatError: spec.md §7 treats an out-of-range encoded integer as
// malformed input at the decode boundary, not as a value to silently
// reduce.
func (r *Ring) Decode(n *bytetree.Node) (*big.Int, error) {
	if !n.IsLeaf() {
		return nil, newGroupFormatError("expected leaf for ring element")
	}
	if len(n.Leaf) != r.byteLen {
		return nil, newGroupFormatError("ring element has wrong encoded width")
	}
	x := new(big.Int).SetBytes(n.Leaf)
	if x.Cmp(r.q) >= 0 {
		return nil, newGroupFormatError("ring element out of range")
	}
	return x, nil
}
