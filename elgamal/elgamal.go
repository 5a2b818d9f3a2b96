// Package elgamal implements the lifted, width-generalized ElGamal
// ciphertext used as the mix-net's re-encryption layer: a ciphertext is a
// pair (U, V) of elements of a width-omega product group G^omega, packed
// as one element of the ciphertext group CG = G^omega x G^omega. This
// generalizes the teacher's single-value ElGamalCiphertext
// (root elgamal.go's U/V over a single field element) to the vector
// ciphertexts a shuffle proof of width omega > 1 needs.
package elgamal

import (
	"io"
	"math/big"

	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/permutation"
)

// PublicKey bundles the commitment group G, the derived ciphertext group
// CG, the public key element PK (in CG's plaintext factor group), and the
// re-randomization base RB = (g, pk), the CG element that stands in for
// "pk" in the shuffle proof's F/F' equations (spec.md §4.5: re-randomizing
// by s multiplies the ciphertext by Enc_pk(1; s) = g^s, pk^s)).
type PublicKey struct {
	G  group.Group
	CG *group.ProductGroup
	PK group.Element
	RB group.Element
}

// plaintextGroup returns the factor group ciphertext components live in:
// g itself for width 1, or g repeated omega times for width omega > 1.
func plaintextGroup(g group.Group, omega int) group.Group {
	if omega <= 0 {
		panic("elgamal: ciphertext width must be positive")
	}
	if omega == 1 {
		return g
	}
	return group.Repeat(g, omega)
}

// CiphertextGroup returns G^omega x G^omega, spec.md §4.5's generalization
// of the ciphertext carrier beyond width 1.
func CiphertextGroup(g group.Group, omega int) *group.ProductGroup {
	gw := plaintextGroup(g, omega)
	return group.NewProductGroup(gw, gw)
}

// GenerateKey draws a fresh secret key from rng and derives the matching
// PublicKey for ciphertexts of width omega over g.
func GenerateKey(g group.Group, omega int, rng io.Reader) (*PublicKey, *big.Int) {
	ring := group.RingOf(g)
	x := ring.RandomFrom(rng)

	gw := plaintextGroup(g, omega)
	pk := gw.Element().Scale(gw.Generator(), x)
	cg := group.NewProductGroup(gw, gw)
	rb := cg.NewElement(gw.Element().Set(gw.Generator()), pk)

	return &PublicKey{G: g, CG: cg, PK: pk, RB: rb}, x
}

// Encrypt encrypts plaintext m (an element of the width-omega plaintext
// group) under pub with fresh randomness drawn from rng, returning the
// ciphertext and the randomness used.
func Encrypt(pub *PublicKey, m group.Element, rng io.Reader) (group.Element, *big.Int) {
	ring := group.RingOf(pub.G)
	r := ring.RandomFrom(rng)
	return EncryptWith(pub, m, r), r
}

// EncryptWith encrypts m under the explicit randomness r, the deterministic
// core Encrypt builds on and that re-encryption reuses directly.
func EncryptWith(pub *PublicKey, m group.Element, r *big.Int) group.Element {
	gw := pub.CG.Factor(0)
	u := gw.Element().Scale(gw.Generator(), r)
	mask := gw.Element().Scale(pub.PK, r)
	v := gw.Element().Add(m, mask)
	return pub.CG.NewElement(u, v)
}

// Decrypt recovers the plaintext group element from ct under secret key x.
func Decrypt(pub *PublicKey, ct group.Element, x *big.Int) group.Element {
	pe := ct.(*group.ProductElement)
	gw := pub.CG.Factor(0)
	xu := gw.Element().Scale(pe.Part(0), x)
	return gw.Element().Subtract(pe.Part(1), xu)
}

// ReEncrypt returns ct multiplied by Enc_pk(1; s), the identity-message
// re-randomization spec.md §4.5's witness exponents s_i apply.
func ReEncrypt(pub *PublicKey, ct group.Element, s *big.Int) group.Element {
	gw := pub.CG.Factor(0)
	blank := EncryptWith(pub, gw.Identity(), s)
	return pub.CG.Element().Add(ct, blank)
}

// Shuffle permutes w by pi and re-encrypts every entry with a freshly
// drawn exponent, producing w'_i = Enc_pk(1; s_i) . w_{pi(i)} and the
// witness exponent array S (indexed by output position), per spec.md
// §4.5's shuffle relation. Output slot i draws from input slot pi(i), while
// shuffle.CommitPermutation's slot i draws h_{pi^-1(i)} (it places h_j at
// slot pi(j)); with these two conventions the single reindexed batching
// vector e[pi(i)] satisfies both the permutation commitment and the
// re-encryption relation's verification equations.
func Shuffle(pub *PublicKey, pi *permutation.Permutation, w *garr.GroupArray, rng io.Reader) (*garr.GroupArray, *garr.RingArray) {
	n := w.Len()
	ring := group.RingOf(pub.G)
	permuted := pi.ApplyGroupArray(w)

	sVals := make([]*big.Int, n)
	out := make([]group.Element, n)
	for i := 0; i < n; i++ {
		sVals[i] = ring.RandomFrom(rng)
		out[i] = ReEncrypt(pub, permuted.At(i), sVals[i])
	}
	return garr.NewGroupArray(pub.CG, out), garr.NewRingArray(ring, sVals)
}
