package shuffle

import (
	"io"
	"math/big"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/permutation"
)

// Instance is the public input to PoSBasicTW: a commitment group G with
// independent generators H, a published permutation commitment U, a
// ciphertext group CG (G x G for width 1, or a wider product group for
// width omega > 1) with public key PK, and the input/output ciphertext
// lists W/Wp.
type Instance struct {
	G group.Group
	H *garr.GroupArray
	U *garr.GroupArray

	CG group.Group
	PK group.Element

	W  *garr.GroupArray
	Wp *garr.GroupArray
}

// N returns the instance size.
func (inst *Instance) N() int { return inst.H.Len() }

// EncodeTree renders the public instance as a byte tree, the Fiat-Shamir
// transcript data that seeds the batching vector.
func (inst *Instance) EncodeTree() *bytetree.Node {
	return bytetree.NewNode(
		inst.H.EncodeTree(),
		inst.U.EncodeTree(),
		inst.PK.EncodeTree(),
		inst.W.EncodeTree(),
		inst.Wp.EncodeTree(),
	)
}

// Witness is the prover's secret input: the permutation pi, re-encryption
// exponents S (indexed by output position) and commitment randomness R
// (indexed by input position, the same indexing CommitPermutation used to
// build U).
type Witness struct {
	Pi *permutation.Permutation
	S  *garr.RingArray
	R  *garr.RingArray
}

// CommitPermutation computes the Pedersen-style permutation commitment
// u_i = g^{r_{pi^-1(i)}} . h_{pi^-1(i)} and returns both the commitment
// array and the randomizer array r (in input, i.e. unpermuted, order), per
// spec.md §4.3/§4.5. Randomness is drawn from rng, the single named source
// threaded through the prover (spec.md §5), generalizing
// util.PedersenCommit's single-value commitment to a permuted vector.
func CommitPermutation(pi *permutation.Permutation, g group.Element, h *garr.GroupArray, rng io.Reader) (*garr.GroupArray, *garr.RingArray) {
	n := h.Len()
	gr := h.Group()
	ring := group.RingOf(gr)

	rVals := make([]*big.Int, n)
	c := make([]group.Element, n)
	for j := 0; j < n; j++ {
		rVals[j] = ring.RandomFrom(rng)
		gToR := gr.Element().Scale(g, rVals[j])
		c[j] = gr.Element().Add(gToR, h.At(j))
	}

	cArr := garr.NewGroupArray(gr, c)
	u := pi.Inv().ApplyGroupArray(cArr)
	r := garr.NewRingArray(ring, rVals)
	return u, r
}
