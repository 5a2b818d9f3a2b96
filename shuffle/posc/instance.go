// Package posc implements PoSCBasicTW, the proof that an array of
// permutation commitments U is a valid shuffle of independent generators
// H, per spec.md §4.7. It reuses PoSBasicTW's (alpha,beta,gamma,delta,
// epsilon) commitment machinery from the parent shuffle package but drops
// the ciphertext limb (no F, F', k_F) since there is no re-encryption
// relation to prove here, only the permutation-commitment relation itself.
package posc

import (
	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/permutation"
)

// Instance is the public input: a commitment group G with independent
// generators H and a permutation-commitment array U, with no ciphertext
// component.
type Instance struct {
	G group.Group
	H *garr.GroupArray
	U *garr.GroupArray
}

// N returns the instance size.
func (inst *Instance) N() int { return inst.H.Len() }

// EncodeTree renders the public instance as a byte tree, the transcript
// data that seeds the batching vector.
func (inst *Instance) EncodeTree() *bytetree.Node {
	return bytetree.NewNode(inst.H.EncodeTree(), inst.U.EncodeTree())
}

// Witness is the prover's secret input: the permutation pi and the
// commitment randomizers R (in input, unpermuted, order), matching
// shuffle.CommitPermutation's output.
type Witness struct {
	Pi *permutation.Permutation
	R  *garr.RingArray
}
