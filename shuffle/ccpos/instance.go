// Package ccpos implements CCPoSBasicW, the commitment-consistent shuffle
// proof of spec.md §4.6: given a permutation commitment U already produced
// (and separately proved, e.g. via posc) in an earlier precomputation
// phase, this proves only the re-encryption relation between W and Wp,
// without reproving knowledge of U's opening. The interface is
// Prove/Verify, matching the rest of this module's functional shape
// rather than the staged setInstance/setBatchVector/computeAB/... method
// sequence spec.md §4.6 names, which describes a stateful protocol-object
// API not idiomatic for a Go library entry point.
package ccpos

import (
	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/permutation"
)

// Instance is the public input: the already-committed permutation array U,
// the ciphertext group CG with public key PK, and the input/output
// ciphertext lists.
type Instance struct {
	U  *garr.GroupArray
	CG group.Group
	PK group.Element
	W  *garr.GroupArray
	Wp *garr.GroupArray
}

// N returns the instance size.
func (inst *Instance) N() int { return inst.U.Len() }

// EncodeTree renders the public instance as a byte tree.
func (inst *Instance) EncodeTree() *bytetree.Node {
	return bytetree.NewNode(
		inst.U.EncodeTree(),
		inst.PK.EncodeTree(),
		inst.W.EncodeTree(),
		inst.Wp.EncodeTree(),
	)
}

// Witness is the prover's secret input: the permutation pi (the same one
// U already commits to) and the re-encryption exponents S.
type Witness struct {
	Pi *permutation.Permutation
	S  *garr.RingArray
}
