package ccpos

import (
	"math/big"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/fiatshamir"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/shuffle"
)

func decodeElementSubst(g group.Group, n *bytetree.Node) group.Element {
	e := g.Element()
	if err := e.DecodeTree(n, true); err != nil {
		return g.Identity()
	}
	return e
}

func decodeElementSubstOrNil(g group.Group, n *bytetree.Node) group.Element {
	if n == nil {
		return g.Identity()
	}
	return decodeElementSubst(g, n)
}

func decodeScalarSubstOrNil(ring *group.Ring, n *bytetree.Node) *big.Int {
	if n == nil {
		return ring.Zero()
	}
	x, err := ring.Decode(n)
	if err != nil {
		return ring.Zero()
	}
	return x
}

func decodeRingArraySubst(ring *group.Ring, node *bytetree.Node, n int) *garr.RingArray {
	xs := make([]*big.Int, n)
	if node == nil || node.IsLeaf() || len(node.Children) != n {
		for i := range xs {
			xs[i] = ring.Zero()
		}
		return garr.NewRingArray(ring, xs)
	}
	for i := 0; i < n; i++ {
		xs[i] = decodeScalarSubstOrNil(ring, node.Children[i])
	}
	return garr.NewRingArray(ring, xs)
}

// decodeProofSubst reads a proof transcript leniently, substituting the
// group/ring identity for any field that fails to decode or fails
// membership.
func decodeProofSubst(n *bytetree.Node, cg group.Group, ring *group.Ring, size int) *Proof {
	if n == nil || n.IsLeaf() || len(n.Children) != 4 {
		zeros := make([]*big.Int, size)
		for i := range zeros {
			zeros[i] = ring.Zero()
		}
		return &Proof{
			Fp:        cg.Identity(),
			Challenge: ring.Zero(),
			KE:        garr.NewRingArray(ring, zeros),
			KF:        ring.Zero(),
		}
	}

	commitments := n.Children[0]
	var cc []*bytetree.Node
	if !commitments.IsLeaf() && len(commitments.Children) == 1 {
		cc = commitments.Children
	} else {
		cc = make([]*bytetree.Node, 1)
	}

	Fp := decodeElementSubstOrNil(cg, cc[0])
	challenge := decodeScalarSubstOrNil(ring, n.Children[1])
	kE := decodeRingArraySubst(ring, n.Children[2], size)
	kF := decodeScalarSubstOrNil(ring, n.Children[3])

	return &Proof{Fp: Fp, Challenge: challenge, KE: kE, KF: kF}
}

// Verify checks a CCPoSBasicW proof transcript n against the public
// instance inst: F^v.F' = pk^{-k_F} . prod w'_i^{k_E,i}, per spec.md
// §4.6. U only enters via instTree seeding e; see Prove's doc comment for
// why no separate equation re-checks U directly.
func Verify(inst *Instance, n *bytetree.Node, ch *fiatshamir.Challenger, params shuffle.SessionParams) bool {
	size := inst.N()
	ring := group.RingOf(inst.CG)

	proof := decodeProofSubst(n, inst.CG, ring, size)

	instTree := inst.EncodeTree()
	e := ch.BatchVector(instTree, ring, size, params.NE)

	v := ch.Scalar(proof.commitmentsTree(), params.NV)
	if v.Cmp(proof.Challenge) != 0 {
		return false
	}

	F := inst.W.ExpProd(e.Slice())

	ok := true

	lhs2 := inst.CG.Element().Scale(F, v)
	lhs2 = inst.CG.Element().Add(lhs2, proof.Fp)
	negKF := ring.Neg(proof.KF)
	rhs2 := inst.CG.Element().Scale(inst.PK, negKF)
	rhs2 = inst.CG.Element().Add(rhs2, inst.Wp.ExpProd(proof.KE.Slice()))
	if !lhs2.IsEqual(rhs2) {
		ok = false
	}

	return ok
}
