package posc

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

func decodeGroupArraySubst(g group.Group, node *bytetree.Node, n int) *garr.GroupArray {
	es := make([]group.Element, n)
	if node == nil || node.IsLeaf() || len(node.Children) != n {
		for i := range es {
			es[i] = g.Identity()
		}
		return garr.NewGroupArray(g, es)
	}
	for i := 0; i < n; i++ {
		es[i] = decodeElementSubst(g, node.Children[i])
	}
	return garr.NewGroupArray(g, es)
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
// membership, the same substitution-and-continue discipline as
// shuffle.Verify.
func decodeProofSubst(n *bytetree.Node, g group.Group, ring *group.Ring, size int) *Proof {
	if n == nil || n.IsLeaf() || len(n.Children) != 7 {
		zeros := make([]*big.Int, size)
		for i := range zeros {
			zeros[i] = ring.Zero()
		}
		return &Proof{
			B:         garr.Repeat(g, g.Identity(), size),
			Ap:        g.Identity(),
			Bp:        garr.Repeat(g, g.Identity(), size),
			Cp:        g.Identity(),
			Dp:        g.Identity(),
			Challenge: ring.Zero(),
			KA:        ring.Zero(),
			KB:        garr.NewRingArray(ring, zeros),
			KC:        ring.Zero(),
			KD:        ring.Zero(),
			KE:        garr.NewRingArray(ring, zeros),
		}
	}

	commitments := n.Children[0]
	var cc []*bytetree.Node
	if !commitments.IsLeaf() && len(commitments.Children) == 5 {
		cc = commitments.Children
	} else {
		cc = make([]*bytetree.Node, 5)
	}
	get := func(i int) *bytetree.Node { return cc[i] }

	B := decodeGroupArraySubst(g, get(0), size)
	Ap := decodeElementSubstOrNil(g, get(1))
	Bp := decodeGroupArraySubst(g, get(2), size)
	Cp := decodeElementSubstOrNil(g, get(3))
	Dp := decodeElementSubstOrNil(g, get(4))

	challenge := decodeScalarSubstOrNil(ring, n.Children[1])
	kA := decodeScalarSubstOrNil(ring, n.Children[2])
	kB := decodeRingArraySubst(ring, n.Children[3], size)
	kC := decodeScalarSubstOrNil(ring, n.Children[4])
	kD := decodeScalarSubstOrNil(ring, n.Children[5])
	kE := decodeRingArraySubst(ring, n.Children[6], size)

	return &Proof{
		B: B, Ap: Ap, Bp: Bp, Cp: Cp, Dp: Dp,
		Challenge: challenge,
		KA:        kA, KB: kB, KC: kC, KD: kD, KE: kE,
	}
}

// Verify checks a PoSCBasicTW proof transcript n against the public
// instance inst, per spec.md §4.7: the A, B, C, D accept/reject relations
// are identical to PoSBasicTW's, there is no F relation.
func Verify(inst *Instance, n *bytetree.Node, ch *fiatshamir.Challenger, params shuffle.SessionParams) bool {
	size := inst.N()
	ring := group.RingOf(inst.G)
	g := inst.G.Generator()

	proof := decodeProofSubst(n, inst.G, ring, size)

	instTree := inst.EncodeTree()
	e := ch.BatchVector(instTree, ring, size, params.NE)

	challengeTree := proof.commitmentsTree()
	v := ch.Scalar(challengeTree, params.NV)
	if v.Cmp(proof.Challenge) != 0 {
		return false
	}

	h0 := inst.H.At(0)

	A := inst.U.ExpProd(e.Slice())
	C := inst.G.Element().Subtract(inst.U.Prod(), inst.H.Prod())

	prodE := big.NewInt(1)
	for i := 0; i < size; i++ {
		prodE = ring.Mul(prodE, e.At(i))
	}
	var D group.Element
	if size == 0 {
		D = inst.G.Identity()
	} else {
		h0ToProdE := inst.G.Element().Scale(h0, prodE)
		D = inst.G.Element().Subtract(proof.B.At(size-1), h0ToProdE)
	}

	ok := true

	lhs1 := inst.G.Element().Scale(A, v)
	lhs1 = inst.G.Element().Add(lhs1, proof.Ap)
	rhs1 := inst.G.Element().Scale(g, proof.KA)
	rhs1 = inst.G.Element().Add(rhs1, inst.H.ExpProd(proof.KE.Slice()))
	if !lhs1.IsEqual(rhs1) {
		ok = false
	}

	if size > 0 {
		bShift := proof.B.ShiftPush(h0)
		for i := 0; i < size; i++ {
			lhs := inst.G.Element().Scale(proof.B.At(i), v)
			lhs = inst.G.Element().Add(lhs, proof.Bp.At(i))
			rhs := inst.G.Element().Scale(g, proof.KB.At(i))
			term := inst.G.Element().Scale(bShift.At(i), proof.KE.At(i))
			rhs = inst.G.Element().Add(rhs, term)
			if !lhs.IsEqual(rhs) {
				ok = false
				break
			}
		}
	}

	lhs3 := inst.G.Element().Scale(C, v)
	lhs3 = inst.G.Element().Add(lhs3, proof.Cp)
	rhs3 := inst.G.Element().Scale(g, proof.KC)
	if !lhs3.IsEqual(rhs3) {
		ok = false
	}

	lhs4 := inst.G.Element().Scale(D, v)
	lhs4 = inst.G.Element().Add(lhs4, proof.Dp)
	rhs4 := inst.G.Element().Scale(g, proof.KD)
	if !lhs4.IsEqual(rhs4) {
		ok = false
	}

	return ok
}
