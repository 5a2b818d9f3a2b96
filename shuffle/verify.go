package shuffle

import (
	"math/big"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/fiatshamir"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
)

// decodeElementSubst decodes a single group element in safe mode,
// substituting the identity element for anything that fails to decode or
// fails group membership, per spec.md §4.5's substitution-and-continue
// verifier semantics: a malformed proof never short-circuits verification,
// it just cannot satisfy the resulting equations.
func decodeElementSubst(g group.Group, n *bytetree.Node) group.Element {
	e := g.Element()
	if err := e.DecodeTree(n, true); err != nil {
		return g.Identity()
	}
	return e
}

// decodeGroupArraySubst decodes an n-element array, substituting identity
// element-by-element on failure instead of aborting the whole array.
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

// decodeScalarSubst decodes a single ring element, substituting zero on
// failure.
func decodeScalarSubst(ring *group.Ring, n *bytetree.Node) *big.Int {
	x, err := ring.Decode(n)
	if err != nil {
		return ring.Zero()
	}
	return x
}

// decodeRingArraySubst decodes an n-element scalar array, substituting zero
// element-by-element on failure.
func decodeRingArraySubst(ring *group.Ring, node *bytetree.Node, n int) *garr.RingArray {
	xs := make([]*big.Int, n)
	if node == nil || node.IsLeaf() || len(node.Children) != n {
		for i := range xs {
			xs[i] = ring.Zero()
		}
		return garr.NewRingArray(ring, xs)
	}
	for i := 0; i < n; i++ {
		xs[i] = decodeScalarSubst(ring, node.Children[i])
	}
	return garr.NewRingArray(ring, xs)
}

// decodeProofSubst reads a proof transcript leniently: any field that fails
// to decode or fails membership is replaced by the group/ring identity
// rather than causing Verify to reject immediately. This is what makes
// Verify's challenge-recomputation check and final equation checks the sole
// source of truth for acceptance.
func decodeProofSubst(n *bytetree.Node, g, cg group.Group, ring *group.Ring, size int) *Proof {
	if n == nil || n.IsLeaf() || len(n.Children) != 8 {
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
			Fp:        cg.Identity(),
			Challenge: ring.Zero(),
			KA:        ring.Zero(),
			KB:        garr.NewRingArray(ring, zeros),
			KC:        ring.Zero(),
			KD:        ring.Zero(),
			KE:        garr.NewRingArray(ring, zeros),
			KF:        ring.Zero(),
		}
	}

	commitments := n.Children[0]
	var cc []*bytetree.Node
	if !commitments.IsLeaf() && len(commitments.Children) == 6 {
		cc = commitments.Children
	} else {
		cc = make([]*bytetree.Node, 6)
	}
	get := func(i int) *bytetree.Node { return cc[i] }

	B := decodeGroupArraySubst(g, get(0), size)
	Ap := decodeElementSubstOrNil(g, get(1))
	Bp := decodeGroupArraySubst(g, get(2), size)
	Cp := decodeElementSubstOrNil(g, get(3))
	Dp := decodeElementSubstOrNil(g, get(4))
	Fp := decodeElementSubstOrNil(cg, get(5))

	challenge := decodeScalarSubstOrNil(ring, n.Children[1])
	kA := decodeScalarSubstOrNil(ring, n.Children[2])
	kB := decodeRingArraySubst(ring, n.Children[3], size)
	kC := decodeScalarSubstOrNil(ring, n.Children[4])
	kD := decodeScalarSubstOrNil(ring, n.Children[5])
	kE := decodeRingArraySubst(ring, n.Children[6], size)
	kF := decodeScalarSubstOrNil(ring, n.Children[7])

	return &Proof{
		B: B, Ap: Ap, Bp: Bp, Cp: Cp, Dp: Dp, Fp: Fp,
		Challenge: challenge,
		KA:        kA, KB: kB, KC: kC, KD: kD, KE: kE, KF: kF,
	}
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
	return decodeScalarSubst(ring, n)
}

// Verify checks a PoSBasicTW proof transcript n against the public instance
// inst. Decoding never aborts early (see decodeProofSubst); acceptance is
// decided solely by the challenge-recomputation check and the five
// verification equations of spec.md §4.5.
func Verify(inst *Instance, n *bytetree.Node, ch *fiatshamir.Challenger, params SessionParams) bool {
	size := inst.N()
	ring := group.RingOf(inst.G)
	g := inst.G.Generator()

	proof := decodeProofSubst(n, inst.G, inst.CG, ring, size)

	instTree := inst.EncodeTree()
	e := ch.BatchVector(instTree, ring, size, params.NE)

	challengeTree := proof.commitmentsTree()
	v := ch.Scalar(challengeTree, params.NV)
	if v.Cmp(proof.Challenge) != 0 {
		return false
	}

	h0 := inst.H.At(0)

	// A = prod u_i^{e_i}, F = prod w_i^{e_i}.
	A := inst.U.ExpProd(e.Slice())
	F := inst.W.ExpProd(e.Slice())

	// C = (prod u_i) / (prod h_i).
	C := inst.G.Element().Subtract(inst.U.Prod(), inst.H.Prod())

	// D = B_{N-1} / h0^{prod e_i}.
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

	// Check 1: A^v . A' = g^{kA} . prod h_i^{kE_i}.
	lhs1 := inst.G.Element().Scale(A, v)
	lhs1 = inst.G.Element().Add(lhs1, proof.Ap)
	rhs1 := inst.G.Element().Scale(g, proof.KA)
	rhs1 = inst.G.Element().Add(rhs1, inst.H.ExpProd(proof.KE.Slice()))
	if !lhs1.IsEqual(rhs1) {
		ok = false
	}

	// Check 2: for every i, B_i^v . B'_i = g^{kB_i} . Bshift_i^{kE_i}.
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

	// Check 3: C^v . C' = g^{kC}.
	lhs3 := inst.G.Element().Scale(C, v)
	lhs3 = inst.G.Element().Add(lhs3, proof.Cp)
	rhs3 := inst.G.Element().Scale(g, proof.KC)
	if !lhs3.IsEqual(rhs3) {
		ok = false
	}

	// Check 4: D^v . D' = g^{kD}.
	lhs4 := inst.G.Element().Scale(D, v)
	lhs4 = inst.G.Element().Add(lhs4, proof.Dp)
	rhs4 := inst.G.Element().Scale(g, proof.KD)
	if !lhs4.IsEqual(rhs4) {
		ok = false
	}

	// Check 5: F^v . F' = pk^{-kF} . prod w'_i^{kE_i}.
	lhs5 := inst.CG.Element().Scale(F, v)
	lhs5 = inst.CG.Element().Add(lhs5, proof.Fp)
	negKF := ring.Neg(proof.KF)
	rhs5 := inst.CG.Element().Scale(inst.PK, negKF)
	rhs5 = inst.CG.Element().Add(rhs5, inst.Wp.ExpProd(proof.KE.Slice()))
	if !lhs5.IsEqual(rhs5) {
		ok = false
	}

	return ok
}
