package shuffle

import (
	"io"
	"math/big"

	"github.com/takakv/mixproof/fiatshamir"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
)

// Prove runs the three-move PoSBasicTW protocol non-interactively via ch,
// implementing spec.md §4.5's round 1/2/3 verbatim. Every draw of
// randomness goes through rng, the single named RandomSource of spec.md
// §5.
func Prove(inst *Instance, wit *Witness, ch *fiatshamir.Challenger, params SessionParams, rng io.Reader) (*Proof, error) {
	n := inst.N()
	if wit.Pi.Len() != n || wit.S.Len() != n || wit.R.Len() != n {
		return nil, newProtocolError("witness dimensions do not match instance size")
	}

	ring := group.RingOf(inst.G)
	g := inst.G.Generator()

	instTree := inst.EncodeTree()

	// Round 1. ePi is e reindexed by pi the way elgamal.Shuffle reindexes
	// w: ePi[i] = e[pi.At(i)]. CommitPermutation places h_j at slot pi(j),
	// so ePi[j] is also the exponent h_j receives in prod u_i^{e_i}. Check 1
	// and Check 5 of Verify both algebraically reduce to this direction once u_i/w'_i's own pi-indexing is substituted in;
	// using pi.Inv() here instead satisfies neither equation for a
	// non-involutive permutation.
	e := ch.BatchVector(instTree, ring, n, params.NE)
	ePi := wit.Pi.ApplyRingArray(e)

	alpha := ring.RandomFrom(rng)
	gamma := ring.RandomFrom(rng)
	delta := ring.RandomFrom(rng)
	phi := ring.RandomFrom(rng)

	betaVals := make([]*big.Int, n)
	epsVals := make([]*big.Int, n)
	bVals := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		betaVals[i] = ring.RandomFrom(rng)
		epsVals[i] = ring.RandomFrom(rng)
		bVals[i] = ring.RandomFrom(rng)
	}
	beta := garr.NewRingArray(ring, betaVals)
	eps := garr.NewRingArray(ring, epsVals)
	bRing := garr.NewRingArray(ring, bVals)
	x, d := bRing.RecLin(ePi)
	y := ePi.Prods()

	xPrime := x.ShiftPush(ring.Zero())
	yPrime := y.ShiftPush(big.NewInt(1))

	h0 := inst.H.At(0)

	// B_i = g^{x_i} . h0^{y_i}
	bCommit := make([]group.Element, n)
	for i := 0; i < n; i++ {
		left := inst.G.Element().Scale(g, x.At(i))
		right := inst.G.Element().Scale(h0, y.At(i))
		bCommit[i] = inst.G.Element().Add(left, right)
	}
	B := garr.NewGroupArray(inst.G, bCommit)

	// A' = g^alpha . prod h_i^eps_i
	Ap := inst.G.Element().Scale(g, alpha)
	Ap = inst.G.Element().Add(Ap, inst.H.ExpProd(eps.Slice()))

	// B'_i = g^{beta_i + x'_i*eps_i} . h0^{y'_i*eps_i}
	bpCommit := make([]group.Element, n)
	for i := 0; i < n; i++ {
		expG := ring.Add(beta.At(i), ring.Mul(xPrime.At(i), eps.At(i)))
		expH := ring.Mul(yPrime.At(i), eps.At(i))
		left := inst.G.Element().Scale(g, expG)
		right := inst.G.Element().Scale(h0, expH)
		bpCommit[i] = inst.G.Element().Add(left, right)
	}
	Bp := garr.NewGroupArray(inst.G, bpCommit)

	Cp := inst.G.Element().Scale(g, gamma)
	Dp := inst.G.Element().Scale(g, delta)

	// F' = pk^{-phi} . prod w'_i^eps_i
	negPhi := ring.Neg(phi)
	Fp := inst.CG.Element().Scale(inst.PK, negPhi)
	Fp = inst.CG.Element().Add(Fp, inst.Wp.ExpProd(eps.Slice()))

	// Round 2.
	commitProof := &Proof{B: B, Ap: Ap, Bp: Bp, Cp: Cp, Dp: Dp, Fp: Fp}
	challengeTree := commitProof.commitmentsTree()
	v := ch.Scalar(challengeTree, params.NV)

	// Round 3.
	a := wit.R.InnerProduct(ePi)
	c := wit.R.Sum()
	f := wit.S.InnerProduct(ePi)

	kA := ring.Add(ring.Mul(v, a), alpha)
	kC := ring.Add(ring.Mul(v, c), gamma)
	kD := ring.Add(ring.Mul(v, d), delta)
	kF := ring.Add(ring.Mul(v, f), phi)

	kBVals := make([]*big.Int, n)
	kEVals := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		kBVals[i] = ring.Add(ring.Mul(v, bRing.At(i)), beta.At(i))
		kEVals[i] = ring.Add(ring.Mul(v, ePi.At(i)), eps.At(i))
	}
	kB := garr.NewRingArray(ring, kBVals)
	kE := garr.NewRingArray(ring, kEVals)

	commitProof.Challenge = v
	commitProof.KA = kA
	commitProof.KB = kB
	commitProof.KC = kC
	commitProof.KD = kD
	commitProof.KE = kE
	commitProof.KF = kF

	return commitProof, nil
}
