package posc

import (
	"io"
	"math/big"

	"github.com/takakv/mixproof/fiatshamir"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/shuffle"
)

// Prove runs the three-move PoSCBasicTW protocol, spec.md §4.7's
// (alpha,beta,gamma,delta,epsilon) machinery without the ciphertext limb.
func Prove(inst *Instance, wit *Witness, ch *fiatshamir.Challenger, params shuffle.SessionParams, rng io.Reader) (*Proof, error) {
	n := inst.N()
	if wit.Pi.Len() != n || wit.R.Len() != n {
		return nil, shuffle.NewProtocolError("witness dimensions do not match instance size")
	}

	ring := group.RingOf(inst.G)
	g := inst.G.Generator()

	instTree := inst.EncodeTree()
	// ePi is e reindexed by pi in the direction CommitPermutation moves h
	// through pi (u_i = g^{r_pi^-1(i)}.h_pi^-1(i)): ePi[i] = e[pi.At(i)].
	// Using pi.Inv() here instead fails Check 1/2 of Verify for any
	// non-involutive permutation.
	e := ch.BatchVector(instTree, ring, n, params.NE)
	ePi := wit.Pi.ApplyRingArray(e)

	alpha := ring.RandomFrom(rng)
	gamma := ring.RandomFrom(rng)
	delta := ring.RandomFrom(rng)

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

	bCommit := make([]group.Element, n)
	for i := 0; i < n; i++ {
		left := inst.G.Element().Scale(g, x.At(i))
		right := inst.G.Element().Scale(h0, y.At(i))
		bCommit[i] = inst.G.Element().Add(left, right)
	}
	B := garr.NewGroupArray(inst.G, bCommit)

	Ap := inst.G.Element().Scale(g, alpha)
	Ap = inst.G.Element().Add(Ap, inst.H.ExpProd(eps.Slice()))

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

	commitProof := &Proof{B: B, Ap: Ap, Bp: Bp, Cp: Cp, Dp: Dp}
	challengeTree := commitProof.commitmentsTree()
	v := ch.Scalar(challengeTree, params.NV)

	a := wit.R.InnerProduct(ePi)
	c := wit.R.Sum()

	kA := ring.Add(ring.Mul(v, a), alpha)
	kC := ring.Add(ring.Mul(v, c), gamma)
	kD := ring.Add(ring.Mul(v, d), delta)

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

	return commitProof, nil
}
