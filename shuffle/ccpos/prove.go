package ccpos

import (
	"io"
	"math/big"

	"github.com/takakv/mixproof/fiatshamir"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/shuffle"
)

// Prove runs CCPoSBasicW: draw the batching vector e from a transcript
// that already includes the precommitted permutation array U, derive the
// single-element commitment F = prod w_i^e_i, commit to randomizers for
// the re-encryption exponents (phi) and the permuted batching vector
// (epsilon), challenge, respond, per spec.md §4.6.
//
// There is deliberately no A/A' commitment tying kE back to U here: with
// no generators H or opening randomness R in this witness (those belong
// to the posc proof that already committed U), any equation built solely
// from U, kE and raw e would hold for an arbitrary kE chosen independently
// of pi, so it would bind nothing. U still anchors the proof to the
// specific precomputation run because it is part of instTree, which seeds
// e: verifying this proof against a different U recomputes a different e
// and the stored kE/KF responses, fixed to the original e, fail Check 2.
func Prove(inst *Instance, wit *Witness, ch *fiatshamir.Challenger, params shuffle.SessionParams, rng io.Reader) (*Proof, error) {
	n := inst.N()
	if wit.Pi.Len() != n || wit.S.Len() != n {
		return nil, shuffle.NewProtocolError("witness dimensions do not match instance size")
	}

	ring := group.RingOf(inst.CG)

	instTree := inst.EncodeTree()
	e := ch.BatchVector(instTree, ring, n, params.NE)
	// ePi is e reindexed the same direction elgamal.Shuffle moves w
	// through pi (w'_i = Enc(1;s_i).w_pi(i)): ePi[i] = e[pi.At(i)].
	ePi := wit.Pi.ApplyRingArray(e)

	phi := ring.RandomFrom(rng)
	epsVals := make([]*big.Int, n)
	for i := range epsVals {
		epsVals[i] = ring.RandomFrom(rng)
	}
	eps := garr.NewRingArray(ring, epsVals)

	negPhi := ring.Neg(phi)
	Fp := inst.CG.Element().Scale(inst.PK, negPhi)
	Fp = inst.CG.Element().Add(Fp, inst.Wp.ExpProd(eps.Slice()))

	commitProof := &Proof{Fp: Fp}
	v := ch.Scalar(commitProof.commitmentsTree(), params.NV)

	f := wit.S.InnerProduct(ePi)
	kF := ring.Add(ring.Mul(v, f), phi)

	kEVals := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		kEVals[i] = ring.Add(ring.Mul(v, ePi.At(i)), eps.At(i))
	}
	kE := garr.NewRingArray(ring, kEVals)

	commitProof.Challenge = v
	commitProof.KE = kE
	commitProof.KF = kF

	return commitProof, nil
}
