package ccpos

import (
	"math/big"

	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
)

// Proof is the CCPoSBasicW transcript: the round-1 commitment F', the
// recomputed/stored challenge, and round-3 responses k_E, k_F, binding
// the re-encryption relation between W and Wp to the already-published
// permutation commitment U (via the Fiat-Shamir transcript, which feeds U
// into the batching vector) without reproving U's opening, per spec.md
// §4.6.
type Proof struct {
	Fp group.Element

	Challenge *big.Int

	KE *garr.RingArray
	KF *big.Int
}
