package posc

import (
	"math/big"

	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
)

// Proof is the PoSCBasicTW transcript: round-1 commitments, the recomputed/
// stored challenge, and round-3 responses, identical to PoSBasicTW's shape
// minus the ciphertext limb (no Fp/KF), per spec.md §4.7.
type Proof struct {
	B  *garr.GroupArray
	Ap group.Element
	Bp *garr.GroupArray
	Cp group.Element
	Dp group.Element

	Challenge *big.Int

	KA *big.Int
	KB *garr.RingArray
	KC *big.Int
	KD *big.Int
	KE *garr.RingArray
}
