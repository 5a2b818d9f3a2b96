package shuffle

import (
	"math/big"

	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
)

// Proof is the full PoSBasicTW transcript: round-1 commitments, the
// recomputed/stored challenge, and round-3 responses, per spec.md §4.5.
type Proof struct {
	B  *garr.GroupArray // length N bridging commitments
	Ap group.Element    // A'
	Bp *garr.GroupArray // length N
	Cp group.Element    // C'
	Dp group.Element    // D'
	Fp group.Element    // F'

	Challenge *big.Int

	KA *big.Int
	KB *garr.RingArray // length N
	KC *big.Int
	KD *big.Int
	KE *garr.RingArray // length N
	KF *big.Int
}
