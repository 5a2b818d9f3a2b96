// Package shuffle implements the Terelius-Wikstrom proof of a shuffle
// (PoSBasicTW), the heart of the mix-net core. The three-move Prove/Verify
// shape is grounded on voteproof.go's SigmaCommit/SigmaChallenge/
// SigmaResponse split, generalized from a single-secret equality relation
// to the vectorized permutation-and-re-encryption relation of a shuffle.
package shuffle

import (
	"errors"

	"github.com/takakv/mixproof/fiatshamir"
)

// SessionParams holds the session-wide constants that enter the
// Fiat-Shamir prefix: challenge bit length, batching-component bit length,
// statistical security, and the named algorithm identifiers.
type SessionParams struct {
	NV int // challenge bit length
	NE int // batching-component bit length
	NR int // statistical security bits for permutation sampling

	Version   string
	ROSID     string
	PRGName   string
	GroupName string
	HashName  string
}

// Setup validates params and constructs the session's Fiat-Shamir
// challenger, mirroring voteproof.Setup's role of turning raw parameters
// into a validated, immutable configuration object.
func Setup(params SessionParams) (*fiatshamir.Challenger, error) {
	if params.NV <= 0 || params.NE <= 0 || params.NR <= 0 {
		return nil, errors.New("shuffle: session parameters must be positive")
	}
	return fiatshamir.NewChallenger(
		params.Version, params.ROSID, params.NR, params.NV, params.NE,
		params.PRGName, params.GroupName, params.HashName,
	), nil
}
