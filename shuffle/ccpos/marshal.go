package ccpos

import (
	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/group"
)

// commitmentsTree renders the proof's round-1 commitment (F'), the layout
// hashed into the round-2 challenge.
func (p *Proof) commitmentsTree() *bytetree.Node {
	return bytetree.NewNode(p.Fp.EncodeTree())
}

// EncodeTree renders the full proof as a single byte tree.
func (p *Proof) EncodeTree(ring *group.Ring) *bytetree.Node {
	return bytetree.NewNode(
		p.commitmentsTree(),
		ring.Encode(p.Challenge),
		p.KE.EncodeTree(),
		ring.Encode(p.KF),
	)
}
