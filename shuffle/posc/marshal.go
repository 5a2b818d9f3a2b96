package posc

import (
	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/group"
)

// commitmentsTree renders the proof's round-1 commitments (B, A', B', C',
// D'), the layout hashed into the round-2 challenge.
func (p *Proof) commitmentsTree() *bytetree.Node {
	return bytetree.NewNode(
		p.B.EncodeTree(),
		p.Ap.EncodeTree(),
		p.Bp.EncodeTree(),
		p.Cp.EncodeTree(),
		p.Dp.EncodeTree(),
	)
}

// EncodeTree renders the full proof as a single byte tree.
func (p *Proof) EncodeTree(ring *group.Ring) *bytetree.Node {
	return bytetree.NewNode(
		p.commitmentsTree(),
		ring.Encode(p.Challenge),
		ring.Encode(p.KA),
		p.KB.EncodeTree(),
		ring.Encode(p.KC),
		ring.Encode(p.KD),
		p.KE.EncodeTree(),
	)
}
