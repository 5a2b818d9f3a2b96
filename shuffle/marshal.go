package shuffle

import (
	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
)

// commitmentsTree renders the proof's round-1 commitments only (B, A', B',
// C', D', F'), the layout hashed into the round-2 challenge. This is split
// from the full proof encoding because the challenge must be computable
// before the round-3 responses exist.
func (p *Proof) commitmentsTree() *bytetree.Node {
	return bytetree.NewNode(
		p.B.EncodeTree(),
		p.Ap.EncodeTree(),
		p.Bp.EncodeTree(),
		p.Cp.EncodeTree(),
		p.Dp.EncodeTree(),
		p.Fp.EncodeTree(),
	)
}

// CommitmentsTree renders the round-1 commitments only, the PoSCl file of
// spec.md §6's proof-directory layout.
func (p *Proof) CommitmentsTree() *bytetree.Node {
	return p.commitmentsTree()
}

// ResponsesTree renders the challenge and round-3 responses, the PoSRl
// file of spec.md §6's proof-directory layout.
func (p *Proof) ResponsesTree(ring *group.Ring) *bytetree.Node {
	return bytetree.NewNode(
		ring.Encode(p.Challenge),
		ring.Encode(p.KA),
		p.KB.EncodeTree(),
		ring.Encode(p.KC),
		ring.Encode(p.KD),
		p.KE.EncodeTree(),
		ring.Encode(p.KF),
	)
}

// EncodeTree renders the full proof (commitments, challenge, responses) as
// a single byte tree, the PoSCl/PoSRl pair of spec.md §6 collapsed into one
// in-process object for the library API; cmd/mixdemo splits commitments
// and responses into the two named files when writing the proof directory.
func (p *Proof) EncodeTree(ring *group.Ring) *bytetree.Node {
	return bytetree.NewNode(
		p.commitmentsTree(),
		ring.Encode(p.Challenge),
		ring.Encode(p.KA),
		p.KB.EncodeTree(),
		ring.Encode(p.KC),
		ring.Encode(p.KD),
		p.KE.EncodeTree(),
		ring.Encode(p.KF),
	)
}

// DecodeProof reads a proof previously produced by EncodeTree, decoding
// group elements in safe mode and returning the first error any field
// raises. Verify does not use it: Verify decodes through decodeProofSubst,
// which substitutes the identity for malformed fields instead of failing.
func DecodeProof(n *bytetree.Node, g, cg group.Group, ring *group.Ring) (*Proof, error) {
	if n.IsLeaf() || len(n.Children) != 8 {
		return nil, bytetree.NewFormatError("proof: wrong top-level arity")
	}
	commitments := n.Children[0]
	if commitments.IsLeaf() || len(commitments.Children) != 6 {
		return nil, bytetree.NewFormatError("proof: wrong commitments arity")
	}

	B, err := garr.GroupArrayFromNode(commitments.Children[0], g, true)
	if err != nil {
		return nil, err
	}
	Ap := g.Element()
	if err := Ap.DecodeTree(commitments.Children[1], true); err != nil {
		return nil, err
	}
	Bp, err := garr.GroupArrayFromNode(commitments.Children[2], g, true)
	if err != nil {
		return nil, err
	}
	Cp := g.Element()
	if err := Cp.DecodeTree(commitments.Children[3], true); err != nil {
		return nil, err
	}
	Dp := g.Element()
	if err := Dp.DecodeTree(commitments.Children[4], true); err != nil {
		return nil, err
	}
	Fp := cg.Element()
	if err := Fp.DecodeTree(commitments.Children[5], true); err != nil {
		return nil, err
	}

	challenge, err := ring.Decode(n.Children[1])
	if err != nil {
		return nil, err
	}
	kA, err := ring.Decode(n.Children[2])
	if err != nil {
		return nil, err
	}
	kB, err := garr.RingArrayFromNode(n.Children[3], ring)
	if err != nil {
		return nil, err
	}
	kC, err := ring.Decode(n.Children[4])
	if err != nil {
		return nil, err
	}
	kD, err := ring.Decode(n.Children[5])
	if err != nil {
		return nil, err
	}
	kE, err := garr.RingArrayFromNode(n.Children[6], ring)
	if err != nil {
		return nil, err
	}
	kF, err := ring.Decode(n.Children[7])
	if err != nil {
		return nil, err
	}

	return &Proof{
		B: B, Ap: Ap, Bp: Bp, Cp: Cp, Dp: Dp, Fp: Fp,
		Challenge: challenge,
		KA:        kA, KB: kB, KC: kC, KD: kD, KE: kE, KF: kF,
	}, nil
}
