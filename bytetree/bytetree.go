// Package bytetree implements the self-describing binary tree encoding that
// is the canonical form fed to the Fiat-Shamir random oracle and stored as
// proof-directory files. A tree is either a leaf carrying an opaque byte
// string, or a node carrying an ordered sequence of children.
//
// Wire format: one tag byte (0x00 leaf, 0x01 node), a 4-byte big-endian
// length (byte count for a leaf, child count for a node), then the payload.
// Encoding is a pure function of logical content: the same value always
// produces the same bytes, since every hash input passes through this
// codec and any drift would invalidate previously produced proofs.
package bytetree

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

const (
	tagLeaf byte = 0x00
	tagNode byte = 0x01
)

// Node is a byte tree: either a leaf (Children == nil) or an interior node
// (Leaf == nil).
type Node struct {
	Leaf     []byte
	Children []*Node
}

// NewLeaf wraps b as a leaf node. The input is not copied.
func NewLeaf(b []byte) *Node {
	return &Node{Leaf: b}
}

// NewNode wraps an ordered sequence of children.
func NewNode(children ...*Node) *Node {
	return &Node{Children: children}
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Encode serializes n into its canonical wire form.
func (n *Node) Encode() []byte {
	var out []byte
	n.encodeInto(&out)
	return out
}

func (n *Node) encodeInto(out *[]byte) {
	if n.IsLeaf() {
		hdr := make([]byte, 5)
		hdr[0] = tagLeaf
		binary.BigEndian.PutUint32(hdr[1:], uint32(len(n.Leaf)))
		*out = append(*out, hdr...)
		*out = append(*out, n.Leaf...)
		return
	}
	hdr := make([]byte, 5)
	hdr[0] = tagNode
	binary.BigEndian.PutUint32(hdr[1:], uint32(len(n.Children)))
	*out = append(*out, hdr...)
	for _, c := range n.Children {
		c.encodeInto(out)
	}
}

// Decode parses a single byte tree from the front of b and returns it along
// with the number of bytes consumed.
func Decode(b []byte) (*Node, int, error) {
	r := NewReader(b)
	n, err := r.readNode()
	if err != nil {
		return nil, 0, err
	}
	return n, len(b) - r.Remaining(), nil
}

// IntToBytes encodes x as a fixed-width big-endian two's-complement byte
// string of the given width. x must be non-negative and fit in width bytes;
// this matches the codec's use for Z_q elements and other bounded integers,
// never open-ended varints.
func IntToBytes(x *big.Int, width int) []byte {
	if x.Sign() < 0 {
		panic("bytetree: cannot encode negative integer")
	}
	b := x.Bytes()
	if len(b) > width {
		panic(fmt.Sprintf("bytetree: integer does not fit in %d bytes", width))
	}
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out
}

// LeafInt encodes x as a fixed-width leaf of the given byte width.
func LeafInt(x *big.Int, width int) *Node {
	return NewLeaf(IntToBytes(x, width))
}

// LeafBool encodes n booleans into a single leaf, one byte per value.
func LeafBool(bs []bool) *Node {
	out := make([]byte, len(bs))
	for i, v := range bs {
		if v {
			out[i] = 1
		}
	}
	return NewLeaf(out)
}
