// Package permutation implements uniform permutation sampling and
// application, the Pi of spec.md §4.3. Sampling uses a random-prefix sort
// rather than Fisher-Yates (the simpler approach taken by
// cjpatton-shuffle's GeneratePerm) because the proof's soundness argument
// needs sampling to be statistically close to uniform by a named bound, not
// merely uniform in expectation.
package permutation

import (
	"io"
	"math/big"
	"math/bits"
	"sort"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/garr"
)

// Permutation is a bijection on {0, ..., n-1}.
type Permutation struct {
	// idx[i] is the index that position i draws from: Apply produces
	// out[i] = in[idx[i]].
	idx []int
}

// New returns the identity permutation on n elements.
func New(n int) *Permutation {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return &Permutation{idx: idx}
}

// Len returns n.
func (p *Permutation) Len() int { return len(p.idx) }

// At returns idx[i].
func (p *Permutation) At(i int) int { return p.idx[i] }

// Ints returns the underlying index array; callers must not mutate it.
func (p *Permutation) Ints() []int { return p.idx }

type prefixedIndex struct {
	prefix *big.Int
	index  int
}

// Sample draws a permutation of n elements by assigning every index a
// uniform random prefix of b = nr + 2*ceil(log2(n)) bits and stable-sorting
// by prefix; collisions are vanishingly unlikely and, when they occur,
// resolved by original index, which keeps the distribution within
// statistical distance 2^-nr of uniform (spec.md §4.3).
func Sample(n int, nr int, rng io.Reader) (*Permutation, error) {
	if n == 0 {
		return &Permutation{idx: nil}, nil
	}
	b := nr + 2*bitsLen(n)
	byteLen := (b + 7) / 8

	keyed := make([]prefixedIndex, n)
	buf := make([]byte, byteLen)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		keyed[i] = prefixedIndex{
			prefix: new(big.Int).SetBytes(buf),
			index:  i,
		}
		buf = make([]byte, byteLen)
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		c := keyed[i].prefix.Cmp(keyed[j].prefix)
		if c != 0 {
			return c < 0
		}
		return keyed[i].index < keyed[j].index
	})

	idx := make([]int, n)
	for i, k := range keyed {
		idx[i] = k.index
	}
	return &Permutation{idx: idx}, nil
}

// bitsLen returns ceil(log2(n)) for n >= 2, and 1 for n <= 1.
func bitsLen(n int) int {
	if n <= 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// Inv returns the inverse permutation.
func (p *Permutation) Inv() *Permutation {
	inv := make([]int, len(p.idx))
	for i, j := range p.idx {
		inv[j] = i
	}
	return &Permutation{idx: inv}
}

// ApplyGroupArray reindexes arr by this permutation: out[i] = arr[idx[i]].
func (p *Permutation) ApplyGroupArray(arr *garr.GroupArray) *garr.GroupArray {
	return arr.Permute(p.idx)
}

// ApplyRingArray reindexes arr by this permutation: out[i] = arr[idx[i]].
func (p *Permutation) ApplyRingArray(arr *garr.RingArray) *garr.RingArray {
	return arr.Permute(p.idx)
}

// Encode renders the permutation as a byte-tree node: n leaves, each a
// 4-byte big-endian index, per spec.md §4.3.
func (p *Permutation) Encode() *bytetree.Node {
	children := make([]*bytetree.Node, len(p.idx))
	for i, v := range p.idx {
		children[i] = bytetree.NewLeaf(bytetree.IntToBytes(big.NewInt(int64(v)), 4))
	}
	return bytetree.NewNode(children...)
}

// FromBytes decodes a permutation on n elements from r, validating that the
// n decoded indices form a bijection on {0, ..., n-1}.
func FromBytes(r *bytetree.Reader, n int) (*Permutation, error) {
	idx := make([]int, n)
	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		v, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		j := int(v.Int64())
		if j < 0 || j >= n || seen[j] {
			return nil, bytetree.NewFormatError("permutation indices are not a bijection")
		}
		seen[j] = true
		idx[i] = j
	}
	return &Permutation{idx: idx}, nil
}
