package garr

import (
	"math/big"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/group"
)

// RingArray is a fixed-length array of scalars in a group.Ring, the
// concrete stand-in for spec.md §4.2's Array[Zq].
type RingArray struct {
	r  *group.Ring
	xs []*big.Int
}

// NewRingArray wraps xs as a RingArray over r. The caller retains no alias.
func NewRingArray(r *group.Ring, xs []*big.Int) *RingArray {
	cp := make([]*big.Int, len(xs))
	for i, x := range xs {
		cp[i] = r.Reduce(x)
	}
	return &RingArray{r: r, xs: cp}
}

// RandomRingArray draws n uniform elements of r.
func RandomRingArray(r *group.Ring, n int) *RingArray {
	xs := make([]*big.Int, n)
	for i := range xs {
		xs[i] = r.Random()
	}
	return &RingArray{r: r, xs: xs}
}

func (a *RingArray) Len() int         { return len(a.xs) }
func (a *RingArray) Ring() *group.Ring { return a.r }
func (a *RingArray) At(i int) *big.Int { return a.xs[i] }
func (a *RingArray) Slice() []*big.Int { return a.xs }
func (a *RingArray) Free()            {}

// Add returns the componentwise ring sum of a and b.
func (a *RingArray) Add(b *RingArray) *RingArray {
	if a.Len() != b.Len() {
		panic("garr: Add: length mismatch")
	}
	out := make([]*big.Int, a.Len())
	forEachRange(a.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a.r.Add(a.xs[i], b.xs[i])
		}
	})
	return &RingArray{r: a.r, xs: out}
}

// Sub returns the componentwise ring difference a - b.
func (a *RingArray) Sub(b *RingArray) *RingArray {
	if a.Len() != b.Len() {
		panic("garr: Sub: length mismatch")
	}
	out := make([]*big.Int, a.Len())
	forEachRange(a.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a.r.Sub(a.xs[i], b.xs[i])
		}
	})
	return &RingArray{r: a.r, xs: out}
}

// Mul returns the componentwise ring product a_i * b_i.
func (a *RingArray) Mul(b *RingArray) *RingArray {
	if a.Len() != b.Len() {
		panic("garr: Mul: length mismatch")
	}
	out := make([]*big.Int, a.Len())
	forEachRange(a.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a.r.Mul(a.xs[i], b.xs[i])
		}
	})
	return &RingArray{r: a.r, xs: out}
}

// ScaleBy multiplies every element by the same scalar s.
func (a *RingArray) ScaleBy(s *big.Int) *RingArray {
	out := make([]*big.Int, a.Len())
	forEachRange(a.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a.r.Mul(a.xs[i], s)
		}
	})
	return &RingArray{r: a.r, xs: out}
}

// InnerProduct returns sum_i a_i*b_i mod q.
func (a *RingArray) InnerProduct(b *RingArray) *big.Int {
	return a.r.InnerProduct(a.xs, b.xs)
}

// Sum returns the additive fold of all elements.
func (a *RingArray) Sum() *big.Int {
	acc := a.r.Zero()
	for _, x := range a.xs {
		acc = a.r.Add(acc, x)
	}
	return acc
}

// Prods returns the array of partial products under ring multiplication:
// out[i] = x_0 * ... * x_i mod q.
func (a *RingArray) Prods() *RingArray {
	out := make([]*big.Int, a.Len())
	acc := big.NewInt(1)
	for i, x := range a.xs {
		acc = a.r.Mul(acc, x)
		out[i] = acc
	}
	return &RingArray{r: a.r, xs: out}
}

// ShiftPush returns a new array shifted right by one position, with head
// pushed into index 0 and the last element dropped.
func (a *RingArray) ShiftPush(head *big.Int) *RingArray {
	out := make([]*big.Int, a.Len())
	out[0] = a.r.Reduce(head)
	for i := 1; i < a.Len(); i++ {
		out[i] = a.xs[i-1]
	}
	return &RingArray{r: a.r, xs: out}
}

// Permute returns the array reindexed by idx: out[i] = a[idx[i]].
func (a *RingArray) Permute(idx []int) *RingArray {
	if len(idx) != a.Len() {
		panic("garr: Permute: length mismatch")
	}
	out := make([]*big.Int, a.Len())
	for i, j := range idx {
		out[i] = a.xs[j]
	}
	return &RingArray{r: a.r, xs: out}
}

// RecLin computes the running linear recurrence y_0 = a_0, y_i = a_i +
// e_i*y_{i-1} (this array supplies the a_i terms), returning the full
// array y and its last element d = y_{N-1}. The recurrence is inherently
// sequential.
func (a *RingArray) RecLin(e *RingArray) (y *RingArray, d *big.Int) {
	if a.Len() != e.Len() {
		panic("garr: RecLin: length mismatch")
	}
	n := a.Len()
	out := make([]*big.Int, n)
	if n == 0 {
		return &RingArray{r: a.r}, a.r.Zero()
	}
	out[0] = a.r.Reduce(a.xs[0])
	for i := 1; i < n; i++ {
		out[i] = a.r.Add(a.xs[i], a.r.Mul(e.xs[i], out[i-1]))
	}
	return &RingArray{r: a.r, xs: out}, out[n-1]
}

// Equals reports whether a and b hold pairwise-equal elements.
func (a *RingArray) Equals(b *RingArray) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.xs {
		if a.xs[i].Cmp(b.xs[i]) != 0 {
			return false
		}
	}
	return true
}

// ToRingArray decodes n fixed-width ring elements from r.
func ToRingArray(reader *bytetree.Reader, r *group.Ring, n int) (*RingArray, error) {
	xs := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		child, err := reader.NextChild()
		if err != nil {
			return nil, err
		}
		x, err := r.Decode(child)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return &RingArray{r: r, xs: xs}, nil
}

// EncodeTree renders the array as an interior byte-tree node whose children
// are each element's own fixed-width encoding, in order.
func (a *RingArray) EncodeTree() *bytetree.Node {
	children := make([]*bytetree.Node, a.Len())
	for i, x := range a.xs {
		children[i] = a.r.Encode(x)
	}
	return bytetree.NewNode(children...)
}

// RingArrayFromNode decodes an array previously produced by EncodeTree,
// reading each child as a fixed-width ring element.
func RingArrayFromNode(n *bytetree.Node, r *group.Ring) (*RingArray, error) {
	if n.IsLeaf() {
		return nil, bytetree.NewFormatError("expected interior node for ring array")
	}
	xs := make([]*big.Int, len(n.Children))
	for i, c := range n.Children {
		x, err := r.Decode(c)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return &RingArray{r: r, xs: xs}, nil
}
