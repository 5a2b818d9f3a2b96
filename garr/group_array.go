package garr

import (
	"math/big"
	"sync"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/group"
)

// GroupArray is a fixed-length, carrier-tagged array of group elements, the
// concrete stand-in for spec.md §4.2's Array[G] (Go generics are avoided to
// match the teacher's non-generic style).
type GroupArray struct {
	g  group.Group
	es []group.Element
}

// NewGroupArray wraps es, all of which must belong to g, as a GroupArray.
// The caller retains no alias to es.
func NewGroupArray(g group.Group, es []group.Element) *GroupArray {
	cp := make([]group.Element, len(es))
	copy(cp, es)
	return &GroupArray{g: g, es: cp}
}

// Repeat builds a length-n array holding n copies of e.
func Repeat(g group.Group, e group.Element, n int) *GroupArray {
	es := make([]group.Element, n)
	for i := range es {
		es[i] = g.Element().Set(e)
	}
	return &GroupArray{g: g, es: es}
}

func (a *GroupArray) Len() int               { return len(a.es) }
func (a *GroupArray) Group() group.Group     { return a.g }
func (a *GroupArray) At(i int) group.Element { return a.es[i] }

// Slice returns the underlying elements; callers must not mutate them.
func (a *GroupArray) Slice() []group.Element { return a.es }

// Free releases any resources held by the array. Go's garbage collector
// makes the scoped-release contract of spec.md §5 structurally a no-op, but
// the call exists at every prover/verifier return path so an off-heap
// backing could be swapped in later without touching call sites.
func (a *GroupArray) Free() {}

// Mul returns the componentwise group operation of a and b.
func (a *GroupArray) Mul(b *GroupArray) *GroupArray {
	if a.Len() != b.Len() {
		panic("garr: Mul: length mismatch")
	}
	out := make([]group.Element, a.Len())
	forEachRange(a.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a.g.Element().Add(a.es[i], b.es[i])
		}
	})
	return &GroupArray{g: a.g, es: out}
}

// ExpScalar returns a with every element raised to the same power s.
func (a *GroupArray) ExpScalar(s *big.Int) *GroupArray {
	out := make([]group.Element, a.Len())
	forEachRange(a.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a.g.Element().Scale(a.es[i], s)
		}
	})
	return &GroupArray{g: a.g, es: out}
}

// ExpVector returns the componentwise exponentiation a_i^{s_i}.
func (a *GroupArray) ExpVector(s []*big.Int) *GroupArray {
	if a.Len() != len(s) {
		panic("garr: ExpVector: length mismatch")
	}
	out := make([]group.Element, a.Len())
	forEachRange(a.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a.g.Element().Scale(a.es[i], s[i])
		}
	})
	return &GroupArray{g: a.g, es: out}
}

// ExpProd returns the simultaneous multi-exponentiation product_i a_i^{s_i}.
// The array is folded in parallel ranges, one partial product per range,
// then the partials are combined sequentially.
func (a *GroupArray) ExpProd(s []*big.Int) group.Element {
	if a.Len() != len(s) {
		panic("garr: ExpProd: length mismatch")
	}
	if a.Len() == 0 {
		return a.g.Identity()
	}

	type rangeResult struct {
		lo, hi int
		acc    group.Element
	}
	ranges := rangesOf(a.Len())
	partials := make([]rangeResult, len(ranges))
	var wg sync.WaitGroup
	for idx, r := range ranges {
		wg.Add(1)
		go func(idx int, lo, hi int) {
			defer wg.Done()
			acc := a.g.Identity()
			term := a.g.Element()
			for i := lo; i < hi; i++ {
				term.Scale(a.es[i], s[i])
				acc.Add(acc, term)
			}
			partials[idx] = rangeResult{lo: lo, hi: hi, acc: acc}
		}(idx, r[0], r[1])
	}
	wg.Wait()

	out := a.g.Identity()
	for _, p := range partials {
		out.Add(out, p.acc)
	}
	return out
}

// Prod returns the group-operation fold of all elements.
func (a *GroupArray) Prod() group.Element {
	out := a.g.Identity()
	for _, e := range a.es {
		out.Add(out, e)
	}
	return out
}

// Prods returns the array of partial products: out[i] = a_0 . ... . a_i.
func (a *GroupArray) Prods() *GroupArray {
	out := make([]group.Element, a.Len())
	acc := a.g.Identity()
	for i, e := range a.es {
		acc = a.g.Element().Add(acc, e)
		out[i] = acc
	}
	return &GroupArray{g: a.g, es: out}
}

// ShiftPush returns a new array shifted right by one position, with head
// pushed into index 0 and the last element dropped.
func (a *GroupArray) ShiftPush(head group.Element) *GroupArray {
	out := make([]group.Element, a.Len())
	out[0] = a.g.Element().Set(head)
	for i := 1; i < a.Len(); i++ {
		out[i] = a.es[i-1]
	}
	return &GroupArray{g: a.g, es: out}
}

// Permute returns the array reindexed by idx: out[i] = a[idx[i]].
func (a *GroupArray) Permute(idx []int) *GroupArray {
	if len(idx) != a.Len() {
		panic("garr: Permute: length mismatch")
	}
	out := make([]group.Element, a.Len())
	for i, j := range idx {
		out[i] = a.es[j]
	}
	return &GroupArray{g: a.g, es: out}
}

// RecLin computes the running linear recurrence y_0 = a_0, y_i = a_i .
// y_{i-1}^{e_i} (this array supplies the a_i terms, group operation written
// additively), returning the full array y and its last element
// d = y_{N-1}. The recurrence is inherently sequential.
func (a *GroupArray) RecLin(e *RingArray) (y *GroupArray, d group.Element) {
	if a.Len() != e.Len() {
		panic("garr: RecLin: length mismatch")
	}
	n := a.Len()
	out := make([]group.Element, n)
	if n == 0 {
		return &GroupArray{g: a.g}, a.g.Identity()
	}
	out[0] = a.g.Element().Set(a.es[0])
	for i := 1; i < n; i++ {
		term := a.g.Element().Scale(out[i-1], e.At(i))
		out[i] = a.g.Element().Add(a.es[i], term)
	}
	return &GroupArray{g: a.g, es: out}, out[n-1]
}

// Equals reports whether a and b hold pairwise-equal elements.
func (a *GroupArray) Equals(b *GroupArray) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.es {
		if !a.es[i].IsEqual(b.es[i]) {
			return false
		}
	}
	return true
}

// ToGroupArray decodes n elements from r, in safe (membership-checked) or
// unsafe (syntactic only) mode, per spec.md §4.2.
func ToGroupArray(r *bytetree.Reader, g group.Group, n int, safe bool) (*GroupArray, error) {
	es := make([]group.Element, n)
	for i := 0; i < n; i++ {
		child, err := r.NextChild()
		if err != nil {
			return nil, err
		}
		e := g.Element()
		if err := e.DecodeTree(child, safe); err != nil {
			return nil, err
		}
		es[i] = e
	}
	return &GroupArray{g: g, es: es}, nil
}

// EncodeTree renders the array as an interior byte-tree node whose children
// are each element's own encoding, in order.
func (a *GroupArray) EncodeTree() *bytetree.Node {
	children := make([]*bytetree.Node, a.Len())
	for i, e := range a.es {
		children[i] = e.EncodeTree()
	}
	return bytetree.NewNode(children...)
}

// GroupArrayFromNode decodes an array previously produced by EncodeTree,
// reading membership-checked (safe) or syntactic-only (unsafe) elements
// directly from n's children.
func GroupArrayFromNode(n *bytetree.Node, g group.Group, safe bool) (*GroupArray, error) {
	if n.IsLeaf() {
		return nil, bytetree.NewFormatError("expected interior node for group array")
	}
	es := make([]group.Element, len(n.Children))
	for i, c := range n.Children {
		e := g.Element()
		if err := e.DecodeTree(c, safe); err != nil {
			return nil, err
		}
		es[i] = e
	}
	return &GroupArray{g: g, es: es}, nil
}

// VerifyUnsafe runs g.VerifyMember over every element in parallel ranges
// and reports the first membership failure found, or nil. It is the
// deferred batch check for elements decoded in unsafe mode.
func (a *GroupArray) VerifyUnsafe() error {
	return forEachRangeErr(a.Len(), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			if !a.g.VerifyMember(a.es[i]) {
				return &MembershipError{Index: i}
			}
		}
		return nil
	})
}

// MembershipError reports that the element at Index failed a deferred
// group-membership check.
type MembershipError struct{ Index int }

func (e *MembershipError) Error() string {
	return "garr: element at index failed group membership check"
}
