package group

import (
	"encoding/json"
	"math/big"

	"github.com/takakv/mixproof/bytetree"
)

// ProductGroup is an ordered tuple of k independently constructed factor
// groups, spec.md §3's G^k. It is built by composition, never by
// subclassing a factor carrier: every operation simply dispatches
// componentwise to the k factors (per spec.md §9's explicit design note).
type ProductGroup struct {
	factors []Group
	name    string
}

// NewProductGroup composes factors into G_0 x ... x G_{k-1}.
func NewProductGroup(factors ...Group) *ProductGroup {
	if len(factors) == 0 {
		panic("group: product group needs at least one factor")
	}
	return &ProductGroup{factors: factors}
}

// Repeat composes a single factor group with itself k times, the
// ciphertext-width-omega instantiation of spec.md §4.5's final paragraph.
func Repeat(g Group, k int) *ProductGroup {
	factors := make([]Group, k)
	for i := range factors {
		factors[i] = g
	}
	return &ProductGroup{factors: factors}
}

// NewElement packs parts, one already-computed element per factor, into a
// single product element without routing through Identity/Add. Callers
// that compute each factor independently (e.g. an ElGamal ciphertext's U
// and V components) use this to assemble the tuple directly.
func (pg *ProductGroup) NewElement(parts ...Element) Element {
	if len(parts) != len(pg.factors) {
		panicArithmetic("product group: wrong arity for NewElement")
	}
	cp := make([]Element, len(parts))
	copy(cp, parts)
	return &ProductElement{group: pg, parts: cp}
}

// Width returns the number of factors, k.
func (pg *ProductGroup) Width() int {
	return len(pg.factors)
}

// Factor returns the i-th factor group.
func (pg *ProductGroup) Factor(i int) Group {
	return pg.factors[i]
}

func (pg *ProductGroup) Name() string {
	if pg.name != "" {
		return pg.name
	}
	return "product"
}

func (pg *ProductGroup) Element() Element {
	es := make([]Element, len(pg.factors))
	for i, f := range pg.factors {
		es[i] = f.Element()
	}
	return &ProductElement{group: pg, parts: es}
}

func (pg *ProductGroup) Generator() Element {
	es := make([]Element, len(pg.factors))
	for i, f := range pg.factors {
		es[i] = f.Generator()
	}
	return &ProductElement{group: pg, parts: es}
}

func (pg *ProductGroup) Identity() Element {
	es := make([]Element, len(pg.factors))
	for i, f := range pg.factors {
		es[i] = f.Identity()
	}
	return &ProductElement{group: pg, parts: es}
}

func (pg *ProductGroup) Random() Element {
	es := make([]Element, len(pg.factors))
	for i, f := range pg.factors {
		es[i] = f.Random()
	}
	return &ProductElement{group: pg, parts: es}
}

// P returns the field order of the first factor (factors are typically
// either identical, as in Repeat, or independently meaningful; callers
// needing per-factor orders should use Factor(i).P() instead).
func (pg *ProductGroup) P() *big.Int {
	return pg.factors[0].P()
}

func (pg *ProductGroup) N() *big.Int {
	return pg.factors[0].N()
}

func (pg *ProductGroup) ElementByteLen() int {
	total := 0
	for _, f := range pg.factors {
		total += f.ElementByteLen()
	}
	return total
}

func (pg *ProductGroup) VerifyMember(e Element) bool {
	pe, ok := e.(*ProductElement)
	if !ok || pe.group != pg {
		return false
	}
	for i, f := range pg.factors {
		if !f.VerifyMember(pe.parts[i]) {
			return false
		}
	}
	return true
}

// ProductElement is a tuple (g_0, ..., g_{k-1}) of elements, one per factor
// of a ProductGroup.
type ProductElement struct {
	group *ProductGroup
	parts []Element
}

// Part returns the i-th component element.
func (e *ProductElement) Part(i int) Element {
	return e.parts[i]
}

func (e *ProductElement) check(a Element) *ProductElement {
	pa, ok := a.(*ProductElement)
	if !ok || pa.group != e.group {
		panicArithmetic("incompatible product group element")
	}
	return pa
}

func (e *ProductElement) Add(a, b Element) Element {
	pa, pb := e.check(a), e.check(b)
	for i := range e.parts {
		e.parts[i].Add(pa.parts[i], pb.parts[i])
	}
	return e
}

func (e *ProductElement) Subtract(a, b Element) Element {
	pa, pb := e.check(a), e.check(b)
	for i := range e.parts {
		e.parts[i].Subtract(pa.parts[i], pb.parts[i])
	}
	return e
}

func (e *ProductElement) Negate(a Element) Element {
	pa := e.check(a)
	for i := range e.parts {
		e.parts[i].Negate(pa.parts[i])
	}
	return e
}

func (e *ProductElement) Scale(a Element, s *big.Int) Element {
	pa := e.check(a)
	for i := range e.parts {
		e.parts[i].Scale(pa.parts[i], s)
	}
	return e
}

func (e *ProductElement) BaseScale(s *big.Int) Element {
	for i := range e.parts {
		e.parts[i].BaseScale(s)
	}
	return e
}

func (e *ProductElement) Set(a Element) Element {
	pa := e.check(a)
	for i := range e.parts {
		e.parts[i].Set(pa.parts[i])
	}
	return e
}

func (e *ProductElement) SetBytes(b []byte) Element {
	off := 0
	for i, f := range e.group.factors {
		n := f.ElementByteLen()
		e.parts[i].SetBytes(b[off : off+n])
		off += n
	}
	return e
}

func (e *ProductElement) MapToGroup(s string) (Element, error) {
	for i := range e.parts {
		el, err := e.parts[i].MapToGroup(s)
		if err != nil {
			return nil, err
		}
		e.parts[i] = el
	}
	return e, nil
}

func (e *ProductElement) IsEqual(x Element) bool {
	px := e.check(x)
	for i := range e.parts {
		if !e.parts[i].IsEqual(px.parts[i]) {
			return false
		}
	}
	return true
}

func (e *ProductElement) IsIdentity() bool {
	for _, p := range e.parts {
		if !p.IsIdentity() {
			return false
		}
	}
	return true
}

func (e *ProductElement) GroupOrder() *big.Int {
	return e.parts[0].GroupOrder()
}

func (e *ProductElement) FieldOrder() *big.Int {
	return e.parts[0].FieldOrder()
}

func (e *ProductElement) String() string {
	s := "("
	for i, p := range e.parts {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}

func (e *ProductElement) MarshalBinary() ([]byte, error) {
	var out []byte
	for _, p := range e.parts {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func (e *ProductElement) UnmarshalBinary(data []byte) error {
	e.SetBytes(data)
	return nil
}

func (e *ProductElement) MarshalJSON() ([]byte, error) {
	raws := make([]json.RawMessage, len(e.parts))
	for i, p := range e.parts {
		b, err := p.MarshalJSON()
		if err != nil {
			return nil, err
		}
		raws[i] = b
	}
	return json.Marshal(raws)
}

func (e *ProductElement) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	if len(raws) != len(e.parts) {
		return newGroupFormatError("product element JSON has wrong arity")
	}
	for i, raw := range raws {
		if err := e.parts[i].UnmarshalJSON(raw); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTree concatenates each factor's own byte-tree leaf as children of
// one interior node, preserving factor order.
func (e *ProductElement) EncodeTree() *bytetree.Node {
	children := make([]*bytetree.Node, len(e.parts))
	for i, p := range e.parts {
		children[i] = p.EncodeTree()
	}
	return bytetree.NewNode(children...)
}

func (e *ProductElement) DecodeTree(n *bytetree.Node, safe bool) error {
	if n.IsLeaf() || len(n.Children) != len(e.parts) {
		return newGroupFormatError("product element tree has wrong arity")
	}
	for i, c := range n.Children {
		if err := e.parts[i].DecodeTree(c, safe); err != nil {
			return err
		}
	}
	return nil
}
