package group

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/takakv/mixproof/bytetree"
)

// ModPElement is an element of the multiplicative subgroup of order q
// modulo a safe prime p = 2q+1.
type ModPElement struct {
	group *ModPGroup
	val   *big.Int
}

// ModPGroup is the multiplicative subgroup of quadratic residues modulo a
// safe prime, spec.md §3's "multiplicative subgroup mod a safe prime".
type ModPGroup struct {
	gen        *big.Int
	fieldOrder *big.Int
	groupOrder *big.Int
	name       string
}

func (g *ModPGroup) Name() string {
	return g.name
}

func (g *ModPGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(&GroupId{g.name})
}

func (g *ModPGroup) equals(h Group) bool {
	if g == h {
		return true
	}
	gh, ok := h.(*ModPGroup)
	if !ok {
		return false
	}
	return g.fieldOrder.Cmp(gh.fieldOrder) == 0 && g.gen.Cmp(gh.gen) == 0
}

func (g *ModPGroup) P() *big.Int {
	return g.fieldOrder
}

func (g *ModPGroup) N() *big.Int {
	return g.groupOrder
}

func (g *ModPGroup) ElementByteLen() int {
	return (g.fieldOrder.BitLen() + 7) / 8
}

func (g *ModPGroup) Generator() Element {
	return &ModPElement{
		group: g,
		val:   new(big.Int).Set(g.gen),
	}
}

func (g *ModPGroup) Identity() Element {
	return &ModPElement{
		group: g,
		val:   big.NewInt(1),
	}
}

func (g *ModPGroup) Random() Element {
	r, _ := rand.Int(rand.Reader, g.groupOrder)
	e := g.Identity()
	e.BaseScale(r)
	return e
}

func (g *ModPGroup) Element() Element {
	e := new(ModPElement)
	e.group = g
	e.val = new(big.Int)
	return e
}

// VerifyMember reports whether e lies in [1, p) and is a quadratic residue,
// i.e. e^q == 1 (mod p).
func (g *ModPGroup) VerifyMember(e Element) bool {
	me, ok := e.(*ModPElement)
	if !ok || !g.equals(me.group) {
		return false
	}
	if me.val.Sign() <= 0 || me.val.Cmp(g.fieldOrder) >= 0 {
		return false
	}
	check := new(big.Int).Exp(me.val, g.groupOrder, g.fieldOrder)
	return check.Cmp(big.NewInt(1)) == 0
}

func (e *ModPElement) check(a Element) *ModPElement {
	ey, ok := a.(*ModPElement)
	if !ok {
		panicArithmetic("incompatible group element type")
	}
	if !e.group.equals(ey.group) {
		panicArithmetic("incompatible groups")
	}
	return ey
}

func (e *ModPElement) Add(a Element, b Element) Element {
	ex := e.check(a)
	ey := e.check(b)
	e.val.Mul(ex.val, ey.val)
	e.val.Mod(e.val, e.group.fieldOrder)
	return e
}

func (e *ModPElement) Subtract(a Element, b Element) Element {
	tmp := e.group.Identity()
	tmp.Negate(b)
	e.Add(a, tmp)
	return e
}

func (e *ModPElement) Negate(a Element) Element {
	ex := e.check(a)
	e.val.ModInverse(ex.val, e.group.fieldOrder)
	return e
}

func (e *ModPElement) IsEqual(b Element) bool {
	ey := e.check(b)
	return e.val.Cmp(ey.val) == 0
}

func (e *ModPElement) Set(a Element) Element {
	ex := e.check(a)
	e.val.Set(ex.val)
	return e
}

func (e *ModPElement) SetBytes(b []byte) Element {
	e.val = new(big.Int).SetBytes(b)
	return e
}

func (e *ModPElement) Scale(a Element, s *big.Int) Element {
	ex := e.check(a)
	e.val.Exp(ex.val, s, e.group.fieldOrder)
	return e
}

func (e *ModPElement) BaseScale(s *big.Int) Element {
	e.val.Exp(e.group.gen, s, e.group.fieldOrder)
	return e
}

func (e *ModPElement) GroupOrder() *big.Int {
	return e.group.groupOrder
}

func (e *ModPElement) FieldOrder() *big.Int {
	return e.group.fieldOrder
}

func (e *ModPElement) String() string {
	return e.val.String()
}

func (e *ModPElement) IsIdentity() bool {
	return e.val.Cmp(big.NewInt(1)) == 0
}

// MapToGroup derives a quadratic residue from s by hashing s with an
// incrementing counter and squaring the first hash-derived candidate that
// lands in [1, p), i.e. rejection sampling onto the subgroup of quadratic
// residues.
func (e *ModPElement) MapToGroup(s string) (Element, error) {
	p := e.group.fieldOrder
	for counter := 0; ; counter++ {
		h := sha256.New()
		h.Write([]byte(s))
		h.Write([]byte{byte(counter), byte(counter >> 8)})
		digest := h.Sum(nil)
		cand := new(big.Int).SetBytes(digest)
		cand.Mod(cand, p)
		if cand.Sign() == 0 {
			continue
		}
		// Squaring always lands a nonzero candidate in the subgroup of
		// quadratic residues of order q.
		e.val = new(big.Int).Exp(cand, big.NewInt(2), p)
		return e, nil
	}
}

func (e *ModPElement) MarshalBinary() ([]byte, error) {
	return bytetree.IntToBytes(e.val, e.group.ElementByteLen()), nil
}

func (e *ModPElement) UnmarshalBinary(data []byte) error {
	e.val = new(big.Int).SetBytes(data)
	return nil
}

func (e *ModPElement) EncodeTree() *bytetree.Node {
	return bytetree.LeafInt(e.val, e.group.ElementByteLen())
}

func (e *ModPElement) DecodeTree(n *bytetree.Node, safe bool) error {
	if !n.IsLeaf() {
		return newGroupFormatError("expected leaf for mod-p element")
	}
	if len(n.Leaf) != e.group.ElementByteLen() {
		return newGroupFormatError("mod-p element has wrong encoded width")
	}
	e.val = new(big.Int).SetBytes(n.Leaf)
	if safe && !e.group.VerifyMember(e) {
		return newGroupFormatError("element is not a member of the group")
	}
	return nil
}

func (e *ModPElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.val.String())
}

func (e *ModPElement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return newGroupFormatError("invalid mod-p element JSON")
	}
	e.val = v
	return nil
}

// NewModPGroup constructs the subgroup of quadratic residues of a safe
// prime field, given the field order and a generator of the subgroup, both
// in hexadecimal (whitespace-separated groups are accepted, matching the
// common way safe-prime tables are typeset).
func NewModPGroup(name string, fieldOrder, generator string) Group {
	repr := strings.Join(strings.Fields(fieldOrder), "")

	ffOrder, ok := new(big.Int).SetString(repr, 16)
	if !ok {
		panic("invalid group definition")
	}

	gen, ok := new(big.Int).SetString(generator, 16)
	if !ok {
		panic("invalid generator")
	}

	genOrder := new(big.Int).Set(ffOrder)
	genOrder.Sub(genOrder, big.NewInt(1))
	genOrder.Div(genOrder, big.NewInt(2))

	G := new(ModPGroup)
	G.fieldOrder = ffOrder
	G.groupOrder = genOrder
	G.gen = gen
	G.name = name
	return G
}
