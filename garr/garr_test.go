package garr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/group"
)

func TestGroupArrayExpProd(t *testing.T) {
	g := group.SecP256k1()
	const n = 17

	es := make([]group.Element, n)
	scalars := make([]*big.Int, n)
	for i := range es {
		es[i] = g.Random()
		scalars[i] = big.NewInt(int64(i + 1))
	}
	a := NewGroupArray(g, es)

	prod := a.ExpProd(scalars)

	want := g.Identity()
	for i := range es {
		want.Add(want, g.Element().Scale(es[i], scalars[i]))
	}
	require.True(t, prod.IsEqual(want))
}

func TestGroupArrayMulCommutesWithProd(t *testing.T) {
	g := group.SecP256k1()
	const n = 8

	aes := make([]group.Element, n)
	bes := make([]group.Element, n)
	for i := 0; i < n; i++ {
		aes[i] = g.Random()
		bes[i] = g.Random()
	}
	a := NewGroupArray(g, aes)
	b := NewGroupArray(g, bes)

	prodOfMul := a.Mul(b).Prod()
	mulOfProds := g.Element().Add(a.Prod(), b.Prod())
	require.True(t, prodOfMul.IsEqual(mulOfProds))
}

func TestGroupArrayPermuteIsBijection(t *testing.T) {
	g := group.SecP256k1()
	const n = 6
	es := make([]group.Element, n)
	for i := range es {
		es[i] = g.Random()
	}
	a := NewGroupArray(g, es)

	idx := []int{5, 4, 3, 2, 1, 0}
	permuted := a.Permute(idx)
	for i, j := range idx {
		require.True(t, permuted.At(i).IsEqual(a.At(j)))
	}
}

func TestGroupArrayShiftPush(t *testing.T) {
	g := group.SecP256k1()
	const n = 5
	es := make([]group.Element, n)
	for i := range es {
		es[i] = g.Random()
	}
	a := NewGroupArray(g, es)
	head := g.Random()
	shifted := a.ShiftPush(head)

	require.True(t, shifted.At(0).IsEqual(head))
	for i := 1; i < n; i++ {
		require.True(t, shifted.At(i).IsEqual(a.At(i-1)))
	}
}

func TestGroupArrayTreeRoundTrip(t *testing.T) {
	g := group.SecP256k1()
	const n = 4
	es := make([]group.Element, n)
	for i := range es {
		es[i] = g.Random()
	}
	a := NewGroupArray(g, es)

	tree := a.EncodeTree()
	back, err := GroupArrayFromNode(tree, g, true)
	require.NoError(t, err)
	require.True(t, a.Equals(back))
}

func TestGroupArraySequentialReaderRoundTrip(t *testing.T) {
	g := group.SecP256k1()
	const n = 3
	es := make([]group.Element, n)
	var buf []byte
	for i := range es {
		es[i] = g.Random()
		buf = append(buf, es[i].EncodeTree().Encode()...)
	}
	a := NewGroupArray(g, es)

	back, err := ToGroupArray(bytetree.NewReader(buf), g, n, true)
	require.NoError(t, err)
	require.True(t, a.Equals(back))
}

func TestGroupArrayVerifyUnsafeDetectsForgery(t *testing.T) {
	g := group.SecP256k1()
	const n = 10
	es := make([]group.Element, n)
	for i := range es {
		es[i] = g.Random()
	}
	a := NewGroupArray(g, es)
	require.NoError(t, a.VerifyUnsafe())

	// (1, 1) is not on secp256k1: 1 != 1^3 + 7.
	offCurve := append(bytetree.IntToBytes(big.NewInt(1), 32), bytetree.IntToBytes(big.NewInt(1), 32)...)
	es[3] = g.Element().SetBytes(offCurve)
	require.Error(t, NewGroupArray(g, es).VerifyUnsafe())
}

func TestRingArrayInnerProduct(t *testing.T) {
	r := group.NewRing(group.SecP256k1().N())
	const n = 12
	a := RandomRingArray(r, n)
	b := RandomRingArray(r, n)

	ip := a.InnerProduct(b)
	want := big.NewInt(0)
	for i := 0; i < n; i++ {
		want = r.Add(want, r.Mul(a.At(i), b.At(i)))
	}
	require.Equal(t, 0, ip.Cmp(want))
}

func TestRingArrayRecLinMatchesRecurrence(t *testing.T) {
	r := group.NewRing(group.SecP256k1().N())
	const n = 8
	a := RandomRingArray(r, n)
	e := RandomRingArray(r, n)

	y, d := a.RecLin(e)
	require.Equal(t, n, y.Len())

	want := r.Reduce(a.At(0))
	require.Equal(t, 0, y.At(0).Cmp(want))
	for i := 1; i < n; i++ {
		want = r.Add(a.At(i), r.Mul(e.At(i), want))
		require.Equal(t, 0, y.At(i).Cmp(want))
	}
	require.Equal(t, 0, d.Cmp(want))
}

func TestRingArrayProdsIsCumulative(t *testing.T) {
	r := group.NewRing(group.SecP256k1().N())
	a := RandomRingArray(r, 6)
	prods := a.Prods()

	acc := big.NewInt(1)
	for i := 0; i < a.Len(); i++ {
		acc = r.Mul(acc, a.At(i))
		require.Equal(t, 0, prods.At(i).Cmp(acc))
	}
}
