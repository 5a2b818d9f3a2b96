package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/mixproof/bytetree"
)

var rfc3526ModPGroup3072 = NewModPGroup(
	"RFC3526ModPGroup3072",
	`FFFFFFFF FFFFFFFF C90FDAA2 2168C234 C4C6628B 80DC1CD1
		29024E08 8A67CC74 020BBEA6 3B139B22 514A0879 8E3404DD
		EF9519B3 CD3A431B 302B0A6D F25F1437 4FE1356D 6D51C245
		E485B576 625E7EC6 F44C42E9 A637ED6B 0BFF5CB6 F406B7ED
		EE386BFB 5A899FA5 AE9F2411 7C4B1FE6 49286651 ECE45B3D
		C2007CB8 A163BF05 98DA4836 1C55D39A 69163FA8 FD24CF5F
		83655D23 DCA3AD96 1C62F356 208552BB 9ED52907 7096966D
		670C354E 4ABC9804 F1746C08 CA18217C 32905E46 2E36CE3B
		E39E772C 180E8603 9B2783A2 EC07A28F B5C55DF0 6F4C52C9
		DE2BCBF6 95581718 3995497C EA956AE5 15D22618 98FA0510
		15728E5A 8AAAC42D AD33170D 04507A33 A85521AB DF1CBA64
		ECFB8504 58DBEF0A 8AEA7157 5D060C7D B3970F85 A6E1E4C7
		ABF5AE8C DB0933D7 1E8C94E0 4A25619D CEE3D226 1AD2EE6B
		F12FFA06 D98A0864 D8760273 3EC86A64 521F2B18 177B200C
		BBE11757 7A615D6C 770988C0 BAD946E2 08E24FA0 74E5AB31
		43DB5BFC E0FD108E 4B82D120 A93AD2CA FFFFFFFF FFFFFFFF
		`, "2")

var allGroups = map[string]Group{
	"modp":      rfc3526ModPGroup3072,
	"secp256k1": SecP256k1(),
	"p384":      P384(),
	"p256":      P256(),
	"r255":      Ristretto255(),
}

func TestGroupLaws(t *testing.T) {
	const testTimes = 1 << 5
	for name, g := range allGroups {
		g := g
		t.Run(name+"/Negate", func(tt *testing.T) { testNeg(tt, testTimes, g) })
		t.Run(name+"/Order", func(tt *testing.T) { testOrder(tt, testTimes, g) })
		t.Run(name+"/Set", func(tt *testing.T) { testSet(tt, g) })
		t.Run(name+"/ExpAdditivity", func(tt *testing.T) { testExpAdditivity(tt, testTimes, g) })
		t.Run(name+"/TreeRoundTrip", func(tt *testing.T) { testTreeRoundTrip(tt, testTimes, g) })
	}
}

func testNeg(t *testing.T, testTimes int, g Group) {
	Q := g.Element()
	for i := 0; i < testTimes; i++ {
		P := g.Random()
		Q.Set(P)
		Q.Subtract(Q, P)
		require.True(t, Q.IsIdentity())
	}
}

func testOrder(t *testing.T, testTimes int, g Group) {
	I := g.Identity()
	Q := g.Element()
	minusOne := big.NewInt(-1)
	for i := 0; i < testTimes; i++ {
		P := g.Random()
		Q.Scale(P, minusOne)
		Q.Add(Q, P)
		require.True(t, Q.IsEqual(I))
	}
}

func testSet(t *testing.T, g Group) {
	P := g.Random()
	Q := g.Element()
	Q.Set(P)
	require.True(t, Q.IsEqual(P))
}

// testExpAdditivity checks a^(k2+k3) = a^k2 . a^k3 for a random base a
// (held in k1).
func testExpAdditivity(t *testing.T, testTimes int, g Group) {
	for i := 0; i < testTimes; i++ {
		k1 := g.Random() // reuse Random for a fresh base element too
		k2 := big.NewInt(int64(i + 1))
		k3 := big.NewInt(int64(2*i + 3))

		lhs := g.Element().Scale(k1, new(big.Int).Add(k2, k3))
		rhs := g.Element().Add(
			g.Element().Scale(k1, k2),
			g.Element().Scale(k1, k3),
		)
		require.True(t, lhs.IsEqual(rhs))
	}
}

func testTreeRoundTrip(t *testing.T, testTimes int, g Group) {
	for i := 0; i < testTimes; i++ {
		P := g.Random()
		tree := P.EncodeTree()

		Q := g.Element()
		require.NoError(t, Q.DecodeTree(tree, true))
		require.True(t, P.IsEqual(Q))

		Q2 := g.Element()
		require.NoError(t, Q2.DecodeTree(tree, false))
		require.True(t, P.IsEqual(Q2))
	}
}

func TestMath(t *testing.T) {
	g := SecP256k1()

	a := g.Element().BaseScale(big.NewInt(2))
	b := g.Element().Add(g.Generator(), g.Generator())
	require.True(t, a.IsEqual(b))

	a = g.Element().Add(a, g.Generator())
	b = g.Element().BaseScale(big.NewInt(3))
	require.True(t, a.IsEqual(b))

	e := g.Identity()
	r1 := g.Random()
	r2 := g.Random()
	e.Add(r1, r2)
	e.Subtract(e, r2)
	require.True(t, e.IsEqual(r1))
}

func TestProductGroup(t *testing.T) {
	g := SecP256k1()
	pg := NewProductGroup(g, g)

	a := pg.Random()
	b := pg.Element().Set(a)
	require.True(t, a.IsEqual(b))

	tree := a.EncodeTree()
	c := pg.Element()
	require.NoError(t, c.DecodeTree(tree, true))
	require.True(t, a.IsEqual(c))
}

func TestRing(t *testing.T) {
	r := NewRing(SecP256k1().N())
	a := r.Random()
	b := r.Random()

	require.Equal(t, 0, r.Add(a, b).Cmp(r.Reduce(new(big.Int).Add(a, b))))
	require.Equal(t, 0, r.Sub(a, b).Cmp(r.Reduce(new(big.Int).Sub(a, b))))

	tree := r.Encode(a)
	back, err := r.Decode(tree)
	require.NoError(t, err)
	require.Equal(t, 0, a.Cmp(back))
}

func TestRingDecodeRejectsOutOfRange(t *testing.T) {
	r := NewRing(SecP256k1().N())

	tree := bytetree.LeafInt(r.Order(), r.ByteLen())
	_, err := r.Decode(tree)
	require.Error(t, err)

	tooWide := bytetree.NewLeaf(make([]byte, r.ByteLen()+1))
	_, err = r.Decode(tooWide)
	require.Error(t, err)
}
