package shuffle_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/elgamal"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/permutation"
	"github.com/takakv/mixproof/shuffle"
)

// fixedPermutation builds the permutation moving position i to draw from
// idx[i], bypassing permutation.Sample's randomness. Regression tests use
// this with a non-involutive cycle: a direction bug in how the batching
// vector is reindexed by pi can hide behind a self-inverse permutation
// (idx[idx[i]] == i), since forward and inverse application then coincide.
func fixedPermutation(t *testing.T, idx []int) *permutation.Permutation {
	t.Helper()
	children := make([]*bytetree.Node, len(idx))
	for i, v := range idx {
		children[i] = bytetree.LeafInt(big.NewInt(int64(v)), 4)
	}
	encoded := bytetree.NewNode(children...).Encode()
	p, err := permutation.FromBytes(bytetree.NewReader(encoded), len(idx))
	require.NoError(t, err)
	return p
}

func testParams(n int) shuffle.SessionParams {
	return shuffle.SessionParams{
		NV: 128, NE: 40, NR: 40,
		Version: "mixproof-test-v1", ROSID: "unit-test",
		PRGName: "ChaCha8", GroupName: "secp256k1", HashName: "SHA-256",
	}
}

type fixture struct {
	inst *shuffle.Instance
	wit  *shuffle.Witness
	ring *group.Ring
}

func buildFixture(t *testing.T, n, omega int) *fixture {
	t.Helper()
	g := group.SecP256k1()
	ring := group.RingOf(g)

	pub, _ := elgamal.GenerateKey(g, omega, rand.Reader)

	h, err := shuffle.DeriveGenerators([]byte("fixture"), n, g)
	require.NoError(t, err)

	pi, err := permutation.Sample(n, 40, rand.Reader)
	require.NoError(t, err)

	gw := pub.CG.Factor(0)
	plainCiphertexts := make([]group.Element, n)
	for i := 0; i < n; i++ {
		m := gw.Random()
		ct, _ := elgamal.Encrypt(pub, m, rand.Reader)
		plainCiphertexts[i] = ct
	}
	w := garr.NewGroupArray(pub.CG, plainCiphertexts)

	wp, s := elgamal.Shuffle(pub, pi, w, rand.Reader)

	u, r := shuffle.CommitPermutation(pi, g.Generator(), h, rand.Reader)

	inst := &shuffle.Instance{
		G: g, H: h, U: u,
		CG: pub.CG, PK: pub.RB,
		W: w, Wp: wp,
	}
	wit := &shuffle.Witness{Pi: pi, S: s, R: r}
	return &fixture{inst: inst, wit: wit, ring: ring}
}

func runProveVerify(t *testing.T, n, omega int) bool {
	t.Helper()
	f := buildFixture(t, n, omega)
	params := testParams(n)
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	proof, err := shuffle.Prove(f.inst, f.wit, ch, params, rand.Reader)
	require.NoError(t, err)

	tree := proof.EncodeTree(f.ring)
	return shuffle.Verify(f.inst, tree, ch, params)
}

func TestCompletenessAcrossSizesAndWidths(t *testing.T) {
	sizes := []int{1, 2, 3, 10}
	if testing.Short() {
		sizes = []int{1, 2, 3}
	} else {
		sizes = append(sizes, 100)
	}
	widths := []int{1, 3}

	for _, n := range sizes {
		for _, omega := range widths {
			n, omega := n, omega
			t.Run("", func(t *testing.T) {
				require.True(t, runProveVerify(t, n, omega))
			})
		}
	}
}

func TestFiatShamirChallengeIsDeterministic(t *testing.T) {
	f := buildFixture(t, 5, 1)
	params := testParams(5)
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	p1, err := shuffle.Prove(f.inst, f.wit, ch, params, rand.Reader)
	require.NoError(t, err)

	ch2, err := shuffle.Setup(params)
	require.NoError(t, err)
	v := ch2.Scalar(p1.EncodeTree(f.ring).Children[0], params.NV)
	require.Equal(t, 0, v.Cmp(p1.Challenge))
}

func TestSoundnessRejectsTamperedChallenge(t *testing.T) {
	f := buildFixture(t, 6, 1)
	params := testParams(6)
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	proof, err := shuffle.Prove(f.inst, f.wit, ch, params, rand.Reader)
	require.NoError(t, err)

	tree := proof.EncodeTree(f.ring)
	// Flip a byte in the challenge leaf (tree.Children[1]).
	tampered := tree.Children[1].Leaf
	tampered[len(tampered)-1] ^= 0xFF

	require.False(t, shuffle.Verify(f.inst, tree, ch, params))
}

func TestSoundnessRejectsSwappedCiphertexts(t *testing.T) {
	f := buildFixture(t, 6, 1)
	params := testParams(6)
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	proof, err := shuffle.Prove(f.inst, f.wit, ch, params, rand.Reader)
	require.NoError(t, err)
	tree := proof.EncodeTree(f.ring)

	// Swap two output ciphertexts in the public instance after the proof
	// was produced: the transcript no longer matches the relation.
	wpSlice := append([]group.Element{}, f.inst.Wp.Slice()...)
	wpSlice[0], wpSlice[1] = wpSlice[1], wpSlice[0]
	f.inst.Wp = garr.NewGroupArray(f.inst.CG, wpSlice)

	require.False(t, shuffle.Verify(f.inst, tree, ch, params))
}

func TestCompletenessWithFixedNonInvolutivePermutation(t *testing.T) {
	g := group.SecP256k1()
	ring := group.RingOf(g)
	omega := 1
	n := 3

	pub, _ := elgamal.GenerateKey(g, omega, rand.Reader)
	h, err := shuffle.DeriveGenerators([]byte("fixed-cycle-fixture"), n, g)
	require.NoError(t, err)

	// A 3-cycle: idx[idx[idx[i]]] == i but idx[idx[i]] != i, so forward and
	// inverse application disagree on every position.
	pi := fixedPermutation(t, []int{1, 2, 0})

	gw := pub.CG.Factor(0)
	plainCiphertexts := make([]group.Element, n)
	for i := 0; i < n; i++ {
		m := gw.Random()
		ct, _ := elgamal.Encrypt(pub, m, rand.Reader)
		plainCiphertexts[i] = ct
	}
	w := garr.NewGroupArray(pub.CG, plainCiphertexts)

	wp, s := elgamal.Shuffle(pub, pi, w, rand.Reader)
	u, r := shuffle.CommitPermutation(pi, g.Generator(), h, rand.Reader)

	inst := &shuffle.Instance{G: g, H: h, U: u, CG: pub.CG, PK: pub.RB, W: w, Wp: wp}
	wit := &shuffle.Witness{Pi: pi, S: s, R: r}

	params := testParams(n)
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	proof, err := shuffle.Prove(inst, wit, ch, params, rand.Reader)
	require.NoError(t, err)

	tree := proof.EncodeTree(ring)
	require.True(t, shuffle.Verify(inst, tree, ch, params))
}

func TestSoundnessRejectsWrongWitness(t *testing.T) {
	f := buildFixture(t, 6, 1)
	other := buildFixture(t, 6, 1)
	params := testParams(6)
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	// Prove f's instance using another fixture's witness: a mismatched
	// permutation/exponents should fail to satisfy the equations.
	proof, err := shuffle.Prove(f.inst, other.wit, ch, params, rand.Reader)
	require.NoError(t, err)
	tree := proof.EncodeTree(f.ring)

	require.False(t, shuffle.Verify(f.inst, tree, ch, params))
}
