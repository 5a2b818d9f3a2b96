package posc_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/permutation"
	"github.com/takakv/mixproof/shuffle"
	"github.com/takakv/mixproof/shuffle/posc"
)

// fixedPermutation builds a permutation from an explicit idx array,
// bypassing permutation.Sample's randomness. Regression tests use this
// with a non-involutive cycle, since a direction bug in how the batching
// vector is reindexed by pi can hide behind a self-inverse permutation.
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

func testParams() shuffle.SessionParams {
	return shuffle.SessionParams{
		NV: 128, NE: 40, NR: 40,
		Version: "mixproof-posc-test-v1", ROSID: "unit-test",
		PRGName: "ChaCha8", GroupName: "secp256k1", HashName: "SHA-256",
	}
}

func buildFixture(t *testing.T, n int) (*posc.Instance, *posc.Witness, *group.Ring) {
	t.Helper()
	g := group.SecP256k1()
	ring := group.RingOf(g)

	h, err := shuffle.DeriveGenerators([]byte("posc-fixture"), n, g)
	require.NoError(t, err)

	pi, err := permutation.Sample(n, 40, rand.Reader)
	require.NoError(t, err)

	u, r := shuffle.CommitPermutation(pi, g.Generator(), h, rand.Reader)

	inst := &posc.Instance{G: g, H: h, U: u}
	wit := &posc.Witness{Pi: pi, R: r}
	return inst, wit, ring
}

func TestCompletenessAcrossSizes(t *testing.T) {
	sizes := []int{1, 2, 3, 10}
	if !testing.Short() {
		sizes = append(sizes, 100)
	}
	for _, n := range sizes {
		n := n
		t.Run("", func(t *testing.T) {
			inst, wit, ring := buildFixture(t, n)
			params := testParams()
			ch, err := shuffle.Setup(params)
			require.NoError(t, err)

			proof, err := posc.Prove(inst, wit, ch, params, rand.Reader)
			require.NoError(t, err)

			tree := proof.EncodeTree(ring)
			require.True(t, posc.Verify(inst, tree, ch, params))
		})
	}
}

func TestCompletenessWithFixedNonInvolutivePermutation(t *testing.T) {
	g := group.SecP256k1()
	ring := group.RingOf(g)
	n := 3

	h, err := shuffle.DeriveGenerators([]byte("posc-fixed-cycle"), n, g)
	require.NoError(t, err)

	pi := fixedPermutation(t, []int{1, 2, 0})
	u, r := shuffle.CommitPermutation(pi, g.Generator(), h, rand.Reader)

	inst := &posc.Instance{G: g, H: h, U: u}
	wit := &posc.Witness{Pi: pi, R: r}

	params := testParams()
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	proof, err := posc.Prove(inst, wit, ch, params, rand.Reader)
	require.NoError(t, err)

	tree := proof.EncodeTree(ring)
	require.True(t, posc.Verify(inst, tree, ch, params))
}

func TestSoundnessRejectsTamperedResponse(t *testing.T) {
	inst, wit, ring := buildFixture(t, 6)
	params := testParams()
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	proof, err := posc.Prove(inst, wit, ch, params, rand.Reader)
	require.NoError(t, err)
	tree := proof.EncodeTree(ring)

	tampered := tree.Children[2].Leaf // KA
	tampered[0] ^= 0xFF

	require.False(t, posc.Verify(inst, tree, ch, params))
}
