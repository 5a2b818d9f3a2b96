package ccpos_test

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
	"github.com/takakv/mixproof/shuffle/ccpos"
)

func testParams() shuffle.SessionParams {
	return shuffle.SessionParams{
		NV: 128, NE: 40, NR: 40,
		Version: "mixproof-ccpos-test-v1", ROSID: "unit-test",
		PRGName: "ChaCha8", GroupName: "secp256k1", HashName: "SHA-256",
	}
}

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

func buildFixture(t *testing.T, pi *permutation.Permutation) (*ccpos.Instance, *ccpos.Witness, *group.Ring) {
	t.Helper()
	n := pi.Len()
	g := group.SecP256k1()
	ring := group.RingOf(g)

	pub, _ := elgamal.GenerateKey(g, 1, rand.Reader)
	h, err := shuffle.DeriveGenerators([]byte("ccpos-fixture"), n, g)
	require.NoError(t, err)

	u, _ := shuffle.CommitPermutation(pi, g.Generator(), h, rand.Reader)

	gw := pub.CG.Factor(0)
	plainCiphertexts := make([]group.Element, n)
	for i := 0; i < n; i++ {
		m := gw.Random()
		ct, _ := elgamal.Encrypt(pub, m, rand.Reader)
		plainCiphertexts[i] = ct
	}
	w := garr.NewGroupArray(pub.CG, plainCiphertexts)
	wp, s := elgamal.Shuffle(pub, pi, w, rand.Reader)

	inst := &ccpos.Instance{U: u, CG: pub.CG, PK: pub.RB, W: w, Wp: wp}
	wit := &ccpos.Witness{Pi: pi, S: s}
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
			pi, err := permutation.Sample(n, 40, rand.Reader)
			require.NoError(t, err)
			inst, wit, ring := buildFixture(t, pi)
			params := testParams()
			ch, err := shuffle.Setup(params)
			require.NoError(t, err)

			proof, err := ccpos.Prove(inst, wit, ch, params, rand.Reader)
			require.NoError(t, err)

			tree := proof.EncodeTree(ring)
			require.True(t, ccpos.Verify(inst, tree, ch, params))
		})
	}
}

func TestCompletenessWithFixedNonInvolutivePermutation(t *testing.T) {
	pi := fixedPermutation(t, []int{1, 2, 0})
	inst, wit, ring := buildFixture(t, pi)
	params := testParams()
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	proof, err := ccpos.Prove(inst, wit, ch, params, rand.Reader)
	require.NoError(t, err)

	tree := proof.EncodeTree(ring)
	require.True(t, ccpos.Verify(inst, tree, ch, params))
}

func TestSoundnessRejectsMismatchedCommitment(t *testing.T) {
	pi, err := permutation.Sample(6, 40, rand.Reader)
	require.NoError(t, err)
	inst, wit, ring := buildFixture(t, pi)
	params := testParams()
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	proof, err := ccpos.Prove(inst, wit, ch, params, rand.Reader)
	require.NoError(t, err)
	tree := proof.EncodeTree(ring)
	require.True(t, ccpos.Verify(inst, tree, ch, params))

	otherPi, err := permutation.Sample(6, 40, rand.Reader)
	require.NoError(t, err)
	g := group.SecP256k1()
	h, err := shuffle.DeriveGenerators([]byte("ccpos-fixture"), 6, g)
	require.NoError(t, err)
	otherU, _ := shuffle.CommitPermutation(otherPi, g.Generator(), h, rand.Reader)

	mismatched := &ccpos.Instance{U: otherU, CG: inst.CG, PK: inst.PK, W: inst.W, Wp: inst.Wp}
	require.False(t, ccpos.Verify(mismatched, tree, ch, params))
}

func TestSoundnessRejectsTamperedResponse(t *testing.T) {
	pi, err := permutation.Sample(6, 40, rand.Reader)
	require.NoError(t, err)
	inst, wit, ring := buildFixture(t, pi)
	params := testParams()
	ch, err := shuffle.Setup(params)
	require.NoError(t, err)

	proof, err := ccpos.Prove(inst, wit, ch, params, rand.Reader)
	require.NoError(t, err)
	tree := proof.EncodeTree(ring)

	tampered := tree.Children[3].Leaf // KF
	tampered[0] ^= 0xFF

	require.False(t, ccpos.Verify(inst, tree, ch, params))
}
