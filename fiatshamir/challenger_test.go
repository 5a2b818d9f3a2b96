package fiatshamir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/group"
)

func newTestChallenger() *Challenger {
	return NewChallenger("1.0", "test-session", 40, 256, 256, "chacha8", "secp256k1", "sha256")
}

func TestChallengerIsDeterministic(t *testing.T) {
	c1 := newTestChallenger()
	c2 := newTestChallenger()
	require.Equal(t, c1.Rho(), c2.Rho())

	d := bytetree.NewLeaf([]byte("transcript"))
	require.Equal(t, c1.Scalar(d, 256), c2.Scalar(d, 256))
	require.Equal(t, c1.Seed(d, 128), c2.Seed(d, 128))
}

func TestChallengerRespondsToTranscript(t *testing.T) {
	c := newTestChallenger()
	d1 := bytetree.NewLeaf([]byte("transcript-1"))
	d2 := bytetree.NewLeaf([]byte("transcript-2"))
	require.NotEqual(t, c.Scalar(d1, 256), c.Scalar(d2, 256))
}

func TestScalarIsWithinBitBound(t *testing.T) {
	c := newTestChallenger()
	d := bytetree.NewLeaf([]byte("bound-check"))
	const nv = 128
	x := c.Scalar(d, nv)
	require.True(t, x.Sign() > 0)
	require.True(t, x.BitLen() <= nv)
}

func TestBatchVectorLengthAndBound(t *testing.T) {
	c := newTestChallenger()
	d := bytetree.NewLeaf([]byte("batch-transcript"))
	r := group.NewRing(group.SecP256k1().N())
	const n, ne = 20, 80

	v := c.BatchVector(d, r, n, ne)
	require.Equal(t, n, v.Len())
	for i := 0; i < n; i++ {
		require.True(t, v.At(i).Sign() > 0)
		require.True(t, v.At(i).BitLen() <= ne)
	}
}

func TestBatchVectorIsDeterministic(t *testing.T) {
	r := group.NewRing(group.SecP256k1().N())
	d := bytetree.NewLeaf([]byte("replay"))
	v1 := newTestChallenger().BatchVector(d, r, 10, 64)
	v2 := newTestChallenger().BatchVector(d, r, 10, 64)
	require.True(t, v1.Equals(v2))
}
