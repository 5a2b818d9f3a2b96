package elgamal_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/mixproof/elgamal"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/permutation"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	g := group.SecP256k1()
	pub, priv := elgamal.GenerateKey(g, 1, rand.Reader)

	m := g.Random()
	ct, _ := elgamal.Encrypt(pub, m, rand.Reader)
	got := elgamal.Decrypt(pub, ct, priv)
	require.True(t, m.IsEqual(got))
}

func TestReEncryptPreservesPlaintext(t *testing.T) {
	g := group.SecP256k1()
	pub, priv := elgamal.GenerateKey(g, 1, rand.Reader)

	m := g.Random()
	ct, _ := elgamal.Encrypt(pub, m, rand.Reader)

	ring := group.RingOf(g)
	s := ring.Random()
	reCt := elgamal.ReEncrypt(pub, ct, s)

	require.False(t, reCt.IsEqual(ct))
	require.True(t, m.IsEqual(elgamal.Decrypt(pub, reCt, priv)))
}

func TestShuffleIsPermutationAndRerandomization(t *testing.T) {
	g := group.SecP256k1()
	pub, priv := elgamal.GenerateKey(g, 1, rand.Reader)

	const n = 6
	plains := make([]group.Element, n)
	ciphertexts := make([]group.Element, n)
	for i := 0; i < n; i++ {
		plains[i] = g.Random()
		ct, _ := elgamal.Encrypt(pub, plains[i], rand.Reader)
		ciphertexts[i] = ct
	}
	w := garr.NewGroupArray(pub.CG, ciphertexts)

	pi, err := permutation.Sample(n, 40, rand.Reader)
	require.NoError(t, err)

	wp, s := elgamal.Shuffle(pub, pi, w, rand.Reader)
	require.Equal(t, n, wp.Len())
	require.Equal(t, n, s.Len())

	decrypted := make([]group.Element, n)
	for i := 0; i < n; i++ {
		decrypted[i] = elgamal.Decrypt(pub, wp.At(i), priv)
	}

	for i := 0; i < n; i++ {
		require.True(t, plains[pi.At(i)].IsEqual(decrypted[i]))
	}
}

func TestEncryptDecryptRoundTripWidth3(t *testing.T) {
	g := group.SecP256k1()
	const omega = 3
	pub, priv := elgamal.GenerateKey(g, omega, rand.Reader)

	gw := pub.CG.Factor(0)
	m := gw.Random()
	ct, _ := elgamal.Encrypt(pub, m, rand.Reader)
	got := elgamal.Decrypt(pub, ct, priv)
	require.True(t, m.IsEqual(got))
}
