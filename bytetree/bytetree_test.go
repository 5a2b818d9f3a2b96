package bytetree

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeafRoundTrip(t *testing.T) {
	leaf := NewLeaf([]byte("hello"))
	enc := leaf.Encode()

	dec, n, err := Decode(enc)
	require.NoError(t, err)
	require.Equal(t, len(enc), n)
	require.True(t, dec.IsLeaf())
	require.Equal(t, []byte("hello"), dec.Leaf)
}

func TestNodeRoundTrip(t *testing.T) {
	tree := NewNode(NewLeaf([]byte{1, 2, 3}), NewNode(NewLeaf([]byte{4}), NewLeaf([]byte{})))
	enc := tree.Encode()

	dec, n, err := Decode(enc)
	require.NoError(t, err)
	require.Equal(t, len(enc), n)
	require.False(t, dec.IsLeaf())
	require.Len(t, dec.Children, 2)
	require.Equal(t, []byte{1, 2, 3}, dec.Children[0].Leaf)
	require.False(t, dec.Children[1].IsLeaf())
	require.Equal(t, []byte{4}, dec.Children[1].Children[0].Leaf)
}

func TestEncodeIsDeterministic(t *testing.T) {
	a := NewNode(NewLeaf([]byte("x")), NewLeaf([]byte("y")))
	b := NewNode(NewLeaf([]byte("x")), NewLeaf([]byte("y")))
	require.Equal(t, a.Encode(), b.Encode())
}

func TestReaderSequence(t *testing.T) {
	var enc []byte
	enc = append(enc, LeafInt(big.NewInt(42), 4).Encode()...)
	enc = append(enc, LeafBool([]bool{true, false, true}).Encode()...)
	enc = append(enc, NewLeaf([]byte("abc")).Encode()...)

	r := NewReader(enc)

	i, err := r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(42), i)

	bs, err := r.ReadBooleans(3)
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true}, bs)

	raw, err := r.ReadBytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), raw)

	require.Equal(t, 0, r.Remaining())
}

func TestTruncatedInputIsFormatError(t *testing.T) {
	tree := NewLeaf([]byte("hello"))
	enc := tree.Encode()

	_, _, err := Decode(enc[:len(enc)-2])
	require.Error(t, err)
	require.True(t, IsFormatError(err))
}

func TestUnknownTagIsFormatError(t *testing.T) {
	enc := NewLeaf([]byte("x")).Encode()
	enc[0] = 0x02
	_, _, err := Decode(enc)
	require.Error(t, err)
	require.True(t, IsFormatError(err))
}

func TestIntWidthPadding(t *testing.T) {
	b := IntToBytes(big.NewInt(1), 4)
	require.Equal(t, []byte{0, 0, 0, 1}, b)
}
