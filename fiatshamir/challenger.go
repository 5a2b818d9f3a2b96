// Package fiatshamir turns a byte-tree transcript into the verifier's
// public coins, the non-interactive challenge derivation of spec.md §4.4.
// It generalizes the teacher's voteproof.getFSChallenge (SHA-256 over a
// concatenated transcript, truncated to a bit length) into a
// session-prefixed challenger that can also expand a seed into an
// arbitrary-length pseudorandom stream.
package fiatshamir

import (
	"crypto/sha256"
	"math/big"
	"math/rand/v2"

	"golang.org/x/crypto/hkdf"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
)

// Challenger derives challenges and pseudorandom seeds from a fixed session
// prefix rho plus arbitrary transcript data, per spec.md §4.4.
type Challenger struct {
	rho []byte
}

// NewChallenger computes rho = H(version || rosid || nr || nv || ne ||
// prgName || groupName || hashName) and returns a Challenger bound to it.
func NewChallenger(version, rosid string, nr, nv, ne int, prgName, groupName, hashName string) *Challenger {
	h := sha256.New()
	writeString(h, version)
	writeString(h, rosid)
	writeInt(h, nr)
	writeInt(h, nv)
	writeInt(h, ne)
	writeString(h, prgName)
	writeString(h, groupName)
	writeString(h, hashName)
	return &Challenger{rho: h.Sum(nil)}
}

func writeString(h interface{ Write([]byte) (int, error) }, s string) {
	h.Write([]byte{byte(len(s) >> 24), byte(len(s) >> 16), byte(len(s) >> 8), byte(len(s))})
	h.Write([]byte(s))
}

func writeInt(h interface{ Write([]byte) (int, error) }, n int) {
	h.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
}

// Rho returns the session prefix.
func (c *Challenger) Rho() []byte {
	out := make([]byte, len(c.rho))
	copy(out, c.rho)
	return out
}

// digest hashes rho || Encode(d).
func (c *Challenger) digest(d *bytetree.Node) []byte {
	h := sha256.New()
	h.Write(c.rho)
	h.Write(d.Encode())
	return h.Sum(nil)
}

// Seed hashes rho || Encode(d) and HKDF-expands the result to bits bits.
func (c *Challenger) Seed(d *bytetree.Node, bits int) []byte {
	byteLen := (bits + 7) / 8
	out := make([]byte, byteLen)
	kdf := hkdf.Expand(sha256.New, c.digest(d), []byte("mixproof/fiatshamir/seed"))
	if _, err := kdf.Read(out); err != nil {
		panic("fiatshamir: hkdf expand failure: " + err.Error())
	}
	return out
}

// Scalar hashes rho || Encode(d), reducing the digest to a positive nv-bit
// integer, generalizing getFSChallenge's truncate-and-interpret step.
func (c *Challenger) Scalar(d *bytetree.Node, nv int) *big.Int {
	byteLen := (nv + 7) / 8
	digest := c.digest(d)
	out := make([]byte, byteLen)
	kdf := hkdf.Expand(sha256.New, digest, []byte("mixproof/fiatshamir/scalar"))
	if _, err := kdf.Read(out); err != nil {
		panic("fiatshamir: hkdf expand failure: " + err.Error())
	}
	x := new(big.Int).SetBytes(out)
	mask := new(big.Int).Lsh(big.NewInt(1), uint(nv))
	x.Mod(x, mask)
	if x.Sign() == 0 {
		x.SetInt64(1)
	}
	return x
}

// BatchVector seeds a deterministic PRG from Seed(d, 256) and draws n
// integers of ne bits each, for the batch-verification challenge vector of
// spec.md §8.
func (c *Challenger) BatchVector(d *bytetree.Node, r *group.Ring, n, ne int) *garr.RingArray {
	seed := c.Seed(d, 256)
	var seed32 [32]byte
	copy(seed32[:], seed)
	src := rand.NewChaCha8(seed32)

	xs := make([]*big.Int, n)
	buf := make([]byte, (ne+7)/8)
	for i := 0; i < n; i++ {
		for j := range buf {
			buf[j] = byte(src.Uint64())
		}
		x := new(big.Int).SetBytes(buf)
		mask := new(big.Int).Lsh(big.NewInt(1), uint(ne))
		x.Mod(x, mask)
		if x.Sign() == 0 {
			x.SetInt64(1)
		}
		xs[i] = r.Reduce(x)
	}
	return garr.NewRingArray(r, xs)
}
