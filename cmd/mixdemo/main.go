// Command mixdemo runs one mix-server's shuffle step end-to-end in
// process: it builds a witness, re-randomizes and permutes a list of
// ElGamal ciphertexts, produces a PoSBasicTW proof, writes the spec.md §6
// proof-directory files to a scratch directory, reads them back, and
// verifies. It also runs the commitment-consistent precomputation variant
// (PoSCBasicTW + CCPoSBasicW). This is the in-process harness that
// exercises the cryptographic core the way the teacher's
// main.go/server.go exercise voteproof -- not the bulletin-board network
// layer, which stays out of scope.
package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/takakv/mixproof/bytetree"
	"github.com/takakv/mixproof/elgamal"
	"github.com/takakv/mixproof/fiatshamir"
	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
	"github.com/takakv/mixproof/permutation"
	"github.com/takakv/mixproof/shuffle"
	"github.com/takakv/mixproof/shuffle/ccpos"
	"github.com/takakv/mixproof/shuffle/posc"
)

const (
	demoN     = 10
	demoOmega = 1
)

func sessionParams(groupName string) shuffle.SessionParams {
	return shuffle.SessionParams{
		NV: 128, NE: 40, NR: 40,
		Version: "mixproof-demo-v1", ROSID: "mixdemo",
		PRGName: "ChaCha8", GroupName: groupName, HashName: "SHA-256",
	}
}

// writeProofDirectory writes the PCl, PoSCl, PoSRl, width, type and version
// byte-tree files of spec.md §6 for a single mix-server's PoSBasicTW
// output. The other files of that layout (mc, auxsid, the active-threshold
// slots at and kLl, and the PoSC/CCPoS files) are not written.
func writeProofDirectory(dir string, u *garr.GroupArray, proof *shuffle.Proof, ring *group.Ring, omega int) error {
	files := map[string]*bytetree.Node{
		"PCl":     u.EncodeTree(),
		"PoSCl":   proof.CommitmentsTree(),
		"PoSRl":   proof.ResponsesTree(ring),
		"width":   bytetree.LeafInt(big.NewInt(int64(omega)), 4),
		"type":    bytetree.NewLeaf([]byte("PoSBasicTW")),
		"version": bytetree.NewLeaf([]byte("mixproof-demo-v1")),
	}
	for name, node := range files {
		if err := writeFile(filepath.Join(dir, name), node); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, node *bytetree.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bytetree.WriteFile(f, node)
}

func readFile(path string) (*bytetree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bytetree.ReadFile(f)
}

// reassembleProof glues the PoSCl/PoSRl files back into the single tree
// shape shuffle.Verify expects (the wire representation splits the two
// for the proof directory, but the in-process library API keeps them as
// one object, per shuffle/marshal.go's EncodeTree).
func reassembleProof(commitments, responses *bytetree.Node) *bytetree.Node {
	children := append([]*bytetree.Node{commitments}, responses.Children...)
	return bytetree.NewNode(children...)
}

func main() {
	g := group.P256()
	ring := group.RingOf(g)
	params := sessionParams(g.Name())

	ch, err := shuffle.Setup(params)
	if err != nil {
		fmt.Println("setup failed:", err)
		os.Exit(1)
	}

	pub, _ := elgamal.GenerateKey(g, demoOmega, rand.Reader)

	h, err := shuffle.DeriveGenerators(ch.Rho(), demoN, g)
	if err != nil {
		fmt.Println("generator derivation failed:", err)
		os.Exit(1)
	}

	pi, err := permutation.Sample(demoN, params.NR, rand.Reader)
	if err != nil {
		fmt.Println("permutation sampling failed:", err)
		os.Exit(1)
	}

	gw := pub.CG.Factor(0)
	ciphertexts := make([]group.Element, demoN)
	for i := 0; i < demoN; i++ {
		m := gw.Random()
		ct, _ := elgamal.Encrypt(pub, m, rand.Reader)
		ciphertexts[i] = ct
	}
	w := garr.NewGroupArray(pub.CG, ciphertexts)

	start := time.Now()
	wp, s := elgamal.Shuffle(pub, pi, w, rand.Reader)
	u, r := shuffle.CommitPermutation(pi, g.Generator(), h, rand.Reader)
	fmt.Println("shuffle + commit:", time.Since(start))

	inst := &shuffle.Instance{G: g, H: h, U: u, CG: pub.CG, PK: pub.RB, W: w, Wp: wp}
	wit := &shuffle.Witness{Pi: pi, S: s, R: r}

	start = time.Now()
	proof, err := shuffle.Prove(inst, wit, ch, params, rand.Reader)
	if err != nil {
		fmt.Println("prove failed:", err)
		os.Exit(1)
	}
	fmt.Println("PoSBasicTW prove:", time.Since(start))

	dir, err := os.MkdirTemp("", "mixdemo-proof-*")
	if err != nil {
		fmt.Println("scratch directory failed:", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	if err := writeProofDirectory(dir, u, proof, ring, demoOmega); err != nil {
		fmt.Println("writing proof directory failed:", err)
		os.Exit(1)
	}

	commitmentsNode, err := readFile(filepath.Join(dir, "PoSCl"))
	if err != nil {
		fmt.Println("reading PoSCl failed:", err)
		os.Exit(1)
	}
	responsesNode, err := readFile(filepath.Join(dir, "PoSRl"))
	if err != nil {
		fmt.Println("reading PoSRl failed:", err)
		os.Exit(1)
	}
	tree := reassembleProof(commitmentsNode, responsesNode)

	start = time.Now()
	accept := shuffle.Verify(inst, tree, ch, params)
	fmt.Println("PoSBasicTW verify:", time.Since(start), "-> accept:", accept)

	runCommitmentConsistentDemo(g, ring, ch, params, h, u, r, s, pi, inst)
}

// runCommitmentConsistentDemo runs spec.md §8's scenario 5: a PoSCBasicTW
// proof that u is a valid shuffle of h, produced as if during an earlier
// precomputation phase, followed by a CCPoSBasicW proof of just the
// re-encryption relation against the already-committed u. It then shows
// that swapping in an unrelated commitment makes CCPoSBasicW reject.
func runCommitmentConsistentDemo(g group.Group, ring *group.Ring, ch *fiatshamir.Challenger, params shuffle.SessionParams, h, u *garr.GroupArray, r, s *garr.RingArray, pi *permutation.Permutation, inst *shuffle.Instance) {
	poscInst := &posc.Instance{G: g, H: h, U: u}
	poscWit := &posc.Witness{Pi: pi, R: r}

	poscProof, err := posc.Prove(poscInst, poscWit, ch, params, rand.Reader)
	if err != nil {
		fmt.Println("PoSC prove failed:", err)
		return
	}
	poscTree := poscProof.EncodeTree(ring)
	fmt.Println("PoSCBasicTW verify -> accept:", posc.Verify(poscInst, poscTree, ch, params))

	ccInst := &ccpos.Instance{U: u, CG: inst.CG, PK: inst.PK, W: inst.W, Wp: inst.Wp}
	ccWit := &ccpos.Witness{Pi: pi, S: s}

	ccProof, err := ccpos.Prove(ccInst, ccWit, ch, params, rand.Reader)
	if err != nil {
		fmt.Println("CCPoS prove failed:", err)
		return
	}
	ccTree := ccProof.EncodeTree(ring)
	fmt.Println("CCPoSBasicW verify -> accept:", ccpos.Verify(ccInst, ccTree, ch, params))

	otherPi, err := permutation.Sample(u.Len(), params.NR, rand.Reader)
	if err != nil {
		fmt.Println("permutation sampling failed:", err)
		return
	}
	otherU, _ := shuffle.CommitPermutation(otherPi, g.Generator(), h, rand.Reader)
	mismatched := &ccpos.Instance{U: otherU, CG: inst.CG, PK: inst.PK, W: inst.W, Wp: inst.Wp}
	fmt.Println("CCPoSBasicW verify with mismatched u -> accept:", ccpos.Verify(mismatched, ccTree, ch, params))
}
