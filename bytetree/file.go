package bytetree

import "io"

// WriteFile writes n's canonical encoding to w, the proof-directory file
// format of spec.md §6: one byte tree per named file (PCl, PoSCl, PoSRl,
// ...), no surrounding framing beyond the tree's own tag/length header.
func WriteFile(w io.Writer, n *Node) error {
	_, err := w.Write(n.Encode())
	return err
}

// ReadFile reads a single byte tree written by WriteFile from r in full.
// Trailing bytes after the tree are not an error: callers that multiplex
// several objects into one stream read sequentially with a Reader instead.
func ReadFile(r io.Reader) (*Node, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	n, _, err := Decode(b)
	return n, err
}
