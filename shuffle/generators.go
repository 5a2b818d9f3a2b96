package shuffle

import (
	"fmt"

	"github.com/takakv/mixproof/garr"
	"github.com/takakv/mixproof/group"
)

// DeriveGenerators derives n generators of g with unknown discrete log
// relative to one another and to g's own generator, labelled by rho so two
// sessions with different session prefixes never share a commitment basis.
// Grounded on group.Element.MapToGroup's hash-to-group primitive (used by
// the curve carriers' Elligator-style map and the ModPGroup carrier's
// try-and-increment), rather than re-deriving one here.
func DeriveGenerators(rho []byte, n int, g group.Group) (*garr.GroupArray, error) {
	es := make([]group.Element, n)
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("mixproof/generators/%x/%d", rho, i)
		e, err := g.Element().MapToGroup(label)
		if err != nil {
			return nil, err
		}
		es[i] = e
	}
	return garr.NewGroupArray(g, es), nil
}
