package pipeline

import (
	"context"

	"github.com/matzehuels/assetgraph/pkg/asset"
)

// Neighbourhood is the part of a graph reachable from a root asset.
type Neighbourhood struct {
	*asset.Traversal

	// Relationships links assets inside the neighbourhood. They are ordered
	// by source in traversal order, then by type.
	Relationships []asset.Relationship
}

// Assets returns the root followed by every reached asset in hop order.
func (n *Neighbourhood) Assets() []string {
	return append([]string{n.Root}, n.Reachable()...)
}

// Traverse expands g from root for up to hops steps and collects the
// relationships among the reached assets from the index cache.
func (r *Runner) Traverse(ctx context.Context, g *asset.Graph, root string, hops int) (*Neighbourhood, error) {
	if err := asset.CheckCapability(g); err != nil {
		return nil, err
	}
	t, err := g.Traverse(root, hops)
	if err != nil {
		return nil, err
	}
	n := &Neighbourhood{Traversal: t}

	ids := n.Assets()
	idx, err := r.Index.GetRestricted(ctx, g, ids, false)
	if err != nil {
		return nil, err
	}
	inside := make(map[string]bool, len(ids))
	for _, id := range ids {
		inside[id] = true
	}
	for _, id := range ids {
		for _, typ := range idx.Types(id) {
			for _, rel := range idx.Relationships(id, typ) {
				if inside[rel.Target] {
					n.Relationships = append(n.Relationships, rel)
				}
			}
		}
	}

	r.Logger.Debug("traversal complete",
		"root", root, "hops", len(t.Hops),
		"reached", len(ids)-1, "relationships", len(n.Relationships))
	return n, nil
}
