package asset

import (
	"cmp"
	"slices"

	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

// Traversal is the result of a breadth-first expansion from a root asset.
type Traversal struct {
	Root string
	// Hops[k] holds the assets first reached at depth k+1, strongest
	// relationship first, ties broken by ascending id.
	Hops [][]string

	parent map[string]string
	depth  map[string]int
}

// Traverse expands outgoing relationships from id breadth-first, up to
// maxHops steps. Each reachable asset is recorded once, at the depth where it
// is first reached, together with the neighbour it was reached through (the
// strongest relationship wins; equal weights prefer the smaller source id).
//
// Returns UNKNOWN_ASSET for an unknown root and a VALIDATION error for a
// negative hop budget. A budget of zero yields no hops.
func (g *Graph) Traverse(id string, maxHops int) (*Traversal, error) {
	if maxHops < 0 {
		return nil, apperr.Invalid("max hops", "non-negative integer", maxHops)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.assets[id]; !ok {
		return nil, apperr.UnknownAsset(id)
	}

	t := &Traversal{
		Root:   id,
		parent: map[string]string{},
		depth:  map[string]int{id: 0},
	}

	type reach struct {
		weight float64
		parent string
	}

	frontier := []string{id}
	for hop := 1; hop <= maxHops && len(frontier) > 0; hop++ {
		found := make(map[string]reach)
		for _, u := range frontier {
			for _, r := range g.outgoing[u] {
				if _, seen := t.depth[r.Target]; seen {
					continue
				}
				best, ok := found[r.Target]
				if !ok || r.Weight > best.weight || (r.Weight == best.weight && u < best.parent) {
					found[r.Target] = reach{weight: r.Weight, parent: u}
				}
			}
		}
		if len(found) == 0 {
			break
		}

		level := make([]string, 0, len(found))
		for target := range found {
			level = append(level, target)
		}
		slices.SortFunc(level, func(a, b string) int {
			if c := cmp.Compare(found[b].weight, found[a].weight); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})

		for _, target := range level {
			t.depth[target] = hop
			t.parent[target] = found[target].parent
		}
		t.Hops = append(t.Hops, level)
		frontier = level
	}

	return t, nil
}

// Depth returns the hop depth at which id was reached, or -1 if it was not.
// The root has depth 0.
func (t *Traversal) Depth(id string) int {
	if d, ok := t.depth[id]; ok {
		return d
	}
	return -1
}

// Reachable returns every reached asset (excluding the root) in hop order.
func (t *Traversal) Reachable() []string {
	var out []string
	for _, level := range t.Hops {
		out = append(out, level...)
	}
	return out
}

// Path returns the discovered path from the root to id, both endpoints
// included. Returns nil if id was not reached.
func (t *Traversal) Path(id string) []string {
	if _, ok := t.depth[id]; !ok {
		return nil
	}
	path := []string{id}
	for cur := id; cur != t.Root; {
		cur = t.parent[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// Intermediates returns the assets strictly between the root and id on the
// discovered path: the hops an indirect relationship passes through. Direct
// neighbours and unreached ids yield an empty result.
func (t *Traversal) Intermediates(id string) []string {
	p := t.Path(id)
	if len(p) <= 2 {
		return nil
	}
	return p[1 : len(p)-1]
}
