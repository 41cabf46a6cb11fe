package asset

import (
	"math"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"

	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

// RelationshipSource is the capability the relationship index builder needs:
// a stable identity plus the relationship mapping and a per-asset accessor.
type RelationshipSource interface {
	// ID returns a stable identity for the graph instance, used to key caches.
	ID() string
	// Relationships returns asset id -> outgoing relationships for every asset,
	// including assets without relationships (empty slice).
	Relationships() map[string][]Relationship
	// GetRelationships returns the outgoing relationships of one asset.
	GetRelationships(id string) ([]Relationship, error)
}

// Reader is the capability the trace composer needs to render a graph.
type Reader interface {
	RelationshipSource
	Asset(id string) (Asset, bool)
	AssetIDs() []string
	RelationshipTypes() []string
}

var (
	_ RelationshipSource = (*Graph)(nil)
	_ Reader             = (*Graph)(nil)
)

// CheckCapability verifies that src can serve relationship reads. A nil
// interface or a typed nil pointer is rejected with a GRAPH_CAPABILITY error.
func CheckCapability(src RelationshipSource) error {
	if src == nil {
		return apperr.GraphCapability("graph is nil")
	}
	if v := reflect.ValueOf(src); v.Kind() == reflect.Pointer && v.IsNil() {
		return apperr.GraphCapability("graph is a nil %T", src)
	}
	return nil
}

// Graph holds assets and their outgoing relationships.
//
// The zero value is not usable - use New to create a valid Graph instance.
type Graph struct {
	mu       sync.RWMutex
	id       string
	version  uint64
	assets   map[string]Asset
	outgoing map[string][]Relationship
	relCount int
}

// New creates an empty graph with a fresh random identity.
func New() *Graph {
	return &Graph{
		id:       uuid.NewString(),
		assets:   make(map[string]Asset),
		outgoing: make(map[string][]Relationship),
	}
}

// ID returns the graph's identity. It never changes over the graph's lifetime.
func (g *Graph) ID() string { return g.id }

// Version returns a counter incremented by every successful mutation.
func (g *Graph) Version() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.version
}

// AddAsset adds an asset to the graph.
// Returns a VALIDATION error if the id is empty, or DUPLICATE_ASSET if an
// asset with the same id already exists. The attribute map is copied.
func (g *Graph) AddAsset(a Asset) error {
	if a.ID == "" {
		return apperr.Invalid("asset id", "non-empty string", `""`)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.assets[a.ID]; exists {
		return apperr.DuplicateAsset(a.ID)
	}
	g.assets[a.ID] = a.clone()
	g.outgoing[a.ID] = nil
	g.version++
	return nil
}

// AddRelationship appends a relationship to its source's outgoing list.
// Returns UNKNOWN_ASSET if either endpoint is absent (source checked first),
// or a VALIDATION error for an empty type or a non-finite weight.
func (g *Graph) AddRelationship(r Relationship) error {
	if r.Type == "" {
		return apperr.Invalid("relationship type", "non-empty string", `""`)
	}
	if math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) {
		return apperr.Invalid("relationship weight", "finite number", r.Weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.assets[r.Source]; !ok {
		return apperr.UnknownAsset(r.Source)
	}
	if _, ok := g.assets[r.Target]; !ok {
		return apperr.UnknownAsset(r.Target)
	}
	g.outgoing[r.Source] = append(g.outgoing[r.Source], r)
	g.relCount++
	g.version++
	return nil
}

// Asset returns the asset with the given id and true, or the zero Asset and
// false if not found. The attribute map is a copy.
func (g *Graph) Asset(id string) (Asset, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	a, ok := g.assets[id]
	if !ok {
		return Asset{}, false
	}
	return a.clone(), true
}

// AssetIDs returns all asset ids in ascending order.
func (g *Graph) AssetIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, 0, len(g.assets))
	for id := range g.assets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of assets.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.assets)
}

// RelationshipCount returns the total number of relationships.
func (g *Graph) RelationshipCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.relCount
}

// GetRelationships returns the outgoing relationships of id in insertion
// order. An asset without relationships yields an empty, non-nil slice;
// an unknown id yields UNKNOWN_ASSET.
func (g *Graph) GetRelationships(id string) ([]Relationship, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.assets[id]; !ok {
		return nil, apperr.UnknownAsset(id)
	}
	return cloneRels(g.outgoing[id]), nil
}

// Relationships returns a snapshot of the full relationship mapping. Every
// asset has an entry; assets without relationships map to an empty slice.
func (g *Graph) Relationships() map[string][]Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string][]Relationship, len(g.assets))
	for id := range g.assets {
		out[id] = cloneRels(g.outgoing[id])
	}
	return out
}

// RelationshipTypes returns the distinct relationship types used in the
// graph, sorted.
func (g *Graph) RelationshipTypes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, rels := range g.outgoing {
		for _, r := range rels {
			seen[r.Type] = struct{}{}
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

func cloneRels(rels []Relationship) []Relationship {
	if len(rels) == 0 {
		return []Relationship{}
	}
	return slices.Clone(rels)
}
