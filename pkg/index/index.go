package index

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/assetgraph/pkg/asset"
	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

// Index groups each asset's outgoing relationships by relationship type.
// An Index is immutable once built and safe for concurrent readers.
type Index struct {
	graphID string
	version uint64
	groups  map[string]map[string][]asset.Relationship
}

// versioned is implemented by graphs that expose a mutation counter.
type versioned interface {
	Version() uint64
}

// Build derives a relationship index from src.
//
// Validation runs in order: src must satisfy the capability check
// (GRAPH_CAPABILITY), then, when ids is non-nil, every id must be a non-empty
// string (VALIDATION). A nil ids indexes every asset; a non-nil ids restricts
// the index to that allow-list, skipping ids the graph does not contain.
// Assets without relationships get an empty group rather than being omitted.
func Build(src asset.RelationshipSource, ids []string) (*Index, error) {
	if err := asset.CheckCapability(src); err != nil {
		return nil, err
	}
	if err := ValidateIDs(ids); err != nil {
		return nil, err
	}

	// Read the version before the mapping so a concurrent write can only make
	// the recorded version older than the data, never newer.
	var version uint64
	if v, ok := src.(versioned); ok {
		version = v.Version()
	}
	rels := src.Relationships()

	idx := &Index{
		graphID: src.ID(),
		version: version,
		groups:  make(map[string]map[string][]asset.Relationship, len(rels)),
	}

	if ids == nil {
		for id, list := range rels {
			idx.groups[id] = group(list)
		}
		return idx, nil
	}
	for _, id := range ids {
		if list, ok := rels[id]; ok {
			idx.groups[id] = group(list)
		}
	}
	return idx, nil
}

// ValidateIDs checks an optional allow-list: nil is accepted, otherwise every
// entry must be a non-empty string.
func ValidateIDs(ids []string) error {
	for i, id := range ids {
		if id == "" {
			return apperr.Invalid(fmt.Sprintf("asset_ids[%d]", i), "non-empty string", `""`)
		}
	}
	return nil
}

func group(list []asset.Relationship) map[string][]asset.Relationship {
	byType := make(map[string][]asset.Relationship)
	for _, r := range list {
		byType[r.Type] = append(byType[r.Type], r)
	}
	return byType
}

// GraphID returns the identity of the graph the index was built from.
func (x *Index) GraphID() string { return x.graphID }

// Version returns the graph version observed when the index was built, or 0
// if the graph does not expose one.
func (x *Index) Version() uint64 { return x.version }

// Len returns the number of indexed assets.
func (x *Index) Len() int { return len(x.groups) }

// RelationshipCount returns the total number of indexed relationships.
func (x *Index) RelationshipCount() int {
	n := 0
	for _, byType := range x.groups {
		for _, rels := range byType {
			n += len(rels)
		}
	}
	return n
}

// AssetIDs returns the indexed asset ids in ascending order.
func (x *Index) AssetIDs() []string {
	return slices.Sorted(maps.Keys(x.groups))
}

// Has reports whether id is indexed.
func (x *Index) Has(id string) bool {
	_, ok := x.groups[id]
	return ok
}

// Types returns the relationship types of id's outgoing relationships,
// sorted. Returns nil for an asset without relationships or not indexed.
func (x *Index) Types(id string) []string {
	byType := x.groups[id]
	if len(byType) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(byType))
}

// Relationships returns id's outgoing relationships of type typ in graph
// insertion order. The returned slice is a copy.
func (x *Index) Relationships(id, typ string) []asset.Relationship {
	return slices.Clone(x.groups[id][typ])
}

// Groups returns a copy of id's relationships keyed by type. An indexed asset
// without relationships yields an empty, non-nil map.
func (x *Index) Groups(id string) map[string][]asset.Relationship {
	byType, ok := x.groups[id]
	if !ok {
		return nil
	}
	out := make(map[string][]asset.Relationship, len(byType))
	for t, rels := range byType {
		out[t] = slices.Clone(rels)
	}
	return out
}

// Restrict returns a new index limited to ids. Ids that are not indexed are
// skipped. The receiver is not modified.
func (x *Index) Restrict(ids []string) *Index {
	out := &Index{
		graphID: x.graphID,
		version: x.version,
		groups:  make(map[string]map[string][]asset.Relationship, len(ids)),
	}
	for _, id := range ids {
		if byType, ok := x.groups[id]; ok {
			out.groups[id] = byType
		}
	}
	return out
}

// Equal reports whether two indices hold the same groups for the same graph.
func (x *Index) Equal(other *Index) bool {
	if x == nil || other == nil {
		return x == other
	}
	if x.graphID != other.graphID {
		return false
	}
	return maps.EqualFunc(x.groups, other.groups, func(a, b map[string][]asset.Relationship) bool {
		return maps.EqualFunc(a, b, slices.Equal[[]asset.Relationship])
	})
}
