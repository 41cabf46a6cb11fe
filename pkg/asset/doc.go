// Package asset provides the in-memory model of financial assets and the
// typed, weighted relationships between them.
//
// # Overview
//
// A [Graph] owns two mappings: asset id to [Asset], and asset id to the
// ordered list of outgoing [Relationship] records. It is built once per
// data-load cycle by a loader (here [ReadGraph] decodes a JSON document) and
// is then treated as read-mostly: [Graph.AddAsset] and [Graph.AddRelationship]
// are the only writers, the visualization pipeline is a pure reader.
//
// # Basic Usage
//
//	g := asset.New()
//	g.AddAsset(asset.Asset{ID: "AAPL", Class: asset.ClassEquity})
//	g.AddAsset(asset.Asset{ID: "MSFT", Class: asset.ClassEquity})
//	g.AddRelationship(asset.Relationship{
//	    Source: "AAPL", Target: "MSFT",
//	    Type: asset.TypeEquityCorrelation, Weight: 0.82,
//	})
//
// Both endpoints of a relationship must already exist; the invariant is
// enforced at insertion and reported as an UNKNOWN_ASSET error.
//
// # Capabilities
//
// Consumers do not depend on *Graph directly. The relationship index builder
// accepts a [RelationshipSource] and the trace composer a [Reader]; both are
// checked once at the boundary with [CheckCapability].
//
// # Traversal
//
// [Graph.Traverse] expands outgoing relationships breadth-first up to a hop
// budget and records, per depth, the assets first reached there. Within a
// depth, assets reached through stronger relationships come first and equal
// weights are broken by ascending id, so the result is deterministic.
//
// # Concurrency
//
// Graph methods are safe for concurrent use. Reads share an RWMutex and
// return copies, so callers cannot mutate graph state through them.
package asset
