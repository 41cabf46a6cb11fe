package asset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

// =============================================================================
// Document - JSON Serialization Format
// =============================================================================

// Document is the canonical JSON form of a graph, used by the CLI, the HTTP
// host and cache keys. Assets are sorted by id and relationships grouped by
// source in the same order, so encoding a graph is deterministic.
type Document struct {
	Assets        []AssetDoc        `json:"assets"`
	Relationships []RelationshipDoc `json:"relationships"`
}

// AssetDoc is the serialized form of an Asset.
type AssetDoc struct {
	ID         string         `json:"id"`
	Class      AssetClass     `json:"class,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// RelationshipDoc is the serialized form of a Relationship.
type RelationshipDoc struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight,omitempty"`
}

// FromGraph converts a graph to its serialization format.
func FromGraph(g *Graph) Document {
	ids := g.AssetIDs()
	rels := g.Relationships()

	doc := Document{
		Assets:        make([]AssetDoc, 0, len(ids)),
		Relationships: make([]RelationshipDoc, 0, g.RelationshipCount()),
	}
	for _, id := range ids {
		a, _ := g.Asset(id)
		doc.Assets = append(doc.Assets, AssetDoc{ID: a.ID, Class: a.Class, Attributes: a.Attributes})
		for _, r := range rels[id] {
			doc.Relationships = append(doc.Relationships, RelationshipDoc{
				Source: r.Source,
				Target: r.Target,
				Type:   r.Type,
				Weight: r.Weight,
			})
		}
	}
	return doc
}

// ToGraph builds a graph from a document. Assets are added before
// relationships; the first failing insertion is returned with its position.
func ToGraph(doc Document) (*Graph, error) {
	g := New()
	for i, a := range doc.Assets {
		if err := g.AddAsset(Asset{ID: a.ID, Class: a.Class, Attributes: a.Attributes}); err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
	}
	for i, r := range doc.Relationships {
		rel := Relationship{Source: r.Source, Target: r.Target, Type: r.Type, Weight: r.Weight}
		if err := g.AddRelationship(rel); err != nil {
			return nil, fmt.Errorf("relationship %d (%s→%s): %w", i, r.Source, r.Target, err)
		}
	}
	return g, nil
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromGraph(g))
}

// ReadGraph decodes a JSON document from an io.Reader into a graph.
// Unknown fields are rejected so typos in documents surface early.
func ReadGraph(r io.Reader) (*Graph, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode graph document")
	}
	return ToGraph(doc)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraphFile writes a graph to a JSON file.
func WriteGraphFile(g *Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
