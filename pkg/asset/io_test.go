package asset

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantAsset int
		wantRels  int
		wantErr   bool
		wantCode  apperr.Code
	}{
		{
			name:  "Empty",
			input: `{"assets": [], "relationships": []}`,
		},
		{
			name: "Simple",
			input: `{
				"assets": [{"id": "A", "class": "equity"}, {"id": "B", "class": "bond"}],
				"relationships": [{"source": "A", "target": "B", "type": "issuer", "weight": 0.4}]
			}`,
			wantAsset: 2,
			wantRels:  1,
		},
		{
			name:     "InvalidJSON",
			input:    `{not json`,
			wantErr:  true,
			wantCode: apperr.ErrCodeInvalidFormat,
		},
		{
			name:     "UnknownField",
			input:    `{"assets": [], "edges": []}`,
			wantErr:  true,
			wantCode: apperr.ErrCodeInvalidFormat,
		},
		{
			name:     "DanglingRelationship",
			input:    `{"assets": [{"id": "A"}], "relationships": [{"source": "A", "target": "B", "type": "sector"}]}`,
			wantErr:  true,
			wantCode: apperr.ErrCodeUnknownAsset,
		},
		{
			name:     "DuplicateAsset",
			input:    `{"assets": [{"id": "A"}, {"id": "A"}]}`,
			wantErr:  true,
			wantCode: apperr.ErrCodeDuplicateAsset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadGraph() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got := apperr.GetCode(err); got != tt.wantCode {
					t.Errorf("code = %q, want %q", got, tt.wantCode)
				}
				return
			}
			if g.Len() != tt.wantAsset {
				t.Errorf("assets = %d, want %d", g.Len(), tt.wantAsset)
			}
			if g.RelationshipCount() != tt.wantRels {
				t.Errorf("relationships = %d, want %d", g.RelationshipCount(), tt.wantRels)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	g := New()
	_ = g.AddAsset(Asset{ID: "B", Class: ClassBond, Attributes: map[string]any{"coupon": 4.5}})
	_ = g.AddAsset(Asset{ID: "A", Class: ClassEquity})
	_ = g.AddRelationship(Relationship{Source: "B", Target: "A", Type: TypeIssuer, Weight: 1})
	_ = g.AddRelationship(Relationship{Source: "A", Target: "B", Type: TypeSector, Weight: 0.3})

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	back, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	again, err := MarshalGraph(back)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("round trip is not stable:\n%s\n---\n%s", data, again)
	}

	doc := FromGraph(back)
	if doc.Assets[0].ID != "A" || doc.Relationships[0].Source != "A" {
		t.Errorf("document not ordered by id: %+v", doc)
	}
	b, _ := back.Asset("B")
	if b.Attributes["coupon"] != 4.5 {
		t.Errorf("attributes not preserved: %v", b.Attributes)
	}
}

func TestGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g := New()
	_ = g.AddAsset(Asset{ID: "EURUSD", Class: ClassCurrency})

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if a, ok := back.Asset("EURUSD"); !ok || a.Class != ClassCurrency {
		t.Errorf("asset not restored: %+v", a)
	}

	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}
