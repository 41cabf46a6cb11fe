package asset

import (
	"math"
	"sync"
	"testing"

	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, a := range []Asset{
		{ID: "A", Class: ClassEquity},
		{ID: "B", Class: ClassEquity},
		{ID: "C", Class: ClassBond},
	} {
		if err := g.AddAsset(a); err != nil {
			t.Fatalf("AddAsset(%s): %v", a.ID, err)
		}
	}
	if err := g.AddRelationship(Relationship{Source: "A", Target: "B", Type: TypeEquityCorrelation, Weight: 0.9}); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}
	if err := g.AddRelationship(Relationship{Source: "B", Target: "C", Type: TypeSector, Weight: 0.5}); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}
	return g
}

func TestAddAsset(t *testing.T) {
	tests := []struct {
		name     string
		setup    []Asset
		add      Asset
		wantCode apperr.Code
	}{
		{"valid", nil, Asset{ID: "A"}, ""},
		{"duplicate", []Asset{{ID: "A"}}, Asset{ID: "A"}, apperr.ErrCodeDuplicateAsset},
		{"empty id", nil, Asset{ID: ""}, apperr.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, a := range tt.setup {
				if err := g.AddAsset(a); err != nil {
					t.Fatalf("setup: %v", err)
				}
			}
			err := g.AddAsset(tt.add)
			if got := apperr.GetCode(err); got != tt.wantCode {
				t.Errorf("AddAsset() code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestAddAssetCopiesAttributes(t *testing.T) {
	g := New()
	attrs := map[string]any{"sector": "tech"}
	if err := g.AddAsset(Asset{ID: "A", Attributes: attrs}); err != nil {
		t.Fatal(err)
	}
	attrs["sector"] = "energy"

	a, _ := g.Asset("A")
	if a.Attributes["sector"] != "tech" {
		t.Errorf("stored attributes changed through caller map: %v", a.Attributes)
	}
	a.Attributes["sector"] = "energy"
	again, _ := g.Asset("A")
	if again.Attributes["sector"] != "tech" {
		t.Errorf("stored attributes changed through returned map: %v", again.Attributes)
	}
}

func TestAddRelationship(t *testing.T) {
	tests := []struct {
		name     string
		rel      Relationship
		wantCode apperr.Code
	}{
		{"valid", Relationship{Source: "A", Target: "B", Type: TypeSector, Weight: 1}, ""},
		{"unknown source", Relationship{Source: "X", Target: "B", Type: TypeSector}, apperr.ErrCodeUnknownAsset},
		{"unknown target", Relationship{Source: "A", Target: "X", Type: TypeSector}, apperr.ErrCodeUnknownAsset},
		{"empty type", Relationship{Source: "A", Target: "B"}, apperr.ErrCodeValidation},
		{"nan weight", Relationship{Source: "A", Target: "B", Type: TypeSector, Weight: math.NaN()}, apperr.ErrCodeValidation},
		{"inf weight", Relationship{Source: "A", Target: "B", Type: TypeSector, Weight: math.Inf(1)}, apperr.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			_ = g.AddAsset(Asset{ID: "A"})
			_ = g.AddAsset(Asset{ID: "B"})
			err := g.AddRelationship(tt.rel)
			if got := apperr.GetCode(err); got != tt.wantCode {
				t.Errorf("AddRelationship() code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
			wantCount := 0
			if tt.wantCode == "" {
				wantCount = 1
			}
			if g.RelationshipCount() != wantCount {
				t.Errorf("RelationshipCount() = %d, want %d", g.RelationshipCount(), wantCount)
			}
		})
	}
}

func TestGetRelationships(t *testing.T) {
	g := newTestGraph(t)

	rels, err := g.GetRelationships("A")
	if err != nil {
		t.Fatalf("GetRelationships(A): %v", err)
	}
	if len(rels) != 1 || rels[0].Target != "B" {
		t.Errorf("GetRelationships(A) = %v", rels)
	}

	rels, err = g.GetRelationships("C")
	if err != nil {
		t.Fatalf("GetRelationships(C): %v", err)
	}
	if rels == nil || len(rels) != 0 {
		t.Errorf("GetRelationships(C) = %#v, want empty non-nil slice", rels)
	}

	if _, err := g.GetRelationships("Z"); !apperr.Is(err, apperr.ErrCodeUnknownAsset) {
		t.Errorf("GetRelationships(Z) error = %v, want UNKNOWN_ASSET", err)
	}
}

func TestRelationshipsSnapshot(t *testing.T) {
	g := newTestGraph(t)
	rels := g.Relationships()

	if len(rels) != 3 {
		t.Fatalf("Relationships() has %d entries, want 3", len(rels))
	}
	if c, ok := rels["C"]; !ok || len(c) != 0 {
		t.Errorf("asset without relationships should map to empty slice, got %v (present=%v)", c, ok)
	}

	rels["A"][0].Target = "mutated"
	fresh, _ := g.GetRelationships("A")
	if fresh[0].Target != "B" {
		t.Error("mutating the snapshot changed graph state")
	}
}

func TestAccessors(t *testing.T) {
	g := newTestGraph(t)

	if got := g.AssetIDs(); len(got) != 3 || got[0] != "A" || got[2] != "C" {
		t.Errorf("AssetIDs() = %v", got)
	}
	if got := g.RelationshipTypes(); len(got) != 2 || got[0] != TypeEquityCorrelation || got[1] != TypeSector {
		t.Errorf("RelationshipTypes() = %v", got)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if g.Version() != 5 {
		t.Errorf("Version() = %d, want 5", g.Version())
	}
	if g.ID() == "" || g.ID() == New().ID() {
		t.Errorf("ID() should be unique and non-empty: %q", g.ID())
	}
}

func TestCheckCapability(t *testing.T) {
	var nilGraph *Graph
	tests := []struct {
		name    string
		src     RelationshipSource
		wantErr bool
	}{
		{"graph", New(), false},
		{"nil interface", nil, true},
		{"typed nil", nilGraph, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCapability(tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckCapability() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.Is(err, apperr.ErrCodeGraphCapability) {
				t.Errorf("error code = %q, want GRAPH_CAPABILITY", apperr.GetCode(err))
			}
		})
	}
}

func TestKnownRelationshipTypes(t *testing.T) {
	for _, typ := range []string{TypeEquityCorrelation, TypeSector, TypeIssuer} {
		if !IsKnownRelationshipType(typ) {
			t.Errorf("IsKnownRelationshipType(%q) = false", typ)
		}
	}
	if IsKnownRelationshipType("friendship") {
		t.Error("IsKnownRelationshipType(friendship) = true")
	}
	types := KnownRelationshipTypes()
	types[0] = "mutated"
	if KnownRelationshipTypes()[0] == "mutated" {
		t.Error("KnownRelationshipTypes should return a copy")
	}
}

func TestConcurrentReads(t *testing.T) {
	g := newTestGraph(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Relationships()
			_, _ = g.GetRelationships("A")
			_ = g.AssetIDs()
		}()
	}
	wg.Wait()
}
