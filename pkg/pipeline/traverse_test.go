package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/assetgraph/pkg/asset"
	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

func ringGraph(t *testing.T) *asset.Graph {
	t.Helper()
	g := asset.New()
	for _, id := range []string{"A", "B", "C", "D"} {
		if err := g.AddAsset(asset.Asset{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, r := range []asset.Relationship{
		{Source: "A", Target: "B", Type: asset.TypeSector, Weight: 0.8},
		{Source: "B", Target: "C", Type: asset.TypeIssuer, Weight: 0.5},
		{Source: "C", Target: "A", Type: asset.TypeSector, Weight: 0.3},
		{Source: "C", Target: "D", Type: asset.TypeSector, Weight: 0.1},
	} {
		if err := g.AddRelationship(r); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestTraverseNeighbourhood(t *testing.T) {
	r := NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	ctx := context.Background()
	g := ringGraph(t)

	tests := []struct {
		hops      int
		wantIDs   []string
		wantLinks []asset.Relationship
	}{
		{0, []string{"A"}, nil},
		{1, []string{"A", "B"}, []asset.Relationship{
			{Source: "A", Target: "B", Type: asset.TypeSector, Weight: 0.8},
		}},
		{2, []string{"A", "B", "C"}, []asset.Relationship{
			{Source: "A", Target: "B", Type: asset.TypeSector, Weight: 0.8},
			{Source: "B", Target: "C", Type: asset.TypeIssuer, Weight: 0.5},
			{Source: "C", Target: "A", Type: asset.TypeSector, Weight: 0.3},
		}},
	}
	for _, tt := range tests {
		n, err := r.Traverse(ctx, g, "A", tt.hops)
		if err != nil {
			t.Fatalf("hops %d: %v", tt.hops, err)
		}
		if diff := cmp.Diff(tt.wantIDs, n.Assets()); diff != "" {
			t.Errorf("hops %d: assets mismatch (-want +got):\n%s", tt.hops, diff)
		}
		if diff := cmp.Diff(tt.wantLinks, n.Relationships); diff != "" {
			t.Errorf("hops %d: relationships mismatch (-want +got):\n%s", tt.hops, diff)
		}
	}
	if r.Index.Builds() != 1 {
		t.Errorf("Builds = %d, want the full index reused across traversals", r.Index.Builds())
	}
}

func TestTraverseErrors(t *testing.T) {
	r := NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	ctx := context.Background()

	if _, err := r.Traverse(ctx, nil, "A", 1); !apperr.Is(err, apperr.ErrCodeGraphCapability) {
		t.Errorf("nil graph error = %v", err)
	}
	if _, err := r.Traverse(ctx, ringGraph(t), "Z", 1); !apperr.Is(err, apperr.ErrCodeUnknownAsset) {
		t.Errorf("unknown root error = %v", err)
	}
	if r.Index.Len() != 0 {
		t.Errorf("failed traversals cached %d indices", r.Index.Len())
	}
}
