package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/cache"
	apperr "github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/trace"
)

func testGraph(t *testing.T) *asset.Graph {
	t.Helper()
	g := asset.New()
	for _, a := range []asset.Asset{
		{ID: "AAPL", Class: asset.ClassEquity},
		{ID: "MSFT", Class: asset.ClassEquity},
		{ID: "UST10Y", Class: asset.ClassBond},
	} {
		if err := g.AddAsset(a); err != nil {
			t.Fatal(err)
		}
	}
	for _, r := range []asset.Relationship{
		{Source: "AAPL", Target: "MSFT", Type: asset.TypeEquityCorrelation, Weight: 0.7},
		{Source: "MSFT", Target: "UST10Y", Type: asset.TypeSector, Weight: 0.2},
	} {
		if err := g.AddRelationship(r); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"pdf", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Dimensions != DefaultDimensions || o.Layout != DefaultLayout || o.Title != trace.DefaultTitle {
		t.Errorf("defaults = %+v", o)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want apperr.Code
	}{
		{"bad dims", Options{Dimensions: 4}, apperr.ErrCodeValidation},
		{"bad layout", Options{Layout: "hexagonal"}, apperr.ErrCodeUnsupportedLayout},
		{"bad iterations", Options{Iterations: -1}, apperr.ErrCodeValidation},
		{"bad format", Options{Formats: []string{"png"}}, apperr.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := apperr.GetCode(err); got != tt.want {
				t.Errorf("code = %q, want %q (err=%v)", got, tt.want, err)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), testGraph(t), Options{
		Layout:  "circular",
		Formats: []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.ID == "" || res.GraphHash == "" {
		t.Errorf("ID = %q, GraphHash = %q", res.ID, res.GraphHash)
	}
	if res.Stats.AssetCount != 3 || res.Stats.RelationshipCount != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}

	var fig trace.FigureSpec
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &fig); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if fig.Title != "Asset Relationships (3 assets, 2 relationships)" {
		t.Errorf("Title = %q", fig.Title)
	}
	if !bytes.Contains(res.Artifacts[FormatDOT], []byte(`"AAPL" -> "MSFT"`)) {
		t.Errorf("dot artifact missing edge:\n%s", res.Artifacts[FormatDOT])
	}
	if res.CacheInfo.FigureHit || res.CacheInfo.RenderHit {
		t.Errorf("NullCache reported hits: %+v", res.CacheInfo)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()
	opts := Options{Layout: "grid", Formats: []string{FormatJSON}}

	first, err := r.Execute(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.FigureHit {
		t.Error("first run hit the cache")
	}

	// A separately loaded copy of the same document shares cache entries.
	second, err := r.Execute(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.FigureHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v", second.CacheInfo)
	}
	if first.GraphHash != second.GraphHash {
		t.Error("identical documents hashed differently")
	}
	if !bytes.Equal(first.Artifacts[FormatJSON], second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.FigureHit {
		t.Error("refresh read the cache")
	}

	opts.Refresh = false
	opts.Filters = map[string]bool{asset.TypeSector: false}
	filtered, err := r.Execute(ctx, testGraph(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if filtered.CacheInfo.FigureHit || filtered.Stats.VisibleRelationships != 1 {
		t.Errorf("filtered run = %+v / %+v", filtered.CacheInfo, filtered.Stats)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	var nilGraph *asset.Graph

	if _, err := r.Execute(context.Background(), nilGraph, Options{}); !apperr.Is(err, apperr.ErrCodeGraphCapability) {
		t.Errorf("nil graph error = %v", err)
	}
	if _, err := r.Execute(context.Background(), nilGraph, Options{Layout: "bogus"}); !apperr.Is(err, apperr.ErrCodeUnsupportedLayout) {
		t.Errorf("layout checked after graph: %v", err)
	}
	_, err := r.Execute(context.Background(), testGraph(t), Options{Filters: map[string]bool{"weather": false}})
	if !apperr.Is(err, apperr.ErrCodeValidation) {
		t.Errorf("unknown filter error = %v", err)
	}
}

func TestRenderSVG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	fig, err := r.Compose(ctx, testGraph(t), Options{Layout: "circular"})
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Render(ctx, fig, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(out[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact = %.120s", out[FormatSVG])
	}
}
