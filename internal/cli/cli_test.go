package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	apperr "github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/trace"
)

const testDoc = `{
  "assets": [
    {"id": "AAPL", "class": "equity"},
    {"id": "MSFT", "class": "equity"},
    {"id": "USD", "class": "currency"}
  ],
  "relationships": [
    {"source": "AAPL", "target": "MSFT", "type": "sector", "weight": 0.9},
    {"source": "MSFT", "target": "USD", "type": "currency_exposure", "weight": 0.4}
  ]
}`

func writeDoc(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := os.WriteFile(path, []byte(testDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, log.InfoLevel).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"json"}},
		{"svg", []string{"svg"}},
		{"json,dot,svg", []string{"json", "dot", "svg"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
			t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestParseFilters(t *testing.T) {
	got, err := parseFilters([]string{"sector=false", "issuer", " exchange = true "})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]bool{"sector": false, "issuer": true, "exchange": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseFilters mismatch (-want +got):\n%s", diff)
	}

	if f, err := parseFilters(nil); f != nil || err != nil {
		t.Errorf("parseFilters(nil) = %v, %v", f, err)
	}
	for _, bad := range []string{"=true", "sector=maybe"} {
		if _, err := parseFilters([]string{bad}); err == nil {
			t.Errorf("parseFilters(%q) should fail", bad)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	for _, name := range []string{"visualize", "layout", "traverse", "validate", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVisualizeCommand(t *testing.T) {
	input := writeDoc(t)
	base := filepath.Join(t.TempDir(), "fig")

	err := run(t, "visualize", input, "--layout", "circular", "--filter", "sector=false", "-f", "json,dot", "-o", base)
	if err != nil {
		t.Fatalf("visualize: %v", err)
	}

	data, err := os.ReadFile(base + ".figure.json")
	if err != nil {
		t.Fatal(err)
	}
	var fig trace.FigureSpec
	if err := json.Unmarshal(data, &fig); err != nil {
		t.Fatal(err)
	}
	if fig.AssetCount != 3 || fig.VisibleRelationships != 1 || fig.Layout != layout.Circular {
		t.Errorf("figure = %d assets, %d visible, layout %q", fig.AssetCount, fig.VisibleRelationships, fig.Layout)
	}
	if _, err := os.Stat(base + ".dot"); err != nil {
		t.Errorf("dot artifact: %v", err)
	}
}

func TestVisualizeCommandErrors(t *testing.T) {
	input := writeDoc(t)
	tests := []struct {
		name string
		args []string
		want apperr.Code
	}{
		{"bad layout", []string{"visualize", input, "--layout", "hexagonal", "--no-cache"}, apperr.ErrCodeUnsupportedLayout},
		{"bad dims", []string{"visualize", input, "--dims", "4", "--no-cache"}, apperr.ErrCodeValidation},
		{"bad format", []string{"visualize", input, "-f", "pdf", "--no-cache"}, apperr.ErrCodeInvalidInput},
		{"unknown filter", []string{"visualize", input, "--filter", "weather=false", "--no-cache"}, apperr.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.GetCode(run(t, tt.args...)); got != tt.want {
				t.Errorf("code = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeDoc(t)
	out := filepath.Join(t.TempDir(), "positions.json")
	if err := run(t, "layout", input, "--layout", "grid", "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var pos layout.Positions
	if err := json.Unmarshal(data, &pos); err != nil {
		t.Fatal(err)
	}
	want := layout.Positions{
		"AAPL": {X: 0, Y: 0},
		"MSFT": {X: 1, Y: 0},
		"USD":  {X: 0, Y: -1},
	}
	if diff := cmp.Diff(want, pos); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverseAndValidateCommands(t *testing.T) {
	input := writeDoc(t)
	if err := run(t, "traverse", input, "AAPL", "--hops", "2"); err != nil {
		t.Errorf("traverse: %v", err)
	}
	if err := run(t, "traverse", input, "NVDA"); !apperr.Is(err, apperr.ErrCodeUnknownAsset) {
		t.Errorf("traverse unknown root: %v", err)
	}
	if err := run(t, "validate", input); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestConfigFlag(t *testing.T) {
	input := writeDoc(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[visualize]\ndimensions = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "--config", cfgPath, "validate", input); !apperr.Is(err, apperr.ErrCodeValidation) {
		t.Errorf("invalid config error = %v", err)
	}
}
