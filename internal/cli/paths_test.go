package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := New(io.Discard, log.InfoLevel).cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.cfg.Cache.Dir = "/srv/assetgraph"
	if dir, _ := c.cacheDir(); dir != "/srv/assetgraph" {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default json", "data/portfolio.json", "", []string{"json"},
			map[string]string{"json": "data/portfolio.figure.json"}},
		{"explicit single", "portfolio.json", "out.svg", []string{"svg"},
			map[string]string{"svg": "out.svg"}},
		{"multiple from input", "portfolio.json", "", []string{"json", "svg"},
			map[string]string{"json": "portfolio.figure.json", "svg": "portfolio.svg"}},
		{"multiple from base", "portfolio.json", "build/fig.out", []string{"dot", "svg"},
			map[string]string{"dot": "build/fig.dot", "svg": "build/fig.svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPaths(tt.input, tt.output, tt.formats)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("artifactPaths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
