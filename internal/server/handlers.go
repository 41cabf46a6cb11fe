package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/assetgraph/pkg/asset"
	apperr "github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
	"github.com/matzehuels/assetgraph/pkg/trace"
	"github.com/matzehuels/assetgraph/pkg/validate"
)

type visualizeRequest struct {
	Graph      asset.Document  `json:"graph"`
	Layout     string          `json:"layout,omitempty"`
	Filters    map[string]any  `json:"filters,omitempty"`
	Iterations int             `json:"iterations,omitempty"`
	Title      string          `json:"title,omitempty"`
	Formats    []string        `json:"formats,omitempty"` // extra artifacts: dot, svg
}

type visualizeResponse struct {
	ID        string            `json:"id"`
	Figure    *trace.FigureSpec `json:"figure"`
	Cached    bool              `json:"cached"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

type traverseRequest struct {
	Graph asset.Document `json:"graph"`
	Asset string         `json:"asset"`
	Hops  int            `json:"hops"`
}

type traverseResponse struct {
	Root  string              `json:"root"`
	Hops  [][]string          `json:"hops"`
	Paths map[string][]string `json:"paths"`
	// Intermediates lists, for assets reached indirectly, the assets the
	// path passes through.
	Intermediates map[string][]string     `json:"intermediates,omitempty"`
	Relationships []asset.RelationshipDoc `json:"relationships"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	dims, err := strconv.Atoi(chi.URLParam(r, "dims"))
	if err != nil || (dims != 2 && dims != 3) {
		s.writeError(w, r, apperr.Invalid("dimensions", "2 or 3", chi.URLParam(r, "dims")))
		return
	}

	var req visualizeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.defaults
	opts.Dimensions = dims
	if req.Layout != "" {
		opts.Layout = req.Layout
	}
	if req.Iterations != 0 {
		opts.Iterations = req.Iterations
	}
	if req.Title != "" {
		opts.Title = req.Title
	}
	opts.Formats = []string{pipeline.FormatJSON}
	for _, f := range req.Formats {
		if f != pipeline.FormatJSON {
			opts.Formats = append(opts.Formats, f)
		}
	}
	// Reject bad options before decoding the graph.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	g, err := asset.ToGraph(req.Graph)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// Every request decodes a fresh graph, so its index is never reused.
	defer s.runner.Index.Invalidate(g.ID())

	if opts.Filters, err = validate.FiltersAny(req.Filters, trace.KnownTypes(g)); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := visualizeResponse{ID: res.ID, Figure: res.Figure, Cached: res.CacheInfo.FigureHit}
	for format, data := range res.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTraverse(w http.ResponseWriter, r *http.Request) {
	var req traverseRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := asset.ToGraph(req.Graph)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer s.runner.Index.Invalidate(g.ID())

	n, err := s.runner.Traverse(r.Context(), g, req.Asset, req.Hops)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := traverseResponse{
		Root:          n.Root,
		Hops:          n.Hops,
		Paths:         make(map[string][]string),
		Relationships: make([]asset.RelationshipDoc, 0, len(n.Relationships)),
	}
	if resp.Hops == nil {
		resp.Hops = [][]string{}
	}
	for _, id := range n.Reachable() {
		resp.Paths[id] = n.Path(id)
		if via := n.Intermediates(id); len(via) > 0 {
			if resp.Intermediates == nil {
				resp.Intermediates = make(map[string][]string)
			}
			resp.Intermediates[id] = via
		}
	}
	for _, rel := range n.Relationships {
		resp.Relationships = append(resp.Relationships, asset.RelationshipDoc{
			Source: rel.Source, Target: rel.Target, Type: rel.Type, Weight: rel.Weight,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.New(apperr.ErrCodeInvalidFormat, "decode request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
