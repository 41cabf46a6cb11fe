package cache

// FigureKeyOpts are the options that change a composed figure.
type FigureKeyOpts struct {
	Dimensions int             `json:"dimensions"`
	Layout     string          `json:"layout"`
	Filters    map[string]bool `json:"filters,omitempty"`
	Iterations int             `json:"iterations,omitempty"`
	Title      string          `json:"title,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys.
type Keyer interface {
	// FigureKey keys a figure by the content hash of its graph document.
	FigureKey(graphHash string, opts FigureKeyOpts) string
	// ArtifactKey keys a rendered artifact by the hash of its figure.
	ArtifactKey(figureHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FigureKey returns "figure:<hash>".
func (DefaultKeyer) FigureKey(graphHash string, opts FigureKeyOpts) string {
	return hashKey("figure", graphHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", figureHash, opts)
}
