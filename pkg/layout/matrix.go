package layout

// Matrix is a dense row-major numeric matrix. Row i of a position matrix holds
// the coordinates of the i-th placed id.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns element (i, j).
func (m Matrix) At(i, j int) float64 { return m.Data[i*m.Cols+j] }

// Set assigns element (i, j).
func (m Matrix) Set(i, j int, v float64) { m.Data[i*m.Cols+j] = v }

// Row returns row i. The slice aliases the matrix storage.
func (m Matrix) Row(i int) []float64 { return m.Data[i*m.Cols : (i+1)*m.Cols] }

// Slices returns a copy of m as nested slices.
func (m Matrix) Slices() [][]float64 {
	out := make([][]float64, m.Rows)
	for i := range out {
		out[i] = append([]float64(nil), m.Row(i)...)
	}
	return out
}

// Matrix builds a position matrix for ids with cols columns (2 drops Z, 3
// keeps it). Ids without a position are skipped; the ids that were placed are
// returned alongside in row order. cols is clamped to [0, 3].
func (p Positions) Matrix(ids []string, cols int) (Matrix, []string) {
	cols = max(0, min(cols, 3))
	placed := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := p[id]; ok {
			placed = append(placed, id)
		}
	}
	m := NewMatrix(len(placed), cols)
	for i, id := range placed {
		pt := p[id]
		coords := [...]float64{pt.X, pt.Y, pt.Z}
		copy(m.Row(i), coords[:cols])
	}
	return m, placed
}
