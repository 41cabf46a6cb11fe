package layout

import "math"

// GridColumns returns ceil(sqrt(n)), the number of grid columns for n ids.
func GridColumns(n int) int {
	if n <= 0 {
		return 0
	}
	c := int(math.Ceil(math.Sqrt(float64(n))))
	// Guard against sqrt rounding for perfect squares of large n.
	for (c-1)*(c-1) >= n {
		c--
	}
	for c*c < n {
		c++
	}
	return c
}

// GridLayout places ids row-major on a grid of GridColumns(n) columns. Rows
// grow downwards: id i lands at (i mod cols, -(i div cols)).
func GridLayout(ids []string) Positions {
	ids = unique(ids)
	cols := GridColumns(len(ids))
	pos := make(Positions, len(ids))
	for i, id := range ids {
		pos[id] = Point{X: float64(i % cols), Y: -float64(i / cols)}
	}
	return pos
}
