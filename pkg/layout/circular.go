package layout

import "math"

// Radius returns the circle radius used for n points: max(1, ln n).
func Radius(n int) float64 {
	if n <= 1 {
		return 1
	}
	return max(1, math.Log(float64(n)))
}

// CircularLayout places ids counter-clockwise on a circle starting at the
// positive x axis, the i-th id at angle 2*pi*i/n. A single id is placed at the
// origin.
func CircularLayout(ids []string) Positions {
	ids = unique(ids)
	n := len(ids)
	pos := make(Positions, n)
	if n == 1 {
		pos[ids[0]] = Point{}
		return pos
	}

	r := Radius(n)
	step := 2 * math.Pi / float64(n)
	for i, id := range ids {
		theta := step * float64(i)
		pos[id] = Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
	}
	return pos
}
