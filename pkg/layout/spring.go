package layout

import "math"

// Spring simulation limits.
const (
	DefaultIterations = 50
	MaxIterations     = 1000
	DefaultScale      = 1.0

	minDistance = 0.01
	maxWeight   = 1e6
)

// SpringOptions tunes the force-directed layouts. The zero value selects the
// defaults.
type SpringOptions struct {
	// Iterations is the simulation budget. Values <= 0 select
	// DefaultIterations; values above MaxIterations are clamped.
	Iterations int
	// Scale bounds the output: every coordinate lies in [-Scale, Scale].
	Scale float64
	// K is the optimal pairwise distance. Zero selects 1/sqrt(n).
	K float64
}

func (o SpringOptions) withDefaults(n int) SpringOptions {
	switch {
	case o.Iterations <= 0:
		o.Iterations = DefaultIterations
	case o.Iterations > MaxIterations:
		o.Iterations = MaxIterations
	}
	if !(o.Scale > 0) || math.IsInf(o.Scale, 0) {
		o.Scale = DefaultScale
	}
	if !(o.K > 0) || math.IsInf(o.K, 0) {
		o.K = 1 / math.Sqrt(float64(max(n, 1)))
	}
	return o
}

type vec [3]float64

func (a vec) sub(b vec) vec       { return vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a vec) add(b vec) vec       { return vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a vec) scale(s float64) vec { return vec{a[0] * s, a[1] * s, a[2] * s} }
func (a vec) norm() float64       { return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2]) }

// Spring3D runs a Fruchterman-Reingold simulation in three dimensions.
//
// Nodes start on a Fibonacci sphere in id order, so the result depends only on
// the inputs. Each step applies repulsion k²/d between every pair and
// attraction d²/k·|w| along each edge, then moves each node by at most the
// current temperature, which cools linearly to zero. The final layout is
// centered and rescaled into [-Scale, Scale].
//
// Edges touching ids outside the input and self-loops are ignored. Non-finite
// weights count as 1 and the combined weight of a pair is capped at 1e6.
func Spring3D(ids []string, edges []Edge, opts SpringOptions) Positions {
	ids = unique(ids)
	n := len(ids)
	pos := make(Positions, n)
	if n == 0 {
		return pos
	}
	if n == 1 {
		pos[ids[0]] = Point{}
		return pos
	}
	opts = opts.withDefaults(n)

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}
	weights := make([]map[int]float64, n)
	for _, e := range edges {
		i, ok1 := index[e.Source]
		j, ok2 := index[e.Target]
		if !ok1 || !ok2 || i == j {
			continue
		}
		w := e.Weight
		if math.IsNaN(w) || math.IsInf(w, 0) {
			w = 1
		}
		w = math.Abs(w)
		if weights[i] == nil {
			weights[i] = make(map[int]float64)
		}
		if weights[j] == nil {
			weights[j] = make(map[int]float64)
		}
		w = min(weights[i][j]+w, maxWeight)
		weights[i][j] = w
		weights[j][i] = w
	}

	p := fibonacciSphere(n)
	k := opts.K
	k2 := k * k
	temp := 0.1
	cool := temp / float64(opts.Iterations+1)

	disp := make([]vec, n)
	for range opts.Iterations {
		clear(disp)
		for i := range n {
			for j := i + 1; j < n; j++ {
				delta := p[i].sub(p[j])
				d := max(delta.norm(), minDistance)
				f := k2 / d
				if w := weights[i][j]; w != 0 {
					f -= d * d / k * w
				}
				step := delta.scale(f / d)
				disp[i] = disp[i].add(step)
				disp[j] = disp[j].sub(step)
			}
		}
		for i := range n {
			l := max(disp[i].norm(), minDistance)
			move := min(l, temp)
			p[i] = p[i].add(disp[i].scale(move / l))
		}
		temp -= cool
	}

	rescale(p, opts.Scale)
	for i, id := range ids {
		pos[id] = Point{X: p[i][0], Y: p[i][1], Z: p[i][2]}
	}
	return pos
}

// Spring2D runs Spring3D and drops the z coordinate, so the 2D and 3D views of
// a graph agree. Ids missing from the 3D result are skipped.
func Spring2D(ids []string, edges []Edge, opts SpringOptions) Positions {
	full := Spring3D(ids, edges, opts)
	pos := make(Positions, len(full))
	for _, id := range ids {
		pt, ok := full[id]
		if !ok {
			continue
		}
		pos[id] = Point{X: pt.X, Y: pt.Y}
	}
	return pos
}

// fibonacciSphere spreads n points evenly over the unit sphere.
func fibonacciSphere(n int) []vec {
	golden := math.Pi * (3 - math.Sqrt(5))
	p := make([]vec, n)
	for i := range n {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(max(0, 1-y*y))
		phi := golden * float64(i)
		p[i] = vec{r * math.Cos(phi), y, r * math.Sin(phi)}
	}
	return p
}

// rescale centers p at the origin and scales it so the largest absolute
// coordinate equals s. A layout collapsed to a point stays at the origin.
func rescale(p []vec, s float64) {
	var mean vec
	for _, v := range p {
		mean = mean.add(v)
	}
	mean = mean.scale(1 / float64(len(p)))

	var lim float64
	for i := range p {
		p[i] = p[i].sub(mean)
		lim = max(lim, math.Abs(p[i][0]), math.Abs(p[i][1]), math.Abs(p[i][2]))
	}
	if lim < 1e-12 || math.IsNaN(lim) || math.IsInf(lim, 0) {
		clear(p)
		return
	}
	for i := range p {
		p[i] = p[i].scale(s / lim)
	}
}
