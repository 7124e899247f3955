package terrain

import (
	"sort"

	"github.com/pkg/errors"
)

// Point is one spline control point.
type Point struct {
	X, Y float64
}

// Spline remaps a noise value through Catmull-Rom segments between control
// points. Values outside the first and last point are clamped.
type Spline struct {
	points []Point
}

// NewSpline sorts the points by X. At least two points are required.
func NewSpline(points []Point) (Spline, error) {
	if len(points) < 2 {
		return Spline{}, errors.Errorf("spline needs at least 2 points, got %d", len(points))
	}
	p := append([]Point(nil), points...)
	sort.SliceStable(p, func(i, j int) bool { return p[i].X < p[j].X })
	return Spline{points: p}, nil
}

// SplineFromPairs builds a spline from [x, y] pairs as stored in settings.
func SplineFromPairs(pairs [][]float64) (Spline, error) {
	points := make([]Point, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return Spline{}, errors.Errorf("spline point %d has %d values", i, len(pair))
		}
		points = append(points, Point{X: pair[0], Y: pair[1]})
	}
	return NewSpline(points)
}

// Eval returns the spline value at t.
func (s Spline) Eval(t float64) float64 {
	pts := s.points
	n := len(pts)
	if t <= pts[0].X {
		return pts[0].Y
	}
	if t >= pts[n-1].X {
		return pts[n-1].Y
	}

	i := 1
	for i < n && pts[i].X <= t {
		i++
	}
	p1, p2 := pts[i-1], pts[i]
	p0, p3 := p1, p2
	if i > 1 {
		p0 = pts[i-2]
	}
	if i+1 < n {
		p3 = pts[i+1]
	}
	if p2.X == p1.X {
		return p2.Y
	}
	local := (t - p1.X) / (p2.X - p1.X)
	return catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, local)
}

func catmullRom(y0, y1, y2, y3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*y1 +
		(-y0+y2)*t +
		(2*y0-5*y1+4*y2-y3)*t2 +
		(-y0+3*y1-3*y2+y3)*t3)
}
