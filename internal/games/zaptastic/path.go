package zaptastic

import (
	"sort"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Path is a polyline relative to its starting point, sampled by arc length.
type Path struct {
	points []core.Vec2 // points[0] is always the origin
	cum    []float64   // cumulative length at each point
}

// StraightPath runs from the origin to end.
func StraightPath(end core.Vec2) *Path {
	return newPath([]core.Vec2{{}, end})
}

// CurvedPath is a cubic Bezier from the origin to end with control points
// c1 and c2, flattened into samples segments.
func CurvedPath(c1, c2, end core.Vec2, samples int) *Path {
	if samples < 1 {
		samples = 1
	}
	pts := make([]core.Vec2, 0, samples+1)
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		pts = append(pts, bezier(c1, c2, end, t))
	}
	return newPath(pts)
}

// bezier evaluates a cubic curve whose first point is the origin.
func bezier(c1, c2, end core.Vec2, t float64) core.Vec2 {
	u := 1 - t
	return c1.Scale(3 * u * u * t).
		Add(c2.Scale(3 * u * t * t)).
		Add(end.Scale(t * t * t))
}

func newPath(pts []core.Vec2) *Path {
	p := &Path{points: pts, cum: make([]float64, len(pts))}
	for i := 1; i < len(pts); i++ {
		p.cum[i] = p.cum[i-1] + pts[i].Sub(pts[i-1]).Len()
	}
	return p
}

// Length returns the total arc length.
func (p *Path) Length() float64 {
	return p.cum[len(p.cum)-1]
}

// Sample returns the offset and travel heading after covering distance d.
// done is true once d reaches the end of the path.
func (p *Path) Sample(d float64) (offset core.Vec2, heading float64, done bool) {
	total := p.Length()
	if d >= total {
		return p.points[len(p.points)-1], p.segmentHeading(len(p.points) - 1), true
	}
	if d < 0 {
		d = 0
	}

	// First point whose cumulative length exceeds d ends the segment
	i := sort.Search(len(p.cum), func(i int) bool { return p.cum[i] > d })
	if i == 0 {
		i = 1
	}
	seg := p.cum[i] - p.cum[i-1]
	t := 0.0
	if seg > 0 {
		t = (d - p.cum[i-1]) / seg
	}
	a, b := p.points[i-1], p.points[i]
	return a.Add(b.Sub(a).Scale(t)), p.segmentHeading(i), false
}

// segmentHeading returns the direction of the segment ending at point i,
// skipping degenerate segments.
func (p *Path) segmentHeading(i int) float64 {
	for ; i > 0; i-- {
		dir := p.points[i].Sub(p.points[i-1])
		if dir.Len() > 0 {
			return dir.Angle()
		}
	}
	return 0
}
