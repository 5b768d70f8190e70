package geometry

import (
	"github.com/golang/geo/r2"
)

// startIterations bounds the search for a pair of far-apart split points.
const startIterations = 3

// Simplify reduces a closed ring with the Douglas–Peucker algorithm. No
// dropped point lies farther than epsilon from the simplified ring, and the
// result never has more vertices than the input.
//
// The ring is split at two mutually distant points and each half is reduced
// as an open polyline. On a pixel boundary a split point can land in the
// middle of an edge, so a final pass drops vertices that lie within epsilon
// of the segment joining their neighbors.
func Simplify(p Polygon, epsilon float64) Polygon {
	n := len(p)
	if n < 3 {
		out := make(Polygon, n)
		copy(out, p)
		return out
	}
	pts := toR2(p)

	a, b := 0, 0
	best := 0.0
	cur := 0
	for iter := 0; iter < startIterations; iter++ {
		far, dist := farthestFrom(pts, cur)
		if dist <= best {
			break
		}
		best = dist
		a, b = cur, far
		cur = far
	}
	if a == b {
		return Polygon{p[0]}
	}

	first := approxOpen(ringSlice(pts, a, b), epsilon)
	second := approxOpen(ringSlice(pts, b, a), epsilon)

	out := make([]r2.Point, 0, len(first)+len(second))
	out = append(out, first[:len(first)-1]...)
	out = append(out, second[:len(second)-1]...)
	return fromR2(dropCollinear(out, epsilon))
}

// dropCollinear walks the closed ring once and removes each vertex p whose
// distance to the chord between the last kept vertex and the next vertex is
// at most epsilon/sqrt(2), provided the chord is not axis aligned and p does
// not turn back on itself. The vertex after a removed one is kept without a
// test. The ring never shrinks below three vertices.
func dropCollinear(pts []r2.Point, epsilon float64) []r2.Point {
	n := len(pts)
	if n <= 3 {
		return pts
	}
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = true
	}
	count := n
	start := pts[n-1]
	for i := 0; i < n && count > 3; i++ {
		p, next := pts[i], pts[(i+1)%n]
		chord := next.Sub(start)
		dist := p.Sub(start).Cross(chord)
		inner := p.Sub(start).Dot(next.Sub(p))
		if dist*dist <= 0.5*epsilon*epsilon*chord.Dot(chord) &&
			chord.X != 0 && chord.Y != 0 && inner >= 0 {
			keep[i] = false
			count--
			start = next
			i++
			continue
		}
		start = p
	}

	out := make([]r2.Point, 0, count)
	for i, pt := range pts {
		if keep[i] {
			out = append(out, pt)
		}
	}
	return out
}

func farthestFrom(pts []r2.Point, idx int) (int, float64) {
	far, best := idx, 0.0
	for k, pt := range pts {
		if d := pt.Sub(pts[idx]).Norm(); d > best {
			far, best = k, d
		}
	}
	return far, best
}

// ringSlice walks the ring from index from to index to, inclusive, wrapping
// around the end.
func ringSlice(pts []r2.Point, from, to int) []r2.Point {
	n := len(pts)
	out := []r2.Point{pts[from]}
	for k := (from + 1) % n; ; k = (k + 1) % n {
		out = append(out, pts[k])
		if k == to {
			return out
		}
	}
}

// approxOpen is the recursive Douglas–Peucker step on an open polyline. The
// endpoints are always kept.
func approxOpen(pts []r2.Point, epsilon float64) []r2.Point {
	if len(pts) < 3 {
		return pts
	}
	first, last := pts[0], pts[len(pts)-1]
	idx, dmax := 0, 0.0
	for k := 1; k < len(pts)-1; k++ {
		if d := segmentDistance(pts[k], first, last); d > dmax {
			idx, dmax = k, d
		}
	}
	if dmax <= epsilon {
		return []r2.Point{first, last}
	}
	left := approxOpen(pts[:idx+1], epsilon)
	right := approxOpen(pts[idx:], epsilon)
	out := make([]r2.Point, 0, len(left)+len(right)-1)
	out = append(out, left[:len(left)-1]...)
	return append(out, right...)
}

// segmentDistance is the perpendicular distance from p to the line through
// a and b, or the plain distance to a when a and b coincide.
func segmentDistance(p, a, b r2.Point) float64 {
	ab := b.Sub(a)
	length := ab.Norm()
	if length == 0 {
		return p.Sub(a).Norm()
	}
	cross := ab.Cross(p.Sub(a))
	if cross < 0 {
		cross = -cross
	}
	return cross / length
}
