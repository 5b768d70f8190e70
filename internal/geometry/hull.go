package geometry

import (
	"sort"

	"github.com/golang/geo/r2"
)

// ConvexHull returns the convex hull of the ring's points in counterclockwise
// order (with Y pointing down this is clockwise on screen), without
// collinear points. Inputs with fewer than three distinct points are returned
// deduplicated.
func ConvexHull(p Polygon) Polygon {
	pts := toR2(p)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	uniq := pts[:0]
	for i, pt := range pts {
		if i == 0 || pt != uniq[len(uniq)-1] {
			uniq = append(uniq, pt)
		}
	}
	if len(uniq) < 3 {
		return fromR2(uniq)
	}

	hull := make([]r2.Point, 0, 2*len(uniq))
	for _, pt := range uniq {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		pt := uniq[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}
	return fromR2(hull[:len(hull)-1])
}

func turn(o, a, b r2.Point) float64 {
	return a.Sub(o).Cross(b.Sub(o))
}
