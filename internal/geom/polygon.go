// Public domain.

// Package geom renders source ellipses as sky-plane polygons and tests
// them for overlap.  Polygons live in the flat (RA, Dec) degree plane;
// they are valid proxies for spherical regions only while they are small
// relative to the sphere and free of the RA 0/360 discontinuity, which is
// what SplitRA guarantees.
package geom

// Vertex is a point in the sky plane, in degrees.
type Vertex struct {
	RA, Dec float64
}

// Polygon is a closed sequence of vertices.  The closing edge from the
// last vertex back to the first is implied.
type Polygon []Vertex

// Area returns the signed area of the polygon in square degrees.
// Counterclockwise winding in the (RA, Dec) plane gives positive area.
func (p Polygon) Area() float64 {
	var s float64
	for i, v := range p {
		w := p[(i+1)%len(p)]
		s += v.RA*w.Dec - w.RA*v.Dec
	}
	return s * .5
}

// Overlaps reports whether any polygon of set a intersects any polygon of
// set b with positive area.  Each set is the output of SplitRA, so every
// member is convex and wrap-free and the pairwise planar test is exact.
// Boundary tangency alone does not count as overlap.
func Overlaps(a, b []Polygon) bool {
	for _, pa := range a {
		for _, pb := range b {
			if overlapConvex(pa, pb) {
				return true
			}
		}
	}
	return false
}

// overlapConvex is a separating axis test on two convex polygons.
// The polygons overlap with positive area exactly when no edge normal of
// either polygon separates their projections.
func overlapConvex(p, q Polygon) bool {
	if len(p) == 0 || len(q) == 0 {
		return false
	}
	return !separatedByEdges(p, q) && !separatedByEdges(q, p)
}

func separatedByEdges(p, q Polygon) bool {
	for i, v := range p {
		w := p[(i+1)%len(p)]
		// outward-or-inward normal of edge v->w; orientation does not
		// matter for interval comparison
		nx := w.Dec - v.Dec
		ny := v.RA - w.RA
		if nx == 0 && ny == 0 {
			continue // repeated vertex
		}
		pmin, pmax := project(p, nx, ny)
		qmin, qmax := project(q, nx, ny)
		if pmax <= qmin || qmax <= pmin {
			return true
		}
	}
	return false
}

func project(p Polygon, nx, ny float64) (min, max float64) {
	min = p[0].RA*nx + p[0].Dec*ny
	max = min
	for _, v := range p[1:] {
		d := v.RA*nx + v.Dec*ny
		if d < min {
			min = d
		} else if d > max {
			max = d
		}
	}
	return
}
