// Public domain.

package geom

import "math"

// RAWrapThreshold is the consecutive-vertex RA jump, in degrees, taken to
// indicate that a polygon edge crosses the RA 0/360 discontinuity.  A jump
// this large cannot arise from a genuine source footprint, which is tiny
// relative to the sphere.  The heuristic is untested for footprints within
// their own radius of a celestial pole, where RA changes rapidly for
// reasons unrelated to the discontinuity.
const RAWrapThreshold = 300

// SplitRA returns the polygon unchanged in a one-element slice when no
// edge crosses the RA 0/360 discontinuity.  When a crossing is detected it
// partitions the vertex sequence into two contiguous sub-polygons, one per
// side of the discontinuity, each expressed in a locally continuous RA
// domain: first the vertices below 180 degrees, then those above.
func SplitRA(p Polygon) []Polygon {
	wraps := false
	for i, v := range p {
		w := p[(i+1)%len(p)]
		if math.Abs(w.RA-v.RA) > RAWrapThreshold {
			wraps = true
			break
		}
	}
	if !wraps {
		return []Polygon{p}
	}
	// Rotate the sequence to start on a low-side vertex following a
	// crossing, then collect the two contiguous runs.
	start := 0
	for i, v := range p {
		prev := p[(i+len(p)-1)%len(p)]
		if v.RA < 180 && math.Abs(v.RA-prev.RA) > RAWrapThreshold {
			start = i
			break
		}
	}
	var low, high Polygon
	for i := range p {
		v := p[(start+i)%len(p)]
		if v.RA < 180 {
			low = append(low, v)
		} else {
			high = append(high, v)
		}
	}
	return []Polygon{low, high}
}
