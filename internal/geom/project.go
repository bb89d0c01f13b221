// Public domain.

package geom

import "math"

const degRad = math.Pi / 180

// EllipseResolution is the number of vertices used to approximate an
// ellipse boundary.  The inscribed polygon underestimates the ellipse
// area by 1-sinc(2pi/n), about 0.64% at 32 vertices.
const EllipseResolution = 32

// WCS holds the linear coordinate header of a projection reference
// catalog: reference sky value (deg), reference pixel, and pixel scale
// on each axis (deg/pixel).
type WCS struct {
	Crval1, Crval2 float64
	Crpix1, Crpix2 float64
	Cdelt1, Cdelt2 float64
}

// Plane projects a sky position onto the tangent plane at the reference
// sky value (gnomonic), returning plane coordinates in degrees with the
// first axis increasing east.
func (w *WCS) Plane(ra, dec float64) (xi, eta float64) {
	sp, cp := math.Sincos(dec * degRad)
	sp0, cp0 := math.Sincos(w.Crval2 * degRad)
	sd, cd := math.Sincos((ra - w.Crval1) * degRad)
	den := sp*sp0 + cp*cp0*cd
	xi = cp * sd / den / degRad
	eta = (sp*cp0 - cp*sp0*cd) / den / degRad
	return
}

// Sky is the inverse of Plane.  The returned RA is wrapped to [0, 360).
func (w *WCS) Sky(xi, eta float64) (ra, dec float64) {
	xi *= degRad
	eta *= degRad
	sp0, cp0 := math.Sincos(w.Crval2 * degRad)
	rho := math.Hypot(xi, eta)
	if rho == 0 {
		return w.Crval1, w.Crval2
	}
	sc, cc := math.Sincos(math.Atan(rho))
	dec = math.Asin(cc*sp0+eta*sc*cp0/rho) / degRad
	ra = w.Crval1 +
		math.Atan2(xi*sc, rho*cp0*cc-eta*sp0*sc)/degRad
	ra = math.Mod(ra, 360)
	if ra < 0 {
		ra += 360
	}
	return
}

// Pix converts a sky position to pixel coordinates of the reference
// catalog.
func (w *WCS) Pix(ra, dec float64) (x, y float64) {
	xi, eta := w.Plane(ra, dec)
	return w.Crpix1 + xi/w.Cdelt1, w.Crpix2 + eta/w.Cdelt2
}

// EllipseVertices renders an ellipse as a closed, consistently wound sky
// polygon.  Center is (ra, dec) in degrees, maj and min are the full axis
// lengths in degrees, pa is the position angle of the major axis in
// degrees east of north.  The ellipse is constructed in the tangent plane
// of w, so the vertices carry the local cos(Dec) compression along RA and
// represent true angular shape.
func EllipseVertices(ra, dec, maj, min, pa float64, w *WCS) Polygon {
	xi0, eta0 := w.Plane(ra, dec)
	sa := maj * .5
	sb := min * .5
	sp, cp := math.Sincos(pa * degRad)
	p := make(Polygon, EllipseResolution)
	for i := range p {
		st, ct := math.Sincos(2 * math.Pi * float64(i) / EllipseResolution)
		east := sa*ct*sp + sb*st*cp
		north := sa*ct*cp - sb*st*sp
		p[i].RA, p[i].Dec = w.Sky(xi0+east, eta0+north)
	}
	return p
}
