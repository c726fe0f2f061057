// Package measure computes clinical measurement values from image-space
// points and the radiograph's physical pixel spacing (mm per pixel along
// each axis). Degenerate geometry never produces NaN: zero-length vectors
// yield a value of 0.
package measure

import (
	"math"

	"radview/internal/annotation"
	"radview/pkg/geometry"
)

// scaled applies per-axis pixel spacing to an image-space vector. A spacing
// of zero on either axis means the physical scale is unknown; the vector is
// returned in raw pixels.
func scaled(v geometry.Point2D, spacing geometry.Size) geometry.Point2D {
	if spacing.IsZero() {
		return v
	}
	return geometry.Point2D{X: v.X * spacing.Width, Y: v.Y * spacing.Height}
}

// Distance returns the physical length of the segment p1-p2 in millimeters,
// or in pixels when spacing is unknown.
func Distance(p1, p2 geometry.Point2D, spacing geometry.Size) float64 {
	return scaled(p2.Sub(p1), spacing).Norm()
}

// Angle returns the interior angle in degrees at vertex, formed by the rays
// vertex->p1 and vertex->p3. The result is in [0, 180].
func Angle(p1, vertex, p3 geometry.Point2D) float64 {
	v1 := p1.Sub(vertex)
	v2 := p3.Sub(vertex)
	n1 := v1.Norm()
	n2 := v2.Norm()
	if n1 == 0 || n2 == 0 {
		return 0
	}
	cos := v1.Dot(v2) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// CobbAngle returns the angle in degrees between the two independent lines
// a1-a2 and b1-b2, folded to [0, 90] with the supplementary angle when the
// raw difference exceeds 90.
func CobbAngle(a1, a2, b1, b2 geometry.Point2D) float64 {
	va := a2.Sub(a1)
	vb := b2.Sub(b1)
	if va.Norm() == 0 || vb.Norm() == 0 {
		return 0
	}
	diff := math.Atan2(vb.Y, vb.X) - math.Atan2(va.Y, va.X)
	deg := math.Abs(diff * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	if deg > 90 {
		deg = 180 - deg
	}
	return deg
}

// RectArea returns the physical area of the axis-aligned rectangle defined
// by two opposite corners, in mm² (or px² when spacing is unknown).
func RectArea(p1, p2 geometry.Point2D, spacing geometry.Size) float64 {
	d := scaled(p2.Sub(p1), spacing)
	return math.Abs(d.X) * math.Abs(d.Y)
}

// EllipseArea returns the physical area of the ellipse inscribed in the
// bounding rectangle of two opposite corners: pi * rx * ry.
func EllipseArea(p1, p2 geometry.Point2D, spacing geometry.Size) float64 {
	d := scaled(p2.Sub(p1), spacing)
	return math.Pi * math.Abs(d.X) / 2 * math.Abs(d.Y) / 2
}

// Update recomputes m.Value and m.Unit from its points. Called on creation
// and after every point move or handle resize. Measurements with the wrong
// point count are left untouched.
func Update(m *annotation.Measurement, spacing geometry.Size) {
	if !m.Valid() {
		return
	}
	physical := !spacing.IsZero()
	switch m.Kind {
	case annotation.Distance:
		m.Value = Distance(m.Points[0], m.Points[1], spacing)
		m.Unit = pick(physical, "mm", "px")
	case annotation.Angle:
		m.Value = Angle(m.Points[0], m.Points[1], m.Points[2])
		m.Unit = "°"
	case annotation.Area:
		m.Value = RectArea(m.Points[0], m.Points[1], spacing)
		m.Unit = pick(physical, "mm²", "px²")
	case annotation.CobbAngle:
		m.Value = CobbAngle(m.Points[0], m.Points[1], m.Points[2], m.Points[3])
		m.Unit = "°"
	}
}

func pick(physical bool, mm, px string) string {
	if physical {
		return mm
	}
	return px
}
