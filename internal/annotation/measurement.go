package annotation

import (
	"image/color"

	"github.com/google/uuid"

	"radview/pkg/geometry"
)

// MeasureKind identifies a clinical measurement type.
type MeasureKind string

const (
	Distance  MeasureKind = "distance"
	Angle     MeasureKind = "angle"
	Area      MeasureKind = "area"
	CobbAngle MeasureKind = "cobb_angle"
)

// Measurement is a clinical measurement keyed to one image. Value and Unit
// are derived from Points and the image's pixel spacing; they are recomputed
// whenever a point moves.
type Measurement struct {
	ID     string             `json:"id"`
	Kind   MeasureKind        `json:"type"`
	Points []geometry.Point2D `json:"points"`
	Value  float64            `json:"value"`
	Unit   string             `json:"unit"`
	Color  color.RGBA         `json:"color"`
}

// NewMeasurement creates a measurement with a fresh ID. The points slice is
// copied; Value/Unit are left for the measure package to fill in.
func NewMeasurement(kind MeasureKind, points []geometry.Point2D, col color.RGBA) Measurement {
	pts := make([]geometry.Point2D, len(points))
	copy(pts, points)
	return Measurement{
		ID:     uuid.NewString(),
		Kind:   kind,
		Points: pts,
		Color:  col,
	}
}

// RequiredPoints returns the exact number of points the kind needs.
// Angle points are ordered (first, vertex, last); cobb angle points are two
// independent 2-point lines.
func (k MeasureKind) RequiredPoints() int {
	switch k {
	case Angle:
		return 3
	case CobbAngle:
		return 4
	default:
		return 2
	}
}

// MultiClick reports whether the kind is defined by discrete clicks rather
// than a single drag gesture.
func (k MeasureKind) MultiClick() bool {
	return k == Angle || k == CobbAngle
}

// Valid reports whether the measurement has its exact point count.
func (m Measurement) Valid() bool {
	return len(m.Points) == m.Kind.RequiredPoints()
}

// Translate moves every point by the given image-space delta.
func (m *Measurement) Translate(d geometry.Point2D) {
	for i := range m.Points {
		m.Points[i] = m.Points[i].Add(d)
	}
}

// Hit reports whether the image-space point p lies on the measurement's
// geometry within tol.
func (m Measurement) Hit(p geometry.Point2D, tol float64) bool {
	switch m.Kind {
	case Distance:
		if len(m.Points) < 2 {
			return false
		}
		return geometry.DistanceToSegment(p, m.Points[0], m.Points[1]) <= tol
	case Angle:
		if len(m.Points) < 3 {
			return false
		}
		return geometry.DistanceToSegment(p, m.Points[0], m.Points[1]) <= tol ||
			geometry.DistanceToSegment(p, m.Points[1], m.Points[2]) <= tol
	case Area:
		if len(m.Points) < 2 {
			return false
		}
		r := geometry.RectFromCorners(m.Points[0], m.Points[1])
		return r.Inset(-tol).Contains(p) && !r.Inset(tol).Contains(p)
	case CobbAngle:
		if len(m.Points) < 4 {
			return false
		}
		return geometry.DistanceToSegment(p, m.Points[0], m.Points[1]) <= tol ||
			geometry.DistanceToSegment(p, m.Points[2], m.Points[3]) <= tol
	default:
		return false
	}
}
