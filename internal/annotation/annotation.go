// Package annotation defines the diagnostic annotation and measurement
// entities drawn over a radiograph. All entity coordinates are in image
// space; renderers project them to screen space at draw time so the entities
// themselves never depend on the current view.
package annotation

import (
	"image/color"

	"github.com/google/uuid"

	"radview/pkg/geometry"
)

// Kind identifies the shape of an annotation.
type Kind string

const (
	Freehand  Kind = "freehand"
	Arrow     Kind = "arrow"
	Ellipse   Kind = "ellipse"
	Rectangle Kind = "rectangle"
	Text      Kind = "text"
	Marker    Kind = "marker"
)

// Annotation is a user-drawn graphic keyed to one image.
type Annotation struct {
	ID          string             `json:"id"`
	Kind        Kind               `json:"type"`
	Points      []geometry.Point2D `json:"points"`
	Color       color.RGBA         `json:"color"`
	StrokeWidth float64            `json:"stroke_width"`
	Text        string             `json:"text,omitempty"`
}

// New creates an annotation with a fresh ID. The points slice is copied so
// the caller's in-progress buffer can be reused.
func New(kind Kind, points []geometry.Point2D, col color.RGBA, strokeWidth float64) Annotation {
	pts := make([]geometry.Point2D, len(points))
	copy(pts, points)
	return Annotation{
		ID:          uuid.NewString(),
		Kind:        kind,
		Points:      pts,
		Color:       col,
		StrokeWidth: strokeWidth,
	}
}

// MinPoints returns the minimum number of points a valid annotation of this
// kind requires.
func (k Kind) MinPoints() int {
	switch k {
	case Marker, Text:
		return 1
	default:
		return 2
	}
}

// ExactPoints reports whether the kind requires exactly MinPoints points.
// Only freehand paths grow beyond the minimum.
func (k Kind) ExactPoints() bool {
	return k != Freehand
}

// Valid reports whether the annotation satisfies its kind's cardinality.
func (a Annotation) Valid() bool {
	min := a.Kind.MinPoints()
	if len(a.Points) < min {
		return false
	}
	if a.Kind.ExactPoints() && len(a.Points) != min {
		return false
	}
	return true
}

// Translate moves every point by the given image-space delta.
func (a *Annotation) Translate(d geometry.Point2D) {
	for i := range a.Points {
		a.Points[i] = a.Points[i].Add(d)
	}
}

// Bounds returns the image-space bounding box of the annotation.
func (a Annotation) Bounds() geometry.Rect {
	return geometry.BoundingBox(a.Points)
}

// Hit reports whether the image-space point p lies on the annotation's
// geometry, within tol (also image-space).
func (a Annotation) Hit(p geometry.Point2D, tol float64) bool {
	switch a.Kind {
	case Marker, Text:
		return len(a.Points) >= 1 && p.Distance(a.Points[0]) <= tol
	case Freehand:
		for i := 0; i+1 < len(a.Points); i++ {
			if geometry.DistanceToSegment(p, a.Points[i], a.Points[i+1]) <= tol {
				return true
			}
		}
		return false
	case Arrow:
		if len(a.Points) < 2 {
			return false
		}
		return geometry.DistanceToSegment(p, a.Points[0], a.Points[1]) <= tol
	case Rectangle, Ellipse:
		if len(a.Points) < 2 {
			return false
		}
		// Outline hit: inside the outer box but not well inside the inner box.
		r := geometry.RectFromCorners(a.Points[0], a.Points[1])
		return r.Inset(-tol).Contains(p) && !r.Inset(tol).Contains(p)
	default:
		return false
	}
}
