// Package overlay defines the AI-produced overlay records the viewport
// renders on top of a radiograph. The engine never mutates these; detection
// and heatmap generation happen in an external inference service that hands
// finished results over after its fetch completes.
package overlay

import (
	"image"

	"radview/pkg/geometry"
)

// BBox is an axis-aligned detection box in image-space pixel coordinates.
type BBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Rect returns the box as a normalized geometry.Rect.
func (b BBox) Rect() geometry.Rect {
	return geometry.RectFromCorners(
		geometry.Point2D{X: b.X1, Y: b.Y1},
		geometry.Point2D{X: b.X2, Y: b.Y2},
	)
}

// Detection is one AI finding on an image.
type Detection struct {
	BBox       BBox    `json:"bbox"`
	ClassID    int     `json:"class_id"`
	ClassName  string  `json:"class_name,omitempty"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source,omitempty"`
}

// Label returns the display label for the detection box.
func (d Detection) Label() string {
	if d.ClassName != "" {
		return d.ClassName
	}
	return ""
}

// Heatmap is a pre-rendered raster aligned 1:1 with the base image's pixel
// grid, composited with configurable opacity through the same view
// transform as the base image.
type Heatmap struct {
	Image   image.Image
	Opacity float64 // 0 (hidden) .. 1 (opaque)
}
