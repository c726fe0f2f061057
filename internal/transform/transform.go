// Package transform is the single coordinate pipeline between image space
// and screen space. Every renderer (raster, annotation, measurement,
// detection, heatmap) projects through this package; nothing else in the
// application is allowed to hand-roll the view transform, or the layers
// desynchronize under rotation and flips.
package transform

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"radview/pkg/geometry"
)

const (
	// MinZoom and MaxZoom bound the stored zoom factor.
	MinZoom = 0.1
	MaxZoom = 10.0

	// FitMargin leaves a small border when fitting the image to the canvas.
	FitMargin = 0.95
)

// View holds the geometric view parameters of one viewport. Window/level and
// invert are intensity concerns and live elsewhere; they do not affect
// coordinates.
type View struct {
	Zoom     float64           // clamped to [MinZoom, MaxZoom]
	Pan      geometry.Point2D  // screen-space offset from the canvas center
	Rotation float64           // degrees, normalized to [0, 360)
	FlipH    bool              // mirror across the vertical axis
	FlipV    bool              // mirror across the horizontal axis
}

// DefaultView returns the identity view.
func DefaultView() View {
	return View{Zoom: 1}
}

// ClampZoom bounds a zoom factor to [MinZoom, MaxZoom].
func ClampZoom(zoom float64) float64 {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// NormalizeRotation wraps an angle in degrees to [0, 360).
func NormalizeRotation(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// FitZoom derives the zoom that fits the whole image inside the canvas with
// a FitMargin border. Returns the current identity zoom of 1 when either
// dimension is unknown.
func FitZoom(imageDims, canvasDims geometry.Size) float64 {
	if imageDims.IsZero() || canvasDims.IsZero() {
		return 1
	}
	zoom := math.Min(canvasDims.Width/imageDims.Width, canvasDims.Height/imageDims.Height)
	return ClampZoom(zoom * FitMargin)
}

// signedScale returns the per-axis zoom factors, negated on flipped axes.
func signedScale(v View) (sx, sy float64) {
	sx, sy = v.Zoom, v.Zoom
	if v.FlipH {
		sx = -sx
	}
	if v.FlipV {
		sy = -sy
	}
	return sx, sy
}

// Matrix composes the forward (image -> screen) affine transform:
// center-origin translation, flip-aware zoom scale, rotation, then
// translation to the canvas center plus pan. Returns identity when either
// dimension set is unknown, so transforms before load are no-ops.
func Matrix(v View, imageDims, canvasDims geometry.Size) geometry.AffineTransform {
	if imageDims.IsZero() || canvasDims.IsZero() {
		return geometry.Identity()
	}
	sx, sy := signedScale(v)
	rad := v.Rotation * math.Pi / 180

	steps := []geometry.AffineTransform{
		geometry.Translation(-imageDims.Width/2, -imageDims.Height/2),
		geometry.Scaling(sx, sy),
		geometry.Rotation(rad),
		geometry.Translation(canvasDims.Width/2+v.Pan.X, canvasDims.Height/2+v.Pan.Y),
	}

	// Compose in homogeneous form; each later step multiplies on the left.
	acc := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	for _, s := range steps {
		var out mat.Dense
		out.Mul(homogeneous(s), acc)
		acc = &out
	}
	return fromDense(acc)
}

func homogeneous(t geometry.AffineTransform) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		t.A, t.B, t.TX,
		t.C, t.D, t.TY,
		0, 0, 1,
	})
}

func fromDense(m *mat.Dense) geometry.AffineTransform {
	return geometry.AffineTransform{
		A: m.At(0, 0), B: m.At(0, 1), TX: m.At(0, 2),
		C: m.At(1, 0), D: m.At(1, 1), TY: m.At(1, 2),
	}
}

// ImageToScreen maps an image-space point to screen space under the view.
func ImageToScreen(p geometry.Point2D, v View, imageDims, canvasDims geometry.Size) geometry.Point2D {
	return Matrix(v, imageDims, canvasDims).Apply(p)
}

// ScreenToImage maps a screen-space point back to image space. It applies
// the exact algebraic inverse of ImageToScreen in reverse order rather than
// a numeric matrix inversion, so the round trip is stable across the full
// zoom and rotation range.
func ScreenToImage(p geometry.Point2D, v View, imageDims, canvasDims geometry.Size) geometry.Point2D {
	if imageDims.IsZero() || canvasDims.IsZero() {
		return p
	}
	x := p.X - canvasDims.Width/2 - v.Pan.X
	y := p.Y - canvasDims.Height/2 - v.Pan.Y

	rad := -v.Rotation * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	rx := x*cos - y*sin
	ry := x*sin + y*cos

	sx, sy := signedScale(v)
	return geometry.Point2D{
		X: rx/sx + imageDims.Width/2,
		Y: ry/sy + imageDims.Height/2,
	}
}
