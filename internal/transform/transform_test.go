package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radview/pkg/geometry"
)

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinZoom, ClampZoom(0.01))
	assert.Equal(t, MaxZoom, ClampZoom(100))
	assert.Equal(t, 1.0, ClampZoom(1.0))
	assert.Equal(t, MinZoom, ClampZoom(MinZoom))
	assert.Equal(t, MaxZoom, ClampZoom(MaxZoom))
}

func TestNormalizeRotation(t *testing.T) {
	assert.InDelta(t, 90, NormalizeRotation(450), 1e-9)
	assert.InDelta(t, 270, NormalizeRotation(-90), 1e-9)
	assert.InDelta(t, 0, NormalizeRotation(720), 1e-9)
	assert.InDelta(t, 359.5, NormalizeRotation(-0.5), 1e-9)
}

// TestFitZoom checks the fit derivation: the smaller of the per-axis ratios
// with the 5% margin, still subject to the zoom bounds.
func TestFitZoom(t *testing.T) {
	img := geometry.Size{Width: 1600, Height: 1200}
	canvas := geometry.Size{Width: 800, Height: 600}
	assert.InDelta(t, 0.475, FitZoom(img, canvas), 1e-9)

	// A tiny image would fit at a huge zoom; the bound wins.
	tiny := geometry.Size{Width: 10, Height: 10}
	assert.Equal(t, MaxZoom, FitZoom(tiny, canvas))

	// A huge image fits below the minimum; the bound wins there too.
	huge := geometry.Size{Width: 1e6, Height: 1e6}
	assert.Equal(t, MinZoom, FitZoom(huge, canvas))
}

// TestRoundTrip projects points forward and back under a sweep of views and
// expects to land where it started.
func TestRoundTrip(t *testing.T) {
	img := geometry.Size{Width: 1024, Height: 768}
	canvas := geometry.Size{Width: 640, Height: 480}
	points := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 512, Y: 384},
		{X: 1024, Y: 768},
		{X: 13.5, Y: 700.25},
	}
	views := []View{
		DefaultView(),
		{Zoom: 2.5, Pan: geometry.Point2D{X: 40, Y: -25}},
		{Zoom: 0.3, Rotation: 90},
		{Zoom: 1.7, Rotation: 33, Pan: geometry.Point2D{X: -10, Y: 5}},
		{Zoom: 1.0, FlipH: true},
		{Zoom: 0.5, Rotation: 180, FlipV: true},
		{Zoom: 4, Rotation: 270, FlipH: true, FlipV: true, Pan: geometry.Point2D{X: 100, Y: 100}},
	}

	for _, v := range views {
		for _, p := range points {
			s := ImageToScreen(p, v, img, canvas)
			back := ScreenToImage(s, v, img, canvas)
			require.InDelta(t, p.X, back.X, 1e-6, "view %+v point %+v", v, p)
			require.InDelta(t, p.Y, back.Y, 1e-6, "view %+v point %+v", v, p)
		}
	}
}

// TestImageToScreenCenter: the image center always lands on the canvas
// center plus the pan offset, whatever the rotation or flips.
func TestImageToScreenCenter(t *testing.T) {
	img := geometry.Size{Width: 1000, Height: 500}
	canvas := geometry.Size{Width: 800, Height: 600}
	center := geometry.Point2D{X: 500, Y: 250}

	for _, v := range []View{
		{Zoom: 1},
		{Zoom: 2, Rotation: 45, FlipH: true},
		{Zoom: 0.5, Rotation: 200, FlipV: true, Pan: geometry.Point2D{X: 30, Y: -12}},
	} {
		s := ImageToScreen(center, v, img, canvas)
		assert.InDelta(t, 400+v.Pan.X, s.X, 1e-9)
		assert.InDelta(t, 300+v.Pan.Y, s.Y, 1e-9)
	}
}

// TestUnknownDimsIdentity: before an image or canvas size is known the
// mapping degrades to identity instead of producing garbage.
func TestUnknownDimsIdentity(t *testing.T) {
	p := geometry.Point2D{X: 12, Y: 34}
	v := View{Zoom: 2, Rotation: 90}

	out := ImageToScreen(p, v, geometry.Size{}, geometry.Size{Width: 100, Height: 100})
	assert.Equal(t, p, out)

	out = ScreenToImage(p, v, geometry.Size{Width: 100, Height: 100}, geometry.Size{})
	assert.Equal(t, p, out)
}

// TestZoomScalesDistances: a segment's screen length is its image length
// times the zoom.
func TestZoomScalesDistances(t *testing.T) {
	img := geometry.Size{Width: 400, Height: 400}
	canvas := geometry.Size{Width: 400, Height: 400}
	v := View{Zoom: 3}

	a := ImageToScreen(geometry.Point2D{X: 100, Y: 100}, v, img, canvas)
	b := ImageToScreen(geometry.Point2D{X: 150, Y: 100}, v, img, canvas)
	assert.InDelta(t, 150, a.Distance(b), 1e-9)
}

// TestFlipMirrors: flipping horizontally mirrors X around the canvas
// center and leaves Y alone.
func TestFlipMirrors(t *testing.T) {
	img := geometry.Size{Width: 400, Height: 400}
	canvas := geometry.Size{Width: 400, Height: 400}
	p := geometry.Point2D{X: 100, Y: 100}

	plain := ImageToScreen(p, View{Zoom: 1}, img, canvas)
	flipped := ImageToScreen(p, View{Zoom: 1, FlipH: true}, img, canvas)
	assert.InDelta(t, 400-plain.X, flipped.X, 1e-9)
	assert.InDelta(t, plain.Y, flipped.Y, 1e-9)
}
