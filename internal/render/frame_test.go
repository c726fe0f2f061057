package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radview/internal/annotation"
	"radview/internal/app"
	"radview/internal/overlay"
	"radview/internal/xray"
	"radview/pkg/geometry"
)

// uniformLayer builds a layer of constant 16-bit intensity.
func uniformLayer(id string, w, h int, v uint16) *xray.Layer {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: v})
		}
	}
	return xray.FromImage(id, img, geometry.Size{})
}

// frameState builds a state with a 100x100 mid-gray image identity-mapped
// onto a 100x100 canvas.
func frameState() *app.State {
	st := app.NewState()
	st.AddLayer(uniformLayer("img", 100, 100, 32768))
	st.SetCanvasSize(geometry.Size{Width: 100, Height: 100})
	st.SetZoom(1)
	st.SetPan(geometry.Point2D{})
	return st
}

// TestFrameEmptyState: with nothing loaded the frame is pure background.
func TestFrameEmptyState(t *testing.T) {
	f := Frame(app.NewState(), 100, 80)
	require.NotNil(t, f)
	assert.Equal(t, 100, f.Bounds().Dx())
	assert.Equal(t, 80, f.Bounds().Dy())
	assert.Equal(t, backgroundColor, f.RGBAAt(0, 0))
	assert.Equal(t, backgroundColor, f.RGBAAt(99, 79))
}

// TestFrameZeroSize never panics and returns an empty image.
func TestFrameZeroSize(t *testing.T) {
	f := Frame(app.NewState(), 0, 0)
	require.NotNil(t, f)
	assert.Equal(t, 0, f.Bounds().Dx())
}

// TestFrameWindowedBase: the identity-mapped image covers the canvas with
// its windowed display value.
func TestFrameWindowedBase(t *testing.T) {
	st := frameState()
	f := Frame(st, 100, 100)

	center := f.RGBAAt(50, 50)
	assert.InDelta(t, 127, float64(center.R), 1.5)
	assert.Equal(t, center.R, center.G)
	assert.Equal(t, center.R, center.B)
	assert.Equal(t, uint8(255), center.A)
	assert.NotEqual(t, backgroundColor, center)

	// A narrow window above the intensity drives the display to black.
	st.SetWindowing(xray.Windowing{Center: 60000, Width: 1000})
	f = Frame(st, 100, 100)
	assert.Equal(t, uint8(0), f.RGBAAt(50, 50).R)
}

// TestFramePanExposesBackground: panning the image away leaves background
// where it used to be.
func TestFramePanExposesBackground(t *testing.T) {
	st := frameState()
	st.SetPan(geometry.Point2D{X: 80, Y: 0})
	f := Frame(st, 100, 100)
	assert.Equal(t, backgroundColor, f.RGBAAt(5, 50), "left edge vacated by the pan")
	assert.NotEqual(t, backgroundColor, f.RGBAAt(95, 50))
}

// TestFrameDetectionOverlay: a detection box changes the frame.
func TestFrameDetectionOverlay(t *testing.T) {
	st := frameState()
	plain := Frame(st, 100, 100)

	st.SetDetections("img", []overlay.Detection{{
		BBox:       overlay.BBox{X1: 20, Y1: 20, X2: 60, Y2: 60},
		ClassName:  "nodule",
		Confidence: 0.87,
	}})
	boxed := Frame(st, 100, 100)
	assert.False(t, bytes.Equal(plain.Pix, boxed.Pix))
}

// TestFrameHeatmapBlend: a fully red heatmap at half opacity pushes the red
// channel above the others.
func TestFrameHeatmapBlend(t *testing.T) {
	st := frameState()
	hm := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			hm.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	st.SetHeatmap("img", &overlay.Heatmap{Image: hm, Opacity: 0.5})

	f := Frame(st, 100, 100)
	p := f.RGBAAt(50, 50)
	assert.Greater(t, p.R, p.G)
	assert.Greater(t, p.R, p.B)
}

// TestFrameAnnotationAndSelection: committing and selecting an entity both
// leave visible marks.
func TestFrameAnnotationAndSelection(t *testing.T) {
	st := frameState()
	plain := Frame(st, 100, 100)

	a := annotationAt(st, 50, 50)
	marked := Frame(st, 100, 100)
	assert.False(t, bytes.Equal(plain.Pix, marked.Pix))

	st.Select(app.Selection{Kind: app.SelectAnnotation, ID: a})
	selected := Frame(st, 100, 100)
	assert.False(t, bytes.Equal(marked.Pix, selected.Pix))
}

// annotationAt commits a marker and returns its id.
func annotationAt(st *app.State, x, y float64) string {
	a := annotation.New(annotation.Marker, []geometry.Point2D{{X: x, Y: y}},
		color.RGBA{R: 255, G: 255, B: 0, A: 255}, 2)
	st.AddAnnotation(a)
	return a.ID
}
