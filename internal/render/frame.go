// Package render is the headless compositor for a viewport: it turns the
// current state into an RGBA frame. The canvas widget hands the frame to the
// toolkit; the export command writes it straight to a PNG. Keeping the
// compositor free of any UI toolkit is what makes both share one code path.
package render

import (
	"image"
	"image/color"

	"radview/internal/annotation"
	"radview/internal/app"
	"radview/internal/transform"
	"radview/pkg/geometry"
)

// selectionColor is the dashed highlight around the selected entity.
var selectionColor = color.RGBA{R: 0, G: 255, B: 255, A: 255}

// Frame composites a full viewport frame at the given pixel size. Draw
// order: windowed base image, heatmap, AI detections, annotations,
// measurements, the in-progress draft, and the selection highlight on top.
func Frame(st *app.State, w, h int) *image.RGBA {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return output
	}

	view := st.View()
	imgDims := st.ImageDims()
	canvasDims := geometry.Size{Width: float64(w), Height: float64(h)}
	proj := func(p geometry.Point2D) geometry.Point2D {
		return transform.ImageToScreen(p, view, imgDims, canvasDims)
	}
	scale := labelScale(view.Zoom)

	inv := newInverseMap(view, imgDims, canvasDims)
	drawBase(output, WindowedBitmap(st.Layer(), st.Windowing()), inv)

	if hm := st.Heatmap(); hm != nil {
		drawHeatmap(output, hm.Image, hm.Opacity, inv)
	}

	for _, d := range st.Detections() {
		drawDetection(output, d, proj, scale)
	}
	for _, a := range st.Annotations() {
		drawAnnotation(output, a, proj, scale)
	}
	for _, m := range st.Measurements() {
		drawMeasurement(output, m, proj, scale)
	}

	drawDraft(output, st, proj, scale)
	drawSelection(output, st, proj)

	return output
}

// drawDraft renders the active tool's in-progress point buffer.
func drawDraft(output *image.RGBA, st *app.State, proj projector, scale int) {
	draft := st.Draft()
	if len(draft) == 0 {
		return
	}
	tool := st.Tool()

	if kind, ok := tool.AnnotationKind(); ok {
		tmpl := annotation.Annotation{
			Color:       st.DefaultColor(),
			StrokeWidth: st.DefaultStrokeWidth(),
		}
		drawAnnotationDraft(output, kind, draft, tmpl, proj, scale)
		return
	}
	if kind, ok := tool.MeasureKind(); ok {
		tmpl := annotation.Measurement{Color: st.DefaultColor()}
		drawMeasurementDraft(output, kind, draft, tmpl, proj)
	}
}

// drawSelection renders the dashed bounding box and point handles of the
// selected entity.
func drawSelection(output *image.RGBA, st *app.State, proj projector) {
	var points []geometry.Point2D
	var handleCol color.RGBA
	if a, ok := st.SelectedAnnotation(); ok {
		points = a.Points
		handleCol = a.Color
	} else if m, ok := st.SelectedMeasurement(); ok {
		points = m.Points
		handleCol = m.Color
	} else {
		return
	}
	if len(points) == 0 {
		return
	}

	screen := make([]geometry.Point2D, len(points))
	for i, p := range points {
		screen[i] = proj(p)
	}

	const pad = 6
	box := geometry.BoundingBox(screen).Inset(-pad)
	drawDashedRect(output, int(box.X), int(box.Y), int(box.X+box.Width), int(box.Y+box.Height), selectionColor)

	for _, p := range screen {
		drawHandle(output, int(p.X), int(p.Y), handleCol)
	}
}
