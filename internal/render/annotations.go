package render

import (
	"image"

	"radview/internal/annotation"
	"radview/pkg/geometry"
)

// projector maps an image-space point to screen space for the frame being
// drawn.
type projector func(geometry.Point2D) geometry.Point2D

// drawAnnotation renders one annotation in screen space. Entities keep
// image-space coordinates; the projection happens fresh every frame so they
// stay glued to anatomy under zoom, pan, rotation, and flips.
func drawAnnotation(output *image.RGBA, a annotation.Annotation, proj projector, scale int) {
	if len(a.Points) == 0 {
		return
	}
	thickness := int(a.StrokeWidth)
	if thickness < 1 {
		thickness = 1
	}

	switch a.Kind {
	case annotation.Freehand:
		for i := 0; i+1 < len(a.Points); i++ {
			p1 := proj(a.Points[i])
			p2 := proj(a.Points[i+1])
			drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), a.Color, thickness)
		}

	case annotation.Arrow:
		if len(a.Points) < 2 {
			return
		}
		p1 := proj(a.Points[0])
		p2 := proj(a.Points[1])
		drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), a.Color, thickness)
		drawArrowhead(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), a.Color, thickness)

	case annotation.Rectangle:
		if len(a.Points) < 2 {
			return
		}
		p1 := proj(a.Points[0])
		p2 := proj(a.Points[1])
		drawRectOutline(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), a.Color, thickness)

	case annotation.Ellipse:
		if len(a.Points) < 2 {
			return
		}
		p1 := proj(a.Points[0])
		p2 := proj(a.Points[1])
		drawEllipseOutline(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), a.Color, thickness)

	case annotation.Marker:
		p := proj(a.Points[0])
		drawCrosshair(output, int(p.X), int(p.Y), 8, a.Color, thickness)
		drawFilledCircle(output, int(p.X), int(p.Y), 2, a.Color)

	case annotation.Text:
		p := proj(a.Points[0])
		drawFilledCircle(output, int(p.X), int(p.Y), 2, a.Color)
		if a.Text != "" {
			drawText(output, a.Text, int(p.X)+6, int(p.Y)-5*scale/2, a.Color, scale)
		}
	}
}

// drawAnnotationDraft renders the in-progress buffer of an annotation tool
// as if it were committed, so the user sees the shape forming under the
// drag.
func drawAnnotationDraft(output *image.RGBA, kind annotation.Kind, draft []geometry.Point2D, a annotation.Annotation, proj projector, scale int) {
	a.Kind = kind
	a.Points = draft
	drawAnnotation(output, a, proj, scale)
}
