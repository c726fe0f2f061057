package render

import (
	"image"
	"strconv"

	"radview/internal/annotation"
	"radview/pkg/geometry"
)

const measureThickness = 2

// formatValue renders a measurement value for its on-canvas label.
func formatValue(m annotation.Measurement) string {
	return strconv.FormatFloat(m.Value, 'f', 1, 64) + " " + m.Unit
}

// drawMeasurement renders one measurement with its value label.
func drawMeasurement(output *image.RGBA, m annotation.Measurement, proj projector, scale int) {
	pts := make([]geometry.Point2D, len(m.Points))
	for i, p := range m.Points {
		pts[i] = proj(p)
	}

	switch m.Kind {
	case annotation.Distance:
		if len(pts) < 2 {
			return
		}
		drawLine(output, int(pts[0].X), int(pts[0].Y), int(pts[1].X), int(pts[1].Y), m.Color, measureThickness)
		drawEndTicks(output, pts[0], pts[1], m)
		mid := pts[0].Midpoint(pts[1])
		drawTextCentered(output, formatValue(m), int(mid.X), int(mid.Y)-8, m.Color, scale)

	case annotation.Angle:
		if len(pts) < 3 {
			return
		}
		// Points are ordered first, vertex, last.
		drawLine(output, int(pts[1].X), int(pts[1].Y), int(pts[0].X), int(pts[0].Y), m.Color, measureThickness)
		drawLine(output, int(pts[1].X), int(pts[1].Y), int(pts[2].X), int(pts[2].Y), m.Color, measureThickness)
		drawTextCentered(output, formatValue(m), int(pts[1].X), int(pts[1].Y)+12, m.Color, scale)

	case annotation.Area:
		if len(pts) < 2 {
			return
		}
		drawRectOutline(output, int(pts[0].X), int(pts[0].Y), int(pts[1].X), int(pts[1].Y), m.Color, measureThickness)
		mid := pts[0].Midpoint(pts[1])
		drawTextCentered(output, formatValue(m), int(mid.X), int(mid.Y), m.Color, scale)

	case annotation.CobbAngle:
		if len(pts) < 4 {
			return
		}
		drawLine(output, int(pts[0].X), int(pts[0].Y), int(pts[1].X), int(pts[1].Y), m.Color, measureThickness)
		drawLine(output, int(pts[2].X), int(pts[2].Y), int(pts[3].X), int(pts[3].Y), m.Color, measureThickness)
		mid := pts[1].Midpoint(pts[2])
		drawTextCentered(output, formatValue(m), int(mid.X), int(mid.Y), m.Color, scale)
	}
}

// drawEndTicks draws short perpendicular caps at the ends of a distance
// line, caliper style.
func drawEndTicks(output *image.RGBA, p1, p2 geometry.Point2D, m annotation.Measurement) {
	d := p2.Sub(p1)
	n := d.Norm()
	if n == 0 {
		return
	}
	// Unit perpendicular, 5 px caps.
	perp := geometry.Point2D{X: -d.Y / n, Y: d.X / n}.Scale(5)
	for _, p := range [2]geometry.Point2D{p1, p2} {
		a := p.Add(perp)
		b := p.Sub(perp)
		drawLine(output, int(a.X), int(a.Y), int(b.X), int(b.Y), m.Color, measureThickness)
	}
}

// drawMeasurementDraft renders an in-progress measurement buffer. Partial
// multi-click buffers show the segments placed so far plus a marker on each
// placed point; no value label until commit.
func drawMeasurementDraft(output *image.RGBA, kind annotation.MeasureKind, draft []geometry.Point2D, m annotation.Measurement, proj projector) {
	for _, p := range draft {
		sp := proj(p)
		drawFilledCircle(output, int(sp.X), int(sp.Y), 3, m.Color)
	}

	switch kind {
	case annotation.Area:
		if len(draft) >= 2 {
			p1 := proj(draft[0])
			p2 := proj(draft[1])
			drawRectOutline(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), m.Color, measureThickness)
		}
	case annotation.CobbAngle:
		for i := 0; i+1 < len(draft); i += 2 {
			p1 := proj(draft[i])
			p2 := proj(draft[i+1])
			drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), m.Color, measureThickness)
		}
	default:
		for i := 0; i+1 < len(draft); i++ {
			p1 := proj(draft[i])
			p2 := proj(draft[i+1])
			drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), m.Color, measureThickness)
		}
	}
}
