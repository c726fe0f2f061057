package render

import (
	"image"
	"image/color"
	"strconv"

	"radview/internal/overlay"
	"radview/pkg/geometry"
)

// detectionPalette cycles per class id so different finding classes stay
// visually distinct.
var detectionPalette = []color.RGBA{
	{R: 255, G: 80, B: 80, A: 255},
	{R: 80, G: 200, B: 255, A: 255},
	{R: 120, G: 255, B: 120, A: 255},
	{R: 255, G: 180, B: 60, A: 255},
	{R: 220, G: 120, B: 255, A: 255},
}

func detectionColor(classID int) color.RGBA {
	if classID < 0 {
		classID = -classID
	}
	return detectionPalette[classID%len(detectionPalette)]
}

// drawDetection renders one AI detection box with its class label and
// confidence percentage above the top-left corner.
func drawDetection(output *image.RGBA, d overlay.Detection, proj projector, scale int) {
	r := d.BBox.Rect()
	col := detectionColor(d.ClassID)

	// Project all four corners; under rotation the box stays axis-aligned
	// in image space, so its screen footprint is the projected corners'
	// bounding box edges drawn as lines.
	tl := proj(geometry.Point2D{X: r.X, Y: r.Y})
	tr := proj(geometry.Point2D{X: r.X + r.Width, Y: r.Y})
	br := proj(geometry.Point2D{X: r.X + r.Width, Y: r.Y + r.Height})
	bl := proj(geometry.Point2D{X: r.X, Y: r.Y + r.Height})

	drawLine(output, int(tl.X), int(tl.Y), int(tr.X), int(tr.Y), col, 2)
	drawLine(output, int(tr.X), int(tr.Y), int(br.X), int(br.Y), col, 2)
	drawLine(output, int(br.X), int(br.Y), int(bl.X), int(bl.Y), col, 2)
	drawLine(output, int(bl.X), int(bl.Y), int(tl.X), int(tl.Y), col, 2)

	label := d.Label()
	if d.Confidence > 0 {
		pct := strconv.Itoa(int(d.Confidence*100+0.5)) + "%"
		if label != "" {
			label += " " + pct
		} else {
			label = pct
		}
	}
	if label != "" {
		drawText(output, label, int(tl.X), int(tl.Y)-6*scale, col, scale)
	}
}
