package render

import (
	"image"
	"image/color"
	"math"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns contains 3x5 pixel patterns for letters A-Z and the symbols
// measurement and detection labels need.
var letterPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'*': {0b000, 0b101, 0b010, 0b101, 0b000},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	'%': {0b101, 0b001, 0b010, 0b100, 0b101},
	'/': {0b001, 0b001, 0b010, 0b100, 0b100},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	'°': {0b010, 0b101, 0b010, 0b000, 0b000},
	'²': {0b110, 0b010, 0b100, 0b110, 0b000},
}

// getCharPattern returns the 3x5 pixel pattern for a character.
// Returns a zero pattern for unsupported characters.
func getCharPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					output.Set(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawRectOutline draws an axis-aligned rectangle outline.
func drawRectOutline(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	drawLine(output, x1, y1, x2, y1, col, thickness)
	drawLine(output, x1, y2, x2, y2, col, thickness)
	drawLine(output, x1, y1, x1, y2, col, thickness)
	drawLine(output, x2, y1, x2, y2, col, thickness)
}

// drawDashedRect draws a dashed rectangle outline (alternate pixel runs),
// used for the selection highlight.
func drawDashedRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	bounds := output.Bounds()

	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			output.Set(x, y1, col)
		}
		if (x+y2)%4 < 2 && x >= bounds.Min.X && x < bounds.Max.X && y2 >= bounds.Min.Y && y2 < bounds.Max.Y {
			output.Set(x, y2, col)
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 && x1 >= bounds.Min.X && x1 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.Set(x1, y, col)
		}
		if (x2+y)%4 < 2 && x2 >= bounds.Min.X && x2 < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			output.Set(x2, y, col)
		}
	}
}

// drawEllipseOutline draws an axis-aligned ellipse inscribed in the given
// rectangle, stepping the parametric form finely enough to stay gap-free.
func drawEllipseOutline(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	cx := float64(x1+x2) / 2
	cy := float64(y1+y2) / 2
	rx := math.Abs(float64(x2-x1)) / 2
	ry := math.Abs(float64(y2-y1)) / 2
	if rx < 1 && ry < 1 {
		return
	}

	steps := int(4 * (rx + ry))
	if steps < 16 {
		steps = 16
	}
	px := int(cx + rx)
	py := int(cy)
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		nx := int(cx + rx*math.Cos(a))
		ny := int(cy + ry*math.Sin(a))
		drawLine(output, px, py, nx, ny, col, thickness)
		px, py = nx, ny
	}
}

// drawFilledCircle draws a filled disc, used for point markers.
func drawFilledCircle(output *image.RGBA, cx, cy int, r float64, col color.RGBA) {
	bounds := output.Bounds()
	ri := int(r + 1)
	r2 := r * r
	for y := cy - ri; y <= cy+ri; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := cx - ri; x <= cx+ri; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := float64(x - cx)
			dy := float64(y - cy)
			if dx*dx+dy*dy <= r2 {
				output.Set(x, y, col)
			}
		}
	}
}

// drawCrosshair draws a small cross centered at a point.
func drawCrosshair(output *image.RGBA, cx, cy, arm int, col color.RGBA, thickness int) {
	drawLine(output, cx-arm, cy, cx+arm, cy, col, thickness)
	drawLine(output, cx, cy-arm, cx, cy+arm, col, thickness)
}

// drawArrowhead draws the two barbs of an arrow terminating at (x2, y2)
// coming from (x1, y1).
func drawArrowhead(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	angle := math.Atan2(float64(y2-y1), float64(x2-x1))
	const barbLen = 12.0
	const barbAngle = math.Pi / 6

	for _, da := range [2]float64{barbAngle, -barbAngle} {
		bx := float64(x2) - barbLen*math.Cos(angle+da)
		by := float64(y2) - barbLen*math.Sin(angle+da)
		drawLine(output, x2, y2, int(bx), int(by), col, thickness)
	}
}

// drawHandle draws a square resize handle centered at a point.
func drawHandle(output *image.RGBA, cx, cy int, col color.RGBA) {
	const half = 3
	bounds := output.Bounds()
	for y := cy - half; y <= cy+half; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := cx - half; x <= cx+half; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			output.Set(x, y, col)
		}
	}
	drawRectOutline(output, cx-half, cy-half, cx+half, cy+half, color.RGBA{A: 255}, 1)
}

// drawText draws a string with the 3x5 bitmap font, top-left anchored.
// Returns the width drawn in pixels.
func drawText(output *image.RGBA, text string, x, y int, col color.RGBA, scale int) int {
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}

	charWidth := 3 * scale
	spacing := scale
	bounds := output.Bounds()

	cx := x
	for _, ch := range text {
		pattern := getCharPattern(ch)
		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if (pattern[row] & (1 << (2 - c))) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := cx + c*scale + dx
						py := y + row*scale + dy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							output.Set(px, py, col)
						}
					}
				}
			}
		}
		cx += charWidth + spacing
	}
	return cx - x - spacing
}

// textWidth returns the pixel width drawText would cover.
func textWidth(text string, scale int) int {
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}
	n := 0
	for range text {
		n++
	}
	if n == 0 {
		return 0
	}
	return n*3*scale + (n-1)*scale
}

// drawTextCentered draws a string centered on a point.
func drawTextCentered(output *image.RGBA, text string, cx, cy int, col color.RGBA, scale int) {
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}
	w := textWidth(text, scale)
	h := 5 * scale
	drawText(output, text, cx-w/2, cy-h/2, col, scale)
}

// labelScale derives the bitmap font scale from the zoom, matching how the
// overlay label size tracks magnification.
func labelScale(zoom float64) int {
	scale := int(zoom * 2)
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}
	return scale
}
