package render

import (
	"image"
	"image/color"
	"image/draw"

	"radview/internal/transform"
	"radview/internal/xray"
	"radview/pkg/geometry"
)

// backgroundColor fills the canvas outside the radiograph.
var backgroundColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// inverseMap is the screen-to-image mapping in incremental form: one affine
// probe per frame instead of a matrix multiply per pixel. origin is the
// image-space position of screen (0,0); stepX/stepY are the image-space
// deltas for one screen pixel along each axis.
type inverseMap struct {
	origin geometry.Point2D
	stepX  geometry.Point2D
	stepY  geometry.Point2D
}

func newInverseMap(v transform.View, imgDims, canvasDims geometry.Size) inverseMap {
	o := transform.ScreenToImage(geometry.Point2D{}, v, imgDims, canvasDims)
	px := transform.ScreenToImage(geometry.Point2D{X: 1}, v, imgDims, canvasDims)
	py := transform.ScreenToImage(geometry.Point2D{Y: 1}, v, imgDims, canvasDims)
	return inverseMap{origin: o, stepX: px.Sub(o), stepY: py.Sub(o)}
}

// drawBase composites the windowed radiograph onto the output by walking
// every output pixel back through the inverse view transform and sampling
// the 8-bit display bitmap, nearest neighbor. Pixels that land outside the
// source keep the background.
func drawBase(output *image.RGBA, windowed *image.Gray, inv inverseMap) {
	draw.Draw(output, output.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)
	if windowed == nil {
		return
	}

	srcW := windowed.Bounds().Dx()
	srcH := windowed.Bounds().Dy()
	w := output.Bounds().Dx()
	h := output.Bounds().Dy()

	rowStart := inv.origin
	for y := 0; y < h; y++ {
		p := rowStart
		dstRow := output.Pix[y*output.Stride : y*output.Stride+4*w]
		for x := 0; x < w; x++ {
			srcX := int(p.X)
			srcY := int(p.Y)
			if srcX >= 0 && srcX < srcW && srcY >= 0 && srcY < srcH {
				v := windowed.Pix[srcY*windowed.Stride+srcX]
				i := 4 * x
				dstRow[i] = v
				dstRow[i+1] = v
				dstRow[i+2] = v
				dstRow[i+3] = 255
			}
			p = p.Add(inv.stepX)
		}
		rowStart = rowStart.Add(inv.stepY)
	}
}

// drawHeatmap alpha-blends the heatmap raster over the composited base.
// The heatmap is aligned 1:1 with the image pixel grid, so it rides the
// same inverse mapping as the base layer.
func drawHeatmap(output *image.RGBA, hm image.Image, opacity float64, inv inverseMap) {
	if hm == nil || opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	hb := hm.Bounds()
	w := output.Bounds().Dx()
	h := output.Bounds().Dy()

	rowStart := inv.origin
	for y := 0; y < h; y++ {
		p := rowStart
		for x := 0; x < w; x++ {
			srcX := int(p.X) + hb.Min.X
			srcY := int(p.Y) + hb.Min.Y
			if srcX >= hb.Min.X && srcX < hb.Max.X && srcY >= hb.Min.Y && srcY < hb.Max.Y {
				sr, sg, sb, sa := hm.At(srcX, srcY).RGBA()
				// Honor the heatmap's own alpha on top of the global opacity.
				alpha := opacity * float64(sa) / 65535.0
				if alpha > 0 {
					dst := output.RGBAAt(x, y)
					rem := 1 - alpha
					output.SetRGBA(x, y, color.RGBA{
						R: uint8(float64(sr>>8)*alpha + float64(dst.R)*rem),
						G: uint8(float64(sg>>8)*alpha + float64(dst.G)*rem),
						B: uint8(float64(sb>>8)*alpha + float64(dst.B)*rem),
						A: 255,
					})
				}
			}
			p = p.Add(inv.stepX)
		}
		rowStart = rowStart.Add(inv.stepY)
	}
}

// WindowedBitmap maps a layer through the windowing LUT. Split out so the
// canvas can cache the result between view-only changes.
func WindowedBitmap(l *xray.Layer, w xray.Windowing) *image.Gray {
	return w.Apply(l)
}
