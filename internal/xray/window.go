package xray

import "image"

// MinWindowWidth is the smallest meaningful window width. A width below 1
// would collapse the linear ramp to a step and divide by zero.
const MinWindowWidth = 1

// Windowing is the grayscale display mapping: intensities within the window
// ramp linearly to [0, 255], everything below maps to 0 and everything above
// to 255, with an optional final inversion. Windowing is independent of the
// geometric transform; the windowed bitmap is composited through the view
// transform without resampling intensity values.
type Windowing struct {
	Center float64 `json:"center"`
	Width  float64 `json:"width"`
	Invert bool    `json:"invert"`
}

// Preset is a named window/level pair, in the manner of DICOM VOI LUT
// window presets.
type Preset struct {
	Name   string
	Center float64
	Width  float64
}

// Presets returns the built-in window presets for radiographs. The full
// dynamic range preset is the load-time default.
func Presets() []Preset {
	return []Preset{
		{Name: "Default", Center: 32768, Width: 65535},
		{Name: "Bone", Center: 45000, Width: 30000},
		{Name: "Soft Tissue", Center: 20000, Width: 25000},
	}
}

// DefaultWindowing returns the full dynamic range mapping.
func DefaultWindowing() Windowing {
	return Windowing{Center: 32768, Width: 65535}
}

// Clamp bounds the window width to at least MinWindowWidth.
func (w Windowing) Clamp() Windowing {
	if w.Width < MinWindowWidth {
		w.Width = MinWindowWidth
	}
	return w
}

// LUT builds the 16-bit intensity to 8-bit display lookup table for the
// windowing. Rebuilding the table is how every center/width/invert change
// is applied; per-pixel math happens once here instead of per repaint.
func (w Windowing) LUT() *[65536]uint8 {
	w = w.Clamp()
	low := w.Center - w.Width/2
	high := w.Center + w.Width/2

	var lut [65536]uint8
	for i := range lut {
		v := float64(i)
		var out uint8
		switch {
		case v <= low:
			out = 0
		case v >= high:
			out = 255
		default:
			out = uint8((v - low) / w.Width * 255)
		}
		if w.Invert {
			out = 255 - out
		}
		lut[i] = out
	}
	return &lut
}

// Apply maps the layer's intensities to an 8-bit grayscale display bitmap.
// Returns nil when no image is loaded.
func (w Windowing) Apply(l *Layer) *image.Gray {
	if l == nil || l.Gray == nil {
		return nil
	}
	lut := w.LUT()
	b := l.Gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := l.Gray.Pix[y*l.Gray.Stride : y*l.Gray.Stride+2*b.Dx()]
		dstRow := out.Pix[y*out.Stride : y*out.Stride+b.Dx()]
		for x := 0; x < b.Dx(); x++ {
			v := uint16(srcRow[2*x])<<8 | uint16(srcRow[2*x+1])
			dstRow[x] = lut[v]
		}
	}
	return out
}
