package xray

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radview/pkg/geometry"
)

// TestLUTRamp: intensities at or below the window floor map to 0, at or
// above the ceiling to 255, and the center lands mid-gray.
func TestLUTRamp(t *testing.T) {
	w := Windowing{Center: 32768, Width: 20000}
	lut := w.LUT()

	low := 32768 - 10000
	high := 32768 + 10000
	assert.Equal(t, uint8(0), lut[0])
	assert.Equal(t, uint8(0), lut[low])
	assert.Equal(t, uint8(255), lut[high])
	assert.Equal(t, uint8(255), lut[65535])

	// Center of the ramp: (center-low)/width * 255 = 127.
	assert.Equal(t, uint8(127), lut[32768])

	// Quarter point.
	assert.Equal(t, uint8(63), lut[low+5000])
}

// TestLUTInvert flips the ramp end to end.
func TestLUTInvert(t *testing.T) {
	w := Windowing{Center: 32768, Width: 20000, Invert: true}
	lut := w.LUT()
	assert.Equal(t, uint8(255), lut[0])
	assert.Equal(t, uint8(0), lut[65535])
	assert.Equal(t, uint8(255-127), lut[32768])
}

// TestLUTMonotonic: without inversion the mapping never decreases.
func TestLUTMonotonic(t *testing.T) {
	lut := Windowing{Center: 40000, Width: 12345}.LUT()
	for i := 1; i < len(lut); i++ {
		require.GreaterOrEqual(t, lut[i], lut[i-1], "lut not monotonic at %d", i)
	}
}

// TestClampWidth: degenerate widths are raised to the minimum instead of
// collapsing the ramp.
func TestClampWidth(t *testing.T) {
	assert.Equal(t, float64(MinWindowWidth), Windowing{Width: 0}.Clamp().Width)
	assert.Equal(t, float64(MinWindowWidth), Windowing{Width: -500}.Clamp().Width)
	assert.Equal(t, 300.0, Windowing{Width: 300}.Clamp().Width)
}

// TestApplyGradient windows a horizontal 16-bit gradient and spot-checks
// the display pixels.
func TestApplyGradient(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 256, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 256; x++ {
			src.SetGray16(x, y, color.Gray16{Y: uint16(x * 257)}) // 0..65535 across the row
		}
	}
	l := FromImage("grad", src, geometry.Size{})

	out := DefaultWindowing().Apply(l)
	require.NotNil(t, out)
	assert.Equal(t, 256, out.Bounds().Dx())
	assert.Equal(t, 4, out.Bounds().Dy())

	// Full-range window: the display value tracks the high byte, within the
	// rounding of the 0.5-intensity window edges.
	assert.Equal(t, uint8(0), out.GrayAt(0, 0).Y)
	assert.InDelta(t, 255, float64(out.GrayAt(255, 0).Y), 1)
	assert.InDelta(t, 128, float64(out.GrayAt(128, 0).Y), 1.5)

	// A narrow window saturates both tails.
	narrow := Windowing{Center: 32768, Width: 1000}.Apply(l)
	assert.Equal(t, uint8(0), narrow.GrayAt(10, 0).Y)
	assert.Equal(t, uint8(255), narrow.GrayAt(245, 0).Y)
}

// TestApplyNilLayer: windowing an unloaded layer yields nil, not a panic.
func TestApplyNilLayer(t *testing.T) {
	assert.Nil(t, DefaultWindowing().Apply(nil))
	assert.Nil(t, DefaultWindowing().Apply(&Layer{}))
}
