package annotation

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radview/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func col() color.RGBA {
	return color.RGBA{R: 255, G: 255, B: 0, A: 255}
}

func TestCardinality(t *testing.T) {
	assert.True(t, New(Marker, []geometry.Point2D{pt(1, 1)}, col(), 2).Valid())
	assert.True(t, New(Text, []geometry.Point2D{pt(1, 1)}, col(), 2).Valid())
	assert.False(t, New(Rectangle, []geometry.Point2D{pt(1, 1)}, col(), 2).Valid())
	assert.True(t, New(Rectangle, []geometry.Point2D{pt(1, 1), pt(5, 5)}, col(), 2).Valid())

	// Exact-count kinds reject extras; freehand grows freely.
	assert.False(t, New(Arrow, []geometry.Point2D{pt(1, 1), pt(5, 5), pt(9, 9)}, col(), 2).Valid())
	assert.True(t, New(Freehand, []geometry.Point2D{pt(1, 1), pt(5, 5), pt(9, 9)}, col(), 2).Valid())
}

// TestNewCopiesPoints: the caller's buffer can be reused after New.
func TestNewCopiesPoints(t *testing.T) {
	buf := []geometry.Point2D{pt(1, 1), pt(5, 5)}
	a := New(Arrow, buf, col(), 2)
	buf[0].X = 999
	assert.Equal(t, 1.0, a.Points[0].X)
	assert.NotEmpty(t, a.ID)

	b := New(Arrow, buf, col(), 2)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTranslateAndBounds(t *testing.T) {
	a := New(Rectangle, []geometry.Point2D{pt(10, 20), pt(30, 40)}, col(), 2)
	a.Translate(pt(5, -5))

	b := a.Bounds()
	assert.Equal(t, 15.0, b.X)
	assert.Equal(t, 15.0, b.Y)
	assert.Equal(t, 20.0, b.Width)
	assert.Equal(t, 20.0, b.Height)
}

func TestAnnotationHit(t *testing.T) {
	arrow := New(Arrow, []geometry.Point2D{pt(0, 0), pt(10, 0)}, col(), 2)
	assert.True(t, arrow.Hit(pt(5, 1), 2))
	assert.False(t, arrow.Hit(pt(5, 5), 2))

	// Rectangle hits register on the outline, not the interior.
	rect := New(Rectangle, []geometry.Point2D{pt(0, 0), pt(20, 20)}, col(), 2)
	assert.True(t, rect.Hit(pt(0, 10), 2), "on the left edge")
	assert.True(t, rect.Hit(pt(21, 10), 2), "just outside the edge")
	assert.False(t, rect.Hit(pt(10, 10), 2), "deep inside")

	marker := New(Marker, []geometry.Point2D{pt(50, 50)}, col(), 2)
	assert.True(t, marker.Hit(pt(51, 51), 2))
	assert.False(t, marker.Hit(pt(55, 55), 2))

	path := New(Freehand, []geometry.Point2D{pt(0, 0), pt(10, 0), pt(10, 10)}, col(), 2)
	assert.True(t, path.Hit(pt(10, 5), 1))
	assert.False(t, path.Hit(pt(0, 10), 1))
}

func TestMeasurementCardinality(t *testing.T) {
	assert.Equal(t, 2, Distance.RequiredPoints())
	assert.Equal(t, 3, Angle.RequiredPoints())
	assert.Equal(t, 2, Area.RequiredPoints())
	assert.Equal(t, 4, CobbAngle.RequiredPoints())

	assert.True(t, Angle.MultiClick())
	assert.True(t, CobbAngle.MultiClick())
	assert.False(t, Distance.MultiClick())
	assert.False(t, Area.MultiClick())

	m := NewMeasurement(Angle, []geometry.Point2D{pt(1, 1), pt(2, 2)}, col())
	assert.False(t, m.Valid())
}

func TestMeasurementHit(t *testing.T) {
	d := NewMeasurement(Distance, []geometry.Point2D{pt(0, 0), pt(10, 0)}, col())
	assert.True(t, d.Hit(pt(5, 1), 2))
	assert.False(t, d.Hit(pt(5, 5), 2))

	// Either leg of an angle counts.
	a := NewMeasurement(Angle, []geometry.Point2D{pt(10, 0), pt(0, 0), pt(0, 10)}, col())
	assert.True(t, a.Hit(pt(5, 0), 1))
	assert.True(t, a.Hit(pt(0, 5), 1))
	assert.False(t, a.Hit(pt(5, 5), 1))

	// Either line of a cobb angle counts.
	c := NewMeasurement(CobbAngle, []geometry.Point2D{pt(0, 0), pt(10, 0), pt(0, 20), pt(10, 20)}, col())
	assert.True(t, c.Hit(pt(5, 0), 1))
	assert.True(t, c.Hit(pt(5, 20), 1))
	assert.False(t, c.Hit(pt(5, 10), 1))

	require.True(t, c.Valid())
}
