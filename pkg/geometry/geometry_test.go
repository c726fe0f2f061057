package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointArithmetic(t *testing.T) {
	a := Point2D{X: 3, Y: 4}
	b := Point2D{X: 1, Y: 2}

	assert.Equal(t, Point2D{X: 4, Y: 6}, a.Add(b))
	assert.Equal(t, Point2D{X: 2, Y: 2}, a.Sub(b))
	assert.Equal(t, Point2D{X: 6, Y: 8}, a.Scale(2))
	assert.Equal(t, 11.0, a.Dot(b))
	assert.Equal(t, 5.0, a.Norm())
	assert.Equal(t, 5.0, Point2D{}.Distance(a))
	assert.Equal(t, Point2D{X: 2, Y: 3}, a.Midpoint(b))
}

func TestSizeIsZero(t *testing.T) {
	assert.True(t, Size{}.IsZero())
	assert.True(t, Size{Width: 10}.IsZero())
	assert.True(t, Size{Width: -1, Height: 5}.IsZero())
	assert.False(t, Size{Width: 1, Height: 1}.IsZero())
}

func TestDistanceToSegment(t *testing.T) {
	a := Point2D{X: 0, Y: 0}
	b := Point2D{X: 10, Y: 0}

	// Perpendicular foot inside the segment.
	assert.InDelta(t, 3, DistanceToSegment(Point2D{X: 5, Y: 3}, a, b), 1e-9)
	// Beyond the endpoints the nearest point is the endpoint.
	assert.InDelta(t, 5, DistanceToSegment(Point2D{X: -3, Y: 4}, a, b), 1e-9)
	assert.InDelta(t, 5, DistanceToSegment(Point2D{X: 13, Y: 4}, a, b), 1e-9)
	// Degenerate segment.
	assert.InDelta(t, 5, DistanceToSegment(Point2D{X: 3, Y: 4}, a, a), 1e-9)
}

func TestRectFromCorners(t *testing.T) {
	r := RectFromCorners(Point2D{X: 30, Y: 40}, Point2D{X: 10, Y: 20})
	assert.Equal(t, Rect{X: 10, Y: 20, Width: 20, Height: 20}, r)

	assert.True(t, r.Contains(Point2D{X: 10, Y: 20}), "edges are inclusive")
	assert.True(t, r.Contains(Point2D{X: 20, Y: 30}))
	assert.False(t, r.Contains(Point2D{X: 9, Y: 30}))
	assert.Equal(t, Point2D{X: 20, Y: 30}, r.Center())
}

func TestInset(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	assert.Equal(t, Rect{X: 12, Y: 12, Width: 16, Height: 16}, r.Inset(2))
	assert.Equal(t, Rect{X: 8, Y: 8, Width: 24, Height: 24}, r.Inset(-2))
}

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, Rect{}, BoundingBox(nil))

	box := BoundingBox([]Point2D{{X: 5, Y: 9}, {X: -1, Y: 3}, {X: 2, Y: 12}})
	assert.Equal(t, Rect{X: -1, Y: 3, Width: 6, Height: 9}, box)
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Point2D{}, Centroid(nil))
	c := Centroid([]Point2D{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 0, Y: 6}})
	assert.Equal(t, Point2D{X: 2, Y: 2}, c)
}

// TestAffineComposeOrder: Compose applies the right-hand transform first.
func TestAffineComposeOrder(t *testing.T) {
	// Scale by 2, then translate by (10, 0).
	m := Translation(10, 0).Compose(Scaling(2, 2))
	got := m.Apply(Point2D{X: 1, Y: 1})
	assert.InDelta(t, 12, got.X, 1e-9)
	assert.InDelta(t, 2, got.Y, 1e-9)

	// The other order translates first.
	m = Scaling(2, 2).Compose(Translation(10, 0))
	got = m.Apply(Point2D{X: 1, Y: 1})
	assert.InDelta(t, 22, got.X, 1e-9)
}

func TestAffineRotation(t *testing.T) {
	got := Rotation(math.Pi / 2).Apply(Point2D{X: 1, Y: 0})
	assert.InDelta(t, 0, got.X, 1e-9)
	assert.InDelta(t, 1, got.Y, 1e-9)
}

// TestAffineInverseRoundTrip: a composite transform inverted maps points
// back where they came from; a singular transform reports failure.
func TestAffineInverseRoundTrip(t *testing.T) {
	m := Translation(5, -3).Compose(Rotation(0.7)).Compose(Scaling(2, -2))
	inv, ok := m.Inverse()
	require.True(t, ok)

	p := Point2D{X: 12.5, Y: -7.25}
	back := inv.Apply(m.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)

	_, ok = Scaling(0, 1).Inverse()
	assert.False(t, ok)
}
