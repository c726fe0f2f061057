package app

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radview/internal/annotation"
	"radview/internal/overlay"
	"radview/internal/xray"
	"radview/pkg/geometry"
)

func testLayer(id string) *xray.Layer {
	return xray.FromImage(id, image.NewGray16(image.Rect(0, 0, 64, 64)), geometry.Size{})
}

func testState() *State {
	s := NewState()
	s.AddLayer(testLayer("a"))
	return s
}

func yellow() color.RGBA {
	return color.RGBA{R: 255, G: 255, B: 0, A: 255}
}

func marker(x, y float64) annotation.Annotation {
	return annotation.New(annotation.Marker, []geometry.Point2D{{X: x, Y: y}}, yellow(), 2)
}

// TestAddAnnotationRejectsInvalid: entities failing their cardinality check
// never reach the collection and leave no history entry behind.
func TestAddAnnotationRejectsInvalid(t *testing.T) {
	s := testState()

	bad := annotation.New(annotation.Rectangle, []geometry.Point2D{{X: 1, Y: 1}}, yellow(), 2)
	assert.False(t, s.AddAnnotation(bad))
	assert.Empty(t, s.Annotations())
	assert.False(t, s.CanUndo())

	badM := annotation.NewMeasurement(annotation.Angle, []geometry.Point2D{{X: 1, Y: 1}}, yellow())
	assert.False(t, s.AddMeasurement(badM))
	assert.Empty(t, s.Measurements())
	assert.False(t, s.CanUndo())
}

// TestUndoRedoRestoresCollections: each commit is one undo step, and redo
// brings the exact entities back.
func TestUndoRedoRestoresCollections(t *testing.T) {
	s := testState()

	a1 := marker(10, 10)
	a2 := marker(20, 20)
	require.True(t, s.AddAnnotation(a1))
	require.True(t, s.AddAnnotation(a2))
	require.Len(t, s.Annotations(), 2)

	require.True(t, s.Undo())
	anns := s.Annotations()
	require.Len(t, anns, 1)
	assert.Equal(t, a1.ID, anns[0].ID)

	require.True(t, s.Undo())
	assert.Empty(t, s.Annotations())
	assert.False(t, s.CanUndo())

	require.True(t, s.Redo())
	require.True(t, s.Redo())
	anns = s.Annotations()
	require.Len(t, anns, 2)
	assert.Equal(t, a2.ID, anns[1].ID)
	assert.False(t, s.CanRedo())
}

// TestCommitAfterUndoDropsRedo: drawing after an undo forks the timeline;
// the undone branch is gone.
func TestCommitAfterUndoDropsRedo(t *testing.T) {
	s := testState()
	require.True(t, s.AddAnnotation(marker(10, 10)))
	require.True(t, s.Undo())
	require.True(t, s.CanRedo())

	require.True(t, s.AddAnnotation(marker(30, 30)))
	assert.False(t, s.CanRedo())
}

// TestImageSwitchIsolation: each image owns its entities, and the history
// stack never spans an image switch.
func TestImageSwitchIsolation(t *testing.T) {
	s := testState()
	require.True(t, s.AddAnnotation(marker(10, 10)))
	require.True(t, s.CanUndo())

	s.AddLayer(testLayer("b"))
	assert.Equal(t, "b", s.ActiveImageID())
	assert.Empty(t, s.Annotations(), "image b starts empty")
	assert.False(t, s.CanUndo(), "history cleared on image switch")

	require.True(t, s.AddAnnotation(marker(5, 5)))
	s.SetActiveImage("a")
	anns := s.Annotations()
	require.Len(t, anns, 1)
	assert.InDelta(t, 10, anns[0].Points[0].X, 1e-9)
}

// TestClearEntitiesUndoable: clear-all is one undoable step restoring both
// collections.
func TestClearEntitiesUndoable(t *testing.T) {
	s := testState()
	require.True(t, s.AddAnnotation(marker(10, 10)))
	require.True(t, s.AddMeasurement(annotation.NewMeasurement(annotation.Distance,
		[]geometry.Point2D{{X: 0, Y: 0}, {X: 30, Y: 40}}, yellow())))

	s.ClearEntities()
	assert.Empty(t, s.Annotations())
	assert.Empty(t, s.Measurements())

	require.True(t, s.Undo())
	assert.Len(t, s.Annotations(), 1)
	assert.Len(t, s.Measurements(), 1)
}

// TestSelectAtPrefersMeasurements: measurements draw on top of annotations,
// so they win the hit test when both are under the pointer.
func TestSelectAtPrefersMeasurements(t *testing.T) {
	s := testState()
	require.True(t, s.AddAnnotation(marker(10, 10)))
	m := annotation.NewMeasurement(annotation.Distance,
		[]geometry.Point2D{{X: 0, Y: 10}, {X: 20, Y: 10}}, yellow())
	require.True(t, s.AddMeasurement(m))

	sel := s.SelectAt(geometry.Point2D{X: 10, Y: 10}, 2)
	assert.Equal(t, SelectMeasurement, sel.Kind)
	assert.Equal(t, m.ID, sel.ID)

	sel = s.SelectAt(geometry.Point2D{X: 50, Y: 50}, 2)
	assert.Equal(t, SelectNone, sel.Kind)
}

// TestDeleteSelected removes exactly the selected entity, undoably.
func TestDeleteSelected(t *testing.T) {
	s := testState()
	keep := marker(10, 10)
	doomed := marker(40, 40)
	require.True(t, s.AddAnnotation(keep))
	require.True(t, s.AddAnnotation(doomed))

	s.Select(Selection{Kind: SelectAnnotation, ID: doomed.ID})
	require.True(t, s.DeleteSelected())

	anns := s.Annotations()
	require.Len(t, anns, 1)
	assert.Equal(t, keep.ID, anns[0].ID)
	assert.Equal(t, SelectNone, s.Selection().Kind)

	require.True(t, s.Undo())
	assert.Len(t, s.Annotations(), 2)
}

// TestMoveRecomputesMeasurement: translating a measurement keeps its value,
// resizing a point changes it, and neither adds a history entry.
func TestMoveRecomputesMeasurement(t *testing.T) {
	s := testState()
	m := annotation.NewMeasurement(annotation.Distance,
		[]geometry.Point2D{{X: 0, Y: 0}, {X: 30, Y: 40}}, yellow())
	require.True(t, s.AddMeasurement(m))

	s.Select(Selection{Kind: SelectMeasurement, ID: m.ID})
	s.MoveSelected(geometry.Point2D{X: 5, Y: 5})
	got, ok := s.SelectedMeasurement()
	require.True(t, ok)
	assert.InDelta(t, 50, got.Value, 1e-9)

	s.MoveSelectedPoint(1, geometry.Point2D{X: 5, Y: 45})
	got, ok = s.SelectedMeasurement()
	require.True(t, ok)
	assert.InDelta(t, 40, got.Value, 1e-9)

	// Still exactly one undo step: it reverts the creation.
	require.True(t, s.Undo())
	assert.Empty(t, s.Measurements())
	assert.False(t, s.CanUndo())
}

// TestEventsFire: subscribers see entity and windowing changes.
func TestEventsFire(t *testing.T) {
	s := testState()
	entities, windows := 0, 0
	s.On(EventEntitiesChanged, func(interface{}) { entities++ })
	s.On(EventWindowingChanged, func(interface{}) { windows++ })

	require.True(t, s.AddAnnotation(marker(1, 1)))
	s.AdjustWindow(100, 0)

	assert.Equal(t, 1, entities)
	assert.Equal(t, 1, windows)
}

// TestApplyPresetKeepsInvert: switching presets changes center/width only.
func TestApplyPresetKeepsInvert(t *testing.T) {
	s := testState()
	s.SetInvert(true)
	s.ApplyPreset(xray.Preset{Name: "Bone", Center: 45000, Width: 30000})

	w := s.Windowing()
	assert.Equal(t, 45000.0, w.Center)
	assert.Equal(t, 30000.0, w.Width)
	assert.True(t, w.Invert)
}

// TestHeatmapDefaultOpacity: a heatmap arriving without an opacity gets the
// configured default; explicit opacities pass through.
func TestHeatmapDefaultOpacity(t *testing.T) {
	s := testState()
	s.SetDefaultHeatmapOpacity(0.7)

	s.SetHeatmap("a", &overlay.Heatmap{Image: image.NewRGBA(image.Rect(0, 0, 8, 8))})
	hm := s.Heatmap()
	require.NotNil(t, hm)
	assert.InDelta(t, 0.7, hm.Opacity, 1e-9)

	s.SetHeatmapOpacity(0.3)
	assert.InDelta(t, 0.3, s.Heatmap().Opacity, 1e-9)

	s.SetHeatmap("a", &overlay.Heatmap{Image: image.NewRGBA(image.Rect(0, 0, 8, 8)), Opacity: 0.9})
	assert.InDelta(t, 0.9, s.Heatmap().Opacity, 1e-9)
}

// TestSetCanvasSizeRefits: the first layout fits the image with its margin
// and centers it.
func TestSetCanvasSizeRefits(t *testing.T) {
	s := NewState()
	s.AddLayer(xray.FromImage("big", image.NewGray16(image.Rect(0, 0, 200, 100)), geometry.Size{}))
	s.SetCanvasSize(geometry.Size{Width: 100, Height: 100})

	v := s.View()
	assert.InDelta(t, 0.475, v.Zoom, 1e-9)
	assert.Equal(t, geometry.Point2D{}, v.Pan)
}
