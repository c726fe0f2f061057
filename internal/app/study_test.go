package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radview/internal/annotation"
	"radview/pkg/geometry"
)

// TestStudyRoundTrip saves a two-image study and loads it into a fresh
// state: collections, text, measurement values, and draw defaults all
// survive; transient state (history, selection) does not.
func TestStudyRoundTrip(t *testing.T) {
	src := testState()
	src.AddLayer(testLayer("b"))

	src.SetActiveImage("a")
	txt := annotation.New(annotation.Text, []geometry.Point2D{{X: 12, Y: 34}}, yellow(), 2)
	require.True(t, src.AddAnnotation(txt))
	src.SetAnnotationText(txt.ID, "fracture?")
	require.True(t, src.AddMeasurement(annotation.NewMeasurement(annotation.Distance,
		[]geometry.Point2D{{X: 0, Y: 0}, {X: 30, Y: 40}}, yellow())))

	src.SetActiveImage("b")
	require.True(t, src.AddAnnotation(marker(7, 7)))

	src.SetDefaultStrokeWidth(3)

	path := filepath.Join(t.TempDir(), "case.rvstudy")
	require.NoError(t, src.SaveStudy(path))

	dst := NewState()
	dst.AddLayer(testLayer("a"))
	dst.AddLayer(testLayer("b"))
	require.NoError(t, dst.LoadStudy(path))

	dst.SetActiveImage("a")
	anns := dst.Annotations()
	require.Len(t, anns, 1)
	assert.Equal(t, txt.ID, anns[0].ID)
	assert.Equal(t, "fracture?", anns[0].Text)

	meas := dst.Measurements()
	require.Len(t, meas, 1)
	assert.InDelta(t, 50, meas[0].Value, 1e-9)
	assert.Equal(t, "px", meas[0].Unit)

	dst.SetActiveImage("b")
	assert.Len(t, dst.Annotations(), 1)

	assert.Equal(t, 3.0, dst.DefaultStrokeWidth())
	assert.False(t, dst.CanUndo(), "history is not part of a study")
	assert.Equal(t, SelectNone, dst.Selection().Kind)
}

// TestStudySkipsEmptyImages: images without findings are not written out.
func TestStudySkipsEmptyImages(t *testing.T) {
	s := testState()
	s.AddLayer(testLayer("b"))
	s.SetActiveImage("a")
	require.True(t, s.AddAnnotation(marker(1, 1)))

	study := s.Study()
	require.Len(t, study.Images, 1)
	assert.Equal(t, "a", study.Images[0].ID)
	assert.Equal(t, 1, study.Version)
}

// TestReadStudyErrors surfaces missing files and malformed JSON.
func TestReadStudyErrors(t *testing.T) {
	_, err := ReadStudy(filepath.Join(t.TempDir(), "missing.rvstudy"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.rvstudy")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = ReadStudy(bad)
	assert.Error(t, err)
}
