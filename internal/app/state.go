// Package app owns the per-viewport application state: the geometric view,
// the window/level mapping, the active tool with its in-progress point
// buffer, and the per-image annotation and measurement collections with
// their undo history. Renderers and panels subscribe to change events; all
// mutation happens synchronously inside input handlers.
package app

import (
	"image/color"
	"sync"

	"radview/internal/annotation"
	"radview/internal/history"
	"radview/internal/measure"
	"radview/internal/overlay"
	"radview/internal/transform"
	"radview/internal/xray"
	"radview/pkg/geometry"
)

// EventType identifies viewport state changes subscribers can react to.
type EventType int

const (
	EventViewChanged EventType = iota
	EventWindowingChanged
	EventToolChanged
	EventEntitiesChanged
	EventSelectionChanged
	EventImageChanged
	EventOverlaysChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// SelectionKind tells which collection a selection refers to.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectAnnotation
	SelectMeasurement
)

// Selection identifies the currently selected entity, if any.
type Selection struct {
	Kind SelectionKind
	ID   string
}

// imageEntities holds everything keyed to one image id. Annotations and
// measurements are user-owned and persisted; detections and heatmap are
// render-only AI output.
type imageEntities struct {
	Annotations  []annotation.Annotation
	Measurements []annotation.Measurement
	Detections   []overlay.Detection
	Heatmap      *overlay.Heatmap
}

// State is the mutable store for one viewport. It is injectable, not a
// process-wide singleton, so multiple viewports can coexist.
type State struct {
	mu sync.RWMutex

	view       transform.View
	windowing  xray.Windowing
	canvasDims geometry.Size

	tool  Tool
	draft []geometry.Point2D

	layers   map[string]*xray.Layer
	entities map[string]*imageEntities
	activeID string

	selection Selection
	hist      *history.Manager

	defaultColor   color.RGBA
	defaultWidth   float64
	defaultHeatmap float64

	listeners map[EventType][]EventListener
}

// NewState creates an empty viewport state with the default undo depth.
func NewState() *State {
	return NewStateWithHistory(history.DefaultLimit)
}

// NewStateWithHistory creates an empty viewport state keeping up to limit
// undo snapshots per image.
func NewStateWithHistory(limit int) *State {
	return &State{
		view:           transform.DefaultView(),
		windowing:      xray.DefaultWindowing(),
		tool:           ToolPan,
		layers:         make(map[string]*xray.Layer),
		entities:       make(map[string]*imageEntities),
		hist:           history.NewManager(limit),
		defaultColor:   color.RGBA{R: 255, G: 255, B: 0, A: 255},
		defaultWidth:   2,
		defaultHeatmap: 0.5,
		listeners:      make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// ---- view ----

// View returns the current geometric view parameters.
func (s *State) View() transform.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// ImageDims returns the active image's dimensions, zero before load.
func (s *State) ImageDims() geometry.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imageDimsLocked()
}

func (s *State) imageDimsLocked() geometry.Size {
	if l, ok := s.layers[s.activeID]; ok {
		return l.Size()
	}
	return geometry.Size{}
}

// CanvasDims returns the host surface dimensions, zero before first layout.
func (s *State) CanvasDims() geometry.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canvasDims
}

// ImageToScreen projects an image-space point under the current view.
func (s *State) ImageToScreen(p geometry.Point2D) geometry.Point2D {
	s.mu.RLock()
	v, img, cv := s.view, s.imageDimsLocked(), s.canvasDims
	s.mu.RUnlock()
	return transform.ImageToScreen(p, v, img, cv)
}

// ScreenToImage projects a screen-space point back to image space.
func (s *State) ScreenToImage(p geometry.Point2D) geometry.Point2D {
	s.mu.RLock()
	v, img, cv := s.view, s.imageDimsLocked(), s.canvasDims
	s.mu.RUnlock()
	return transform.ScreenToImage(p, v, img, cv)
}

// SetZoom stores a clamped zoom factor.
func (s *State) SetZoom(zoom float64) {
	s.mu.Lock()
	s.view.Zoom = transform.ClampZoom(zoom)
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

// ZoomBy multiplies the current zoom by factor.
func (s *State) ZoomBy(factor float64) {
	s.mu.Lock()
	s.view.Zoom = transform.ClampZoom(s.view.Zoom * factor)
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

// SetPan stores the pan offset.
func (s *State) SetPan(pan geometry.Point2D) {
	s.mu.Lock()
	s.view.Pan = pan
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

// PanBy shifts the pan offset by a screen-space delta.
func (s *State) PanBy(delta geometry.Point2D) {
	s.mu.Lock()
	s.view.Pan = s.view.Pan.Add(delta)
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

// SetRotation stores the rotation normalized to [0, 360).
func (s *State) SetRotation(deg float64) {
	s.mu.Lock()
	s.view.Rotation = transform.NormalizeRotation(deg)
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

// RotateBy adds to the current rotation.
func (s *State) RotateBy(deg float64) {
	s.mu.Lock()
	s.view.Rotation = transform.NormalizeRotation(s.view.Rotation + deg)
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

// ToggleFlipHorizontal mirrors the view across the vertical axis.
func (s *State) ToggleFlipHorizontal() {
	s.mu.Lock()
	s.view.FlipH = !s.view.FlipH
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

// ToggleFlipVertical mirrors the view across the horizontal axis.
func (s *State) ToggleFlipVertical() {
	s.mu.Lock()
	s.view.FlipV = !s.view.FlipV
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

// SetCanvasSize records the host surface size and re-fits the image, per
// the resize contract: canvas dimensions are re-derived and fit re-run
// before the next paint.
func (s *State) SetCanvasSize(size geometry.Size) {
	s.mu.Lock()
	if size == s.canvasDims {
		s.mu.Unlock()
		return
	}
	s.canvasDims = size
	s.fitLocked()
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

// FitToScreen derives the zoom that fits the active image and resets pan.
// No-op while either image or canvas dimensions are unknown.
func (s *State) FitToScreen() {
	s.mu.Lock()
	s.fitLocked()
	s.mu.Unlock()
	s.Emit(EventViewChanged, s.View())
}

func (s *State) fitLocked() {
	img := s.imageDimsLocked()
	if img.IsZero() || s.canvasDims.IsZero() {
		return
	}
	s.view.Zoom = transform.FitZoom(img, s.canvasDims)
	s.view.Pan = geometry.Point2D{}
}

// ---- windowing ----

// Windowing returns the current window/level mapping.
func (s *State) Windowing() xray.Windowing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.windowing
}

// SetWindowing stores a clamped window/level mapping.
func (s *State) SetWindowing(w xray.Windowing) {
	s.mu.Lock()
	s.windowing = w.Clamp()
	s.mu.Unlock()
	s.Emit(EventWindowingChanged, s.Windowing())
}

// AdjustWindow shifts window width and center by deltas, clamping width.
func (s *State) AdjustWindow(dWidth, dCenter float64) {
	s.mu.Lock()
	s.windowing.Width += dWidth
	s.windowing.Center += dCenter
	s.windowing = s.windowing.Clamp()
	s.mu.Unlock()
	s.Emit(EventWindowingChanged, s.Windowing())
}

// SetInvert toggles the display inversion flag.
func (s *State) SetInvert(invert bool) {
	s.mu.Lock()
	s.windowing.Invert = invert
	s.mu.Unlock()
	s.Emit(EventWindowingChanged, s.Windowing())
}

// ApplyPreset switches to a named window preset, keeping the invert flag.
func (s *State) ApplyPreset(p xray.Preset) {
	s.mu.Lock()
	s.windowing.Center = p.Center
	s.windowing.Width = p.Width
	s.windowing = s.windowing.Clamp()
	s.mu.Unlock()
	s.Emit(EventWindowingChanged, s.Windowing())
}

// ---- tool & draft ----

// Tool returns the active tool.
func (s *State) Tool() Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tool
}

// SetTool switches the active tool. Any in-progress point buffer is
// discarded; a half-drawn angle never leaks into the next tool.
func (s *State) SetTool(t Tool) {
	s.mu.Lock()
	s.tool = t
	s.draft = nil
	s.mu.Unlock()
	s.Emit(EventToolChanged, t)
}

// Draft returns a copy of the in-progress point buffer.
func (s *State) Draft() []geometry.Point2D {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]geometry.Point2D, len(s.draft))
	copy(out, s.draft)
	return out
}

// AppendDraft adds a point to the in-progress buffer.
func (s *State) AppendDraft(p geometry.Point2D) {
	s.mu.Lock()
	s.draft = append(s.draft, p)
	s.mu.Unlock()
}

// SetDraftLast replaces the last buffered point, used by two-point drag
// tools while the pointer moves.
func (s *State) SetDraftLast(p geometry.Point2D) {
	s.mu.Lock()
	if len(s.draft) > 0 {
		s.draft[len(s.draft)-1] = p
	}
	s.mu.Unlock()
}

// ClearDraft discards the in-progress buffer.
func (s *State) ClearDraft() {
	s.mu.Lock()
	s.draft = nil
	s.mu.Unlock()
}

// ---- images ----

// AddLayer registers a loaded radiograph and makes it active.
func (s *State) AddLayer(l *xray.Layer) {
	s.mu.Lock()
	s.layers[l.ID] = l
	s.mu.Unlock()
	s.SetActiveImage(l.ID)
}

// SetActiveImage switches the viewport to another loaded image. The image's
// own annotation and measurement collections are swapped in, the history
// stack is cleared (history never spans images), and the view is re-fit.
func (s *State) SetActiveImage(id string) {
	s.mu.Lock()
	if _, ok := s.layers[id]; !ok {
		s.mu.Unlock()
		return
	}
	s.activeID = id
	if _, ok := s.entities[id]; !ok {
		s.entities[id] = &imageEntities{}
	}
	s.hist.Reset()
	s.selection = Selection{}
	s.draft = nil
	s.fitLocked()
	s.mu.Unlock()
	s.Emit(EventImageChanged, id)
}

// ActiveImageID returns the id of the active image, empty before load.
func (s *State) ActiveImageID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Layer returns the active radiograph, nil before load.
func (s *State) Layer() *xray.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layers[s.activeID]
}

// LayerByID returns a loaded radiograph by id, nil if unknown.
func (s *State) LayerByID(id string) *xray.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layers[id]
}

// ImageIDs returns the ids of all loaded images.
func (s *State) ImageIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.layers))
	for id := range s.layers {
		ids = append(ids, id)
	}
	return ids
}

// PixelSpacing returns the active image's physical pixel spacing.
func (s *State) PixelSpacing() geometry.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.layers[s.activeID]; ok {
		return l.PixelSpacing
	}
	return geometry.Size{}
}

func (s *State) currentLocked() *imageEntities {
	e, ok := s.entities[s.activeID]
	if !ok {
		e = &imageEntities{}
		s.entities[s.activeID] = e
	}
	return e
}

// currentRLocked is the read-path variant: it never mutates the map, so it
// is safe under the read lock.
func (s *State) currentRLocked() *imageEntities {
	if e, ok := s.entities[s.activeID]; ok {
		return e
	}
	return &imageEntities{}
}

// ---- entities ----

// Annotations returns the active image's annotations. The slice is shared;
// callers treat it as read-only.
func (s *State) Annotations() []annotation.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentRLocked().Annotations
}

// Measurements returns the active image's measurements, read-only.
func (s *State) Measurements() []annotation.Measurement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentRLocked().Measurements
}

func (s *State) snapshotLocked() history.Snapshot {
	e := s.currentLocked()
	return history.Snapshot{
		Annotations:  e.Annotations,
		Measurements: e.Measurements,
	}
}

// AddAnnotation commits a finished annotation to the active image. The
// pre-commit state is snapshotted first so the commit is undoable.
// Annotations that fail their cardinality check are silently discarded.
func (s *State) AddAnnotation(a annotation.Annotation) bool {
	if !a.Valid() {
		return false
	}
	s.mu.Lock()
	s.hist.Push(s.snapshotLocked())
	e := s.currentLocked()
	e.Annotations = append(e.Annotations, a)
	s.mu.Unlock()
	s.Emit(EventEntitiesChanged, nil)
	return true
}

// AddMeasurement commits a finished measurement, computing its value from
// the active image's pixel spacing first.
func (s *State) AddMeasurement(m annotation.Measurement) bool {
	if !m.Valid() {
		return false
	}
	s.mu.Lock()
	if l, ok := s.layers[s.activeID]; ok {
		measure.Update(&m, l.PixelSpacing)
	} else {
		measure.Update(&m, geometry.Size{})
	}
	s.hist.Push(s.snapshotLocked())
	e := s.currentLocked()
	e.Measurements = append(e.Measurements, m)
	s.mu.Unlock()
	s.Emit(EventEntitiesChanged, nil)
	return true
}

// ClearEntities removes every annotation and measurement on the active
// image, as one undoable step.
func (s *State) ClearEntities() {
	s.mu.Lock()
	e := s.currentLocked()
	if len(e.Annotations) == 0 && len(e.Measurements) == 0 {
		s.mu.Unlock()
		return
	}
	s.hist.Push(s.snapshotLocked())
	e.Annotations = nil
	e.Measurements = nil
	s.selection = Selection{}
	s.mu.Unlock()
	s.Emit(EventEntitiesChanged, nil)
	s.Emit(EventSelectionChanged, Selection{})
}

// ---- selection ----

// Selection returns the current selection.
func (s *State) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Select sets the selection directly, used by the findings panel where the
// entity is picked from a list instead of hit-tested.
func (s *State) Select(sel Selection) {
	s.mu.Lock()
	s.selection = sel
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, sel)
}

// SelectAt hit-tests the active image's entities at an image-space point
// with an image-space tolerance, preferring measurements (drawn on top).
// Clears the selection when nothing is hit.
func (s *State) SelectAt(p geometry.Point2D, tol float64) Selection {
	s.mu.Lock()
	e := s.currentLocked()
	sel := Selection{}
	for i := len(e.Measurements) - 1; i >= 0; i-- {
		if e.Measurements[i].Hit(p, tol) {
			sel = Selection{Kind: SelectMeasurement, ID: e.Measurements[i].ID}
			break
		}
	}
	if sel.Kind == SelectNone {
		for i := len(e.Annotations) - 1; i >= 0; i-- {
			if e.Annotations[i].Hit(p, tol) {
				sel = Selection{Kind: SelectAnnotation, ID: e.Annotations[i].ID}
				break
			}
		}
	}
	s.selection = sel
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, sel)
	return sel
}

// DeleteSelected removes the selected entity with a history push. No-op
// without a selection.
func (s *State) DeleteSelected() bool {
	s.mu.Lock()
	sel := s.selection
	if sel.Kind == SelectNone {
		s.mu.Unlock()
		return false
	}
	e := s.currentLocked()
	deleted := false
	switch sel.Kind {
	case SelectAnnotation:
		for i := range e.Annotations {
			if e.Annotations[i].ID == sel.ID {
				s.hist.Push(s.snapshotLocked())
				e.Annotations = append(e.Annotations[:i], e.Annotations[i+1:]...)
				deleted = true
				break
			}
		}
	case SelectMeasurement:
		for i := range e.Measurements {
			if e.Measurements[i].ID == sel.ID {
				s.hist.Push(s.snapshotLocked())
				e.Measurements = append(e.Measurements[:i], e.Measurements[i+1:]...)
				deleted = true
				break
			}
		}
	}
	s.selection = Selection{}
	s.mu.Unlock()
	if deleted {
		s.Emit(EventEntitiesChanged, nil)
	}
	s.Emit(EventSelectionChanged, Selection{})
	return deleted
}

// DeleteAt deletes the entity under an image-space point (double-click
// delete). Selects it first so the history push and removal share the
// DeleteSelected path.
func (s *State) DeleteAt(p geometry.Point2D, tol float64) bool {
	if sel := s.SelectAt(p, tol); sel.Kind == SelectNone {
		return false
	}
	return s.DeleteSelected()
}

// MoveSelected translates the selected entity by an image-space delta.
// In-place edits are deliberately not snapshotted; only create and delete
// are undoable. Measurement values are recomputed.
func (s *State) MoveSelected(delta geometry.Point2D) {
	s.mu.Lock()
	sel := s.selection
	e := s.currentLocked()
	moved := false
	switch sel.Kind {
	case SelectAnnotation:
		for i := range e.Annotations {
			if e.Annotations[i].ID == sel.ID {
				e.Annotations[i].Translate(delta)
				moved = true
				break
			}
		}
	case SelectMeasurement:
		for i := range e.Measurements {
			if e.Measurements[i].ID == sel.ID {
				e.Measurements[i].Translate(delta)
				s.updateMeasurementLocked(&e.Measurements[i])
				moved = true
				break
			}
		}
	}
	s.mu.Unlock()
	if moved {
		s.Emit(EventEntitiesChanged, nil)
	}
}

// MoveSelectedPoint repositions a single point of the selected entity
// (handle resize). Not snapshotted, same as MoveSelected.
func (s *State) MoveSelectedPoint(index int, p geometry.Point2D) {
	s.mu.Lock()
	sel := s.selection
	e := s.currentLocked()
	moved := false
	switch sel.Kind {
	case SelectAnnotation:
		for i := range e.Annotations {
			if e.Annotations[i].ID == sel.ID && index >= 0 && index < len(e.Annotations[i].Points) {
				e.Annotations[i].Points[index] = p
				moved = true
				break
			}
		}
	case SelectMeasurement:
		for i := range e.Measurements {
			if e.Measurements[i].ID == sel.ID && index >= 0 && index < len(e.Measurements[i].Points) {
				e.Measurements[i].Points[index] = p
				s.updateMeasurementLocked(&e.Measurements[i])
				moved = true
				break
			}
		}
	}
	s.mu.Unlock()
	if moved {
		s.Emit(EventEntitiesChanged, nil)
	}
}

func (s *State) updateMeasurementLocked(m *annotation.Measurement) {
	if l, ok := s.layers[s.activeID]; ok {
		measure.Update(m, l.PixelSpacing)
	} else {
		measure.Update(m, geometry.Size{})
	}
}

// SetAnnotationText updates the text of an annotation on the active image.
// Used by the text tool after its entry dialog closes; like moves, text
// edits are not snapshotted.
func (s *State) SetAnnotationText(id, text string) {
	s.mu.Lock()
	e := s.currentLocked()
	changed := false
	for i := range e.Annotations {
		if e.Annotations[i].ID == id {
			e.Annotations[i].Text = text
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.Emit(EventEntitiesChanged, nil)
	}
}

// SelectedMeasurement returns a copy of the selected measurement, if any.
func (s *State) SelectedMeasurement() (annotation.Measurement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selection.Kind != SelectMeasurement {
		return annotation.Measurement{}, false
	}
	for _, m := range s.currentRLocked().Measurements {
		if m.ID == s.selection.ID {
			return m, true
		}
	}
	return annotation.Measurement{}, false
}

// SelectedAnnotation returns a copy of the selected annotation, if any.
func (s *State) SelectedAnnotation() (annotation.Annotation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selection.Kind != SelectAnnotation {
		return annotation.Annotation{}, false
	}
	for _, a := range s.currentRLocked().Annotations {
		if a.ID == s.selection.ID {
			return a, true
		}
	}
	return annotation.Annotation{}, false
}

// ---- history ----

// CanUndo reports whether an undo step is available.
func (s *State) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (s *State) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.CanRedo()
}

// Undo restores the previous snapshot of the active image's collections.
func (s *State) Undo() bool {
	s.mu.Lock()
	snap, ok := s.hist.Undo(s.snapshotLocked())
	if ok {
		e := s.currentLocked()
		e.Annotations = snap.Annotations
		e.Measurements = snap.Measurements
		s.selection = Selection{}
	}
	s.mu.Unlock()
	if ok {
		s.Emit(EventEntitiesChanged, nil)
		s.Emit(EventSelectionChanged, Selection{})
	}
	return ok
}

// Redo restores the next snapshot if one is available.
func (s *State) Redo() bool {
	s.mu.Lock()
	snap, ok := s.hist.Redo()
	if ok {
		e := s.currentLocked()
		e.Annotations = snap.Annotations
		e.Measurements = snap.Measurements
		s.selection = Selection{}
	}
	s.mu.Unlock()
	if ok {
		s.Emit(EventEntitiesChanged, nil)
		s.Emit(EventSelectionChanged, Selection{})
	}
	return ok
}

// ---- AI overlays ----

// SetDetections replaces the render-only detection list for an image.
func (s *State) SetDetections(imageID string, dets []overlay.Detection) {
	s.mu.Lock()
	e, ok := s.entities[imageID]
	if !ok {
		e = &imageEntities{}
		s.entities[imageID] = e
	}
	e.Detections = dets
	s.mu.Unlock()
	s.Emit(EventOverlaysChanged, imageID)
}

// Detections returns the active image's detections, read-only.
func (s *State) Detections() []overlay.Detection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentRLocked().Detections
}

// SetHeatmap attaches (or clears, with nil) a heatmap overlay to an image.
// A heatmap arriving without an opacity gets the configured default.
func (s *State) SetHeatmap(imageID string, hm *overlay.Heatmap) {
	s.mu.Lock()
	e, ok := s.entities[imageID]
	if !ok {
		e = &imageEntities{}
		s.entities[imageID] = e
	}
	if hm != nil && hm.Opacity == 0 {
		hm.Opacity = s.defaultHeatmap
	}
	e.Heatmap = hm
	s.mu.Unlock()
	s.Emit(EventOverlaysChanged, imageID)
}

// Heatmap returns the active image's heatmap overlay, nil if none.
func (s *State) Heatmap() *overlay.Heatmap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentRLocked().Heatmap
}

// SetHeatmapOpacity adjusts the active image's heatmap opacity.
func (s *State) SetHeatmapOpacity(opacity float64) {
	s.mu.Lock()
	e := s.currentLocked()
	if e.Heatmap == nil {
		s.mu.Unlock()
		return
	}
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	e.Heatmap.Opacity = opacity
	id := s.activeID
	s.mu.Unlock()
	s.Emit(EventOverlaysChanged, id)
}

// ---- draw defaults ----

// DefaultColor returns the default draw color for new entities.
func (s *State) DefaultColor() color.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultColor
}

// SetDefaultColor stores the default draw color.
func (s *State) SetDefaultColor(c color.RGBA) {
	s.mu.Lock()
	s.defaultColor = c
	s.mu.Unlock()
}

// DefaultStrokeWidth returns the default stroke width for new annotations.
func (s *State) DefaultStrokeWidth() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultWidth
}

// SetDefaultStrokeWidth stores the default stroke width.
func (s *State) SetDefaultStrokeWidth(w float64) {
	s.mu.Lock()
	if w > 0 {
		s.defaultWidth = w
	}
	s.mu.Unlock()
}

// SetDefaultHeatmapOpacity stores the opacity given to heatmaps that arrive
// without one.
func (s *State) SetDefaultHeatmapOpacity(opacity float64) {
	s.mu.Lock()
	if opacity > 0 && opacity <= 1 {
		s.defaultHeatmap = opacity
	}
	s.mu.Unlock()
}
