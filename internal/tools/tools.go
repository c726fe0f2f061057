// Package tools translates raw pointer gestures into viewport state
// mutations. The Machine is a small per-viewport state machine: the active
// tool decides whether a gesture pans the view, adjusts window/level, drags
// a shape into existence, or collects one click of a multi-click
// measurement. The canvas widget forwards its events here and renders
// whatever the state says afterwards.
package tools

import (
	"math"

	"radview/internal/annotation"
	"radview/internal/app"
	"radview/pkg/geometry"
)

const (
	// HitTolerance is the screen-space pick radius for selection and
	// handle grabs, in pixels.
	HitTolerance = 8.0

	// wheelZoomStep is the zoom factor applied per scroll notch.
	wheelZoomStep = 1.25

	// dragZoomRate converts vertical drag pixels into a zoom factor
	// exponent; ~140 px doubles the zoom.
	dragZoomRate = 0.005

	// windowWidthRate and windowCenterRate convert drag pixels into
	// 16-bit intensity units. Horizontal motion widens the window,
	// vertical motion raises the center.
	windowWidthRate  = 100.0
	windowCenterRate = 100.0
)

// Machine interprets pointer input for one viewport.
type Machine struct {
	state *app.State

	dragging bool
	last     geometry.Point2D // screen space, for deltas

	// Select-tool drag targets. handle >= 0 means a single point of the
	// selected entity is being repositioned; moveSel means the whole
	// entity follows the pointer.
	handle  int
	moveSel bool

	// OnTextCommitted, when set, is called with the ID of a freshly
	// committed text annotation so the host can open its entry dialog.
	OnTextCommitted func(id string)
}

// NewMachine creates a tool machine bound to a viewport state.
func NewMachine(state *app.State) *Machine {
	return &Machine{state: state, handle: -1}
}

// PointerDown begins a gesture at a screen-space point.
func (m *Machine) PointerDown(screen geometry.Point2D) {
	m.last = screen
	tool := m.state.Tool()
	img := m.state.ScreenToImage(screen)

	switch {
	case tool == app.ToolPan, tool == app.ToolZoom, tool == app.ToolWindowLevel:
		m.dragging = true

	case tool == app.ToolSelect:
		m.dragging = true
		m.handle = m.grabHandle(screen)
		if m.handle >= 0 {
			return
		}
		sel := m.state.SelectAt(img, m.imageTolerance())
		m.moveSel = sel.Kind != app.SelectNone

	case tool.MultiClick():
		// Each click contributes one point; commit happens on the
		// pointer-up that completes the count.
		m.state.AppendDraft(img)

	case tool.Draws():
		m.dragging = true
		m.state.ClearDraft()
		m.state.AppendDraft(img)
	}
}

// PointerMove continues a gesture. Screen-space point.
func (m *Machine) PointerMove(screen geometry.Point2D) {
	if !m.dragging {
		m.last = screen
		return
	}
	delta := screen.Sub(m.last)
	tool := m.state.Tool()

	switch {
	case tool == app.ToolPan:
		m.state.PanBy(delta)

	case tool == app.ToolZoom:
		// Drag up to zoom in, down to zoom out.
		m.state.ZoomBy(math.Exp(-delta.Y * dragZoomRate))

	case tool == app.ToolWindowLevel:
		m.state.AdjustWindow(delta.X*windowWidthRate, -delta.Y*windowCenterRate)

	case tool == app.ToolSelect:
		img := m.state.ScreenToImage(screen)
		if m.handle >= 0 {
			m.state.MoveSelectedPoint(m.handle, img)
		} else if m.moveSel {
			prev := m.state.ScreenToImage(m.last)
			m.state.MoveSelected(img.Sub(prev))
		}

	case tool == app.ToolFreehand:
		m.state.AppendDraft(m.state.ScreenToImage(screen))

	case tool.Draws() && !tool.MultiClick():
		// Two-point drag tools: the first move adds the second point,
		// later moves slide it.
		img := m.state.ScreenToImage(screen)
		if len(m.state.Draft()) < 2 {
			m.state.AppendDraft(img)
		} else {
			m.state.SetDraftLast(img)
		}
	}
	m.last = screen
}

// PointerUp ends a gesture. Drag-based draw tools commit here when the
// draft meets its minimum point count; an eligible multi-click buffer
// commits on the click that completes it. Under-count buffers from drag
// tools are discarded, so a click without a drag draws nothing.
func (m *Machine) PointerUp(screen geometry.Point2D) {
	tool := m.state.Tool()
	wasDragging := m.dragging
	m.dragging = false
	m.handle = -1
	m.moveSel = false
	m.last = screen

	switch {
	case tool.MultiClick():
		if kind, ok := tool.MeasureKind(); ok {
			if draft := m.state.Draft(); len(draft) >= kind.RequiredPoints() {
				m.commitMeasurement(kind, draft)
			}
		}

	case tool.Draws() && wasDragging:
		draft := m.state.Draft()
		if kind, ok := tool.AnnotationKind(); ok {
			if len(draft) >= kind.MinPoints() {
				m.commitAnnotation(kind, draft)
			} else {
				m.state.ClearDraft()
			}
			return
		}
		if kind, ok := tool.MeasureKind(); ok {
			if len(draft) >= kind.RequiredPoints() {
				m.commitMeasurement(kind, draft)
			} else {
				m.state.ClearDraft()
			}
		}
	}
}

// Cancel aborts the in-progress gesture, behaving like a pointer-up at the
// last known position: an eligible draft commits, anything else is
// discarded. Bound to the Escape key.
func (m *Machine) Cancel() {
	if m.dragging {
		m.PointerUp(m.last)
		return
	}
	// Mid multi-click buffer: never eligible between clicks, discard.
	m.state.ClearDraft()
}

// Wheel applies one scroll notch of zoom; positive dy zooms in.
func (m *Machine) Wheel(dy float64) {
	if dy > 0 {
		m.state.ZoomBy(wheelZoomStep)
	} else if dy < 0 {
		m.state.ZoomBy(1 / wheelZoomStep)
	}
}

// DoubleTap deletes the entity under the pointer when the select tool is
// active.
func (m *Machine) DoubleTap(screen geometry.Point2D) {
	if m.state.Tool() != app.ToolSelect {
		return
	}
	m.state.DeleteAt(m.state.ScreenToImage(screen), m.imageTolerance())
}

func (m *Machine) commitAnnotation(kind annotation.Kind, points []geometry.Point2D) {
	if kind.ExactPoints() {
		points = points[:kind.MinPoints()]
	}
	a := annotation.New(kind, points, m.state.DefaultColor(), m.state.DefaultStrokeWidth())
	committed := m.state.AddAnnotation(a)
	m.state.ClearDraft()
	if committed && kind == annotation.Text && m.OnTextCommitted != nil {
		m.OnTextCommitted(a.ID)
	}
}

func (m *Machine) commitMeasurement(kind annotation.MeasureKind, points []geometry.Point2D) {
	points = points[:kind.RequiredPoints()]
	m.state.AddMeasurement(annotation.NewMeasurement(kind, points, m.state.DefaultColor()))
	m.state.ClearDraft()
}

// imageTolerance converts the screen-space pick radius to image space so
// hit testing stays a constant pixel size at any zoom.
func (m *Machine) imageTolerance() float64 {
	zoom := m.state.View().Zoom
	if zoom <= 0 {
		return HitTolerance
	}
	return HitTolerance / zoom
}

// grabHandle returns the index of the selected entity's point within the
// pick radius of the screen point, or -1.
func (m *Machine) grabHandle(screen geometry.Point2D) int {
	var points []geometry.Point2D
	if a, ok := m.state.SelectedAnnotation(); ok {
		points = a.Points
	} else if ms, ok := m.state.SelectedMeasurement(); ok {
		points = ms.Points
	}
	for i, p := range points {
		if m.state.ImageToScreen(p).Distance(screen) <= HitTolerance {
			return i
		}
	}
	return -1
}
