// Package canvas provides the interactive viewport widget. It is a thin
// shell: pointer events go to the tool machine, frames come from the
// headless compositor, and state change events trigger repaints.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"radview/internal/app"
	"radview/internal/render"
	"radview/internal/tools"
	"radview/pkg/geometry"
)

// Viewport displays one radiograph with its overlays and routes input to
// the active tool.
type Viewport struct {
	widget.BaseWidget

	state   *app.State
	machine *tools.Machine

	raster *fynecanvas.Raster

	dragging bool
	last     geometry.Point2D
}

// NewViewport creates a viewport bound to a state and tool machine.
func NewViewport(state *app.State, machine *tools.Machine) *Viewport {
	vp := &Viewport{state: state, machine: machine}

	vp.raster = fynecanvas.NewRaster(vp.draw)
	vp.raster.ScaleMode = fynecanvas.ImageScalePixels
	vp.raster.SetMinSize(fyne.NewSize(400, 300))

	for _, ev := range []app.EventType{
		app.EventViewChanged,
		app.EventWindowingChanged,
		app.EventEntitiesChanged,
		app.EventSelectionChanged,
		app.EventImageChanged,
		app.EventOverlaysChanged,
	} {
		state.On(ev, func(interface{}) { vp.raster.Refresh() })
	}

	vp.ExtendBaseWidget(vp)
	return vp
}

// draw is the raster callback: it records the surface size (re-fitting on
// resize) and composites a fresh frame.
func (vp *Viewport) draw(w, h int) image.Image {
	vp.state.SetCanvasSize(geometry.Size{Width: float64(w), Height: float64(h)})
	return render.Frame(vp.state, w, h)
}

func (vp *Viewport) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(vp.raster)
}

// Dragged forwards drag motion to the tool machine, synthesizing the
// pointer-down from the first event of the gesture.
func (vp *Viewport) Dragged(ev *fyne.DragEvent) {
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	if !vp.dragging {
		vp.dragging = true
		start := geometry.Point2D{
			X: pos.X - float64(ev.Dragged.DX),
			Y: pos.Y - float64(ev.Dragged.DY),
		}
		vp.machine.PointerDown(start)
	}
	vp.machine.PointerMove(pos)
	vp.last = pos
}

// DragEnd completes the gesture at the last known position.
func (vp *Viewport) DragEnd() {
	if !vp.dragging {
		return
	}
	vp.dragging = false
	vp.machine.PointerUp(vp.last)
}

// Tapped handles a click without drag: one down/up pair at the same spot.
// This is how multi-click measurement tools collect their points and how
// the select tool picks entities.
func (vp *Viewport) Tapped(ev *fyne.PointEvent) {
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	vp.machine.PointerDown(pos)
	vp.machine.PointerUp(pos)
	vp.last = pos
}

// DoubleTapped deletes the entity under the pointer with the select tool.
func (vp *Viewport) DoubleTapped(ev *fyne.PointEvent) {
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	vp.machine.DoubleTap(pos)
}

// Scrolled zooms with the wheel regardless of the active tool.
func (vp *Viewport) Scrolled(ev *fyne.ScrollEvent) {
	vp.machine.Wheel(float64(ev.Scrolled.DY))
}

// MouseIn, MouseMoved, MouseOut keep the widget hoverable so fyne delivers
// scroll events reliably.
func (vp *Viewport) MouseIn(*desktop.MouseEvent)    {}
func (vp *Viewport) MouseMoved(ev *desktop.MouseEvent) {
	vp.last = geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
}
func (vp *Viewport) MouseOut() {}

// Refresh repaints the raster.
func (vp *Viewport) Refresh() {
	vp.raster.Refresh()
	vp.BaseWidget.Refresh()
}
