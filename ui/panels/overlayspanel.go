package panels

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"radview/internal/app"
)

// OverlaysPanel controls the AI overlays: the detection list and the
// heatmap opacity. Detections are read-only; the panel never edits them.
type OverlaysPanel struct {
	state *app.State

	list    *widget.List
	labels  []string
	opacity *widget.Slider
	box     fyne.CanvasObject
}

// NewOverlaysPanel creates the AI overlays panel.
func NewOverlaysPanel(state *app.State) *OverlaysPanel {
	op := &OverlaysPanel{state: state}

	op.list = widget.NewList(
		func() int { return len(op.labels) },
		func() fyne.CanvasObject { return widget.NewLabel("detection") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && i < len(op.labels) {
				o.(*widget.Label).SetText(op.labels[i])
			}
		},
	)

	op.opacity = widget.NewSlider(0, 1)
	op.opacity.Step = 0.05
	op.opacity.OnChanged = func(v float64) {
		state.SetHeatmapOpacity(v)
	}

	for _, ev := range []app.EventType{app.EventOverlaysChanged, app.EventImageChanged} {
		state.On(ev, func(interface{}) { op.Reload() })
	}

	op.box = container.NewBorder(
		widget.NewLabel("AI findings"),
		container.NewVBox(widget.NewLabel("Heatmap opacity"), op.opacity),
		nil, nil,
		op.list,
	)
	op.Reload()
	return op
}

// Reload rebuilds the detection labels and slider position.
func (op *OverlaysPanel) Reload() {
	op.labels = op.labels[:0]
	for _, d := range op.state.Detections() {
		label := d.Label()
		if label == "" {
			label = "finding"
		}
		label += " " + strconv.Itoa(int(d.Confidence*100+0.5)) + "%"
		op.labels = append(op.labels, label)
	}
	if hm := op.state.Heatmap(); hm != nil {
		op.opacity.Value = hm.Opacity
		op.opacity.Refresh()
	}
	op.list.Refresh()
}

// Container returns the panel content.
func (op *OverlaysPanel) Container() fyne.CanvasObject {
	return op.box
}
