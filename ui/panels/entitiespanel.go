package panels

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"radview/internal/annotation"
	"radview/internal/app"
)

// entityRow is one list entry: an annotation or a measurement.
type entityRow struct {
	kind app.SelectionKind
	id   string
	text string
}

// EntitiesPanel lists the active image's annotations and measurements.
// Selecting a row selects the entity on the canvas; the Delete button
// removes it.
type EntitiesPanel struct {
	state *app.State
	list  *widget.List
	rows  []entityRow
	box   fyne.CanvasObject
}

// NewEntitiesPanel creates the findings list panel.
func NewEntitiesPanel(state *app.State) *EntitiesPanel {
	ep := &EntitiesPanel{state: state}

	ep.list = widget.NewList(
		func() int { return len(ep.rows) },
		func() fyne.CanvasObject { return widget.NewLabel("entity") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && i < len(ep.rows) {
				o.(*widget.Label).SetText(ep.rows[i].text)
			}
		},
	)
	ep.list.OnSelected = func(i widget.ListItemID) {
		if i < 0 || i >= len(ep.rows) {
			return
		}
		row := ep.rows[i]
		ep.state.Select(app.Selection{Kind: row.kind, ID: row.id})
	}

	deleteBtn := widget.NewButton("Delete", func() { state.DeleteSelected() })
	clearBtn := widget.NewButton("Clear All", func() { state.ClearEntities() })

	for _, ev := range []app.EventType{app.EventEntitiesChanged, app.EventImageChanged} {
		state.On(ev, func(interface{}) { ep.Reload() })
	}

	ep.box = container.NewBorder(
		widget.NewLabel("Findings"),
		container.NewHBox(deleteBtn, clearBtn),
		nil, nil,
		ep.list,
	)
	ep.Reload()
	return ep
}

func annotationRowText(a annotation.Annotation) string {
	label := string(a.Kind)
	if a.Kind == annotation.Text && a.Text != "" {
		label += ": " + a.Text
	}
	return label
}

func measurementRowText(m annotation.Measurement) string {
	return string(m.Kind) + ": " + strconv.FormatFloat(m.Value, 'f', 1, 64) + " " + m.Unit
}

// Reload rebuilds the rows from the active image's collections.
func (ep *EntitiesPanel) Reload() {
	ep.rows = ep.rows[:0]
	for _, a := range ep.state.Annotations() {
		ep.rows = append(ep.rows, entityRow{kind: app.SelectAnnotation, id: a.ID, text: annotationRowText(a)})
	}
	for _, m := range ep.state.Measurements() {
		ep.rows = append(ep.rows, entityRow{kind: app.SelectMeasurement, id: m.ID, text: measurementRowText(m)})
	}
	ep.list.Refresh()
}

// Container returns the panel content.
func (ep *EntitiesPanel) Container() fyne.CanvasObject {
	return ep.box
}
