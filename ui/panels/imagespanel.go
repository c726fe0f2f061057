package panels

import (
	"path/filepath"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"radview/internal/app"
)

// ImagesPanel lists the loaded radiographs and switches the active one.
type ImagesPanel struct {
	state *app.State
	list  *widget.List
	ids   []string
	box   fyne.CanvasObject
}

// NewImagesPanel creates the image list panel.
func NewImagesPanel(state *app.State) *ImagesPanel {
	ip := &ImagesPanel{state: state}

	ip.list = widget.NewList(
		func() int { return len(ip.ids) },
		func() fyne.CanvasObject { return widget.NewLabel("image") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < 0 || i >= len(ip.ids) {
				return
			}
			label := o.(*widget.Label)
			name := ip.ids[i]
			if l := ip.state.LayerByID(name); l != nil && l.Path != "" {
				name = filepath.Base(l.Path)
			}
			label.SetText(name)
		},
	)
	ip.list.OnSelected = func(i widget.ListItemID) {
		if i >= 0 && i < len(ip.ids) {
			ip.state.SetActiveImage(ip.ids[i])
		}
	}

	state.On(app.EventImageChanged, func(interface{}) { ip.Reload() })

	ip.box = container.NewBorder(widget.NewLabel("Loaded images"), nil, nil, nil, ip.list)
	ip.Reload()
	return ip
}

// Reload refreshes the image list from the state.
func (ip *ImagesPanel) Reload() {
	ip.ids = ip.state.ImageIDs()
	sort.Strings(ip.ids)
	ip.list.Refresh()
}

// Container returns the panel content.
func (ip *ImagesPanel) Container() fyne.CanvasObject {
	return ip.box
}
