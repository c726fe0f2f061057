// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2/container"

	"radview/internal/app"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	imagesPanel   *ImagesPanel
	entitiesPanel *EntitiesPanel
	overlaysPanel *OverlaysPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	sp.imagesPanel = NewImagesPanel(state)
	sp.entitiesPanel = NewEntitiesPanel(state)
	sp.overlaysPanel = NewOverlaysPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Images", sp.imagesPanel.Container()),
		container.NewTabItem("Findings", sp.entitiesPanel.Container()),
		container.NewTabItem("AI", sp.overlaysPanel.Container()),
	)

	return sp
}

// Container returns the side panel for embedding in layouts.
func (sp *SidePanel) Container() *container.AppTabs {
	return sp.container
}
