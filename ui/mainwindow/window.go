// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"radview/internal/app"
	"radview/internal/render"
	"radview/internal/tools"
	"radview/internal/version"
	"radview/internal/xray"
	"radview/ui/canvas"
	"radview/ui/dialogs"
	"radview/ui/panels"
	"radview/ui/prefs"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	machine   *tools.Machine
	prefs     *prefs.Prefs
	viewport  *canvas.Viewport
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	studyPath string
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("RadView")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}
	mw.machine = tools.NewMachine(state)
	mw.machine.OnTextCommitted = mw.onTextCommitted

	mw.setupUI()
	mw.setupMenus()
	mw.setupKeys()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.viewport = canvas.NewViewport(mw.state, mw.machine)
	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	canvasArea := container.NewBorder(
		mw.createToolbar(), // top
		nil, nil, nil,
		mw.viewport, // center
	)

	split := container.NewHSplit(mw.sidePanel.Container(), canvasArea)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)
	mw.SetContent(content)
}

// toolOrder fixes the toolbar button layout.
var toolOrder = []app.Tool{
	app.ToolPan,
	app.ToolZoom,
	app.ToolWindowLevel,
	app.ToolSelect,
	app.ToolFreehand,
	app.ToolArrow,
	app.ToolEllipse,
	app.ToolRectangle,
	app.ToolText,
	app.ToolMarker,
	app.ToolDistance,
	app.ToolAngle,
	app.ToolArea,
	app.ToolCobbAngle,
}

// createToolbar creates the tool buttons, window presets, and view
// shortcuts.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	toolBtns := make([]fyne.CanvasObject, 0, len(toolOrder))
	for _, t := range toolOrder {
		tool := t
		toolBtns = append(toolBtns, widget.NewButton(tool.String(), func() {
			mw.state.SetTool(tool)
		}))
	}

	presets := xray.Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	presetSelect := widget.NewSelect(names, func(name string) {
		for _, p := range presets {
			if p.Name == name {
				mw.state.ApplyPreset(p)
				return
			}
		}
	})
	presetSelect.PlaceHolder = "Preset"

	fitBtn := widget.NewButton("Fit", mw.state.FitToScreen)
	undoBtn := widget.NewButton("Undo", func() { mw.state.Undo() })
	redoBtn := widget.NewButton("Redo", func() { mw.state.Redo() })

	row := container.NewHBox(toolBtns...)
	row.Add(widget.NewSeparator())
	row.Add(presetSelect)
	row.Add(fitBtn)
	row.Add(undoBtn)
	row.Add(redoBtn)
	return container.NewHScroll(row)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Study...", mw.onOpenStudy),
		fyne.NewMenuItem("Save Study", mw.onSaveStudy),
		fyne.NewMenuItem("Save Study As...", mw.onSaveStudyAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export View as PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { mw.state.Undo() }),
		fyne.NewMenuItem("Redo", func() { mw.state.Redo() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Selected", func() { mw.state.DeleteSelected() }),
		fyne.NewMenuItem("Clear All Findings", func() { mw.state.ClearEntities() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.machine.Wheel(1) }),
		fyne.NewMenuItem("Zoom Out", func() { mw.machine.Wheel(-1) }),
		fyne.NewMenuItem("Fit to Screen", mw.state.FitToScreen),
		fyne.NewMenuItem("Actual Size", func() { mw.state.SetZoom(1) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Rotate 90° CW", func() { mw.state.RotateBy(90) }),
		fyne.NewMenuItem("Rotate 90° CCW", func() { mw.state.RotateBy(-90) }),
		fyne.NewMenuItem("Flip Horizontal", mw.state.ToggleFlipHorizontal),
		fyne.NewMenuItem("Flip Vertical", mw.state.ToggleFlipVertical),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Invert Grayscale", func() {
			mw.state.SetInvert(!mw.state.Windowing().Invert)
		}),
		fyne.NewMenuItem("Window/Level...", func() {
			dialogs.ShowWindowLevel(mw.Window, mw.state)
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupKeys binds the keyboard shortcuts on the window canvas.
func (mw *MainWindow) setupKeys() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.state.DeleteSelected()
		case fyne.KeyEscape:
			mw.machine.Cancel()
			mw.viewport.Refresh()
		case fyne.KeyF:
			mw.state.FitToScreen()
		}
	})
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageChanged, func(data interface{}) {
		if id, ok := data.(string); ok {
			if l := mw.state.LayerByID(id); l != nil && l.Path != "" {
				mw.SetTitle("RadView - " + filepath.Base(l.Path))
			}
		}
		mw.updateStatus("Image loaded")
	})

	mw.state.On(app.EventToolChanged, func(data interface{}) {
		if t, ok := data.(app.Tool); ok {
			mw.updateStatus("Tool: " + t.String())
		}
	})

	mw.state.On(app.EventWindowingChanged, func(interface{}) {
		w := mw.state.Windowing()
		mw.updateStatus(fmt.Sprintf("Window C %.0f / W %.0f", w.Center, w.Width))
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// onTextCommitted opens the text entry dialog for a freshly placed text
// annotation. An empty entry leaves the annotation as a plain point marker
// with no label.
func (mw *MainWindow) onTextCommitted(id string) {
	dialogs.ShowTextEntry(mw.Window, "", func(text string) {
		if text != "" {
			mw.state.SetAnnotationText(id, text)
		}
	})
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastImageDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastImageDir, filepath.Dir(filePath))
	if err := mw.prefs.Save(); err != nil {
		slog.Warn("failed to save preferences", "error", err)
	}
}

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		layer, err := xray.Load(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.state.AddLayer(layer)
		slog.Info("image loaded", "path", path, "width", layer.Size().Width, "height", layer.Size().Height)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".tiff", ".tif", ".png", ".jpg", ".jpeg"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenStudy() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadStudy(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.studyPath = path
		mw.updateStatus("Study loaded: " + filepath.Base(path))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".rvstudy"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveStudy() {
	if mw.studyPath == "" {
		mw.onSaveStudyAs()
		return
	}
	if err := mw.state.SaveStudy(mw.studyPath); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Study saved")
}

func (mw *MainWindow) onSaveStudyAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".rvstudy" {
			path += ".rvstudy"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveStudy(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.studyPath = path
		mw.updateStatus("Study saved")
	}, mw.Window)
	fd.SetFileName("study.rvstudy")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// onExportPNG writes the current composited view to a PNG file through the
// same compositor the canvas paints with.
func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}

		dims := mw.state.CanvasDims()
		w, h := int(dims.Width), int(dims.Height)
		if w <= 0 || h <= 0 {
			w, h = 1024, 768
		}
		frame := render.Frame(mw.state, w, h)

		f, err := os.Create(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		defer f.Close()
		if err := png.Encode(f, frame); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("view.png")
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About RadView",
		fmt.Sprintf("RadView v%s\n\n"+
			"An interactive radiograph viewer with annotation,\n"+
			"measurement, and AI overlay support.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
