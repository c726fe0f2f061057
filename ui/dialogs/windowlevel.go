package dialogs

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"radview/internal/app"
	"radview/internal/xray"
)

// ShowWindowLevel opens a dialog with numeric center/width entries and an
// invert check, applying the values on confirm.
func ShowWindowLevel(win fyne.Window, state *app.State) {
	w := state.Windowing()

	centerEntry := widget.NewEntry()
	centerEntry.SetText(strconv.FormatFloat(w.Center, 'f', 0, 64))
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.FormatFloat(w.Width, 'f', 0, 64))
	invertCheck := widget.NewCheck("", nil)
	invertCheck.SetChecked(w.Invert)

	items := []*widget.FormItem{
		widget.NewFormItem("Center", centerEntry),
		widget.NewFormItem("Width", widthEntry),
		widget.NewFormItem("Invert", invertCheck),
	}
	dialog.ShowForm("Window / Level", "Apply", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		center, err1 := strconv.ParseFloat(centerEntry.Text, 64)
		width, err2 := strconv.ParseFloat(widthEntry.Text, 64)
		if err1 != nil || err2 != nil {
			dialog.ShowInformation("Window / Level", "Center and width must be numbers.", win)
			return
		}
		state.SetWindowing(xray.Windowing{Center: center, Width: width, Invert: invertCheck.Checked})
	}, win)
}
