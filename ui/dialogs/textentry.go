// Package dialogs provides the modal dialogs of the application.
package dialogs

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowTextEntry prompts for the content of a text annotation and calls
// onDone with the entered string. Cancelling calls onDone with "".
func ShowTextEntry(win fyne.Window, initial string, onDone func(text string)) {
	entry := widget.NewEntry()
	entry.SetText(initial)
	entry.SetPlaceHolder("Annotation text")

	items := []*widget.FormItem{
		widget.NewFormItem("Text", entry),
	}
	dialog.ShowForm("Text Annotation", "OK", "Cancel", items, func(ok bool) {
		if !ok {
			onDone("")
			return
		}
		onDone(entry.Text)
	}, win)
}
