// Package gui is the desktop rendition of the glossary entry form.
package gui

import (
	"errors"

	"texglossary/internal/form"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

const (
	AppID       = "io.github.texglossary"
	WindowTitle = "TeX glossary"
)

// View holds the form widgets and forwards user actions to the form
type View struct {
	window  fyne.Window
	actions form.Actions
	logger  *zap.Logger

	word         *undoEntry
	partOfSpeech *undoEntry
	definition   *undoEntry
	submitButton *widget.Button
	undoButton   *widget.Button

	content fyne.CanvasObject
}

// NewView builds the form inside window
func NewView(window fyne.Window, actions form.Actions, logger *zap.Logger) *View {
	v := &View{
		window:  window,
		actions: actions,
		logger:  logger,
	}

	v.setupComponents()
	v.setupLayout()
	v.setupShortcuts()
	v.refreshUndo()

	return v
}

func (v *View) setupComponents() {
	v.word = newUndoEntry(v.Undo)
	v.partOfSpeech = newUndoEntry(v.Undo)
	v.partOfSpeech.SetPlaceHolder("optional")
	v.definition = newUndoEntry(v.Undo)

	for _, entry := range []*undoEntry{v.word, v.partOfSpeech, v.definition} {
		entry.OnSubmitted = func(string) { v.Submit() }
	}

	v.submitButton = widget.NewButton("Append to TeX", v.Submit)
	v.submitButton.Importance = widget.HighImportance
	v.undoButton = widget.NewButton("Undo", v.Undo)
}

func (v *View) setupLayout() {
	fields := widget.NewForm(
		widget.NewFormItem("Word", v.word),
		widget.NewFormItem("Part of speech", v.partOfSpeech),
		widget.NewFormItem("Definition", v.definition),
	)
	v.content = container.NewVBox(
		fields,
		container.NewGridWithColumns(2, v.submitButton, v.undoButton),
	)
}

// setupShortcuts binds Ctrl+Z (Cmd+Z on macOS) to Undo while no entry has focus
func (v *View) setupShortcuts() {
	v.window.Canvas().AddShortcut(&fyne.ShortcutUndo{}, func(fyne.Shortcut) {
		v.Undo()
	})
}

// Content returns the root canvas object of the form
func (v *View) Content() fyne.CanvasObject {
	return v.content
}

// Submit appends the entered entry
func (v *View) Submit() {
	res := v.actions.Submit(v.word.Text, v.partOfSpeech.Text, v.definition.Text)
	if res.OK() {
		v.word.SetText("")
		v.partOfSpeech.SetText("")
		v.definition.SetText("")
		v.window.Canvas().Focus(v.word)
	}
	v.show(res)
}

// Undo removes the last appended entry
func (v *View) Undo() {
	v.show(v.actions.Undo())
}

func (v *View) show(res form.Result) {
	v.refreshUndo()

	if res.Severity == form.SeverityError {
		v.logger.Error("Glossary action failed", zap.Error(res.Err))
		dialog.ShowError(errors.New(res.Message), v.window)
		return
	}
	dialog.ShowInformation(res.Title, res.Message, v.window)
}

func (v *View) refreshUndo() {
	if v.actions.UndoEnabled() {
		v.undoButton.Enable()
	} else {
		v.undoButton.Disable()
	}
}

// Run opens the form window and blocks until it is closed
func Run(actions form.Actions, logger *zap.Logger) {
	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(WindowTitle)

	view := NewView(window, actions, logger)
	window.SetContent(view.Content())
	window.Resize(fyne.NewSize(400, 200))
	window.Canvas().Focus(view.word)

	logger.Info("Desktop form started")
	window.ShowAndRun()
}
