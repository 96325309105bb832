package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// undoEntry is a single line entry whose undo shortcut undoes the last glossary append
// instead of the last text edit.
type undoEntry struct {
	widget.Entry
	onUndo func()
}

func newUndoEntry(onUndo func()) *undoEntry {
	e := &undoEntry{onUndo: onUndo}
	e.ExtendBaseWidget(e)
	return e
}

// TypedShortcut handles the undo shortcut and leaves the rest to the entry
func (e *undoEntry) TypedShortcut(shortcut fyne.Shortcut) {
	if _, ok := shortcut.(*fyne.ShortcutUndo); ok {
		e.onUndo()
		return
	}
	e.Entry.TypedShortcut(shortcut)
}
