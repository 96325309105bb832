package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when word or definition is empty
	ErrValidation = errors.New("word and definition are required")

	// ErrNothingToUndo is returned when no append is remembered
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrUndoMismatch is returned when the remembered block is no longer in the glossary file
	ErrUndoMismatch = errors.New("last entry not found in glossary file")
)

// IOError wraps a failed open, read or write on the glossary file
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
