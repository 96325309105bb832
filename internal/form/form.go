// Package form connects the glossary service to interactive front-ends.
// Every front-end submits three strings and requests undo; it renders the returned Result.
package form

import (
	"errors"
	"fmt"

	"texglossary/internal/domain"
	"texglossary/internal/service"

	"go.uber.org/zap"
)

// Severity tells the front-end how to present a Result
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Result is the outcome of a form action
type Result struct {
	Severity    Severity
	Title       string
	Message     string
	UndoEnabled bool
	Entry       *domain.Entry
	Err         error
}

// OK reports whether the action succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// Actions is the capability a form front-end drives
type Actions interface {
	Submit(word, partOfSpeech, definition string) Result
	Undo() Result
	UndoEnabled() bool
}

// Controller implements Actions on top of a GlossaryService
type Controller struct {
	glossary *service.GlossaryService
	logger   *zap.Logger
}

// NewController creates a new form controller
func NewController(glossary *service.GlossaryService, logger *zap.Logger) *Controller {
	return &Controller{
		glossary: glossary,
		logger:   logger,
	}
}

// Path returns the glossary file the controller writes to
func (c *Controller) Path() string {
	return c.glossary.Path()
}

// UndoEnabled reports whether Undo currently has something to remove
func (c *Controller) UndoEnabled() bool {
	return c.glossary.CanUndo()
}

// Submit appends an entry
func (c *Controller) Submit(word, partOfSpeech, definition string) Result {
	entry, err := c.glossary.Append(word, partOfSpeech, definition)
	if err != nil {
		return c.failure(err)
	}

	return Result{
		Severity:    SeverityInfo,
		Title:       "Saved",
		Message:     fmt.Sprintf("Appended '%s' to %s.", entry.Word, c.glossary.Path()),
		UndoEnabled: c.glossary.CanUndo(),
		Entry:       entry,
	}
}

// Undo removes the most recently submitted entry
func (c *Controller) Undo() Result {
	entry, err := c.glossary.UndoLast()
	if err != nil {
		return c.failure(err)
	}

	return Result{
		Severity:    SeverityInfo,
		Title:       "Undone",
		Message:     fmt.Sprintf("Removed '%s' from %s.", entry.Word, c.glossary.Path()),
		UndoEnabled: c.glossary.CanUndo(),
		Entry:       entry,
	}
}

func (c *Controller) failure(err error) Result {
	res := Result{
		UndoEnabled: c.glossary.CanUndo(),
		Err:         err,
	}

	var ioErr *domain.IOError
	switch {
	case errors.Is(err, domain.ErrValidation):
		res.Severity = SeverityWarning
		res.Title = "Missing input"
		res.Message = "Word and definition are required."
	case errors.Is(err, domain.ErrNothingToUndo):
		res.Severity = SeverityWarning
		res.Title = "Nothing to undo"
		res.Message = "There is no entry to undo."
	case errors.Is(err, domain.ErrUndoMismatch):
		res.Severity = SeverityWarning
		res.Title = "Undo failed"
		res.Message = fmt.Sprintf("The last entry is no longer in %s; the file was left unchanged.", c.glossary.Path())
	case errors.As(err, &ioErr):
		res.Severity = SeverityError
		res.Title = "File error"
		res.Message = fmt.Sprintf("Could not %s %s: %v", ioErr.Op, ioErr.Path, ioErr.Err)
	default:
		res.Severity = SeverityError
		res.Title = "Error"
		res.Message = err.Error()
	}

	c.logger.Debug("Form action failed",
		zap.String("severity", res.Severity.String()),
		zap.Error(err),
	)

	return res
}
