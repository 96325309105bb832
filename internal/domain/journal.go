package domain

import (
	"time"

	"github.com/google/uuid"
)

// JournalAction is the kind of glossary mutation that was recorded
type JournalAction string

const (
	ActionAppend JournalAction = "append"
	ActionUndo   JournalAction = "undo"
)

// JournalRecord is one successful append or undo
type JournalRecord struct {
	ID           uuid.UUID
	Action       JournalAction
	Word         string
	PartOfSpeech string
	Definition   string
	GlossaryPath string
	CreatedAt    time.Time
}

// NewJournalRecord creates a record for the given entry stamped with the current time
func NewJournalRecord(action JournalAction, entry Entry, path string) *JournalRecord {
	return &JournalRecord{
		ID:           uuid.New(),
		Action:       action,
		Word:         entry.Word,
		PartOfSpeech: entry.PartOfSpeech,
		Definition:   entry.Definition,
		GlossaryPath: path,
		CreatedAt:    time.Now().UTC(),
	}
}
