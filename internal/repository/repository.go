package repository

import (
	"texglossary/internal/domain"
)

// GlossaryFile defines mutations of the glossary text file
type GlossaryFile interface {
	// Append extends the file with block, creating the file if needed
	Append(block string) error
	// RemoveFirst deletes the first verbatim occurrence of block.
	// Returns domain.ErrUndoMismatch when block is not present.
	RemoveFirst(block string) error
	Path() string
}

// JournalRepository defines glossary history operations
type JournalRepository interface {
	Record(record *domain.JournalRecord) error
	Recent(glossaryPath string, limit int) ([]domain.JournalRecord, error)
}

// UserRepository defines bot user operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
}
