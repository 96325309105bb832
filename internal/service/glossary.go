package service

import (
	"errors"
	"fmt"
	"sync"

	"texglossary/internal/domain"
	"texglossary/internal/repository"

	"go.uber.org/zap"
)

// GlossaryService appends entries to the glossary file and can undo the most recent one.
// Each instance remembers at most one written block; there is no deeper history.
type GlossaryService struct {
	file    repository.GlossaryFile
	journal repository.JournalRepository
	logger  *zap.Logger

	mu        sync.Mutex
	lastEntry *domain.Entry
	lastBlock string
}

// NewGlossaryService creates a new glossary service
func NewGlossaryService(
	file repository.GlossaryFile,
	journal repository.JournalRepository,
	logger *zap.Logger,
) *GlossaryService {
	return &GlossaryService{
		file:    file,
		journal: journal,
		logger:  logger,
	}
}

// Path returns the glossary file location
func (s *GlossaryService) Path() string {
	return s.file.Path()
}

// CanUndo reports whether an append is remembered
func (s *GlossaryService) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEntry != nil
}

// Append validates and writes one entry, remembering it for UndoLast
func (s *GlossaryService) Append(word, partOfSpeech, definition string) (*domain.Entry, error) {
	entry, err := domain.NewEntry(word, partOfSpeech, definition)
	if err != nil {
		return nil, err
	}
	block := entry.Render()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.file.Append(block); err != nil {
		// A partial write cannot be undone reliably
		s.forget()
		s.logger.Error("Failed to append entry",
			zap.String("word", entry.Word),
			zap.String("path", s.file.Path()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to append entry: %w", err)
	}

	s.lastEntry = entry
	s.lastBlock = block

	s.logger.Info("Entry appended",
		zap.String("word", entry.Word),
		zap.String("part_of_speech", entry.PartOfSpeech),
		zap.String("path", s.file.Path()),
	)
	s.record(domain.ActionAppend, *entry)

	return entry, nil
}

// UndoLast removes the remembered block from the glossary file
func (s *GlossaryService) UndoLast() (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastEntry == nil {
		return nil, domain.ErrNothingToUndo
	}
	entry := s.lastEntry

	err := s.file.RemoveFirst(s.lastBlock)
	switch {
	case errors.Is(err, domain.ErrUndoMismatch):
		// The block is forgotten even though the file was left as is.
		// Possibly unintended, kept for compatibility.
		s.forget()
		s.logger.Warn("Last entry not found in glossary file",
			zap.String("word", entry.Word),
			zap.String("path", s.file.Path()),
		)
		return nil, err
	case err != nil:
		s.logger.Error("Failed to undo entry",
			zap.String("word", entry.Word),
			zap.String("path", s.file.Path()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to undo entry: %w", err)
	}

	s.forget()

	s.logger.Info("Entry removed",
		zap.String("word", entry.Word),
		zap.String("path", s.file.Path()),
	)
	s.record(domain.ActionUndo, *entry)

	return entry, nil
}

func (s *GlossaryService) forget() {
	s.lastEntry = nil
	s.lastBlock = ""
}

// record writes a journal record; failures never affect the glossary operation
func (s *GlossaryService) record(action domain.JournalAction, entry domain.Entry) {
	if s.journal == nil {
		return
	}
	rec := domain.NewJournalRecord(action, entry, s.file.Path())
	if err := s.journal.Record(rec); err != nil {
		s.logger.Warn("Failed to record journal entry",
			zap.String("action", string(action)),
			zap.String("word", entry.Word),
			zap.Error(err),
		)
	}
}
