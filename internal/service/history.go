package service

import (
	"texglossary/internal/domain"
	"texglossary/internal/repository"

	"go.uber.org/zap"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
)

// HistoryService reads the glossary journal
type HistoryService struct {
	journal      repository.JournalRepository
	glossaryPath string
	logger       *zap.Logger
}

// NewHistoryService creates a new history service for one glossary file
func NewHistoryService(journal repository.JournalRepository, glossaryPath string, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		journal:      journal,
		glossaryPath: glossaryPath,
		logger:       logger,
	}
}

// Recent returns the newest journal records, newest first
func (s *HistoryService) Recent(limit int) ([]domain.JournalRecord, error) {
	if limit < 1 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	records, err := s.journal.Recent(s.glossaryPath, limit)
	if err != nil {
		s.logger.Error("Failed to load journal", zap.Error(err))
		return nil, err
	}

	return records, nil
}
