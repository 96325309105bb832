// Package app wires configuration, storage and services for the executables.
package app

import (
	"database/sql"
	"fmt"

	"texglossary/internal/config"
	"texglossary/internal/form"
	"texglossary/internal/repository"
	"texglossary/internal/repository/memory"
	"texglossary/internal/repository/postgres"
	"texglossary/internal/repository/texfile"
	"texglossary/internal/service"

	"go.uber.org/zap"
)

// Stores holds the journal and bot user repositories
type Stores struct {
	Journal repository.JournalRepository
	Users   repository.UserRepository

	db *sql.DB
}

// OpenStores connects to PostgreSQL and applies migrations when a database is configured.
// Otherwise it returns in-memory repositories.
func OpenStores(cfg *config.Config, opts postgres.ConnectOptions, logger *zap.Logger) (*Stores, error) {
	if !cfg.JournalEnabled() {
		logger.Info("No database configured, journal kept in memory")
		return &Stores{
			Journal: memory.NewJournalRepo(memory.DefaultJournalCapacity),
			Users:   memory.NewUserRepo(),
		}, nil
	}

	db, err := postgres.Connect(cfg.DSN(), opts, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connection established")

	if err := postgres.Migrate(db, cfg.Database.MigrationsPath, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Stores{
		Journal: postgres.NewJournalRepo(db),
		Users:   postgres.NewUserRepo(db),
		db:      db,
	}, nil
}

// Persistent reports whether the stores are backed by a database
func (s *Stores) Persistent() bool {
	return s.db != nil
}

// Close releases the database connection, if any
func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Glossary bundles the file store shared by every form session
type Glossary struct {
	File    *texfile.FileRepo
	Journal repository.JournalRepository
	logger  *zap.Logger
}

// NewGlossary opens the glossary file store at cfg.Glossary.Path
func NewGlossary(cfg *config.Config, journal repository.JournalRepository, logger *zap.Logger) *Glossary {
	return &Glossary{
		File:    texfile.NewFileRepo(cfg.Glossary.Path),
		Journal: journal,
		logger:  logger,
	}
}

// NewSession creates a form controller with its own undo memory
func (g *Glossary) NewSession() *form.Controller {
	return form.NewController(service.NewGlossaryService(g.File, g.Journal, g.logger), g.logger)
}

// History returns the journal reader for the glossary path
func (g *Glossary) History() *service.HistoryService {
	return service.NewHistoryService(g.Journal, g.File.Path(), g.logger)
}
