package postgres

import (
	"database/sql"

	"texglossary/internal/domain"
)

// JournalRepo implements repository.JournalRepository
type JournalRepo struct {
	db *sql.DB
}

// NewJournalRepo creates a new journal repository
func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// Record saves one append or undo
func (r *JournalRepo) Record(record *domain.JournalRecord) error {
	query := `
		INSERT INTO glossary_journal (id, action, word, part_of_speech, definition, glossary_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		record.ID.String(),
		string(record.Action),
		record.Word,
		record.PartOfSpeech,
		record.Definition,
		record.GlossaryPath,
		record.CreatedAt,
	)
	return err
}

// Recent returns the newest records for a glossary file
func (r *JournalRepo) Recent(glossaryPath string, limit int) ([]domain.JournalRecord, error) {
	query := `
		SELECT id, action, word, part_of_speech, definition, glossary_path, created_at
		FROM glossary_journal
		WHERE glossary_path = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, glossaryPath, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.JournalRecord
	for rows.Next() {
		var rec domain.JournalRecord
		var action string
		if err := rows.Scan(&rec.ID, &action, &rec.Word, &rec.PartOfSpeech, &rec.Definition, &rec.GlossaryPath, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Action = domain.JournalAction(action)
		records = append(records, rec)
	}

	return records, rows.Err()
}
