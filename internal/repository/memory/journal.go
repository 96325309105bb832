package memory

import (
	"sync"

	"texglossary/internal/domain"
)

// DefaultJournalCapacity bounds the in-process journal
const DefaultJournalCapacity = 200

// JournalRepo implements repository.JournalRepository in memory.
// It is used when no database is configured; oldest records are dropped past capacity.
type JournalRepo struct {
	mu       sync.RWMutex
	records  []domain.JournalRecord
	capacity int
}

// NewJournalRepo creates an in-memory journal holding at most capacity records
func NewJournalRepo(capacity int) *JournalRepo {
	if capacity <= 0 {
		capacity = DefaultJournalCapacity
	}
	return &JournalRepo{capacity: capacity}
}

// Record stores a copy of record
func (r *JournalRepo) Record(record *domain.JournalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, *record)
	if over := len(r.records) - r.capacity; over > 0 {
		r.records = append(r.records[:0:0], r.records[over:]...)
	}
	return nil
}

// Recent returns up to limit records for glossaryPath, newest first
func (r *JournalRepo) Recent(glossaryPath string, limit int) ([]domain.JournalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.JournalRecord
	for i := len(r.records) - 1; i >= 0 && len(result) < limit; i-- {
		if r.records[i].GlossaryPath == glossaryPath {
			result = append(result, r.records[i])
		}
	}
	return result, nil
}
