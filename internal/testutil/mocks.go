package testutil

import (
	"texglossary/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockGlossaryFile is a mock for GlossaryFile
type MockGlossaryFile struct {
	mock.Mock
}

func (m *MockGlossaryFile) Append(block string) error {
	args := m.Called(block)
	return args.Error(0)
}

func (m *MockGlossaryFile) RemoveFirst(block string) error {
	args := m.Called(block)
	return args.Error(0)
}

func (m *MockGlossaryFile) Path() string {
	args := m.Called()
	return args.String(0)
}

// MockJournalRepository is a mock for JournalRepository
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Record(record *domain.JournalRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockJournalRepository) Recent(glossaryPath string, limit int) ([]domain.JournalRecord, error) {
	args := m.Called(glossaryPath, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalRecord), args.Error(1)
}

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}
