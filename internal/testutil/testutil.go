package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"texglossary/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestEntry creates a test entry
func NewTestEntry(word, partOfSpeech, definition string) domain.Entry {
	return domain.Entry{
		Word:         word,
		PartOfSpeech: partOfSpeech,
		Definition:   definition,
	}
}

// NewGlossaryPath returns a glossary file path inside a per-test temp dir
func NewGlossaryPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "wordlist.tex")
}

// ReadGlossary returns the file content, or "" if the file does not exist
func ReadGlossary(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("read glossary: %v", err)
	}
	return string(data)
}
