package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEntry(t *testing.T) {
	tests := []struct {
		name          string
		word          string
		partOfSpeech  string
		definition    string
		expected      *Entry
		expectedError error
	}{
		{
			name:         "all fields",
			word:         "run",
			partOfSpeech: "verb",
			definition:   "to move quickly",
			expected:     &Entry{Word: "run", PartOfSpeech: "verb", Definition: "to move quickly"},
		},
		{
			name:         "surrounding whitespace trimmed",
			word:         "  cat\t",
			partOfSpeech: " noun ",
			definition:   "\na small animal ",
			expected:     &Entry{Word: "cat", PartOfSpeech: "noun", Definition: "a small animal"},
		},
		{
			name:         "empty part of speech gets placeholder",
			word:         "run",
			partOfSpeech: "",
			definition:   "to move quickly",
			expected:     &Entry{Word: "run", PartOfSpeech: "---", Definition: "to move quickly"},
		},
		{
			name:         "blank part of speech gets placeholder",
			word:         "run",
			partOfSpeech: "   ",
			definition:   "to move quickly",
			expected:     &Entry{Word: "run", PartOfSpeech: "---", Definition: "to move quickly"},
		},
		{
			name:          "empty word",
			word:          "",
			partOfSpeech:  "verb",
			definition:    "to move quickly",
			expectedError: ErrValidation,
		},
		{
			name:          "blank definition",
			word:          "run",
			partOfSpeech:  "verb",
			definition:    "  ",
			expectedError: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewEntry(tt.word, tt.partOfSpeech, tt.definition)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, entry)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, entry)
		})
	}
}

func TestEntry_Render(t *testing.T) {
	tests := []struct {
		name     string
		entry    Entry
		expected string
	}{
		{
			name:     "verb",
			entry:    Entry{Word: "run", PartOfSpeech: "verb", Definition: "to move quickly"},
			expected: "\\item[run]\n    verb\\\\\n    to move quickly\n",
		},
		{
			name:     "placeholder",
			entry:    Entry{Word: "cat", PartOfSpeech: PlaceholderPartOfSpeech, Definition: "a small animal"},
			expected: "\\item[cat]\n    ---\\\\\n    a small animal\n",
		},
		{
			name:     "non-ascii text",
			entry:    Entry{Word: "走る", PartOfSpeech: "動詞", Definition: "速く移動する"},
			expected: "\\item[走る]\n    動詞\\\\\n    速く移動する\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entry.Render())
		})
	}
}

func TestIOError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&IOError{Op: "append", Path: "wordlist.tex", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "append wordlist.tex: disk full", err.Error())

	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "append", ioErr.Op)
}
