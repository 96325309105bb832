package service

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"texglossary/internal/domain"
	"texglossary/internal/repository/memory"
	"texglossary/internal/repository/texfile"
	"texglossary/internal/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	runBlock = "\\item[run]\n    verb\\\\\n    to move quickly\n"
	catBlock = "\\item[cat]\n    noun\\\\\n    a small animal\n"
)

func journalRecordFor(action domain.JournalAction, word string) interface{} {
	return mock.MatchedBy(func(r *domain.JournalRecord) bool {
		return r.Action == action && r.Word == word && r.GlossaryPath == "wordlist.tex"
	})
}

func newMockFile() *testutil.MockGlossaryFile {
	mockFile := new(testutil.MockGlossaryFile)
	mockFile.On("Path").Return("wordlist.tex").Maybe()
	return mockFile
}

func TestGlossaryService_Append(t *testing.T) {
	tests := []struct {
		name          string
		word          string
		partOfSpeech  string
		definition    string
		expectedBlock string
		mockError     error
		expectedError error
		expectUndo    bool
	}{
		{
			name:          "valid entry",
			word:          "run",
			partOfSpeech:  "verb",
			definition:    "to move quickly",
			expectedBlock: runBlock,
			expectUndo:    true,
		},
		{
			name:          "untrimmed input",
			word:          " run ",
			partOfSpeech:  "\tverb",
			definition:    "to move quickly\n",
			expectedBlock: runBlock,
			expectUndo:    true,
		},
		{
			name:          "empty part of speech",
			word:          "run",
			partOfSpeech:  "",
			definition:    "to move quickly",
			expectedBlock: "\\item[run]\n    ---\\\\\n    to move quickly\n",
			expectUndo:    true,
		},
		{
			name:          "empty word",
			word:          "  ",
			partOfSpeech:  "verb",
			definition:    "to move quickly",
			expectedError: domain.ErrValidation,
		},
		{
			name:          "empty definition",
			word:          "run",
			partOfSpeech:  "verb",
			definition:    "",
			expectedError: domain.ErrValidation,
		},
		{
			name:          "write failure",
			word:          "run",
			partOfSpeech:  "verb",
			definition:    "to move quickly",
			expectedBlock: runBlock,
			mockError:     &domain.IOError{Op: "write", Path: "wordlist.tex", Err: fmt.Errorf("disk full")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFile := newMockFile()
			mockJournal := new(testutil.MockJournalRepository)

			if tt.expectedBlock != "" {
				mockFile.On("Append", tt.expectedBlock).Return(tt.mockError)
			}
			if tt.expectUndo {
				mockJournal.On("Record", journalRecordFor(domain.ActionAppend, "run")).Return(nil)
			}

			service := NewGlossaryService(mockFile, mockJournal, testutil.NewTestLogger())

			entry, err := service.Append(tt.word, tt.partOfSpeech, tt.definition)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, entry)
			case tt.mockError != nil:
				var ioErr *domain.IOError
				assert.True(t, errors.As(err, &ioErr))
				assert.Nil(t, entry)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBlock, entry.Render())
			}

			assert.Equal(t, tt.expectUndo, service.CanUndo())
			mockFile.AssertExpectations(t)
			mockJournal.AssertExpectations(t)
			if tt.expectedBlock == "" {
				mockFile.AssertNotCalled(t, "Append", mock.Anything)
			}
		})
	}
}

func TestGlossaryService_Append_FailureClearsRememberedBlock(t *testing.T) {
	mockFile := newMockFile()
	mockJournal := new(testutil.MockJournalRepository)

	mockFile.On("Append", catBlock).Return(nil).Once()
	mockFile.On("Append", runBlock).Return(&domain.IOError{Op: "write", Path: "wordlist.tex", Err: fmt.Errorf("disk full")}).Once()
	mockJournal.On("Record", journalRecordFor(domain.ActionAppend, "cat")).Return(nil)

	service := NewGlossaryService(mockFile, mockJournal, testutil.NewTestLogger())

	_, err := service.Append("cat", "noun", "a small animal")
	require.NoError(t, err)
	require.True(t, service.CanUndo())

	_, err = service.Append("run", "verb", "to move quickly")
	require.Error(t, err)
	assert.False(t, service.CanUndo())

	_, err = service.UndoLast()
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)
	mockFile.AssertNotCalled(t, "RemoveFirst", mock.Anything)
}

func TestGlossaryService_UndoLast(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError error
		expectIOError bool
		expectCanUndo bool
		expectJournal bool
	}{
		{
			name:          "removed",
			expectCanUndo: false,
			expectJournal: true,
		},
		{
			name:          "mismatch clears remembered block",
			mockError:     domain.ErrUndoMismatch,
			expectedError: domain.ErrUndoMismatch,
			expectCanUndo: false,
		},
		{
			name:          "read failure keeps remembered block",
			mockError:     &domain.IOError{Op: "read", Path: "wordlist.tex", Err: os.ErrPermission},
			expectIOError: true,
			expectCanUndo: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFile := newMockFile()
			mockJournal := new(testutil.MockJournalRepository)

			mockFile.On("Append", runBlock).Return(nil)
			mockFile.On("RemoveFirst", runBlock).Return(tt.mockError)
			mockJournal.On("Record", journalRecordFor(domain.ActionAppend, "run")).Return(nil)
			if tt.expectJournal {
				mockJournal.On("Record", journalRecordFor(domain.ActionUndo, "run")).Return(nil)
			}

			service := NewGlossaryService(mockFile, mockJournal, testutil.NewTestLogger())
			_, err := service.Append("run", "verb", "to move quickly")
			require.NoError(t, err)

			entry, err := service.UndoLast()

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, entry)
			case tt.expectIOError:
				var ioErr *domain.IOError
				assert.True(t, errors.As(err, &ioErr))
				assert.ErrorIs(t, err, os.ErrPermission)
			default:
				assert.NoError(t, err)
				assert.Equal(t, "run", entry.Word)
			}

			assert.Equal(t, tt.expectCanUndo, service.CanUndo())
			mockFile.AssertExpectations(t)
			mockJournal.AssertExpectations(t)
		})
	}
}

func TestGlossaryService_UndoLast_NothingToUndo(t *testing.T) {
	mockFile := newMockFile()
	mockJournal := new(testutil.MockJournalRepository)

	service := NewGlossaryService(mockFile, mockJournal, testutil.NewTestLogger())

	entry, err := service.UndoLast()

	assert.ErrorIs(t, err, domain.ErrNothingToUndo)
	assert.Nil(t, entry)
	mockFile.AssertNotCalled(t, "RemoveFirst", mock.Anything)
	mockJournal.AssertNotCalled(t, "Record", mock.Anything)
}

func TestGlossaryService_JournalFailureDoesNotFailAppend(t *testing.T) {
	mockFile := newMockFile()
	mockJournal := new(testutil.MockJournalRepository)

	mockFile.On("Append", runBlock).Return(nil)
	mockJournal.On("Record", mock.Anything).Return(fmt.Errorf("db down"))

	service := NewGlossaryService(mockFile, mockJournal, testutil.NewTestLogger())

	entry, err := service.Append("run", "verb", "to move quickly")

	assert.NoError(t, err)
	assert.Equal(t, "run", entry.Word)
	assert.True(t, service.CanUndo())
}

// The following tests run against a real file

func newFileService(t *testing.T) (*GlossaryService, string) {
	t.Helper()
	path := testutil.NewGlossaryPath(t)
	return NewGlossaryService(texfile.NewFileRepo(path), memory.NewJournalRepo(0), testutil.NewTestLogger()), path
}

func assertGlossary(t *testing.T, path, expected string) {
	t.Helper()
	if diff := cmp.Diff(expected, testutil.ReadGlossary(t, path)); diff != "" {
		t.Errorf("glossary content mismatch (-want +got):\n%s", diff)
	}
}

func TestGlossaryService_AppendThenUndoOnEmptyFile(t *testing.T) {
	service, path := newFileService(t)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := service.Append("run", "verb", "to move quickly")
	require.NoError(t, err)
	assertGlossary(t, path, "\\item[run]\n    verb\\\\\n    to move quickly\n")

	_, err = service.UndoLast()
	require.NoError(t, err)
	assertGlossary(t, path, "")
	assert.False(t, service.CanUndo())
}

func TestGlossaryService_AppendThenUndoRestoresPriorBytes(t *testing.T) {
	priors := []string{
		"",
		"% glossary\n",
		catBlock,
		runBlock,
		"no trailing newline",
		catBlock + runBlock,
	}
	entries := [][3]string{
		{"run", "verb", "to move quickly"},
		{"cat", "", "a small animal"},
		{"naïve", "adjective", "showing a lack of experience; 素朴な"},
	}

	for _, prior := range priors {
		for _, e := range entries {
			t.Run(fmt.Sprintf("%q+%s", prior, e[0]), func(t *testing.T) {
				service, path := newFileService(t)
				require.NoError(t, os.WriteFile(path, []byte(prior), 0o644))

				_, err := service.Append(e[0], e[1], e[2])
				require.NoError(t, err)

				_, err = service.UndoLast()
				require.NoError(t, err)
				assertGlossary(t, path, prior)
			})
		}
	}
}

func TestGlossaryService_OnlyMostRecentAppendIsUndoable(t *testing.T) {
	service, path := newFileService(t)

	_, err := service.Append("cat", "noun", "a small animal")
	require.NoError(t, err)
	_, err = service.Append("run", "verb", "to move quickly")
	require.NoError(t, err)

	_, err = service.UndoLast()
	require.NoError(t, err)
	assertGlossary(t, path, catBlock)

	_, err = service.UndoLast()
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)
	assertGlossary(t, path, catBlock)
}

func TestGlossaryService_ValidationLeavesFileUntouched(t *testing.T) {
	service, path := newFileService(t)
	require.NoError(t, os.WriteFile(path, []byte(catBlock), 0o644))

	_, err := service.Append("", "verb", "to move quickly")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.Append("run", "verb", " ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	assertGlossary(t, path, catBlock)
	assert.False(t, service.CanUndo())
}

func TestGlossaryService_ValidationKeepsPreviousUndo(t *testing.T) {
	service, path := newFileService(t)

	_, err := service.Append("run", "verb", "to move quickly")
	require.NoError(t, err)

	_, err = service.Append("", "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.True(t, service.CanUndo())

	_, err = service.UndoLast()
	require.NoError(t, err)
	assertGlossary(t, path, "")
}

func TestGlossaryService_ExternalEditCausesMismatch(t *testing.T) {
	service, path := newFileService(t)

	_, err := service.Append("run", "verb", "to move quickly")
	require.NoError(t, err)

	edited := "\\item[run]\n    verb\\\\\n    to move very quickly\n"
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	_, err = service.UndoLast()
	assert.ErrorIs(t, err, domain.ErrUndoMismatch)
	assertGlossary(t, path, edited)
	assert.False(t, service.CanUndo())
}

func TestGlossaryService_IndependentInstancesShareFile(t *testing.T) {
	path := testutil.NewGlossaryPath(t)
	file := texfile.NewFileRepo(path)
	journal := memory.NewJournalRepo(0)

	alice := NewGlossaryService(file, journal, testutil.NewTestLogger())
	bob := NewGlossaryService(file, journal, testutil.NewTestLogger())

	_, err := alice.Append("cat", "noun", "a small animal")
	require.NoError(t, err)
	_, err = bob.Append("run", "verb", "to move quickly")
	require.NoError(t, err)

	_, err = alice.UndoLast()
	require.NoError(t, err)
	assertGlossary(t, path, runBlock)
	assert.True(t, bob.CanUndo())

	records, err := journal.Recent(path, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.ActionUndo, records[0].Action)
	assert.Equal(t, "cat", records[0].Word)
}
