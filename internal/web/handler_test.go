package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"texglossary/internal/form"
	"texglossary/internal/repository/memory"
	"texglossary/internal/repository/texfile"
	"texglossary/internal/service"
	"texglossary/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRouter(t *testing.T, path string) http.Handler {
	t.Helper()
	logger := testutil.NewTestLogger()
	journal := memory.NewJournalRepo(0)
	glossary := service.NewGlossaryService(texfile.NewFileRepo(path), journal, logger)
	h := NewGlossaryHandler(
		form.NewController(glossary, logger),
		service.NewHistoryService(journal, path, logger),
		logger,
	)
	return NewRouter(h, []string{"*"}, logger)
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestGlossaryHandler_PostEntry(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedCode int
		expectedErr  string
		expectedFile string
	}{
		{
			name:         "appends entry",
			body:         `{"word":"run","part_of_speech":"verb","definition":"to move quickly"}`,
			expectedCode: http.StatusCreated,
			expectedFile: "\\item[run]\n    verb\\\\\n    to move quickly\n",
		},
		{
			name:         "placeholder part of speech",
			body:         `{"word":"cat","definition":"a small animal"}`,
			expectedCode: http.StatusCreated,
			expectedFile: "\\item[cat]\n    ---\\\\\n    a small animal\n",
		},
		{
			name:         "missing definition",
			body:         `{"word":"run","part_of_speech":"verb","definition":"  "}`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  CodeValidation,
		},
		{
			name:         "invalid json",
			body:         `{"word":`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  CodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.NewGlossaryPath(t)
			router := newTestRouter(t, path)

			rec := do(t, router, http.MethodPost, "/api/v1/entries", tt.body)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedFile, testutil.ReadGlossary(t, path))

			if tt.expectedErr != "" {
				resp := decode[ErrorResponse](t, rec)
				assert.Equal(t, tt.expectedErr, resp.Error.Code)
				assert.NotEmpty(t, resp.Error.Message)
				return
			}
			resp := decode[ActionResponse](t, rec)
			assert.True(t, resp.UndoEnabled)
			assert.Equal(t, tt.expectedFile, resp.Block)
		})
	}
}

func TestGlossaryHandler_PostEntryBodyTooLarge(t *testing.T) {
	path := testutil.NewGlossaryPath(t)
	router := newTestRouter(t, path)
	body := `{"word":"run","definition":"` + strings.Repeat("x", MaxEntryBodyBytes) + `"}`

	rec := do(t, router, http.MethodPost, "/api/v1/entries", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, CodeBodyTooLarge, decode[ErrorResponse](t, rec).Error.Code)
	assert.Empty(t, testutil.ReadGlossary(t, path))
}

func TestGlossaryHandler_DeleteLastEntry(t *testing.T) {
	path := testutil.NewGlossaryPath(t)
	router := newTestRouter(t, path)

	rec := do(t, router, http.MethodDelete, "/api/v1/entries/last", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeNothingToUndo, decode[ErrorResponse](t, rec).Error.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/entries", `{"word":"run","definition":"to move quickly"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/v1/entries/last", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[ActionResponse](t, rec).UndoEnabled)
	assert.Empty(t, testutil.ReadGlossary(t, path))
}

func TestGlossaryHandler_DeleteLastEntryMismatch(t *testing.T) {
	path := testutil.NewGlossaryPath(t)
	router := newTestRouter(t, path)

	rec := do(t, router, http.MethodPost, "/api/v1/entries", `{"word":"run","definition":"to move quickly"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, os.WriteFile(path, []byte("edited\n"), 0o644))

	rec = do(t, router, http.MethodDelete, "/api/v1/entries/last", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeUndoMismatch, decode[ErrorResponse](t, rec).Error.Code)
	assert.Equal(t, "edited\n", testutil.ReadGlossary(t, path))
}

func TestGlossaryHandler_PostEntryIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "wordlist.tex")
	router := newTestRouter(t, path)

	rec := do(t, router, http.MethodPost, "/api/v1/entries", `{"word":"run","definition":"to move quickly"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, CodeIO, decode[ErrorResponse](t, rec).Error.Code)
}

func TestGlossaryHandler_GetStatus(t *testing.T) {
	path := testutil.NewGlossaryPath(t)
	router := newTestRouter(t, path)

	resp := decode[StatusResponse](t, do(t, router, http.MethodGet, "/api/v1/status", ""))
	assert.Equal(t, StatusResponse{GlossaryPath: path, UndoEnabled: false}, resp)

	do(t, router, http.MethodPost, "/api/v1/entries", `{"word":"run","definition":"to move quickly"}`)

	resp = decode[StatusResponse](t, do(t, router, http.MethodGet, "/api/v1/status", ""))
	assert.True(t, resp.UndoEnabled)
}

func TestGlossaryHandler_GetRecent(t *testing.T) {
	path := testutil.NewGlossaryPath(t)
	router := newTestRouter(t, path)

	do(t, router, http.MethodPost, "/api/v1/entries", `{"word":"run","definition":"to move quickly"}`)
	do(t, router, http.MethodPost, "/api/v1/entries", `{"word":"cat","definition":"a small animal"}`)
	do(t, router, http.MethodDelete, "/api/v1/entries/last", "")

	tests := []struct {
		name          string
		target        string
		expectedCode  int
		expectedWords []string
	}{
		{name: "default limit", target: "/api/v1/entries/recent", expectedCode: http.StatusOK, expectedWords: []string{"cat", "cat", "run"}},
		{name: "limit", target: "/api/v1/entries/recent?limit=1", expectedCode: http.StatusOK, expectedWords: []string{"cat"}},
		{name: "invalid limit", target: "/api/v1/entries/recent?limit=abc", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, tt.target, "")

			require.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode != http.StatusOK {
				assert.Equal(t, CodeInvalidLimit, decode[ErrorResponse](t, rec).Error.Code)
				return
			}

			resp := decode[RecentResponse](t, rec)
			words := make([]string, 0, len(resp.Entries))
			for _, e := range resp.Entries {
				words = append(words, e.Word)
			}
			assert.Equal(t, tt.expectedWords, words)
			assert.Equal(t, "undo", resp.Entries[0].Action)
		})
	}
}

func TestRouter_HealthAndCORS(t *testing.T) {
	router := newTestRouter(t, testutil.NewGlossaryPath(t))

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/entries", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	logger := testutil.NewTestLogger()
	srv := NewServer("127.0.0.1:0", http.NotFoundHandler(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
