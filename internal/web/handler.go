package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"texglossary/internal/domain"
	"texglossary/internal/form"
	"texglossary/internal/service"

	"go.uber.org/zap"
)

// MaxEntryBodyBytes bounds the body of POST /api/v1/entries
const MaxEntryBodyBytes = 64 << 10

// EntryRequest is the body of POST /api/v1/entries
type EntryRequest struct {
	Word         string `json:"word"`
	PartOfSpeech string `json:"part_of_speech"`
	Definition   string `json:"definition"`
}

// ActionResponse is returned by append and undo
type ActionResponse struct {
	Message     string `json:"message"`
	UndoEnabled bool   `json:"undo_enabled"`
	Block       string `json:"block,omitempty"`
}

// StatusResponse is returned by GET /api/v1/status
type StatusResponse struct {
	GlossaryPath string `json:"glossary_path"`
	UndoEnabled  bool   `json:"undo_enabled"`
}

// RecordResponse is one journal record
type RecordResponse struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	Word         string    `json:"word"`
	PartOfSpeech string    `json:"part_of_speech"`
	Definition   string    `json:"definition"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecentResponse is returned by GET /api/v1/entries/recent
type RecentResponse struct {
	Entries []RecordResponse `json:"entries"`
}

// GlossaryHandler serves the glossary form over HTTP
type GlossaryHandler struct {
	controller     *form.Controller
	historyService *service.HistoryService
	logger         *zap.Logger
}

// NewGlossaryHandler creates a new HTTP handler
func NewGlossaryHandler(controller *form.Controller, historyService *service.HistoryService, logger *zap.Logger) *GlossaryHandler {
	return &GlossaryHandler{
		controller:     controller,
		historyService: historyService,
		logger:         logger,
	}
}

// PostEntry appends an entry
func (h *GlossaryHandler) PostEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxEntryBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Invalid request body", zap.Error(err))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondWithError(w, h.logger, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "request body is too large")
			return
		}
		RespondWithError(w, h.logger, http.StatusBadRequest, CodeInvalidJSON, "request body must be a JSON object")
		return
	}

	res := h.controller.Submit(req.Word, req.PartOfSpeech, req.Definition)
	if !res.OK() {
		HandleError(w, h.logger, res.Err, res.Message)
		return
	}

	h.logger.Info("Entry appended", zap.String("word", res.Entry.Word))
	RespondWithJSON(w, http.StatusCreated, ActionResponse{
		Message:     res.Message,
		UndoEnabled: res.UndoEnabled,
		Block:       res.Entry.Render(),
	}, h.logger)
}

// DeleteLastEntry undoes the most recent append
func (h *GlossaryHandler) DeleteLastEntry(w http.ResponseWriter, r *http.Request) {
	res := h.controller.Undo()
	if !res.OK() {
		HandleError(w, h.logger, res.Err, res.Message)
		return
	}

	h.logger.Info("Entry undone", zap.String("word", res.Entry.Word))
	RespondWithJSON(w, http.StatusOK, ActionResponse{
		Message:     res.Message,
		UndoEnabled: res.UndoEnabled,
	}, h.logger)
}

// GetStatus reports the glossary path and whether undo is possible
func (h *GlossaryHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, StatusResponse{
		GlossaryPath: h.controller.Path(),
		UndoEnabled:  h.controller.UndoEnabled(),
	}, h.logger)
}

// GetRecent lists the newest journal records
func (h *GlossaryHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			RespondWithError(w, h.logger, http.StatusBadRequest, CodeInvalidLimit, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := h.historyService.Recent(limit)
	if err != nil {
		h.logger.Error("Failed to load recent entries", zap.Error(err))
		RespondWithError(w, h.logger, http.StatusInternalServerError, CodeInternal, "failed to load history")
		return
	}

	RespondWithJSON(w, http.StatusOK, RecentResponse{Entries: recordResponses(records)}, h.logger)
}

// Health reports liveness
func (h *GlossaryHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func recordResponses(records []domain.JournalRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, RecordResponse{
			ID:           rec.ID.String(),
			Action:       string(rec.Action),
			Word:         rec.Word,
			PartOfSpeech: rec.PartOfSpeech,
			Definition:   rec.Definition,
			CreatedAt:    rec.CreatedAt,
		})
	}
	return out
}
