package handler

import (
	"fmt"
	"strings"

	"texglossary/internal/domain"
	"texglossary/internal/form"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText collects word, part of speech and definition in turn
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore unknown commands
	if strings.HasPrefix(text, "/") || text == "" {
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingPartOfSpeech:
		h.SetState(userID, &domain.StateData{
			State:        domain.StateWaitingDefinition,
			Word:         state.Word,
			PartOfSpeech: text,
		})
		return c.Send(fmt.Sprintf("Definition of '%s'?", state.Word), cancelMarkup())

	case domain.StateWaitingDefinition:
		res := h.Session(userID).Submit(state.Word, state.PartOfSpeech, text)
		h.logResult(userID, "submit", res)

		// Keep the collected fields on failure so the user can resend the definition
		if res.OK() {
			h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})
		}
		return c.Send(resultText(res, true), mainMenuMarkup(res.UndoEnabled))

	default:
		// Idle or waiting for word - the text is a new word
		h.SetState(userID, &domain.StateData{
			State: domain.StateWaitingPartOfSpeech,
			Word:  text,
		})
		return c.Send(fmt.Sprintf("Part of speech of '%s'?", text), partOfSpeechMarkup())
	}
}

// handleSkip leaves the part of speech empty so the placeholder is written
func (h *Handler) handleSkip(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	if state.State != domain.StateWaitingPartOfSpeech {
		return c.Respond(&tele.CallbackResponse{Text: "Nothing to skip"})
	}

	h.SetState(userID, &domain.StateData{
		State:        domain.StateWaitingDefinition,
		Word:         state.Word,
		PartOfSpeech: "",
	})

	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return c.Send(fmt.Sprintf("Definition of '%s'?", state.Word), cancelMarkup())
}

// handleUndo removes the user's most recent entry
func (h *Handler) handleUndo(c tele.Context) error {
	userID := c.Sender().ID

	res := h.Session(userID).Undo()
	h.logResult(userID, "undo", res)

	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return c.Send(resultText(res, false), mainMenuMarkup(res.UndoEnabled))
}

// handleCancel drops a partially entered entry
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)
	text := "Cancelled.\n\n" + mainMenuText
	markup := mainMenuMarkup(h.Session(userID).UndoEnabled())

	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// handleRecent lists the newest journal records
func (h *Handler) handleRecent(c tele.Context) error {
	userID := c.Sender().ID

	records, err := h.historyService.Recent(0)
	if err != nil {
		h.logger.Error("Failed to load recent entries", zap.Error(err))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Failed to load history"})
		}
		return c.Send("Failed to load history.")
	}

	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}

	return c.Send(recentText(records), mainMenuMarkup(h.Session(userID).UndoEnabled()))
}

func (h *Handler) logResult(userID int64, action string, res form.Result) {
	if res.OK() {
		h.logger.Info("Glossary action completed",
			zap.Int64("user_id", userID),
			zap.String("action", action),
			zap.String("word", res.Entry.Word),
		)
		return
	}
	h.logger.Warn("Glossary action failed",
		zap.Int64("user_id", userID),
		zap.String("action", action),
		zap.Error(res.Err),
	)
}

// resultText formats a form result; withBlock appends the written TeX on success
func resultText(res form.Result, withBlock bool) string {
	icon := "✅"
	switch res.Severity {
	case form.SeverityWarning:
		icon = "⚠️"
	case form.SeverityError:
		icon = "❌"
	}

	text := fmt.Sprintf("%s %s\n\n%s", icon, res.Title, res.Message)
	if withBlock && res.OK() && res.Entry != nil {
		text += "\n\n" + res.Entry.Render()
	}
	return text
}

func recentText(records []domain.JournalRecord) string {
	if len(records) == 0 {
		return "No glossary history yet."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🕘 Recent changes (%d):\n\n", len(records)))
	for i, rec := range records {
		verb := "added"
		if rec.Action == domain.ActionUndo {
			verb = "removed"
		}
		sb.WriteString(fmt.Sprintf("%d. %s %s (%s): %s\n", i+1, verb, rec.Word, rec.PartOfSpeech, rec.Definition))
	}
	return sb.String()
}
