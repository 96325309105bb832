package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const mainMenuText = "📖 Glossary\n\nSend a word to start a new entry."

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(userID)
	markup := mainMenuMarkup(h.Session(userID).UndoEnabled())

	if c.Callback() != nil {
		if err := c.Edit(mainMenuText, markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(mainMenuText, markup)
		}
		return c.Respond()
	}
	return c.Send(mainMenuText, markup)
}
