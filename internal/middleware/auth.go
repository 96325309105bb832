package middleware

import (
	"strings"

	"texglossary/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	PasswordPrompt = "Hi! This bot appends words to a TeX glossary. Enter the password to continue:"
	AccessGranted  = "✅ Access granted!\n\nSend a word to start a new glossary entry."
	WrongPassword  = "Wrong password."
	InternalError  = "Something went wrong. Please try again later."
)

// AuthMiddleware lets authorized users through and treats any other text as a password attempt
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}
			userID := sender.ID

			if err := authService.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return c.Send(InternalError)
			}

			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send(InternalError)
			}

			if authorized {
				return next(c)
			}

			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: PasswordPrompt, ShowAlert: true})
			}

			text := strings.TrimSpace(c.Text())
			if text == "" || strings.HasPrefix(text, "/") {
				return c.Send(PasswordPrompt)
			}

			if !authService.CheckPassword(text) {
				logger.Info("Wrong bot password", zap.Int64("user_id", userID))
				return c.Send(WrongPassword)
			}

			if err := authService.AuthorizeUser(userID); err != nil {
				logger.Error("Failed to authorize user", zap.Error(err))
				return c.Send(InternalError)
			}

			logger.Info("User authorized", zap.Int64("user_id", userID))
			return c.Send(AccessGranted)
		}
	}
}
