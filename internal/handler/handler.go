package handler

import (
	"sync"

	"texglossary/internal/domain"
	"texglossary/internal/form"
	"texglossary/internal/middleware"
	"texglossary/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// SessionFactory creates the form controller owned by one chat user
type SessionFactory func() *form.Controller

// Handler manages all bot interactions
type Handler struct {
	bot            *tele.Bot
	authService    *service.AuthService
	historyService *service.HistoryService
	newSession     SessionFactory
	logger         *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Each chat user has an independent undo
	sessions   map[int64]*form.Controller
	sessionMux sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	historyService *service.HistoryService,
	newSession SessionFactory,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:            bot,
		authService:    authService,
		historyService: historyService,
		newSession:     newSession,
		logger:         logger,
		states:         make(map[int64]*domain.StateData),
		sessions:       make(map[int64]*form.Controller),
	}
}

// RegisterHandlers registers all bot handlers behind the auth middleware
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.AuthMiddleware(h.authService, h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/undo", h.handleUndo)
	h.bot.Handle("/recent", h.handleRecent)
	h.bot.Handle("/cancel", h.handleCancel)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnSkip, h.handleSkip)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnUndo, h.handleUndo)
	h.bot.Handle(&btnRecent, h.handleRecent)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for buttons whose unique did not come through
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Session returns the form controller of a user, creating it on first use
func (h *Handler) Session(userID int64) *form.Controller {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	session, exists := h.sessions[userID]
	if !exists {
		session = h.newSession()
		h.sessions[userID] = session
	}
	return session
}

// Inline keyboard buttons
var (
	btnSkip = tele.Btn{
		Unique: "skip_pos",
		Text:   "⏭ Skip",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnUndo = tele.Btn{
		Unique: "undo",
		Text:   "↩️ Undo",
	}
	btnRecent = tele.Btn{
		Unique: "recent",
		Text:   "🕘 Recent",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard; Undo only appears while undo is possible
func mainMenuMarkup(undoEnabled bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	if undoEnabled {
		rows = append(rows, menu.Row(btnUndo))
	}
	rows = append(rows, menu.Row(btnRecent))
	menu.Inline(rows...)
	return menu
}

func partOfSpeechMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnSkip, btnCancel))
	return markup
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
