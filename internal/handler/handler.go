package handler

import (
	"strings"

	"gmmarket/internal/domain"
	"gmmarket/internal/service"
	"gmmarket/internal/state"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgInternalError = "Произошла ошибка. Попробуйте позже."
	msgNotRegistered = "❌ Сначала пройдите регистрацию: /start"
	msgNoAccess      = "⛔ Доступ запрещён!"
	msgMainMenu      = "📋 Главное меню:"
)

// Menu labels shown on the reply keyboard
const (
	labelCreateAd   = "📢 Разместить объявление"
	labelViewAds    = "🔍 Смотреть объявления"
	labelProfile    = "👤 Мой профиль"
	labelMyAds      = "📋 Мои объявления"
	labelAdminPanel = "🔧 Админ-панель"
)

// Handler manages all bot interactions
type Handler struct {
	bot       *tele.Bot
	access    *service.AccessService
	ads       *service.AdService
	broadcast *service.BroadcastService
	states    state.Store
	logger    *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	access *service.AccessService,
	ads *service.AdService,
	broadcast *service.BroadcastService,
	states state.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		access:    access,
		ads:       ads,
		broadcast: broadcast,
		states:    states,
		logger:    logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnPhoto, h.handlePhoto)
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// handleText routes text first by the active conversation state, then by
// static menu-label match
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Commands are handled by their own handlers
	if strings.HasPrefix(text, "/") {
		return nil
	}

	st := h.states.Get(userID)

	switch st.Step {
	case domain.StepRegNick:
		return h.processRegNick(c, st, text)
	case domain.StepRegGameID:
		return h.processRegGameID(c, st, text)
	case domain.StepAdTitle:
		return h.processAdTitle(c, st, text)
	case domain.StepAdDescription:
		return h.processAdDescription(c, st, text)
	case domain.StepAdPrice:
		return h.processAdPrice(c, st, text)
	case domain.StepProfileNick:
		return h.processNewNick(c, text)
	case domain.StepProfileGameID:
		return h.processNewGameID(c, text)
	case domain.StepEditTitle:
		return h.processEditTitle(c, st, text)
	case domain.StepEditDescription:
		return h.processEditDescription(c, st, text)
	case domain.StepEditPrice:
		return h.processEditPrice(c, st, text)
	case domain.StepSellerMessage:
		return h.processSellerMessage(c, st, text)
	case domain.StepBroadcastMessage:
		return h.processBroadcast(c, text)
	case domain.StepBlockUserID:
		return h.processBlockUser(c, st, text)
	}

	// No flow active: static menu-label match
	switch text {
	case labelCreateAd:
		return h.startCreateAd(c)
	case labelViewAds:
		return h.startViewAds(c)
	case labelProfile:
		return h.showProfile(c)
	case labelMyAds:
		return h.showMyAds(c)
	case labelAdminPanel:
		return h.adminPanel(c)
	}

	return c.Send("Выберите действие из меню или отправьте /start.")
}

// handlePhoto feeds photos into the active photo-collection step
func (h *Handler) handlePhoto(c tele.Context) error {
	userID := c.Sender().ID
	st := h.states.Get(userID)

	switch st.Step {
	case domain.StepAdPhotos:
		return h.processAdPhoto(c, st)
	case domain.StepEditPhotos:
		return h.processEditPhoto(c, st)
	}

	return nil
}

// requireRegistered checks the registration gate before end-user flows
func (h *Handler) requireRegistered(c tele.Context) (bool, error) {
	registered, err := h.access.IsRegistered(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to check registration", zap.Error(err))
		return false, c.Send(msgInternalError)
	}
	if !registered {
		return false, c.Send(msgNotRegistered)
	}
	return true, nil
}

// requireAdmin checks the allow-list gate before admin flows
func (h *Handler) requireAdmin(c tele.Context) bool {
	return h.access.IsAdmin(c.Sender().ID)
}

// sendMenu shows the main menu matching the user's privileges
func (h *Handler) sendMenu(c tele.Context) error {
	return c.Send(msgMainMenu, h.menuFor(c.Sender().ID))
}

func (h *Handler) menuFor(userID int64) *tele.ReplyMarkup {
	if h.access.IsAdmin(userID) {
		return adminMenuMarkup()
	}
	return mainMenuMarkup()
}

// edit edits the callback's message, falling back to a new message when
// the original can no longer be edited
func (h *Handler) edit(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	if err := c.Edit(text, opts...); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return c.Respond()
		}
		h.logger.Debug("Failed to edit message, sending new", zap.Error(err))
		if err := c.Send(text, opts...); err != nil {
			return err
		}
	}
	return c.Respond()
}
