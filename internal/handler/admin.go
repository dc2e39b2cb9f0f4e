package handler

import (
	"fmt"
	"strconv"
	"strings"

	"gmmarket/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// adminPanel opens the admin panel; non-admins get an explicit refusal
func (h *Handler) adminPanel(c tele.Context) error {
	if !h.requireAdmin(c) {
		return c.Send(msgNoAccess)
	}

	return c.Send("🔧 Панель администратора\n\nВыберите действие:", adminPanelMarkup())
}

func (h *Handler) adminBack(c tele.Context) error {
	if err := h.edit(c, msgMainMenu); err != nil {
		return err
	}
	return c.Send("Выберите действие:", h.menuFor(c.Sender().ID))
}

// adminUsers lists all registered users with their block status
func (h *Handler) adminUsers(c tele.Context) error {
	if !h.requireAdmin(c) {
		return c.Respond(&tele.CallbackResponse{Text: msgNoAccess})
	}

	users, err := h.access.GetAllUsers()
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке"})
	}

	if len(users) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "Пользователей нет"})
	}

	var b strings.Builder
	b.WriteString("👥 Список пользователей:\n\n")

	const maxShown = 50
	for i, user := range users {
		if i >= maxShown {
			fmt.Fprintf(&b, "...и ещё %d пользователей\n", len(users)-maxShown)
			break
		}
		status := "✅"
		if user.IsBlocked {
			status = "🚫"
		}
		fmt.Fprintf(&b, "%s ID: %d\n   Ник: %s | Игр.ID: %s\n\n",
			status, user.TelegramID, user.GameNick, user.GameID)
	}

	fmt.Fprintf(&b, "\n📊 Всего: %d пользователей", len(users))

	return h.edit(c, b.String(), adminPanelMarkup())
}

// ========== Ad review ==========

// adminAds opens the admin review over all active ads, blocked owners
// included
func (h *Handler) adminAds(c tele.Context) error {
	if !h.requireAdmin(c) {
		return c.Respond(&tele.CallbackResponse{Text: msgNoAccess})
	}

	userID := c.Sender().ID
	h.states.Set(userID, &domain.State{
		Flow: domain.FlowAdminViewAds,
		Step: domain.StepAdminReview,
	})

	return h.showAdminAd(c, 0)
}

// adminTurnAd pages the review by delta, clamped to the live list
func (h *Handler) adminTurnAd(c tele.Context, delta int) error {
	st := h.states.Get(c.Sender().ID)
	if st.Step != domain.StepAdminReview {
		return c.Respond()
	}
	return h.showAdminAd(c, st.AdminPage+delta)
}

// showAdminAd renders one ad of the review list. The list is re-fetched
// on every turn, so deletions by owners are reflected immediately.
func (h *Handler) showAdminAd(c tele.Context, page int) error {
	userID := c.Sender().ID

	ads, err := h.ads.AllAds()
	if err != nil {
		h.logger.Error("Failed to list all ads", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке"})
	}

	if len(ads) == 0 {
		h.states.Clear(userID)
		return h.edit(c, "📭 Объявлений нет.", adminPanelMarkup())
	}

	if page < 0 {
		page = 0
	}
	if page > len(ads)-1 {
		page = len(ads) - 1
	}

	st := h.states.Get(userID)
	st.Flow = domain.FlowAdminViewAds
	st.Step = domain.StepAdminReview
	st.AdminPage = page
	h.states.Set(userID, st)

	ad := ads[page]
	text := fmt.Sprintf(
		"📋 Объявление #%d (%d/%d)\n\n📦 %s\n📝 %s\n\n💰 Цена: %s\n📂 Категория: %s\n\n👤 Продавец: %s\n📞 Игр.ID: %s\n🆔 TG ID: %d",
		ad.ID, page+1, len(ads),
		ad.Title, ad.Description, ad.Price, ad.Category.Title(),
		ad.SellerNick, ad.SellerGameID, ad.OwnerID,
	)

	return h.edit(c, text, adminAdMarkup(ad.ID, page, len(ads)))
}

// adminDeleteAd soft-deletes any ad and refreshes the review
func (h *Handler) adminDeleteAd(c tele.Context, data string) error {
	if !h.requireAdmin(c) {
		return c.Respond(&tele.CallbackResponse{Text: msgNoAccess})
	}

	adID, ok := parseSuffixID(data, "admin_delete_ad_")
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные"})
	}

	if err := h.ads.Delete(adID); err != nil {
		h.logger.Error("Failed to delete ad", zap.Error(err), zap.Int64("ad_id", adID))
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError, ShowAlert: true})
	}

	h.logger.Info("Ad deleted by admin",
		zap.Int64("ad_id", adID),
		zap.Int64("admin_id", c.Sender().ID),
	)

	if err := c.Respond(&tele.CallbackResponse{Text: "✅ Объявление удалено!"}); err != nil {
		return err
	}
	return h.showAdminAd(c, 0)
}

func (h *Handler) adminPanelBack(c tele.Context) error {
	h.states.Clear(c.Sender().ID)
	return h.edit(c, "🔧 Панель администратора\n\nВыберите действие:", adminPanelMarkup())
}

// ========== Block / unblock ==========

// adminBlockStart opens the single-step block or unblock flow
func (h *Handler) adminBlockStart(c tele.Context, unblock bool) error {
	if !h.requireAdmin(c) {
		return c.Respond(&tele.CallbackResponse{Text: msgNoAccess})
	}

	h.states.Set(c.Sender().ID, &domain.State{
		Flow:    domain.FlowAdminBlock,
		Step:    domain.StepBlockUserID,
		Unblock: unblock,
	})

	prompt := "🚫 Введите Telegram ID пользователя для блокировки:"
	if unblock {
		prompt = "✅ Введите Telegram ID пользователя для разблокировки:"
	}
	return h.edit(c, prompt, cancelMarkup())
}

// processBlockUser parses the target ID and flips the block flag
func (h *Handler) processBlockUser(c tele.Context, st *domain.State, text string) error {
	adminID := c.Sender().ID

	targetID, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return c.Send("❌ Введите корректный числовой ID")
	}

	user, err := h.access.SetBlocked(targetID, !st.Unblock)
	if err != nil {
		if err == domain.ErrNotFound {
			h.states.Clear(adminID)
			if err := c.Send("❌ Пользователь не найден в базе"); err != nil {
				return err
			}
			return c.Send("🔧 Панель администратора", adminPanelMarkup())
		}
		h.logger.Error("Failed to set block flag", zap.Error(err))
		return c.Send(msgInternalError)
	}

	h.logger.Info("User block flag changed",
		zap.Int64("user_id", targetID),
		zap.Bool("blocked", !st.Unblock),
		zap.Int64("admin_id", adminID),
	)

	h.states.Clear(adminID)

	result := fmt.Sprintf("🚫 Пользователь %d (%s) заблокирован!", targetID, user.GameNick)
	if st.Unblock {
		result = fmt.Sprintf("✅ Пользователь %d (%s) разблокирован!", targetID, user.GameNick)
	}
	if err := c.Send(result); err != nil {
		return err
	}
	return c.Send("🔧 Панель администратора", adminPanelMarkup())
}

// ========== Broadcast ==========

// adminBroadcastStart opens the single-step broadcast flow
func (h *Handler) adminBroadcastStart(c tele.Context) error {
	if !h.requireAdmin(c) {
		return c.Respond(&tele.CallbackResponse{Text: msgNoAccess})
	}

	h.states.Set(c.Sender().ID, &domain.State{
		Flow: domain.FlowAdminBroadcast,
		Step: domain.StepBroadcastMessage,
	})

	return h.edit(c, "📢 Введите сообщение для рассылки всем пользователям:", cancelMarkup())
}

// processBroadcast delivers the announcement to every non-blocked user
// and reports the tally
func (h *Handler) processBroadcast(c tele.Context, text string) error {
	adminID := c.Sender().ID

	if text == "" {
		return c.Send("❌ Сообщение не может быть пустым.")
	}

	status, err := h.bot.Send(c.Recipient(), "📤 Начинаю рассылку...")
	if err != nil {
		return err
	}

	success, failed, err := h.broadcast.Broadcast(
		"📢 Объявление от администрации:\n\n"+text,
		func(userID int64, text string) error {
			_, err := h.bot.Send(&tele.User{ID: userID}, text)
			return err
		},
	)
	if err != nil {
		h.logger.Error("Broadcast failed", zap.Error(err))
		return c.Send(msgInternalError)
	}

	h.states.Clear(adminID)

	result := fmt.Sprintf("✅ Рассылка завершена!\n\n📨 Успешно: %d\n❌ Не доставлено: %d", success, failed)
	if _, err := h.bot.Edit(status, result); err != nil {
		if err := c.Send(result); err != nil {
			return err
		}
	}
	return c.Send("🔧 Панель администратора", adminPanelMarkup())
}
