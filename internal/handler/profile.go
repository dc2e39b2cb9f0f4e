package handler

import (
	"fmt"

	"gmmarket/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// ========== Profile ==========

// showProfile shows the user's profile with edit actions
func (h *Handler) showProfile(c tele.Context) error {
	user, err := h.access.GetUser(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to get user", zap.Error(err))
		return c.Send(msgInternalError)
	}
	if user == nil {
		return c.Send(msgNotRegistered)
	}

	text := fmt.Sprintf(
		"👤 Ваш профиль\n\n🕹 Игровой ник: %s\n📞 Игровой номер: %s\n📱 Telegram ID: %d",
		user.GameNick, user.GameID, user.TelegramID,
	)

	return c.Send(text, profileMarkup())
}

func (h *Handler) editNickStart(c tele.Context) error {
	h.states.Set(c.Sender().ID, &domain.State{
		Flow: domain.FlowEditProfile,
		Step: domain.StepProfileNick,
	})
	return h.edit(c, "🕹 Введите новый игровой ник:", cancelMarkup())
}

// processNewNick is the terminal step of the nick edit flow
func (h *Handler) processNewNick(c tele.Context, nick string) error {
	userID := c.Sender().ID

	if err := h.access.UpdateNick(userID, nick); err != nil {
		if err == domain.ErrNotFound {
			h.states.Clear(userID)
			return c.Send(msgNotRegistered)
		}
		if domain.IsValidation(err) {
			return c.Send("❌ Ник должен быть от 2 до 32 символов.")
		}
		h.logger.Error("Failed to update nick", zap.Error(err))
		return c.Send(msgInternalError)
	}

	h.states.Clear(userID)
	if err := c.Send(fmt.Sprintf("✅ Ник изменён на %s", nick)); err != nil {
		return err
	}
	return h.sendMenu(c)
}

func (h *Handler) editGameIDStart(c tele.Context) error {
	h.states.Set(c.Sender().ID, &domain.State{
		Flow: domain.FlowEditProfile,
		Step: domain.StepProfileGameID,
	})
	return h.edit(c, "📞 Введите новый игровой номер (ID):", cancelMarkup())
}

// processNewGameID is the terminal step of the game ID edit flow
func (h *Handler) processNewGameID(c tele.Context, gameID string) error {
	userID := c.Sender().ID

	if err := h.access.UpdateGameID(userID, gameID); err != nil {
		if err == domain.ErrNotFound {
			h.states.Clear(userID)
			return c.Send(msgNotRegistered)
		}
		if domain.IsValidation(err) {
			return c.Send("❌ ID должен быть от 1 до 20 символов.")
		}
		h.logger.Error("Failed to update game ID", zap.Error(err))
		return c.Send(msgInternalError)
	}

	h.states.Clear(userID)
	if err := c.Send(fmt.Sprintf("✅ Игровой номер изменён на %s", gameID)); err != nil {
		return err
	}
	return h.sendMenu(c)
}

// ========== My ads ==========

// showMyAds lists the user's own active ads
func (h *Handler) showMyAds(c tele.Context) error {
	if ok, err := h.requireRegistered(c); !ok {
		return err
	}

	ads, err := h.ads.UserAds(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to list user ads", zap.Error(err))
		return c.Send(msgInternalError)
	}

	if len(ads) == 0 {
		return c.Send("📭 У вас пока нет объявлений.\n\nНажмите 📢 Разместить объявление, чтобы создать первое!")
	}

	return c.Send(
		fmt.Sprintf("📋 Ваши объявления (%d шт.):\n\nВыберите объявление для управления:", len(ads)),
		myAdsMarkup(ads),
	)
}

func (h *Handler) backToMyAds(c tele.Context) error {
	ads, err := h.ads.UserAds(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to list user ads", zap.Error(err))
		return h.edit(c, msgInternalError)
	}

	if len(ads) == 0 {
		return h.edit(c, "📭 У вас нет объявлений.")
	}

	return h.edit(c,
		fmt.Sprintf("📋 Ваши объявления (%d шт.):\n\nВыберите объявление для управления:", len(ads)),
		myAdsMarkup(ads),
	)
}

func (h *Handler) showMyAd(c tele.Context, data string) error {
	adID, ok := parseSuffixID(data, "my_ad_")
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные"})
	}

	ad, err := h.ads.Get(adID)
	if err != nil {
		h.logger.Error("Failed to get ad", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке"})
	}
	if ad == nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Объявление не найдено"})
	}

	text := formatAdView(ad, false) + fmt.Sprintf("\n🖼 Фото: %d шт.", len(ad.Photos))
	return h.edit(c, text, manageAdMarkup(adID))
}

// ========== Edit ad ==========

func (h *Handler) editAdMenu(c tele.Context, data string) error {
	adID, ok := parseSuffixID(data, "edit_ad_")
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные"})
	}

	return h.edit(c,
		"✏️ Редактирование объявления\n\nВыберите, что хотите изменить:",
		editAdMarkup(adID),
	)
}

// editFieldStart dispatches edit_field_<field>_<id> into the matching
// single-field edit flow
func (h *Handler) editFieldStart(c tele.Context, data string) error {
	userID := c.Sender().ID

	for _, f := range []struct {
		prefix string
		step   domain.Step
		prompt string
	}{
		{"edit_field_title_", domain.StepEditTitle, "📌 Введите новое название:"},
		{"edit_field_desc_", domain.StepEditDescription, "📝 Введите новое описание:"},
		{"edit_field_price_", domain.StepEditPrice, "💰 Введите новую цену:"},
	} {
		if adID, ok := parseSuffixID(data, f.prefix); ok {
			h.states.Set(userID, &domain.State{
				Flow:        domain.FlowEditAd,
				Step:        f.step,
				EditingAdID: adID,
			})
			return h.edit(c, f.prompt, cancelMarkup())
		}
	}

	if adID, ok := parseSuffixID(data, "edit_field_photos_"); ok {
		h.states.Set(userID, &domain.State{
			Flow:        domain.FlowEditAd,
			Step:        domain.StepEditPhotos,
			EditingAdID: adID,
		})
		return h.edit(c, fmt.Sprintf(
			"🖼 Отправьте новые фотографии (до %d шт.)\nСтарые фото будут заменены.\n\nНажмите Готово когда закончите.",
			domain.MaxPhotos,
		), donePhotosMarkup(false))
	}

	return c.Respond(&tele.CallbackResponse{Text: "Неверные данные"})
}

func (h *Handler) processEditTitle(c tele.Context, st *domain.State, title string) error {
	if err := h.ads.UpdateTitle(st.EditingAdID, title); err != nil {
		if domain.IsValidation(err) {
			return c.Send("❌ Название должно быть от 3 до 100 символов.")
		}
		h.logger.Error("Failed to update title", zap.Error(err))
		return c.Send(msgInternalError)
	}
	return h.finishAdEdit(c, st.EditingAdID, "✅ Название обновлено!")
}

func (h *Handler) processEditDescription(c tele.Context, st *domain.State, description string) error {
	if err := h.ads.UpdateDescription(st.EditingAdID, description); err != nil {
		if domain.IsValidation(err) {
			return c.Send("❌ Описание должно быть от 10 до 1000 символов.")
		}
		h.logger.Error("Failed to update description", zap.Error(err))
		return c.Send(msgInternalError)
	}
	return h.finishAdEdit(c, st.EditingAdID, "✅ Описание обновлено!")
}

func (h *Handler) processEditPrice(c tele.Context, st *domain.State, price string) error {
	if err := h.ads.UpdatePrice(st.EditingAdID, price); err != nil {
		if domain.IsValidation(err) {
			return c.Send("❌ Цена слишком длинная (макс. 50 символов).")
		}
		h.logger.Error("Failed to update price", zap.Error(err))
		return c.Send(msgInternalError)
	}
	return h.finishAdEdit(c, st.EditingAdID, "✅ Цена обновлена!")
}

// processEditPhoto appends one photo to the replacement list
func (h *Handler) processEditPhoto(c tele.Context, st *domain.State) error {
	if len(st.NewPhotos) >= domain.MaxPhotos {
		return c.Send(fmt.Sprintf("❌ Максимум %d фотографий.", domain.MaxPhotos))
	}

	photo := c.Message().Photo
	if photo == nil || photo.FileID == "" {
		return c.Send("❌ Ошибка загрузки фото. Попробуйте ещё раз.")
	}

	st.NewPhotos = append(st.NewPhotos, photo.FileID)
	h.states.Set(c.Sender().ID, st)

	return c.Send(
		fmt.Sprintf("✅ Фото добавлено (%d/%d)", len(st.NewPhotos), domain.MaxPhotos),
		donePhotosMarkup(false),
	)
}

// editPhotosDone commits the photo replacement; requires at least one photo
func (h *Handler) editPhotosDone(c tele.Context, st *domain.State) error {
	if err := h.ads.ReplacePhotos(st.EditingAdID, st.NewPhotos); err != nil {
		if domain.IsValidation(err) {
			return c.Respond(&tele.CallbackResponse{Text: "❌ Добавьте хотя бы одно фото!"})
		}
		h.logger.Error("Failed to replace photos", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError, ShowAlert: true})
	}

	if err := h.edit(c, "✅ Фотографии обновлены!"); err != nil {
		return err
	}
	return h.finishAdEdit(c, st.EditingAdID, "")
}

// finishAdEdit clears the flow and re-shows the edited ad
func (h *Handler) finishAdEdit(c tele.Context, adID int64, confirmation string) error {
	h.states.Clear(c.Sender().ID)

	if confirmation != "" {
		if err := c.Send(confirmation); err != nil {
			return err
		}
	}

	ad, err := h.ads.Get(adID)
	if err != nil || ad == nil {
		h.logger.Error("Failed to reload ad after edit", zap.Error(err))
		return h.sendMenu(c)
	}

	text := formatAdView(ad, false) + fmt.Sprintf("\n🖼 Фото: %d шт.", len(ad.Photos))
	return c.Send(text, manageAdMarkup(adID))
}

// ========== Delete ad ==========

func (h *Handler) deleteAdConfirm(c tele.Context, data string) error {
	adID, ok := parseSuffixID(data, "delete_ad_")
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные"})
	}

	return h.edit(c,
		"⚠️ Вы уверены, что хотите удалить это объявление?\n\nЭто действие нельзя отменить!",
		confirmDeleteMarkup(adID),
	)
}

func (h *Handler) deleteAdFinal(c tele.Context, data string) error {
	adID, ok := parseSuffixID(data, "confirm_delete_")
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные"})
	}

	if err := h.ads.Delete(adID); err != nil {
		h.logger.Error("Failed to delete ad", zap.Error(err), zap.Int64("ad_id", adID))
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError, ShowAlert: true})
	}

	h.logger.Info("Ad deleted by owner",
		zap.Int64("ad_id", adID),
		zap.Int64("user_id", c.Sender().ID),
	)

	if err := h.edit(c, "✅ Объявление удалено!"); err != nil {
		return err
	}

	ads, err := h.ads.UserAds(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to list user ads", zap.Error(err))
		return nil
	}

	if len(ads) == 0 {
		return c.Send("📭 Объявлений больше нет.", h.menuFor(c.Sender().ID))
	}
	return c.Send(
		fmt.Sprintf("📋 Ваши объявления (%d шт.):", len(ads)),
		myAdsMarkup(ads),
	)
}

