package handler

import (
	"fmt"

	"gmmarket/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// ========== Create ad flow ==========

// startCreateAd opens the ad creation flow
func (h *Handler) startCreateAd(c tele.Context) error {
	if ok, err := h.requireRegistered(c); !ok {
		return err
	}

	h.states.Set(c.Sender().ID, &domain.State{
		Flow: domain.FlowCreateAd,
		Step: domain.StepAdTitle,
	})

	return c.Send("📢 Создание объявления\n\n📌 Введите название товара:", cancelMarkup())
}

func (h *Handler) processAdTitle(c tele.Context, st *domain.State, title string) error {
	if err := domain.ValidateTitle(title); err != nil {
		return c.Send("❌ Название должно быть от 3 до 100 символов.")
	}

	st.Draft.Title = title
	st.Step = domain.StepAdDescription
	h.states.Set(c.Sender().ID, st)

	return c.Send("📝 Введите подробное описание товара:", cancelMarkup())
}

func (h *Handler) processAdDescription(c tele.Context, st *domain.State, description string) error {
	if err := domain.ValidateDescription(description); err != nil {
		return c.Send("❌ Описание должно быть от 10 до 1000 символов.")
	}

	st.Draft.Description = description
	st.Step = domain.StepAdPrice
	h.states.Set(c.Sender().ID, st)

	return c.Send("💰 Введите цену\n(например: 100.000$ или Договорная):", cancelMarkup())
}

func (h *Handler) processAdPrice(c tele.Context, st *domain.State, price string) error {
	if err := domain.ValidatePrice(price); err != nil {
		return c.Send("❌ Цена слишком длинная (макс. 50 символов).")
	}

	st.Draft.Price = price
	st.Step = domain.StepAdCategory
	h.states.Set(c.Sender().ID, st)

	return c.Send("📂 Выберите категорию:", categoriesMarkup(true))
}

func (h *Handler) processAdCategory(c tele.Context, code string) error {
	userID := c.Sender().ID
	st := h.states.Get(userID)
	if st.Step != domain.StepAdCategory {
		return c.Respond()
	}

	category, err := domain.ParseCategory(code)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Неизвестная категория"})
	}

	st.Draft.Category = category
	st.Draft.Photos = nil
	st.Step = domain.StepAdPhotos
	h.states.Set(userID, st)

	return h.edit(c, fmt.Sprintf(
		"🖼 Отправьте фотографии товара (до %d шт.)\n\nМожете отправлять по одной или альбомом.\nКогда закончите - нажмите Готово.",
		domain.MaxPhotos,
	), donePhotosMarkup(true))
}

// processAdPhoto appends one photo to the creation draft
func (h *Handler) processAdPhoto(c tele.Context, st *domain.State) error {
	if len(st.Draft.Photos) >= domain.MaxPhotos {
		return c.Send(fmt.Sprintf("❌ Максимум %d фотографий.", domain.MaxPhotos))
	}

	photo := c.Message().Photo
	if photo == nil || photo.FileID == "" {
		return c.Send("❌ Ошибка загрузки фото. Попробуйте ещё раз.")
	}

	st.Draft.Photos = append(st.Draft.Photos, photo.FileID)
	h.states.Set(c.Sender().ID, st)

	return c.Send(
		fmt.Sprintf("✅ Фото добавлено (%d/%d)", len(st.Draft.Photos), domain.MaxPhotos),
		donePhotosMarkup(true),
	)
}

// photosDone finishes photo collection for whichever photo step is active
func (h *Handler) photosDone(c tele.Context) error {
	userID := c.Sender().ID
	st := h.states.Get(userID)

	switch st.Step {
	case domain.StepAdPhotos:
		st.Draft.Photos = domain.FilterPhotos(st.Draft.Photos)
		if len(st.Draft.Photos) == 0 {
			return c.Respond(&tele.CallbackResponse{
				Text:      "❌ Добавьте хотя бы одно фото!",
				ShowAlert: true,
			})
		}
		h.states.Set(userID, st)
		return h.showAdPreview(c, st)

	case domain.StepEditPhotos:
		return h.editPhotosDone(c, st)
	}

	return c.Respond()
}

// photosSkip publishes the ad without photos
func (h *Handler) photosSkip(c tele.Context) error {
	userID := c.Sender().ID
	st := h.states.Get(userID)
	if st.Step != domain.StepAdPhotos {
		return c.Respond()
	}

	st.Draft.Photos = nil
	h.states.Set(userID, st)
	return h.showAdPreview(c, st)
}

// showAdPreview shows the confirm gate before the single commit
func (h *Handler) showAdPreview(c tele.Context, st *domain.State) error {
	user, err := h.access.GetUser(c.Sender().ID)
	if err != nil || user == nil {
		h.logger.Error("Failed to get user for preview", zap.Error(err))
		return h.edit(c, msgInternalError)
	}

	preview := fmt.Sprintf(
		"📋 Проверьте объявление:\n\n"+
			"📌 Название: %s\n"+
			"📝 Описание: %s\n"+
			"💰 Цена: %s\n"+
			"📂 Категория: %s\n"+
			"🖼 Фото: %d шт.\n"+
			"📞 Игровой номер: %s\n\n"+
			"Всё верно?",
		st.Draft.Title, st.Draft.Description, st.Draft.Price,
		st.Draft.Category.Title(), len(st.Draft.Photos), user.GameID,
	)

	st.Step = domain.StepAdConfirm
	h.states.Set(c.Sender().ID, st)

	return h.edit(c, preview, confirmAdMarkup())
}

// confirmAd is the terminal step of the creation flow: exactly one
// store commit, then the state is cleared
func (h *Handler) confirmAd(c tele.Context) error {
	userID := c.Sender().ID
	st := h.states.Get(userID)
	if st.Step != domain.StepAdConfirm {
		return c.Respond()
	}

	adID, err := h.ads.Create(userID, st.Draft)
	if err != nil {
		h.logger.Error("Failed to create ad", zap.Error(err), zap.Int64("user_id", userID))
		// State stays intact so the user can retry the confirm
		return c.Respond(&tele.CallbackResponse{Text: msgInternalError, ShowAlert: true})
	}

	h.logger.Info("Ad published",
		zap.Int64("ad_id", adID),
		zap.Int64("user_id", userID),
	)

	h.states.Clear(userID)

	if err := h.edit(c, fmt.Sprintf(
		"✅ Объявление #%d опубликовано!\n\nЕго увидят все пользователи бота.", adID,
	)); err != nil {
		return err
	}
	return h.sendMenu(c)
}

// ========== Browsing ==========

// startViewAds opens category browsing
func (h *Handler) startViewAds(c tele.Context) error {
	if ok, err := h.requireRegistered(c); !ok {
		return err
	}

	h.states.Set(c.Sender().ID, &domain.State{
		Flow: domain.FlowViewAds,
		Step: domain.StepBrowsing,
	})

	return c.Send("📂 Выберите категорию:", categoriesMarkup(false))
}

func (h *Handler) viewCategory(c tele.Context, code string) error {
	category, err := domain.ParseCategory(code)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Неизвестная категория"})
	}
	return h.showAdPage(c, category, 0)
}

func (h *Handler) navigateAds(c tele.Context, data string) error {
	category, page, ok := parseNav(data)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Неверная страница"})
	}
	return h.showAdPage(c, category, page)
}

// showAdPage renders one ad per screen. The page is fetched live, so
// concurrent edits and deletions shift what a browsing user sees; that
// is accepted, not guarded against.
func (h *Handler) showAdPage(c tele.Context, category domain.Category, page int) error {
	userID := c.Sender().ID

	ad, total, page, err := h.ads.BrowsePage(category, page)
	if err != nil {
		h.logger.Error("Failed to browse category", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Ошибка при загрузке"})
	}

	if total == 0 {
		return h.edit(c,
			fmt.Sprintf("📭 В категории %s пока нет объявлений.", category.Title()),
			categoriesMarkup(false),
		)
	}
	if ad == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Объявления не найдены"})
	}

	st := h.states.Get(userID)
	st.Flow = domain.FlowViewAds
	st.Step = domain.StepBrowsing
	st.BrowseCategory = category
	st.Page = page
	h.states.Set(userID, st)

	text := formatAdView(ad, true)
	markup := adNavigationMarkup(ad, category, page, total)

	// The previous screen may be a photo or album, which cannot be
	// edited into text: delete and send fresh
	if err := c.Delete(); err != nil {
		h.logger.Debug("Failed to delete previous message", zap.Error(err))
	}

	return h.sendAdMedia(c, ad.Photos, text, markup)
}

// sendAdMedia renders an ad by photo count: text only, single photo with
// caption, or album with a separate caption message
func (h *Handler) sendAdMedia(c tele.Context, photos []string, text string, markup *tele.ReplyMarkup) error {
	photos = domain.FilterPhotos(photos)

	switch len(photos) {
	case 0:
		return c.Send(text+"\n\n📷 Без фото", markup)
	case 1:
		photo := &tele.Photo{File: tele.File{FileID: photos[0]}, Caption: text}
		if err := c.Send(photo, markup); err != nil {
			h.logger.Error("Failed to send photo", zap.Error(err))
			return c.Send(text+"\n\n⚠️ Фото недоступны", markup)
		}
		return nil
	default:
		album := make(tele.Album, 0, len(photos))
		for i, p := range photos {
			photo := &tele.Photo{File: tele.File{FileID: p}}
			if i == 0 {
				photo.Caption = text
			}
			album = append(album, photo)
		}
		if err := c.SendAlbum(album); err != nil {
			h.logger.Error("Failed to send album", zap.Error(err))
			return c.Send(text+"\n\n⚠️ Фото недоступны", markup)
		}
		return c.Send("👆 Фото объявления", markup)
	}
}

func (h *Handler) backToCategories(c tele.Context) error {
	if err := c.Delete(); err != nil {
		h.logger.Debug("Failed to delete previous message", zap.Error(err))
	}
	return c.Send("📂 Выберите категорию:", categoriesMarkup(false))
}

// formatAdView renders the ad card text
func formatAdView(ad *domain.AdView, withSeller bool) string {
	text := fmt.Sprintf(
		"📦 %s\n\n📝 %s\n\n💰 Цена: %s\n📂 Категория: %s",
		ad.Title, ad.Description, ad.Price, ad.Category.Title(),
	)
	if withSeller {
		text += fmt.Sprintf("\n🕹 Продавец: %s\n📞 Игровой номер: %s", ad.SellerNick, ad.SellerGameID)
	}
	return text
}

// ========== Contact seller ==========

// contactSellerStart opens the single-step message flow towards a seller
func (h *Handler) contactSellerStart(c tele.Context, data string) error {
	sellerID, adID, ok := parseContact(data)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Неверные данные"})
	}

	userID := c.Sender().ID
	if sellerID == userID {
		return c.Respond(&tele.CallbackResponse{Text: "Это ваше объявление 😊", ShowAlert: true})
	}

	h.states.Set(userID, &domain.State{
		Flow:        domain.FlowContactSeller,
		Step:        domain.StepSellerMessage,
		SellerID:    sellerID,
		ContactAdID: adID,
	})

	if err := c.Send("📝 Напишите сообщение для продавца:", cancelMarkup()); err != nil {
		return err
	}
	return c.Respond()
}

// processSellerMessage delivers the buyer's message; no store write
func (h *Handler) processSellerMessage(c tele.Context, st *domain.State, text string) error {
	if text == "" {
		return c.Send("❌ Сообщение не может быть пустым.")
	}

	userID := c.Sender().ID

	ad, err := h.ads.Get(st.ContactAdID)
	if err != nil {
		h.logger.Error("Failed to get ad for contact", zap.Error(err))
		return c.Send(msgInternalError)
	}
	if ad == nil {
		h.states.Clear(userID)
		if err := c.Send("❌ Объявление не найдено."); err != nil {
			return err
		}
		return h.sendMenu(c)
	}

	buyer, err := h.access.GetUser(userID)
	if err != nil || buyer == nil {
		h.logger.Error("Failed to get buyer", zap.Error(err))
		return c.Send(msgInternalError)
	}

	sellerMessage := fmt.Sprintf(
		"📩 Новое сообщение по объявлению!\n\n📦 Объявление: %s\n👤 От: %s\n📞 Игровой номер: %s\n\n💬 Сообщение:\n%s",
		ad.Title, buyer.GameNick, buyer.GameID, text,
	)
	if username := c.Sender().Username; username != "" {
		sellerMessage += "\n\n📱 Telegram: @" + username
	}

	if _, err := h.bot.Send(&tele.User{ID: st.SellerID}, sellerMessage); err != nil {
		h.logger.Warn("Failed to deliver message to seller",
			zap.Int64("seller_id", st.SellerID),
			zap.Error(err),
		)
		if err := c.Send("❌ Не удалось отправить сообщение. Продавец заблокировал бота."); err != nil {
			return err
		}
	} else {
		if err := c.Send("✅ Сообщение отправлено продавцу!"); err != nil {
			return err
		}
	}

	h.states.Clear(userID)
	return h.sendMenu(c)
}
