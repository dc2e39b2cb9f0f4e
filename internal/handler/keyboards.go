package handler

import (
	"fmt"

	"gmmarket/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// mainMenuMarkup returns the main reply keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(labelCreateAd), menu.Text(labelViewAds)),
		menu.Row(menu.Text(labelProfile), menu.Text(labelMyAds)),
	)
	return menu
}

// adminMenuMarkup is the main menu plus the admin panel entry
func adminMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(labelCreateAd), menu.Text(labelViewAds)),
		menu.Row(menu.Text(labelProfile), menu.Text(labelMyAds)),
		menu.Row(menu.Text(labelAdminPanel)),
	)
	return menu
}

// cancelMarkup returns a single cancel button
func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("❌ Отмена", "cancel_create")))
	return markup
}

// categoriesMarkup returns the category picker. forCreate switches the
// callback prefix and the bottom row between cancel and back-to-menu.
func categoriesMarkup(forCreate bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	prefix := "view_cat_"
	if forCreate {
		prefix = "create_cat_"
	}

	rows := make([]tele.Row, 0, len(domain.Categories)+1)
	for _, cat := range domain.Categories {
		rows = append(rows, markup.Row(markup.Data(cat.Title(), prefix+string(cat))))
	}

	if forCreate {
		rows = append(rows, markup.Row(markup.Data("❌ Отмена", "cancel_create")))
	} else {
		rows = append(rows, markup.Row(markup.Data("🔙 В меню", "back_menu")))
	}

	markup.Inline(rows...)
	return markup
}

// donePhotosMarkup finishes photo collection
func donePhotosMarkup(allowSkip bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{
		markup.Row(markup.Data("✅ Готово", "photos_done")),
	}
	if allowSkip {
		rows = append(rows, markup.Row(markup.Data("⏭ Пропустить", "photos_skip")))
	}
	rows = append(rows, markup.Row(markup.Data("❌ Отмена", "cancel_create")))
	markup.Inline(rows...)
	return markup
}

// confirmAdMarkup is the publish/cancel gate of the creation flow
func confirmAdMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("✅ Опубликовать", "confirm_ad"),
		markup.Data("❌ Отмена", "cancel_create"),
	))
	return markup
}

// adNavigationMarkup builds the one-ad-per-screen browsing keyboard
func adNavigationMarkup(ad *domain.AdView, category domain.Category, page, total int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	nav := tele.Row{}
	if page > 0 {
		nav = append(nav, markup.Data("⬅️", fmt.Sprintf("nav_%s_%d", category, page-1)))
	}
	nav = append(nav, markup.Data(fmt.Sprintf("%d/%d", page+1, total), "current_page"))
	if page < total-1 {
		nav = append(nav, markup.Data("➡️", fmt.Sprintf("nav_%s_%d", category, page+1)))
	}
	rows = append(rows, nav)

	if ad.SellerUsername != "" {
		rows = append(rows, markup.Row(markup.URL(
			"📩 Связаться с продавцом",
			"https://t.me/"+ad.SellerUsername,
		)))
	} else {
		rows = append(rows, markup.Row(markup.Data(
			"📩 Написать продавцу",
			fmt.Sprintf("contact_%d_%d", ad.OwnerID, ad.ID),
		)))
	}

	rows = append(rows, markup.Row(markup.Data("🔙 К категориям", "back_categories")))

	markup.Inline(rows...)
	return markup
}

// myAdsMarkup lists the user's own ads
func myAdsMarkup(ads []domain.Ad) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(ads)+1)

	for _, ad := range ads {
		title := []rune(ad.Title)
		if len(title) > 30 {
			title = title[:30]
		}
		rows = append(rows, markup.Row(markup.Data(
			fmt.Sprintf("📦 %s - %s", string(title), ad.Price),
			fmt.Sprintf("my_ad_%d", ad.ID),
		)))
	}

	rows = append(rows, markup.Row(markup.Data("🔙 В меню", "back_menu")))
	markup.Inline(rows...)
	return markup
}

// manageAdMarkup manages a single own ad
func manageAdMarkup(adID int64) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("✏️ Редактировать", fmt.Sprintf("edit_ad_%d", adID))),
		markup.Row(markup.Data("❌ Удалить", fmt.Sprintf("delete_ad_%d", adID))),
		markup.Row(markup.Data("🔙 К моим объявлениям", "back_my_ads")),
	)
	return markup
}

// editAdMarkup picks which ad field to edit
func editAdMarkup(adID int64) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("📌 Название", fmt.Sprintf("edit_field_title_%d", adID))),
		markup.Row(markup.Data("📝 Описание", fmt.Sprintf("edit_field_desc_%d", adID))),
		markup.Row(markup.Data("💰 Цена", fmt.Sprintf("edit_field_price_%d", adID))),
		markup.Row(markup.Data("🖼 Фото", fmt.Sprintf("edit_field_photos_%d", adID))),
		markup.Row(markup.Data("🔙 Назад", fmt.Sprintf("my_ad_%d", adID))),
	)
	return markup
}

// confirmDeleteMarkup confirms soft-deleting an own ad
func confirmDeleteMarkup(adID int64) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("✅ Да, удалить", fmt.Sprintf("confirm_delete_%d", adID)),
		markup.Data("❌ Отмена", fmt.Sprintf("my_ad_%d", adID)),
	))
	return markup
}

// profileMarkup offers profile edit actions
func profileMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("✏️ Изменить ник", "edit_profile_nick")),
		markup.Row(markup.Data("📞 Изменить игровой номер", "edit_profile_game_id")),
		markup.Row(markup.Data("🔙 В меню", "back_menu")),
	)
	return markup
}

// adminPanelMarkup is the admin action picker
func adminPanelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("👥 Все пользователи", "admin_users")),
		markup.Row(markup.Data("📋 Все объявления", "admin_ads")),
		markup.Row(
			markup.Data("🚫 Заблокировать", "admin_block"),
			markup.Data("✅ Разблокировать", "admin_unblock"),
		),
		markup.Row(markup.Data("📢 Рассылка", "admin_broadcast")),
		markup.Row(markup.Data("◀️ Назад", "admin_back")),
	)
	return markup
}

// adminAdMarkup reviews one ad in the admin list
func adminAdMarkup(adID int64, page, total int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	nav := tele.Row{}
	if page > 0 {
		nav = append(nav, markup.Data("⬅️", "admin_prev_ad"))
	}
	nav = append(nav, markup.Data(fmt.Sprintf("%d/%d", page+1, total), "admin_current"))
	if page < total-1 {
		nav = append(nav, markup.Data("➡️", "admin_next_ad"))
	}
	rows = append(rows, nav)

	rows = append(rows,
		markup.Row(markup.Data("🗑 Удалить", fmt.Sprintf("admin_delete_ad_%d", adID))),
		markup.Row(markup.Data("🔙 Назад", "admin_panel_back")),
	)

	markup.Inline(rows...)
	return markup
}
