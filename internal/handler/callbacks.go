package handler

import (
	"strconv"
	"strings"
	"unicode"

	"gmmarket/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseSuffixID extracts the numeric tail of identifiers like
// "my_ad_42". Malformed numbers fail the parse, they never panic.
func parseSuffixID(data, prefix string) (int64, bool) {
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseNav extracts category and page from "nav_<category>_<page>"
func parseNav(data string) (domain.Category, int, bool) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 || parts[0] != "nav" {
		return "", 0, false
	}
	category, err := domain.ParseCategory(parts[1])
	if err != nil {
		return "", 0, false
	}
	page, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, false
	}
	return category, page, true
}

// parseContact extracts seller and ad IDs from "contact_<sellerID>_<adID>"
func parseContact(data string) (sellerID, adID int64, ok bool) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 || parts[0] != "contact" {
		return 0, 0, false
	}
	sellerID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	adID, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return sellerID, adID, true
}

// handleCallback dispatches all inline button presses
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Debug("Processing callback",
		zap.String("data", data),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch data {
	case "cancel_create":
		return h.handleCancel(c)
	case "back_menu":
		return h.backToMenu(c)
	case "photos_done":
		return h.photosDone(c)
	case "photos_skip":
		return h.photosSkip(c)
	case "confirm_ad":
		return h.confirmAd(c)
	case "back_categories":
		return h.backToCategories(c)
	case "current_page", "admin_current":
		return c.Respond()
	case "edit_profile_nick":
		return h.editNickStart(c)
	case "edit_profile_game_id":
		return h.editGameIDStart(c)
	case "back_my_ads":
		return h.backToMyAds(c)
	case "admin_back":
		return h.adminBack(c)
	case "admin_users":
		return h.adminUsers(c)
	case "admin_ads":
		return h.adminAds(c)
	case "admin_panel_back":
		return h.adminPanelBack(c)
	case "admin_next_ad":
		return h.adminTurnAd(c, 1)
	case "admin_prev_ad":
		return h.adminTurnAd(c, -1)
	case "admin_block":
		return h.adminBlockStart(c, false)
	case "admin_unblock":
		return h.adminBlockStart(c, true)
	case "admin_broadcast":
		return h.adminBroadcastStart(c)
	}

	switch {
	case strings.HasPrefix(data, "create_cat_"):
		return h.processAdCategory(c, strings.TrimPrefix(data, "create_cat_"))
	case strings.HasPrefix(data, "view_cat_"):
		return h.viewCategory(c, strings.TrimPrefix(data, "view_cat_"))
	case strings.HasPrefix(data, "nav_"):
		return h.navigateAds(c, data)
	case strings.HasPrefix(data, "contact_"):
		return h.contactSellerStart(c, data)
	case strings.HasPrefix(data, "my_ad_"):
		return h.showMyAd(c, data)
	case strings.HasPrefix(data, "edit_ad_"):
		return h.editAdMenu(c, data)
	case strings.HasPrefix(data, "edit_field_"):
		return h.editFieldStart(c, data)
	case strings.HasPrefix(data, "delete_ad_"):
		return h.deleteAdConfirm(c, data)
	case strings.HasPrefix(data, "confirm_delete_"):
		return h.deleteAdFinal(c, data)
	case strings.HasPrefix(data, "admin_delete_ad_"):
		return h.adminDeleteAd(c, data)
	}

	h.logger.Warn("Unhandled callback", zap.String("data", data))
	return c.Respond()
}

// handleCancel aborts the active flow from any step and discards scratch
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID
	h.states.Clear(userID)

	if err := h.edit(c, "❌ Действие отменено."); err != nil {
		return err
	}
	return h.sendMenu(c)
}

// backToMenu returns to the main menu, dropping any active flow
func (h *Handler) backToMenu(c tele.Context) error {
	h.states.Clear(c.Sender().ID)

	if err := h.edit(c, msgMainMenu); err != nil {
		return err
	}
	return c.Send("Выберите действие:", h.menuFor(c.Sender().ID))
}
