package testutil

import (
	"time"

	"gmmarket/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(telegramID int64, nick, gameID string) *domain.User {
	return &domain.User{
		TelegramID: telegramID,
		GameNick:   nick,
		GameID:     gameID,
		CreatedAt:  time.Now(),
	}
}

// NewTestAd creates a test ad
func NewTestAd(id, ownerID int64, title string, category domain.Category) *domain.Ad {
	return &domain.Ad{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		Description: "Good condition, barely used",
		Price:       "100.000$",
		Category:    category,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}

// NewTestAdView creates a test ad joined with its owner
func NewTestAdView(id, ownerID int64, title string, category domain.Category) domain.AdView {
	return domain.AdView{
		Ad:           *NewTestAd(id, ownerID, title, category),
		SellerNick:   "Seller",
		SellerGameID: "12345",
	}
}
