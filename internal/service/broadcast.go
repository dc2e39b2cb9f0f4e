package service

import (
	"gmmarket/internal/repository"

	"go.uber.org/zap"
)

// SendFunc delivers a text message to a single Telegram user
type SendFunc func(userID int64, text string) error

// BroadcastService delivers announcements to the whole user base
type BroadcastService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewBroadcastService creates a new broadcast service
func NewBroadcastService(userRepo repository.UserRepository, logger *zap.Logger) *BroadcastService {
	return &BroadcastService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Broadcast attempts delivery to every non-blocked user. Per-recipient
// failures (user blocked the bot, deleted the account) are tallied,
// never fatal.
func (s *BroadcastService) Broadcast(text string, send SendFunc) (success, failed int, err error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return 0, 0, err
	}

	for _, user := range users {
		if user.IsBlocked {
			continue
		}
		if err := send(user.TelegramID, text); err != nil {
			s.logger.Warn("Broadcast delivery failed",
				zap.Int64("user_id", user.TelegramID),
				zap.Error(err),
			)
			failed++
			continue
		}
		success++
	}

	s.logger.Info("Broadcast finished",
		zap.Int("success", success),
		zap.Int("failed", failed),
	)

	return success, failed, nil
}
