package service

import (
	"gmmarket/internal/domain"
	"gmmarket/internal/repository"
)

// AccessService handles registration, profile and authorization logic
type AccessService struct {
	userRepo repository.UserRepository
	admins   map[int64]struct{}
}

// NewAccessService creates a new access service. adminIDs is the static
// allow-list of privileged Telegram IDs loaded at process start.
func NewAccessService(userRepo repository.UserRepository, adminIDs []int64) *AccessService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &AccessService{
		userRepo: userRepo,
		admins:   admins,
	}
}

// IsAdmin checks the admin allow-list
func (s *AccessService) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

// IsRegistered checks if the user completed registration
func (s *AccessService) IsRegistered(userID int64) (bool, error) {
	return s.userRepo.Exists(userID)
}

// IsBlocked checks if the user is blocked
func (s *AccessService) IsBlocked(userID int64) (bool, error) {
	return s.userRepo.IsBlocked(userID)
}

// GetUser returns the user's profile, or nil if not registered
func (s *AccessService) GetUser(userID int64) (*domain.User, error) {
	return s.userRepo.GetByID(userID)
}

// Register validates and stores a completed registration
func (s *AccessService) Register(telegramID int64, username, nick, gameID string) error {
	if err := domain.ValidateNick(nick); err != nil {
		return err
	}
	if err := domain.ValidateGameID(gameID); err != nil {
		return err
	}
	return s.userRepo.Create(&domain.User{
		TelegramID: telegramID,
		Username:   username,
		GameNick:   nick,
		GameID:     gameID,
	})
}

// UpdateNick validates and stores a new game nick
func (s *AccessService) UpdateNick(userID int64, nick string) error {
	if err := domain.ValidateNick(nick); err != nil {
		return err
	}
	return s.userRepo.UpdateNick(userID, nick)
}

// UpdateGameID validates and stores a new game ID
func (s *AccessService) UpdateGameID(userID int64, gameID string) error {
	if err := domain.ValidateGameID(gameID); err != nil {
		return err
	}
	return s.userRepo.UpdateGameID(userID, gameID)
}

// SetBlocked blocks or unblocks an existing user
func (s *AccessService) SetBlocked(userID int64, blocked bool) (*domain.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.userRepo.SetBlocked(userID, blocked); err != nil {
		return nil, err
	}
	return user, nil
}

// GetAllUsers returns every registered user
func (s *AccessService) GetAllUsers() ([]domain.User, error) {
	return s.userRepo.GetAll()
}
