package repository

import "gmmarket/internal/domain"

// UserRepository defines user data operations
type UserRepository interface {
	Create(user *domain.User) error
	GetByID(telegramID int64) (*domain.User, error)
	Exists(telegramID int64) (bool, error)
	IsBlocked(telegramID int64) (bool, error)
	UpdateNick(telegramID int64, nick string) error
	UpdateGameID(telegramID int64, gameID string) error
	SetBlocked(telegramID int64, blocked bool) error
	GetAll() ([]domain.User, error)
}

// AdRepository defines ad data operations
type AdRepository interface {
	Create(ad *domain.Ad) (int64, error)
	GetByID(id int64) (*domain.AdView, error)
	ListByCategory(category domain.Category, offset, limit int) ([]domain.AdView, error)
	CountByCategory(category domain.Category) (int, error)
	ListByOwner(ownerID int64) ([]domain.Ad, error)
	ListAll() ([]domain.AdView, error)
	UpdateFields(id int64, patch domain.AdPatch) error
	SoftDelete(id int64) error
}
