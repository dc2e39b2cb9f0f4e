package testutil

import (
	"gmmarket/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(telegramID int64) (*domain.User, error) {
	args := m.Called(telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Exists(telegramID int64) (bool, error) {
	args := m.Called(telegramID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) IsBlocked(telegramID int64) (bool, error) {
	args := m.Called(telegramID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateNick(telegramID int64, nick string) error {
	args := m.Called(telegramID, nick)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateGameID(telegramID int64, gameID string) error {
	args := m.Called(telegramID, gameID)
	return args.Error(0)
}

func (m *MockUserRepository) SetBlocked(telegramID int64, blocked bool) error {
	args := m.Called(telegramID, blocked)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll() ([]domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockAdRepository is a mock for repository.AdRepository
type MockAdRepository struct {
	mock.Mock
}

func (m *MockAdRepository) Create(ad *domain.Ad) (int64, error) {
	args := m.Called(ad)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdRepository) GetByID(id int64) (*domain.AdView, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdView), args.Error(1)
}

func (m *MockAdRepository) ListByCategory(category domain.Category, offset, limit int) ([]domain.AdView, error) {
	args := m.Called(category, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdView), args.Error(1)
}

func (m *MockAdRepository) CountByCategory(category domain.Category) (int, error) {
	args := m.Called(category)
	return args.Int(0), args.Error(1)
}

func (m *MockAdRepository) ListByOwner(ownerID int64) ([]domain.Ad, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ad), args.Error(1)
}

func (m *MockAdRepository) ListAll() ([]domain.AdView, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdView), args.Error(1)
}

func (m *MockAdRepository) UpdateFields(id int64, patch domain.AdPatch) error {
	args := m.Called(id, patch)
	return args.Error(0)
}

func (m *MockAdRepository) SoftDelete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}
