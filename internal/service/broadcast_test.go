package service

import (
	"errors"
	"testing"

	"gmmarket/internal/domain"
	"gmmarket/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastService_Broadcast(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	svc := NewBroadcastService(userRepo, testutil.NewTestLogger())

	blocked := *testutil.NewTestUser(3, "Blocked", "3")
	blocked.IsBlocked = true

	userRepo.On("GetAll").Return([]domain.User{
		*testutil.NewTestUser(1, "First", "1"),
		*testutil.NewTestUser(2, "Second", "2"),
		blocked,
		*testutil.NewTestUser(4, "Gone", "4"),
	}, nil)

	var delivered []int64
	send := func(userID int64, text string) error {
		if userID == 4 {
			return errors.New("bot was blocked by the user")
		}
		delivered = append(delivered, userID)
		return nil
	}

	success, failed, err := svc.Broadcast("Big sale this weekend", send)

	assert.NoError(t, err)
	assert.Equal(t, 2, success)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []int64{1, 2}, delivered)
}

func TestBroadcastService_Broadcast_RepoError(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	svc := NewBroadcastService(userRepo, testutil.NewTestLogger())

	userRepo.On("GetAll").Return(nil, errors.New("connection lost"))

	_, _, err := svc.Broadcast("text", func(int64, string) error { return nil })

	assert.Error(t, err)
}

func TestBroadcastService_Broadcast_NoUsers(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	svc := NewBroadcastService(userRepo, testutil.NewTestLogger())

	userRepo.On("GetAll").Return([]domain.User{}, nil)

	success, failed, err := svc.Broadcast("text", func(int64, string) error { return nil })

	assert.NoError(t, err)
	assert.Equal(t, 0, success)
	assert.Equal(t, 0, failed)
}
