package postgres

import (
	"database/sql"
	"testing"
	"time"

	"gmmarket/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestUserRepo_Create(t *testing.T) {
	tests := []struct {
		name        string
		mockError   error
		expectedErr error
	}{
		{
			name:        "success",
			mockError:   nil,
			expectedErr: nil,
		},
		{
			name:        "duplicate registration",
			mockError:   &pq.Error{Code: "23505"},
			expectedErr: domain.ErrDuplicateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			exp := mock.ExpectExec("INSERT INTO users").
				WithArgs(int64(123), "vasya", "Vasya", "55501")
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err = repo.Create(&domain.User{
				TelegramID: 123,
				Username:   "vasya",
				GameNick:   "Vasya",
				GameID:     "55501",
			})

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_GetByID(t *testing.T) {
	columns := []string{"telegram_id", "username", "game_nick", "game_id", "is_blocked", "created_at"}

	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name:   "user found",
			userID: 123,
			mockRows: sqlmock.NewRows(columns).
				AddRow(int64(123), "vasya", "Vasya", "55501", false, time.Now()),
			expectedNil:   false,
			expectedError: false,
		},
		{
			name:          "user not registered",
			userID:        456,
			mockError:     sql.ErrNoRows,
			expectedNil:   true,
			expectedError: false,
		},
		{
			name:          "database error",
			userID:        123,
			mockError:     sql.ErrConnDone,
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			exp := mock.ExpectQuery("SELECT telegram_id, username, game_nick, game_id, is_blocked, created_at").
				WithArgs(tt.userID)
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnRows(tt.mockRows)
			}

			user, err := repo.GetByID(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, user)
			} else {
				assert.NotNil(t, user)
				assert.Equal(t, tt.userID, user.TelegramID)
				assert.Equal(t, "Vasya", user.GameNick)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_Exists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(123)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(123)

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_IsBlocked(t *testing.T) {
	tests := []struct {
		name            string
		userID          int64
		mockRows        *sqlmock.Rows
		mockError       error
		expectedBlocked bool
		expectedError   bool
	}{
		{
			name:            "blocked user",
			userID:          123,
			mockRows:        sqlmock.NewRows([]string{"is_blocked"}).AddRow(true),
			expectedBlocked: true,
		},
		{
			name:            "regular user",
			userID:          123,
			mockRows:        sqlmock.NewRows([]string{"is_blocked"}).AddRow(false),
			expectedBlocked: false,
		},
		{
			name:            "unknown user is not blocked",
			userID:          789,
			mockError:       sql.ErrNoRows,
			expectedBlocked: false,
		},
		{
			name:          "database error",
			userID:        123,
			mockError:     sql.ErrConnDone,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			exp := mock.ExpectQuery("SELECT is_blocked FROM users").
				WithArgs(tt.userID)
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnRows(tt.mockRows)
			}

			blocked, err := repo.IsBlocked(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBlocked, blocked)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_UpdateNick(t *testing.T) {
	tests := []struct {
		name        string
		rowsTouched int64
		expectedErr error
	}{
		{
			name:        "success",
			rowsTouched: 1,
			expectedErr: nil,
		},
		{
			name:        "user not found",
			rowsTouched: 0,
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			mock.ExpectExec("UPDATE users SET game_nick").
				WithArgs("NewNick", int64(123)).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsTouched))

			err = repo.UpdateNick(123, "NewNick")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_UpdateGameID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET game_id").
		WithArgs("99001", int64(123)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateGameID(123, "99001")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_SetBlocked(t *testing.T) {
	tests := []struct {
		name        string
		blocked     bool
		rowsTouched int64
		expectedErr error
	}{
		{
			name:        "block",
			blocked:     true,
			rowsTouched: 1,
		},
		{
			name:        "unblock",
			blocked:     false,
			rowsTouched: 1,
		},
		{
			name:        "unknown user",
			blocked:     true,
			rowsTouched: 0,
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			mock.ExpectExec("UPDATE users SET is_blocked").
				WithArgs(tt.blocked, int64(123)).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsTouched))

			err = repo.SetBlocked(123, tt.blocked)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	rows := sqlmock.NewRows([]string{"telegram_id", "username", "game_nick", "game_id", "is_blocked", "created_at"}).
		AddRow(int64(123), "vasya", "Vasya", "55501", false, time.Now()).
		AddRow(int64(456), "", "Petya", "55502", true, time.Now())

	mock.ExpectQuery("SELECT telegram_id, username, game_nick, game_id, is_blocked, created_at").
		WillReturnRows(rows)

	users, err := repo.GetAll()

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Vasya", users[0].GameNick)
	assert.True(t, users[1].IsBlocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
