package postgres

import (
	"database/sql"

	"gmmarket/internal/domain"

	"github.com/lib/pq"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. A user row only ever appears here, at
// registration completion.
func (r *UserRepo) Create(user *domain.User) error {
	query := `
		INSERT INTO users (telegram_id, username, game_nick, game_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(query, user.TelegramID, user.Username, user.GameNick, user.GameID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return domain.ErrDuplicateUser
	}
	return err
}

// GetByID returns the user, or nil if not registered
func (r *UserRepo) GetByID(telegramID int64) (*domain.User, error) {
	var u domain.User
	query := `
		SELECT telegram_id, username, game_nick, game_id, is_blocked, created_at
		FROM users
		WHERE telegram_id = $1
	`
	err := r.db.QueryRow(query, telegramID).Scan(
		&u.TelegramID, &u.Username, &u.GameNick, &u.GameID, &u.IsBlocked, &u.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Exists checks if the user has completed registration
func (r *UserRepo) Exists(telegramID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE telegram_id = $1)`
	err := r.db.QueryRow(query, telegramID).Scan(&exists)
	return exists, err
}

// IsBlocked checks the user's block flag; unknown users are not blocked
func (r *UserRepo) IsBlocked(telegramID int64) (bool, error) {
	var blocked bool
	query := `SELECT is_blocked FROM users WHERE telegram_id = $1`
	err := r.db.QueryRow(query, telegramID).Scan(&blocked)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return blocked, nil
}

// UpdateNick replaces the user's game nick
func (r *UserRepo) UpdateNick(telegramID int64, nick string) error {
	query := `UPDATE users SET game_nick = $1 WHERE telegram_id = $2`
	return r.exec(query, nick, telegramID)
}

// UpdateGameID replaces the user's game ID
func (r *UserRepo) UpdateGameID(telegramID int64, gameID string) error {
	query := `UPDATE users SET game_id = $1 WHERE telegram_id = $2`
	return r.exec(query, gameID, telegramID)
}

// SetBlocked sets the user's block flag; idempotent
func (r *UserRepo) SetBlocked(telegramID int64, blocked bool) error {
	query := `UPDATE users SET is_blocked = $1 WHERE telegram_id = $2`
	return r.exec(query, blocked, telegramID)
}

// GetAll returns every registered user, blocked ones included
func (r *UserRepo) GetAll() ([]domain.User, error) {
	query := `
		SELECT telegram_id, username, game_nick, game_id, is_blocked, created_at
		FROM users
		ORDER BY created_at
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.TelegramID, &u.Username, &u.GameNick, &u.GameID, &u.IsBlocked, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// exec runs an update that must touch an existing row
func (r *UserRepo) exec(query string, args ...interface{}) error {
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
