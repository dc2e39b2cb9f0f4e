package domain

import (
	"time"
	"unicode/utf8"
)

// User represents a registered marketplace user
type User struct {
	TelegramID int64
	Username   string
	GameNick   string
	GameID     string
	IsBlocked  bool
	CreatedAt  time.Time
}

const (
	NickMinLen = 2
	NickMaxLen = 32

	GameIDMinLen = 1
	GameIDMaxLen = 20
)

// ValidateNick checks game nick length bounds
func ValidateNick(nick string) error {
	n := utf8.RuneCountInString(nick)
	if n < NickMinLen || n > NickMaxLen {
		return Validationf("nick must be %d-%d characters, got %d", NickMinLen, NickMaxLen, n)
	}
	return nil
}

// ValidateGameID checks game ID length bounds
func ValidateGameID(gameID string) error {
	n := utf8.RuneCountInString(gameID)
	if n < GameIDMinLen || n > GameIDMaxLen {
		return Validationf("game ID must be %d-%d characters, got %d", GameIDMinLen, GameIDMaxLen, n)
	}
	return nil
}
