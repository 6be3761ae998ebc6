package domain

import (
	"errors"
	"time"
)

// Common validation errors for User
var (
	ErrInvalidUserID      = errors.New("telegram user ID must be positive")
	ErrNegativeUsageCount = errors.New("usage count cannot be negative")
	ErrZeroJoinedAt       = errors.New("joined time cannot be zero")
)

// User represents a Telegram user known to the bot. The ID is the Telegram
// user ID and acts as the primary key; the username may be empty since
// Telegram does not require one. UsageCount counts successful text roasts,
// ImageUsageCount successful image roasts. Counters only ever increase and
// records are never deleted.
type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	JoinedAt        time.Time `json:"joined_at"`
	UsageCount      int       `json:"usage_count"`
	ImageUsageCount int       `json:"image_usage_count"`
}

// NewUser creates a new User for the given Telegram identity, with the join
// time set to now and both counters at zero.
// Returns an error if validation fails.
func NewUser(id int64, username string) (*User, error) {
	user := &User{
		ID:       id,
		Username: username,
		JoinedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID <= 0 {
		return ErrInvalidUserID
	}

	if u.JoinedAt.IsZero() {
		return ErrZeroJoinedAt
	}

	if u.UsageCount < 0 || u.ImageUsageCount < 0 {
		return ErrNegativeUsageCount
	}

	return nil
}
