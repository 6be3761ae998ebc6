package domain

import "errors"

// Mode selects the editorial style of a roast.
type Mode string

// Possible roast modes. The string values double as the user-facing mode
// names in replies, so they stay in Indonesian.
const (
	// ModeSpicy produces pure critique, written for laughs.
	ModeSpicy Mode = "pedas"

	// ModeSolution produces the same critique followed by concrete
	// suggestions for improving the copy.
	ModeSolution Mode = "solusi"
)

// ErrInvalidMode is returned when a mode value is not a known roast mode.
var ErrInvalidMode = errors.New("invalid roast mode")

// ParseMode converts a raw string into a Mode.
// Returns ErrInvalidMode for anything other than the known mode values.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSpicy, ModeSolution:
		return Mode(s), nil
	default:
		return "", ErrInvalidMode
	}
}

// String returns the mode's user-facing name.
func (m Mode) String() string {
	return string(m)
}
