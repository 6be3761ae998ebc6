package bot

import (
	"sync"

	"github.com/navrex0/roastbot/internal/domain"
)

// ModeHolder holds the current roast mode behind a mutex so concurrent
// handlers always read a consistent value. The mode is bot-wide, not per
// chat: switching it changes the persona for everyone.
type ModeHolder struct {
	mu   sync.RWMutex
	mode domain.Mode
}

// NewModeHolder creates a holder starting in the given mode.
func NewModeHolder(initial domain.Mode) *ModeHolder {
	return &ModeHolder{mode: initial}
}

// Current returns the mode in effect right now.
func (h *ModeHolder) Current() domain.Mode {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mode
}

// Set switches the bot-wide mode.
func (h *ModeHolder) Set(mode domain.Mode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = mode
}
