package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "wrapped generic error",
			err:      fmt.Errorf("failed to do something: %w", errors.New("some error")),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("failed to do something: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrUserNotFound",
			err:      ErrUserNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrUserNotFound",
			err:      fmt.Errorf("failed to find user: %w", ErrUserNotFound),
			expected: true,
		},
		{
			name:     "duplicate error is not a not-found error",
			err:      ErrUserExists,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrDuplicate",
			err:      ErrDuplicate,
			expected: true,
		},
		{
			name:     "wrapped ErrDuplicate",
			err:      fmt.Errorf("failed to create: %w", ErrDuplicate),
			expected: true,
		},
		{
			name:     "ErrUserExists",
			err:      ErrUserExists,
			expected: true,
		},
		{
			name:     "wrapped ErrUserExists",
			err:      fmt.Errorf("failed to create user: %w", ErrUserExists),
			expected: true,
		},
		{
			name:     "not-found error is not a duplicate error",
			err:      ErrUserNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicateError(tt.err); got != tt.expected {
				t.Errorf("IsDuplicateError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	inner := errors.New("disk on fire")

	withCause := NewStoreError("user", "create", "insert failed", inner)
	if withCause.Error() != "create operation on user failed: insert failed: disk on fire" {
		t.Errorf("unexpected message: %s", withCause.Error())
	}
	if !errors.Is(withCause, inner) {
		t.Error("StoreError should unwrap to its cause")
	}

	withoutCause := NewStoreError("user", "increment", "no rows matched", nil)
	if withoutCause.Error() != "increment operation on user failed: no rows matched" {
		t.Errorf("unexpected message: %s", withoutCause.Error())
	}
	if errors.Unwrap(withoutCause) != nil {
		t.Error("StoreError without cause should unwrap to nil")
	}
}
