package generation_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/navrex0/roastbot/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator is a minimal Generator used to pin down the interface
// contract in tests.
type stubGenerator struct {
	textFn  func(ctx context.Context, prompt string) (string, error)
	imageFn func(ctx context.Context, imagePath, prompt string) (string, error)
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.textFn(ctx, prompt)
}

func (s *stubGenerator) GenerateFromImage(ctx context.Context, imagePath, prompt string) (string, error) {
	return s.imageFn(ctx, imagePath, prompt)
}

var _ generation.Generator = (*stubGenerator)(nil)

func TestGeneratorContract(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{
		textFn: func(ctx context.Context, prompt string) (string, error) {
			// Empty text with nil error is the "model answered with nothing"
			// case and must stay distinguishable from a failed call.
			return "", nil
		},
		imageFn: func(ctx context.Context, imagePath, prompt string) (string, error) {
			return "", fmt.Errorf("%w: reading %s", generation.ErrImageUnreadable, imagePath)
		},
	}

	text, err := gen.GenerateText(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Empty(t, text)

	_, err = gen.GenerateFromImage(context.Background(), "downloads/abc.jpg", "prompt")
	assert.ErrorIs(t, err, generation.ErrImageUnreadable)
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		generation.ErrGenerationFailed,
		generation.ErrInvalidResponse,
		generation.ErrContentBlocked,
		generation.ErrImageUnreadable,
		generation.ErrInvalidConfig,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}

	wrapped := fmt.Errorf("calling model: %w", generation.ErrContentBlocked)
	assert.ErrorIs(t, wrapped, generation.ErrContentBlocked)
	assert.NotErrorIs(t, wrapped, generation.ErrGenerationFailed)
}
