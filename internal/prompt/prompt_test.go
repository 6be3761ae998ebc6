package prompt_test

import (
	"strings"
	"testing"

	"github.com/navrex0/roastbot/internal/domain"
	"github.com/navrex0/roastbot/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder(t *testing.T) *prompt.Builder {
	t.Helper()

	b, err := prompt.NewBuilder()
	require.NoError(t, err)
	return b
}

func TestBuildEmbedsTextVerbatimOnce(t *testing.T) {
	b := newBuilder(t)

	// Marker unlikely to collide with the template wording
	input := "XyZZy-42 diskon 90% beli sekarang!!!"

	for _, mode := range []domain.Mode{domain.ModeSpicy, domain.ModeSolution} {
		out, err := b.Build(mode, input)
		require.NoError(t, err)

		assert.Equal(t, 1, strings.Count(out, input),
			"mode %s should embed the user text exactly once", mode)
		assert.Contains(t, out, `"`+input+`"`,
			"mode %s should wrap the user text in quotes", mode)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := newBuilder(t)

	first, err := b.Build(domain.ModeSpicy, "Beli sekarang juga!")
	require.NoError(t, err)
	second, err := b.Build(domain.ModeSpicy, "Beli sekarang juga!")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildModesDiffer(t *testing.T) {
	b := newBuilder(t)

	spicy, err := b.Build(domain.ModeSpicy, "promo gila-gilaan")
	require.NoError(t, err)
	solution, err := b.Build(domain.ModeSolution, "promo gila-gilaan")
	require.NoError(t, err)

	assert.NotEqual(t, spicy, solution)
	assert.Contains(t, solution, "saran", "solution mode should ask for advice")
	assert.NotContains(t, spicy, "saran dan solusi")
}

func TestBuildTemplateSyntaxInInputStaysLiteral(t *testing.T) {
	b := newBuilder(t)

	// Template-looking input is data, not template source
	input := "pakai {{.Text}} biar viral"
	out, err := b.Build(domain.ModeSpicy, input)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, input))
}

func TestBuildUnknownMode(t *testing.T) {
	b := newBuilder(t)

	_, err := b.Build(domain.Mode("sarcastic"), "text")
	assert.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestImagePromptIsFixed(t *testing.T) {
	b := newBuilder(t)

	first := b.ImagePrompt()
	second := b.ImagePrompt()

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "Graphic Designer")
}
