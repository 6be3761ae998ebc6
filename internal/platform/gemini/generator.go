package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/genai"

	"github.com/navrex0/roastbot/internal/config"
	"github.com/navrex0/roastbot/internal/generation"
)

// Generator implements generation.Generator using Google's Gemini API.
//
// Each call is a single attempt against the API; retry and fallback policy
// belong to the caller. The client is safe for concurrent use, so one
// Generator is shared across all handler goroutines.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// Compile-time check that Generator satisfies the generation.Generator interface.
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator from the LLM configuration.
//
// It validates the configuration and initializes the underlying Gemini client.
// Returns an error wrapping generation.ErrInvalidConfig when the logger, API
// key, or model name is missing, and a client initialization error otherwise.
func NewGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*Generator, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: GeminiAPIKey cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: Model cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	moduleLogger := logger.With(slog.String("component", "gemini_generator"))
	moduleLogger.DebugContext(ctx, "Gemini generator initialized",
		slog.String("model", cfg.Model))

	return &Generator{
		logger: moduleLogger,
		client: client,
		model:  cfg.Model,
	}, nil
}

// GenerateText sends a text prompt to the configured model and returns the
// generated roast.
//
// An empty return with a nil error means the model produced no usable text;
// callers treat that as a terminal outcome rather than a retryable failure.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	g.logger.DebugContext(ctx, "Requesting roast from Gemini",
		slog.String("model", g.model),
		slog.Int("prompt_length", len(prompt)))

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	return extractRoast(resp)
}

// GenerateFromImage reads the image at imagePath and sends it together with
// the prompt as a single multimodal request.
//
// The file content is sniffed rather than trusting the extension; anything
// that does not detect as an image is rejected with generation.ErrImageUnreadable.
func (g *Generator) GenerateFromImage(
	ctx context.Context,
	imagePath string,
	prompt string,
) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrImageUnreadable, err)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", generation.ErrImageUnreadable, mime.String())
	}

	g.logger.DebugContext(ctx, "Requesting image roast from Gemini",
		slog.String("model", g.model),
		slog.String("mime_type", mime.String()),
		slog.Int("image_bytes", len(data)))

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(data, mime.String()),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	return extractRoast(resp)
}

// extractRoast maps an API response to the generated text.
//
// Safety blocks surface as generation.ErrContentBlocked. A response with no
// candidates is not an error: it yields "" so callers can apply their
// empty-answer handling. The text is returned exactly as the model produced
// it, untrimmed.
func extractRoast(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: response is nil", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason == genai.BlockedReasonSafety {
		return "", fmt.Errorf("%w: prompt rejected by safety filter", generation.ErrContentBlocked)
	}

	if len(resp.Candidates) == 0 {
		return "", nil
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: candidate stopped by safety filter", generation.ErrContentBlocked)
	}

	return resp.Text(), nil
}
