package generation

import "context"

// Generator defines the interface for producing roast text from a prompt.
// It is the boundary between the bot's handlers and the external LLM
// service; handlers depend on this interface, never on a concrete client.
//
// Both methods share one content contract: a nil error with non-empty text
// is a usable roast, while a nil error with empty text means the model
// answered but produced no content. The two cases are handled differently
// upstream (an empty answer is terminal, a failed call is retried), so
// implementations must never collapse one into the other.
type Generator interface {
	// GenerateText produces roast text for the given prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateFromImage produces roast text for the image stored at
	// imagePath, guided by the given prompt. The file is read and sent to
	// the vision model as inline data.
	GenerateFromImage(ctx context.Context, imagePath string, prompt string) (string, error)
}
