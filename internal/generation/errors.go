package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when a roast generation call fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate roast")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrImageUnreadable is returned when the submitted image cannot be read
	// or is not a supported image format
	ErrImageUnreadable = errors.New("image cannot be read or is not an image")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
