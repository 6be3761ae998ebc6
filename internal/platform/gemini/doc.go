// Package gemini provides an implementation of the generation.Generator
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it translates between the
// application's roast requests and the Gemini API without exposing the
// external service to the core application. It handles client construction,
// multimodal request assembly (text prompts and inline image bytes), and
// the mapping of API outcomes to the generation package's error taxonomy.
//
// Retry and fallback policy deliberately live outside this package; a
// generation call here is a single attempt.
package gemini
