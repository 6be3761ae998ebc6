// Package generation provides the interface for interacting with external
// AI/LLM services for roast generation. It abstracts the details of LLM API
// integration (Gemini), allowing the bot to turn copywriting text and images
// into critiques without coupling to a specific external service.
package generation
