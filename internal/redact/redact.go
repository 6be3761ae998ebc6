// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. This keeps Telegram bot tokens, Gemini API
// keys, and database credentials out of log output even when they appear
// inside transport error messages or request URLs.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
)

// Precompiled regex patterns
var (
	// Telegram bot tokens (numeric bot ID, colon, secret), as issued by
	// BotFather. No leading word boundary: the token appears glued to "bot"
	// in Bot API request URLs.
	telegramTokenRegex = regexp.MustCompile(`\d{6,12}:[A-Za-z0-9_-]{30,}`)

	// Google API keys
	googleKeyRegex = regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{30,}\b`)

	// Database connection strings with inline credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database|connection)://[^@\s]+@`)

	// Credentials and generic secrets in key=value or key: value form
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)

	// Pattern order matters: the specific token/key shapes run before the
	// generic assignment pattern so they keep their own placeholders.
	patterns = []*regexp.Regexp{
		telegramTokenRegex, googleKeyRegex, dbConnRegex, passwordRegex, apiKeyRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		telegramTokenRegex: RedactedTokenPlaceholder,
		googleKeyRegex:     RedactedKeyPlaceholder,
		dbConnRegex:        RedactedCredentialPlaceholder,
		passwordRegex:      RedactedCredentialPlaceholder,
		apiKeyRegex:        RedactedKeyPlaceholder,
	}
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
