// Package retry runs generation calls through a bounded retry loop with a
// fixed delay between attempts. Failures never escape the loop: when every
// attempt has failed the caller gets a prepared fallback text instead of an
// error, and an empty model answer ends the loop immediately without
// retrying. Callers observe progress through synchronous status
// notifications, which therefore always arrive in attempt order.
package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/navrex0/roastbot/internal/platform/logger"
	"github.com/navrex0/roastbot/internal/redact"
)

// Default policy values, applied when a Policy carries invalid settings.
const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 2 * time.Second
)

// Status identifies a point in the retry loop reported to the StatusFunc.
type Status int

const (
	// StatusAttempting is reported right before an attempt is made. The
	// attempt number is the attempt about to run.
	StatusAttempting Status = iota

	// StatusRetrying is reported after a failed attempt when another
	// attempt remains. The attempt number is the upcoming attempt.
	StatusRetrying

	// StatusExhausted is reported when the final attempt has failed and
	// the fallback text is about to be returned. The attempt number is the
	// attempt that failed last.
	StatusExhausted
)

// String returns a short name for logging.
func (s Status) String() string {
	switch s {
	case StatusAttempting:
		return "attempting"
	case StatusRetrying:
		return "retrying"
	case StatusExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// StatusFunc receives progress notifications from the retry loop. It is
// called synchronously, so implementations should be quick; slow transports
// delay the next attempt, not reorder notifications.
type StatusFunc func(status Status, attempt int)

// Policy bounds the retry loop.
type Policy struct {
	// MaxAttempts is the total number of tries, counting the first one.
	MaxAttempts int

	// Delay is the fixed pause between a failed attempt and the next one.
	// No backoff growth and no jitter.
	Delay time.Duration
}

// DefaultPolicy returns the standard production policy.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultDelay}
}

// Outcome classifies how the retry loop ended.
type Outcome int

const (
	// OutcomeGenerated means an attempt returned usable text.
	OutcomeGenerated Outcome = iota

	// OutcomeEmpty means the model answered with no content. The loop ends
	// immediately; there is no fallback and nothing to send as a roast.
	OutcomeEmpty

	// OutcomeFallback means every attempt failed and Result.Text carries
	// the prepared fallback.
	OutcomeFallback
)

// String returns a short name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeGenerated:
		return "generated"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result is the terminal state of one retry loop run.
type Result struct {
	// Text is the generated roast, or the fallback when Outcome is
	// OutcomeFallback. Empty when Outcome is OutcomeEmpty.
	Text string

	// Outcome classifies the run.
	Outcome Outcome

	// Attempts is the number of attempts actually made.
	Attempts int
}

// Op is a single generation attempt over an input of type T. Returning
// empty text with a nil error means the backend answered with nothing.
type Op[T any] func(ctx context.Context, input T) (string, error)

// Do runs op through the retry loop described by policy. The input type is
// generic so the same loop serves text prompts and image requests alike.
//
// Each attempt is announced through notify before it runs. A failed attempt
// with attempts remaining announces the upcoming retry, then waits out the
// policy delay; the wait aborts early if ctx is cancelled, in which case the
// loop resolves to the fallback rather than surfacing the cancellation.
// notify may be nil.
func Do[T any](
	ctx context.Context,
	policy Policy,
	op Op[T],
	input T,
	fallback string,
	notify StatusFunc,
) Result {
	log := logger.FromContext(ctx)

	if policy.MaxAttempts < 1 {
		log.Warn("invalid max attempts value, using default",
			slog.Int("configured", policy.MaxAttempts),
			slog.Int("default", DefaultMaxAttempts))
		policy.MaxAttempts = DefaultMaxAttempts
	}
	if policy.Delay < 0 {
		log.Warn("invalid retry delay value, using default",
			slog.Duration("configured", policy.Delay),
			slog.Duration("default", DefaultDelay))
		policy.Delay = DefaultDelay
	}

	if notify == nil {
		notify = func(Status, int) {}
	}

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		notify(StatusAttempting, attempt)

		log.Info("making generation attempt",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", policy.MaxAttempts))

		start := time.Now()
		text, err := op(ctx, input)
		elapsed := time.Since(start)

		if err == nil {
			if text != "" {
				log.Info("generation attempt succeeded",
					slog.Int("attempt", attempt),
					slog.Duration("elapsed", elapsed))
				return Result{Text: text, Outcome: OutcomeGenerated, Attempts: attempt}
			}

			// The backend answered but produced nothing. Terminal: more
			// attempts would resend the same prompt, and the fallback is
			// reserved for failures.
			log.Warn("generation returned empty content",
				slog.Int("attempt", attempt),
				slog.Duration("elapsed", elapsed))
			return Result{Outcome: OutcomeEmpty, Attempts: attempt}
		}

		log.Error("generation attempt failed",
			slog.Int("attempt", attempt),
			slog.Duration("elapsed", elapsed),
			slog.String("error", redact.Error(err)))

		if attempt < policy.MaxAttempts {
			notify(StatusRetrying, attempt+1)

			select {
			case <-time.After(policy.Delay):
			case <-ctx.Done():
				log.Warn("retry delay interrupted by context cancellation",
					slog.Int("attempt", attempt),
					slog.String("ctx_err", ctx.Err().Error()))
				notify(StatusExhausted, attempt)
				return Result{Text: fallback, Outcome: OutcomeFallback, Attempts: attempt}
			}
			continue
		}

		log.Warn("all generation attempts failed, using fallback",
			slog.Int("attempts", attempt))
		notify(StatusExhausted, attempt)
		return Result{Text: fallback, Outcome: OutcomeFallback, Attempts: attempt}
	}

	// Unreachable: the loop always returns.
	return Result{Text: fallback, Outcome: OutcomeFallback, Attempts: policy.MaxAttempts}
}
