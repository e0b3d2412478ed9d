package profanity

import "context"

// Oracle scores a single string. Implementations need not be safe for
// concurrent use; a Checker never calls its oracle concurrently on its own.
//
// *inference.Session implements Oracle.
type Oracle interface {
	// Predict returns the oracle's own profane/clean verdict.
	Predict(ctx context.Context, text string) (bool, error)
	// PredictProbability returns the probability in [0, 1] that text is profane.
	PredictProbability(ctx context.Context, text string) (float64, error)
	// Close releases the oracle session.
	Close() error
}
