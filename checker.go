package profanity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync/atomic"
	"time"

	"github.com/jamesainslie/go-profanity/inference"
	"github.com/jamesainslie/go-profanity/normalize"
	"github.com/jamesainslie/go-profanity/variant"
)

// Checker decides whether text is profane using a scoring oracle.
// It is not safe for concurrent use; run one Checker per goroutine.
type Checker struct {
	oracle      Oracle
	normalizers normalize.Chain
	mode        Mode
	threshold   float64
	logger      *slog.Logger
	closed      atomic.Bool

	now func() time.Time
}

// New creates a Checker backed by an ONNX model and its vocabulary.
func New(modelPath, vocabPath string, opts ...Option) (*Checker, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Check model file exists
	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	vocab, err := inference.LoadVocabulary(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVocabularyFailed, err)
	}

	session, err := inference.NewSession(modelPath, vocab, cfg.libraryPath)
	if err != nil {
		if errors.Is(err, inference.ErrRuntime) {
			return nil, fmt.Errorf("%w: %w", ErrRuntimeUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	return newChecker(session, cfg), nil
}

// NewWithOracle creates a Checker around an oracle hosted by the caller.
// The Checker takes ownership of the oracle and closes it on Close, also
// when construction fails.
func NewWithOracle(o Oracle, opts ...Option) (*Checker, error) {
	if o == nil {
		return nil, ErrNoOracle
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		_ = o.Close() // Construction failed; release the session
		return nil, err
	}

	return newChecker(o, cfg), nil
}

func newChecker(o Oracle, cfg config) *Checker {
	cfg.logger.Debug("profanity checker ready",
		"mode", cfg.mode.String(),
		"threshold", cfg.threshold,
		"normalizers", cfg.normalizers.Names(),
	)

	return &Checker{
		oracle:      o,
		normalizers: cfg.normalizers,
		mode:        cfg.mode,
		threshold:   cfg.threshold,
		logger:      cfg.logger,
		now:         time.Now,
	}
}

// Mode returns the decision mode.
func (c *Checker) Mode() Mode { return c.mode }

// Threshold returns the probability cutoff used in threshold mode.
func (c *Checker) Threshold() float64 { return c.threshold }

// Normalize applies the configured normalizers to text.
func (c *Checker) Normalize(text string) string {
	return c.normalizers.Apply(text)
}

// IsProfane reports whether the normalized text is profane.
func (c *Checker) IsProfane(ctx context.Context, text string) (bool, error) {
	if c.closed.Load() {
		return false, ErrClosed
	}
	return c.decide(ctx, c.Normalize(text))
}

// ProfanityProbability returns the probability that the normalized text is
// profane.
func (c *Checker) ProfanityProbability(ctx context.Context, text string) (float64, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}
	return c.score(ctx, c.Normalize(text))
}

// IsProfaneBypass reports whether any variant of text (see variant.Expand)
// is profane. Variants are checked without normalization. Checking stops at
// the first profane variant, or with false once budget has elapsed after a
// variant finishes. A negative budget is unbounded.
func (c *Checker) IsProfaneBypass(ctx context.Context, text string, budget time.Duration) (bool, error) {
	if c.closed.Load() {
		return false, ErrClosed
	}

	candidates := variant.Expand(text).Items()
	start := c.now()

	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		profane, err := c.decide(ctx, candidate)
		if err != nil {
			return false, err
		}
		if profane {
			c.logger.Debug("profane variant found", "evaluated", i+1, "candidates", len(candidates))
			return true, nil
		}
		if c.exceeded(start, budget) {
			c.logger.Debug("bypass budget exhausted", "evaluated", i+1, "candidates", len(candidates), "budget", budget)
			return false, nil
		}
	}

	return false, nil
}

// ProfanityProbabilityBypass returns the highest probability among the
// variants of text (see variant.Expand). Variants are scored without
// normalization. Once budget has elapsed after a variant finishes, the
// highest score seen so far is returned. A negative budget is unbounded.
func (c *Checker) ProfanityProbabilityBypass(ctx context.Context, text string, budget time.Duration) (float64, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}

	candidates := variant.Expand(text).Items()
	start := c.now()

	var highest float64
	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		prob, err := c.score(ctx, candidate)
		if err != nil {
			return 0, err
		}
		highest = math.Max(highest, prob)

		if c.exceeded(start, budget) {
			c.logger.Debug("bypass budget exhausted", "evaluated", i+1, "candidates", len(candidates), "budget", budget)
			break
		}
	}

	return highest, nil
}

func (c *Checker) exceeded(start time.Time, budget time.Duration) bool {
	if budget < 0 {
		return false
	}
	return c.now().Sub(start) > budget
}

func (c *Checker) decide(ctx context.Context, text string) (bool, error) {
	if c.mode == ModeThreshold {
		prob, err := c.score(ctx, text)
		if err != nil {
			return false, err
		}
		return prob >= c.threshold, nil
	}

	profane, err := c.oracle.Predict(ctx, text)
	if err != nil {
		return false, oracleError("predict", err)
	}
	return profane, nil
}

func (c *Checker) score(ctx context.Context, text string) (float64, error) {
	prob, err := c.oracle.PredictProbability(ctx, text)
	if err != nil {
		return 0, oracleError("predict probability", err)
	}
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return 0, fmt.Errorf("%w: probability %v outside [0, 1]", ErrOracle, prob)
	}
	return prob, nil
}

// oracleError wraps an oracle failure. A session released underneath the
// Checker reports ErrClosed like any other use after Close.
func oracleError(op string, err error) error {
	if errors.Is(err, inference.ErrSessionClosed) {
		return fmt.Errorf("%w: %s: %w", ErrClosed, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrOracle, op, err)
}

// Close releases the oracle session. Closing an already closed Checker is a
// no-op. Close must not run concurrently with a check; a call that still
// reaches the released session fails with ErrClosed.
func (c *Checker) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	var errs []error
	if c.oracle != nil {
		if err := c.oracle.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.logger.Debug("profanity checker closed")

	return errors.Join(errs...)
}
