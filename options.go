package profanity

import (
	"log/slog"
	"math"
	"time"

	"github.com/jamesainslie/go-profanity/normalize"
)

// DefaultThreshold is the probability cutoff used in threshold mode when
// none is given.
const DefaultThreshold = 0.9

// Unbounded disables the time budget of the bypass operations. Any negative
// budget behaves the same way.
const Unbounded time.Duration = -1

// Mode selects how IsProfane reaches a verdict.
type Mode int

const (
	// ModeNative uses the oracle's own verdict.
	ModeNative Mode = iota
	// ModeThreshold compares the oracle's probability against a threshold.
	ModeThreshold
)

func (m Mode) String() string {
	switch m {
	case ModeNative:
		return "native"
	case ModeThreshold:
		return "threshold"
	default:
		return "unknown"
	}
}

// Option configures a Checker.
type Option func(*config)

type config struct {
	libraryPath string
	normalizers normalize.Chain
	mode        Mode
	threshold   float64
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		normalizers: normalize.All(),
		mode:        ModeNative,
		threshold:   DefaultThreshold,
		logger:      slog.Default(),
	}
}

func (c config) validate() error {
	if math.IsNaN(c.threshold) || c.threshold < 0 || c.threshold > 1 {
		return ErrInvalidThreshold
	}
	return nil
}

// WithLibraryPath sets the ONNX Runtime shared library location. It takes
// effect only if the runtime has not been started yet in this process.
func WithLibraryPath(path string) Option {
	return func(c *config) {
		c.libraryPath = path
	}
}

// WithNormalizers sets the normalization steps applied by IsProfane and
// ProfanityProbability (default: normalize.All()). No steps disables
// normalization.
func WithNormalizers(steps ...normalize.Step) Option {
	return func(c *config) {
		c.normalizers = append(normalize.Chain{}, steps...)
	}
}

// WithThreshold switches to threshold mode with the given cutoff in [0, 1].
func WithThreshold(t float64) Option {
	return func(c *config) {
		c.mode = ModeThreshold
		c.threshold = t
	}
}

// WithAutomaticChecking switches to the oracle's own verdict (the default).
func WithAutomaticChecking() Option {
	return func(c *config) {
		c.mode = ModeNative
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
