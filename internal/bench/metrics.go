package bench

import (
	"context"
	"fmt"
	"time"
)

// Config holds evaluation parameters.
type Config struct {
	Threshold       float64
	PrecisionWeight float64
	RecallWeight    float64
	Bypass          bool          // score every variant instead of the normalized text
	Budget          time.Duration // per-sample bypass budget; negative is unbounded
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:       0.9,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
		Budget:          -1,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	TrueNegatives  int
	Precision      float64
	Recall         float64
	F1             float64
	Accuracy       float64
	WeightedScore  float64
}

// Scorer is the part of profanity.Checker used for evaluation.
type Scorer interface {
	ProfanityProbability(ctx context.Context, text string) (float64, error)
	ProfanityProbabilityBypass(ctx context.Context, text string, budget time.Duration) (float64, error)
}

// Score returns the probability of every sample.
func Score(ctx context.Context, s Scorer, samples []Sample, cfg Config) ([]float64, error) {
	scores := make([]float64, len(samples))
	for i, sample := range samples {
		var (
			p   float64
			err error
		)
		if cfg.Bypass {
			p, err = s.ProfanityProbabilityBypass(ctx, sample.Text, cfg.Budget)
		} else {
			p, err = s.ProfanityProbability(ctx, sample.Text)
		}
		if err != nil {
			return nil, fmt.Errorf("scoring line %d: %w", sample.Line, err)
		}
		scores[i] = p
	}
	return scores, nil
}

// Evaluate compares scores against sample labels at cfg.Threshold.
// A sample is predicted profane when its score is at least the threshold.
func Evaluate(scores []float64, samples []Sample, cfg Config) Metrics {
	var m Metrics
	for i, sample := range samples {
		if i >= len(scores) {
			break
		}
		predicted := scores[i] >= cfg.Threshold
		switch {
		case predicted && sample.Profane:
			m.TruePositives++
		case predicted && !sample.Profane:
			m.FalsePositives++
		case !predicted && sample.Profane:
			m.FalseNegatives++
		default:
			m.TrueNegatives++
		}
	}

	m.compute(cfg)
	return m
}

func (m *Metrics) compute(cfg Config) {
	tp, fp, fn, tn := m.TruePositives, m.FalsePositives, m.FalseNegatives, m.TrueNegatives

	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	if total := tp + fp + fn + tn; total > 0 {
		m.Accuracy = float64(tp+tn) / float64(total)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}
}
