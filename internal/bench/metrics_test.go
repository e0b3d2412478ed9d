package bench

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func labels(profane ...bool) []Sample {
	samples := make([]Sample, len(profane))
	for i, p := range profane {
		samples[i] = Sample{Text: "s", Profane: p, Line: i + 1}
	}
	return samples
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		scores    []float64
		samples   []Sample
		threshold float64
		wantTP    int
		wantFP    int
		wantFN    int
		wantTN    int
	}{
		{
			name:      "perfect",
			scores:    []float64{0.95, 0.1, 0.99},
			samples:   labels(true, false, true),
			threshold: 0.9,
			wantTP:    2,
			wantTN:    1,
		},
		{
			name:      "threshold is inclusive",
			scores:    []float64{0.9},
			samples:   labels(true),
			threshold: 0.9,
			wantTP:    1,
		},
		{
			name:      "false positive",
			scores:    []float64{0.95, 0.92},
			samples:   labels(true, false),
			threshold: 0.9,
			wantTP:    1,
			wantFP:    1,
		},
		{
			name:      "false negative",
			scores:    []float64{0.5, 0.1},
			samples:   labels(true, false),
			threshold: 0.9,
			wantFN:    1,
			wantTN:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Threshold = tt.threshold
			m := Evaluate(tt.scores, tt.samples, cfg)

			if m.TruePositives != tt.wantTP || m.FalsePositives != tt.wantFP ||
				m.FalseNegatives != tt.wantFN || m.TrueNegatives != tt.wantTN {
				t.Errorf("Evaluate() = TP:%d FP:%d FN:%d TN:%d, want TP:%d FP:%d FN:%d TN:%d",
					m.TruePositives, m.FalsePositives, m.FalseNegatives, m.TrueNegatives,
					tt.wantTP, tt.wantFP, tt.wantFN, tt.wantTN)
			}
		})
	}
}

func TestEvaluate_Metrics(t *testing.T) {
	cfg := Config{Threshold: 0.5, PrecisionWeight: 1, RecallWeight: 3}
	// TP=2 FP=1 FN=1 TN=1
	m := Evaluate(
		[]float64{0.9, 0.8, 0.7, 0.1, 0.2},
		labels(true, true, false, true, false),
		cfg,
	)

	approx := func(name string, got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	approx("Precision", m.Precision, 2.0/3.0)
	approx("Recall", m.Recall, 2.0/3.0)
	approx("F1", m.F1, 2.0/3.0)
	approx("Accuracy", m.Accuracy, 3.0/5.0)
	approx("WeightedScore", m.WeightedScore, 2.0/3.0)
}

func TestEvaluate_Empty(t *testing.T) {
	m := Evaluate(nil, nil, DefaultConfig())
	if m != (Metrics{}) {
		t.Errorf("Evaluate(empty) = %+v, want zero metrics", m)
	}
}

type stubScorer struct {
	scores  map[string]float64
	bypass  map[string]float64
	budgets []time.Duration
	err     error
}

func (s *stubScorer) ProfanityProbability(_ context.Context, text string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[text], nil
}

func (s *stubScorer) ProfanityProbabilityBypass(_ context.Context, text string, budget time.Duration) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.budgets = append(s.budgets, budget)
	return s.bypass[text], nil
}

func TestScore(t *testing.T) {
	s := &stubScorer{
		scores: map[string]float64{"a": 0.1, "b": 0.8},
		bypass: map[string]float64{"a": 0.95, "b": 0.8},
	}
	samples := []Sample{{Text: "a", Line: 1}, {Text: "b", Line: 2}}
	ctx := context.Background()

	cfg := DefaultConfig()
	got, err := Score(ctx, s, samples, cfg)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if got[0] != 0.1 || got[1] != 0.8 {
		t.Errorf("Score() = %v, want [0.1 0.8]", got)
	}

	cfg.Bypass = true
	cfg.Budget = time.Second
	got, err = Score(ctx, s, samples, cfg)
	if err != nil {
		t.Fatalf("Score(bypass) error = %v", err)
	}
	if got[0] != 0.95 {
		t.Errorf("Score(bypass)[0] = %v, want 0.95", got[0])
	}
	if len(s.budgets) != 2 || s.budgets[0] != time.Second {
		t.Errorf("budgets passed = %v, want [1s 1s]", s.budgets)
	}
}

func TestScore_Error(t *testing.T) {
	cause := errors.New("boom")
	s := &stubScorer{err: cause}

	_, err := Score(context.Background(), s, []Sample{{Text: "x", Line: 7}}, DefaultConfig())
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got: %v", err)
	}
	if !strings.Contains(err.Error(), "line 7") {
		t.Errorf("error %q does not name the line", err)
	}
}
