package bench

import (
	"sort"
)

// SweepResult holds metrics for one threshold value.
type SweepResult struct {
	Threshold float64
	Metrics   Metrics
}

// SweepThresholds generates threshold values from min to max with given step.
func SweepThresholds(min, max, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var thresholds []float64
	for i := 0; ; i++ {
		t := min + float64(i)*step
		if t >= max {
			break
		}
		thresholds = append(thresholds, t)
	}
	return thresholds
}

// Sweep evaluates pre-computed scores at each threshold and returns results
// sorted by weighted score, best first. Ties keep threshold order.
func Sweep(scores []float64, samples []Sample, cfg Config, thresholds []float64) []SweepResult {
	results := make([]SweepResult, 0, len(thresholds))
	for _, threshold := range thresholds {
		cfg.Threshold = threshold
		results = append(results, SweepResult{
			Threshold: threshold,
			Metrics:   Evaluate(scores, samples, cfg),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results
}
