package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	profanity "github.com/jamesainslie/go-profanity"
	"github.com/jamesainslie/go-profanity/internal/bench"
	"github.com/jamesainslie/go-profanity/normalize"
)

func main() {
	var (
		modelPath   = flag.String("model", "", "Path to ONNX model file (required)")
		vocabPath   = flag.String("vocab", "", "Path to vocabulary file (required)")
		libraryPath = flag.String("lib", "", "Path to the ONNX Runtime shared library")
		corpusDir   = flag.String("corpus", "testdata/corpus", "Directory containing labelled .tsv files")
		normalizers = flag.String("normalizers", "unicode,leet", "Comma-separated normalizers (unicode, leet) or none")
		threshold   = flag.Float64("threshold", profanity.DefaultThreshold, "Probability cutoff")
		wp          = flag.Float64("wp", 1.0, "Precision weight")
		wr          = flag.Float64("wr", 1.0, "Recall weight")
		bypass      = flag.Bool("bypass", false, "Score every variant of each sample")
		budget      = flag.Duration("budget", profanity.Unbounded, "Per-sample time budget for -bypass (negative is unbounded)")
		sweep       = flag.Bool("sweep", false, "Run threshold sweep")
		sweepMin    = flag.Float64("sweep-min", 0.5, "Sweep minimum threshold")
		sweepMax    = flag.Float64("sweep-max", 1.0, "Sweep maximum threshold")
		sweepStep   = flag.Float64("sweep-step", 0.05, "Sweep step size")
	)
	flag.Parse()

	if *modelPath == "" || *vocabPath == "" {
		fmt.Fprintln(os.Stderr, "error: -model and -vocab required")
		flag.Usage()
		os.Exit(1)
	}

	corpora, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	samples := bench.Flatten(corpora)
	fmt.Printf("Loaded %d samples from %d files in %s\n\n", len(samples), len(corpora), *corpusDir)

	chain, err := normalize.ParseChain(*normalizers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	checker, err := profanity.New(*modelPath, *vocabPath,
		profanity.WithLibraryPath(*libraryPath),
		profanity.WithNormalizers(chain...),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating checker: %v\n", err)
		os.Exit(1)
	}

	cfg := bench.Config{
		Threshold:       *threshold,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
		Bypass:          *bypass,
		Budget:          *budget,
	}

	start := time.Now()
	scores, err := bench.Score(context.Background(), checker, samples, cfg)
	_ = checker.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error scoring corpus: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Scored in %s\n\n", time.Since(start).Round(time.Millisecond))

	if *sweep {
		runSweep(scores, samples, cfg, *sweepMin, *sweepMax, *sweepStep)
		return
	}
	printMetrics(bench.Evaluate(scores, samples, cfg))
}

func runSweep(scores []float64, samples []bench.Sample, cfg bench.Config, min, max, step float64) {
	thresholds := bench.SweepThresholds(min, max, step)

	fmt.Printf("Threshold Sweep Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s\n", "Thresh", "Prec", "Rec", "F1", "Weighted")

	results := bench.Sweep(scores, samples, cfg, thresholds)

	// Print sorted by threshold for readability
	for _, t := range thresholds {
		for _, r := range results {
			if r.Threshold == t {
				fmt.Printf("%-8.3f %-8.2f %-8.2f %-8.2f %-8.2f\n",
					r.Threshold, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1, r.Metrics.WeightedScore)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: %.3f (Weighted: %.2f)\n", best.Threshold, best.Metrics.WeightedScore)
	}
}

func printMetrics(m bench.Metrics) {
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Accuracy: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.Accuracy, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d, TN: %d)\n",
		m.TruePositives, m.FalsePositives, m.FalseNegatives, m.TrueNegatives)
}
