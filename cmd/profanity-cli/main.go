package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	profanity "github.com/jamesainslie/go-profanity"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to TOML config file")
	modelPath := flag.String("model", "", "Path to ONNX model file")
	vocabPath := flag.String("vocab", "", "Path to vocabulary file")
	libraryPath := flag.String("lib", "", "Path to the ONNX Runtime shared library")
	normalizers := flag.String("normalizers", "unicode,leet", "Comma-separated normalizers (unicode, leet) or none")
	mode := flag.String("mode", "native", "Decision mode: native or threshold")
	threshold := flag.Float64("threshold", profanity.DefaultThreshold, "Probability cutoff in threshold mode")
	bypass := flag.Bool("bypass", false, "Check every variant of the text")
	budget := flag.String("budget", "", "Time budget for -bypass, e.g. 50ms (default unbounded)")
	logLevel := flag.String("log", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	if *showVersion {
		fmt.Printf("profanity-cli %s (%s, %s)\n", version, commit, date)
		return
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Explicit flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = *modelPath
		case "vocab":
			cfg.Vocab = *vocabPath
		case "lib":
			cfg.Library = *libraryPath
		case "normalizers":
			cfg.Normalizers = *normalizers
		case "mode":
			cfg.Mode = *mode
		case "threshold":
			cfg.Threshold = *threshold
		case "bypass":
			cfg.Bypass = *bypass
		case "budget":
			cfg.Budget = *budget
		case "log":
			cfg.LogLevel = *logLevel
		}
	})

	if cfg.Model == "" || cfg.Vocab == "" {
		fmt.Fprintln(os.Stderr, "Usage: profanity-cli -model MODEL -vocab VOCAB [OPTIONS] TEXT")
		flag.PrintDefaults()
		os.Exit(1)
	}

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		fmt.Fprintln(os.Stderr, "Error: no text provided")
		os.Exit(1)
	}

	level, err := cfg.level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts, err := cfg.options(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	limit, err := cfg.budget()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	checker, err := profanity.New(cfg.Model, cfg.Vocab, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating checker: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), checker, text, cfg.Bypass, limit); err != nil {
		_ = checker.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	_ = checker.Close() // Cleanup error ignored in CLI
}

func run(ctx context.Context, checker *profanity.Checker, text string, bypass bool, limit time.Duration) error {
	var (
		profane bool
		prob    float64
		err     error
	)

	if bypass {
		profane, err = checker.IsProfaneBypass(ctx, text, limit)
		if err != nil {
			return err
		}
		prob, err = checker.ProfanityProbabilityBypass(ctx, text, limit)
	} else {
		profane, err = checker.IsProfane(ctx, text)
		if err != nil {
			return err
		}
		prob, err = checker.ProfanityProbability(ctx, text)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Text: %q\n", text)
	if !bypass {
		fmt.Printf("Normalized: %q\n", checker.Normalize(text))
	}
	fmt.Printf("Mode: %s\n", checker.Mode())
	fmt.Printf("Profane: %v\n", profane)
	fmt.Printf("Probability: %.4f\n", prob)
	return nil
}
