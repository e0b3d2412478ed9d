//go:build stave

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
	"v": Vocab.Build,
}

// binaries lists every command under ./cmd.
var binaries = []string{"profanity-cli", "profanity-bench"}

const corpusDir = "testdata/corpus"

// All lints, tests and builds.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init tidies the module.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles every binary into bin/.
func Build() error {
	st.Deps(Init)
	for _, name := range binaries {
		if err := buildBinary(name); err != nil {
			return err
		}
	}
	return nil
}

// buildBinary compiles ./cmd/<name> into bin/<name> when any source is newer.
func buildBinary(name string) error {
	out := filepath.Join("bin", name)
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking %s: %w", name, err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", out, "./cmd/"+name)
}

// ldflags stamps version, commit and build date into main.
func ldflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")

	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		time.Now().UTC().Format(time.RFC3339),
	)
}

// Test runs all tests with race detection and coverage.
// Set ONNXRUNTIME_LIB to include the model-backed tests.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode.
func TestShort() error {
	return sh.RunV("go", "test", "-short", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt runs gofmt and goimports over the tree.
func Fmt() error {
	for _, tool := range []string{"gofmt", "goimports"} {
		if err := sh.Run(tool, "-w", "."); err != nil {
			return fmt.Errorf("%s: %w", tool, err)
		}
	}
	return nil
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet, lint and short tests.
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, a := range []string{"bin/", "coverage.out", "coverage.html"} {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install copies the built binaries to GOBIN (or GOPATH/bin).
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = filepath.Join(gopath, "bin")
	}

	for _, name := range binaries {
		dst := filepath.Join(bin, name)
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, filepath.Join("bin", name)); err != nil {
			return fmt.Errorf("installing %s: %w", name, err)
		}
		if st.Verbose() {
			fmt.Printf("Installed %s to %s\n", name, dst)
		}
	}
	return nil
}

// Vocab namespace for vocabulary files.
type Vocab st.Namespace

// Build writes the vocabulary file (PROFANITY_VOCAB) from a term list with
// one term per line in model feature order (PROFANITY_TERMS, default
// testdata/terms.txt). The term list must match the one the model was
// trained with, or New rejects the pair.
func (Vocab) Build() error {
	terms := envOr("PROFANITY_TERMS", "testdata/terms.txt")
	if _, err := os.Stat(terms); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("term list %s not found: set PROFANITY_TERMS to the model's feature names, one per line", terms)
	}

	out := vocabPath()
	rebuild, err := target.Path(out, terms)
	if err != nil {
		return fmt.Errorf("checking %s: %w", out, err)
	}
	if !rebuild {
		return nil
	}
	return sh.RunV("go", "run", "./scripts/build-vocab.go", terms, out)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func modelPath() string { return envOr("PROFANITY_MODEL", "testdata/profanity.onnx") }

func vocabPath() string { return envOr("PROFANITY_VOCAB", "testdata/profanity.vocab") }

// Bench namespace for corpus evaluation. Every target needs the model
// (PROFANITY_MODEL) and builds the vocabulary first.
type Bench st.Namespace

// runBench evaluates testdata/corpus with the given extra flags.
func runBench(extra ...string) error {
	st.Deps(Vocab.Build)
	if err := buildBinary("profanity-bench"); err != nil {
		return err
	}
	if _, err := os.Stat(modelPath()); err != nil {
		return fmt.Errorf("model: %w (set PROFANITY_MODEL)", err)
	}

	args := []string{
		"-model", modelPath(),
		"-vocab", vocabPath(),
		"-lib", os.Getenv("ONNXRUNTIME_LIB"),
		"-corpus", corpusDir,
	}
	return sh.RunV("./bin/profanity-bench", append(args, extra...)...)
}

// Run reports precision and recall at the default threshold.
func (Bench) Run() error { return runBench() }

// Sweep finds the best threshold for normalized scoring.
func (Bench) Sweep() error { return runBench("-sweep") }

// Bypass finds the best threshold for variant-expanded scoring.
func (Bench) Bypass() error { return runBench("-bypass", "-sweep") }

// CI runs lint, test and build in order.
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Coverage writes coverage.out and an HTML report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}
