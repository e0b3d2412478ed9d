//go:build ignore

// Convert a plain term list (one term per line, in feature order) into a
// vocabulary file.
// Usage: go run ./scripts/build-vocab.go terms.txt testdata/profanity.vocab
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jamesainslie/go-profanity/inference"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: go run ./scripts/build-vocab.go TERMS OUT")
		os.Exit(1)
	}

	terms, err := readTerms(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading terms: %v\n", err)
		os.Exit(1)
	}
	if len(terms) == 0 {
		fmt.Fprintln(os.Stderr, "No terms found.")
		os.Exit(1)
	}

	vocab := inference.NewVocabulary(terms)
	if err := os.WriteFile(os.Args[2], vocab.Marshal(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing vocabulary: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d terms to %s\n", vocab.Size(), os.Args[2])
}

func readTerms(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term == "" || strings.HasPrefix(term, "#") {
			continue
		}
		terms = append(terms, term)
	}
	return terms, scanner.Err()
}
