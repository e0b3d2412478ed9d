// Package bench provides evaluation utilities for profanity classification.
package bench

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Header contains metadata parsed from a corpus file header.
type Header struct {
	Source string
	Title  string
}

// ParseHeader extracts metadata from leading comment lines.
// Returns the header, remaining text after header, and any error.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	bodyStart := len(text)
	var lineEnd int

	for scanner.Scan() {
		line := scanner.Text()
		lineEnd += len(line) + 1 // +1 for newline

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineEnd - len(line) - 1
			break
		}

		line = strings.TrimPrefix(line, "# ")
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
			h.Title = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	if h.Source == "" {
		return Header{}, "", errors.New("missing Source in header")
	}

	return h, text[bodyStart:], nil
}

// Sample is one labelled text.
type Sample struct {
	Text    string
	Profane bool
	Line    int // 1-based line within the body
}

// ParseSamples reads "<label>\t<text>" lines, where label is 1 for profane
// and 0 for clean. Blank lines and lines starting with '#' are skipped.
func ParseSamples(body string) ([]Sample, error) {
	var samples []Sample
	scanner := bufio.NewScanner(strings.NewReader(body))
	line := 0

	for scanner.Scan() {
		line++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		label, text, ok := strings.Cut(raw, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: missing tab separator", line)
		}

		var profane bool
		switch strings.TrimSpace(label) {
		case "1":
			profane = true
		case "0":
			profane = false
		default:
			return nil, fmt.Errorf("line %d: label %q is not 0 or 1", line, label)
		}

		samples = append(samples, Sample{Text: text, Profane: profane, Line: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan samples: %w", err)
	}
	return samples, nil
}

// Corpus represents a loaded corpus file.
type Corpus struct {
	ID      string // filename without extension
	Source  string
	Title   string
	Samples []Sample
}

// LoadFile loads and parses a corpus file.
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	samples, err := ParseSamples(body)
	if err != nil {
		return nil, fmt.Errorf("parse samples: %w", err)
	}

	base := filepath.Base(path)
	return &Corpus{
		ID:      strings.TrimSuffix(base, filepath.Ext(base)),
		Source:  header.Source,
		Title:   header.Title,
		Samples: samples,
	}, nil
}

// LoadCorpus loads all .tsv corpus files from a directory.
func LoadCorpus(dir string) ([]*Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var corpora []*Corpus
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tsv" {
			continue
		}

		c, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		corpora = append(corpora, c)
	}

	return corpora, nil
}

// Flatten returns the samples of all corpora in order.
func Flatten(corpora []*Corpus) []Sample {
	var samples []Sample
	for _, c := range corpora {
		samples = append(samples, c.Samples...)
	}
	return samples
}
