// Package normalize provides composable text transforms applied before
// profanity scoring.
//
// Each Step is a pure string function. A Chain applies its steps left to
// right, feeding the output of one step into the next.
package normalize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Func is a pure text transform.
type Func func(string) string

// Step is a named text transform. The zero Step is the identity.
type Step struct {
	name string
	fn   Func
}

// NewStep creates a Step from a name and transform.
func NewStep(name string, fn Func) Step {
	return Step{name: name, fn: fn}
}

// Name returns the step name.
func (s Step) Name() string { return s.name }

// Apply runs the step on text.
func (s Step) Apply(text string) string {
	if s.fn == nil {
		return text
	}
	return s.fn(text)
}

// Built-in steps.
var (
	// UnicodeFold decomposes to NFKD, drops non-ASCII runes, lowercases,
	// collapses whitespace runs to a single space and trims the ends.
	UnicodeFold = NewStep("unicode", unicodeFold)

	// LeetFold replaces digits with the letters they commonly stand in for.
	LeetFold = NewStep("leet", leetFold)
)

// All returns the built-in steps in their default order.
func All() []Step {
	return []Step{UnicodeFold, LeetFold}
}

// Lookup returns the built-in step with the given name.
func Lookup(name string) (Step, bool) {
	for _, s := range All() {
		if s.name == name {
			return s, true
		}
	}
	return Step{}, false
}

// ParseChain builds a Chain from a comma-separated list of step names.
// "none" and the empty string yield an empty chain.
func ParseChain(spec string) (Chain, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "none" {
		return Chain{}, nil
	}

	var chain Chain
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		step, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown normalizer %q", name)
		}
		chain = append(chain, step)
	}
	return chain, nil
}

// Chain is an ordered sequence of steps. The empty Chain is the identity.
type Chain []Step

// Apply threads text through every step in order.
func (c Chain) Apply(text string) string {
	for _, s := range c {
		text = s.Apply(text)
	}
	return text
}

// Names returns the step names in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.name
	}
	return names
}

func unicodeFold(text string) string {
	if text == "" {
		return ""
	}

	decomposed := norm.NFKD.String(text)

	var builder strings.Builder
	builder.Grow(len(decomposed))
	needSpace := false

	for _, r := range decomposed {
		if r >= utf8.RuneSelf {
			continue
		}
		if unicode.IsSpace(r) {
			// Only separate words once something has been written
			if builder.Len() > 0 {
				needSpace = true
			}
			continue
		}
		if needSpace {
			builder.WriteByte(' ')
			needSpace = false
		}
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		builder.WriteRune(r)
	}

	return builder.String()
}

var leetReplacer = strings.NewReplacer(
	"1", "i",
	"3", "e",
	"4", "a",
	"5", "s",
	"7", "t",
	"0", "o",
	"9", "g",
	"8", "b",
	"6", "g",
)

func leetFold(text string) string {
	return leetReplacer.Replace(text)
}
