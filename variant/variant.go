// Package variant expands a string into candidate spellings that expose
// obfuscated profanity: split phrases, stripped padding characters, inserted
// spaces, leetspeak and repeated letters.
package variant

import (
	"strings"
	"unicode/utf8"

	"github.com/jamesainslie/go-profanity/normalize"
)

// Set is a deduplicated collection of candidate strings.
// Items are kept in insertion order so expansion is reproducible, but only
// membership is meaningful.
type Set struct {
	index map[string]struct{}
	items []string
}

// NewSet returns a set holding the given strings.
func NewSet(items ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts item, reporting whether it was new.
func (s *Set) Add(item string) bool {
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Contains reports whether item is in the set.
func (s *Set) Contains(item string) bool {
	_, ok := s.index[item]
	return ok
}

// Remove deletes item from the set.
func (s *Set) Remove(item string) {
	if _, ok := s.index[item]; !ok {
		return
	}
	delete(s.index, item)
	for i, v := range s.items {
		if v == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
}

// Len returns the number of items.
func (s *Set) Len() int { return len(s.items) }

// Items returns a copy of the items.
func (s *Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// stage adds fn's outputs for every item currently in the set.
// Items added during the stage are not revisited by it.
func (s *Set) stage(fn func(string) []string) {
	snapshot := s.Items()
	for _, item := range snapshot {
		for _, out := range fn(item) {
			s.Add(out)
		}
	}
}

func single(fn func(string) string) func(string) []string {
	return func(text string) []string {
		return []string{fn(text)}
	}
}

// Expand returns every candidate derived from text. The result always
// contains text itself unless text is empty, and never contains "".
//
// Stages run in a fixed order over a growing pool, so later stages also see
// the outputs of earlier ones:
//
//  1. split on spaces
//  2. keep letters
//  3. keep digits
//  4. keep letters and digits
//  5. insert one space at every inner position
//  6. split on spaces again
//  7. leetspeak to letters
//  8. collapse repeated characters
func Expand(text string) *Set {
	pool := NewSet()
	if text == "" {
		return pool
	}
	pool.Add(text)

	pool.stage(SplitSpaces)
	pool.stage(single(KeepLetters))
	pool.stage(single(KeepDigits))
	pool.stage(single(KeepAlnum))
	pool.stage(InsertSpaces)
	pool.stage(SplitSpaces)
	pool.stage(single(normalize.LeetFold.Apply))
	pool.stage(single(CollapseRuns))

	pool.Remove("")
	return pool
}

// SplitSpaces returns the non-empty tokens of text split on ' '.
func SplitSpaces(text string) []string {
	var tokens []string
	for _, tok := range strings.Split(text, " ") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// KeepLetters removes every character outside [A-Za-z].
func KeepLetters(text string) string {
	return keep(text, isLetter)
}

// KeepDigits removes every character outside [0-9].
func KeepDigits(text string) string {
	return keep(text, isDigit)
}

// KeepAlnum removes every character outside [A-Za-z0-9].
func KeepAlnum(text string) string {
	return keep(text, func(b byte) bool { return isLetter(b) || isDigit(b) })
}

// InsertSpaces returns one string per inner character position of text,
// each with a single space inserted at that position. Strings shorter than
// two characters yield nothing. Invalid UTF-8 bytes count as one character
// each and are copied through unchanged.
func InsertSpaces(text string) []string {
	var out []string
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if i == len(text) {
			break
		}

		var b strings.Builder
		b.Grow(len(text) + 1)
		b.WriteString(text[:i])
		b.WriteByte(' ')
		b.WriteString(text[i:])
		out = append(out, b.String())
	}
	return out
}

// CollapseRuns drops every character equal to the previously kept one, so
// "aaabccc" becomes "abc". Characters are compared by their bytes, so two
// different invalid bytes are never merged.
func CollapseRuns(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	prev := ""
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		char := text[i : i+size]
		i += size
		if char == prev {
			continue
		}
		b.WriteString(char)
		prev = char
	}
	return b.String()
}

func keep(text string, pred func(byte) bool) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if pred(text[i]) {
			b.WriteByte(text[i])
		}
	}
	return b.String()
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
