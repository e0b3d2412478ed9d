package variant

import (
	"sort"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func sorted(s *Set) []string {
	items := s.Items()
	sort.Strings(items)
	return items
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "two letters",
			input: "AB",
			want:  []string{"A", "A B", "AB", "B"},
		},
		{
			name:  "repeated letters",
			input: "aaa",
			want:  []string{"a", "a a", "a aa", "aa", "aa a", "aaa"},
		},
		{
			name:  "leet digit",
			input: "5h",
			want:  []string{"5", "5 h", "5h", "h", "s", "s h", "sh"},
		},
		{
			name:  "single character",
			input: "x",
			want:  []string{"x"},
		},
		{
			name:  "only spaces",
			input: "   ",
			want:  []string{"   ", "    ", " "},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want := append([]string(nil), tc.want...)
			sort.Strings(want)
			if diff := cmp.Diff(want, sorted(Expand(tc.input))); diff != "" {
				t.Errorf("Expand(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestExpand_Empty(t *testing.T) {
	set := Expand("")
	if set.Len() != 0 {
		t.Errorf("Expand(\"\") has %d items, want 0: %q", set.Len(), set.Items())
	}
}

func TestExpand_NeverContainsEmpty(t *testing.T) {
	inputs := []string{"!!!", "123", "a b", " ", "$", "f.u.c.k", "Scunthorpe", "ÅÅ"}
	for _, in := range inputs {
		set := Expand(in)
		if set.Contains("") {
			t.Errorf("Expand(%q) contains the empty string", in)
		}
		if !set.Contains(in) {
			t.Errorf("Expand(%q) is missing the original text", in)
		}
	}
}

func TestExpand_InvalidUTF8(t *testing.T) {
	replacement := string(utf8.RuneError)
	for _, in := range []string{"s\xffh", "\xff\xfe", "a\xc3 b\xff\xff"} {
		for _, item := range Expand(in).Items() {
			if strings.Contains(item, replacement) {
				t.Errorf("Expand(%q) produced %q with U+FFFD", in, item)
			}
		}
	}

	want := []string{"\xffh", "h", "s", "s h", "s\xff", "s\xff h", "s \xffh", "s\xffh", "sh"}
	sort.Strings(want)
	if diff := cmp.Diff(want, sorted(Expand("s\xffh"))); diff != "" {
		t.Errorf("Expand invalid UTF-8 mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_Deterministic(t *testing.T) {
	input := "y0u 5tuup1d f.u.c.k"
	first := Expand(input)
	second := Expand(input)

	if diff := cmp.Diff(sorted(first), sorted(second)); diff != "" {
		t.Errorf("Expand is not deterministic (-first +second):\n%s", diff)
	}
}

func TestExpand_SurfacesObfuscation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"hidden in phrase", "you stupid shit", "shit"},
		{"punctuation padding", "s.h.i.t", "shit"},
		{"leetspeak", "5h1t", "shit"},
		{"repeated letters", "shiiiit", "shit"},
		{"digit padding", "sh1t99", "shit"},
		{"joined words", "stupidshit", "shit"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !Expand(tc.input).Contains(tc.want) {
				t.Errorf("Expand(%q) does not contain %q", tc.input, tc.want)
			}
		})
	}
}

func TestSplitSpaces(t *testing.T) {
	got := SplitSpaces("  a bb  c ")
	if diff := cmp.Diff([]string{"a", "bb", "c"}, got); diff != "" {
		t.Errorf("SplitSpaces mismatch (-want +got):\n%s", diff)
	}
	if got := SplitSpaces(""); len(got) != 0 {
		t.Errorf("SplitSpaces(\"\") = %q, want none", got)
	}
	if got := SplitSpaces("a\tb"); len(got) != 1 {
		t.Errorf("SplitSpaces only splits on ' ', got %q", got)
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"letters", KeepLetters, "a1-B2 é", "aB"},
		{"digits", KeepDigits, "a1-B2 é", "12"},
		{"alnum", KeepAlnum, "a1-B2 é", "a1B2"},
		{"letters of empty", KeepLetters, "", ""},
		{"digits of letters", KeepDigits, "abc", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInsertSpaces(t *testing.T) {
	got := InsertSpaces("abcd")
	want := []string{"a bcd", "ab cd", "abc d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InsertSpaces mismatch (-want +got):\n%s", diff)
	}

	if got := InsertSpaces("a"); len(got) != 0 {
		t.Errorf("InsertSpaces(\"a\") = %q, want none", got)
	}
	if got := InsertSpaces(""); len(got) != 0 {
		t.Errorf("InsertSpaces(\"\") = %q, want none", got)
	}

	// Multi-byte runes are never split.
	if diff := cmp.Diff([]string{"é ü"}, InsertSpaces("éü")); diff != "" {
		t.Errorf("InsertSpaces rune handling (-want +got):\n%s", diff)
	}

	// Invalid bytes are kept as they are.
	if diff := cmp.Diff([]string{"s \xffh", "s\xff h"}, InsertSpaces("s\xffh")); diff != "" {
		t.Errorf("InsertSpaces invalid UTF-8 (-want +got):\n%s", diff)
	}
}

func TestCollapseRuns(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aaabccc", "abc"},
		{"abab", "abab"},
		{"aAa", "aAa"},
		{"  a  b", " a b"},
		{"ééé", "é"},
		{"\xff\xfe", "\xff\xfe"},
		{"\xff\xffa", "\xffa"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := CollapseRuns(tc.in)
			if got != tc.want {
				t.Errorf("CollapseRuns(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := CollapseRuns(got); again != got {
				t.Errorf("CollapseRuns not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSet(t *testing.T) {
	s := NewSet("a", "b", "a")
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if s.Add("b") {
		t.Error("Add of existing item reported new")
	}
	if !s.Add("c") {
		t.Error("Add of new item reported existing")
	}

	s.Remove("b")
	s.Remove("missing")
	if s.Contains("b") {
		t.Error("removed item still present")
	}
	if diff := cmp.Diff([]string{"a", "c"}, s.Items()); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}

	items := s.Items()
	items[0] = "mutated"
	if !s.Contains("a") || s.Items()[0] != "a" {
		t.Error("Items returned shared storage")
	}
}
