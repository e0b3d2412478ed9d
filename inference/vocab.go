package inference

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// Vocabulary wire layout:
//
//	message Vocabulary {
//	  repeated Term terms = 1;
//	  uint32 size = 2; // feature vector width, at least max(index)+1
//	}
//	message Term {
//	  string text = 1;
//	  uint32 index = 2;
//	}
const (
	vocabTermsField protowire.Number = 1
	vocabSizeField  protowire.Number = 2
	termTextField   protowire.Number = 1
	termIndexField  protowire.Number = 2
)

// MaxVocabularySize bounds the feature vector width accepted from a file.
const MaxVocabularySize = 1 << 20

// Vocabulary maps lowercase words to feature vector positions.
type Vocabulary struct {
	index map[string]int
	size  int
}

// NewVocabulary assigns consecutive indices to terms in order.
// Duplicate terms keep their first index.
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int, len(terms))}
	for _, term := range terms {
		term = strings.ToLower(term)
		if _, ok := v.index[term]; ok {
			continue
		}
		v.index[term] = v.size
		v.size++
	}
	return v
}

// LoadVocabulary reads a vocabulary file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary file: %w", err)
	}

	v, err := ParseVocabulary(data)
	if err != nil {
		return nil, fmt.Errorf("parsing vocabulary: %w", err)
	}
	return v, nil
}

// ParseVocabulary decodes a vocabulary from its wire form.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	v := &Vocabulary{index: make(map[string]int)}
	declared := 0

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == vocabTermsField && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			data = data[n:]

			text, idx, err := parseTerm(msg)
			if err != nil {
				return nil, err
			}
			v.index[text] = idx
			if idx+1 > v.size {
				v.size = idx + 1
			}

		case num == vocabSizeField && typ == protowire.VarintType:
			size, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			data = data[n:]
			if size > MaxVocabularySize {
				return nil, fmt.Errorf("declared size %d exceeds limit %d", size, MaxVocabularySize)
			}
			declared = int(size)

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			data = data[n:]
		}
	}

	if declared > 0 {
		if declared < v.size {
			return nil, fmt.Errorf("declared size %d smaller than highest index %d", declared, v.size-1)
		}
		v.size = declared
	}
	if v.size == 0 {
		return nil, errors.New("empty vocabulary")
	}

	return v, nil
}

func parseTerm(data []byte) (string, int, error) {
	var text string
	idx := -1

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return "", 0, protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case num == termTextField && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return "", 0, protowire.ParseError(n)
			}
			data = data[n:]
			text = s

		case num == termIndexField && typ == protowire.VarintType:
			x, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return "", 0, protowire.ParseError(n)
			}
			data = data[n:]
			if x >= MaxVocabularySize {
				return "", 0, fmt.Errorf("term index %d exceeds limit %d", x, MaxVocabularySize-1)
			}
			idx = int(x)

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return "", 0, protowire.ParseError(n)
			}
			data = data[n:]
		}
	}

	if text == "" {
		return "", 0, errors.New("term without text")
	}
	if idx < 0 {
		return "", 0, fmt.Errorf("term %q without index", text)
	}
	return text, idx, nil
}

// Marshal encodes the vocabulary in its wire form. Terms are written in
// index order.
func (v *Vocabulary) Marshal() []byte {
	terms := make([]string, 0, len(v.index))
	for term := range v.index {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		return v.index[terms[i]] < v.index[terms[j]]
	})

	var b []byte
	for _, term := range terms {
		var msg []byte
		msg = protowire.AppendTag(msg, termTextField, protowire.BytesType)
		msg = protowire.AppendString(msg, term)
		msg = protowire.AppendTag(msg, termIndexField, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(v.index[term]))

		b = protowire.AppendTag(b, vocabTermsField, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	b = protowire.AppendTag(b, vocabSizeField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(v.size))
	return b
}

// Size returns the feature vector width.
func (v *Vocabulary) Size() int { return v.size }

// Index returns the feature position of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Vectorize returns bag-of-words counts for text. Words are lowercased and
// split on whitespace; words outside the vocabulary are ignored.
func (v *Vocabulary) Vectorize(text string) []float32 {
	features := make([]float32, v.size)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if i, ok := v.index[word]; ok {
			features[i]++
		}
	}
	return features
}
