package vectorize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Tokenizer splits genre text into weighted terms.
type Tokenizer struct {
	stop map[string]struct{}
}

// NewTokenizer builds a tokenizer excluding the English stop words plus extra.
func NewTokenizer(extra []string) *Tokenizer {
	stop := make(map[string]struct{}, len(englishStopWords)+len(extra))
	for _, w := range englishStopWords {
		stop[w] = struct{}{}
	}
	for _, w := range extra {
		if w = strings.TrimSpace(cases.Fold().String(w)); w != "" {
			stop[w] = struct{}{}
		}
	}
	return &Tokenizer{stop: stop}
}

// Tokens case-folds text, splits it on whitespace, trims surrounding
// punctuation, and drops stop words and single-character tokens.
func (t *Tokenizer) Tokens(text string) []string {
	fields := strings.Fields(cases.Fold().String(text))
	out := fields[:0]
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		if _, skip := t.stop[tok]; skip {
			continue
		}
		out = append(out, tok)
	}
	return out
}
