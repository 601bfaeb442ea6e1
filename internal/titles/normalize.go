package titles

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var (
	trailingYearRe = regexp.MustCompile(`\((\d{4})\)\s*$`)
	listMarkerRe   = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s+`)
	boldYearRe     = regexp.MustCompile(`^\*\*(.*?)\s*\((\d{4})\)\*\*`)
	boldRe         = regexp.MustCompile(`^\*\*(.*?)\*\*`)
	plainYearRe    = regexp.MustCompile(`^(.*?)(?:\s*\((\d{4})\))?$`)
)

var placeholderTitles = map[string]struct{}{
	"n/a":                  {},
	"[insert title here]": {},
}

// Normalize case-folds the title, removes parenthetical content and stray
// parentheses, and collapses runs of whitespace to single spaces.
func Normalize(title string) string {
	folded := cases.Fold().String(title)

	var b strings.Builder
	b.Grow(len(folded))
	depth := 0
	pendingSpace := false
	for _, r := range folded {
		switch {
		case r == '(':
			depth++
			pendingSpace = b.Len() > 0
			continue
		case r == ')':
			if depth > 0 {
				depth--
			}
			pendingSpace = b.Len() > 0
			continue
		case depth > 0:
			continue
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tokens splits a normalized title into its words, dropping punctuation.
func Tokens(normalized string) []string {
	return strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// SplitYear separates a trailing "(YYYY)" from the title. Year is zero when
// the title carries none.
func SplitYear(raw string) (string, int) {
	raw = strings.TrimSpace(raw)
	m := trailingYearRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return raw, 0
	}
	year, err := strconv.Atoi(raw[m[2]:m[3]])
	if err != nil {
		return raw, 0
	}
	title := strings.TrimSpace(raw[:m[0]])
	if title == "" {
		return raw, year
	}
	return title, year
}

// ParseListLine extracts a title and optional year from one line of a
// recommendation list such as "1. **Heat (1995)** - a crime epic",
// "**Heat**", or "Heat (1995)". ok is false for blank lines and placeholders.
func ParseListLine(line string) (title string, year int, ok bool) {
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(listMarkerRe.ReplaceAllString(line, ""))
	if line == "" {
		return "", 0, false
	}

	if m := boldYearRe.FindStringSubmatch(line); m != nil {
		return acceptTitle(m[1], m[2])
	}
	if m := boldRe.FindStringSubmatch(line); m != nil {
		return acceptTitle(m[1], "")
	}
	if m := plainYearRe.FindStringSubmatch(line); m != nil {
		return acceptTitle(m[1], m[2])
	}
	return "", 0, false
}

func acceptTitle(rawTitle, rawYear string) (string, int, bool) {
	title := strings.TrimSpace(rawTitle)
	if title == "" {
		return "", 0, false
	}
	if _, skip := placeholderTitles[strings.ToLower(title)]; skip {
		return "", 0, false
	}
	year := 0
	if rawYear != "" {
		if parsed, err := strconv.Atoi(rawYear); err == nil {
			year = parsed
		}
	}
	return title, year, true
}
