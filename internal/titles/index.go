package titles

import "strings"

// Mode selects the fuzzy strategy used when no exact entry exists.
type Mode string

const (
	// ModeSubstring returns the first title, in corpus order, containing the query.
	ModeSubstring Mode = "substring"
	// ModeToken returns the title with the highest word overlap with the query.
	ModeToken Mode = "token"
)

// ParseMode maps a configuration value to a Mode.
func ParseMode(value string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeSubstring, "":
		return ModeSubstring, true
	case ModeToken:
		return ModeToken, true
	default:
		return "", false
	}
}

// MatchKind reports which lookup step resolved a query.
type MatchKind string

const (
	MatchVerbatim   MatchKind = "verbatim"
	MatchNormalized MatchKind = "normalized"
	MatchSubstring  MatchKind = "substring"
	MatchToken      MatchKind = "token"
)

// Match is a successful resolution.
type Match struct {
	Index int
	Kind  MatchKind
}

// Index maps titles to corpus positions. It is immutable after NewIndex and
// safe for concurrent readers.
type Index struct {
	verbatim   map[string]int
	normalized map[string]int
	ordered    []string
	tokens     [][]string
}

// NewIndex builds lookup tables for titles in corpus order. Duplicate titles
// resolve to the last occurrence.
func NewIndex(corpusTitles []string) *Index {
	idx := &Index{
		verbatim:   make(map[string]int, len(corpusTitles)),
		normalized: make(map[string]int, len(corpusTitles)),
		ordered:    make([]string, len(corpusTitles)),
		tokens:     make([][]string, len(corpusTitles)),
	}
	for i, title := range corpusTitles {
		norm := Normalize(title)
		idx.verbatim[title] = i
		idx.normalized[norm] = i
		idx.ordered[i] = norm
		idx.tokens[i] = Tokens(norm)
	}
	return idx
}

// Len reports the number of indexed titles.
func (idx *Index) Len() int {
	return len(idx.ordered)
}

// Resolve maps a query to a corpus position. Lookup order is verbatim title,
// normalized title, then the fuzzy step selected by mode.
func (idx *Index) Resolve(query string, mode Mode) (Match, bool) {
	if i, ok := idx.verbatim[query]; ok {
		return Match{Index: i, Kind: MatchVerbatim}, true
	}
	norm := Normalize(query)
	if norm == "" {
		return Match{}, false
	}
	if i, ok := idx.normalized[norm]; ok {
		return Match{Index: i, Kind: MatchNormalized}, true
	}
	if mode == ModeToken {
		return idx.bestTokenOverlap(Tokens(norm))
	}
	for i, candidate := range idx.ordered {
		if strings.Contains(candidate, norm) {
			return Match{Index: i, Kind: MatchSubstring}, true
		}
	}
	return Match{}, false
}

// bestTokenOverlap scores titles by Jaccard overlap of their word sets. Ties
// go to the lowest corpus position.
func (idx *Index) bestTokenOverlap(query []string) (Match, bool) {
	want := make(map[string]struct{}, len(query))
	for _, tok := range query {
		want[tok] = struct{}{}
	}

	best, bestScore := -1, 0.0
	for i, toks := range idx.tokens {
		seen := make(map[string]struct{}, len(toks))
		shared := 0
		for _, tok := range toks {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			if _, ok := want[tok]; ok {
				shared++
			}
		}
		if shared == 0 {
			continue
		}
		score := float64(shared) / float64(len(want)+len(seen)-shared)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return Match{}, false
	}
	return Match{Index: best, Kind: MatchToken}, true
}
