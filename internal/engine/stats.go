package engine

import (
	"time"

	"movierec/internal/corpus"
	"movierec/internal/titles"
)

// Stats summarizes an Index.
type Stats struct {
	BuildID        string
	BuiltAt        time.Time
	BuildDuration  time.Duration
	Records        int
	Vocabulary     int
	ZeroVectors    int
	DuplicateTitle int
	MatchMode      titles.Mode
}

// Stats reports corpus and vocabulary figures for the index.
func (ix *Index) Stats() Stats {
	zero := 0
	for _, v := range ix.model.Vectors() {
		if v.IsZero() {
			zero++
		}
	}
	return Stats{
		BuildID:        ix.buildID,
		BuiltAt:        ix.builtAt,
		BuildDuration:  ix.duration,
		Records:        len(ix.records),
		Vocabulary:     len(ix.model.Vocabulary()),
		ZeroVectors:    zero,
		DuplicateTitle: len(corpus.DuplicateTitles(ix.records)),
		MatchMode:      ix.mode,
	}
}
