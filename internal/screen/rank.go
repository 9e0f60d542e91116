// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"math"
	"sort"

	"github.com/pdiddy/resume-screener/internal/vectorize"
)

// Ranked is one document's position in a run: its index in the input
// document list and its similarity score.
type Ranked struct {
	Index int
	Score float64
}

// Rank scores every document vector against the query vector and returns
// them sorted by score, highest first. Scores are cosine similarities as
// percentages rounded to two decimals. Equal scores keep input order. No
// document is dropped, including those scoring 0.
func Rank(query vectorize.Vector, docs []vectorize.Vector) []Ranked {
	ranked := make([]Ranked, len(docs))
	for i, d := range docs {
		ranked[i] = Ranked{Index: i, Score: percent(query.Dot(d))}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// percent converts a cosine similarity to a two-decimal percentage. Rounding
// error can push the cosine of identical vectors slightly past 1, so the
// value is clamped to [0, 1] first.
func percent(cos float64) float64 {
	cos = math.Max(0, math.Min(1, cos))
	return math.Round(cos*100*100) / 100
}
