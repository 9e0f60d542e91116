// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"sort"
	"strings"

	"github.com/pdiddy/resume-screener/internal/vectorize"
)

// DefaultKeywordLimit is how many of the job description's heaviest terms
// are checked against each resume.
const DefaultKeywordLimit = 15

// TopKeywords returns up to limit vocabulary terms with the highest weight in
// the query vector, heaviest first. Only strictly positive weights qualify,
// so fewer than limit terms come back when the query is short. Equal weights
// are ordered alphabetically.
func TopKeywords(space *vectorize.Space, limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}
	q := space.Query

	order := make([]int, 0, q.Len())
	for k, w := range q.Weights {
		if w > 0 {
			order = append(order, k)
		}
	}
	// Indices are sorted and the vocabulary is sorted, so a stable sort on
	// weight leaves ties in alphabetical order.
	sort.SliceStable(order, func(a, b int) bool {
		return q.Weights[order[a]] > q.Weights[order[b]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	keywords := make([]string, len(order))
	for i, k := range order {
		keywords[i] = space.Term(q.Indices[k])
	}
	return keywords
}

// MatchKeywords returns the keywords that occur as whole tokens in the
// normalized text, in keyword order. Substring hits do not count: "an" does
// not match inside "analyst".
func MatchKeywords(keywords []string, normalized string) []string {
	tokens := make(map[string]struct{})
	for _, t := range strings.Fields(normalized) {
		tokens[t] = struct{}{}
	}

	matched := []string{}
	for _, kw := range keywords {
		if _, ok := tokens[kw]; ok {
			matched = append(matched, kw)
		}
	}
	return matched
}
