// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"errors"
	"fmt"

	"github.com/pdiddy/resume-screener/pkg/types"
)

// ErrUnknownDocument signals that a ranked entry has no matching document.
// It indicates a wiring defect, not bad input.
var ErrUnknownDocument = errors.New("ranked result has no matching document")

// Assemble joins ranker output with document metadata and per-document
// keyword matches. matches is keyed by document ID. The returned results keep
// the ranked order.
func Assemble(ranked []Ranked, docs []types.Document, matches map[string][]string) ([]types.ScoredResult, error) {
	results := make([]types.ScoredResult, 0, len(ranked))
	for _, r := range ranked {
		if r.Index < 0 || r.Index >= len(docs) {
			return nil, fmt.Errorf("%w: index %d of %d", ErrUnknownDocument, r.Index, len(docs))
		}
		doc := docs[r.Index]
		kws, ok := matches[doc.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, doc.ID)
		}
		results = append(results, types.ScoredResult{
			DocumentID:      doc.ID,
			Score:           r.Score,
			MatchedKeywords: kws,
			Role:            doc.Role,
		})
	}
	return results, nil
}
