// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize reduces raw document text to a canonical token stream.
//
// Two strategies exist: a fixed-stopword regex cleaner and a lemmatizing
// cleaner. A scoring run must use one strategy for the job description and
// every resume; vectors built from mixed normalizations are not comparable.
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/resume-screener/pkg/types"
)

// ErrUnknownStrategy is returned by New for an unrecognized strategy name.
var ErrUnknownStrategy = errors.New("unknown normalization strategy")

// Normalizer maps raw text to space-separated lowercase tokens. Normalize is
// total: empty or garbage input yields an empty or short string, never an
// error.
type Normalizer interface {
	// Strategy reports which strategy this normalizer implements.
	Strategy() types.NormalizationStrategy

	// Normalize returns the canonical token stream for text.
	Normalize(text string) string
}

// New returns the normalizer for the given strategy. An empty strategy
// selects the regex normalizer.
func New(strategy types.NormalizationStrategy) (Normalizer, error) {
	switch strategy {
	case types.NormalizeRegex, "":
		return Regex{}, nil
	case types.NormalizeLemma:
		return NewLemma()
	default:
		return nil, fmt.Errorf("%w %q: use regex or lemma", ErrUnknownStrategy, strategy)
	}
}

// Regex is the fixed-stopword normalizer.
type Regex struct{}

// Strategy implements Normalizer.
func (Regex) Strategy() types.NormalizationStrategy { return types.NormalizeRegex }

// Normalize lowercases text, folds accented letters to ASCII, replaces every
// other non-letter with a space, and drops stopwords.
func (Regex) Normalize(text string) string {
	tokens := tokenize(text)
	kept := tokens[:0]
	for _, t := range tokens {
		if !stopwords[t] {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

// tokenize case-folds and ASCII-folds text, then splits it on every rune
// that is not a letter a-z.
func tokenize(text string) []string {
	return strings.FieldsFunc(fold(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}

// fold splits compatibility characters, strips combining marks, and
// lowercases, so "Résumé" becomes "resume" and the "ﬁ" ligature becomes
// "fi". Text that fails to transform is returned lowercased only.
func fold(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return strings.ToLower(text)
	}
	return strings.ToLower(out)
}
