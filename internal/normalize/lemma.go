// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/pdiddy/resume-screener/pkg/types"
)

// lemmatizer is the subset of *golem.Lemmatizer the Lemma strategy uses.
type lemmatizer interface {
	Lemma(word string) string
}

// Lemma normalizes like Regex but with a larger stopword list, and reduces
// each surviving token to its dictionary form ("developers" → "developer").
// Results depend on the bundled dictionary version.
type Lemma struct {
	dict lemmatizer
}

// NewLemma loads the English lemma dictionary. Loading takes a noticeable
// fraction of a second, so callers build one Lemma per process and share it;
// the dictionary is read-only after load.
func NewLemma() (*Lemma, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading english lemma dictionary: %w", err)
	}
	return &Lemma{dict: l}, nil
}

// Strategy implements Normalizer.
func (*Lemma) Strategy() types.NormalizationStrategy { return types.NormalizeLemma }

// maxLemmaRounds bounds how often a token is re-lemmatized while its lemma
// keeps changing ("laid" → "lay" → "lie").
const maxLemmaRounds = 4

// Normalize implements Normalizer. Every output token is its own lemma, so
// normalizing the output again returns it unchanged.
func (l *Lemma) Normalize(text string) string {
	var out []string
	for _, t := range tokenize(text) {
		if extendedStopwords[t] {
			continue
		}
		out = append(out, l.reduce(t)...)
	}
	return strings.Join(out, " ")
}

// reduce lemmatizes t until the words stop changing. A lemma may carry
// punctuation or map onto a stopword ("is" → "be"), so each round goes
// through the same cleanup as the input.
func (l *Lemma) reduce(t string) []string {
	words := []string{t}
	for round := 0; round < maxLemmaRounds; round++ {
		var next []string
		changed := false
		for _, w := range words {
			lemma := tokenize(l.dict.Lemma(w))
			if len(lemma) != 1 || lemma[0] != w {
				changed = true
			}
			for _, lt := range lemma {
				if !extendedStopwords[lt] {
					next = append(next, lt)
				}
			}
		}
		words = next
		if !changed {
			break
		}
	}
	return words
}
