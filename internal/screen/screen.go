// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screen ranks resumes against a job description by TF-IDF cosine
// similarity and reports the job keywords each resume matches.
//
// A run normalizes the job description and every resume with one
// normalizer, fits a single vector space over all of them, then feeds that
// space to both the ranker and the keyword extractor so the two always agree
// on vocabulary and weights. Nothing survives between runs.
package screen

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pdiddy/resume-screener/internal/normalize"
	"github.com/pdiddy/resume-screener/internal/vectorize"
	"github.com/pdiddy/resume-screener/pkg/types"
)

// ErrEmptyCorpus is returned when the job description and all resumes
// normalize to nothing. No partial results accompany it.
var ErrEmptyCorpus = vectorize.ErrEmptyCorpus

var (
	// ErrNoDocuments is returned when a run has no resumes to score.
	ErrNoDocuments = errors.New("no documents to score")

	// ErrDuplicateDocument is returned when two documents share an ID.
	ErrDuplicateDocument = errors.New("duplicate document identifier")
)

// Run is the full output of one scoring run.
type Run struct {
	// ID labels the run in reports.
	ID string `json:"run_id" yaml:"run_id"`

	// Strategy is the normalization strategy used for every text in the run.
	Strategy types.NormalizationStrategy `json:"strategy" yaml:"strategy"`

	// Keywords are the job description's top terms, heaviest first.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Results are sorted by score, highest first.
	Results []types.ScoredResult `json:"results" yaml:"results"`

	// Documents are the scored documents with NormalizedText filled in, in
	// input order.
	Documents []types.Document `json:"-" yaml:"-"`
}

// Document returns the run's document with the given ID.
func (r *Run) Document(id string) (types.Document, bool) {
	for _, d := range r.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return types.Document{}, false
}

// Option customizes a Screener.
type Option func(*Screener)

// WithNormalizer overrides the normalizer chosen from the config. Use it to
// share one loaded lemma dictionary across screeners.
func WithNormalizer(n normalize.Normalizer) Option {
	return func(s *Screener) { s.normalizer = n }
}

// Screener scores documents against a job description. It holds no per-run
// state and is safe for concurrent use.
type Screener struct {
	normalizer   normalize.Normalizer
	keywordLimit int
}

// New builds a Screener from cfg.
func New(cfg types.ScreenConfig, opts ...Option) (*Screener, error) {
	s := &Screener{keywordLimit: cfg.KeywordLimit}
	if s.keywordLimit <= 0 {
		s.keywordLimit = DefaultKeywordLimit
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.normalizer == nil {
		n, err := normalize.New(cfg.Normalizer)
		if err != nil {
			return nil, err
		}
		s.normalizer = n
	}
	return s, nil
}

// Strategy reports the normalization strategy this Screener applies.
func (s *Screener) Strategy() types.NormalizationStrategy {
	return s.normalizer.Strategy()
}

// Score ranks docs against the job description and returns one result per
// document, highest score first.
func (s *Screener) Score(ctx context.Context, jobDescription string, docs []types.Document) ([]types.ScoredResult, error) {
	run, err := s.Screen(ctx, jobDescription, docs)
	if err != nil {
		return nil, err
	}
	return run.Results, nil
}

// Screen runs the full pipeline and returns the run with its keywords and
// normalized documents. docs is not modified.
func (s *Screener) Screen(ctx context.Context, jobDescription string, docs []types.Document) (*Run, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if seen[d.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDocument, d.ID)
		}
		seen[d.ID] = true
	}

	query := s.normalizer.Normalize(jobDescription)
	normalized := make([]types.Document, len(docs))
	texts := make([]string, len(docs))
	for i, d := range docs {
		d.NormalizedText = s.normalizer.Normalize(d.RawText)
		normalized[i] = d
		texts[i] = d.NormalizedText
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	space, err := vectorize.Fit(query, texts)
	if err != nil {
		return nil, err
	}

	keywords := TopKeywords(space, s.keywordLimit)
	matches := make(map[string][]string, len(normalized))
	for _, d := range normalized {
		matches[d.ID] = MatchKeywords(keywords, d.NormalizedText)
	}

	results, err := Assemble(Rank(space.Query, space.Docs), normalized, matches)
	if err != nil {
		return nil, err
	}

	return &Run{
		ID:        uuid.NewString(),
		Strategy:  s.normalizer.Strategy(),
		Keywords:  keywords,
		Results:   results,
		Documents: normalized,
	}, nil
}
