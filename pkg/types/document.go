// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the resume-screener pipeline.
//
// Documents flow from extraction through normalization and scoring; the
// scoring core emits ScoredResults that the report and server layers render
// without modifying.
package types

// DefaultRole is the role tag assigned when no classification rule matches.
const DefaultRole = "Other"

// Document is one candidate text unit (a resume) in a scoring run.
type Document struct {
	// ID is the unique document name (usually the filename). It is the join
	// key between scoring output and document metadata.
	ID string `json:"id" yaml:"id"`

	// RawText is the extracted text, kept unmodified for display and reports.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// NormalizedText is the canonical token stream derived from RawText by
	// the run's normalization strategy. It is recomputed on every run.
	NormalizedText string `json:"normalized_text,omitempty" yaml:"normalized_text,omitempty"`

	// Role is an optional classification label. The scoring core passes it
	// through untouched.
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}

// ScoredResult is one ranked document in a scoring run.
type ScoredResult struct {
	// DocumentID matches Document.ID.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Score is the cosine similarity to the job description as a
	// percentage in [0, 100], rounded to two decimals.
	Score float64 `json:"score" yaml:"score"`

	// MatchedKeywords lists the job description's top keywords found in the
	// document, in keyword rank order. Empty when nothing matched.
	MatchedKeywords []string `json:"matched_keywords" yaml:"matched_keywords"`

	// Role is copied from Document.Role.
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}
