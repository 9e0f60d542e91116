// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report turns a scoring run into something a recruiter can read:
// an aligned text table, CSV, PDF, JSON, YAML, or a SQLite database file.
//
// Selection (role filter and top-N cut) happens here, after scoring, so it
// never changes scores or ranks. Renderers receive a fully built Report and
// only format it.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/resume-screener/internal/extract"
	"github.com/pdiddy/resume-screener/internal/screen"
	"github.com/pdiddy/resume-screener/pkg/types"
)

var (
	// ErrUnknownFormat is returned for an unrecognized report format.
	ErrUnknownFormat = errors.New("unknown report format")

	// ErrNeedsFile is returned when a format cannot be streamed to a writer.
	ErrNeedsFile = errors.New("report format requires an output file")
)

// noKeywords is shown when a resume matched none of the job keywords.
const noKeywords = "None"

// Row is one selected result joined with its resume text.
type Row struct {
	Rank            int      `json:"rank" yaml:"rank"`
	DocumentID      string   `json:"document_id" yaml:"document_id"`
	Role            string   `json:"role" yaml:"role"`
	Score           float64  `json:"score" yaml:"score"`
	MatchedKeywords []string `json:"matched_keywords" yaml:"matched_keywords"`
	Text            string   `json:"-" yaml:"-"`
}

// Failure is a resume that could not be read.
type Failure struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	Error      string `json:"error" yaml:"error"`
}

// Report is the renderable view of one run.
type Report struct {
	RunID       string                      `json:"run_id" yaml:"run_id"`
	Strategy    types.NormalizationStrategy `json:"strategy" yaml:"strategy"`
	GeneratedAt time.Time                   `json:"generated_at" yaml:"generated_at"`
	Keywords    []string                    `json:"keywords" yaml:"keywords"`
	Role        string                      `json:"role" yaml:"role"`
	Scored      int                         `json:"scored" yaml:"scored"`
	Rows        []Row                       `json:"results" yaml:"results"`
	Failures    []Failure                   `json:"failures" yaml:"failures"`
}

// Select filters results to role (empty or types.AllRoles keeps every
// result) and keeps the first topN (0 or less keeps all). The input slice
// is not modified and relative order is preserved.
func Select(results []types.ScoredResult, role string, topN int) []types.ScoredResult {
	out := make([]types.ScoredResult, 0, len(results))
	for _, r := range results {
		if role == "" || role == types.AllRoles || r.Role == role {
			out = append(out, r)
		}
	}
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Rows joins selected results with the run's raw resume text. Rank is the
// position in selected, starting at 1. A result whose document is not in
// the run fails with screen.ErrUnknownDocument.
func Rows(run *screen.Run, selected []types.ScoredResult) ([]Row, error) {
	rows := make([]Row, len(selected))
	for i, r := range selected {
		doc, ok := run.Document(r.DocumentID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", screen.ErrUnknownDocument, r.DocumentID)
		}
		rows[i] = Row{
			Rank:            i + 1,
			DocumentID:      r.DocumentID,
			Role:            r.Role,
			Score:           r.Score,
			MatchedKeywords: r.MatchedKeywords,
			Text:            doc.RawText,
		}
	}
	return rows, nil
}

// Failures converts extraction failures for display.
func Failures(errs []*extract.ExtractionError) []Failure {
	out := make([]Failure, len(errs))
	for i, e := range errs {
		out[i] = Failure{DocumentID: e.ID, Error: e.Err.Error()}
	}
	return out
}

// New builds the report for run using cfg's role filter and top-N limit.
func New(run *screen.Run, cfg types.ReportConfig, failures []*extract.ExtractionError) (*Report, error) {
	role := cfg.Role
	if role == "" {
		role = types.AllRoles
	}
	rows, err := Rows(run, Select(run.Results, role, cfg.TopN))
	if err != nil {
		return nil, err
	}
	return &Report{
		RunID:       run.ID,
		Strategy:    run.Strategy,
		GeneratedAt: time.Now().UTC(),
		Keywords:    run.Keywords,
		Role:        role,
		Scored:      len(run.Results),
		Rows:        rows,
		Failures:    Failures(failures),
	}, nil
}

// KeywordList renders keywords comma-separated, or "None".
func KeywordList(keywords []string) string {
	if len(keywords) == 0 {
		return noKeywords
	}
	return strings.Join(keywords, ", ")
}

// FormatScore renders a score with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// Write renders rep to w in the given format. The sqlite format needs a
// file and returns ErrNeedsFile.
func Write(w io.Writer, format types.ReportFormat, rep *Report) error {
	switch format {
	case "", types.FormatTable:
		return writeTable(w, rep)
	case types.FormatCSV:
		return writeCSV(w, rep)
	case types.FormatPDF:
		return writePDF(w, rep)
	case types.FormatJSON:
		return writeJSON(w, rep)
	case types.FormatYAML:
		return writeYAML(w, rep)
	case types.FormatSQLite:
		return ErrNeedsFile
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile renders rep to path. The sqlite format appends the run to the
// database at path, creating it if needed; other formats replace the file.
func WriteFile(ctx context.Context, path string, format types.ReportFormat, rep *Report) error {
	if format == types.FormatSQLite {
		return writeSQLite(ctx, path, rep)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	if err := Write(f, format, rep); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report %s: %w", path, err)
	}
	return nil
}
