// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/resume-screener/pkg/types"
)

// Classifier assigns a role label to a document identifier.
type Classifier interface {
	Classify(id string) string
}

// Batch holds the outcome of loading a set of resume files.
type Batch struct {
	// Documents are the successfully read resumes, in input order.
	Documents []types.Document

	// Failures lists every file that could not be read.
	Failures []*ExtractionError

	// Skipped lists files with unsupported extensions.
	Skipped []string
}

// Total returns the number of files processed.
func (b Batch) Total() int {
	return len(b.Documents) + len(b.Failures) + len(b.Skipped)
}

// HasFailures reports whether any file failed extraction.
func (b Batch) HasFailures() bool {
	return len(b.Failures) > 0
}

// LoadDocuments reads every path into a Document, printing per-file status
// to w and a summary at the end. Document IDs are file base names and roles
// come from classifier (nil tags everything types.DefaultRole).
//
// Under types.FailAbort the first failure stops the batch and is returned
// alongside the partial batch. Under types.FailSkip (the default) failures
// are collected in Batch.Failures and the error is nil. Cancellation of ctx
// stops the batch under either policy.
func LoadDocuments(ctx context.Context, ext Extractor, paths []string, classifier Classifier, policy types.FailurePolicy, w io.Writer) (Batch, error) {
	var batch Batch
	seen := make(map[string]bool, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		id := filepath.Base(path)
		if !Supported(path) {
			fmt.Fprintf(w, "skipped: %s (%v)\n", id, ErrUnsupported)
			batch.Skipped = append(batch.Skipped, id)
			continue
		}

		var (
			text string
			err  error
		)
		if seen[id] {
			err = ErrDuplicateID
		} else {
			text, err = ReadFile(ctx, ext, path)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return batch, err
			}
			fe := &ExtractionError{ID: id, Err: err}
			fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
			batch.Failures = append(batch.Failures, fe)
			if policy == types.FailAbort {
				return batch, fe
			}
			continue
		}
		seen[id] = true

		role := types.DefaultRole
		if classifier != nil {
			role = classifier.Classify(id)
		}
		batch.Documents = append(batch.Documents, types.Document{ID: id, RawText: text, Role: role})
		fmt.Fprintf(w, "loaded:  %s (%s)\n", id, role)
	}

	fmt.Fprintf(w, "\nBatch summary: %d loaded, %d skipped, %d failed (total: %d)\n",
		len(batch.Documents), len(batch.Skipped), len(batch.Failures), batch.Total())
	return batch, nil
}
