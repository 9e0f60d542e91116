// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdiddy/resume-screener/internal/container"
)

const binPdftotext = "pdftotext"

// Pdftotext extracts PDF text with poppler's pdftotext command.
type Pdftotext struct {
	exec container.Executor
}

// NewPdftotext returns a Pdftotext backend after checking the binary is on
// PATH.
func NewPdftotext(exec container.Executor) (*Pdftotext, error) {
	if _, err := exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not available: %w", binPdftotext, err)
	}
	return &Pdftotext{exec: exec}, nil
}

// Extract runs pdftotext in layout mode and returns its standard output.
func (p *Pdftotext) Extract(ctx context.Context, path string) (string, error) {
	var out bytes.Buffer
	args := []string{"-layout", "-enc", "UTF-8", path, "-"}
	if err := p.exec.Run(ctx, binPdftotext, args, nil, &out); err != nil {
		return "", fmt.Errorf("running %s on %s: %w", binPdftotext, path, err)
	}
	return out.String(), nil
}
