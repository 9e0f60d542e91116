// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/resume-screener/internal/container"
)

const imageMarkitdown = "markitdown:latest"

// Markitdown extracts PDF text by piping the file through the markitdown
// container image. Its Markdown output is close enough to plain text for
// normalization, which strips the markup.
type Markitdown struct {
	runtime container.Runtime
}

// NewMarkitdown returns a Markitdown backend after verifying the image
// exists in rt.
func NewMarkitdown(ctx context.Context, rt container.Runtime) (*Markitdown, error) {
	if err := rt.ImageExists(ctx, imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &Markitdown{runtime: rt}, nil
}

// Extract pipes the PDF at path through the container.
func (m *Markitdown) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, imageMarkitdown, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	return out.String(), nil
}
