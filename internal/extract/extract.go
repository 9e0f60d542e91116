// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns resume files into plain text documents.
//
// Plain-text files are read directly. PDFs go through a pluggable Extractor
// backend: the pure-Go reader, poppler's pdftotext, or the markitdown
// container image. LoadDocuments applies one failure policy to a whole
// batch and reports every file it could not read.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/resume-screener/internal/container"
	"github.com/pdiddy/resume-screener/pkg/types"
)

var (
	// ErrEmptyText is returned when a file yields no text at all.
	ErrEmptyText = errors.New("no text extracted")

	// ErrInvalidEncoding is returned for plain-text files that are not UTF-8.
	ErrInvalidEncoding = errors.New("text is not valid UTF-8")

	// ErrUnsupported is returned for files that are neither PDF nor text.
	ErrUnsupported = errors.New("unsupported file type")

	// ErrDuplicateID is returned when two files in a batch share a filename.
	ErrDuplicateID = errors.New("duplicate resume filename")

	// ErrUnknownBackend is returned by New for an unrecognized backend.
	ErrUnknownBackend = errors.New("unknown extraction backend")
)

const (
	extPDF = ".pdf"
	extTXT = ".txt"
)

// ExtractionError reports a single document that could not be read.
type ExtractionError struct {
	// ID is the document identifier (the file's base name).
	ID  string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.ID, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor reads the text content of a PDF. Different backends (native,
// pdftotext, markitdown) implement this interface.
type Extractor interface {
	// Extract returns the plain text of the PDF at path.
	Extract(ctx context.Context, path string) (string, error)
}

// New returns the Extractor for backend. An empty backend selects native.
func New(ctx context.Context, backend types.ExtractionBackend) (Extractor, error) {
	switch backend {
	case "", types.BackendNative:
		return Native{}, nil
	case types.BackendPdftotext:
		return NewPdftotext(container.OSExecutor{})
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewMarkitdown(ctx, rt)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Supported reports whether path has an extension LoadDocuments can read.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extPDF, extTXT:
		return true
	}
	return false
}

// ReadFile returns the text of one resume file, dispatching on extension.
// Whitespace-only output is reported as ErrEmptyText.
func ReadFile(ctx context.Context, ext Extractor, path string) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case extTXT:
		text, err = readText(path)
	case extPDF:
		text, err = ext.Extract(ctx, path)
	default:
		return "", ErrUnsupported
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

// CollectPaths expands args into resume file paths. Directories contribute
// their supported files (non-recursive, sorted by name); files are kept as
// given, supported or not, so LoadDocuments can report them.
func CollectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && Supported(e.Name()) {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}
