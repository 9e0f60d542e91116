// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resume-screener/pkg/types"
)

// fakeExtractor implements Extractor for testing. It returns canned text per
// base filename, or an error.
type fakeExtractor struct {
	texts map[string]string
	errs  map[string]error
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (string, error) {
	f.calls++
	name := filepath.Base(path)
	if err, ok := f.errs[name]; ok {
		return "", err
	}
	return f.texts[name], nil
}

// roleByPrefix is a Classifier that returns the text before the first '_'.
type roleByPrefix struct{}

func (roleByPrefix) Classify(id string) string {
	prefix, _, _ := strings.Cut(id, "_")
	return prefix
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	ext := &fakeExtractor{texts: map[string]string{"cv.pdf": "Go developer", "blank.pdf": " \n\t"}}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{"text file", writeFile(t, dir, "cv.txt", []byte("Python developer")), "Python developer", nil},
		{"upper-case extension", writeFile(t, dir, "CV2.TXT", []byte("Rust")), "Rust", nil},
		{"pdf through backend", writeFile(t, dir, "cv.pdf", []byte("%PDF")), "Go developer", nil},
		{"invalid utf-8", writeFile(t, dir, "bad.txt", []byte{0xff, 0xfe, 'a'}), "", ErrInvalidEncoding},
		{"empty text file", writeFile(t, dir, "empty.txt", nil), "", ErrEmptyText},
		{"whitespace pdf", writeFile(t, dir, "blank.pdf", []byte("%PDF")), "", ErrEmptyText},
		{"unsupported", writeFile(t, dir, "cv.docx", []byte("x")), "", ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(context.Background(), ext, tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(context.Background(), &fakeExtractor{}, filepath.Join(t.TempDir(), "gone.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "Developer_ana.txt", []byte("Python developer, Django")),
		writeFile(t, dir, "QA_bo.pdf", []byte("%PDF")),
		writeFile(t, dir, "broken.pdf", []byte("%PDF")),
		writeFile(t, dir, "notes.md", []byte("# notes")),
		writeFile(t, dir, "latin1.txt", []byte{'c', 'a', 'f', 0xe9}),
	}
	ext := &fakeExtractor{
		texts: map[string]string{"QA_bo.pdf": "Selenium test automation"},
		errs:  map[string]error{"broken.pdf": errors.New("xref table missing")},
	}

	var log bytes.Buffer
	batch, err := LoadDocuments(context.Background(), ext, paths, roleByPrefix{}, types.FailSkip, &log)
	require.NoError(t, err)

	assert.Equal(t, []types.Document{
		{ID: "Developer_ana.txt", RawText: "Python developer, Django", Role: "Developer"},
		{ID: "QA_bo.pdf", RawText: "Selenium test automation", Role: "QA"},
	}, batch.Documents)
	assert.Equal(t, []string{"notes.md"}, batch.Skipped)
	require.Len(t, batch.Failures, 2)
	assert.Equal(t, "broken.pdf", batch.Failures[0].ID)
	assert.Equal(t, "latin1.txt", batch.Failures[1].ID)
	assert.ErrorIs(t, batch.Failures[1], ErrInvalidEncoding)
	assert.True(t, batch.HasFailures())
	assert.Equal(t, 5, batch.Total())

	out := log.String()
	assert.Contains(t, out, "loaded:  Developer_ana.txt (Developer)")
	assert.Contains(t, out, "skipped: notes.md")
	assert.Contains(t, out, "failed:  broken.pdf (xref table missing)")
	assert.Contains(t, out, "Batch summary: 2 loaded, 1 skipped, 2 failed (total: 5)")
}

func TestLoadDocumentsAbort(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.txt", []byte("go")),
		writeFile(t, dir, "b.pdf", []byte("%PDF")),
		writeFile(t, dir, "c.pdf", []byte("%PDF")),
	}
	ext := &fakeExtractor{
		texts: map[string]string{"c.pdf": "rust"},
		errs:  map[string]error{"b.pdf": errors.New("encrypted")},
	}

	batch, err := LoadDocuments(context.Background(), ext, paths, nil, types.FailAbort, io.Discard)

	var fe *ExtractionError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "b.pdf", fe.ID)
	assert.Contains(t, err.Error(), "extracting b.pdf: encrypted")
	assert.Len(t, batch.Documents, 1)
	assert.Equal(t, types.DefaultRole, batch.Documents[0].Role)
	assert.Equal(t, 1, ext.calls, "c.pdf must not be read after an abort")
}

func TestLoadDocumentsDuplicateNames(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "x"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "y"), 0o755))
	paths := []string{
		writeFile(t, filepath.Join(root, "x"), "cv.txt", []byte("go")),
		writeFile(t, filepath.Join(root, "y"), "cv.txt", []byte("rust")),
	}

	batch, err := LoadDocuments(context.Background(), &fakeExtractor{}, paths, nil, types.FailSkip, io.Discard)
	require.NoError(t, err)
	require.Len(t, batch.Documents, 1)
	assert.Equal(t, "go", batch.Documents[0].RawText)
	require.Len(t, batch.Failures, 1)
	assert.ErrorIs(t, batch.Failures[0], ErrDuplicateID)
}

func TestLoadDocumentsCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadDocuments(ctx, &fakeExtractor{}, []string{writeFile(t, dir, "a.txt", []byte("go"))}, nil, types.FailSkip, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.pdf", []byte("x"))
	writeFile(t, dir, "a.txt", []byte("x"))
	writeFile(t, dir, "c.docx", []byte("x"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))
	single := writeFile(t, t.TempDir(), "single.rtf", []byte("x"))

	paths, err := CollectPaths([]string{dir, single})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.pdf"),
		single,
	}, paths)

	_, err = CollectPaths([]string{filepath.Join(dir, "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewBackend(t *testing.T) {
	ext, err := New(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, Native{}, ext)

	_, err = New(context.Background(), "ocr")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNativeExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 10, "Python developer Django Flask")
	require.NoError(t, doc.OutputFileAndClose(path))

	text, err := ReadFile(context.Background(), Native{}, path)
	require.NoError(t, err)
	assert.Equal(t, "Python developer Django Flask", strings.Join(strings.Fields(text), " "))
}

func TestNativeRejectsNonPDF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fake.pdf", []byte("this is not a pdf"))
	_, err := Native{}.Extract(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake.pdf")
}
