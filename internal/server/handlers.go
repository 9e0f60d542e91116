// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/resume-screener/internal/extract"
	"github.com/pdiddy/resume-screener/internal/logger"
	"github.com/pdiddy/resume-screener/internal/report"
	"github.com/pdiddy/resume-screener/internal/screen"
	"github.com/pdiddy/resume-screener/pkg/types"
)

// Form fields of a screening request.
const (
	fieldJob     = "job_description"
	fieldResumes = "resumes"
	fieldTopN    = "top_n"
	fieldRole    = "role"
	fieldFormat  = "format"
)

// multipartMemory is how much of a form is buffered before spilling to disk.
const multipartMemory = 8 << 20

var contentTypes = map[types.ReportFormat]string{
	types.FormatJSON:  "application/json",
	types.FormatYAML:  "application/yaml",
	types.FormatCSV:   "text/csv; charset=utf-8",
	types.FormatPDF:   "application/pdf",
	types.FormatTable: "text/plain; charset=utf-8",
}

var fileExtensions = map[types.ReportFormat]string{
	types.FormatCSV: "csv",
	types.FormatPDF: "pdf",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type rolesResponse struct {
	Roles   []string `json:"roles"`
	Default string   `json:"default"`
}

func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rolesResponse{Roles: s.classifier.Labels(), Default: types.DefaultRole})
}

// handleScreen handles POST /v1/screen.
func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large",
				fmt.Sprintf("upload exceeds %d bytes", s.cfg.MaxUploadBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", "invalid multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	job := strings.TrimSpace(r.FormValue(fieldJob))
	if job == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", fieldJob+" is required")
		return
	}
	files := r.MultipartForm.File[fieldResumes]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "at least one file in "+fieldResumes+" is required")
		return
	}

	cfg, err := s.reportConfig(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	dir, err := os.MkdirTemp("", "resume-screener-*")
	if err != nil {
		log.Error("creating upload directory", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	defer os.RemoveAll(dir)

	paths, err := saveUploads(dir, files)
	if err != nil {
		log.Error("saving uploads", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	start := time.Now()
	batch, err := extract.LoadDocuments(r.Context(), s.extractor, paths, s.classifier, s.onError, io.Discard)
	resumesTotal.WithLabelValues("loaded").Add(float64(len(batch.Documents)))
	resumesTotal.WithLabelValues("failed").Add(float64(len(batch.Failures)))
	resumesTotal.WithLabelValues("skipped").Add(float64(len(batch.Skipped)))
	if err != nil {
		var fe *extract.ExtractionError
		if errors.As(err, &fe) {
			screeningRunsTotal.WithLabelValues(outcomeAborted).Inc()
			writeError(w, http.StatusUnprocessableEntity, "extraction_failed", fe.Error())
			return
		}
		screeningRunsTotal.WithLabelValues(outcomeError).Inc()
		log.Warn("loading resumes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	run, err := s.screener.Screen(r.Context(), job, batch.Documents)
	screeningDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.writeScreenError(w, log, err, batch)
		return
	}
	screeningRunsTotal.WithLabelValues(outcomeOK).Inc()

	log.Info("screening run",
		zap.String("run_id", run.ID),
		zap.Int("scored", len(run.Results)),
		zap.Int("failed", len(batch.Failures)),
		zap.Int("skipped", len(batch.Skipped)),
		zap.Duration("elapsed", time.Since(start)),
	)

	rep, err := report.New(run, cfg, batch.Failures)
	if err != nil {
		log.Error("building report", zap.String("run_id", run.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	if cfg.Format == types.FormatJSON {
		writeJSON(w, http.StatusOK, rep)
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, cfg.Format, rep); err != nil {
		log.Error("rendering report", zap.String("format", string(cfg.Format)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	w.Header().Set("Content-Type", contentTypes[cfg.Format])
	if ext, ok := fileExtensions[cfg.Format]; ok {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "screening-"+run.ID+"."+ext))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// failureBody accompanies 422 responses so callers see why every resume
// was rejected.
type failureBody struct {
	errorResponse
	Failures []report.Failure `json:"failures"`
}

func (s *Server) writeScreenError(w http.ResponseWriter, log *zap.Logger, err error, batch extract.Batch) {
	switch {
	case errors.Is(err, screen.ErrNoDocuments):
		screeningRunsTotal.WithLabelValues(outcomeNoDocuments).Inc()
		writeJSON(w, http.StatusUnprocessableEntity, failureBody{
			errorResponse: errorResponse{Code: "no_documents", Message: "no readable resumes in upload"},
			Failures:      report.Failures(batch.Failures),
		})
	case errors.Is(err, screen.ErrEmptyCorpus):
		screeningRunsTotal.WithLabelValues(outcomeEmptyCorpus).Inc()
		writeJSON(w, http.StatusUnprocessableEntity, failureBody{
			errorResponse: errorResponse{Code: "empty_corpus", Message: err.Error()},
			Failures:      report.Failures(batch.Failures),
		})
	default:
		screeningRunsTotal.WithLabelValues(outcomeError).Inc()
		log.Error("screening failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// reportConfig merges request overrides onto the server's report defaults.
func (s *Server) reportConfig(r *http.Request) (types.ReportConfig, error) {
	cfg := s.report
	cfg.Output = ""
	cfg.Format = types.FormatJSON

	if v := r.FormValue(fieldTopN); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("%s must be a non-negative integer", fieldTopN)
		}
		cfg.TopN = n
	}
	if v := r.FormValue(fieldRole); v != "" {
		cfg.Role = v
	}
	if v := r.FormValue(fieldFormat); v != "" {
		cfg.Format = types.ReportFormat(v)
		if _, ok := contentTypes[cfg.Format]; !ok {
			return cfg, fmt.Errorf("unsupported %s %q", fieldFormat, v)
		}
	}
	return cfg, nil
}

// saveUploads writes each file to its own subdirectory of dir so repeated
// filenames stay distinct on disk and are reported as duplicates.
func saveUploads(dir string, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for i, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "." || name == string(filepath.Separator) {
			name = "upload"
		}
		sub := filepath.Join(dir, strconv.Itoa(i))
		if err := os.Mkdir(sub, 0o700); err != nil {
			return nil, err
		}
		path := filepath.Join(sub, name)
		if err := saveUpload(fh, path); err != nil {
			return nil, fmt.Errorf("saving %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveUpload(fh *multipart.FileHeader, path string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
