// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/resume-screener/internal/extract"
	"github.com/pdiddy/resume-screener/internal/report"
	"github.com/pdiddy/resume-screener/internal/roles"
	"github.com/pdiddy/resume-screener/internal/screen"
	"github.com/pdiddy/resume-screener/pkg/types"
)

const jobDescription = "Looking for a Python developer with Django experience"

type upload struct {
	name    string
	content string
}

func newTestServer(t *testing.T, cfg types.Config) http.Handler {
	t.Helper()
	sc, err := screen.New(cfg.Screen)
	require.NoError(t, err)
	return New(cfg, sc, extract.Native{}, roles.Default(), nil).Handler()
}

// screenRequest builds a multipart POST /v1/screen request.
func screenRequest(t *testing.T, fields map[string]string, files []upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(fieldResumes, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/screen", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func sampleUploads() []upload {
	return []upload{
		{"marketing_lee.txt", "Marketing specialist, social media"},
		{"python_developer_ana.txt", "Python developer, 5 years Django and Flask"},
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	rr := serve(newTestServer(t, types.Config{}), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRoles(t *testing.T) {
	rr := serve(newTestServer(t, types.Config{}), httptest.NewRequest(http.MethodGet, "/v1/roles", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp rolesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, roles.Default().Labels(), resp.Roles)
	assert.Equal(t, "Other", resp.Default)
}

func TestScreenJSON(t *testing.T) {
	before := testutil.ToFloat64(screeningRunsTotal.WithLabelValues(outcomeOK))

	h := newTestServer(t, types.Config{})
	rr := serve(h, screenRequest(t, map[string]string{fieldJob: jobDescription}, sampleUploads()))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var rep report.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, types.NormalizeRegex, rep.Strategy)
	assert.Contains(t, rep.Keywords, "python")
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "python_developer_ana.txt", rep.Rows[0].DocumentID)
	assert.Equal(t, "Developer", rep.Rows[0].Role)
	assert.Greater(t, rep.Rows[0].Score, 0.0)
	assert.Subset(t, rep.Rows[0].MatchedKeywords, []string{"python", "django", "developer"})
	assert.Equal(t, "Digital Marketing Specialist", rep.Rows[1].Role)
	assert.Equal(t, 0.0, rep.Rows[1].Score)
	assert.Empty(t, rep.Failures)

	assert.Equal(t, before+1, testutil.ToFloat64(screeningRunsTotal.WithLabelValues(outcomeOK)))
}

func TestScreenSelection(t *testing.T) {
	h := newTestServer(t, types.Config{})
	req := screenRequest(t, map[string]string{
		fieldJob:  jobDescription,
		fieldRole: "Digital Marketing Specialist",
		fieldTopN: "1",
	}, sampleUploads())

	rr := serve(h, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "marketing_lee.txt", rep.Rows[0].DocumentID)
	assert.Equal(t, 2, rep.Scored)
}

func TestScreenCSV(t *testing.T) {
	h := newTestServer(t, types.Config{})
	rr := serve(h, screenRequest(t, map[string]string{fieldJob: jobDescription, fieldFormat: "csv"}, sampleUploads()))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".csv")

	records, err := csv.NewReader(rr.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "python_developer_ana.txt", records[1][0])
	assert.Equal(t, "Python developer, 5 years Django and Flask", records[1][4])
}

func TestScreenPDF(t *testing.T) {
	h := newTestServer(t, types.Config{})
	rr := serve(h, screenRequest(t, map[string]string{fieldJob: jobDescription, fieldFormat: "pdf"}, sampleUploads()))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestScreenFailures(t *testing.T) {
	h := newTestServer(t, types.Config{})
	files := append(sampleUploads(),
		upload{"latin1.txt", "caf\xe9"},
		upload{"photo.png", "png"},
		upload{"python_developer_ana.txt", "duplicate"},
	)

	rr := serve(h, screenRequest(t, map[string]string{fieldJob: jobDescription}, files))
	require.Equal(t, http.StatusOK, rr.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.Len(t, rep.Rows, 2)
	require.Len(t, rep.Failures, 2)
	assert.Equal(t, "latin1.txt", rep.Failures[0].DocumentID)
	assert.Equal(t, "python_developer_ana.txt", rep.Failures[1].DocumentID)
}

func TestScreenAbortPolicy(t *testing.T) {
	h := newTestServer(t, types.Config{Extraction: types.ExtractionConfig{OnError: types.FailAbort}})
	files := append(sampleUploads(), upload{"latin1.txt", "caf\xe9"})

	rr := serve(h, screenRequest(t, map[string]string{fieldJob: jobDescription}, files))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "extraction_failed")
	assert.Contains(t, rr.Body.String(), "latin1.txt")
}

func TestScreenUnprocessable(t *testing.T) {
	tests := []struct {
		name     string
		job      string
		files    []upload
		wantCode string
	}{
		{
			name:     "no readable resumes",
			job:      jobDescription,
			files:    []upload{{"bad.txt", "\xff\xfe"}},
			wantCode: "no_documents",
		},
		{
			name:     "empty corpus",
			job:      "2024 !!!",
			files:    []upload{{"digits.txt", "0123 4567"}},
			wantCode: "empty_corpus",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, types.Config{})
			rr := serve(h, screenRequest(t, map[string]string{fieldJob: tt.job}, tt.files))
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

			var body failureBody
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestScreenBadRequest(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		files  []upload
		want   string
	}{
		{"missing job", map[string]string{}, sampleUploads(), "job_description is required"},
		{"blank job", map[string]string{fieldJob: "   "}, sampleUploads(), "job_description is required"},
		{"no files", map[string]string{fieldJob: jobDescription}, nil, "at least one file"},
		{"bad top_n", map[string]string{fieldJob: jobDescription, fieldTopN: "-2"}, sampleUploads(), "top_n"},
		{"bad format", map[string]string{fieldJob: jobDescription, fieldFormat: "sqlite"}, sampleUploads(), "unsupported format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, types.Config{})
			rr := serve(h, screenRequest(t, tt.fields, tt.files))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
		})
	}
}

func TestScreenNotMultipart(t *testing.T) {
	h := newTestServer(t, types.Config{})
	req := httptest.NewRequest(http.MethodPost, "/v1/screen", strings.NewReader(`{"job":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)
}

func TestScreenTooLarge(t *testing.T) {
	h := newTestServer(t, types.Config{Server: types.ServerConfig{MaxUploadBytes: 512}})
	big := upload{"big.txt", strings.Repeat("python ", 200)}
	rr := serve(h, screenRequest(t, map[string]string{fieldJob: jobDescription}, []upload{big}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestAuth(t *testing.T) {
	h := newTestServer(t, types.Config{Server: types.ServerConfig{APIKeys: []string{"", "secret"}}})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/v1/roles", "", http.StatusUnauthorized},
		{"wrong scheme", "/v1/roles", "Basic c2VjcmV0", http.StatusUnauthorized},
		{"wrong key", "/v1/roles", "Bearer nope", http.StatusUnauthorized},
		{"valid key", "/v1/roles", "Bearer secret", http.StatusOK},
		{"health exempt", "/health", "", http.StatusOK},
		{"metrics exempt", "/metrics", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, serve(h, req).Code)
		})
	}
}

func TestAuthDisabled(t *testing.T) {
	h := newTestServer(t, types.Config{Server: types.ServerConfig{APIKeys: []string{""}}})
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/v1/roles", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMetrics(t *testing.T) {
	h := newTestServer(t, types.Config{})
	serve(h, httptest.NewRequest(http.MethodGet, "/v1/roles", http.NoBody))
	assert.GreaterOrEqual(t, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/v1/roles", "200")), 1.0)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "resume_screener_http_requests_total")
}

func TestRecoverer(t *testing.T) {
	h := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := serve(h, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "internal_error")
}

func TestListenAndServe(t *testing.T) {
	sc, err := screen.New(types.ScreenConfig{})
	require.NoError(t, err)

	s := New(types.Config{Server: types.ServerConfig{Addr: "127.0.0.1:0"}}, sc, extract.Native{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}

	bad := New(types.Config{Server: types.ServerConfig{Addr: "127.0.0.1:-1"}}, sc, extract.Native{}, nil, nil)
	assert.Error(t, bad.ListenAndServe(context.Background()))
}
