// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// NormalizationStrategy selects how raw text is reduced to tokens. A run
// applies exactly one strategy to the job description and every resume.
type NormalizationStrategy string

const (
	// NormalizeRegex lowercases, strips non-letters and drops a fixed
	// stopword list. Deterministic and dependency-free.
	NormalizeRegex NormalizationStrategy = "regex"

	// NormalizeLemma additionally reduces tokens to their dictionary form.
	NormalizeLemma NormalizationStrategy = "lemma"
)

// ScreenConfig holds settings for the scoring core.
type ScreenConfig struct {
	// Normalizer selects the normalization strategy (default regex).
	Normalizer NormalizationStrategy `json:"normalizer" yaml:"normalizer" mapstructure:"normalizer"`

	// KeywordLimit is the number of top job-description terms considered
	// for keyword matching (default 15).
	KeywordLimit int `json:"keyword_limit" yaml:"keyword_limit" mapstructure:"keyword_limit"`
}

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	BackendNative     ExtractionBackend = "native"
	BackendPdftotext  ExtractionBackend = "pdftotext"
	BackendMarkitdown ExtractionBackend = "markitdown"
)

// FailurePolicy decides what a batch does when one file cannot be read.
type FailurePolicy string

const (
	// FailSkip records the failure and keeps scoring the other files.
	FailSkip FailurePolicy = "skip"

	// FailAbort stops the batch at the first failure.
	FailAbort FailurePolicy = "abort"
)

// ExtractionConfig holds settings for reading resume files.
type ExtractionConfig struct {
	// Backend selects the PDF extractor: native, pdftotext, or markitdown.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// OnError selects the failure policy: skip or abort.
	OnError FailurePolicy `json:"on_error" yaml:"on_error" mapstructure:"on_error"`

	// RolesFile is an optional YAML file replacing the built-in role rules.
	RolesFile string `json:"roles_file,omitempty" yaml:"roles_file,omitempty" mapstructure:"roles_file"`
}

// ReportFormat selects how a run is rendered.
type ReportFormat string

const (
	FormatTable  ReportFormat = "table"
	FormatCSV    ReportFormat = "csv"
	FormatPDF    ReportFormat = "pdf"
	FormatJSON   ReportFormat = "json"
	FormatYAML   ReportFormat = "yaml"
	FormatSQLite ReportFormat = "sqlite"
)

// AllRoles is the role filter value that keeps every result.
const AllRoles = "All"

// ReportConfig holds presentation settings.
type ReportConfig struct {
	// TopN limits the number of results shown (0 = all, default 5).
	TopN int `json:"top_n" yaml:"top_n" mapstructure:"top_n"`

	// Role keeps only results tagged with this role ("All" keeps everything).
	Role string `json:"role" yaml:"role" mapstructure:"role"`

	// Format selects the renderer.
	Format ReportFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Output is the report file path. Empty writes to stdout; required for
	// the sqlite format.
	Output string `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`
}

// ServerConfig holds settings for the HTTP host.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ReadTimeout and WriteTimeout bound a single request.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// MaxUploadBytes caps the multipart body of a screening request.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`

	// APIKeys enables bearer-token auth when non-empty.
	APIKeys []string `json:"api_keys,omitempty" yaml:"api_keys,omitempty" mapstructure:"api_keys"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Env selects the encoder: prod (JSON) or local/dev (console).
	Env string `json:"env" yaml:"env" mapstructure:"env"`

	// Level overrides the log level: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all settings loaded from the config file, environment and flags.
type Config struct {
	Screen     ScreenConfig     `json:"screen" yaml:"screen" mapstructure:"screen"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Report     ReportConfig     `json:"report" yaml:"report" mapstructure:"report"`
	Server     ServerConfig     `json:"server" yaml:"server" mapstructure:"server"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}
