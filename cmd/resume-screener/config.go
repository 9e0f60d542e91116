// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/resume-screener/internal/screen"
	"github.com/pdiddy/resume-screener/pkg/types"
)

// defaultTopN is how many results the CLI shows unless told otherwise.
const defaultTopN = 5

// setDefaults registers every config key so environment variables and
// config files can override any of them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("screen.normalizer", string(types.NormalizeRegex))
	v.SetDefault("screen.keyword_limit", screen.DefaultKeywordLimit)

	v.SetDefault("extraction.backend", string(types.BackendNative))
	v.SetDefault("extraction.on_error", string(types.FailSkip))
	v.SetDefault("extraction.roles_file", "")

	v.SetDefault("report.top_n", defaultTopN)
	v.SetDefault("report.role", types.AllRoles)
	v.SetDefault("report.format", string(types.FormatTable))
	v.SetDefault("report.output", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 2*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_upload_bytes", int64(32<<20))
	v.SetDefault("server.api_keys", []string{})

	v.SetDefault("log.env", "local")
	v.SetDefault("log.level", "")
}

// bindFlags binds each config key to the named flag in fs.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// loadConfig resolves defaults, config file, environment and flags into a
// validated Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	setDefaults(v)

	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	if err := validate(c); err != nil {
		return c, err
	}
	return c, nil
}

func validate(c types.Config) error {
	switch c.Screen.Normalizer {
	case types.NormalizeRegex, types.NormalizeLemma:
	default:
		return fmt.Errorf("invalid normalizer %q: want regex or lemma", c.Screen.Normalizer)
	}
	switch c.Extraction.Backend {
	case types.BackendNative, types.BackendPdftotext, types.BackendMarkitdown:
	default:
		return fmt.Errorf("invalid extraction backend %q: want native, pdftotext, or markitdown", c.Extraction.Backend)
	}
	switch c.Extraction.OnError {
	case types.FailSkip, types.FailAbort:
	default:
		return fmt.Errorf("invalid on_error policy %q: want skip or abort", c.Extraction.OnError)
	}
	switch c.Report.Format {
	case types.FormatTable, types.FormatCSV, types.FormatPDF, types.FormatJSON, types.FormatYAML:
	case types.FormatSQLite:
		if c.Report.Output == "" {
			return fmt.Errorf("the sqlite report format requires --output")
		}
	default:
		return fmt.Errorf("invalid report format %q", c.Report.Format)
	}
	if c.Report.TopN < 0 {
		return fmt.Errorf("invalid top_n %d: must be zero (all) or positive", c.Report.TopN)
	}
	if c.Screen.KeywordLimit <= 0 {
		return fmt.Errorf("invalid keyword_limit %d: must be positive", c.Screen.KeywordLimit)
	}
	return nil
}
