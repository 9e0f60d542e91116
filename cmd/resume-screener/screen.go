// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/resume-screener/internal/extract"
	"github.com/pdiddy/resume-screener/internal/report"
	"github.com/pdiddy/resume-screener/internal/roles"
	"github.com/pdiddy/resume-screener/internal/screen"
	"github.com/pdiddy/resume-screener/pkg/types"
)

var screenCmd = &cobra.Command{
	Use:   "screen [files or directories...]",
	Short: "Rank resumes against a job description",
	Long: `Screen reads every resume given on the command line (directories contribute
their .pdf and .txt files), scores each one against the job description, and
prints the best matches with their role and matched keywords.

Unreadable resumes are reported and skipped; the command still prints the
ranking but exits non-zero. With --on-error=abort the first unreadable
resume stops the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScreen,
}

func init() {
	f := screenCmd.Flags()
	f.String("job", "", "job description text")
	f.String("job-file", "", "file holding the job description (- reads stdin)")
	f.Int("top", defaultTopN, "number of results to show (0 = all)")
	f.String("role", types.AllRoles, "only show resumes tagged with this role")
	f.String("format", string(types.FormatTable), "report format: table, csv, pdf, json, yaml, or sqlite")
	f.StringP("output", "o", "", "write the report to this file instead of stdout")
	f.Int("keywords", screen.DefaultKeywordLimit, "number of job-description keywords to match")

	bindFlags(f, map[string]string{
		"report.top_n":         "top",
		"report.role":          "role",
		"report.format":        "format",
		"report.output":        "output",
		"screen.keyword_limit": "keywords",
	})

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	job, err := jobDescription(cmd)
	if err != nil {
		return err
	}

	paths, err := extract.CollectPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .pdf or .txt resumes found in %s", strings.Join(args, ", "))
	}

	classifier, err := roles.Load(cfg.Extraction.RolesFile)
	if err != nil {
		return err
	}
	ext, err := extract.New(ctx, cfg.Extraction.Backend)
	if err != nil {
		return err
	}
	screener, err := screen.New(cfg.Screen)
	if err != nil {
		return err
	}

	start := time.Now()
	batch, err := extract.LoadDocuments(ctx, ext, paths, classifier, cfg.Extraction.OnError, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	run, err := screener.Screen(ctx, job, batch.Documents)
	if err != nil {
		if errors.Is(err, screen.ErrNoDocuments) {
			return fmt.Errorf("none of the %d resume(s) could be read", len(paths))
		}
		return err
	}
	log.Info("screening run",
		zap.String("run_id", run.ID),
		zap.String("normalizer", string(run.Strategy)),
		zap.Int("scored", len(run.Results)),
		zap.Int("failed", len(batch.Failures)),
		zap.Duration("elapsed", time.Since(start)),
	)

	rep, err := report.New(run, cfg.Report, batch.Failures)
	if err != nil {
		return err
	}
	if cfg.Report.Output != "" {
		if err := report.WriteFile(ctx, cfg.Report.Output, cfg.Report.Format, rep); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s report to %s\n", cfg.Report.Format, cfg.Report.Output)
	} else if err := report.Write(cmd.OutOrStdout(), cfg.Report.Format, rep); err != nil {
		return err
	}

	if batch.HasFailures() {
		return fmt.Errorf("%d resume(s) failed extraction", len(batch.Failures))
	}
	return nil
}

// jobDescription returns the job text from --job or --job-file.
func jobDescription(cmd *cobra.Command) (string, error) {
	text, _ := cmd.Flags().GetString("job")
	file, _ := cmd.Flags().GetString("job-file")

	switch {
	case text != "" && file != "":
		return "", fmt.Errorf("use either --job or --job-file, not both")
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading job description from stdin: %w", err)
		}
		text = string(data)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading job description: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("a job description is required (--job or --job-file)")
	}
	return text, nil
}
