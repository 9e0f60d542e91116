// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the resume-screener CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/resume-screener/internal/logger"
	"github.com/pdiddy/resume-screener/internal/secrets"
	"github.com/pdiddy/resume-screener/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds API keys for the HTTP host, one file per key.
const secretsDir = ".secrets/"

var (
	// cfg is the resolved configuration, filled in before any command runs.
	cfg types.Config

	// log is the diagnostics logger. Per-file progress goes to stderr as
	// plain lines; everything else goes through log.
	log = zap.NewNop()

	// loadedSecrets holds the contents of secretsDir.
	loadedSecrets map[string]string
)

// rootCmd is the base command for the resume-screener CLI.
var rootCmd = &cobra.Command{
	Use:   "resume-screener",
	Short: "Rank resumes against a job description",
	Long: `resume-screener scores a batch of resumes (PDF or plain text) against a job
description using TF-IDF cosine similarity, tags each resume with a role
inferred from its filename, and lists the job keywords each resume contains.

Use "screen" for a one-off ranking and "serve" to expose the same pipeline
over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		l, err := logger.New(cfg.Log)
		if err != nil {
			return err
		}
		log = l
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug("using config file", zap.String("path", used))
		}

		s, err := secrets.Load(secretsDir, log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug("loaded secrets", zap.Strings("names", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./resume-screener.yaml or ~/.config/resume-screener/resume-screener.yaml)")
	pf.String("normalizer", string(types.NormalizeRegex), "text normalization strategy: regex or lemma")
	pf.String("backend", string(types.BackendNative), "PDF extraction backend: native, pdftotext, or markitdown")
	pf.String("on-error", string(types.FailSkip), "what to do when a resume cannot be read: skip or abort")
	pf.String("roles-file", "", "YAML file replacing the built-in filename role rules")
	pf.String("log-level", "", "log level override: debug, info, warn, error")

	bindFlags(pf, map[string]string{
		"screen.normalizer":     "normalizer",
		"extraction.backend":    "backend",
		"extraction.on_error":   "on-error",
		"extraction.roles_file": "roles-file",
		"log.level":             "log-level",
	})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("resume-screener")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "resume-screener"))
		}
	}

	viper.SetEnvPrefix("RESUME_SCREENER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
