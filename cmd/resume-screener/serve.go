// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/resume-screener/internal/extract"
	"github.com/pdiddy/resume-screener/internal/roles"
	"github.com/pdiddy/resume-screener/internal/screen"
	"github.com/pdiddy/resume-screener/internal/secrets"
	"github.com/pdiddy/resume-screener/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve resume screening over HTTP",
	Long: `Serve starts an HTTP server exposing POST /v1/screen (multipart upload of a
job description and resumes), GET /v1/roles, GET /health and GET /metrics.

Bearer-token authentication is enabled when server.api_keys is set or when
.secrets/ holds files named api-key*.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	bindFlags(serveCmd.Flags(), map[string]string{"server.addr": "addr"})

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	c := cfg
	c.Server.APIKeys = append(append([]string(nil), cfg.Server.APIKeys...), secrets.APIKeys(loadedSecrets)...)
	log.Info("server configured",
		zap.String("backend", string(cfg.Extraction.Backend)),
		zap.String("on_error", string(cfg.Extraction.OnError)),
		zap.Int("api_keys", len(c.Server.APIKeys)),
	)

	return server.New(c, screener, ext, classifier, log).ListenAndServe(ctx)
}
