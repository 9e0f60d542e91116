// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resume-screener/internal/roles"
)

var rolesCmd = &cobra.Command{
	Use:   "roles [filenames...]",
	Short: "Show role rules, or the role assigned to each filename",
	Long: `Without arguments, roles prints the filename rules in match order. The first
rule whose keyword appears in a filename (ignoring case) decides its role.

With arguments, roles prints the role each filename would be tagged with.`,
	RunE: runRoles,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, args []string) error {
	classifier, err := roles.Load(cfg.Extraction.RolesFile)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if len(args) == 0 {
		fmt.Fprintln(tw, "KEYWORD\tROLE")
		for _, r := range classifier.Rules() {
			fmt.Fprintf(tw, "%s\t%s\n", r.Keyword, r.Role)
		}
	} else {
		fmt.Fprintln(tw, "FILE\tROLE")
		for _, name := range args {
			fmt.Fprintf(tw, "%s\t%s\n", name, classifier.Classify(name))
		}
	}
	return tw.Flush()
}
