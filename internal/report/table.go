// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

func writeTable(w io.Writer, rep *Report) error {
	fmt.Fprintf(w, "Run %s (%s normalizer)\n", rep.RunID, rep.Strategy)
	fmt.Fprintf(w, "Job keywords: %s\n", KeywordList(rep.Keywords))
	fmt.Fprintf(w, "Role filter: %s, showing %d of %d scored\n\n", rep.Role, len(rep.Rows), rep.Scored)

	if len(rep.Rows) == 0 {
		fmt.Fprintln(w, "No matching resumes.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tRESUME\tROLE\tSCORE\tMATCHED KEYWORDS")
		for _, r := range rep.Rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				r.Rank, r.DocumentID, r.Role, FormatScore(r.Score), KeywordList(r.MatchedKeywords))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(rep.Failures) > 0 {
		fmt.Fprintf(w, "\n%d resume(s) could not be read:\n", len(rep.Failures))
		for _, f := range rep.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.DocumentID, f.Error)
		}
	}
	return nil
}
