package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pitchside/playerfacts/internal/model"
	"github.com/pitchside/playerfacts/internal/store"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the scrape audit log",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runID, _ := cmd.Flags().GetString("run")
		source, _ := cmd.Flags().GetString("source")
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := st.ListAudit(ctx, store.AuditFilter{
			RunID: runID, Source: source, Limit: limit,
		})
		if err != nil {
			return eris.Wrap(err, "audit list")
		}

		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "No audit entries found.")
			return nil
		}

		formatAuditList(os.Stdout, entries)
		return nil
	},
}

// formatAuditList writes a tabular audit log to w.
func formatAuditList(out io.Writer, entries []model.AuditEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RUN\tSOURCE\tPLAYER\tSTATUS\tRECORDS\tERROR\tSCRAPED")
	_, _ = fmt.Fprintln(w, "---\t------\t------\t------\t-------\t-----\t-------")

	for _, e := range entries {
		errMsg := e.Error
		if len(errMsg) > 40 {
			errMsg = errMsg[:37] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			truncateID(e.RunID),
			e.Source,
			e.PlayerKey,
			e.Status,
			e.Records,
			errMsg,
			e.ScrapedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	auditCmd.Flags().String("run", "", "filter by run ID")
	auditCmd.Flags().String("source", "", "filter by source identifier")
	auditCmd.Flags().Int("limit", 50, "max number of entries to display")

	rootCmd.AddCommand(auditCmd)
}
