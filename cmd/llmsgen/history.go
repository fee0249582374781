package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/llms-txt/generator/internal/config"
	"github.com/llms-txt/generator/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past generation runs",
		Long: `History lists the generation runs recorded in the local archive,
newest first. Runs are recorded automatically unless generate was
invoked with --no-archive.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show (0 = all)")
	cmd.Flags().String("archive-dir", config.XDGDataDir(), "Directory holding the history archive")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	archiveDir, err := cmd.Flags().GetString("archive-dir")
	if err != nil {
		return err
	}

	archive, err := database.Open(archiveDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		// No archive means no runs yet, which is not an error.
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}
	defer archive.Close() //nolint:errcheck // Read-only handle

	runs, err := archive.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tSITE\tPAGES\tFAILED\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.SiteHost,
			run.PageCount,
			run.FailedCount,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
		)
	}
	return w.Flush()
}
