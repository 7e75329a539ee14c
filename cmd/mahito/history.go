package mahito

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/victormicco/mahito/internal/audit"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent cleaning runs",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "number of runs to show (0 = all)")
	cmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "delete the journal")
	rootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	p, err := audit.DefaultPath()
	if err != nil {
		return err
	}
	j := audit.NewJournal(p)
	out := cmd.OutOrStdout()
	if flagHistoryClear {
		if err := j.Clear(); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "journal cleared")
		return nil
	}

	records, err := j.LoadHistory()
	if err != nil {
		return err
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	if flagJSON {
		if records == nil {
			records = []audit.RunRecord{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, "No runs recorded")
		return nil
	}
	for _, r := range records {
		dry := ""
		if r.DryRun {
			dry = " (dry run)"
		}
		_, _ = fmt.Fprintf(out, "%s  %s  %s%s  files: %d ok: %d failed: %d skipped: %d  %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.Mode, r.Target, dry,
			r.TotalFiles, r.Successful, r.Failed, r.Skipped, r.Duration)
		for _, f := range r.Failures {
			_, _ = fmt.Fprintf(out, "    %s: %s\n", f.Path, f.Error)
		}
	}
	return nil
}
