package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dateentry/internal/history"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent picker activity",
	Long: `Lists the dates committed from the calendar, pasted and submitted, oldest first.
Reading the log never creates a config directory.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show (0 for all)") //nolint:mnd // default page
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	dir, err := resolveDir()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := history.Read(dir, limit)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		if entries == nil {
			entries = []history.Entry{}
		}
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.HistoryCompact(os.Stdout, entries)
	default:
		output.History(os.Stdout, entries)
	}
	return nil
}
