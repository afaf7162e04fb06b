package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dateentry/internal/clierr"
	"github.com/twiced-technology-gmbh/dateentry/internal/dateinput"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize TEXT",
	Short: "Read text the way a paste into the picker would",
	Long: `Accepts an ISO-8601 date, date-time, week date (2024-W33-1) or ordinal
date (2024-232), reformatted to dd/mm/yyyy, or a literal dd/mm/yyyy date.
Anything else fails with INVALID_DATE.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(_ *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	e := dateinput.New("", nil)
	if !e.Paste(text) {
		return clierr.Newf(clierr.InvalidDate, "cannot read %q as a date", text).
			WithDetails(map[string]any{"input": text})
	}
	return output.Value(os.Stdout, outputFormat(), output.NewResult(e.Masked()))
}
