package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dateentry/internal/calendar"
	"github.com/twiced-technology-gmbh/dateentry/internal/date"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar [DATE]",
	Aliases: []string{"cal"},
	Short:   "Print the month grid around a date",
	Long: `Prints the six-week grid the picker shows for DATE's month, with DATE
selected. DATE is YYYY-MM-DD or dd/mm/yyyy and defaults to today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	anchor := date.Today(time.Now)
	if len(args) == 1 {
		if anchor, err = parseDateArg(args[0]); err != nil {
			return err
		}
	}

	g := calendar.New(anchor, cfg.WeekStartDay())
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, output.NewMonthView(g))
	}
	output.Month(os.Stdout, g)
	return nil
}
