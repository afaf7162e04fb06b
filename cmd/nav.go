package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dateentry/internal/calendar"
	"github.com/twiced-technology-gmbh/dateentry/internal/clierr"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

var navCmd = &cobra.Command{
	Use:   "nav DATE KEY...",
	Short: "Move through the calendar grid from DATE",
	Long: `Applies grid navigation keys starting at DATE and prints the date that ends
up selected. Keys: left, right, up, down, home, end, pgup, pgdown,
shift+pgup, shift+pgdown. Home and End honour --week-start.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNav,
}

func init() {
	navCmd.Flags().Bool("show", false, "print the resulting month grid instead of the date")
	rootCmd.AddCommand(navCmd)
}

func runNav(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	anchor, err := parseDateArg(args[0])
	if err != nil {
		return err
	}

	g := calendar.New(anchor, cfg.WeekStartDay())
	for _, name := range args[1:] {
		move, shift, ok := calendar.ParseMove(name)
		if !ok {
			return clierr.Newf(clierr.InvalidKey, "unknown grid key %q", name).
				WithDetails(map[string]any{"key": name})
		}
		g.Navigate(move, shift)
	}

	show, _ := cmd.Flags().GetBool("show")
	switch format := outputFormat(); {
	case format == output.FormatJSON && show:
		return output.JSON(os.Stdout, output.NewMonthView(g))
	case format == output.FormatJSON:
		return output.JSON(os.Stdout, map[string]any{
			"date":    g.Selected().String(),
			"value":   g.Selected().Masked(),
			"focused": g.Focused(),
			"title":   g.Title(),
		})
	case show:
		output.Month(os.Stdout, g)
		return nil
	case format == output.FormatCompact:
		output.Messagef(os.Stdout, "%s focused:%d", g.Selected().String(), g.Focused())
		return nil
	default:
		output.Messagef(os.Stdout, "%s", g.Selected().Masked())
		return nil
	}
}
