package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/dateentry/internal/clierr"
	"github.com/twiced-technology-gmbh/dateentry/internal/dateinput"
	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

var typeCmd = &cobra.Command{
	Use:   "type KEY...",
	Short: "Feed key presses to the segmented editor without a terminal UI",
	Long: `Replays KEYs against the editor and prints the resulting value, the active
segment and the last announcement. Keys: 0-9, left, right, up, down, tab,
shift+tab, backspace, delete, space.

  dateentry type 2 3 1 1 2 0 2 3        # 23/11/2023
  dateentry type --value 31/12/2024 --segment month up`,
	Args: cobra.MinimumNArgs(1),
	RunE: runType,
}

func init() {
	typeCmd.Flags().String("value", "", "starting value (dd/mm/yyyy, placeholders allowed)")
	typeCmd.Flags().String("segment", "day", "segment selected before the first key (day, month, year, none)")
	typeCmd.Flags().Bool("touch", false, "touch input mode")
	rootCmd.AddCommand(typeCmd)
}

func runType(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("value")
	initial := dateinput.Empty
	if raw != "" {
		v, err := parseValueArg(raw)
		if err != nil {
			return err
		}
		initial = v
	}

	segName, _ := cmd.Flags().GetString("segment")
	seg, ok := dateinput.ParseSegment(segName)
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "invalid segment %q (expected day, month, year or none)", segName)
	}

	keys := make([]dateinput.Key, 0, len(args))
	for _, name := range args {
		k, ok := dateinput.ParseKey(name)
		if !ok {
			return clierr.Newf(clierr.InvalidKey, "unknown key %q", name).
				WithDetails(map[string]any{"key": name, "allowed": editorKeyNames()})
		}
		keys = append(keys, k)
	}

	live := &dateinput.LiveRegion{}
	e := dateinput.New(initial, live)
	touch, _ := cmd.Flags().GetBool("touch")
	e.SetTouch(touch)
	e.SelectSegment(seg)

	for _, k := range keys {
		e.HandleKey(k)
	}

	r := output.NewResult(e.Masked())
	r.Segment = e.Segment().String()
	r.Announcement = live.Text()
	return output.Value(os.Stdout, outputFormat(), r)
}

func editorKeyNames() string {
	return strings.Join([]string{"0-9", "left", "right", "up", "down", "tab", "shift+tab", "backspace", "delete", "space"}, ", ")
}
