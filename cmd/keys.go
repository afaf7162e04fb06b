package cmd

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/dateentry/internal/output"
)

//go:embed keys.md
var keysMarkdown string

const keysWrap = 80

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the keyboard and mouse reference",
	Args:  cobra.NoArgs,
	RunE:  runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(_ *cobra.Command, _ []string) error {
	md := strings.TrimSpace(keysMarkdown)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{"markdown": md})
	}

	style := "dark"
	if flagNoColor || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		style = "notty"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(keysWrap),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	content, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("rendering key reference: %w", err)
	}
	fmt.Fprint(os.Stdout, content)
	return nil
}
