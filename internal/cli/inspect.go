package cli

import (
	"fmt"
	"strings"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/artifact"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/convert"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/preview"
	"github.com/spf13/cobra"
)

var (
	inspectStyle   string
	inspectWidth   int
	inspectOutline bool
)

func init() {
	inspectCmd.Flags().StringVar(&inspectStyle, "style", preview.StylePlain, "Markdown style: dark, light or notty")
	inspectCmd.Flags().IntVar(&inspectWidth, "width", preview.DefaultWidth, "Wrap width for rendered instructions")
	inspectCmd.Flags().BoolVar(&inspectOutline, "outline", false, "Print only the instructions outline")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <package.zip>",
	Short: "Show what a package would convert to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := convert.LoadFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		md := artifact.InstructionsMarkdown(pkg.Agent)

		if inspectOutline {
			for _, h := range preview.Outline(md) {
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", h.Level-1), h.Text)
			}
			return nil
		}

		fmt.Fprintln(out, preview.Card(preview.Summary{
			App:      pkg.App,
			Agent:    pkg.Agent,
			Entries:  pkg.Entries,
			Warnings: pkg.Warnings,
		}))
		fmt.Fprintln(out)

		rendered, err := preview.Markdown(md, inspectStyle, inspectWidth)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)
		return nil
	},
}
