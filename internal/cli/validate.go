package cli

import (
	"fmt"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/convert"
	"github.com/spf13/cobra"
)

var validateStrict bool

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail when any warning is reported")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <package.zip>",
	Short: "Check that a package can be converted",
	Long: `Parse the package descriptors and validate the declarative agent against
its JSON schema. Schema findings are warnings; only unreadable packages fail
unless --strict is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := convert.LoadFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, w := range pkg.Warnings {
			fmt.Fprintf(out, "! %s\n", w)
		}

		if len(pkg.Warnings) == 0 {
			fmt.Fprintf(out, "✓ %s is valid (schema %s)\n", pkg.Agent.Source, pkg.Agent.Version)
			return nil
		}
		if validateStrict {
			return fmt.Errorf("%d warnings in %s", len(pkg.Warnings), pkg.Agent.Source)
		}
		fmt.Fprintf(out, "✓ %s can be converted with %d warnings\n", pkg.Agent.Source, len(pkg.Warnings))
		return nil
	},
}
