package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/artifact"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/config"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/convert"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/dataverse"
	"github.com/spf13/cobra"
)

var (
	convertInput       string
	convertOut         string
	convertProvision   bool
	convertSolution    bool
	convertSolutionDir string
	convertOverrides   bool
	convertDryRun      bool
)

// newProvisioner builds the Dataverse client used by --provision.
var newProvisioner = func(creds dataverse.Credentials) (convert.Provisioner, error) {
	return dataverse.New(creds)
}

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "Path to the Microsoft 365 app package zip")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "Output directory for Copilot Studio artifacts")
	convertCmd.Flags().BoolVar(&convertProvision, "provision", false, "Create the copilot (bot) in Dataverse")
	convertCmd.Flags().BoolVar(&convertSolution, "solution", false, "Also build a Dataverse solution package")
	convertCmd.Flags().StringVar(&convertSolutionDir, "solution-dir", convert.DefaultSolutionDir, "Solution output directory, relative to --out")
	convertCmd.Flags().BoolVar(&convertOverrides, "solution-overrides", false, "Apply solution.* config settings to the derived solution metadata")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "Convert without writing files")
	_ = convertCmd.MarkFlagRequired("input")
	_ = convertCmd.MarkFlagRequired("out")
	// A dry run must not create anything remotely.
	convertCmd.MarkFlagsMutuallyExclusive("dry-run", "provision")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert -i <package.zip> -o <out-dir>",
	Short: "Convert an agent package into Copilot Studio artifacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := convert.Options{
			InputPath:   convertInput,
			OutputDir:   convertOut,
			Solution:    convertSolution || convertOverrides,
			SolutionDir: convertSolutionDir,
			Provision:   convertProvision,
		}
		if convertOverrides {
			o := config.SolutionOverrides()
			opts.Overrides = &o
		}
		if convertDryRun {
			opts.Sink = artifact.NewMemorySink()
		}
		if convertProvision {
			creds := config.Dataverse()
			if missing := creds.Missing(); len(missing) > 0 {
				return fmt.Errorf("missing Dataverse settings: %s", strings.Join(missing, ", "))
			}
			p, err := newProvisioner(creds)
			if err != nil {
				return err
			}
			opts.Provisioner = p
		}

		result, err := convert.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, w := range result.Package.Warnings {
			fmt.Fprintf(out, "! %s\n", w)
		}

		abs, err := filepath.Abs(convertOut)
		if err != nil {
			abs = convertOut
		}
		if convertDryRun {
			fmt.Fprintf(out, "✓ Dry run: %d files would be written to %s\n", len(result.Written), abs)
			for _, name := range result.Written {
				fmt.Fprintf(out, "  %s\n", name)
			}
		} else {
			fmt.Fprintf(out, "✓ Wrote Copilot Studio artifacts to: %s\n", abs)
		}
		if result.Solution != nil {
			fmt.Fprintf(out, "✓ Built solution %s (version %s)\n", result.Solution.Metadata.UniqueName, result.Solution.Metadata.Version)
		}
		if result.BotID != "" {
			fmt.Fprintf(out, "✓ Created Copilot (bot) in Dataverse: %s\n", result.BotID)
			fmt.Fprintln(out, "→ Open Copilot Studio, locate the new copilot by name, paste instructions and starters, and add capabilities.")
		}
		return nil
	},
}
