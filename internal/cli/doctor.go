package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration needed for conversion and provisioning",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Configuration:")
		if _, err := os.Stat(config.FilePath()); err == nil {
			fmt.Fprintf(out, "  ✓ config file %s\n", config.FilePath())
		} else {
			fmt.Fprintf(out, "  - no config file at %s (defaults in use)\n", config.FilePath())
		}
		if _, err := os.Stat(config.DotEnvFile); err == nil {
			fmt.Fprintf(out, "  ✓ %s loaded from working directory\n", config.DotEnvFile)
		}
		fmt.Fprintf(out, "  log level %s, format %s\n", config.Get(config.KeyLogLevel), config.Get(config.KeyLogFormat))

		fmt.Fprintln(out, "\nProvisioning:")
		missing := config.Dataverse().Missing()
		if len(missing) == 0 {
			fmt.Fprintln(out, "  ✓ Dataverse credentials configured")
			return nil
		}
		fmt.Fprintf(out, "  ✖ missing %s (--provision will fail)\n", strings.Join(missing, ", "))
		return nil
	},
}
