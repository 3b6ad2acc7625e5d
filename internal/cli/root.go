package cli

import (
	"fmt"
	"os"

	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/branding"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/config"
	"github.com/lawrencefrias/M365-Copilot-Agent-Converter/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose   bool
	logFormat string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from config)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` converts a Microsoft 365 declarative agent package
(manifest.json + declarativeAgent.json) into Copilot Studio artifacts, an
optional Dataverse solution package, and optionally provisions the bot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		level := config.Get(config.KeyLogLevel)
		if verbose {
			level = "debug"
		}
		format := logFormat
		if format == "" {
			format = config.Get(config.KeyLogFormat)
		}
		return logging.Init(level, format, cmd.ErrOrStderr())
	},
}

// Execute runs the root command with build info injected via ldflags. A
// failing command prints a single error line to stderr.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✖ Error: %v\n", err)
	}
	return err
}
