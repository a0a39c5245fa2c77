package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thellimist/fixturegen/internal/logging"
)

var appVersion = "dev"

func SetVersion(v string) {
	appVersion = v
}

var (
	flagVerbose bool
	flagQuiet   bool

	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fixturegen",
	Short: "Render JSON test-input fixtures for wrapped command-line tools",
	Long: `fixturegen renders the JSON test-input document used to validate a
workflow task that wraps a command-line tool. Each fixture maps
"<Task>.<input>" keys to representative test values.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose && flagQuiet {
			return fmt.Errorf("--verbose and --quiet cannot be used together")
		}
		logger = logging.New(logging.Level(flagVerbose, flagQuiet))
		slog.SetDefault(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagVerbose, "verbose", false, "show detailed progress")
	pf.BoolVar(&flagQuiet, "quiet", false, "suppress all output except errors")

	rootCmd.AddCommand(renderCmd, checkCmd, discoverCmd, serveCmd)
}

func Execute() error {
	rootCmd.Version = appVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("fixturegen v%s\n", appVersion))
	return rootCmd.Execute()
}
