package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thellimist/fixturegen/internal/fixture"
)

var checkCmd = &cobra.Command{
	Use:   "check FIXTURE...",
	Short: "Check that fixture files are valid JSON objects",
	Long: `Check fixture files. Each file must parse as a JSON object. Duplicate keys,
which several positional arguments produce by sharing positionalArgs, are
reported as warnings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %s\n", color.RedString("✗"), path, err)
			continue
		}

		report, err := fixture.Check(data)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %s\n", color.RedString("✗"), path, err)
			continue
		}

		fmt.Fprintf(out, "%s %s (%d keys, %d null)\n", color.GreenString("✓"), path, len(report.Keys), len(report.Nulls))
		if len(report.Duplicates) > 0 {
			fmt.Fprintf(out, "  %s duplicate keys: %s\n", color.YellowString("!"), strings.Join(report.Duplicates, ", "))
		}
		logger.Debug("checked fixture", "path", path, "keys", len(report.Keys))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d fixtures invalid", failed, len(args))
	}
	return nil
}
