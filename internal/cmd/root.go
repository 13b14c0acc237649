package cmd

import (
	"github.com/harrison/file-analyzer/internal/report"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for file-analyzer
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file-analyzer [path]",
		Short: "Count regular expression matches across a file tree",
		Long: `file-analyzer walks a file or directory, selects files whose names match
the configured filename pattern and reports every line matching one of the
configured search patterns, with per-file and overall counts per label.

Settings are read from the file given by --config, then $FILE_ANALYZER_CONFIG,
then settings.yaml in the working directory, then settings.yaml next to the
executable. CLI flags override settings file values.

When no path is given on the command line the settings "path" value is used,
and if that is empty too the path is asked for interactively.

Examples:
  file-analyzer /var/log
  file-analyzer --config ./settings.yaml --workers 4 ./src
  file-analyzer -p ./docs --format markdown -o report.md
  file-analyzer --log-dir ./logs --log-level debug .`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		// Silence usage on errors to avoid duplicate help text; main prints the error
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runAnalyze,
	}

	cmd.Flags().StringP("path", "p", "", "File or directory to analyze (same as the positional argument)")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to settings file (default: settings.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (default: settings or info)")
	cmd.Flags().String("log-dir", "", "Directory for run log files (disabled when empty)")
	cmd.Flags().Int("workers", 0, "Number of files scanned concurrently (default: settings or 1)")
	cmd.Flags().String("format", string(report.FormatText), "Report format: text, markdown, html")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")

	cmd.AddCommand(NewValidateCommand())

	return cmd
}
