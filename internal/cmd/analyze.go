package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/file-analyzer/internal/analyzer"
	"github.com/harrison/file-analyzer/internal/display"
	"github.com/harrison/file-analyzer/internal/filelock"
	"github.com/harrison/file-analyzer/internal/fileutil"
	"github.com/harrison/file-analyzer/internal/input"
	"github.com/harrison/file-analyzer/internal/logger"
	"github.com/harrison/file-analyzer/internal/report"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// runAnalyze implements the root command: load settings, resolve the path,
// select and scan files, then print or write the report.
func runAnalyze(cmd *cobra.Command, args []string) error {
	explicitPath, err := pathArgument(cmd, args)
	if err != nil {
		return err
	}

	settings, err := loadRunSettings(cmd)
	if err != nil {
		return err
	}
	cfg := settings.cfg

	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	logDir, _ := cmd.Flags().GetString("log-dir")
	log, closeLog, err := newRunLogger(cmd.ErrOrStderr(), cfg.LogLevel, logDir)
	if err != nil {
		return err
	}
	defer closeLog()

	log.LogDebug(fmt.Sprintf("Loaded settings from %s", cfg.Source))

	root, err := analyzer.ResolvePath(analyzer.PathRequest{
		Explicit: explicitPath,
		Fallback: cfg.Path,
		Source:   cfg.Source,
		Prompt: func() (string, error) {
			return input.PromptPath(cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}, log)
	if err != nil {
		return err
	}

	selection, err := fileutil.SelectFiles(root, fileutil.ScanOptions{
		FilenamePattern: settings.filenameRe,
		Exclude:         cfg.Exclude,
	})
	if err != nil {
		return err
	}
	// An unreadable directory hides every file below it from the report.
	for _, walkErr := range selection.Errors {
		log.LogError(fmt.Sprintf("Directory not scanned: %v", walkErr))
	}
	for _, path := range selection.Files {
		log.LogTrace(fmt.Sprintf("Selected %s", path))
	}
	log.LogDebug(fmt.Sprintf("Selected %d file(s) under %s", len(selection.Files), root))

	progress := display.NewProgressIndicator(cmd.ErrOrStderr(), len(selection.Files),
		progressEnabled(cmd.ErrOrStderr(), cfg.LogLevel))

	start := time.Now()
	a := analyzer.NewAnalyzer(analyzer.Options{
		Patterns: settings.patterns,
		Decoding: settings.decoding,
		Workers:  cfg.Workers,
		Progress: progress.Step,
	}, log)
	summary, err := a.Analyze(cmd.Context(), root, selection.Files)
	progress.Complete()
	if err != nil {
		return err
	}
	log.LogSummary(*summary, time.Since(start))

	if warning, ok := display.WarnSkippedFiles(summary.Skipped); ok {
		warning.Display(cmd.ErrOrStderr())
	}

	output, _ := cmd.Flags().GetString("output")
	rendered, err := report.Render(summary, report.Options{
		Format: format,
		Color:  output == "" && colorEnabled(cmd.OutOrStdout()),
	})
	if err != nil {
		return err
	}

	if output != "" {
		if err := filelock.WriteReport(output, []byte(rendered+"\n")); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.LogInfo(fmt.Sprintf("Report written to %s", output))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// pathArgument returns the path from the positional argument or --path.
// Giving both is fine as long as they agree.
func pathArgument(cmd *cobra.Command, args []string) (string, error) {
	flagPath, _ := cmd.Flags().GetString("path")
	flagPath = strings.TrimSpace(flagPath)

	var argPath string
	if len(args) > 0 {
		argPath = strings.TrimSpace(args[0])
	}

	if argPath != "" && flagPath != "" && argPath != flagPath {
		return "", fmt.Errorf("conflicting paths: argument %q and --path %q", argPath, flagPath)
	}
	if argPath != "" {
		return argPath, nil
	}
	return flagPath, nil
}

// newRunLogger builds the console logger and, when logDir is set, a file
// logger alongside it. The returned func closes the file logger.
func newRunLogger(stderr io.Writer, level, logDir string) (*logger.MultiLogger, func(), error) {
	console := logger.NewConsoleLogger(stderr, level)
	if logDir == "" {
		return logger.NewMultiLogger(console), func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(logDir, level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	console.LogDebug(fmt.Sprintf("Run %s logging to %s", fileLog.RunID(), fileLog.Path()))

	return logger.NewMultiLogger(console, fileLog), func() { fileLog.Close() }, nil
}

// progressEnabled reports whether the scan progress line may be drawn on w.
// Debug and trace logging print per-file lines that would tear it.
func progressEnabled(w io.Writer, level string) bool {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return false
	}
	return level != "debug" && level != "trace"
}

// colorEnabled reports whether the report may be colored: only when it goes
// straight to a terminal on stdout.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f != os.Stdout {
		return false
	}
	return isatty.IsTerminal(f.Fd()) && !color.NoColor
}
