// Package display formats user-facing warnings and scan progress for the terminal.
//
// Everything here goes to stderr, next to log output, and never into the report.
// A warning has a title and optional message, file list and suggestion:
//
//	if w, ok := display.WarnSkippedFiles(summary.Skipped); ok {
//	    w.Display(os.Stderr)
//	}
//
// ProgressIndicator redraws one "Scanning [====   ] 3/10 (30%) name" line as
// files finish. It is only enabled on a terminal.
//
// Output is colored on terminals; fatih/color disables color for pipes and
// when NO_COLOR is set.
package display
