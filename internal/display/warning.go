package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/file-analyzer/internal/analyzer"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow.
// Color follows fatih/color's terminal detection and NO_COLOR.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	fmt.Fprint(out, color.New(color.FgYellow).Sprint(b.String()))
}

// WarnSkippedFiles builds the warning shown when files could not be scanned.
// It returns false when nothing was skipped.
func WarnSkippedFiles(skipped []analyzer.SkippedFile) (Warning, bool) {
	if len(skipped) == 0 {
		return Warning{}, false
	}

	files := make([]string, 0, len(skipped))
	for _, s := range skipped {
		files = append(files, fmt.Sprintf("%s (%v)", s.Path, s.Err))
	}

	noun := "file"
	if len(skipped) != 1 {
		noun = "files"
	}

	return Warning{
		Title:      fmt.Sprintf("Skipped %d unreadable %s", len(skipped), noun),
		Message:    "Skipped files are excluded from the analyzed file count and all pattern counts",
		Files:      files,
		Suggestion: "Check file permissions or exclude these paths in the settings file",
	}, true
}
