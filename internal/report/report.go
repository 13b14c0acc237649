// Package report renders a scan summary as text, Markdown or HTML.
//
// Every format lists labels in ascending lexical order and files in the order
// they were selected, so the same tree and settings always give byte-identical
// output.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/file-analyzer/internal/analyzer"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// NoPatternsFound is printed instead of the body when nothing matched.
const NoPatternsFound = "No patterns found."

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q, must be one of: text, markdown, html", s)
	}
}

// Options controls rendering.
type Options struct {
	Format Format
	// Color enables terminal colors in the text format
	Color bool
}

// Render formats summary. The result has no trailing newline.
func Render(summary *analyzer.Summary, opts Options) (string, error) {
	switch opts.Format {
	case "", FormatText:
		return Text(summary, opts.Color), nil
	case FormatMarkdown:
		return Markdown(summary), nil
	case FormatHTML:
		return HTML(summary)
	default:
		return "", fmt.Errorf("unknown report format %q", opts.Format)
	}
}

// DisplayPath strips the scan root prefix from path. Both are cleaned first,
// matching the paths filepath.WalkDir produces, so "./logs", "logs" and "logs/"
// all shorten "logs/a.txt" to "/a.txt". When nothing is left (the scan root was
// the file itself) the full path is returned.
func DisplayPath(path, root string) string {
	short := strings.TrimPrefix(filepath.Clean(path), filepath.Clean(root))
	if short == "" {
		return path
	}
	return short
}

// FormatTally renders a tally as "label (count), label (count)" sorted by label.
func FormatTally(t analyzer.Tally) string {
	return formatTally(t, func(s string) string { return s })
}

func formatTally(t analyzer.Tally, label func(string) string) string {
	parts := make([]string, 0, len(t))
	for _, l := range t.Labels() {
		parts = append(parts, fmt.Sprintf("%s (%d)", label(l), t[l]))
	}
	return strings.Join(parts, ", ")
}
