package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/file-analyzer/internal/analyzer"
)

const lineIndent = "   "

type textStyle struct {
	path  func(a ...interface{}) string
	label func(a ...interface{}) string
	line  func(a ...interface{}) string
}

func newTextStyle(enabled bool) textStyle {
	if !enabled {
		return textStyle{path: fmt.Sprint, label: fmt.Sprint, line: fmt.Sprint}
	}
	return textStyle{
		path:  color.New(color.FgCyan, color.Bold).SprintFunc(),
		label: color.New(color.FgGreen).SprintFunc(),
		line:  color.New(color.FgYellow).SprintFunc(),
	}
}

// Text renders the plain-text report:
//
//	Analyzed files: 1
//	Found patterns: Foo-match (3)
//
//	/a.txt: Foo-match (3)
//	   1: Foo-match
//	   foo bar
func Text(summary *analyzer.Summary, useColor bool) string {
	style := newTextStyle(useColor)
	label := func(s string) string { return style.label(s) }

	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed files: %d\n", summary.AnalyzedFiles)

	if len(summary.Tally) == 0 {
		b.WriteString(NoPatternsFound)
		return b.String()
	}

	fmt.Fprintf(&b, "Found patterns: %s\n\n", formatTally(summary.Tally, label))

	for _, file := range summary.Files {
		fmt.Fprintf(&b, "%s: %s\n", style.path(DisplayPath(file.Path, summary.Root)), formatTally(file.Tally, label))
		for _, line := range file.Lines {
			labels := line.Labels()
			for i, l := range labels {
				labels[i] = style.label(l)
			}
			fmt.Fprintf(&b, "%s%s: %s\n", lineIndent, style.line(line.Number), strings.Join(labels, ", "))
			fmt.Fprintf(&b, "%s%s\n", lineIndent, line.Text)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}
