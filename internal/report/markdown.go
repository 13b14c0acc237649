package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/harrison/file-analyzer/internal/analyzer"
)

const reportTitle = "File analysis report"

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
	"~", `\~`,
)

// Markdown renders the report as a CommonMark document.
func Markdown(summary *analyzer.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "- Analyzed files: %d\n", summary.AnalyzedFiles)

	if len(summary.Tally) == 0 {
		fmt.Fprintf(&b, "\n%s", NoPatternsFound)
		return b.String()
	}

	fmt.Fprintf(&b, "- Found patterns: %s\n", formatTally(summary.Tally, markdownEscaper.Replace))

	for _, file := range summary.Files {
		fmt.Fprintf(&b, "\n## %s\n\n", codeSpan(DisplayPath(file.Path, summary.Root)))
		fmt.Fprintf(&b, "%s\n\n", formatTally(file.Tally, markdownEscaper.Replace))

		for _, line := range file.Lines {
			labels := line.Labels()
			for i, l := range labels {
				labels[i] = markdownEscaper.Replace(l)
			}
			fence := codeFence(line.Text)
			fmt.Fprintf(&b, "- Line %d: %s\n", line.Number, strings.Join(labels, ", "))
			fmt.Fprintf(&b, "  %s\n  %s\n  %s\n", fence, line.Text, fence)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// HTML renders the Markdown report to a standalone HTML page with goldmark.
func HTML(summary *analyzer.Summary) (string, error) {
	var body bytes.Buffer
	if err := goldmark.New().Convert([]byte(Markdown(summary)), &body); err != nil {
		return "", fmt.Errorf("failed to render html report: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>\n", reportTitle)
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>")

	return b.String(), nil
}

// longestBacktickRun returns the length of the longest run of backticks in s.
func longestBacktickRun(s string) int {
	longest, current := 0, 0
	for _, r := range s {
		if r == '`' {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

func codeFence(s string) string {
	n := longestBacktickRun(s) + 1
	if n < 3 {
		n = 3
	}
	return strings.Repeat("`", n)
}

func codeSpan(s string) string {
	ticks := strings.Repeat("`", longestBacktickRun(s)+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return ticks + " " + s + " " + ticks
	}
	return ticks + s + ticks
}
