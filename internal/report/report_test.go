package report

import (
	"strings"
	"testing"

	"github.com/harrison/file-analyzer/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioA() *analyzer.Summary {
	return &analyzer.Summary{
		Root:          "/data",
		AnalyzedFiles: 1,
		Tally:         analyzer.Tally{"Foo-match": 3},
		Files: []*analyzer.FileResult{{
			Path:  "/data/a.txt",
			Tally: analyzer.Tally{"Foo-match": 3},
			Lines: []analyzer.LineMatch{
				{Number: 1, Text: "foo bar", Matches: map[string][]string{"Foo-match": {"foo"}}},
				{Number: 2, Text: "baz foo foo", Matches: map[string][]string{"Foo-match": {"foo", "foo"}}},
			},
		}},
	}
}

func TestTextScenarioA(t *testing.T) {
	want := strings.Join([]string{
		"Analyzed files: 1",
		"Found patterns: Foo-match (3)",
		"",
		"/a.txt: Foo-match (3)",
		"   1: Foo-match",
		"   foo bar",
		"   2: Foo-match",
		"   baz foo foo",
	}, "\n")

	assert.Equal(t, want, Text(scenarioA(), false))
}

func TestTextSortsLabels(t *testing.T) {
	summary := &analyzer.Summary{
		Root:          "/r",
		AnalyzedFiles: 3,
		Tally:         analyzer.Tally{"zeta": 2, "Alpha": 1, "mid": 4},
		Files: []*analyzer.FileResult{
			{
				Path:  "/r/x.log",
				Tally: analyzer.Tally{"zeta": 2, "Alpha": 1},
				Lines: []analyzer.LineMatch{{
					Number:  7,
					Text:    "zeta zeta Alpha",
					Matches: map[string][]string{"zeta": {"zeta", "zeta"}, "Alpha": {"Alpha"}},
				}},
			},
			{
				Path:  "/r/sub/y.log",
				Tally: analyzer.Tally{"mid": 4},
				Lines: []analyzer.LineMatch{{Number: 1, Text: "mid mid mid mid", Matches: map[string][]string{"mid": {"mid", "mid", "mid", "mid"}}}},
			},
		},
	}

	want := strings.Join([]string{
		"Analyzed files: 3",
		"Found patterns: Alpha (1), mid (4), zeta (2)",
		"",
		"/x.log: Alpha (1), zeta (2)",
		"   7: Alpha, zeta",
		"   zeta zeta Alpha",
		"/sub/y.log: mid (4)",
		"   1: mid",
		"   mid mid mid mid",
	}, "\n")

	got := Text(summary, false)
	assert.Equal(t, want, got)
	assert.Equal(t, got, Text(summary, false), "rendering must be stable")
}

func TestTextNoPatternsFound(t *testing.T) {
	summary := &analyzer.Summary{Root: "/r", AnalyzedFiles: 5, Tally: analyzer.Tally{}}
	assert.Equal(t, "Analyzed files: 5\nNo patterns found.", Text(summary, false))
}

func TestTextNoTrailingNewline(t *testing.T) {
	assert.False(t, strings.HasSuffix(Text(scenarioA(), false), "\n"))
}

func TestDisplayPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		root string
		want string
	}{
		{name: "file under root", path: "/data/logs/a.txt", root: "/data", want: "/logs/a.txt"},
		{name: "root with trailing slash", path: "data/a.txt", root: "data/", want: "/a.txt"},
		{name: "dot-relative root", path: "logs/a.txt", root: "./logs", want: "/a.txt"},
		{name: "dot-relative root, nested file", path: "logs/sub/b.txt", root: "./logs/", want: "/sub/b.txt"},
		{name: "dot-relative file root", path: "./a.txt", root: "./a.txt", want: "./a.txt"},
		{name: "file is the root", path: "/data/a.txt", root: "/data/a.txt", want: "/data/a.txt"},
		{name: "unrelated root", path: "/other/a.txt", root: "/data", want: "/other/a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayPath(tt.path, tt.root))
		})
	}
}

func TestFormatTally(t *testing.T) {
	assert.Equal(t, "", FormatTally(analyzer.Tally{}))
	assert.Equal(t, "A (1), B (10), b (2)", FormatTally(analyzer.Tally{"b": 2, "B": 10, "A": 1}))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"text":     FormatText,
		"TEXT":     FormatText,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
		" html ":   FormatHTML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("json")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	text, err := Render(scenarioA(), Options{})
	require.NoError(t, err)
	assert.Equal(t, Text(scenarioA(), false), text)

	md, err := Render(scenarioA(), Options{Format: FormatMarkdown})
	require.NoError(t, err)
	assert.Equal(t, Markdown(scenarioA()), md)

	_, err = Render(scenarioA(), Options{Format: "pdf"})
	assert.Error(t, err)
}

func TestTextColor(t *testing.T) {
	// Colors may be disabled globally when tests don't run in a terminal, so
	// only the visible text is compared.
	colored := Text(scenarioA(), true)
	plain := stripANSI(colored)
	assert.Equal(t, Text(scenarioA(), false), plain)
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
