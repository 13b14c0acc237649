package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures log messages for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	debug []string
	info  []string
	warn  []string
}

func (l *recordingLogger) LogDebug(m string) { l.mu.Lock(); l.debug = append(l.debug, m); l.mu.Unlock() }
func (l *recordingLogger) LogInfo(m string)  { l.mu.Lock(); l.info = append(l.info, m); l.mu.Unlock() }
func (l *recordingLogger) LogWarn(m string)  { l.mu.Lock(); l.warn = append(l.warn, m); l.mu.Unlock() }

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.txt", "foo bar\nbaz foo foo\n"),
		writeFile(t, dir, "b.txt", "nothing here\n"),
		writeFile(t, dir, "c.txt", "bar\nfoo\n"),
	}
	patterns := mustPatterns(t, "foo", "Foo", "bar", "Bar")

	summary, err := NewAnalyzer(Options{Patterns: patterns}, nil).Analyze(context.Background(), dir, files)
	require.NoError(t, err)

	assert.Equal(t, dir, summary.Root)
	assert.Equal(t, 3, summary.AnalyzedFiles)
	assert.Equal(t, Tally{"Foo": 4, "Bar": 2}, summary.Tally)
	require.Len(t, summary.Files, 2)
	assert.Equal(t, files[0], summary.Files[0].Path)
	assert.Equal(t, files[2], summary.Files[1].Path)
	assert.Empty(t, summary.Skipped)
}

func TestAnalyzeGlobalTallyIsSumOfFileTallies(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 12; i++ {
		content := ""
		for j := 0; j <= i%4; j++ {
			content += fmt.Sprintf("id-%d err err\n", j)
		}
		files = append(files, writeFile(t, dir, fmt.Sprintf("f%02d.log", i), content))
	}
	patterns := mustPatterns(t, `err`, "Error", `id-\d`, "ID")

	summary, err := NewAnalyzer(Options{Patterns: patterns}, nil).Analyze(context.Background(), dir, files)
	require.NoError(t, err)

	want := Tally{}
	for _, f := range summary.Files {
		want = want.Add(f.Tally)
	}
	assert.Equal(t, want, summary.Tally)
	assert.Equal(t, 2*summary.Tally["ID"], summary.Tally["Error"])
}

func TestAnalyzeParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 40; i++ {
		content := fmt.Sprintf("line %d\nfoo %d foo\n", i, i)
		if i%3 == 0 {
			content = "no hits\n"
		}
		files = append(files, writeFile(t, dir, fmt.Sprintf("dir%d/file%02d.txt", i%5, i), content))
	}
	patterns := mustPatterns(t, "foo", "Foo", `\d+`, "Number")

	sequential, err := NewAnalyzer(Options{Patterns: patterns, Workers: 1}, nil).Analyze(context.Background(), dir, files)
	require.NoError(t, err)
	parallel, err := NewAnalyzer(Options{Patterns: patterns, Workers: 8}, nil).Analyze(context.Background(), dir, files)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestAnalyzeSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "foo\n")
	missing := filepath.Join(dir, "vanished.txt")
	logger := &recordingLogger{}

	summary, err := NewAnalyzer(Options{Patterns: mustPatterns(t, "foo", "Foo")}, logger).
		Analyze(context.Background(), dir, []string{missing, good})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.AnalyzedFiles)
	assert.Equal(t, Tally{"Foo": 1}, summary.Tally)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, missing, summary.Skipped[0].Path)
	assert.ErrorIs(t, summary.Skipped[0].Err, os.ErrNotExist)
	require.Len(t, logger.warn, 1)
	assert.Contains(t, logger.warn[0], "Skipping "+missing)
}

// Permission-denied files are skipped rather than aborting the run. This is a
// chosen policy: nothing upstream defines what should happen.
func TestAnalyzeSkipsPermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}

	dir := t.TempDir()
	locked := writeFile(t, dir, "locked.txt", "foo\n")
	require.NoError(t, os.Chmod(locked, 0))
	good := writeFile(t, dir, "open.txt", "foo foo\n")

	summary, err := NewAnalyzer(Options{Patterns: mustPatterns(t, "foo", "Foo")}, nil).
		Analyze(context.Background(), dir, []string{locked, good})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.AnalyzedFiles)
	assert.Equal(t, Tally{"Foo": 2}, summary.Tally)
	require.Len(t, summary.Skipped, 1)
	assert.ErrorIs(t, summary.Skipped[0].Err, os.ErrPermission)
}

func TestAnalyzeCancelled(t *testing.T) {
	dir := t.TempDir()
	files := []string{writeFile(t, dir, "a.txt", "foo\n")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		_, err := NewAnalyzer(Options{Patterns: mustPatterns(t, "foo", "Foo"), Workers: workers}, nil).
			Analyze(ctx, dir, files)
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
	}
}

func TestAnalyzeRequiresPatterns(t *testing.T) {
	_, err := NewAnalyzer(Options{}, nil).Analyze(context.Background(), ".", nil)
	assert.Error(t, err)
}

func TestAnalyzeNoFiles(t *testing.T) {
	summary, err := NewAnalyzer(Options{Patterns: mustPatterns(t, "foo", "Foo")}, nil).
		Analyze(context.Background(), "root", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.AnalyzedFiles)
	assert.Empty(t, summary.Tally)
	assert.Empty(t, summary.Files)
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s = s.Add(&FileResult{Path: "a", Tally: Tally{}})
	s = s.Add(&FileResult{Path: "b", Tally: Tally{"X": 2}})
	s = s.Add(&FileResult{Path: "c", Tally: Tally{"X": 1, "Y": 1}})

	assert.Equal(t, 3, s.AnalyzedFiles)
	assert.Equal(t, Tally{"X": 3, "Y": 1}, s.Tally)
	require.Len(t, s.Files, 2)
	assert.Equal(t, "b", s.Files[0].Path)
}

func TestAnalyzeReportsProgress(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 6; i++ {
		files = append(files, writeFile(t, dir, fmt.Sprintf("f%d.txt", i), "foo\n"))
	}
	files = append(files, filepath.Join(dir, "missing.txt"))

	for _, workers := range []int{1, 3} {
		var mu sync.Mutex
		seen := make(map[string]bool)
		opts := Options{
			Patterns: mustPatterns(t, "foo", "Foo"),
			Workers:  workers,
			Progress: func(path string) {
				mu.Lock()
				defer mu.Unlock()
				seen[path] = true
			},
		}

		_, err := NewAnalyzer(opts, nil).Analyze(context.Background(), dir, files)
		require.NoError(t, err)
		assert.Len(t, seen, len(files), "workers=%d", workers)
	}
}
