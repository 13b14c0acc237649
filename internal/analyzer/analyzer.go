// Package analyzer scans selected files against a pattern set and folds the
// per-file results into a run summary.
package analyzer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/harrison/file-analyzer/internal/pattern"
)

// Logger receives progress and per-file failure messages.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogInfo(string)  {}
func (nopLogger) LogWarn(string)  {}

func orNop(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}

// SkippedFile records a file that could not be scanned.
type SkippedFile struct {
	Path string
	Err  error
}

// Summary is the aggregate outcome of a run.
type Summary struct {
	// Root is the scan root used to shorten report paths
	Root string
	// AnalyzedFiles counts files opened and read to the end, matched or not
	AnalyzedFiles int
	// Tally is the global label tally over files with at least one match
	Tally Tally
	// Files holds results with at least one match, in selection order
	Files []*FileResult
	// Skipped lists files that failed to open or read
	Skipped []SkippedFile
}

// Add folds one scanned file into the summary and returns the updated summary.
// Files without matches only bump AnalyzedFiles.
func (s Summary) Add(res *FileResult) Summary {
	s.AnalyzedFiles++
	if !res.HasMatches() {
		return s
	}
	s.Tally = s.Tally.Add(res.Tally)
	s.Files = append(s.Files, res)
	return s
}

// Options configures an Analyzer.
type Options struct {
	// Patterns is the fixed pattern set for the run
	Patterns pattern.Set
	// Decoding converts file bytes to text
	Decoding Decoding
	// Workers is the number of files scanned concurrently; values below 2 scan sequentially
	Workers int
	// Progress, if set, is called after each file is scanned or skipped.
	// With several workers it is called concurrently.
	Progress func(path string)
}

// Analyzer scans files and aggregates their results.
type Analyzer struct {
	opts   Options
	logger Logger
}

// NewAnalyzer creates an Analyzer. The logger parameter is optional and can be nil.
func NewAnalyzer(opts Options, logger Logger) *Analyzer {
	return &Analyzer{opts: opts, logger: orNop(logger)}
}

type outcome struct {
	result *FileResult
	err    error
}

// Analyze scans files under root and returns the summary.
//
// Per-file failures are logged and recorded in Summary.Skipped; they never abort
// the run. Only context cancellation does. With more than one worker, files are
// scanned concurrently but folded in the order given, so the summary is the same
// as a sequential run.
func (a *Analyzer) Analyze(ctx context.Context, root string, files []string) (*Summary, error) {
	if len(a.opts.Patterns) == 0 {
		return nil, fmt.Errorf("analyzer has no search patterns")
	}

	outcomes := make([]outcome, len(files))

	if a.opts.Workers < 2 {
		for i, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = a.scan(path)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.opts.Workers)
		for i, path := range files {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				outcomes[i] = a.scan(path)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	summary := Summary{Root: root, Tally: Tally{}}
	for i, o := range outcomes {
		if o.err != nil {
			a.logger.LogWarn(fmt.Sprintf("Skipping %s: %v", files[i], o.err))
			summary.Skipped = append(summary.Skipped, SkippedFile{Path: files[i], Err: o.err})
			continue
		}
		summary = summary.Add(o.result)
	}

	a.logger.LogDebug(fmt.Sprintf("Scanned %d files (%d skipped), %d with matches",
		summary.AnalyzedFiles, len(summary.Skipped), len(summary.Files)))

	return &summary, nil
}

func (a *Analyzer) scan(path string) outcome {
	a.logger.LogDebug(fmt.Sprintf("Scanning %s", path))
	res, err := ScanFile(path, a.opts.Patterns, a.opts.Decoding)
	if a.opts.Progress != nil {
		a.opts.Progress(path)
	}
	return outcome{result: res, err: err}
}
