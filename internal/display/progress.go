package display

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/harrison/file-analyzer/internal/logger"
)

const progressWidth = 30

// ProgressIndicator redraws a single scan progress line on a terminal.
// A disabled indicator writes nothing, so callers never need to branch.
type ProgressIndicator struct {
	writer  io.Writer
	bar     *logger.ProgressBar
	enabled bool
	mu      sync.Mutex
}

// NewProgressIndicator creates a progress indicator for total files.
func NewProgressIndicator(w io.Writer, total int, enabled bool) *ProgressIndicator {
	bar := logger.NewProgressBar(total, progressWidth, !color.NoColor)
	bar.SetPrefix("Scanning ")
	return &ProgressIndicator{
		writer:  w,
		bar:     bar,
		enabled: enabled && w != nil && total > 0,
	}
}

// Step records that path has been scanned and redraws the line.
// Safe to call from concurrent scan workers.
func (p *ProgressIndicator) Step(path string) {
	p.bar.Increment()
	if !p.enabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// \x1b[K clears whatever a longer previous name left behind
	fmt.Fprintf(p.writer, "\r%s %s\x1b[K", p.bar.Render(), filepath.Base(path))
}

// Complete ends the progress line.
func (p *ProgressIndicator) Complete() {
	if !p.enabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.writer, "\r%s\x1b[K\n", p.bar.Render())
}

// Scanned returns the number of files recorded so far.
func (p *ProgressIndicator) Scanned() int {
	return p.bar.Current()
}
