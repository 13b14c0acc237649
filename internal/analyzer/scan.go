package analyzer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/harrison/file-analyzer/internal/pattern"
)

// LineMatch holds the patterns found on one line of a file.
type LineMatch struct {
	// Number is the 1-based line number
	Number int
	// Text is the line with its terminator stripped
	Text string
	// Matches maps each label to the substrings it matched on this line
	Matches map[string][]string
}

// Labels returns the labels present on the line in ascending lexical order.
func (l LineMatch) Labels() []string {
	labels := make([]string, 0, len(l.Matches))
	for label := range l.Matches {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// FileResult is the outcome of scanning a single file.
type FileResult struct {
	// Path is the file path as selected
	Path string
	// Lines contains only lines with at least one match, in ascending order
	Lines []LineMatch
	// Tally counts matches per label across the whole file
	Tally Tally
}

// HasMatches reports whether any pattern matched anywhere in the file.
func (r *FileResult) HasMatches() bool {
	return len(r.Tally) > 0
}

// ScanFile searches every line of path for every pattern.
//
// Each line is tested against each pattern with a find-all, so one line can add
// several matches to a label. The file is closed on every return path. Open and
// read failures are returned wrapped with the path.
func ScanFile(path string, patterns pattern.Set, dec Decoding) (*FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	result, err := scanLines(dec.Reader(f), patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	result.Path = path

	return result, nil
}

func scanLines(r io.Reader, patterns pattern.Set) (*FileResult, error) {
	result := &FileResult{Tally: Tally{}}
	reader := bufio.NewReader(r)

	for number := 1; ; number++ {
		text, ok, err := readLine(reader)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if line, matched := matchLine(number, text, patterns, result.Tally); matched {
			result.Lines = append(result.Lines, line)
		}
	}

	return result, nil
}

// readLine returns the next line without its terminator. "\n", "\r\n" and a
// lone "\r" all end a line. ok is false once the input is exhausted; a final
// line without a terminator is still returned.
func readLine(r *bufio.Reader) (string, bool, error) {
	var b strings.Builder
	for {
		c, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return b.String(), b.Len() > 0, nil
		}
		if err != nil {
			return "", false, err
		}

		switch c {
		case '\n':
			return b.String(), true, nil
		case '\r':
			next, err := r.Peek(1)
			if err != nil && !errors.Is(err, io.EOF) {
				return "", false, err
			}
			if len(next) == 1 && next[0] == '\n' {
				r.ReadByte()
			}
			return b.String(), true, nil
		}
		b.WriteByte(c)
	}
}

// matchLine tests one line against every pattern, adding counts to tally.
func matchLine(number int, text string, patterns pattern.Set, tally Tally) (LineMatch, bool) {
	var matches map[string][]string

	for _, p := range patterns {
		found := p.FindAll(text)
		if len(found) == 0 {
			continue
		}
		if matches == nil {
			matches = make(map[string][]string)
		}
		tally[p.Label] += len(found)
		matches[p.Label] = append(matches[p.Label], found...)
	}

	if matches == nil {
		return LineMatch{}, false
	}
	return LineMatch{Number: number, Text: text, Matches: matches}, true
}
