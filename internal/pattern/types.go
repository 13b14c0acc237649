// Package pattern compiles the named search patterns used to scan file lines.
package pattern

import (
	"fmt"
	"regexp"

	"github.com/harrison/file-analyzer/internal/config"
)

// Pattern is a compiled search expression paired with its report label.
type Pattern struct {
	// Label is the name printed in reports; labels need not be unique
	Label string

	// Regexp is the compiled expression
	Regexp *regexp.Regexp
}

// Source returns the expression text the pattern was compiled from.
func (p Pattern) Source() string {
	return p.Regexp.String()
}

// FindAll returns every non-overlapping match of the pattern in line.
func (p Pattern) FindAll(line string) []string {
	return p.Regexp.FindAllString(line, -1)
}

// Set is the fixed, ordered collection of patterns for a run.
type Set []Pattern

// Compile compiles search patterns in declaration order.
// Any invalid expression fails the whole set.
func Compile(entries config.SearchPatterns) (Set, error) {
	if len(entries) == 0 {
		return nil, config.ErrNoSearchPatterns
	}

	set := make(Set, 0, len(entries))
	for _, entry := range entries {
		re, err := regexp.Compile(entry.Expr)
		if err != nil {
			return nil, fmt.Errorf("invalid search pattern %q: %w", entry.Expr, err)
		}
		set = append(set, Pattern{Label: entry.DisplayLabel(), Regexp: re})
	}

	return set, nil
}

// CompileFilename compiles the filename pattern.
func CompileFilename(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, config.ErrNoFilenamePattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filename pattern %q: %w", expr, err)
	}
	return re, nil
}

// Labels returns the distinct labels of the set in declaration order.
func (s Set) Labels() []string {
	seen := make(map[string]bool, len(s))
	labels := make([]string, 0, len(s))
	for _, p := range s {
		if seen[p.Label] {
			continue
		}
		seen[p.Label] = true
		labels = append(labels, p.Label)
	}
	return labels
}
