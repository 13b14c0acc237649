package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// ScanOptions configures file selection
type ScanOptions struct {
	// FilenamePattern is searched for in each file's base name; nil selects every file
	FilenamePattern *regexp.Regexp
	// Exclude lists doublestar globs matched against slash-separated paths relative to the root
	Exclude []string
}

// ScanResult contains the results of a file selection
type ScanResult struct {
	// Root is the scan root exactly as given
	Root string
	// Files contains the selected paths in traversal order
	Files []string
	// Errors contains any non-fatal errors encountered while walking
	Errors []error
}

// ValidateExcludes reports the first malformed exclude glob.
func ValidateExcludes(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// SelectFiles returns the files under root whose base names match opts.FilenamePattern.
//
// A directory root is walked recursively in lexical order per directory. A file root is
// selected on its own when its base name matches. Only a missing or unreadable root is
// fatal; errors below the root are collected in ScanResult.Errors.
func SelectFiles(root string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if err := ValidateExcludes(opts.Exclude); err != nil {
		return nil, err
	}

	result := &ScanResult{
		Root:   root,
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	if !info.IsDir() {
		if matchesName(opts.FilenamePattern, filepath.Base(root)) {
			result.Files = append(result.Files, root)
		}
		return result, nil
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		if path == root {
			return nil
		}

		if excluded(root, path, opts.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		// Devices, sockets and pipes are never scanned. Symlinks count only
		// when they point at a regular file; they are not followed into directories.
		if d.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		if !matchesName(opts.FilenamePattern, d.Name()) {
			return nil
		}

		result.Files = append(result.Files, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}

func matchesName(re *regexp.Regexp, name string) bool {
	return re == nil || re.MatchString(name)
}

func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
