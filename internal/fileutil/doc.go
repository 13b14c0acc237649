// Package fileutil selects the files a run will scan.
//
// SelectFiles walks a directory tree with filepath.WalkDir and keeps every regular
// file whose base name contains a match for the configured filename pattern. The
// pattern uses search semantics, so `\.txt$` selects "notes.txt" and `log`
// selects "app.log.1".
//
// # Ordering
//
// Files are returned in traversal order: lexical within each directory, with a
// directory's contents visited at the point its name sorts. The order is stable for
// an unchanged tree, which keeps reports reproducible.
//
// # Single files
//
// When the root is a file it is returned on its own if its base name matches, and
// nothing is walked.
//
// # Exclusions
//
// ScanOptions.Exclude holds doublestar globs such as "vendor" or "**/*.min.js",
// matched against the slash-separated path relative to the root. Excluded
// directories are pruned.
//
// # Errors
//
// A missing root is fatal. Unreadable subdirectories are collected in
// ScanResult.Errors and the walk continues.
//
// Usage:
//
//	result, err := fileutil.SelectFiles("/var/log", fileutil.ScanOptions{
//	    FilenamePattern: regexp.MustCompile(`\.log$`),
//	    Exclude:         []string{"archive"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, path := range result.Files {
//	    fmt.Println(path)
//	}
package fileutil
