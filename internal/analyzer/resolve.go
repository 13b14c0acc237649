package analyzer

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidPath is returned when the resolved scan path does not exist.
var ErrInvalidPath = errors.New("invalid path provided")

// Prompter asks the user for a scan path.
type Prompter func() (string, error)

// PathRequest describes where a scan path may come from, in priority order.
type PathRequest struct {
	// Explicit is the path given on the command line
	Explicit string
	// Fallback is the path configured in the settings file
	Fallback string
	// Source names the settings file, for the fallback notice
	Source string
	// Prompt is used when neither Explicit nor Fallback is set
	Prompt Prompter
}

// ResolvePath picks the scan path from req and checks that it exists.
// Failures wrap ErrInvalidPath except prompt errors, which are returned as-is.
func ResolvePath(req PathRequest, logger Logger) (string, error) {
	logger = orNop(logger)

	var path string
	switch {
	case strings.TrimSpace(req.Explicit) != "":
		path = req.Explicit
	case strings.TrimSpace(req.Fallback) != "":
		path = req.Fallback
		source := req.Source
		if source == "" {
			source = "settings"
		}
		logger.LogInfo(fmt.Sprintf("No path argument provided, using path from %s", source))
	case req.Prompt != nil:
		answer, err := req.Prompt()
		if err != nil {
			return "", fmt.Errorf("failed to read path: %w", err)
		}
		path = answer
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrInvalidPath
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	logger.LogInfo(fmt.Sprintf("Analyzing path %s", path))
	return path, nil
}
