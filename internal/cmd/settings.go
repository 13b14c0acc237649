package cmd

import (
	"fmt"
	"regexp"

	"github.com/harrison/file-analyzer/internal/analyzer"
	"github.com/harrison/file-analyzer/internal/config"
	"github.com/harrison/file-analyzer/internal/fileutil"
	"github.com/harrison/file-analyzer/internal/pattern"
	"github.com/spf13/cobra"
)

// runSettings is a validated settings file with every expression compiled.
type runSettings struct {
	cfg        *config.Config
	patterns   pattern.Set
	filenameRe *regexp.Regexp
	decoding   analyzer.Decoding
}

// loadRunSettings locates and loads the settings file, applies flag overrides
// and compiles everything a scan needs. Any failure is fatal to the run.
func loadRunSettings(cmd *cobra.Command) (*runSettings, error) {
	configFlag, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(config.FindSettingsFile(configFlag))
	if err != nil {
		return nil, err
	}

	var logLevel *string
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		v := f.Value.String()
		logLevel = &v
	}
	var workers *int
	if f := cmd.Flags().Lookup("workers"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt("workers")
		workers = &v
	}
	cfg.MergeWithFlags(logLevel, workers)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", cfg.Source, err)
	}

	patterns, err := pattern.Compile(cfg.SearchPatterns)
	if err != nil {
		return nil, err
	}
	filenameRe, err := pattern.CompileFilename(cfg.FilenamePattern)
	if err != nil {
		return nil, err
	}
	decoding, err := analyzer.NewDecoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	if err := fileutil.ValidateExcludes(cfg.Exclude); err != nil {
		return nil, err
	}

	return &runSettings{
		cfg:        cfg,
		patterns:   patterns,
		filenameRe: filenameRe,
		decoding:   decoding,
	}, nil
}
