package main

import (
	"fmt"
	"strings"

	"github.com/jsredmond/zorkparity/internal/comparator"
	"github.com/jsredmond/zorkparity/internal/models"
	"github.com/jsredmond/zorkparity/internal/projectconfig"
	"github.com/jsredmond/zorkparity/internal/transcripts"
	"github.com/jsredmond/zorkparity/internal/validation"
)

// loadProject loads .zorkparity.yaml (walking up from the current directory)
// and decodes its compare section into comparator options.
func loadProject() (*projectconfig.ProjectConfig, comparator.Options, error) {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return nil, comparator.Options{}, err
	}
	cmpOpts, err := comparator.DecodeOptions(cfg.Compare)
	if err != nil {
		return nil, comparator.Options{}, fmt.Errorf("invalid compare settings in %s: %w", projectconfig.ConfigFileName, err)
	}
	return cfg, cmpOpts, nil
}

// loadTranscriptChecked schema-validates a transcript file, then loads it.
func loadTranscriptChecked(path string) (*models.Transcript, error) {
	schemaErrs, err := validation.ValidateTranscriptFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(schemaErrs) > 0 {
		return nil, fmt.Errorf("invalid transcript %s:\n  %s", path, strings.Join(schemaErrs, "\n  "))
	}
	return transcripts.Read(path)
}
