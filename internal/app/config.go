package app

import (
	"errors"
	"fmt"
	"slices"
)

// Output formats understood by Run.
const (
	OutputTree = "tree"
	OutputGrid = "grid"
	OutputJSON = "json"
)

var outputs = []string{OutputTree, OutputGrid, OutputJSON}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PipelineUUID string
	DocsPaths    []string // hcl and json pipeline documents
	CatalogPaths []string // hcl element type manifests
	EditsPath    string   // optional hcl edit script
	Output       string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelineUUID == "" {
		return nil, errors.New("PipelineUUID is a required configuration field and cannot be empty")
	}
	if len(cfg.DocsPaths) == 0 {
		return nil, errors.New("at least one documents path is required")
	}
	if cfg.Output == "" {
		cfg.Output = OutputTree
	}
	if !slices.Contains(outputs, cfg.Output) {
		return nil, fmt.Errorf("invalid output '%s': must be one of %v", cfg.Output, outputs)
	}
	return &cfg, nil
}
