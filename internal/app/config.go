package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/specialistvlad/gridwords/internal/report"
	"github.com/specialistvlad/gridwords/internal/solver"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DictPath   string   // word list file, directory or http(s) URL
	PuzzlePath string   // hcl files
	Rows       []string // inline board rows

	// Size is the board dimension. Zero means the puzzle file's size, or
	// the default when the file does not set one.
	Size         int
	WorkerCount  int
	MinLength    int
	OutputFormat string

	LogFormat string
	LogLevel  string
	ServePort int

	PublishURL     string
	PublishTimeout time.Duration
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DictPath == "" && cfg.PuzzlePath == "" {
		return nil, errors.New("a dictionary is required: set DictPath or a puzzle file that names one")
	}
	if cfg.PuzzlePath != "" && len(cfg.Rows) > 0 {
		return nil, errors.New("board rows and a puzzle file cannot be used together")
	}
	if cfg.Size < 0 {
		return nil, fmt.Errorf("size must not be negative, got %d", cfg.Size)
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.MinLength < solver.DefaultMinLength {
		return nil, fmt.Errorf("minimum word length must be at least %d, got %d", solver.DefaultMinLength, cfg.MinLength)
	}

	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = report.FormatText
	}
	if !slices.Contains(report.Formats, cfg.OutputFormat) {
		return nil, fmt.Errorf("unknown output format %q: must be one of %s", cfg.OutputFormat, strings.Join(report.Formats, ", "))
	}

	if cfg.ServePort < 0 || cfg.ServePort > 65535 {
		return nil, fmt.Errorf("serve port %d is out of range", cfg.ServePort)
	}
	if cfg.PublishTimeout < 0 {
		return nil, fmt.Errorf("publish timeout must not be negative, got %s", cfg.PublishTimeout)
	}

	return &cfg, nil
}
