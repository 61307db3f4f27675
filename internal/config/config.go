// Package config loads application configuration from the environment,
// with optional .env support for development setups.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// SourceMode selects where diagnostic question sets come from.
type SourceMode string

const (
	// SourceLive generates a fresh question set with one whole-exam AI call.
	SourceLive SourceMode = "live"

	// SourcePool samples pre-generated questions from the content tree.
	SourcePool SourceMode = "pool"
)

// Config holds application-level settings. LLM provider settings live in
// the llm package's own config.
type Config struct {
	// ContentPath is the exam content JSON file. Required for every
	// operation that reads or writes the content tree.
	ContentPath string

	// FilesDir overrides the flat-file workspace root ("" = default).
	FilesDir string

	// Workers bounds the generation worker pool.
	Workers int

	// Source selects the question source strategy for `generate`.
	Source SourceMode
}

// DefaultWorkers is the worker-pool size when CERTQUIZ_MAX_WORKERS is unset.
const DefaultWorkers = 3

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; its absence is not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		ContentPath: os.Getenv("CERTQUIZ_CONTENT_PATH"),
		FilesDir:    os.Getenv("CERTQUIZ_FILES_DIR"),
		Workers:     DefaultWorkers,
		Source:      SourceLive,
	}

	if w := os.Getenv("CERTQUIZ_MAX_WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if s := os.Getenv("CERTQUIZ_QUESTION_SOURCE"); s != "" {
		cfg.Source = SourceMode(s)
	}

	return cfg
}

// RequireContent validates that a content file is configured and exists.
// Failures here are fatal at startup for content-dependent commands.
func (c Config) RequireContent() error {
	if c.ContentPath == "" {
		return fmt.Errorf("CERTQUIZ_CONTENT_PATH is not set; point it at your exam content JSON file")
	}
	if _, err := os.Stat(c.ContentPath); err != nil {
		return fmt.Errorf("content file %s: %w", c.ContentPath, err)
	}
	return nil
}

// ValidateSource checks the configured source mode.
func (c Config) ValidateSource() error {
	switch c.Source {
	case SourceLive, SourcePool:
		return nil
	default:
		return fmt.Errorf("unknown question source %q (want %q or %q)", c.Source, SourceLive, SourcePool)
	}
}
