package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chessrules/internal/errors"
)

// AnalysisConfig holds settings for batch position analysis.
type AnalysisConfig struct {
	// Workers is the number of goroutines classifying positions
	Workers int

	// MaxPositions caps the number of positions in one request
	MaxPositions int

	// CacheResults memoises classifier results by position key
	CacheResults bool
}

// NewAnalysisConfig creates an AnalysisConfig with default values.
func NewAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Workers:      runtime.NumCPU(),
		MaxPositions: 256,
		CacheResults: true,
	}
}

// Validate checks that the analysis configuration is valid.
func (a *AnalysisConfig) Validate() error {
	if a.Workers < 1 {
		return fmt.Errorf("workers (%d) must be at least 1: %w", a.Workers, errors.ErrInvalidConfig)
	}
	if a.MaxPositions < 1 {
		return fmt.Errorf("max positions (%d) must be at least 1: %w", a.MaxPositions, errors.ErrInvalidConfig)
	}
	return nil
}
