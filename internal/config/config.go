// Package config provides configuration for the chess server.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/errors"
)

// Config holds all program configuration.
// Settings are grouped into sub-configs by the component that consumes them.
type Config struct {
	Server   *ServerConfig
	Store    *StoreConfig
	Rules    *RulesConfig
	Analysis *AnalysisConfig

	Verbosity int // 0=nothing, 1=lifecycle, 2=running commentary

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Server:     NewServerConfig(),
		Store:      NewStoreConfig(),
		Rules:      NewRulesConfig(),
		Analysis:   NewAnalysisConfig(),
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the log writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks every sub-config and the shared settings.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity %d out of range 0..2: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Analysis.Validate()
}

// RulesConfig selects the rule variant the engine plays by.
type RulesConfig struct {
	// StrictPawnAdvance requires the square passed over by a two-square pawn
	// advance to be empty. Off by default.
	StrictPawnAdvance bool
}

// NewRulesConfig creates a RulesConfig with default values.
func NewRulesConfig() *RulesConfig {
	return &RulesConfig{}
}

// Engine returns the engine rule set described by the config.
func (r *RulesConfig) Engine() engine.Rules {
	return engine.Rules{StrictPawnAdvance: r.StrictPawnAdvance}
}
