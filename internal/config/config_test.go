package config

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/chessrules/internal/engine"
	"github.com/lgbarn/chessrules/internal/errors"
)

// TestConfig_Defaults verifies NewConfig has sensible defaults
func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Verbosity != 1 {
		t.Errorf("Verbosity = %d, want 1", cfg.Verbosity)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 5s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Store.Persistent() {
		t.Error("Store should be in memory by default")
	}
	if !cfg.Store.Autosave {
		t.Error("Autosave should be true by default")
	}
	if cfg.Rules.StrictPawnAdvance {
		t.Error("StrictPawnAdvance should be false by default")
	}
	if cfg.Analysis.Workers < 1 {
		t.Errorf("Analysis.Workers = %d, want at least 1", cfg.Analysis.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

// TestConfig_Validate verifies config validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"verbosity 2", func(c *Config) { c.Verbosity = 2 }, false},
		{"verbosity too high", func(c *Config) { c.Verbosity = 3 }, true},
		{"negative verbosity", func(c *Config) { c.Verbosity = -1 }, true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"zero body limit", func(c *Config) { c.Server.BodyLimit = 0 }, true},
		{"no workers", func(c *Config) { c.Analysis.Workers = 0 }, true},
		{"no positions", func(c *Config) { c.Analysis.MaxPositions = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

// TestRulesConfig_Engine verifies the engine rule set follows the config
func TestRulesConfig_Engine(t *testing.T) {
	cfg := NewRulesConfig()
	if cfg.Engine() != engine.Standard {
		t.Errorf("Engine() = %+v, want Standard", cfg.Engine())
	}
	cfg.StrictPawnAdvance = true
	if cfg.Engine() != engine.Strict {
		t.Errorf("Engine() = %+v, want Strict", cfg.Engine())
	}
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	out := &bytes.Buffer{}
	log := &bytes.Buffer{}

	cfg.SetOutput(out)
	cfg.SetLog(log)

	if cfg.OutputFile != out {
		t.Error("SetOutput did not set OutputFile")
	}
	if cfg.LogFile != log {
		t.Error("SetLog did not set LogFile")
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	cfg := NewConfigBuilder().
		WithAddr("127.0.0.1:9000").
		WithAllowOrigins("http://localhost:3000").
		WithDBPath("games.db").
		WithAutosave(false).
		WithStrictPawnAdvance(true).
		WithWorkers(3).
		WithVerbosity(2).
		Build()

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q, want 127.0.0.1:9000", cfg.Server.Addr)
	}
	if cfg.Server.AllowOrigins != "http://localhost:3000" {
		t.Errorf("AllowOrigins = %q", cfg.Server.AllowOrigins)
	}
	if !cfg.Store.Persistent() || cfg.Store.DBPath != "games.db" {
		t.Errorf("DBPath = %q, want games.db", cfg.Store.DBPath)
	}
	if cfg.Store.Autosave {
		t.Error("Autosave should be false")
	}
	if !cfg.Rules.StrictPawnAdvance {
		t.Error("StrictPawnAdvance should be true")
	}
	if cfg.Analysis.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Analysis.Workers)
	}
	if cfg.Verbosity != 2 {
		t.Errorf("Verbosity = %d, want 2", cfg.Verbosity)
	}
}

// TestLogger_Verbosity verifies messages are gated by verbosity
func TestLogger_Verbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      []string
		dropped   []string
	}{
		{0, []string{"error"}, []string{"info", "debug"}},
		{1, []string{"error", "info"}, []string{"debug"}},
		{2, []string{"error", "info", "debug"}, nil},
	}

	for _, tt := range tests {
		buf := &bytes.Buffer{}
		cfg := NewConfigBuilder().WithLog(buf).WithVerbosity(tt.verbosity).Build()
		logger := cfg.Logger()

		logger.Errorf("error")
		logger.Infof("info")
		logger.Debugf("debug")

		got := buf.String()
		for _, s := range tt.want {
			if !strings.Contains(got, "chess-server: "+s) {
				t.Errorf("verbosity %d: log %q missing %q", tt.verbosity, got, s)
			}
		}
		for _, s := range tt.dropped {
			if strings.Contains(got, s) {
				t.Errorf("verbosity %d: log %q should not contain %q", tt.verbosity, got, s)
			}
		}
	}
}

// TestLogger_Nil verifies a nil logger is usable
func TestLogger_Nil(t *testing.T) {
	var logger *Logger
	logger.Errorf("ignored")
	logger.Infof("ignored")
	logger.Debugf("ignored")
}
