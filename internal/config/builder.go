package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithAddr sets the listen address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithAllowOrigins sets the CORS origin list.
func (b *ConfigBuilder) WithAllowOrigins(origins string) *ConfigBuilder {
	b.cfg.Server.AllowOrigins = origins
	return b
}

// WithDBPath selects the SQLite store at path.
func (b *ConfigBuilder) WithDBPath(path string) *ConfigBuilder {
	b.cfg.Store.DBPath = path
	return b
}

// WithAutosave controls saving after every move.
func (b *ConfigBuilder) WithAutosave(enabled bool) *ConfigBuilder {
	b.cfg.Store.Autosave = enabled
	return b
}

// WithStrictPawnAdvance enables the strict two-square pawn advance.
func (b *ConfigBuilder) WithStrictPawnAdvance(enabled bool) *ConfigBuilder {
	b.cfg.Rules.StrictPawnAdvance = enabled
	return b
}

// WithWorkers sets the analysis worker count.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Analysis.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
