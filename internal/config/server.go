package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chessrules/internal/errors"
)

// ServerConfig holds settings for the HTTP and websocket server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// AllowOrigins is the CORS origin list, comma separated
	AllowOrigins string

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration

	// BodyLimit is the maximum request body size in bytes
	BodyLimit int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":8080",
		AllowOrigins:    "*",
		ShutdownTimeout: 5 * time.Second,
		BodyLimit:       1 << 20,
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	if s.BodyLimit <= 0 {
		return fmt.Errorf("body limit (%d) must be positive: %w", s.BodyLimit, errors.ErrInvalidConfig)
	}
	return nil
}
