package config

// StoreConfig holds settings for game persistence.
type StoreConfig struct {
	// DBPath is the SQLite database file. Empty keeps games in memory only.
	DBPath string

	// Autosave saves the game after every accepted move
	Autosave bool
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{
		Autosave: true,
	}
}

// Persistent reports whether games are written to a database file.
func (s *StoreConfig) Persistent() bool {
	return s.DBPath != ""
}
