package config

const (
	// DefaultModelPath is where packaged installs keep the vector file.
	DefaultModelPath = "/usr/local/var/wordsim/models/vectors.txt"
	// DefaultJournalPath is relative to the user's home directory, so every
	// user gets a writable journal without configuration.
	DefaultJournalPath = ".local/share/wordsim/journal.db"
)

// ApplyDefaults sets default values for any zero values in cfg.
// Queries are left empty; callers fall back to the built-in pair set.
func ApplyDefaults(cfg *Config) {
	if cfg.Model.Path == "" {
		cfg.Model.Path = DefaultModelPath
	}
	if cfg.Model.Format == "" {
		cfg.Model.Format = "auto"
	}
	if cfg.Model.CacheSize == 0 {
		cfg.Model.CacheSize = 10000
	}
	// A negative cache size disables the unit vector cache.
	if cfg.Model.CacheSize < 0 {
		cfg.Model.CacheSize = 0
	}
	if cfg.Journal.DatabasePath == "" {
		cfg.Journal.DatabasePath = DefaultJournalPath
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 400
	}
}
