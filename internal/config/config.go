package config

import "fmt"

// Config is the top-level, YAML-tagged configuration for the demo chunking
// server, loaded via yaml.Unmarshal and then overlaid with LoadFromEnv.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Chunker ChunkerOptions `yaml:"chunker"`
}

// ServerConfig configures the demo HTTP server in cmd/chunkd.
type ServerConfig struct {
	Port        int    `yaml:"port" default:"8080"`
	MetricsPort int    `yaml:"metrics_port" default:"9090"`
	LogLevel    string `yaml:"log_level" default:"info"`
}

// ChunkerOptions selects and tunes the chunking core.
type ChunkerOptions struct {
	// Algorithm is one of "rabin", "fast", "super", "ultra", "leap".
	Algorithm string `yaml:"algorithm" default:"super"`

	// BufferCapacityOverride, when non-zero, replaces the driver's default
	// ChunkerBuf capacity. Production deployments should leave this at 0;
	// it exists so tests can exercise compaction and full-buffer paths
	// without allocating a full-size buffer per case.
	BufferCapacityOverride int `yaml:"buffer_capacity_override" default:"0"`

	// Compress is loaded from YAML and CDCCHUNKER_COMPRESS and carried here,
	// but no component reads it: cmd/chunkd never wraps its sink in a
	// CompressingSink, whatever its value.
	Compress bool `yaml:"compress" default:"false"`
}

// validAlgorithms lists the algorithm tags ChunkerOptions.Validate accepts.
// Kept local to config so this package doesn't need to import
// internal/chunker just to validate a string.
var validAlgorithms = map[string]bool{
	"rabin": true,
	"fast":  true,
	"super": true,
	"ultra": true,
	"leap":  true,
}

// Validate reports whether the options are usable, without mutating them.
// An invalid algorithm tag or a negative buffer override is a caller
// configuration error, not an internal contract violation, so it is
// returned rather than panicked.
func (o ChunkerOptions) Validate() error {
	if o.Algorithm != "" && !validAlgorithms[o.Algorithm] {
		return fmt.Errorf("config: unknown chunker algorithm %q", o.Algorithm)
	}
	if o.BufferCapacityOverride < 0 {
		return fmt.Errorf("config: buffer_capacity_override must be >= 0, got %d", o.BufferCapacityOverride)
	}
	return nil
}
