// Package config provides configuration structures and defaults for nvkv.
package config

// MinWindowSize is the smallest usable address window: header, footer and
// room for one minimal record.
const MinWindowSize = 12

// Config holds the tunable parameters of a store instance.
type Config struct {
	// BeginIndex is the first device address the store may use.
	BeginIndex int
	// EndIndex is one past the last device address the store may use.
	// BeginIndex == EndIndex == 0 means the full device range.
	EndIndex int
	// MetricsPrefix is the expvar prefix for wear counters; empty
	// disables publishing (counters still accumulate).
	MetricsPrefix string
}

// DefaultConfig returns a Config struct populated with default values.
func DefaultConfig() *Config {
	return &Config{}
}
