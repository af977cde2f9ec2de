package dashboard

import "time"

// Config defines the runtime configuration for the dashboard server.
type Config struct {
	Addr              string
	BroadcastInterval time.Duration
}

// DefaultConfig returns the config matching the stock checkout deployment.
func DefaultConfig() Config {
	return Config{
		Addr:              ":5000",
		BroadcastInterval: 100 * time.Millisecond,
	}
}
