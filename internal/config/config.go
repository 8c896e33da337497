package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/nmtri/netwatch/internal/domain"
)

// Config holds the command-line configuration.
type Config struct {
	Interval time.Duration // polling interval between snapshots
	SortBy   string        // initial sort field name
	Mock     bool          // use the synthetic traffic source
	LogLevel string        // debug, info, warn, error
	LogFile  string        // log sink path; empty disables logging
}

const (
	DefaultInterval = 2 * time.Second
	DefaultSortBy   = "rate-in"
	DefaultLogLevel = "info"
)

var sortFields = map[string]domain.SortField{
	"name":     domain.SortName,
	"pid":      domain.SortPid,
	"conn":     domain.SortConnections,
	"down":     domain.SortBytesIn,
	"up":       domain.SortBytesOut,
	"rate-in":  domain.SortRateIn,
	"rate-out": domain.SortRateOut,
}

// Validate checks bounds before startup; errors here abort the program.
func (c *Config) Validate() error {
	if c.Interval < time.Second {
		return errors.New("interval must be at least 1 second")
	}
	if c.Interval > time.Hour {
		return errors.New("interval must not exceed 1 hour")
	}
	if _, ok := sortFields[c.SortBy]; !ok {
		return fmt.Errorf("invalid sort field: %s (must be name, pid, conn, down, up, rate-in or rate-out)", c.SortBy)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}

// SortField maps the configured sort name to its field. Unknown names fall
// back to rate-in, matching the default.
func (c *Config) SortField() domain.SortField {
	if f, ok := sortFields[c.SortBy]; ok {
		return f
	}
	return domain.SortRateIn
}
