package navguard

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by navguard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Guard   GuardConfig
	Refresh RefreshConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
GUARD CONFIG
====================================
*/

// GuardConfig defines a public type used by navguard APIs.
//
// GuardConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GuardConfig struct {
	// LoginURL is the endpoint an unauthenticated navigation is bounced
	// to. The intended destination URL is carried as a query parameter.
	LoginURL string

	// RedirectParam is the query parameter name carrying the intended
	// destination on a login bounce.
	RedirectParam string

	// StopAtFirstFailure stops claim evaluation at the first unmet
	// requirement. The default (false) keeps iterating: every later
	// requirement is no longer matched, also fails, and fires its own
	// fallback, matching the historical shell behavior.
	StopAtFirstFailure bool
}

/*
====================================
REFRESH CONFIG
====================================
*/

// RefreshConfig defines a public type used by navguard APIs.
//
// RefreshConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RefreshConfig struct {
	Enabled        bool
	Endpoint       string
	Interval       time.Duration
	RequestTimeout time.Duration
}

// AuditConfig defines a public type used by navguard APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by navguard APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Guard: GuardConfig{
			LoginURL:      "/login",
			RedirectParam: "redirect",
		},
		Refresh: RefreshConfig{
			Enabled:        true,
			Endpoint:       "/auth/refresh",
			Interval:       60 * time.Second,
			RequestTimeout: 10 * time.Second,
		},
	}
}

// cloneConfig exists for parity with future reference-typed fields; today
// every field is a value type and a plain copy is a deep copy.
func cloneConfig(c Config) Config {
	return c
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Guard
	if strings.TrimSpace(c.Guard.LoginURL) == "" {
		return errors.New("Guard LoginURL is required")
	}
	if strings.TrimSpace(c.Guard.RedirectParam) == "" {
		return errors.New("Guard RedirectParam is required")
	}

	// Refresh
	if c.Refresh.Enabled {
		if strings.TrimSpace(c.Refresh.Endpoint) == "" {
			return errors.New("Refresh Endpoint is required when refresh is enabled")
		}
		if c.Refresh.Interval <= 0 {
			return errors.New("Refresh Interval must be > 0")
		}
		if c.Refresh.RequestTimeout < 0 {
			return errors.New("Refresh RequestTimeout must be >= 0")
		}
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
