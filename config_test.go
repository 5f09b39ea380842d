package navguard

import (
	"strings"
	"testing"
	"time"
)

func TestConfigDefaultsAreValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if cfg.Guard.LoginURL != "/login" {
		t.Fatalf("unexpected default login URL %q", cfg.Guard.LoginURL)
	}
	if cfg.Guard.RedirectParam != "redirect" {
		t.Fatalf("unexpected default redirect param %q", cfg.Guard.RedirectParam)
	}
	if cfg.Refresh.Interval != 60*time.Second {
		t.Fatalf("unexpected default refresh interval %v", cfg.Refresh.Interval)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing login URL",
			mutate:  func(c *Config) { c.Guard.LoginURL = "  " },
			wantErr: "LoginURL",
		},
		{
			name:    "missing redirect param",
			mutate:  func(c *Config) { c.Guard.RedirectParam = "" },
			wantErr: "RedirectParam",
		},
		{
			name:    "refresh enabled without endpoint",
			mutate:  func(c *Config) { c.Refresh.Endpoint = "" },
			wantErr: "Endpoint",
		},
		{
			name:    "refresh interval zero",
			mutate:  func(c *Config) { c.Refresh.Interval = 0 },
			wantErr: "Interval",
		},
		{
			name:    "negative request timeout",
			mutate:  func(c *Config) { c.Refresh.RequestTimeout = -time.Second },
			wantErr: "RequestTimeout",
		},
		{
			name: "audit enabled without buffer",
			mutate: func(c *Config) {
				c.Audit = AuditConfig{Enabled: true, BufferSize: 0}
			},
			wantErr: "BufferSize",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestConfigRefreshDisabledSkipsRefreshValidation(t *testing.T) {
	cfg := defaultConfig()
	cfg.Refresh = RefreshConfig{Enabled: false}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled refresh to skip validation, got %v", err)
	}
}
