package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SALESDASH_CONFIG is set
//  3. env (prefix SALESDASH_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SALESDASH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: SALESDASH_ADDR, SALESDASH_BASE_SHEET_URL, ...
	// Map env keys like SALESDASH_TALK_TIME_GID -> talk_time_gid (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SALESDASH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "salesdash_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.BaseSheetURL == "":
		return fmt.Errorf("%w: base_sheet_url must not be empty", ErrInvalidConfig)
	case c.RefreshIntervalSeconds < 1:
		return fmt.Errorf("%w: refresh_interval_seconds must be at least 1", ErrInvalidConfig)
	case c.FetchTimeoutSeconds < 1:
		return fmt.Errorf("%w: fetch_timeout_seconds must be at least 1", ErrInvalidConfig)
	}
	return nil
}
