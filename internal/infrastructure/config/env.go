package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TOYBOW_"

// bowOverrides lists the bow settings that can be tuned from the environment
type bowOverrides struct {
	DrawThreshold      float64 `env:"DRAW_THRESHOLD"`
	DebounceMs         int     `env:"DEBOUNCE_MS"`
	ShotRangeMax       float64 `env:"SHOT_RANGE_MAX"`
	ArrowLifetime      float64 `env:"ARROW_LIFETIME"`
	ModulatePullVolume bool    `env:"MODULATE_PULL_VOLUME"`
}

// ApplyEnv overlays TOYBOW_* environment variables onto cfg.
// environ replaces the process environment when non-nil (tests).
func ApplyEnv(cfg *GameConfig, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}

	o := bowOverrides{
		DrawThreshold:      cfg.Bow.Draw.Threshold,
		DebounceMs:         cfg.Bow.Draw.DebounceMs,
		ShotRangeMax:       cfg.Bow.ShotStrength.RangeMax,
		ArrowLifetime:      cfg.Bow.Arrow.Lifetime,
		ModulatePullVolume: cfg.Bow.ModulatePullVolume,
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.Bow.Draw.Threshold = o.DrawThreshold
	cfg.Bow.Draw.DebounceMs = o.DebounceMs
	cfg.Bow.ShotStrength.RangeMax = o.ShotRangeMax
	cfg.Bow.Arrow.Lifetime = o.ArrowLifetime
	cfg.Bow.ModulatePullVolume = o.ModulatePullVolume

	if err := env.ParseWithOptions(&cfg.Audio, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Bow.Validate(); err != nil {
		return fmt.Errorf("invalid bow config after env overrides: %w", err)
	}
	return nil
}
