package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ValidateConfig checks values that defaults cannot repair. Manifest-level
// rules (unique outputs, safe file names) are enforced by the manifest package.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Tool.Timeout != "" {
		d, err := time.ParseDuration(cfg.Tool.Timeout)
		if err != nil {
			return fmt.Errorf("tool.timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("tool.timeout cannot be negative: %s", cfg.Tool.Timeout)
		}
	}
	for i, f := range cfg.Fonts {
		if strings.TrimSpace(f.Family) == "" {
			return fmt.Errorf("fonts[%d]: family cannot be empty", i)
		}
		if len(f.Tiers) == 0 {
			return fmt.Errorf("fonts[%d] (%s): at least one tier is required", i, f.Family)
		}
		for j, tier := range f.Tiers {
			if tier.Name == "" && tier.Output == "" {
				return fmt.Errorf("fonts[%d].tiers[%d]: name or output is required", i, j)
			}
			if tier.Size <= 0 {
				return fmt.Errorf("fonts[%d].tiers[%d]: size must be positive, got %d", i, j, tier.Size)
			}
		}
	}
	return nil
}
