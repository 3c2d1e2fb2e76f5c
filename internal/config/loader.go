package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRocket loads the rocket game configuration.
// Search order: customPath -> ~/.arcade/configs/rocket.yaml -> ./configs/rocket.yaml -> embedded default.
// Values missing from a file keep their defaults.
func LoadRocket(customPath string) (RocketConfig, error) {
	cfg := DefaultRocketConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("rocket.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultRocketConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/rocket.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultRocketConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRocketYAML, &cfg); err != nil {
		return DefaultRocketConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c RocketConfig) Validate() error {
	switch {
	case c.Physics.ThrustStrength <= 0:
		return fmt.Errorf("config: thrust_strength must be positive, got %v", c.Physics.ThrustStrength)
	case c.Physics.RotationStrength <= 0:
		return fmt.Errorf("config: rotation_strength must be positive, got %v", c.Physics.RotationStrength)
	case c.Physics.Gravity < 0:
		return fmt.Errorf("config: gravity must not be negative, got %v", c.Physics.Gravity)
	case c.Physics.MaxSpeed < 0:
		return fmt.Errorf("config: max_speed must not be negative, got %v", c.Physics.MaxSpeed)
	case c.Physics.AngularDamping < 0:
		return fmt.Errorf("config: angular_damping must not be negative, got %v", c.Physics.AngularDamping)
	case c.Gameplay.LevelLoadDelay < 0:
		return fmt.Errorf("config: level_load_delay must not be negative, got %v", c.Gameplay.LevelLoadDelay)
	case c.Gameplay.HoldMillis < 0:
		return fmt.Errorf("config: hold_ms must not be negative, got %v", c.Gameplay.HoldMillis)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
