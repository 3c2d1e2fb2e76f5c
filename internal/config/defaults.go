package config

import (
	_ "embed"
)

//go:embed defaults/rocket.yaml
var defaultRocketYAML []byte

// DefaultRocketConfig returns the default rocket configuration.
func DefaultRocketConfig() RocketConfig {
	return RocketConfig{
		Physics: RocketPhysics{
			Gravity:          6.0,
			ThrustStrength:   14.0,
			RotationStrength: 180.0,
			MaxSpeed:         20.0,
			AngularDamping:   0.8,
			ImpactSpin:       30.0,
		},
		Gameplay: RocketGameplay{
			LevelLoadDelay: 2.0,
			HoldMillis:     150,
		},
		Debug: RocketDebug{
			Enabled: false,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "rocket":
		return defaultRocketYAML
	default:
		return nil
	}
}
