// Package config provides YAML-based game configuration loading and
// difficulty presets for the rocket game.
package config

import "time"

// RocketConfig contains all configuration for the rocket game.
type RocketConfig struct {
	Physics  RocketPhysics  `yaml:"physics"`
	Gameplay RocketGameplay `yaml:"gameplay"`
	Debug    RocketDebug    `yaml:"debug"`
}

// RocketPhysics defines physics parameters, in cells and seconds.
type RocketPhysics struct {
	Gravity          float64 `yaml:"gravity"`           // cells/s² pulling down
	ThrustStrength   float64 `yaml:"thrust_strength"`   // cells/s² along the nose
	RotationStrength float64 `yaml:"rotation_strength"` // degrees/s of manual rotation
	MaxSpeed         float64 `yaml:"max_speed"`         // cells/s, 0 = unlimited
	AngularDamping   float64 `yaml:"angular_damping"`   // fraction of spin lost per second
	ImpactSpin       float64 `yaml:"impact_spin"`       // degrees/s of spin per cell/s of sideways impact
}

// RocketGameplay defines level flow parameters.
type RocketGameplay struct {
	LevelLoadDelay float64 `yaml:"level_load_delay"` // seconds between outcome and level change
	HoldMillis     int     `yaml:"hold_ms"`          // how long a key press counts as held
}

// RocketDebug defines debug-only switches.
type RocketDebug struct {
	Enabled bool `yaml:"enabled"` // Shows flight telemetry instead of the key help
}

// LevelLoadDelayDuration returns the delay as a duration.
func (g RocketGameplay) LevelLoadDelayDuration() time.Duration {
	return time.Duration(g.LevelLoadDelay * float64(time.Second))
}

// HoldDuration returns how long a key press is treated as held.
func (g RocketGameplay) HoldDuration() time.Duration {
	return time.Duration(g.HoldMillis) * time.Millisecond
}
