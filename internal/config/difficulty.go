package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a flag value to a preset. Unknown or empty values are normal.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}

// presetScale returns gravity and thrust multipliers for a preset.
func presetScale(preset DifficultyPreset) (gravity, thrust float64) {
	switch preset {
	case DifficultyEasy:
		return 0.7, 1.1
	case DifficultyHard:
		return 1.3, 0.95
	default:
		return 1.0, 1.0
	}
}

// ApplyRocketPreset modifies the config based on a difficulty preset.
func ApplyRocketPreset(cfg *RocketConfig, preset DifficultyPreset) {
	g, th := presetScale(preset)
	cfg.Physics.Gravity *= g
	cfg.Physics.ThrustStrength *= th

	// Slower spin-up on easy makes the craft forgiving on landings
	if preset == DifficultyEasy {
		cfg.Physics.ImpactSpin *= 0.5
	}
}
