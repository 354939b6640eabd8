package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/roguecore/internal/validate"
)

// EnvPath overrides the config path given on the command line.
const EnvPath = "ROGUECORE_CONFIG"

// Movement holds the integrator tuning constants.
type Movement struct {
	BaseSpeed    float64 `yaml:"base_speed" validate:"gt=0"`
	RunSpeed     float64 `yaml:"run_speed" validate:"gt=0"`
	DefendSpeed  float64 `yaml:"defend_speed" validate:"gte=0"`
	Acceleration float64 `yaml:"acceleration" validate:"gt=0"`
	Deceleration float64 `yaml:"deceleration" validate:"gt=0"`
	JumpSpeed    float64 `yaml:"jump_speed" validate:"gte=0"`
	Gravity      float64 `yaml:"gravity" validate:"gte=0"`
	TurnSpeed    float64 `yaml:"turn_speed" validate:"gt=0"` // rad/s
	FloorHeight  float64 `yaml:"floor_height"`
}

// Combat holds attack, damage and impact feedback tuning.
type Combat struct {
	Health             int     `yaml:"health" validate:"gt=0"`
	AttackMaxDuration  float64 `yaml:"attack_max_duration" validate:"gt=0"`  // seconds
	HitInvulnerability float64 `yaml:"hit_invulnerability" validate:"gte=0"` // seconds
	SquashPeak         float64 `yaml:"squash_peak" validate:"gte=1"`
	SquashDuration     float64 `yaml:"squash_duration" validate:"gt=0"` // seconds of the rise
	HitClip            string  `yaml:"hit_clip"`
	ShieldHitClip      string  `yaml:"shield_hit_clip"`
}

// Controller holds all configuration for the character controller.
type Controller struct {
	// Loop
	TickRate int    `yaml:"tick_rate" validate:"gt=0,lte=1000"` // steps per second
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Item catalog; empty selects the built-in table
	CatalogPath string `yaml:"catalog_path"`

	Movement Movement `yaml:"movement"`
	Combat   Combat   `yaml:"combat"`
}

// Step returns the fixed simulation step.
func (c Controller) Step() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// DefaultMovement returns the stock movement tuning.
func DefaultMovement() Movement {
	return Movement{
		BaseSpeed:    4,
		RunSpeed:     6,
		DefendSpeed:  2,
		Acceleration: 8,
		Deceleration: 4,
		JumpSpeed:    6,
		Gravity:      9.8,
		TurnSpeed:    6,
	}
}

// DefaultCombat returns the stock combat tuning.
func DefaultCombat() Combat {
	return Combat{
		Health:             5,
		AttackMaxDuration:  0.55,
		HitInvulnerability: 0.35,
		SquashPeak:         1.2,
		SquashDuration:     0.2,
		HitClip:            "audio/hit",
		ShieldHitClip:      "audio/shield_hit",
	}
}

// DefaultController returns Controller config with sensible defaults.
func DefaultController() Controller {
	return Controller{
		TickRate: 60,
		LogLevel: "info",
		Movement: DefaultMovement(),
		Combat:   DefaultCombat(),
	}
}

// Resolve picks the config path: the environment override wins over fallback.
func Resolve(fallback string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return fallback
}

// Load loads controller config from a YAML file and validates it.
// If the file doesn't exist, returns defaults.
func Load(path string) (Controller, error) {
	cfg := DefaultController()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
