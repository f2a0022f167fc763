// Package config provides configuration loading and access for the
// neuroevolution engine.
package config

import (
	"fmt"
	"math"
	"os"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine tunables.
type Config struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Combat     CombatConfig     `yaml:"combat"`
	Population PopulationConfig `yaml:"population"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Worker     WorkerConfig     `yaml:"worker"`
	RNG        RNGConfig        `yaml:"rng"`

	// Derived values computed once after loading.
	Derived DerivedConfig `yaml:"-"`
}

// ArenaConfig holds arena geometry and physics constants.
type ArenaConfig struct {
	CanvasWidth         float64 `yaml:"canvas_width"`
	CanvasHeight        float64 `yaml:"canvas_height"`
	FighterWidth        float64 `yaml:"fighter_width"`
	FighterHeight       float64 `yaml:"fighter_height"`
	Gravity             float64 `yaml:"gravity"`
	Friction            float64 `yaml:"friction"`
	GroundRagdollOffset float64 `yaml:"ground_ragdoll_offset"`
}

// PhysicsConfig holds tick-rate and match-duration parameters.
type PhysicsConfig struct {
	FPS          int `yaml:"fps"`
	MatchSeconds int `yaml:"match_seconds"`
}

// CombatConfig holds fighter action costs and attack constants.
type CombatConfig struct {
	MoveAccel              float64 `yaml:"move_accel"`
	JumpVY                 float64 `yaml:"jump_vy"`
	CrouchVXFactor         float64 `yaml:"crouch_vx_factor"`
	BlockVXFactor          float64 `yaml:"block_vx_factor"`
	AttackCooldownFrames   int     `yaml:"attack_cooldown_frames"`
	PunchDamage            float64 `yaml:"punch_damage"`
	KickDamage             float64 `yaml:"kick_damage"`
	PunchEnergyCost        float64 `yaml:"punch_energy_cost"`
	KickEnergyCost         float64 `yaml:"kick_energy_cost"`
	JumpEnergyCost         float64 `yaml:"jump_energy_cost"`
	CrouchEnergyCost       float64 `yaml:"crouch_energy_cost"`
	BlockEnergyCostPerTick float64 `yaml:"block_energy_cost_per_tick"`
	MoveEnergyCost         float64 `yaml:"move_energy_cost"`
	EnergyRegenIdle        float64 `yaml:"energy_regen_idle"`
	EnergyRegenActive      float64 `yaml:"energy_regen_active"`
}

// PopulationConfig holds generation-management parameters.
type PopulationConfig struct {
	Size                   int     `yaml:"size"`
	EliteCount             int     `yaml:"elite_count"`
	SelectionPoolFraction  float64 `yaml:"selection_pool_fraction"`
}

// MutationConfig holds adaptive-mutation-controller constants.
type MutationConfig struct {
	InitRate            float64 `yaml:"init_rate"`
	FloorRate           float64 `yaml:"floor_rate"`
	MaxRate             float64 `yaml:"max_rate"`
	DecayPerGeneration  float64 `yaml:"decay_per_generation"`
	PlateauThreshold    int     `yaml:"plateau_threshold"`
	PlateauSpike        float64 `yaml:"plateau_spike"`
	OscillationInterval int     `yaml:"oscillation_interval"`
	OscillationBoost    float64 `yaml:"oscillation_boost"`
	ReplaceProbability  float64 `yaml:"replace_probability"`
}

// WorkerConfig holds parallel-trainer parameters.
type WorkerConfig struct {
	MaxWorkers         int `yaml:"max_workers"`
	MaxRequeueAttempts int `yaml:"max_requeue_attempts"`
}

// RNGConfig holds the default seed for deterministic runs.
type RNGConfig struct {
	Seed int64 `yaml:"seed"`
}

// DerivedConfig holds values computed once after loading.
type DerivedConfig struct {
	MatchFrameCap     int
	SelectionPoolSize int
	Ground            float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh Config populated from embedded defaults only,
// without touching the process-global. Useful for tests that need an
// isolated config.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from the loaded config.
func (c *Config) computeDerived() {
	c.Derived.MatchFrameCap = c.Physics.MatchSeconds * c.Physics.FPS
	c.Derived.SelectionPoolSize = int(math.Ceil(
		float64(c.Population.Size) * c.Population.SelectionPoolFraction))
	if c.Derived.SelectionPoolSize < 1 {
		c.Derived.SelectionPoolSize = 1
	}
	c.Derived.Ground = c.Arena.CanvasHeight
}
