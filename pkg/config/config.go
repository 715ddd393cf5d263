// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/opd-ai/go-slingshot/pkg/belt"
	"github.com/opd-ai/go-slingshot/pkg/entity"
	"github.com/opd-ai/go-slingshot/pkg/orbit"
	"github.com/opd-ai/go-slingshot/pkg/physics"
	"github.com/opd-ai/go-slingshot/pkg/threading"
)

// GameConfig contains configuration for a slingshot session
type GameConfig struct {
	Field       FieldConfig       `json:"field"`
	Physics     PhysicsConfig     `json:"physics"`
	Scoring     ScoringConfig     `json:"scoring"`
	Belt        BeltConfig        `json:"belt"`
	Runtime     RuntimeConfig     `json:"runtime"`
	Audio       AudioConfig       `json:"audio"`
	Leaderboard LeaderboardConfig `json:"leaderboard"`
}

// FieldConfig sizes the play field. The star sits at its center.
type FieldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the middle of the field.
func (f FieldConfig) Center() physics.Vector2D {
	return physics.Vector2D{X: f.Width / 2, Y: f.Height / 2}
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	Gravity     float64 `json:"gravity"`
	MinDistance float64 `json:"minDistance"`
	TimeStep    float64 `json:"timeStep"`    // virtual seconds per tick
	LaunchScale float64 `json:"launchScale"` // drag length to launch speed
}

// ScoringConfig groups every score rule.
type ScoringConfig struct {
	Orbit     OrbitScoring     `json:"orbit"`
	Threading ThreadingScoring `json:"threading"`
	Penalties PenaltyConfig    `json:"penalties"`
}

// OrbitScoring configures the completed-orbit bonus.
type OrbitScoring struct {
	BaseBonus          int     `json:"baseBonus"`
	RadiusDivisor      float64 `json:"radiusDivisor"`
	StabilityNumerator float64 `json:"stabilityNumerator"`
	StabilityOffset    float64 `json:"stabilityOffset"`
	StabilityBias      float64 `json:"stabilityBias"`
	MinMultiplier      int     `json:"minMultiplier"`
	MaxMultiplier      int     `json:"maxMultiplier"`
}

// ThreadingScoring configures the asteroid threading bonus.
type ThreadingScoring struct {
	Distance             float64 `json:"distance"`
	SafeDistance         float64 `json:"safeDistance"`
	Tolerance            float64 `json:"tolerance"`
	GateDistance         float64 `json:"gateDistance"`
	BonusNumerator       float64 `json:"bonusNumerator"`
	MinEffectiveDistance float64 `json:"minEffectiveDistance"`
}

// PenaltyConfig holds the (negative) score deltas for collisions.
type PenaltyConfig struct {
	Sun      int `json:"sun"`
	Planet   int `json:"planet"`
	Asteroid int `json:"asteroid"`
}

// BeltConfig shapes the asteroid belt.
type BeltConfig struct {
	Count       int     `json:"count"`
	Radius      float64 `json:"radius"`
	Speed       float64 `json:"speed"`
	SpawnMargin float64 `json:"spawnMargin"`
}

// RuntimeConfig controls the frame loop and session setup.
type RuntimeConfig struct {
	FrameRate int    `json:"frameRate"`
	StarClass string `json:"starClass"` // empty picks a random class
	Seed      uint64 `json:"seed"`      // 0 seeds from the clock
}

// AudioConfig controls sound cues and background music.
type AudioConfig struct {
	Enabled    bool     `json:"enabled"`
	MusicDir   string   `json:"musicDir"`
	Tracks     []string `json:"tracks"`
	Volume     float64  `json:"volume"` // in beep's log2 units, 0 is unchanged
	SampleRate int      `json:"sampleRate"`
}

// LeaderboardConfig locates the local score database.
type LeaderboardConfig struct {
	Path string `json:"path"`
	TopN int    `json:"topN"`
}

// OrbitRules converts the orbit section for the tracker.
func (s ScoringConfig) OrbitRules() orbit.Rules {
	o := s.Orbit
	return orbit.Rules{
		BaseBonus:          o.BaseBonus,
		RadiusDivisor:      o.RadiusDivisor,
		StabilityNumerator: o.StabilityNumerator,
		StabilityOffset:    o.StabilityOffset,
		StabilityBias:      o.StabilityBias,
		MinMultiplier:      o.MinMultiplier,
		MaxMultiplier:      o.MaxMultiplier,
	}
}

// ThreadingRules converts the threading section for the detector.
func (s ScoringConfig) ThreadingRules() threading.Rules {
	t := s.Threading
	return threading.Rules{
		Distance:             t.Distance,
		SafeDistance:         t.SafeDistance,
		Tolerance:            t.Tolerance,
		GateDistance:         t.GateDistance,
		BonusNumerator:       t.BonusNumerator,
		MinEffectiveDistance: t.MinEffectiveDistance,
	}
}

// Settings converts the belt section for the controller.
func (b BeltConfig) Settings() belt.Settings {
	return belt.Settings{
		Count:       b.Count,
		Radius:      b.Radius,
		Speed:       b.Speed,
		SpawnMargin: b.SpawnMargin,
	}
}

// LoadConfig loads a configuration from a file. Sections missing from the
// file keep their defaults.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFile loads variables from the given .env files (".env" when none
// are named) into the process environment. Missing files are ignored;
// variables already set are not overwritten.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// Load builds the effective configuration: defaults, then the JSON file at
// path (if any), then .env and SLINGSHOT_* overrides, then validation.
func Load(path string) (*GameConfig, error) {
	config := DefaultConfig()
	if path != "" {
		var err error
		if config, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if err := LoadEnvFile(); err != nil {
		return nil, err
	}
	if err := config.ApplyEnvironmentOverrides(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	orbitRules := orbit.DefaultRules()
	threadingRules := threading.DefaultRules()
	beltSettings := belt.DefaultSettings()

	return &GameConfig{
		Field: FieldConfig{
			Width:  1280,
			Height: 720,
		},
		Physics: PhysicsConfig{
			Gravity:     physics.G,
			MinDistance: physics.MinDistance,
			TimeStep:    0.1,
			LaunchScale: 0.05,
		},
		Scoring: ScoringConfig{
			Orbit: OrbitScoring{
				BaseBonus:          orbitRules.BaseBonus,
				RadiusDivisor:      orbitRules.RadiusDivisor,
				StabilityNumerator: orbitRules.StabilityNumerator,
				StabilityOffset:    orbitRules.StabilityOffset,
				StabilityBias:      orbitRules.StabilityBias,
				MinMultiplier:      orbitRules.MinMultiplier,
				MaxMultiplier:      orbitRules.MaxMultiplier,
			},
			Threading: ThreadingScoring{
				Distance:             threadingRules.Distance,
				SafeDistance:         threadingRules.SafeDistance,
				Tolerance:            threadingRules.Tolerance,
				GateDistance:         threadingRules.GateDistance,
				BonusNumerator:       threadingRules.BonusNumerator,
				MinEffectiveDistance: threadingRules.MinEffectiveDistance,
			},
			Penalties: PenaltyConfig{
				Sun:      -1000,
				Planet:   -500,
				Asteroid: -250,
			},
		},
		Belt: BeltConfig{
			Count:       beltSettings.Count,
			Radius:      beltSettings.Radius,
			Speed:       beltSettings.Speed,
			SpawnMargin: beltSettings.SpawnMargin,
		},
		Runtime: RuntimeConfig{
			FrameRate: 60,
		},
		Audio: AudioConfig{
			Enabled:    true,
			MusicDir:   "music",
			Tracks:     []string{"track1.mp3", "track2.mp3", "track3.mp3"},
			Volume:     0,
			SampleRate: 44100,
		},
		Leaderboard: LeaderboardConfig{
			Path: "slingshot.db",
			TopN: 10,
		},
	}
}

// Validate reports the first setting that would break the simulation.
func (c *GameConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("invalid field size %vx%v: must be positive", c.Field.Width, c.Field.Height)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("invalid gravity %v: must be positive", c.Physics.Gravity)
	case c.Physics.MinDistance <= 0:
		return fmt.Errorf("invalid minDistance %v: must be positive", c.Physics.MinDistance)
	case c.Physics.TimeStep <= 0:
		return fmt.Errorf("invalid timeStep %v: must be positive", c.Physics.TimeStep)
	case c.Physics.LaunchScale <= 0:
		return fmt.Errorf("invalid launchScale %v: must be positive", c.Physics.LaunchScale)
	case c.Scoring.Orbit.RadiusDivisor <= 0:
		return fmt.Errorf("invalid orbit radiusDivisor %v: must be positive", c.Scoring.Orbit.RadiusDivisor)
	case c.Scoring.Orbit.StabilityOffset <= 0:
		return fmt.Errorf("invalid orbit stabilityOffset %v: must be positive", c.Scoring.Orbit.StabilityOffset)
	case c.Scoring.Orbit.MinMultiplier > c.Scoring.Orbit.MaxMultiplier:
		return fmt.Errorf("invalid orbit multiplier range [%d, %d]", c.Scoring.Orbit.MinMultiplier, c.Scoring.Orbit.MaxMultiplier)
	case c.Scoring.Threading.Distance <= c.Scoring.Threading.SafeDistance:
		return fmt.Errorf("invalid threading distance %v: must exceed safeDistance %v",
			c.Scoring.Threading.Distance, c.Scoring.Threading.SafeDistance)
	case c.Scoring.Threading.MinEffectiveDistance <= 0:
		return fmt.Errorf("invalid threading minEffectiveDistance %v: must be positive", c.Scoring.Threading.MinEffectiveDistance)
	case c.Belt.Count < 0:
		return fmt.Errorf("invalid belt count %d: must not be negative", c.Belt.Count)
	case c.Belt.Radius <= 0:
		return fmt.Errorf("invalid belt radius %v: must be positive", c.Belt.Radius)
	case c.Runtime.FrameRate <= 0 || c.Runtime.FrameRate > 1000:
		return fmt.Errorf("invalid frameRate %d: must be between 1 and 1000", c.Runtime.FrameRate)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("invalid audio sampleRate %d: must be positive", c.Audio.SampleRate)
	case c.Leaderboard.TopN <= 0:
		return fmt.Errorf("invalid leaderboard topN %d: must be positive", c.Leaderboard.TopN)
	}

	if c.Runtime.StarClass != "" {
		if _, ok := entity.StarTypeByClass(c.Runtime.StarClass); !ok {
			return fmt.Errorf("invalid starClass %q: must be one of O, B, A, F, G, K, M", c.Runtime.StarClass)
		}
	}
	return nil
}
