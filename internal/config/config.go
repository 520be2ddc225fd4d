// Package config provides YAML-based simulation configuration loading and
// physics presets.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-pinball/internal/geom"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

// SimConfig contains all configuration for a simulation run.
type SimConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Arena   ArenaConfig   `yaml:"arena"`
	Plunger PlungerConfig `yaml:"plunger"`
	Effects EffectsConfig `yaml:"effects"`
	Run     RunConfig     `yaml:"run"`
}

// PhysicsConfig defines the integration and response parameters.
type PhysicsConfig struct {
	GravityX float64 `yaml:"gravity_x"`
	GravityY float64 `yaml:"gravity_y"`
	Dt       float64 `yaml:"dt"` // Step length in reference frames

	BallRestitution  float64 `yaml:"ball_restitution"`
	WallRestitution  float64 `yaml:"wall_restitution"`
	FloorRestitution float64 `yaml:"floor_restitution"`
	BoxRestitution   float64 `yaml:"box_restitution"`
	SegmentDamping   float64 `yaml:"segment_damping"`
	SegmentStrategy  string  `yaml:"segment_strategy"` // "swept" or "proximity"
}

// ArenaConfig is the arena size used when a scenario does not set one.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlungerConfig defines plunger timing.
type PlungerConfig struct {
	ActivationDelayMs int `yaml:"activation_delay_ms"`
}

// EffectsConfig defines the particle bursts fired on ceiling hits.
type EffectsConfig struct {
	Enabled      bool    `yaml:"enabled"`
	BurstSize    int     `yaml:"burst_size"`
	OriginY      float64 `yaml:"origin_y"` // Bursts spawn at (width/2, origin_y)
	Lifespan     int     `yaml:"lifespan"`
	Decay        int     `yaml:"decay"`
	MaxParticles int     `yaml:"max_particles"`
}

// RunConfig defines defaults for headless and interactive runs.
type RunConfig struct {
	Steps   int   `yaml:"steps"`
	FrameMs int   `yaml:"frame_ms"` // Simulated time per step
	Seed    int64 `yaml:"seed"`
}

// Gravity returns the gravity vector.
func (p PhysicsConfig) Gravity() geom.Vec2 {
	return geom.V(p.GravityX, p.GravityY)
}

// Params converts the config to resolver parameters.
func (p PhysicsConfig) Params() (physics.Params, error) {
	strategy, err := physics.ParseSegmentStrategy(p.SegmentStrategy)
	if err != nil {
		return physics.Params{}, err
	}
	params := physics.Params{
		BallRestitution:  p.BallRestitution,
		WallRestitution:  p.WallRestitution,
		FloorRestitution: p.FloorRestitution,
		BoxRestitution:   p.BoxRestitution,
		SegmentDamping:   p.SegmentDamping,
		SegmentStrategy:  strategy,
	}
	if err := params.Validate(); err != nil {
		return physics.Params{}, err
	}
	return params, nil
}

// ActivationDelay returns the plunger delay as a duration.
func (p PlungerConfig) ActivationDelay() time.Duration {
	return time.Duration(p.ActivationDelayMs) * time.Millisecond
}

// FrameDuration returns the simulated time per step.
func (r RunConfig) FrameDuration() time.Duration {
	return time.Duration(r.FrameMs) * time.Millisecond
}

// Validate checks the config for values the simulation cannot run with.
func (c SimConfig) Validate() error {
	if _, err := c.Physics.Params(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !(c.Physics.Dt > 0) {
		return fmt.Errorf("config: physics.dt must be positive, got %g", c.Physics.Dt)
	}
	if !geom.V(c.Physics.GravityX, c.Physics.GravityY).IsFinite() {
		return fmt.Errorf("config: gravity must be finite")
	}
	if !(c.Arena.Width > 0) || !(c.Arena.Height > 0) {
		return fmt.Errorf("config: arena size must be positive, got %gx%g", c.Arena.Width, c.Arena.Height)
	}
	if c.Plunger.ActivationDelayMs < 0 {
		return fmt.Errorf("config: plunger.activation_delay_ms must not be negative")
	}
	if c.Run.FrameMs <= 0 {
		return fmt.Errorf("config: run.frame_ms must be positive, got %d", c.Run.FrameMs)
	}
	if c.Run.Steps < 0 {
		return fmt.Errorf("config: run.steps must not be negative")
	}
	return nil
}
