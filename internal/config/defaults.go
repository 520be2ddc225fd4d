package config

import (
	_ "embed"
)

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

// DefaultSimConfig returns the default simulation configuration. It matches
// the reference table: 1300x700, gravity 0.2 per frame, elastic balls.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Physics: PhysicsConfig{
			GravityX:         0,
			GravityY:         0.2,
			Dt:               1,
			BallRestitution:  1.0,
			WallRestitution:  1.0,
			FloorRestitution: 0.9,
			BoxRestitution:   0.8,
			SegmentDamping:   0.8,
			SegmentStrategy:  "swept",
		},
		Arena: ArenaConfig{
			Width:  1300,
			Height: 700,
		},
		Plunger: PlungerConfig{
			ActivationDelayMs: 300,
		},
		Effects: EffectsConfig{
			Enabled:      true,
			BurstSize:    10,
			OriginY:      50,
			Lifespan:     255,
			Decay:        2,
			MaxParticles: 500,
		},
		Run: RunConfig{
			Steps:   3600,
			FrameMs: 16,
			Seed:    1,
		},
	}
}
