package core

// RuntimeConfig contains configuration passed to the viewer at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for particle effects
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// ViewState represents what the viewer shows about a running simulation.
type ViewState struct {
	Tick        uint64
	CeilingHits int
	Contacts    int
	Particles   int
	Paused      bool
	Finished    bool // Step limit reached
}
