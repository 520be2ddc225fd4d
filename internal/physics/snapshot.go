package physics

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ballFields is the number of floats stored per ball: X, Y, VX, VY.
const ballFields = 4

// Snapshot contains the mutable arena state for determinism checks.
// Obstacles are static between steps except plungers, which are captured
// by shaft center whether or not they have been activated.
type Snapshot struct {
	Tick      uint64
	Activated bool

	// BallData holds ballFields floats per ball in arena order.
	BallData []float64

	// BoxData holds X, Y per box in arena order.
	BoxData []float64

	// PlungerData holds the shaft X, Y per plunger in arena order.
	PlungerData []float64
}

// Snapshot returns the current arena state.
func (a *Arena) Snapshot() Snapshot {
	balls := make([]float64, 0, len(a.Balls)*ballFields)
	for _, b := range a.Balls {
		balls = append(balls, b.Center.X, b.Center.Y, b.Velocity.X, b.Velocity.Y)
	}
	boxes := make([]float64, 0, len(a.Boxes)*2)
	for _, b := range a.Boxes {
		boxes = append(boxes, b.Center.X, b.Center.Y)
	}
	plungers := make([]float64, 0, len(a.Plungers)*2)
	for _, p := range a.Plungers {
		plungers = append(plungers, p.Shaft.Center.X, p.Shaft.Center.Y)
	}
	return Snapshot{
		Tick:        a.tick,
		Activated:   a.activated,
		BallData:    balls,
		BoxData:     boxes,
		PlungerData: plungers,
	}
}

// Hash returns an xxhash digest of the snapshot. Floats are hashed by
// their bit patterns, so two snapshots hash equal only when the states are
// bit-identical.
func (snap *Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], snap.Tick)
	_, _ = d.Write(buf[:])
	if snap.Activated {
		_, _ = d.Write([]byte{1})
	} else {
		_, _ = d.Write([]byte{0})
	}

	binary.LittleEndian.PutUint64(buf[:], uint64(len(snap.BallData)))
	_, _ = d.Write(buf[:])
	for _, v := range snap.BallData {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	for _, data := range [][]float64{snap.BoxData, snap.PlungerData} {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(data)))
		_, _ = d.Write(buf[:])
		for _, v := range data {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}
