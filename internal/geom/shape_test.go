package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeConstructorsReject(t *testing.T) {
	tests := []struct {
		name string
		make func() error
		code string
	}{
		{"zero radius", func() error { _, err := NewCircle(1, V(0, 0), 0); return err }, CodeNonPositiveRadius},
		{"negative radius", func() error { _, err := NewBall(1, V(0, 0), -3, V(1, 0)); return err }, CodeNonPositiveRadius},
		{"nan velocity", func() error { _, err := NewBall(1, V(0, 0), 3, V(math.NaN(), 0)); return err }, CodeNonFinite},
		{"zero width", func() error { _, err := NewBox(2, V(0, 0), 0, 5); return err }, CodeNonPositiveSize},
		{"negative height", func() error { _, err := NewBox(2, V(0, 0), 5, -1); return err }, CodeNonPositiveSize},
		{"infinite center", func() error { _, err := NewBox(2, V(math.Inf(1), 0), 5, 5); return err }, CodeNonFinite},
		{"degenerate segment", func() error { _, err := NewSegment(3, V(4, 4), V(4, 4)); return err }, CodeDegenerateSegment},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.make()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidShape))

			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tc.code, shapeErr.Code)
		})
	}
}

func TestShapeConstructorsAccept(t *testing.T) {
	ball, err := NewBall(1, V(10, 20), 5, V(1, 2))
	require.NoError(t, err)
	assert.Equal(t, V(1, 2), ball.Velocity)

	box, err := NewBox(2, V(100, 100), 20, 10)
	require.NoError(t, err)
	assert.Equal(t, 90.0, box.Left())
	assert.Equal(t, 110.0, box.Right())
	assert.Equal(t, 95.0, box.Top())
	assert.Equal(t, 105.0, box.Bottom())
	assert.Equal(t, V(10, 5), box.HalfExtents())

	seg, err := NewSegment(3, V(0, 0), V(10, 0))
	require.NoError(t, err)
	n := seg.Normal()
	assert.InDelta(t, 0.0, n.X, 1e-12)
	assert.InDelta(t, 1.0, math.Abs(n.Y), 1e-12)
}

func TestBoxEdges(t *testing.T) {
	box, err := NewBox(1, V(0, 0), 4, 2)
	require.NoError(t, err)

	edges := box.Edges()
	assert.Equal(t, Segment{P1: V(-2, -1), P2: V(-2, 1)}, edges[0])
	assert.Equal(t, Segment{P1: V(2, -1), P2: V(2, 1)}, edges[1])
	assert.Equal(t, Segment{P1: V(-2, -1), P2: V(2, -1)}, edges[2])
	assert.Equal(t, Segment{P1: V(-2, 1), P2: V(2, 1)}, edges[3])
}

func TestPlungerMovesTogether(t *testing.T) {
	shaft, err := NewBox(10, V(50, 600), 10, 100)
	require.NoError(t, err)
	knob, err := NewBall(11, V(50, 545), 12, V(3, 3))
	require.NoError(t, err)

	p, err := NewPlunger(shaft, knob, "red")
	require.NoError(t, err)
	assert.Equal(t, Vec2{}, p.Knob.Velocity)

	p.Move(V(5, -10))
	assert.Equal(t, V(55, 590), p.Shaft.Center)
	assert.Equal(t, V(55, 535), p.Knob.Center)
}

func TestPlungerRejectsSharedID(t *testing.T) {
	shaft, _ := NewBox(7, V(0, 0), 1, 1)
	knob, _ := NewCircle(7, V(0, 0), 1)

	_, err := NewPlunger(shaft, knob, "blue")
	assert.ErrorIs(t, err, ErrInvalidShape)
}
