package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pinball/internal/geom"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

const sampleYAML = `
id: sample
name: Sample Table
arena: {w: 400, h: 300}
balls:
  - {id: 1, x: 100, y: 100, r: 10, vx: 2, vy: -1}
  - {x: 200, y: 100, r: 10}
boxes:
  - {id: 10, x: 200, y: 250, w: 100, h: 10}
circles:
  - {x: 300, y: 150, r: 20}
segments:
  - {id: 30, x1: 0, y1: 200, x2: 100, y2: 280}
plungers:
  - shaft: {x: 380, y: 260, w: 10, h: 60}
    knob: {x: 380, y: 225, r: 8}
`

func TestParseYAML(t *testing.T) {
	s, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "sample", s.ID)
	assert.Equal(t, "Sample Table", s.Title())
	assert.Equal(t, 400.0, s.Width)
	assert.Equal(t, 300.0, s.Height)

	require.Len(t, s.Balls, 2)
	assert.Equal(t, 1, s.Balls[0].ID)
	assert.Equal(t, geom.V(2, -1), s.Balls[0].Velocity)

	// Missing ids continue after the largest explicit id (30).
	assert.Equal(t, 31, s.Balls[1].ID)
	require.Len(t, s.Circles, 1)
	assert.Equal(t, 32, s.Circles[0].ID)
	require.Len(t, s.Plungers, 1)
	assert.Equal(t, 33, s.Plungers[0].Shaft.ID)
	assert.Equal(t, 34, s.Plungers[0].Knob.ID)
	assert.Equal(t, "red", s.Plungers[0].Color)

	assert.Equal(t, 7, s.ShapeCount())
}

func TestParseYAMLDefaults(t *testing.T) {
	s, err := ParseYAML([]byte("id: bare\nballs:\n  - {x: 10, y: 10, r: 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultWidth), s.Width)
	assert.Equal(t, float64(DefaultHeight), s.Height)
	assert.Equal(t, "bare", s.Title())
}

func TestParseYAMLErrors(t *testing.T) {
	_, err := ParseYAML([]byte("name: no id\n"))
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = ParseYAML([]byte("id: [broken"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	s, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	a, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 400.0, a.Width)
	assert.Len(t, a.Balls, 2)
	assert.Len(t, a.Boxes, 1)
	assert.Len(t, a.Circles, 1)
	assert.Len(t, a.Segments, 1)
	assert.Len(t, a.Plungers, 1)
	assert.False(t, a.Active())

	// Building again yields an independent arena.
	b, err := s.Build()
	require.NoError(t, err)
	a.Balls[0].Center = geom.V(0, 0)
	assert.Equal(t, geom.V(100, 100), b.Balls[0].Center)
	assert.Equal(t, geom.V(100, 100), s.Balls[0].Center)
}

func TestBuildRejectsInvalidShapes(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		is   error
	}{
		{"zero radius", "id: x\nballs:\n  - {id: 1, x: 1, y: 1, r: 0}\n", geom.ErrInvalidShape},
		{"flat box", "id: x\nboxes:\n  - {id: 1, x: 1, y: 1, w: 5, h: 0}\n", geom.ErrInvalidShape},
		{"point segment", "id: x\nsegments:\n  - {id: 1, x1: 1, y1: 1, x2: 1, y2: 1}\n", geom.ErrInvalidShape},
		{"duplicate id", "id: x\nballs:\n  - {id: 1, x: 1, y: 1, r: 1}\ncircles:\n  - {id: 1, x: 5, y: 5, r: 1}\n", physics.ErrDuplicateID},
		{"bad arena", "id: x\narena: {w: -5, h: 10}\n", physics.ErrInvalidArena},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParseYAML([]byte(tc.yaml))
			require.NoError(t, err)
			_, err = s.Build()
			assert.ErrorIs(t, err, tc.is)
		})
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	s, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	data, err := yaml.Marshal(&s)
	require.NoError(t, err)

	back, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestBuiltinScenarios(t *testing.T) {
	scenarios, err := BuiltinLoader().LoadAll()
	require.NoError(t, err)

	ids := make([]string, len(scenarios))
	for i, s := range scenarios {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"cradle", "pegboard", "pinball"}, ids)

	for _, s := range scenarios {
		t.Run(s.ID, func(t *testing.T) {
			a, err := s.Build()
			require.NoError(t, err)
			assert.NotEmpty(t, a.Balls)

			// Every built-in table runs for a simulated minute without
			// losing a ball to NaN.
			p := physics.DefaultParams()
			for range 3600 {
				physics.Step(a, p, geom.V(0, 0.2), 1)
			}
			for _, b := range a.Balls {
				assert.True(t, b.Center.IsFinite(), "ball %d", b.ID)
			}
		})
	}
}

func TestPinballPlungersStartClear(t *testing.T) {
	s, err := BuiltinLoader().LoadByID("pinball")
	require.NoError(t, err)
	require.Len(t, s.Plungers, 2)
	for _, p := range s.Plungers {
		for _, b := range s.Balls {
			assert.False(t, geom.CircleCircle(b, p.Knob), "ball %d starts inside knob %d", b.ID, p.Knob.ID)
		}
	}
}

func TestLoaderDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "more")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	write := func(p, content string) {
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	write(filepath.Join(dir, "b.yaml"), "id: beta\nballs:\n  - {x: 1, y: 1, r: 1}\n")
	write(filepath.Join(nested, "a.yml"), "id: alpha\nballs:\n  - {x: 1, y: 1, r: 1}\n")
	write(filepath.Join(dir, "broken.yaml"), "id: [")
	write(filepath.Join(dir, "notes.txt"), "id: ignored")

	l := NewLoader(dir)
	ids, err := l.ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, ids)

	s, err := l.LoadByID("alpha")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "more", "a.yml"), s.FilePath)

	_, err = l.LoadByID("gamma")
	assert.Error(t, err)

	s, err = l.LoadFile(filepath.Join(dir, "b.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "beta", s.ID)

	_, err = l.LoadFile(filepath.Join(dir, "notes.txt"))
	assert.Error(t, err)

	assert.True(t, IsScenarioFile("x.YAML"))
	assert.False(t, IsScenarioFile("x.json"))
}
