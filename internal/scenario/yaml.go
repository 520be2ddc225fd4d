package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pinball/internal/geom"
)

// YAMLScenario represents the YAML structure for a scenario file.
type YAMLScenario struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Arena       YAMLSize          `yaml:"arena"`
	Balls       []YAMLCircle      `yaml:"balls"`
	Boxes       []YAMLBox         `yaml:"boxes,omitempty"`
	Circles     []YAMLCircle      `yaml:"circles,omitempty"`
	Segments    []YAMLSegment     `yaml:"segments,omitempty"`
	Plungers    []YAMLPlunger     `yaml:"plungers,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents arena dimensions.
type YAMLSize struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// YAMLCircle is a ball or circle obstacle. Velocity is ignored for
// obstacles.
type YAMLCircle struct {
	ID int     `yaml:"id,omitempty"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	R  float64 `yaml:"r"`
	VX float64 `yaml:"vx,omitempty"`
	VY float64 `yaml:"vy,omitempty"`
}

// YAMLBox is an axis-aligned box given by its center.
type YAMLBox struct {
	ID int     `yaml:"id,omitempty"`
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	W  float64 `yaml:"w"`
	H  float64 `yaml:"h"`
}

// YAMLSegment is a line obstacle.
type YAMLSegment struct {
	ID int     `yaml:"id,omitempty"`
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// YAMLPlunger is a shaft and knob pair.
type YAMLPlunger struct {
	Shaft YAMLBox    `yaml:"shaft"`
	Knob  YAMLCircle `yaml:"knob"`
	Color string     `yaml:"color,omitempty"`
}

// ParseYAML parses a YAML scenario file. Shapes with id 0 or no id are
// numbered after the largest explicit id in file order. Shape values are
// checked by Scenario.Build, not here.
func ParseYAML(data []byte) (Scenario, error) {
	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ys.ID == "" {
		return Scenario{}, ErrMissingID
	}

	width, height := ys.Arena.W, ys.Arena.H
	if width == 0 && height == 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	ids := newIDAllocator(&ys)
	s := Scenario{
		ID:          ys.ID,
		Name:        ys.Name,
		Description: ys.Description,
		Width:       width,
		Height:      height,
		Metadata:    ys.Metadata,
	}

	for _, b := range ys.Balls {
		s.Balls = append(s.Balls, geom.Circle{
			ID:       ids.next(b.ID),
			Center:   geom.V(b.X, b.Y),
			Radius:   b.R,
			Velocity: geom.V(b.VX, b.VY),
		})
	}
	for _, b := range ys.Boxes {
		s.Boxes = append(s.Boxes, b.box(ids))
	}
	for _, c := range ys.Circles {
		s.Circles = append(s.Circles, c.circle(ids))
	}
	for _, sg := range ys.Segments {
		s.Segments = append(s.Segments, geom.Segment{
			ID: ids.next(sg.ID),
			P1: geom.V(sg.X1, sg.Y1),
			P2: geom.V(sg.X2, sg.Y2),
		})
	}
	for _, p := range ys.Plungers {
		color := p.Color
		if color == "" {
			color = "red"
		}
		s.Plungers = append(s.Plungers, PlungerSpec{
			Shaft: p.Shaft.box(ids),
			Knob:  p.Knob.circle(ids),
			Color: color,
		})
	}

	return s, nil
}

func (b YAMLBox) box(ids *idAllocator) geom.Box {
	return geom.Box{ID: ids.next(b.ID), Center: geom.V(b.X, b.Y), Width: b.W, Height: b.H}
}

func (c YAMLCircle) circle(ids *idAllocator) geom.Circle {
	return geom.Circle{ID: ids.next(c.ID), Center: geom.V(c.X, c.Y), Radius: c.R}
}

// idAllocator hands out ids above every explicit id in the file.
type idAllocator struct {
	last int
}

func newIDAllocator(ys *YAMLScenario) *idAllocator {
	maxID := 0
	see := func(id int) {
		if id > maxID {
			maxID = id
		}
	}
	for _, b := range ys.Balls {
		see(b.ID)
	}
	for _, b := range ys.Boxes {
		see(b.ID)
	}
	for _, c := range ys.Circles {
		see(c.ID)
	}
	for _, s := range ys.Segments {
		see(s.ID)
	}
	for _, p := range ys.Plungers {
		see(p.Shaft.ID)
		see(p.Knob.ID)
	}
	return &idAllocator{last: maxID}
}

func (a *idAllocator) next(explicit int) int {
	if explicit != 0 {
		return explicit
	}
	a.last++
	return a.last
}

// MarshalYAML converts a scenario back to its file form.
func (s *Scenario) MarshalYAML() (any, error) {
	ys := YAMLScenario{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Arena:       YAMLSize{W: s.Width, H: s.Height},
		Metadata:    s.Metadata,
	}
	for _, b := range s.Balls {
		ys.Balls = append(ys.Balls, YAMLCircle{ID: b.ID, X: b.Center.X, Y: b.Center.Y, R: b.Radius, VX: b.Velocity.X, VY: b.Velocity.Y})
	}
	for _, b := range s.Boxes {
		ys.Boxes = append(ys.Boxes, yamlBox(b))
	}
	for _, c := range s.Circles {
		ys.Circles = append(ys.Circles, YAMLCircle{ID: c.ID, X: c.Center.X, Y: c.Center.Y, R: c.Radius})
	}
	for _, sg := range s.Segments {
		ys.Segments = append(ys.Segments, YAMLSegment{ID: sg.ID, X1: sg.P1.X, Y1: sg.P1.Y, X2: sg.P2.X, Y2: sg.P2.Y})
	}
	for _, p := range s.Plungers {
		ys.Plungers = append(ys.Plungers, YAMLPlunger{
			Shaft: yamlBox(p.Shaft),
			Knob:  YAMLCircle{ID: p.Knob.ID, X: p.Knob.Center.X, Y: p.Knob.Center.Y, R: p.Knob.Radius},
			Color: p.Color,
		})
	}
	return ys, nil
}

func yamlBox(b geom.Box) YAMLBox {
	return YAMLBox{ID: b.ID, X: b.Center.X, Y: b.Center.Y, W: b.Width, H: b.Height}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
