package tui

import (
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/effects"
	"github.com/vovakirdan/tui-pinball/internal/physics"
)

// Glyphs used when drawing a table.
const (
	glyphBall     = '●'
	glyphPeg      = 'o'
	glyphBox      = '█'
	glyphSegment  = '•'
	glyphParticle = '*'
	glyphFade     = '·'
)

// Scene colors.
const (
	ballColor    = core.ColorBrightYellow
	circleColor  = core.ColorCyan
	boxColor     = core.ColorGray
	segmentColor = core.ColorGreen
	borderColor  = core.ColorBlue
)

// DrawScene draws the arena into s, fitted into the area below hudRows.
// Plunger parts are drawn in their own color even after activation.
func DrawScene(s *core.Screen, a *physics.Arena, particles []effects.Particle, palette []string, hudRows int) core.Viewport {
	s.Clear()
	rows := max(s.Height()-hudRows, 1)
	v := core.NewViewport(a.Width, a.Height, s.Width()-2, rows-2)
	v.OffsetX++
	v.OffsetY += hudRows + 1

	s.DrawBox(v.Bounds(0, 0, a.Width, a.Height).Grow(1), borderColor)

	plungerBoxes := make(map[int]bool, len(a.Plungers))
	plungerKnobs := make(map[int]bool, len(a.Plungers))
	for _, p := range a.Plungers {
		plungerBoxes[p.Shaft.ID] = true
		plungerKnobs[p.Knob.ID] = true
	}

	for _, seg := range a.Segments {
		x0, y0 := v.ToCell(seg.P1.X, seg.P1.Y)
		x1, y1 := v.ToCell(seg.P2.X, seg.P2.Y)
		s.DrawLine(x0, y0, x1, y1, glyphSegment, segmentColor)
	}
	for _, b := range a.Boxes {
		if plungerBoxes[b.ID] {
			continue
		}
		s.DrawRect(v.Bounds(b.Left(), b.Top(), b.Width, b.Height), glyphBox, boxColor)
	}
	for _, c := range a.Circles {
		if plungerKnobs[c.ID] {
			continue
		}
		cx, cy := v.ToCell(c.Center.X, c.Center.Y)
		s.DrawEllipse(cx, cy, c.Radius/v.Scale, c.Radius/(v.Scale*core.CellAspect), glyphPeg, circleColor)
	}
	for _, p := range a.Plungers {
		color, ok := core.ParseColor(p.Color)
		if !ok {
			color = core.ColorRed
		}
		sh := p.Shaft
		s.DrawRect(v.Bounds(sh.Left(), sh.Top(), sh.Width, sh.Height), glyphBox, color)
		cx, cy := v.ToCell(p.Knob.Center.X, p.Knob.Center.Y)
		s.DrawEllipse(cx, cy, p.Knob.Radius/v.Scale, p.Knob.Radius/(v.Scale*core.CellAspect), glyphBox, color)
	}

	for _, p := range particles {
		cx, cy := v.ToCell(p.Position.X, p.Position.Y)
		cell := core.Cell{Rune: glyphParticle}
		if p.Alpha() < 0.3 {
			cell.Rune = glyphFade
		}
		if len(palette) > 0 {
			cell.Hex = palette[p.Hue%len(palette)]
		}
		s.SetCell(cx, cy, cell)
	}

	for _, b := range a.Balls {
		cx, cy := v.ToCell(b.Center.X, b.Center.Y)
		s.DrawEllipse(cx, cy, b.Radius/v.Scale, b.Radius/(v.Scale*core.CellAspect), glyphBall, ballColor)
	}
	return v
}
