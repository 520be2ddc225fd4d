package core

import "testing"

func TestNewViewportFitsWidth(t *testing.T) {
	// 1300x700 into 130x50: width bound scale 10, height bound 7
	v := NewViewport(1300, 700, 130, 50)

	if v.Scale != 10 {
		t.Errorf("Scale = %v, expected 10", v.Scale)
	}
	if v.OffsetX != 0 {
		t.Errorf("OffsetX = %d, expected 0", v.OffsetX)
	}
	// 700 / 20 = 35 rows used, centered in 50
	if v.OffsetY != 7 {
		t.Errorf("OffsetY = %d, expected 7", v.OffsetY)
	}
}

func TestNewViewportFitsHeight(t *testing.T) {
	v := NewViewport(100, 100, 100, 10)

	// Height bound: 100 / (10 * 2) = 5
	if v.Scale != 5 {
		t.Errorf("Scale = %v, expected 5", v.Scale)
	}
	if v.OffsetX != 40 {
		t.Errorf("OffsetX = %d, expected 40", v.OffsetX)
	}
}

func TestViewportToCell(t *testing.T) {
	v := NewViewport(1300, 700, 130, 50)

	tests := []struct {
		x, y   float64
		cx, cy int
	}{
		{0, 0, 0, 7},
		{15, 25, 1, 8},
		{1299, 699, 129, 41},
	}
	for _, tc := range tests {
		cx, cy := v.ToCell(tc.x, tc.y)
		if cx != tc.cx || cy != tc.cy {
			t.Errorf("ToCell(%v, %v) = (%d, %d), expected (%d, %d)", tc.x, tc.y, cx, cy, tc.cx, tc.cy)
		}
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := NewViewport(800, 400, 80, 30)

	for _, p := range [][2]int{{0, 0}, {10, 5}, {79, 20}} {
		x, y := v.ToWorld(p[0], p[1])
		cx, cy := v.ToCell(x, y)
		if cx != p[0] || cy != p[1] {
			t.Errorf("ToCell(ToWorld(%v)) = (%d, %d)", p, cx, cy)
		}
	}
}

func TestViewportBounds(t *testing.T) {
	v := NewViewport(1300, 700, 130, 50)

	r := v.Bounds(100, 100, 50, 40)
	if r.X != 10 || r.W != 5 {
		t.Errorf("Bounds X/W = %d/%d, expected 10/5", r.X, r.W)
	}
	if r.H != 2 {
		t.Errorf("Bounds H = %d, expected 2", r.H)
	}

	// Tiny shapes still cover one cell
	tiny := v.Bounds(100, 100, 1, 1)
	if tiny.W != 1 || tiny.H != 1 {
		t.Errorf("Bounds of tiny box = %dx%d, expected 1x1", tiny.W, tiny.H)
	}
}

func TestViewportDegenerate(t *testing.T) {
	v := NewViewport(0, 0, 0, 0)
	if v.Scale != 1 || v.Cols != 1 || v.Rows != 1 {
		t.Errorf("NewViewport(0, 0, 0, 0) = %+v, expected unit viewport", v)
	}
}

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor("Red"); !ok || c != ColorRed {
		t.Errorf("ParseColor(Red) = %v, %v, expected ColorRed", c, ok)
	}
	if c, ok := ParseColor(" grey "); !ok || c != ColorGray {
		t.Errorf("ParseColor(grey) = %v, %v, expected ColorGray", c, ok)
	}
	if _, ok := ParseColor("chartreuse"); ok {
		t.Error("ParseColor should reject unknown names")
	}
}
