package pathdata

import (
	"math"
	"testing"

	"gitlab.com/tozd/go/errors"
)

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0001, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{1.23449, "1.234"},
		{-2.0004, "-2"},
		{0.1 + 0.2, "0.3"},
		{100.1006, "100.101"},
	}
	for _, tt := range tests {
		if got := Num(tt.in); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRadius(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8, "8"},
		{4.9991, "5"},
		{4.999, "4.999"},
		{1.2341, "1.235"},
		{0.0001, "0.001"},
		{-1, "0"},
	}
	for _, tt := range tests {
		if got := Radius(tt.in); got != tt.want {
			t.Errorf("Radius(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRadiusNeverBelowInput(t *testing.T) {
	for i := 0; i < 2000; i++ {
		r := float64(i) * 0.00731
		got := CeilRadius(r)
		if got < r-1e-9 {
			t.Fatalf("CeilRadius(%v) = %v, below input", r, got)
		}
		if got-r >= 0.001 {
			t.Fatalf("CeilRadius(%v) = %v, more than one step above", r, got)
		}
	}
}

func TestCommandStrings(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"move", MoveTo{X: 0, Y: 8}, "M0,8"},
		{"line", LineTo{X: -1.25, Y: 3}, "L-1.25,3"},
		{"h", HorizontalLineTo{X: 32}, "H32"},
		{"h arc", HorizontalLineTo{X: 32, Arc: &RelativeArc{RX: 8, RY: 8, Sweep: true, DX: 8, DY: 8}}, "H32a8,8 0 0 1 8,8"},
		{"v arc", VerticalLineTo{Y: 4, Arc: &RelativeArc{RX: 2, RY: 2, Sweep: true, DX: -2, DY: 2}}, "V4a2,2 0 0 1 -2,2"},
		{"arc", ArcTo{RX: 5, RY: 3, Rotation: 0, LargeArc: true, Sweep: false, X: 10, Y: 0}, "A5,3 0 1 0 10,0"},
		{"close", ClosePath{}, "Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.cmd.appendTo(nil)); got != tt.want {
				t.Errorf("serialize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRoundedRect(t *testing.T) {
	got := RoundedRect(0, 0, 40, 20, Corners{4, 4, 0, 2}, 0).String()
	want := "M4,0H36a4,4 0 0 1 4,4V20H2a2,2 0 0 1 -2,-2V4a4,4 0 0 1 4,-4Z"
	if got != want {
		t.Errorf("RoundedRect() = %q, want %q", got, want)
	}
}

func TestRoundedRectOffset(t *testing.T) {
	radii := Corners{8, 8, 8, 8}

	outer := Bounds(RoundedRect(0, 0, 40, 40, radii, 2))
	if w, h := outer.Width(), outer.Height(); !near(w, 44) || !near(h, 44) {
		t.Errorf("outer size = %vx%v, want 44x44", w, h)
	}
	if !near(outer.Min.X, -2) || !near(outer.Min.Y, -2) {
		t.Errorf("outer origin = %v, want (-2,-2)", outer.Min)
	}

	inner := Bounds(RoundedRect(0, 0, 40, 40, radii, -2))
	if w := inner.Width(); !near(w, 36) {
		t.Errorf("inner width = %v, want 36", w)
	}
	if !near(inner.Min.X, 2) {
		t.Errorf("inner origin = %v, want (2,2)", inner.Min)
	}

	s := RoundedRect(0, 0, 40, 40, radii, 2).String()
	if want := "M8,-2H32a10,10 0 0 1 10,10"; s[:len(want)] != want {
		t.Errorf("outer path = %q, want prefix %q", s, want)
	}
}

func TestRoundedRectClamp(t *testing.T) {
	got := RoundedRect(0, 0, 10, 10, Corners{20, 20, 20, 20}, 0).String()
	want := "M5,0H5a5,5 0 0 1 5,5V5a5,5 0 0 1 -5,5H5a5,5 0 0 1 -5,-5V5a5,5 0 0 1 5,-5Z"
	if got != want {
		t.Errorf("RoundedRect() = %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"M0 0 L10 0 L10 10 Z", "M0,0L10,0L10,10Z"},
		{"m1,1 10,0 0,10z", "M1,1L11,1L11,11Z"},
		{"M0,0h5v5H0V0", "M0,0H5V5H0V0"},
		{"M0,0c1,1 2,2 3,3s4,4 5,5", "M0,0C1,1 2,2 3,3C4,4 7,7 8,8"},
		{"M0,0Q5,5 10,0T20,0", "M0,0Q5,5 10,0Q15,-5 20,0"},
		{"M0,0a5,5 0 011,1", "M0,0A5,5 0 0 1 1,1"},
		{"M.5.5L-1e1,2", "M0.5,0.5L-10,2"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"X0,0", "M0", "M0,0A5,5 0 2 1 1,1", "L"} {
		if _, err := Parse(in); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) error = %v, want ErrSyntax", in, err)
		}
	}
}

func TestBounds(t *testing.T) {
	p, err := Parse("M10,10 L30,10 L30,40 Z")
	if err != nil {
		t.Fatal(err)
	}
	b := Bounds(p)
	if b.Min.X != 10 || b.Min.Y != 10 || b.Max.X != 30 || b.Max.Y != 40 {
		t.Errorf("Bounds() = %+v, want (10,10)-(30,40)", b)
	}
}

func TestBoundsArc(t *testing.T) {
	// Half circle of radius 5 bulging upward from (0,0) to (10,0).
	p := Build().M(0, 0).A(5, 5, 0, false, true, 10, 0).Path()
	b := Bounds(p)
	if !near(b.Min.Y, -5) || !near(b.Max.X, 10) || !near(b.Min.X, 0) {
		t.Errorf("Bounds() = %+v, want x 0..10, y -5..0", b)
	}
}

func TestBuilderIdempotent(t *testing.T) {
	a := RoundedRect(1, 2, 33.3333, 20, Corners{1, 2, 3, 4}, 1.5).String()
	b := RoundedRect(1, 2, 33.3333, 20, Corners{1, 2, 3, 4}, 1.5).String()
	if a != b {
		t.Errorf("non-deterministic output:\n%s\n%s", a, b)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
