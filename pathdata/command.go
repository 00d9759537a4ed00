package pathdata

// Command is a single path-data command.
// The set of implementations is closed; all coordinates are absolute except
// the optional RelativeArc suffix on horizontal and vertical lines.
type Command interface {
	isCommand()
	appendTo(b []byte) []byte
}

// MoveTo starts a new subpath at (X, Y).
type MoveTo struct {
	X, Y float64
}

func (MoveTo) isCommand() {}

func (c MoveTo) appendTo(b []byte) []byte {
	b = append(b, 'M')
	return appendPair(b, c.X, c.Y)
}

func (c MoveTo) String() string { return string(c.appendTo(nil)) }

// LineTo draws a straight line to (X, Y).
type LineTo struct {
	X, Y float64
}

func (LineTo) isCommand() {}

func (c LineTo) appendTo(b []byte) []byte {
	b = append(b, 'L')
	return appendPair(b, c.X, c.Y)
}

func (c LineTo) String() string { return string(c.appendTo(nil)) }

// RelativeArc is a quarter-corner arc appended after a horizontal or
// vertical line, relative to the line's end point.
// Rotation and large-arc are always zero.
type RelativeArc struct {
	RX, RY float64
	Sweep  bool
	DX, DY float64
}

func (a RelativeArc) appendTo(b []byte) []byte {
	b = append(b, 'a')
	b = AppendRadius(b, a.RX)
	b = append(b, ',')
	b = AppendRadius(b, a.RY)
	b = append(b, " 0 0 "...)
	b = appendFlag(b, a.Sweep)
	b = append(b, ' ')
	return appendPair(b, a.DX, a.DY)
}

// HorizontalLineTo draws a horizontal line to X, optionally followed by a
// relative corner arc.
type HorizontalLineTo struct {
	X   float64
	Arc *RelativeArc
}

func (HorizontalLineTo) isCommand() {}

func (c HorizontalLineTo) appendTo(b []byte) []byte {
	b = append(b, 'H')
	b = AppendNum(b, c.X)
	if c.Arc != nil {
		b = c.Arc.appendTo(b)
	}
	return b
}

func (c HorizontalLineTo) String() string { return string(c.appendTo(nil)) }

// VerticalLineTo draws a vertical line to Y, optionally followed by a
// relative corner arc.
type VerticalLineTo struct {
	Y   float64
	Arc *RelativeArc
}

func (VerticalLineTo) isCommand() {}

func (c VerticalLineTo) appendTo(b []byte) []byte {
	b = append(b, 'V')
	b = AppendNum(b, c.Y)
	if c.Arc != nil {
		b = c.Arc.appendTo(b)
	}
	return b
}

func (c VerticalLineTo) String() string { return string(c.appendTo(nil)) }

// ArcTo draws an elliptical arc to (X, Y).
// Rotation is in degrees.
type ArcTo struct {
	RX, RY   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	X, Y     float64
}

func (ArcTo) isCommand() {}

func (c ArcTo) appendTo(b []byte) []byte {
	b = append(b, 'A')
	b = AppendRadius(b, c.RX)
	b = append(b, ',')
	b = AppendRadius(b, c.RY)
	b = append(b, ' ')
	b = AppendNum(b, c.Rotation)
	b = append(b, ' ')
	b = appendFlag(b, c.LargeArc)
	b = append(b, ' ')
	b = appendFlag(b, c.Sweep)
	b = append(b, ' ')
	return appendPair(b, c.X, c.Y)
}

func (c ArcTo) String() string { return string(c.appendTo(nil)) }

// CubicTo draws a cubic Bezier curve. Only produced by Parse.
type CubicTo struct {
	X1, Y1 float64
	X2, Y2 float64
	X, Y   float64
}

func (CubicTo) isCommand() {}

func (c CubicTo) appendTo(b []byte) []byte {
	b = append(b, 'C')
	b = appendPair(b, c.X1, c.Y1)
	b = append(b, ' ')
	b = appendPair(b, c.X2, c.Y2)
	b = append(b, ' ')
	return appendPair(b, c.X, c.Y)
}

func (c CubicTo) String() string { return string(c.appendTo(nil)) }

// QuadTo draws a quadratic Bezier curve. Only produced by Parse.
type QuadTo struct {
	X1, Y1 float64
	X, Y   float64
}

func (QuadTo) isCommand() {}

func (c QuadTo) appendTo(b []byte) []byte {
	b = append(b, 'Q')
	b = appendPair(b, c.X1, c.Y1)
	b = append(b, ' ')
	return appendPair(b, c.X, c.Y)
}

func (c QuadTo) String() string { return string(c.appendTo(nil)) }

// ClosePath closes the current subpath.
type ClosePath struct{}

func (ClosePath) isCommand() {}

func (ClosePath) appendTo(b []byte) []byte { return append(b, 'Z') }

func (ClosePath) String() string { return "Z" }

// Path is an ordered command sequence.
type Path []Command

// String serializes the commands into one compact path-data string.
func (p Path) String() string {
	b := make([]byte, 0, 16*len(p))
	for _, c := range p {
		b = c.appendTo(b)
	}
	return string(b)
}

func appendPair(b []byte, x, y float64) []byte {
	b = AppendNum(b, x)
	b = append(b, ',')
	return AppendNum(b, y)
}

func appendFlag(b []byte, f bool) []byte {
	if f {
		return append(b, '1')
	}
	return append(b, '0')
}
