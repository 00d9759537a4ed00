package pathdata

// Builder provides a fluent interface for path construction.
// All methods return the builder for chaining.
type Builder struct {
	cmds Path
}

// Build starts a new path builder.
func Build() *Builder {
	return &Builder{cmds: make(Path, 0, 12)}
}

// M moves to (x, y).
func (b *Builder) M(x, y float64) *Builder {
	b.cmds = append(b.cmds, MoveTo{X: x, Y: y})
	return b
}

// L draws a line to (x, y).
func (b *Builder) L(x, y float64) *Builder {
	b.cmds = append(b.cmds, LineTo{X: x, Y: y})
	return b
}

// H draws a horizontal line to x.
func (b *Builder) H(x float64) *Builder {
	b.cmds = append(b.cmds, HorizontalLineTo{X: x})
	return b
}

// V draws a vertical line to y.
func (b *Builder) V(y float64) *Builder {
	b.cmds = append(b.cmds, VerticalLineTo{Y: y})
	return b
}

// HArc draws a horizontal line to x followed by a clockwise quarter arc of
// radius r that ends (dx, dy) away. A zero radius emits the line only.
func (b *Builder) HArc(x, r, dx, dy float64) *Builder {
	c := HorizontalLineTo{X: x}
	if r > 0 {
		c.Arc = &RelativeArc{RX: r, RY: r, Sweep: true, DX: dx, DY: dy}
	}
	b.cmds = append(b.cmds, c)
	return b
}

// VArc draws a vertical line to y followed by a clockwise quarter arc of
// radius r that ends (dx, dy) away. A zero radius emits the line only.
func (b *Builder) VArc(y, r, dx, dy float64) *Builder {
	c := VerticalLineTo{Y: y}
	if r > 0 {
		c.Arc = &RelativeArc{RX: r, RY: r, Sweep: true, DX: dx, DY: dy}
	}
	b.cmds = append(b.cmds, c)
	return b
}

// A draws an elliptical arc to (x, y).
func (b *Builder) A(rx, ry, rotation float64, large, sweep bool, x, y float64) *Builder {
	b.cmds = append(b.cmds, ArcTo{RX: rx, RY: ry, Rotation: rotation, LargeArc: large, Sweep: sweep, X: x, Y: y})
	return b
}

// Z closes the current subpath.
func (b *Builder) Z() *Builder {
	b.cmds = append(b.cmds, ClosePath{})
	return b
}

// Path returns the constructed commands.
func (b *Builder) Path() Path {
	return b.cmds
}
