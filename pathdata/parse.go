package pathdata

import (
	"fmt"
	"strconv"

	"gitlab.com/tozd/go/errors"
)

// ErrSyntax is returned by Parse for malformed path data.
var ErrSyntax = errors.Base("pathdata: invalid path data")

// Parse converts a path-data string into absolute commands.
// Relative commands are resolved against the current point, smooth curves
// are expanded into explicit control points, and implicit line-tos after a
// move are made explicit.
func Parse(d string) (Path, error) {
	sc := &scanner{s: d}
	var out Path
	var cx, cy, sx, sy float64 // current point, subpath start
	var lcx, lcy float64       // last control point
	var last byte
	for {
		sc.skipSep()
		if sc.done() {
			return out, nil
		}
		op := sc.s[sc.pos]
		if !isCommandLetter(op) {
			return nil, sc.errorf("expected command, got %q", op)
		}
		sc.pos++
		rel := op >= 'a'
		ox, oy := 0.0, 0.0
		if rel {
			op -= 'a' - 'A'
		}

		if op == 'Z' {
			out = append(out, ClosePath{})
			cx, cy = sx, sy
			last = 'Z'
			continue
		}

		for i := 0; i == 0 || sc.more(); i++ {
			if rel {
				ox, oy = cx, cy
			}
			switch op {
			case 'M':
				x, y, err := sc.pair()
				if err != nil {
					return nil, err
				}
				x, y = x+ox, y+oy
				if i == 0 {
					out = append(out, MoveTo{X: x, Y: y})
					sx, sy = x, y
				} else {
					out = append(out, LineTo{X: x, Y: y})
				}
				cx, cy = x, y
			case 'L':
				x, y, err := sc.pair()
				if err != nil {
					return nil, err
				}
				cx, cy = x+ox, y+oy
				out = append(out, LineTo{X: cx, Y: cy})
			case 'H':
				x, err := sc.number()
				if err != nil {
					return nil, err
				}
				cx = x + ox
				out = append(out, HorizontalLineTo{X: cx})
			case 'V':
				y, err := sc.number()
				if err != nil {
					return nil, err
				}
				cy = y + oy
				out = append(out, VerticalLineTo{Y: cy})
			case 'C', 'S':
				var x1, y1 float64
				if op == 'C' {
					a, b, err := sc.pair()
					if err != nil {
						return nil, err
					}
					x1, y1 = a+ox, b+oy
				} else {
					x1, y1 = reflect(cx, cy, lcx, lcy, last == 'C' || last == 'S')
				}
				x2, y2, err := sc.pair()
				if err != nil {
					return nil, err
				}
				x, y, err := sc.pair()
				if err != nil {
					return nil, err
				}
				c := CubicTo{X1: x1, Y1: y1, X2: x2 + ox, Y2: y2 + oy, X: x + ox, Y: y + oy}
				out = append(out, c)
				lcx, lcy = c.X2, c.Y2
				cx, cy = c.X, c.Y
			case 'Q', 'T':
				var x1, y1 float64
				if op == 'Q' {
					a, b, err := sc.pair()
					if err != nil {
						return nil, err
					}
					x1, y1 = a+ox, b+oy
				} else {
					x1, y1 = reflect(cx, cy, lcx, lcy, last == 'Q' || last == 'T')
				}
				x, y, err := sc.pair()
				if err != nil {
					return nil, err
				}
				c := QuadTo{X1: x1, Y1: y1, X: x + ox, Y: y + oy}
				out = append(out, c)
				lcx, lcy = c.X1, c.Y1
				cx, cy = c.X, c.Y
			case 'A':
				rx, ry, err := sc.pair()
				if err != nil {
					return nil, err
				}
				rot, err := sc.number()
				if err != nil {
					return nil, err
				}
				large, err := sc.flag()
				if err != nil {
					return nil, err
				}
				sweep, err := sc.flag()
				if err != nil {
					return nil, err
				}
				x, y, err := sc.pair()
				if err != nil {
					return nil, err
				}
				cx, cy = x+ox, y+oy
				out = append(out, ArcTo{RX: rx, RY: ry, Rotation: rot, LargeArc: large, Sweep: sweep, X: cx, Y: cy})
			default:
				return nil, sc.errorf("unsupported command %q", op)
			}
			last = op
		}
	}
}

func reflect(cx, cy, lx, ly float64, smooth bool) (float64, float64) {
	if !smooth {
		return cx, cy
	}
	return 2*cx - lx, 2*cy - ly
}

func isCommandLetter(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

type scanner struct {
	s   string
	pos int
}

func (sc *scanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *scanner) skipSep() {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

// more reports whether another argument group follows.
func (sc *scanner) more() bool {
	sc.skipSep()
	return !sc.done() && !isCommandLetter(sc.s[sc.pos])
}

func (sc *scanner) number() (float64, error) {
	sc.skipSep()
	start := sc.pos
	if sc.pos < len(sc.s) && (sc.s[sc.pos] == '+' || sc.s[sc.pos] == '-') {
		sc.pos++
	}
	digits := sc.digits()
	if sc.pos < len(sc.s) && sc.s[sc.pos] == '.' {
		sc.pos++
		digits += sc.digits()
	}
	if digits == 0 {
		sc.pos = start
		return 0, sc.errorf("expected number")
	}
	if sc.pos < len(sc.s) && (sc.s[sc.pos] == 'e' || sc.s[sc.pos] == 'E') {
		mark := sc.pos
		sc.pos++
		if sc.pos < len(sc.s) && (sc.s[sc.pos] == '+' || sc.s[sc.pos] == '-') {
			sc.pos++
		}
		if sc.digits() == 0 {
			sc.pos = mark
		}
	}
	v, err := strconv.ParseFloat(sc.s[start:sc.pos], 64)
	if err != nil {
		return 0, errors.Errorf("%w at offset %d: %v", ErrSyntax, start, err)
	}
	return v, nil
}

func (sc *scanner) digits() int {
	n := 0
	for sc.pos < len(sc.s) && sc.s[sc.pos] >= '0' && sc.s[sc.pos] <= '9' {
		sc.pos++
		n++
	}
	return n
}

func (sc *scanner) pair() (float64, float64, error) {
	x, err := sc.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := sc.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// flag reads an arc flag, which may be packed without separators ("011,1").
func (sc *scanner) flag() (bool, error) {
	sc.skipSep()
	if sc.done() {
		return false, sc.errorf("expected flag")
	}
	switch sc.s[sc.pos] {
	case '0':
		sc.pos++
		return false, nil
	case '1':
		sc.pos++
		return true, nil
	}
	return false, sc.errorf("expected flag, got %q", sc.s[sc.pos])
}

func (sc *scanner) errorf(format string, args ...any) error {
	return errors.Errorf("%w at offset %d: %s", ErrSyntax, sc.pos, fmt.Sprintf(format, args...))
}
