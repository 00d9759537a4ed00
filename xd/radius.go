package xd

import (
	"bytes"

	"github.com/goccy/go-json"
	"gitlab.com/tozd/go/errors"
)

// Radius is a corner radius that arrives either as one number or as a
// per-corner array (top-left, top-right, bottom-right, bottom-left).
// For circles it holds the circle radius.
type Radius struct {
	Corners   [4]float64
	PerCorner bool
	Set       bool
}

// Scalar returns a uniform radius.
func Scalar(r float64) Radius {
	return Radius{Corners: [4]float64{r, r, r, r}, Set: true}
}

// PerCornerRadius returns a per-corner radius.
func PerCornerRadius(tl, tr, br, bl float64) Radius {
	return Radius{Corners: [4]float64{tl, tr, br, bl}, PerCorner: true, Set: true}
}

// Value returns the first corner, which is the radius for scalar values.
func (r Radius) Value() float64 {
	return r.Corners[0]
}

// IsZero reports whether no radius was given. Used by omitempty.
func (r Radius) IsZero() bool {
	return !r.Set
}

// UnmarshalJSON accepts a number or an array of one or four numbers.
func (r *Radius) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Radius{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var arr []float64
		if err := json.Unmarshal(data, &arr); err != nil {
			return errors.Errorf("xd: corner radius: %w", err)
		}
		switch len(arr) {
		case 1:
			*r = Scalar(arr[0])
		case 4:
			*r = PerCornerRadius(arr[0], arr[1], arr[2], arr[3])
		default:
			return errors.Errorf("xd: corner radius: want 1 or 4 values, got %d", len(arr))
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Errorf("xd: corner radius: %w", err)
	}
	*r = Scalar(v)
	return nil
}

// MarshalJSON writes the array form for per-corner radii and a number otherwise.
func (r Radius) MarshalJSON() ([]byte, error) {
	if !r.Set {
		return []byte("null"), nil
	}
	if r.PerCorner {
		return json.Marshal(r.Corners[:])
	}
	return json.Marshal(r.Corners[0])
}
