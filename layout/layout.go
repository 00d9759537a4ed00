// Package layout defines the engine-neutral output of an import: a flat
// registry of positioned elements forming one tree, plus the image assets
// the elements reference.
package layout

import (
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"gitlab.com/tozd/go/errors"
)

// RootID is the id of the root element.
const RootID = 0

// AnchorX is the horizontal anchoring of an element in its parent.
type AnchorX string

// Horizontal anchors.
const (
	Left     AnchorX = "left"
	Center   AnchorX = "center"
	Right    AnchorX = "right"
	StretchX AnchorX = "stretch"
)

// AnchorY is the vertical anchoring of an element in its parent.
type AnchorY string

// Vertical anchors.
const (
	Top      AnchorY = "top"
	Middle   AnchorY = "middle"
	Bottom   AnchorY = "bottom"
	StretchY AnchorY = "stretch"
)

// HorizontalAnchor derives the anchor from the left/right pin constraints.
func HorizontalAnchor(left, right bool) AnchorX {
	switch {
	case left && right:
		return StretchX
	case right:
		return Right
	case left:
		return Left
	}
	return Center
}

// VerticalAnchor derives the anchor from the top/bottom pin constraints.
func VerticalAnchor(top, bottom bool) AnchorY {
	switch {
	case top && bottom:
		return StretchY
	case bottom:
		return Bottom
	case top:
		return Top
	}
	return Middle
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is one output node. Position is the element center relative to
// the parent center, with Y pointing up.
type Element struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Position   Vec2       `json:"position"`
	Size       Vec2       `json:"size"`
	AnchorX    AnchorX    `json:"anchorX"`
	AnchorY    AnchorY    `json:"anchorY"`
	Rotation   float64    `json:"rotation"`
	Visible    bool       `json:"visible"`
	Components Components `json:"components"`
	Children   []int      `json:"children"`
}

// Border is a nine-slice border in pixels.
type Border struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Asset is a named image the layout references.
type Asset struct {
	FileName string  `json:"fileName"`
	Hash     uint64  `json:"hash"`
	Size     Vec2    `json:"size"`
	Border   *Border `json:"border,omitempty"`
	UserData string  `json:"userData,omitempty"`
}

// Layout is the result of importing one artboard.
type Layout struct {
	Name     string     `json:"name"`
	Hash     uint64     `json:"hash"`
	Root     int        `json:"root"`
	Elements []*Element `json:"elements"`
	Assets   []*Asset   `json:"assets"`
}

// Element returns the element with the given id, or nil.
func (l *Layout) Element(id int) *Element {
	for _, e := range l.Elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Asset returns the asset with the given file name, or nil.
func (l *Layout) Asset(fileName string) *Asset {
	for _, a := range l.Assets {
		if a.FileName == fileName {
			return a
		}
	}
	return nil
}

// Layout validation errors.
var (
	ErrNoRoot    = errors.Base("layout: root element missing")
	ErrDuplicate = errors.Base("layout: duplicate element id")
	ErrDangling  = errors.Base("layout: child id has no element")
	ErrNotTree   = errors.Base("layout: element has zero or several parents")
)

// Validate checks that the elements form a single tree rooted at Root.
func (l *Layout) Validate() error {
	ids := make(map[int]bool, len(l.Elements))
	for _, e := range l.Elements {
		if ids[e.ID] {
			return errors.Errorf("%w: %d", ErrDuplicate, e.ID)
		}
		ids[e.ID] = true
	}
	if !ids[l.Root] {
		return ErrNoRoot
	}
	parents := make(map[int]int, len(l.Elements))
	for _, e := range l.Elements {
		for _, c := range e.Children {
			if !ids[c] {
				return errors.Errorf("%w: %d", ErrDangling, c)
			}
			parents[c]++
		}
	}
	for _, e := range l.Elements {
		want := 1
		if e.ID == l.Root {
			want = 0
		}
		if parents[e.ID] != want {
			return errors.Errorf("%w: %d (%q)", ErrNotTree, e.ID, e.Name)
		}
	}
	return nil
}

// Marshal encodes the layout as indented JSON.
func (l *Layout) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Errorf("layout: encoding: %w", err)
	}
	return b, nil
}

// ComputeHash returns the xxhash of the layout encoded with a zero Hash.
func (l *Layout) ComputeHash() (uint64, error) {
	c := *l
	c.Hash = 0
	b, err := json.Marshal(&c)
	if err != nil {
		return 0, errors.Errorf("layout: encoding: %w", err)
	}
	return xxhash.Sum64(b), nil
}

// Unmarshal decodes a layout written by Marshal.
func Unmarshal(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Errorf("layout: decoding: %w", err)
	}
	return &l, nil
}
