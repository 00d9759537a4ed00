package layout

import (
	"bytes"

	"github.com/goccy/go-json"
	"gitlab.com/tozd/go/errors"
)

// Component is a typed payload attached to an element.
type Component interface {
	// Type returns the tag written to the "type" field.
	Type() string
}

// Image draws a sprite asset.
type Image struct {
	Sprite string `json:"sprite,omitempty"`
	Color  string `json:"color,omitempty"`
	FlipX  bool   `json:"flipX,omitempty"`
	FlipY  bool   `json:"flipY,omitempty"`
}

// Text displays a string.
type Text struct {
	Text          string  `json:"text"`
	Font          string  `json:"font,omitempty"`
	Size          float64 `json:"size"`
	Color         string  `json:"color,omitempty"`
	Align         string  `json:"align,omitempty"`
	Wrap          bool    `json:"wrap,omitempty"`
	LineHeight    float64 `json:"lineHeight,omitempty"`
	LetterSpacing float64 `json:"letterSpacing,omitempty"`
}

// Alpha applies group opacity.
type Alpha struct {
	Alpha float64 `json:"alpha"`
}

// Button marks an interactive element.
type Button struct{}

// SpecialSpacing overrides the list spacing between two named items.
type SpecialSpacing struct {
	Item1   string  `json:"item1"`
	Item2   string  `json:"item2"`
	Spacing float64 `json:"spacing"`
}

// VerticalList is a virtualized vertical list built from one template.
type VerticalList struct {
	Spacing         float64          `json:"spacing"`
	PaddingTop      float64          `json:"paddingTop"`
	PaddingBottom   float64          `json:"paddingBottom"`
	SpecialSpacings []SpecialSpacing `json:"specialSpacings,omitempty"`
}

// HorizontalList is a virtualized horizontal list built from one template.
type HorizontalList struct {
	Spacing         float64          `json:"spacing"`
	PaddingLeft     float64          `json:"paddingLeft"`
	PaddingRight    float64          `json:"paddingRight"`
	SpecialSpacings []SpecialSpacing `json:"specialSpacings,omitempty"`
}

// VerticalLayout stacks children top to bottom.
type VerticalLayout struct {
	Spacing float64 `json:"spacing"`
}

// HorizontalLayout stacks children left to right.
type HorizontalLayout struct {
	Spacing float64 `json:"spacing"`
}

// GridLayout places children in rows and columns.
type GridLayout struct {
	SpacingX float64 `json:"spacingX"`
	SpacingY float64 `json:"spacingY"`
}

// Scroll makes the element a scroll viewport.
type Scroll struct {
	Vertical   bool `json:"vertical"`
	Horizontal bool `json:"horizontal"`
}

// Scrollbar marks a scrollbar.
type Scrollbar struct {
	Direction string `json:"direction"`
}

// InputField marks a text input.
type InputField struct{}

// Toggle marks a two-state toggle.
type Toggle struct{}

// Mask clips children to the element's graphic.
type Mask struct{}

func (Image) Type() string            { return "image" }
func (Text) Type() string             { return "text" }
func (Alpha) Type() string            { return "alpha" }
func (Button) Type() string           { return "button" }
func (VerticalList) Type() string     { return "verticalList" }
func (HorizontalList) Type() string   { return "horizontalList" }
func (VerticalLayout) Type() string   { return "verticalLayout" }
func (HorizontalLayout) Type() string { return "horizontalLayout" }
func (GridLayout) Type() string       { return "gridLayout" }
func (Scroll) Type() string           { return "scroll" }
func (Scrollbar) Type() string        { return "scrollbar" }
func (InputField) Type() string       { return "inputField" }
func (Toggle) Type() string           { return "toggle" }
func (Mask) Type() string             { return "mask" }

var registry = map[string]func() Component{
	"image":            func() Component { return &Image{} },
	"text":             func() Component { return &Text{} },
	"alpha":            func() Component { return &Alpha{} },
	"button":           func() Component { return &Button{} },
	"verticalList":     func() Component { return &VerticalList{} },
	"horizontalList":   func() Component { return &HorizontalList{} },
	"verticalLayout":   func() Component { return &VerticalLayout{} },
	"horizontalLayout": func() Component { return &HorizontalLayout{} },
	"gridLayout":       func() Component { return &GridLayout{} },
	"scroll":           func() Component { return &Scroll{} },
	"scrollbar":        func() Component { return &Scrollbar{} },
	"inputField":       func() Component { return &InputField{} },
	"toggle":           func() Component { return &Toggle{} },
	"mask":             func() Component { return &Mask{} },
}

// ErrUnknownComponent is returned when decoding an unregistered type tag.
var ErrUnknownComponent = errors.Base("layout: unknown component type")

// Components is an ordered component list encoded with type tags.
type Components []Component

// MarshalJSON writes every component as an object with a leading "type".
func (cs Components) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, c := range cs {
		if i > 0 {
			buf.WriteByte(',')
		}
		body, err := json.Marshal(c)
		if err != nil {
			return nil, errors.Errorf("layout: encoding %s component: %w", c.Type(), err)
		}
		tag, err := json.Marshal(c.Type())
		if err != nil {
			return nil, err
		}
		buf.WriteString(`{"type":`)
		buf.Write(tag)
		if inner := bytes.TrimSpace(body[1 : len(body)-1]); len(inner) > 0 {
			buf.WriteByte(',')
			buf.Write(inner)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a list written by MarshalJSON.
func (cs *Components) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Components, 0, len(raw))
	for _, r := range raw {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(r, &head); err != nil {
			return err
		}
		newComponent, ok := registry[head.Type]
		if !ok {
			return errors.Errorf("%w: %q", ErrUnknownComponent, head.Type)
		}
		c := newComponent()
		if err := json.Unmarshal(r, c); err != nil {
			return errors.Errorf("layout: decoding %s component: %w", head.Type, err)
		}
		out = append(out, deref(c))
	}
	*cs = out
	return nil
}

// deref returns the value form so decoded lists compare equal to built ones.
func deref(c Component) Component {
	switch c := c.(type) {
	case *Image:
		return *c
	case *Text:
		return *c
	case *Alpha:
		return *c
	case *Button:
		return *c
	case *VerticalList:
		return *c
	case *HorizontalList:
		return *c
	case *VerticalLayout:
		return *c
	case *HorizontalLayout:
		return *c
	case *GridLayout:
		return *c
	case *Scroll:
		return *c
	case *Scrollbar:
		return *c
	case *InputField:
		return *c
	case *Toggle:
		return *c
	case *Mask:
		return *c
	}
	return c
}
