package layout

import (
	"reflect"
	"strings"
	"testing"

	"gitlab.com/tozd/go/errors"
)

func TestAnchors(t *testing.T) {
	xs := []struct {
		left, right bool
		want        AnchorX
	}{
		{true, true, StretchX},
		{false, true, Right},
		{true, false, Left},
		{false, false, Center},
	}
	for _, tt := range xs {
		if got := HorizontalAnchor(tt.left, tt.right); got != tt.want {
			t.Errorf("HorizontalAnchor(%v, %v) = %s, want %s", tt.left, tt.right, got, tt.want)
		}
	}

	ys := []struct {
		top, bottom bool
		want        AnchorY
	}{
		{true, true, StretchY},
		{false, true, Bottom},
		{true, false, Top},
		{false, false, Middle},
	}
	for _, tt := range ys {
		if got := VerticalAnchor(tt.top, tt.bottom); got != tt.want {
			t.Errorf("VerticalAnchor(%v, %v) = %s, want %s", tt.top, tt.bottom, got, tt.want)
		}
	}
}

func sample() *Layout {
	return &Layout{
		Name: "Home",
		Root: RootID,
		Elements: []*Element{
			{ID: 0, Name: "Home", Size: Vec2{360, 640}, AnchorX: Center, AnchorY: Middle, Visible: true, Children: []int{7}},
			{ID: 7, Name: "List", Size: Vec2{300, 400}, AnchorX: StretchX, AnchorY: Top, Visible: true,
				Components: Components{
					Scroll{Vertical: true},
					VerticalList{Spacing: 5, SpecialSpacings: []SpecialSpacing{{Item1: "A", Item2: "B", Spacing: 12}}},
					Image{Sprite: "bg_1a2b.png"},
					Button{},
				}},
		},
		Assets: []*Asset{{FileName: "bg_1a2b.png", Hash: 42, Size: Vec2{300, 400}, Border: &Border{Left: 4}}},
	}
}

func TestComponentsJSON(t *testing.T) {
	b, err := sample().Marshal()
	if err != nil {
		t.Fatal(err)
	}
	s := strings.Join(strings.Fields(string(b)), "")
	for _, want := range []string{`"type":"scroll"`, `"type":"verticalList"`, `"item1":"A"`, `"type":"button"`} {
		if !strings.Contains(s, want) {
			t.Errorf("Marshal() missing %s in\n%s", want, s)
		}
	}

	back, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(back.Elements[1].Components, sample().Elements[1].Components) {
		t.Errorf("components = %#v, want %#v", back.Elements[1].Components, sample().Elements[1].Components)
	}
}

func TestUnknownComponent(t *testing.T) {
	_, err := Unmarshal([]byte(`{"elements":[{"id":0,"components":[{"type":"hologram"}]}]}`))
	if !errors.Is(err, ErrUnknownComponent) {
		t.Errorf("Unmarshal() error = %v, want ErrUnknownComponent", err)
	}
}

func TestComputeHash(t *testing.T) {
	a, err := sample().ComputeHash()
	if err != nil {
		t.Fatal(err)
	}
	l := sample()
	l.Hash = 99
	b, err := l.ComputeHash()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("ComputeHash() depends on Hash field: %x != %x", a, b)
	}
	l.Elements[1].Size.X = 301
	c, _ := l.ComputeHash()
	if c == a {
		t.Error("ComputeHash() unchanged after edit")
	}
}

func TestValidate(t *testing.T) {
	if err := sample().Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(l *Layout)
		want   error
	}{
		{"no root", func(l *Layout) { l.Elements[0].ID = 3 }, ErrNoRoot},
		{"duplicate", func(l *Layout) { l.Elements[1].ID = 0 }, ErrDuplicate},
		{"dangling", func(l *Layout) { l.Elements[0].Children = []int{7, 8} }, ErrDangling},
		{"orphan", func(l *Layout) { l.Elements[0].Children = nil }, ErrNotTree},
		{"two parents", func(l *Layout) { l.Elements[1].Children = []int{7} }, ErrNotTree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sample()
			tt.mutate(l)
			if err := l.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
