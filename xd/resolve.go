package xd

import (
	"slices"

	"github.com/gogpu/xdlayout/diag"
)

// Resolver replaces symbol references with merged copies of their sources
// and runs import triggers on every resulting object.
type Resolver struct {
	sources  map[string]*Object
	triggers []Trigger
}

// NewResolver indexes the symbol library once, in pre-order. The first
// object registered under a key wins.
func NewResolver(symbols []*Object, triggers ...Trigger) *Resolver {
	r := &Resolver{sources: map[string]*Object{}, triggers: triggers}
	var walk func(o *Object)
	walk = func(o *Object) {
		if o == nil {
			return
		}
		r.register(o.ID, o)
		r.register(o.GUID, o)
		for _, c := range o.Children() {
			walk(c)
		}
	}
	for _, s := range symbols {
		walk(s)
	}
	return r
}

func (r *Resolver) register(key string, o *Object) {
	if key == "" {
		return
	}
	if _, ok := r.sources[key]; !ok {
		r.sources[key] = o
	}
}

// Source returns the registered object for key.
func (r *Resolver) Source(key string) (*Object, bool) {
	o, ok := r.sources[key]
	return o, ok
}

// Resolve returns a new tree in which no object has type syncRef. The input
// tree is not modified. A nil result means a trigger deleted the root.
func (r *Resolver) Resolve(root *Object) (*Object, error) {
	return r.resolve(root, nil)
}

func (r *Resolver) resolve(obj *Object, chain []string) (*Object, error) {
	var out *Object
	if obj.Type == TypeSymbolReference {
		merged, next, err := r.dereference(obj, chain)
		if err != nil {
			return nil, err
		}
		out, chain = merged, next
	} else {
		out = obj.Clone()
	}

	out = runTriggers(r.triggers, out)
	if out == nil {
		return nil, nil
	}

	if out.Group != nil || out.Artboard != nil {
		children, err := r.resolveAll(out.Children(), chain)
		if err != nil {
			return nil, err
		}
		out = out.WithChildren(children)
	}
	if out.Shape != nil && len(out.Shape.Children) > 0 {
		children, err := r.resolveAll(out.Shape.Children, chain)
		if err != nil {
			return nil, err
		}
		shape := *out.Shape
		shape.Children = children
		out.Shape = &shape
	}
	if ux := out.UX(); ux.ClipPathResources != nil && len(ux.ClipPathResources.Children) > 0 {
		children, err := r.resolveAll(ux.ClipPathResources.Children, chain)
		if err != nil {
			return nil, err
		}
		clip := *ux.ClipPathResources
		clip.Children = children
		uxCopy := *ux
		uxCopy.ClipPathResources = &clip
		out.Meta = &Meta{UX: &uxCopy}
	}
	return out, nil
}

func (r *Resolver) resolveAll(objs []*Object, chain []string) ([]*Object, error) {
	out := make([]*Object, 0, len(objs))
	for _, c := range objs {
		rc, err := r.resolve(c, chain)
		if err != nil {
			return nil, err
		}
		if rc != nil {
			out = append(out, rc)
		}
	}
	return out, nil
}

// dereference merges ref with its source, following chained references.
// It returns the chain of sources entered so that nested references back
// into the same symbol are detected.
func (r *Resolver) dereference(ref *Object, chain []string) (*Object, []string, error) {
	key := ref.SyncSourceGUID
	src, ok := r.sources[key]
	if !ok || key == "" {
		return nil, nil, diag.Fatal(ref.Node(), diag.ReasonUnresolvedReference, "no symbol with id %q", key)
	}
	if slices.Contains(chain, key) {
		return nil, nil, diag.Fatal(ref.Node(), diag.ReasonReferenceCycle, "symbol %q references itself", key)
	}
	chain = append(chain[:len(chain):len(chain)], key)

	if src.Type == TypeSymbolReference {
		var err error
		src, chain, err = r.dereference(src, chain)
		if err != nil {
			return nil, nil, err
		}
	}
	return mergeObject(ref, src), chain, nil
}

// mergeObject takes every field from ref when set and from src otherwise.
// Name, type and shape always come from src.
func mergeObject(ref, src *Object) *Object {
	m := &Object{
		ID:        orString(ref.ID, src.ID),
		GUID:      orString(ref.GUID, src.GUID),
		Visible:   orPtr(ref.Visible, src.Visible),
		Transform: orPtr(ref.Transform, src.Transform),
		Style:     mergeStyle(ref.Style, src.Style),
		Text:      orPtr(ref.Text, src.Text),
		Group:     orPtr(ref.Group, src.Group),
		Artboard:  orPtr(ref.Artboard, src.Artboard),
		Meta:      mergeMeta(ref.Meta, src.Meta),
	}
	m.Name = src.Name
	m.Type = src.Type
	m.Shape = src.Shape
	return m
}

func mergeStyle(ref, src *Style) *Style {
	if ref == nil || src == nil {
		return orPtr(ref, src)
	}
	return &Style{
		Fill:           orPtr(ref.Fill, src.Fill),
		Stroke:         orPtr(ref.Stroke, src.Stroke),
		Opacity:        orPtr(ref.Opacity, src.Opacity),
		BlendMode:      orString(ref.BlendMode, src.BlendMode),
		Isolation:      orString(ref.Isolation, src.Isolation),
		Font:           orPtr(ref.Font, src.Font),
		TextAttributes: orPtr(ref.TextAttributes, src.TextAttributes),
	}
}

func mergeMeta(ref, src *Meta) *Meta {
	if ref == nil || src == nil {
		return orPtr(ref, src)
	}
	return &Meta{UX: mergeUX(ref.UX, src.UX)}
}

func mergeUX(ref, src *UX) *UX {
	if ref == nil || src == nil {
		return orPtr(ref, src)
	}
	return &UX{
		SymbolID:          orString(ref.SymbolID, src.SymbolID),
		ConstraintLeft:    orPtr(ref.ConstraintLeft, src.ConstraintLeft),
		ConstraintRight:   orPtr(ref.ConstraintRight, src.ConstraintRight),
		ConstraintTop:     orPtr(ref.ConstraintTop, src.ConstraintTop),
		ConstraintBottom:  orPtr(ref.ConstraintBottom, src.ConstraintBottom),
		Rotation:          orPtr(ref.Rotation, src.Rotation),
		ScrollingType:     orString(ref.ScrollingType, src.ScrollingType),
		ViewportWidth:     orPtr(ref.ViewportWidth, src.ViewportWidth),
		ViewportHeight:    orPtr(ref.ViewportHeight, src.ViewportHeight),
		OffsetX:           orPtr(ref.OffsetX, src.OffsetX),
		OffsetY:           orPtr(ref.OffsetY, src.OffsetY),
		RepeatGrid:        orPtr(ref.RepeatGrid, src.RepeatGrid),
		ClipPathResources: orPtr(ref.ClipPathResources, src.ClipPathResources),
		MarkedForExport:   ref.MarkedForExport || src.MarkedForExport,
	}
}

func orPtr[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}

func orString(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
