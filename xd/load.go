package xd

import (
	"context"

	"github.com/goccy/go-json"
	"gitlab.com/tozd/go/errors"
)

// Well-known archive paths.
const (
	ManifestPath  = "manifest"
	ResourcesPath = "resources/graphics/graphicContent.agc"
	ArtworkEntry  = "artwork"
)

// ErrNoArtwork is returned when the manifest has no artwork entry.
var ErrNoArtwork = errors.Base("xd: manifest has no artwork entry")

// ArtboardPath returns the graphic content path of an artwork entry.
func ArtboardPath(entryPath string) string {
	return ArtworkEntry + "/" + entryPath + "/graphics/graphicContent.agc"
}

// Document is a loaded design document.
type Document struct {
	Manifest  *Manifest
	Resources *Resources
	Artboards []*Artboard
	Archive   Archive
}

// Artboard bundles one manifest entry with its object graph and the shared
// resources graph. Root is the unresolved artboard object.
type Artboard struct {
	Entry     *ManifestEntry
	Graph     *ArtboardGraph
	Resources *Resources
	Root      *Object
	Name      string
	Width     float64
	Height    float64
}

// Load parses the manifest, the resources graph and every artboard graph.
func Load(ctx context.Context, arc Archive) (*Document, error) {
	var manifest Manifest
	if err := decode(arc, ManifestPath, &manifest); err != nil {
		return nil, err
	}

	resources := &Resources{}
	if err := decode(arc, ResourcesPath, resources); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var artwork *ManifestEntry
	for _, e := range manifest.Children {
		if e.Path == ArtworkEntry || e.Name == ArtworkEntry {
			artwork = e
			break
		}
	}
	if artwork == nil {
		return nil, ErrNoArtwork
	}

	doc := &Document{Manifest: &manifest, Resources: resources, Archive: arc}
	for _, entry := range artwork.Children {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ab, err := loadArtboard(arc, entry, resources)
		if err != nil {
			return nil, err
		}
		doc.Artboards = append(doc.Artboards, ab)
	}
	return doc, nil
}

func loadArtboard(arc Archive, entry *ManifestEntry, resources *Resources) (*Artboard, error) {
	graph := &ArtboardGraph{}
	if err := decode(arc, ArtboardPath(entry.Path), graph); err != nil {
		return nil, err
	}

	var root *Object
	for _, o := range graph.Children {
		if o.Type == TypeArtboard {
			root = o
			break
		}
	}
	if root == nil {
		root = &Object{
			ID:       entry.ID,
			Name:     entry.Name,
			Type:     TypeArtboard,
			Artboard: &Group{Children: graph.Children},
		}
	}

	ab := &Artboard{
		Entry:     entry,
		Graph:     graph,
		Resources: resources,
		Root:      root,
		Name:      entry.Name,
	}
	if ab.Name == "" {
		ab.Name = root.Name
	}

	info := resources.Artboards[entry.ID]
	if info == nil {
		info = resources.Artboards[root.ID]
	}
	switch {
	case info != nil:
		ab.Width, ab.Height = info.Width, info.Height
		if info.ViewportHeight != nil {
			ab.Height = *info.ViewportHeight
		}
	case entry.Bounds != nil:
		ab.Width, ab.Height = entry.Bounds.Width, entry.Bounds.Height
		if entry.Viewport != nil && entry.Viewport.Height > 0 {
			ab.Height = entry.Viewport.Height
		}
	default:
		ux := root.UX()
		if ux.ViewportWidth != nil {
			ab.Width = *ux.ViewportWidth
		}
		if ux.ViewportHeight != nil {
			ab.Height = *ux.ViewportHeight
		}
	}
	return ab, nil
}

func decode(arc Archive, name string, v any) error {
	b, err := arc.ReadBytes(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Errorf("xd: decoding %s: %w", name, err)
	}
	return nil
}

// Parse decodes a single object graph, such as one stored in a test fixture.
func Parse(data []byte) (*Object, error) {
	var o Object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, errors.Errorf("xd: decoding object: %w", err)
	}
	return &o, nil
}
