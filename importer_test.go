package xdlayout

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"gitlab.com/tozd/go/errors"

	"github.com/gogpu/xdlayout/container"
	"github.com/gogpu/xdlayout/convert"
	"github.com/gogpu/xdlayout/diag"
	"github.com/gogpu/xdlayout/layout"
	"github.com/gogpu/xdlayout/xd"
)

const testManifest = `{"name": "doc", "children": [
	{"path": "artwork", "name": "artwork", "children": [
		{"id": "ab-1", "name": "Home", "path": "home"},
		{"id": "ab-2", "name": "Settings", "path": "settings"}
	]}
]}`

const testResources = `{
	"resources": {"meta": {"ux": {"symbols": [
		{"id": "sym-box", "type": "shape", "name": "Box",
		 "style": {"fill": {"type": "solid", "color": {"value": {"r": 255, "g": 0, "b": 0}}}},
		 "shape": {"type": "rect", "width": 100, "height": 50}}
	]}}},
	"artboards": {
		"ab-1": {"name": "Home", "width": 360, "height": 640},
		"ab-2": {"name": "Settings", "width": 360, "height": 640}
	}
}`

const testHome = `{"children": [
	{"id": "ab-1", "type": "artboard", "name": "Home", "artboard": {"children": [
		{"id": "box-1", "type": "syncRef", "syncSourceGuid": "sym-box",
		 "transform": {"a": 1, "b": 0, "c": 0, "d": 1, "tx": 10, "ty": 20}},
		{"id": "hidden", "type": "shape", "name": "Hidden", "visible": false,
		 "style": {"fill": {"type": "solid", "color": {"value": {"r": 0, "g": 0, "b": 0}}}},
		 "shape": {"type": "rect", "width": 5, "height": 5}}
	]}}
]}`

const testSettings = `{"children": [
	{"id": "ab-2", "type": "artboard", "name": "Settings", "artboard": {"children": [
		{"id": "fancy", "type": "shape", "name": "Fancy",
		 "style": {"fill": {"type": "gradient", "gradient": {"ref": "missing", "x2": 1}}},
		 "shape": {"type": "rect", "width": 20, "height": 20}}
	]}}
]}`

func testArchive() xd.MemArchive {
	return xd.MemArchive{
		xd.ManifestPath:             []byte(testManifest),
		xd.ResourcesPath:            []byte(testResources),
		xd.ArtboardPath("home"):     []byte(testHome),
		xd.ArtboardPath("settings"): []byte(testSettings),
	}
}

func TestImport(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		artboards []string
		elements  int
	}{
		{name: "all", artboards: []string{"Home", "Settings"}, elements: 3},
		{name: "skip invisible", opts: []Option{WithTriggers(xd.SkipInvisible)}, artboards: []string{"Home", "Settings"}, elements: 2},
		{name: "selected", opts: []Option{WithArtboards("Home"), WithConcurrency(1)}, artboards: []string{"Home"}, elements: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(tt.opts...).Import(context.Background(), testArchive())
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if len(res.Artboards) != len(tt.artboards) {
				t.Fatalf("len(Artboards) = %d, want %d", len(res.Artboards), len(tt.artboards))
			}
			for i, name := range tt.artboards {
				if got := res.Artboards[i].Name; got != name {
					t.Errorf("Artboards[%d].Name = %q, want %q", i, got, name)
				}
			}
			home := res.Artboards[0].Layout
			if got := len(home.Elements); got != tt.elements {
				t.Errorf("len(Home.Elements) = %d, want %d", got, tt.elements)
			}
			box := home.Elements[1]
			if box.Name != "Box" || box.Size != (layout.Vec2{X: 100, Y: 50}) {
				t.Errorf("box = %q %v, want Box 100x50", box.Name, box.Size)
			}
		})
	}
}

func TestImportWarnings(t *testing.T) {
	res, err := New().Import(context.Background(), testArchive())
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	ws := res.Warnings()
	if len(ws) != 1 || ws[0].Node.Name != "Fancy" {
		t.Fatalf("Warnings() = %v, want one warning on Fancy", ws)
	}

	_, err = New(WithStrict(true)).Import(context.Background(), testArchive())
	var w diag.Warning
	if !errors.As(err, &w) {
		t.Fatalf("strict Import() error = %v, want a warning", err)
	}
	if !strings.Contains(err.Error(), "Settings") {
		t.Errorf("strict Import() error = %q, want it to name the artboard", err)
	}
}

func TestImportErrors(t *testing.T) {
	if _, err := New(WithArtboards("Nope")).Import(context.Background(), testArchive()); !errors.Is(err, ErrArtboardNotFound) {
		t.Errorf("Import() error = %v, want ErrArtboardNotFound", err)
	}

	arc := testArchive()
	arc[xd.ArtboardPath("home")] = []byte(strings.Replace(testHome, `"sym-box"`, `"sym-gone"`, 1))
	_, err := New().Import(context.Background(), arc)
	if !diag.IsReason(err, diag.ReasonUnresolvedReference) {
		t.Errorf("Import() error = %v, want unresolved reference", err)
	}

	removeAll := xd.TriggerFunc(func(*xd.Object) *xd.Object { return nil })
	if _, err := New(WithTriggers(removeAll)).Import(context.Background(), testArchive()); err == nil {
		t.Error("Import() with every object removed succeeded")
	}
}

func TestImportTriggersSequential(t *testing.T) {
	var seen []string
	record := xd.TriggerFunc(func(obj *xd.Object) *xd.Object {
		seen = append(seen, obj.ID)
		return obj
	})
	res, err := New(WithTriggers(record), WithConcurrency(4)).Import(context.Background(), testArchive())
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(res.Artboards) != 2 {
		t.Fatalf("len(Artboards) = %d, want 2", len(res.Artboards))
	}
	for _, id := range []string{"ab-1", "hidden", "ab-2", "fancy"} {
		if !slices.Contains(seen, id) {
			t.Errorf("trigger did not see %q in %v", id, seen)
		}
	}
}

func TestImportBundle(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	res, err := New(WithLogger(logger), WithFormat(convert.FormatSVG)).Import(context.Background(), testArchive())
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if !strings.Contains(logs.String(), "artboard=Home") {
		t.Errorf("logs = %q, want per-artboard attributes", logs.String())
	}

	var buf bytes.Buffer
	if err := container.Write(context.Background(), &buf, res.Entries()); err != nil {
		t.Fatalf("container.Write() error: %v", err)
	}
	arc, err := xd.ReadZip(context.Background(), &buf)
	if err != nil {
		t.Fatalf("ReadZip() error: %v", err)
	}
	for _, ab := range res.Artboards {
		if _, err := arc.ReadBytes(ab.Name + "/" + container.LayoutFile); err != nil {
			t.Errorf("%s layout missing: %v", ab.Name, err)
		}
		for _, name := range ab.AssetNames() {
			b, err := arc.ReadBytes(ab.Name + "/" + container.AssetDir + "/" + name)
			if err != nil {
				t.Errorf("asset %s missing: %v", name, err)
				continue
			}
			if !bytes.HasPrefix(b, []byte("<svg")) {
				t.Errorf("asset %s = %q, want svg markup", name, b)
			}
		}
	}
}
