// Package measure computes text extents with the gg font stack.
//
// Fonts are registered by name; a Measurer looks a font up by PostScript
// name, then "Family-Style", then family. When no registered font matches,
// Measure returns ErrFontNotFound and callers fall back to Fallback, which
// uses the built-in 7x13 bitmap metrics scaled to the requested size.
package measure

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/cases"
)

// ErrFontNotFound is returned when no registered font matches.
var ErrFontNotFound = errors.Base("measure: font not found")

// Font selects a face.
type Font struct {
	PostscriptName string
	Family         string
	Style          string
	Size           float64
}

// Metrics are the extents of a laid out string.
type Metrics struct {
	Width   float64
	Height  float64
	Ascent  float64
	Descent float64
	Lines   int
}

// Measurer measures text with registered font files. It is safe for
// concurrent use.
type Measurer struct {
	mu      sync.RWMutex
	sources map[string]*text.FontSource
}

// New returns an empty Measurer.
func New() *Measurer {
	return &Measurer{sources: make(map[string]*text.FontSource)}
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Register parses font data and registers it under name and under the
// font's own name.
func (m *Measurer) Register(name string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return errors.Errorf("measure: parsing %s: %w", name, err)
	}
	m.add(name, src)
	return nil
}

func (m *Measurer) add(name string, src *text.FontSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range []string{name, src.Name()} {
		if key = fold(key); key != "" {
			if _, ok := m.sources[key]; !ok {
				m.sources[key] = src
			}
		}
	}
}

// LoadDir registers every .ttf and .otf file under dir, keyed by file base
// name. It returns the number of fonts loaded.
func (m *Measurer) LoadDir(dir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := strings.ToLower(filepath.Ext(path))
		if d.IsDir() || (ext != ".ttf" && ext != ".otf") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := m.Register(strings.TrimSuffix(d.Name(), filepath.Ext(path)), data); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, errors.Errorf("measure: loading %s: %w", dir, err)
	}
	return n, nil
}

// Len returns the number of registered names.
func (m *Measurer) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sources)
}

func (m *Measurer) lookup(f Font) (*text.FontSource, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{f.PostscriptName}
	if f.Style != "" {
		keys = append(keys, f.Family+"-"+f.Style)
	}
	keys = append(keys, f.Family)
	for _, k := range keys {
		if src, ok := m.sources[fold(k)]; ok && k != "" {
			return src, true
		}
	}
	return nil, false
}

// Measure lays s out in the matching font. A positive wrapWidth enables
// line wrapping.
func (m *Measurer) Measure(f Font, s string, wrapWidth float64) (Metrics, error) {
	src, ok := m.lookup(f)
	if !ok {
		return Metrics{}, errors.Errorf("%w: %q", ErrFontNotFound, f.PostscriptName)
	}
	face := src.Face(f.Size)
	opts := text.DefaultLayoutOptions()
	opts.MaxWidth = wrapWidth
	l := text.LayoutText(s, face, opts)
	fm := face.Metrics()
	out := Metrics{Ascent: fm.Ascent, Descent: fm.Descent, Lines: 1}
	if l != nil && len(l.Lines) > 0 {
		out.Width = l.Width
		out.Height = l.Height
		out.Lines = len(l.Lines)
	} else {
		out.Height = fm.LineHeight()
	}
	return out, nil
}

// Fallback measures s with the built-in bitmap font scaled to f.Size.
func Fallback(f Font, s string, wrapWidth float64) Metrics {
	face := basicfont.Face7x13
	fm := face.Metrics()
	scale := 1.0
	if f.Size > 0 {
		scale = f.Size / fixedFloat(fm.Height)
	}
	advance := func(line string) float64 {
		return fixedFloat(font.MeasureString(face, line)) * scale
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrap(para, wrapWidth, advance)...)
	}
	out := Metrics{
		Ascent:  fixedFloat(fm.Ascent) * scale,
		Descent: fixedFloat(fm.Descent) * scale,
		Lines:   len(lines),
	}
	for _, line := range lines {
		out.Width = math.Max(out.Width, advance(line))
	}
	out.Height = float64(out.Lines) * fixedFloat(fm.Height) * scale
	return out
}

// wrap breaks para greedily at spaces so every line fits in width.
func wrap(para string, width float64, advance func(string) float64) []string {
	words := strings.Fields(para)
	if width <= 0 || len(words) == 0 {
		return []string{para}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if advance(line+" "+w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

func fixedFloat[T ~int32](v T) float64 {
	return float64(v) / 64
}
