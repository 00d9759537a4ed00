package convert

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/xdlayout/layout"
	"github.com/gogpu/xdlayout/svg"
)

// Asset errors.
var (
	ErrUnknownAsset = errors.Base("convert: unknown asset")
	ErrNoRasterizer = errors.Base("convert: no rasterizer configured")
)

// assetSource is how the bytes of one asset are produced on demand.
type assetSource struct {
	doc      *svg.Document
	markup   string
	width    int
	height   int
	resource string
}

// assetStore names assets and deduplicates vector assets by markup hash.
type assetStore struct {
	format Format
	scale  float64

	byHash  map[uint64]*layout.Asset
	byName  map[string]*layout.Asset
	sources map[string]assetSource
	list    []*layout.Asset
}

func newAssetStore(format Format, scale float64) *assetStore {
	return &assetStore{
		format:  format,
		scale:   scale,
		byHash:  make(map[uint64]*layout.Asset),
		byName:  make(map[string]*layout.Asset),
		sources: make(map[string]assetSource),
	}
}

// add registers a for the layout once per file name.
func (s *assetStore) add(a *layout.Asset) {
	if _, ok := s.byName[a.FileName]; ok {
		return
	}
	s.byName[a.FileName] = a
	s.list = append(s.list, a)
}

func (s *assetStore) pixels(v float64) int {
	return max(1, int(math.Ceil(v*s.scale-1e-9)))
}

// vector returns the asset for res, reusing an earlier asset with the
// same markup and nine-slice border.
func (s *assetStore) vector(name string, res *svg.Result, border *layout.Border) *layout.Asset {
	doc := res.Document()
	markup := doc.Markup()
	key := markup
	if border != nil {
		key += fmt.Sprintf("\x00%v", *border)
	}
	hash := xxhash.Sum64String(key)
	if a, ok := s.byHash[hash]; ok {
		return a
	}
	w, h := s.pixels(doc.Width), s.pixels(doc.Height)
	a := &layout.Asset{
		FileName: s.fileName(name, hash, string(s.format)),
		Hash:     hash,
		Size:     layout.Vec2{X: float64(w), Y: float64(h)},
		Border:   border,
	}
	s.byHash[hash] = a
	s.sources[a.FileName] = assetSource{doc: doc, markup: markup, width: w, height: h}
	return a
}

// bitmap returns the asset passing an archive resource through.
func (s *assetStore) bitmap(name, resource string, width, height float64) *layout.Asset {
	hash := xxhash.Sum64String(resource)
	if a, ok := s.byHash[hash]; ok {
		return a
	}
	a := &layout.Asset{
		FileName: s.fileName(name, hash, "png"),
		Hash:     hash,
		Size:     layout.Vec2{X: float64(s.pixels(width)), Y: float64(s.pixels(height))},
	}
	s.byHash[hash] = a
	s.sources[a.FileName] = assetSource{resource: resource}
	return a
}

func (s *assetStore) fileName(name string, hash uint64, ext string) string {
	base := sanitize(name)
	fn := fmt.Sprintf("%s_%08x.%s", base, uint32(hash), ext)
	if _, taken := s.sources[fn]; taken {
		fn = fmt.Sprintf("%s_%016x.%s", base, hash, ext)
	}
	return fn
}

// sanitize reduces a display name to ASCII letters, digits, '-' and '_'.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "asset"
	}
	return b.String()
}

// AssetNames returns the file names of the layout's assets in order.
func (r *Result) AssetNames() []string {
	out := make([]string, 0, len(r.assets.list))
	for _, a := range r.assets.list {
		out = append(out, a.FileName)
	}
	return out
}

// LoadAssetBytes produces the encoded bytes of one asset: the stored
// markup for SVG assets, a rasterized image for PNG assets, or the archive
// resource for bitmap fills.
func (r *Result) LoadAssetBytes(fileName string) ([]byte, error) {
	src, ok := r.assets.sources[fileName]
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrUnknownAsset, fileName)
	}
	switch {
	case src.resource != "":
		if r.archive == nil {
			return nil, errors.Errorf("convert: %s: no archive for %s", fileName, src.resource)
		}
		return r.archive.ReadBytes(src.resource)
	case r.assets.format == FormatSVG:
		return []byte(src.markup), nil
	case r.rasterizer == nil:
		return nil, errors.Errorf("%w: %s", ErrNoRasterizer, fileName)
	}
	b, err := r.rasterizer.Rasterize(src.doc, src.width, src.height)
	if err != nil {
		return nil, errors.Errorf("convert: rasterizing %s: %w", fileName, err)
	}
	return b, nil
}
