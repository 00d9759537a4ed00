// Package container packs converted artboards into a single zip bundle.
//
// Each artboard becomes a directory holding layout.json and an assets/
// subdirectory with the bytes of every asset the layout names. A bundle
// with one unnamed artboard is written at the archive root.
package container

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/mholt/archives"
	"gitlab.com/tozd/go/errors"

	"github.com/gogpu/xdlayout/layout"
)

// Names of the files inside each artboard directory.
const (
	LayoutFile = "layout.json"
	AssetDir   = "assets"
)

// ErrDuplicateAsset is returned when two assets of one artboard share a name.
var ErrDuplicateAsset = errors.Base("container: duplicate asset")

// Assets produces the bytes of the assets a layout names.
type Assets interface {
	AssetNames() []string
	LoadAssetBytes(fileName string) ([]byte, error)
}

// Entry is one artboard to pack.
type Entry struct {
	Name   string
	Layout *layout.Layout
	Assets Assets
}

// Files encodes the entries into in-memory archive members, in order.
// Directory names are made unique by appending -2, -3 and so on.
func Files(ctx context.Context, entries []Entry) ([]archives.FileInfo, error) {
	var files []archives.FileInfo
	used := map[string]int{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := dirName(e.Name, len(entries), used)

		b, err := e.Layout.Marshal()
		if err != nil {
			return nil, errors.Errorf("container: %s: %w", e.Name, err)
		}
		files = append(files, memberOf(path.Join(dir, LayoutFile), b))

		if e.Assets == nil {
			continue
		}
		seen := map[string]bool{}
		for _, name := range e.Assets.AssetNames() {
			if seen[name] {
				return nil, errors.Errorf("%w: %s/%s", ErrDuplicateAsset, dir, name)
			}
			seen[name] = true
			data, err := e.Assets.LoadAssetBytes(name)
			if err != nil {
				return nil, errors.Errorf("container: %s: %w", e.Name, err)
			}
			files = append(files, memberOf(path.Join(dir, AssetDir, name), data))
		}
	}
	return files, nil
}

// Write packs the entries as a deflated zip stream.
func Write(ctx context.Context, w io.Writer, entries []Entry) error {
	files, err := Files(ctx, entries)
	if err != nil {
		return err
	}
	z := archives.Zip{Compression: zip.Deflate}
	if err := z.Archive(ctx, w, files); err != nil {
		return errors.Errorf("container: writing zip: %w", err)
	}
	return nil
}

// WriteFile packs the entries into the named file.
func WriteFile(ctx context.Context, filename string, entries []Entry) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Errorf("container: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Errorf("container: %w", cerr)
		}
	}()
	return Write(ctx, f, entries)
}

func dirName(name string, n int, used map[string]int) string {
	name = strings.Trim(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
	name = strings.ReplaceAll(name, "/", "_")
	if name == "" || name == "." {
		if n == 1 {
			return ""
		}
		name = "artboard"
	}
	used[name]++
	if c := used[name]; c > 1 {
		return name + "-" + strconv.Itoa(c)
	}
	return name
}

func memberOf(name string, data []byte) archives.FileInfo {
	info := memInfo{name: path.Base(name), size: int64(len(data))}
	return archives.FileInfo{
		NameInArchive: name,
		FileInfo:      info,
		Open: func() (fs.File, error) {
			return &memFile{Reader: bytes.NewReader(data), info: info}, nil
		},
	}
}

type memInfo struct {
	name string
	size int64
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() fs.FileMode  { return 0o644 }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return false }
func (i memInfo) Sys() any           { return nil }

type memFile struct {
	*bytes.Reader
	info memInfo
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memFile) Close() error               { return nil }
