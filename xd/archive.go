package xd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/mholt/archives"
	"gitlab.com/tozd/go/errors"
)

// ErrNotFound is returned when an archive has no entry with the requested name.
var ErrNotFound = errors.Base("xd: file not found in archive")

// Archive gives read access to the files of a design document.
type Archive interface {
	ReadText(name string) (string, error)
	ReadBytes(name string) ([]byte, error)
}

// MemArchive is an Archive backed by a map of slash-separated names.
type MemArchive map[string][]byte

// ReadBytes returns a copy of the named file.
func (m MemArchive) ReadBytes(name string) ([]byte, error) {
	b, ok := m[cleanName(name)]
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrNotFound, name)
	}
	return bytes.Clone(b), nil
}

// ReadText returns the named file as a string.
func (m MemArchive) ReadText(name string) (string, error) {
	b, ok := m[cleanName(name)]
	if !ok {
		return "", errors.Errorf("%w: %s", ErrNotFound, name)
	}
	return string(b), nil
}

// Names returns the sorted entry names.
func (m MemArchive) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cleanName(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// ReadZip extracts every regular file of the zip stream r into memory.
func ReadZip(ctx context.Context, r io.Reader) (MemArchive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Errorf("xd: reading archive: %w", err)
	}

	out := MemArchive{}
	err = archives.Zip{}.Extract(ctx, bytes.NewReader(data), func(ctx context.Context, info archives.FileInfo) error {
		if info.IsDir() {
			return nil
		}
		f, err := info.Open()
		if err != nil {
			return errors.Errorf("opening %s: %w", info.NameInArchive, err)
		}
		defer f.Close()

		b, err := io.ReadAll(f)
		if err != nil {
			return errors.Errorf("reading %s: %w", info.NameInArchive, err)
		}
		out[cleanName(info.NameInArchive)] = b
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("xd: extracting archive: %w", err)
	}
	return out, nil
}

// OpenZip reads the design document stored in the named file.
func OpenZip(ctx context.Context, filename string) (MemArchive, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Errorf("xd: %w", err)
	}
	defer f.Close()
	return ReadZip(ctx, f)
}
