package xdlayout

import (
	"bytes"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/xdlayout/convert"
	"github.com/gogpu/xdlayout/measure"
	"github.com/gogpu/xdlayout/xd"
)

// ErrInvalidConfig is returned for configuration values out of range.
var ErrInvalidConfig = errors.Base("xdlayout: invalid config")

// Config is the YAML form of the importer options.
//
//	format: png
//	scale: 2
//	concurrency: 4
//	strict: false
//	skipInvisible: true
//	fontDir: ./fonts
//	artboards: [Home, Settings]
type Config struct {
	Format        convert.Format `yaml:"format"`
	Scale         float64        `yaml:"scale"`
	Concurrency   int            `yaml:"concurrency"`
	Strict        bool           `yaml:"strict"`
	SkipInvisible bool           `yaml:"skipInvisible"`
	FontDir       string         `yaml:"fontDir"`
	Artboards     []string       `yaml:"artboards"`
}

// ParseConfig decodes a YAML configuration. Unknown keys are an error.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("xdlayout: parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadConfig reads and decodes the named YAML file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Errorf("xdlayout: %w", err)
	}
	return ParseConfig(data)
}

// Validate reports values no importer accepts.
func (c *Config) Validate() error {
	switch c.Format {
	case "", convert.FormatPNG, convert.FormatSVG:
	default:
		return errors.Errorf("%w: format %q", ErrInvalidConfig, c.Format)
	}
	if c.Scale < 0 {
		return errors.Errorf("%w: scale %v", ErrInvalidConfig, c.Scale)
	}
	if c.Concurrency < 0 {
		return errors.Errorf("%w: concurrency %d", ErrInvalidConfig, c.Concurrency)
	}
	return nil
}

// Options maps the configuration onto importer options. Fonts under
// FontDir are loaded into a new measure.Measurer.
func (c *Config) Options() ([]Option, error) {
	var opts []Option
	if c.Format != "" {
		opts = append(opts, WithFormat(c.Format))
	}
	if c.Scale > 0 {
		opts = append(opts, WithScale(c.Scale))
	}
	if c.Concurrency > 0 {
		opts = append(opts, WithConcurrency(c.Concurrency))
	}
	if c.Strict {
		opts = append(opts, WithStrict(true))
	}
	if c.SkipInvisible {
		opts = append(opts, WithTriggers(xd.SkipInvisible))
	}
	if len(c.Artboards) > 0 {
		opts = append(opts, WithArtboards(c.Artboards...))
	}
	if c.FontDir != "" {
		m := measure.New()
		if _, err := m.LoadDir(c.FontDir); err != nil {
			return nil, err
		}
		opts = append(opts, WithMeasurer(m))
	}
	return opts, nil
}
