package xdlayout

import (
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/xdlayout/convert"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr error
	}{
		{name: "empty", yaml: ""},
		{
			name: "full",
			yaml: "format: png\nscale: 2\nconcurrency: 3\nstrict: true\nskipInvisible: true\nartboards: [Home]\n",
			want: Config{Format: convert.FormatPNG, Scale: 2, Concurrency: 3, Strict: true, SkipInvisible: true, Artboards: []string{"Home"}},
		},
		{name: "bad format", yaml: "format: gif\n", wantErr: ErrInvalidConfig},
		{name: "negative scale", yaml: "scale: -1\n", wantErr: ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.yaml))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseConfig() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseConfig() error: %v", err)
			}
			if got.Format != tt.want.Format || got.Scale != tt.want.Scale || got.Concurrency != tt.want.Concurrency ||
				got.Strict != tt.want.Strict || got.SkipInvisible != tt.want.SkipInvisible || len(got.Artboards) != len(tt.want.Artboards) {
				t.Errorf("ParseConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseConfigUnknownKey(t *testing.T) {
	if _, err := ParseConfig([]byte("colour: red\n")); err == nil {
		t.Error("ParseConfig() with unknown key succeeded")
	}
}

func TestConfigOptions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "GoRegular.ttf"), goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "xdlayout.yaml")
	cfg := "format: png\nscale: 3\nconcurrency: 2\nskipInvisible: true\nfontDir: " + dir + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	opts, err := c.Options()
	if err != nil {
		t.Fatalf("Options() error: %v", err)
	}
	o := New(opts...).opts
	if o.format != convert.FormatPNG || o.scale != 3 || o.concurrency != 2 {
		t.Errorf("options = %v %v %v, want png 3 2", o.format, o.scale, o.concurrency)
	}
	if len(o.triggers) != 1 {
		t.Errorf("len(triggers) = %d, want 1", len(o.triggers))
	}
	if o.measurer == nil || o.rasterizer == nil {
		t.Error("font dir and png format should install a measurer and a rasterizer")
	}

	c.FontDir = filepath.Join(dir, "missing")
	if _, err := c.Options(); err == nil {
		t.Error("Options() with missing font dir succeeded")
	}
}
