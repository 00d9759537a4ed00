// Command xdlayout converts XD design files into layout bundles.
//
// Usage:
//
//	xdlayout convert [--format png|svg] [--scale N] [--fonts DIR] [-o out.zip] design.xd
//	xdlayout inspect [--dump ARTBOARD] design.xd
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp/v3"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/gogpu/xdlayout"
	"github.com/gogpu/xdlayout/container"
	"github.com/gogpu/xdlayout/convert"
	"github.com/gogpu/xdlayout/xd"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "xdlayout: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "xdlayout",
		Usage:     "convert XD design files into layout trees and assets",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug output"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config `FILE`"},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			xdlayout.SetLogger(slog.New(tint.NewHandler(stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
				NoColor:    os.Getenv("NO_COLOR") != "",
			})))
			return nil
		},
		Commands: []*cli.Command{convertCommand(), inspectCommand()},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "write a zip bundle of layout.json and assets per artboard",
		ArgsUsage: "DESIGN.xd",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output `FILE` (default DESIGN.zip)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "vector asset format: png or svg"},
			&cli.Float64Flag{Name: "scale", Usage: "pixel density of png assets"},
			&cli.StringFlag{Name: "fonts", Usage: "`DIR` of .ttf/.otf files used to measure text"},
			&cli.StringSliceFlag{Name: "artboard", Aliases: []string{"a"}, Usage: "only convert the named artboard (repeatable)"},
			&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Usage: "artboards converted at once"},
			&cli.BoolFlag{Name: "strict", Usage: "fail on warnings"},
			&cli.BoolFlag{Name: "skip-invisible", Usage: "drop hidden objects"},
		},
		Action: runConvert,
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "list artboards, or pretty-print the layout of one",
		ArgsUsage: "DESIGN.xd",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dump", Usage: "print the converted layout of `ARTBOARD`"},
		},
		Action: runInspect,
	}
}

// importerOptions merges the config file with command flags. Flags win.
func importerOptions(c *cli.Context) ([]xdlayout.Option, error) {
	cfg := &xdlayout.Config{}
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = xdlayout.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if f := c.String("format"); f != "" {
		cfg.Format = convert.Format(strings.ToLower(f))
	}
	if c.IsSet("scale") {
		cfg.Scale = c.Float64("scale")
	}
	if c.IsSet("jobs") {
		cfg.Concurrency = c.Int("jobs")
	}
	if dir := c.String("fonts"); dir != "" {
		cfg.FontDir = dir
	}
	if names := c.StringSlice("artboard"); len(names) > 0 {
		cfg.Artboards = names
	}
	cfg.Strict = cfg.Strict || c.Bool("strict")
	cfg.SkipInvisible = cfg.SkipInvisible || c.Bool("skip-invisible")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.Options()
}

func inputPath(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New("expected exactly one design file")
	}
	return c.Args().First(), nil
}

func runConvert(c *cli.Context) error {
	in, err := inputPath(c)
	if err != nil {
		return err
	}
	opts, err := importerOptions(c)
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := xdlayout.New(opts...).ImportFile(c.Context, in)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".zip"
	}
	if err := container.WriteFile(c.Context, out, res.Entries()); err != nil {
		return err
	}
	st, err := os.Stat(out)
	if err != nil {
		return errors.Errorf("stat %s: %w", out, err)
	}

	assets := 0
	for _, ab := range res.Artboards {
		assets += len(ab.Layout.Assets)
	}
	fmt.Fprintf(c.App.Writer, "%s: %d artboards, %d assets, %d warnings, %s in %s\n",
		out, len(res.Artboards), assets, len(res.Warnings()),
		humanize.Bytes(uint64(st.Size())), time.Since(start).Round(time.Millisecond))
	return nil
}

func runInspect(c *cli.Context) error {
	in, err := inputPath(c)
	if err != nil {
		return err
	}
	if name := c.String("dump"); name != "" {
		return dumpLayout(c, in, name)
	}

	arc, err := xd.OpenZip(c.Context, in)
	if err != nil {
		return err
	}
	doc, err := xd.Load(c.Context, arc)
	if err != nil {
		return err
	}
	size := 0
	for _, name := range arc.Names() {
		size += len(arc[name])
	}
	fmt.Fprintf(c.App.Writer, "%s: %d files, %s uncompressed, %d symbols\n",
		in, len(arc), humanize.Bytes(uint64(size)), len(doc.Resources.Resources.Meta.UX.Symbols))
	for _, ab := range doc.Artboards {
		fmt.Fprintf(c.App.Writer, "  %-24s %5gx%-5g %s objects\n",
			ab.Name, ab.Width, ab.Height, humanize.Comma(int64(countObjects(ab.Root))))
	}
	return nil
}

func dumpLayout(c *cli.Context, in, name string) error {
	opts, err := importerOptions(c)
	if err != nil {
		return err
	}
	opts = append(opts, xdlayout.WithArtboards(name))
	res, err := xdlayout.New(opts...).ImportFile(c.Context, in)
	if err != nil {
		return err
	}
	p := pp.New()
	p.SetOutput(c.App.Writer)
	p.SetExportedOnly(true)
	p.SetColoringEnabled(os.Getenv("NO_COLOR") == "")
	_, err = p.Println(res.Artboards[0].Layout)
	return err
}

func countObjects(o *xd.Object) int {
	n := 1
	for _, child := range o.Children() {
		n += countObjects(child)
	}
	return n
}
