package main

import (
	"log/slog"
	"os"
	"strings"

	"pixgrid/gradient"
	"pixgrid/orient"
	"pixgrid/palette"
	"pixgrid/parallel"
	"pixgrid/tileset"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers   int    `help:"Number of pictures processed at once, 0 for one per CPU" default:"0"`
	LogLevel  string `help:"Minimum level of log messages" enum:"debug,info,warn,error" default:"info"`
	LogFormat string `help:"Log output format" enum:"text,json" default:"text"`

	Orient   orient.CLICmd   `cmd:"" help:"Flip, transpose or rotate pictures"`
	Tileset  tileset.CLICmd  `cmd:"" help:"Split pictures into tiles and keep one copy of each distinct tile"`
	Gradient gradient.CLICmd `cmd:"" help:"Map picture luminance through a colour gradient"`
}

func (c *cli) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pixgrid"),
		kong.Description("Batch picture processing on tiled raster buffers."),
		kong.UsageOnError(),
		kong.Vars{"palettes": strings.Join(palette.Names(), ", ")},
	)

	slog.SetDefault(c.logger())
	slog.Debug("running", "command", kctx.Command(), "workers", c.Workers)

	err := kctx.Run(parallel.Start(c.Workers))
	kctx.FatalIfErrorf(err)
}
