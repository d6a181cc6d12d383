package tileset

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"

	"pixgrid/imgio"
	"pixgrid/palette"
	"pixgrid/parallel"
	"pixgrid/raster"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	imgio.Dirs
	TileWidth  int           `help:"Tile width in pixels" default:"8" group:"tiles"`
	TileHeight int           `help:"Tile height in pixels" default:"8" group:"tiles"`
	Fit        string        `help:"How to handle pictures that are not a whole number of tiles" enum:"none,crop,scale" default:"none" group:"tiles"`
	Channels   string        `help:"Pixel format of the tile set, auto follows the source picture" enum:"auto,ga,rgb,rgba" default:"auto" group:"tiles"`
	Columns    int           `help:"Tiles per atlas row" default:"16" group:"tiles"`
	Palette    string        `help:"Palette name or PAL file in RIFF format to reduce colours to before tiling (${palettes})" group:"palette"`
	Dither     bool          `help:"Apply dithering" default:"false" group:"palette"`
	Format     string        `help:"Output format of the atlas" enum:"gif,png,bmp,tiff" default:"png"`
	Pal        color.Palette `kong:"-"`
}

var channelFormats = map[string]raster.Format{
	"ga":   raster.FormatGA,
	"rgb":  raster.FormatRGB,
	"rgba": raster.FormatRGBA,
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if err := c.Resolve("tiles"); err != nil {
		return err
	}

	switch {
	case c.TileWidth <= 0:
		return fmt.Errorf("invalid tile width: %d", c.TileWidth)
	case c.TileHeight <= 0:
		return fmt.Errorf("invalid tile height: %d", c.TileHeight)
	case c.Columns <= 0:
		return fmt.Errorf("invalid atlas columns: %d", c.Columns)
	}

	if c.Palette != "" {
		pal, err := palette.LoadPalette(c.Palette)
		if err != nil {
			return err
		}
		c.Pal = pal
	}
	return nil
}

func (c *CLICmd) tileSize() image.Point {
	return image.Pt(c.TileWidth, c.TileHeight)
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	files, err := c.Prepare()
	if err != nil {
		return err
	}

	var tiles, unique atomic.Uint64
	for _, name := range files {
		pool.Do(func() error {
			idx, err := c.process(name)
			if err != nil {
				return err
			}
			tiles.Add(uint64(len(idx.Cells)))
			unique.Add(uint64(len(idx.Entries)))
			return nil
		})
	}

	stats := pool.Wait()
	slog.Info("stats", "processed", stats.Processed, "errors", stats.Failed, "total", stats.Total(),
		"tiles", tiles.Load(), "unique", unique.Load())
	return stats.Err()
}

// process writes the atlas, tile map and frequency report of one picture.
func (c *CLICmd) process(name string) (*raster.TileIndex[float32], error) {
	src := filepath.Join(c.Scan, name)
	logger := slog.Default().With("file", src)

	idx, err := c.index(logger, src)
	if err != nil {
		logger.Error("could not index tiles", "error", err)
		return nil, err
	}
	logger.Info("indexed", "rows", idx.Rows(), "cols", idx.Cols(), "unique", len(idx.Entries))

	base := strings.TrimSuffix(name, filepath.Ext(name))
	atlasName := base + ".atlas." + c.Format
	if err := imgio.Save(imgio.ToImage(Atlas(idx, c.Columns)), c.Format, c.Dest, atlasName); err != nil {
		logger.Error("could not save atlas", "dir", c.Dest, "error", err)
		return nil, err
	}

	reports := []struct {
		name  string
		write func(io.Writer) error
	}{
		{base + ".map.csv", func(w io.Writer) error { return writeMap(w, idx) }},
		{base + ".freq.csv", func(w io.Writer) error { return writeFreq(w, idx.Entries) }},
	}
	for _, r := range reports {
		if err := saveCSV(c.Dest, r.name, r.write); err != nil {
			logger.Error("could not save report", "dir", c.Dest, "error", err)
			return nil, err
		}
	}
	return idx, nil
}

func (c *CLICmd) index(logger *slog.Logger, src string) (*raster.TileIndex[float32], error) {
	img, _, err := imgio.Load(src)
	if err != nil {
		return nil, err
	}

	tile := c.tileSize()
	if c.Fit == FitScale {
		img = scaleToTiles(logger, img, tile)
	}

	format := imgio.FormatOf(img)
	if f, ok := channelFormats[c.Channels]; ok {
		format = f
	}
	if c.Pal != nil {
		img = quantize(logger.With("palette", c.Palette), img, c.Pal, c.Dither)
	}

	buf := imgio.FromImage(img, format)
	if c.Fit == FitCrop {
		if buf, err = cropToTiles(buf, tile); err != nil {
			return nil, err
		}
	}
	if err := buf.TileableBy(tile); err != nil {
		return nil, err
	}
	return buf.Index(tile), nil
}
