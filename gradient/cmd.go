// Package gradient recolours pictures by mapping their luminance through
// a colour map.
package gradient

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"pixgrid/colourmap"
	"pixgrid/imgio"
	"pixgrid/palette"
	"pixgrid/parallel"
	"pixgrid/raster"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	imgio.Dirs
	Colours []string       `help:"Hex colours (#RGB, #RGBA, #RRGGBB, #RRGGBBAA) spaced evenly from dark to light" sep:","`
	Palette string         `help:"Palette name or PAL file in RIFF format whose colours are spaced evenly from dark to light (${palettes})"`
	Format  string         `help:"Output format of mapped image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
	Map     *colourmap.Map `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if err := c.Resolve("gradient"); err != nil {
		return err
	}

	var err error
	switch {
	case len(c.Colours) > 0 && c.Palette != "":
		return errors.New("give either colours or a palette, not both")
	case len(c.Colours) > 0:
		c.Map, err = colourmap.FromHex(c.Colours...)
	case c.Palette != "":
		pal, palErr := palette.LoadPalette(c.Palette)
		if palErr != nil {
			return palErr
		}
		c.Map, err = colourmap.FromPalette(pal)
	default:
		return errors.New("no colours or palette given")
	}
	if err != nil {
		return fmt.Errorf("invalid colour map: %w", err)
	}
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	files, err := c.Prepare()
	if err != nil {
		return err
	}

	for _, name := range files {
		pool.Do(func() error {
			return c.process(name)
		})
	}

	stats := pool.Wait()
	slog.Info("stats", "processed", stats.Processed, "errors", stats.Failed, "total", stats.Total(),
		"anchors", len(c.Map.Anchors()))
	return stats.Err()
}

func (c *CLICmd) process(name string) error {
	src := filepath.Join(c.Scan, name)
	logger := slog.Default().With("file", src)

	img, imgType, err := imgio.Load(src)
	if err != nil {
		logger.Error("could not load image", "error", err)
		return err
	}

	outType := imgio.OutputType(imgType, c.Format)
	if err := imgio.Save(Recolour(c.Map, img), outType, c.Dest, imgio.ReplaceExt(name, outType)); err != nil {
		logger.Error("could not save image", "dir", c.Dest, "error", err)
		return err
	}
	return nil
}

// Recolour maps the luma of img through m. The result keeps the source
// coverage: the map's alpha is scaled by the picture's alpha.
func Recolour(m *colourmap.Map, img image.Image) image.Image {
	grey := raster.Convert(imgio.FromImage(img, raster.FormatGA), func(v float32) float64 { return float64(v) })
	mapped := m.Apply(grey.Layer(0))

	coverage := grey.Layer(grey.Format().AlphaIndex())
	alpha := raster.FormatRGBA.AlphaIndex()
	for y := range mapped.Height() {
		for x := range mapped.Width() {
			p := image.Pt(x, y)
			mapped.SetComponent(p, alpha, mapped.Component(p, alpha)*coverage.At(p))
		}
	}

	return imgio.ToImage(raster.Convert(mapped, func(v float64) float32 { return float32(v) }))
}
