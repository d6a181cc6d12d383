package tileset

import (
	"fmt"
	"image"
	"log/slog"

	"pixgrid/raster"

	"golang.org/x/image/draw"
)

// Fit modes for pictures whose size is not a multiple of the tile size.
const (
	FitNone  = "none"
	FitCrop  = "crop"
	FitScale = "scale"
)

// snap rounds n to the nearest positive multiple of step.
func snap(n, step int) int {
	m := (n + step/2) / step * step
	if m < step {
		return step
	}
	return m
}

// scaleToTiles resamples img so that both sides are the nearest multiple
// of the tile size.
func scaleToTiles(logger *slog.Logger, img image.Image, tile image.Point) image.Image {
	sr := img.Bounds()
	w, h := snap(sr.Dx(), tile.X), snap(sr.Dy(), tile.Y)
	if w == sr.Dx() && h == sr.Dy() {
		return img
	}

	logger.Info("scaling", "width", w, "height", h)
	dest := image.NewNRGBA64(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, sr, draw.Src, nil)
	return dest
}

// cropToTiles keeps the centred part of b that is an exact multiple of
// the tile size.
func cropToTiles[T raster.Component](b *raster.Buffer[T], tile image.Point) (*raster.Buffer[T], error) {
	size := image.Pt(b.Width()-b.Width()%tile.X, b.Height()-b.Height()%tile.Y)
	if size.X == 0 || size.Y == 0 {
		return nil, fmt.Errorf("%w: %dx%d is smaller than one %dx%d tile",
			raster.ErrNotTileable, b.Width(), b.Height(), tile.X, tile.Y)
	}
	if size == b.Size() {
		return b, nil
	}

	start := b.Size().Sub(size).Div(2)
	return b.Extract(start, size), nil
}
