package raster

import (
	"errors"
	"image"
	"slices"
	"testing"
)

func TestTiles(t *testing.T) {
	src := sequential(FormatRGB, 6, 4)
	size := image.Pt(3, 2)
	g := src.Tiles(size)

	if g.Rows() != 2 || g.Cols() != 2 || g.Len() != 4 {
		t.Fatalf("grid = %dx%d (%d), want 2x2", g.Rows(), g.Cols(), g.Len())
	}
	if g.TileSize() != size {
		t.Errorf("TileSize() = %v, want %v", g.TileSize(), size)
	}

	n := 0
	for pos, tile := range g.All() {
		if tile != g.At(pos.Y, pos.X) {
			t.Errorf("All() yielded %v out of order", pos)
		}
		if pos != image.Pt(n%2, n/2) {
			t.Errorf("tile %d at %v, want row-major order", n, pos)
		}
		origin := image.Pt(pos.X*size.X, pos.Y*size.Y)
		for y := range size.Y {
			for x := range size.X {
				p := image.Pt(x, y)
				if got, want := tile.Pixel(p), src.Pixel(origin.Add(p)); !slices.Equal(got, want) {
					t.Errorf("tile %v Pixel(%v) = %v, want %v", pos, p, got, want)
				}
			}
		}
		n++
	}
	if n != 4 {
		t.Errorf("All() yielded %d tiles", n)
	}

	g.At(0, 0).SetComponent(image.Pt(0, 0), 0, -1)
	if src.Component(image.Pt(0, 0), 0) == -1 {
		t.Error("Tiles() aliases source storage")
	}
}

func TestTileableBy(t *testing.T) {
	b := sequential(FormatGA, 6, 4)
	tests := []struct {
		name string
		size image.Point
		want error
	}{
		{"exact", image.Pt(3, 2), nil},
		{"single tile", image.Pt(6, 4), nil},
		{"1x1", image.Pt(1, 1), nil},
		{"width remainder", image.Pt(4, 2), ErrNotTileable},
		{"height remainder", image.Pt(3, 3), ErrNotTileable},
		{"zero size", image.Pt(0, 2), ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.TileableBy(tt.size)
			if !errors.Is(err, tt.want) {
				t.Fatalf("TileableBy(%v) = %v, want %v", tt.size, err, tt.want)
			}
			if tt.want != nil {
				expectViolation(t, tt.want, func() { b.Tiles(tt.size) })
				expectViolation(t, tt.want, func() { b.UniqueTiles(tt.size) })
				expectViolation(t, tt.want, func() { b.ExtractTile(tt.size, image.Pt(0, 0)) })
			}
		})
	}
}

func TestTileAccessors(t *testing.T) {
	src := sequential(FormatRGBA, 4, 6)
	size := image.Pt(2, 3)

	// tile at column 1, row 1 starts at (2, 3)
	idx := image.Pt(1, 1)
	want := src.Extract(image.Pt(2, 3), size)

	if got := src.ExtractTile(size, idx); !got.Equal(want) {
		t.Error("ExtractTile() returned the wrong block")
	}

	v := src.ViewTile(size, idx)
	if !v.Equal(want) {
		t.Error("ViewTile() returned the wrong block")
	}
	if v.Bounds() != image.Rect(2, 3, 4, 6) {
		t.Errorf("ViewTile().Bounds() = %v", v.Bounds())
	}
	v.Release()

	m := src.ViewTileMut(size, image.Pt(0, 1))
	m.Fill([]int{0, 0, 0, 0})
	m.Release()
	if src.Component(image.Pt(1, 5), 2) != 0 || src.Component(image.Pt(2, 5), 2) == 0 {
		t.Error("ViewTileMut() wrote outside its tile")
	}

	for _, bad := range []image.Point{{2, 0}, {0, 2}, {-1, 0}} {
		expectViolation(t, ErrOutOfBounds, func() { src.ExtractTile(size, bad) })
		expectViolation(t, ErrOutOfBounds, func() { src.ViewTile(size, bad) })
		expectViolation(t, ErrOutOfBounds, func() { src.ViewTileMut(size, bad) })
	}
	expectViolation(t, ErrOutOfBounds, func() { src.Tiles(size).At(2, 0) })
}
