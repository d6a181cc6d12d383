package raster

import (
	"fmt"
	"image"
	"iter"
)

// TileableBy returns nil if the buffer partitions exactly into tiles of
// the given size, or an error wrapping ErrInvalidDimensions or
// ErrNotTileable otherwise.
func (b *Buffer[T]) TileableBy(tileSize image.Point) error {
	if tileSize.X <= 0 || tileSize.Y <= 0 {
		return fmt.Errorf("%w: tile size %v", ErrInvalidDimensions, tileSize)
	}
	if b.width%tileSize.X != 0 || b.height%tileSize.Y != 0 {
		return fmt.Errorf("%w: %dx%d by %dx%d", ErrNotTileable, b.width, b.height, tileSize.X, tileSize.Y)
	}
	return nil
}

// TileCount returns the grid shape as image.Point{X: columns, Y: rows}.
func (b *Buffer[T]) TileCount(tileSize image.Point) image.Point {
	if err := b.TileableBy(tileSize); err != nil {
		panic(err)
	}
	return image.Pt(b.width/tileSize.X, b.height/tileSize.Y)
}

func (b *Buffer[T]) tileStart(tileSize, index image.Point) image.Point {
	n := b.TileCount(tileSize)
	if index.X < 0 || index.Y < 0 || index.X >= n.X || index.Y >= n.Y {
		violation(ErrOutOfBounds, "tile %v not in %v grid", index, n)
	}
	return image.Pt(index.X*tileSize.X, index.Y*tileSize.Y)
}

// ExtractTile copies the tile at grid position index (X column, Y row).
func (b *Buffer[T]) ExtractTile(tileSize, index image.Point) *Buffer[T] {
	return b.Extract(b.tileStart(tileSize, index), tileSize)
}

// ViewTile returns a read-only view of the tile at grid position index.
func (b *Buffer[T]) ViewTile(tileSize, index image.Point) *View[T] {
	return b.View(b.tileStart(tileSize, index), tileSize)
}

// ViewTileMut returns an exclusive view of the tile at grid position index.
func (b *Buffer[T]) ViewTileMut(tileSize, index image.Point) *MutView[T] {
	return b.ViewMut(b.tileStart(tileSize, index), tileSize)
}

// Grid is an exact partition of a buffer into owned tile copies.
type Grid[T Component] struct {
	tiles    []*Buffer[T]
	rows     int
	cols     int
	tileSize image.Point
}

// Tiles splits the buffer into Height/tileSize.Y rows by Width/tileSize.X
// columns of independent tiles. The tile at (row, col) covers rows
// [row*th, (row+1)*th) and columns [col*tw, (col+1)*tw).
func (b *Buffer[T]) Tiles(tileSize image.Point) *Grid[T] {
	n := b.TileCount(tileSize)
	b.lock.check(b.Bounds(), false)

	g := &Grid[T]{
		tiles:    make([]*Buffer[T], 0, n.X*n.Y),
		rows:     n.Y,
		cols:     n.X,
		tileSize: tileSize,
	}
	for r := range n.Y {
		for c := range n.X {
			origin := image.Pt(c*tileSize.X, r*tileSize.Y)
			g.tiles = append(g.tiles, b.copyRect(image.Rectangle{Min: origin, Max: origin.Add(tileSize)}))
		}
	}
	return g
}

// Rows returns the number of tile rows.
func (g *Grid[T]) Rows() int {
	return g.rows
}

// Cols returns the number of tile columns.
func (g *Grid[T]) Cols() int {
	return g.cols
}

// Len returns the total number of tiles.
func (g *Grid[T]) Len() int {
	return len(g.tiles)
}

// TileSize returns the size of every tile.
func (g *Grid[T]) TileSize() image.Point {
	return g.tileSize
}

// At returns the tile at the given grid row and column.
func (g *Grid[T]) At(row, col int) *Buffer[T] {
	if row < 0 || col < 0 || row >= g.rows || col >= g.cols {
		violation(ErrOutOfBounds, "tile (%d,%d) not in %dx%d grid", row, col, g.rows, g.cols)
	}
	return g.tiles[row*g.cols+col]
}

// All iterates tiles in row-major order, yielding each tile's grid
// position as image.Point{X: col, Y: row}.
func (g *Grid[T]) All() iter.Seq2[image.Point, *Buffer[T]] {
	return func(yield func(image.Point, *Buffer[T]) bool) {
		for i, t := range g.tiles {
			if !yield(image.Pt(i%g.cols, i/g.cols), t) {
				return
			}
		}
	}
}
