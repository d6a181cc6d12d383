package raster

import (
	"image"
	"unsafe"
)

// TileCount is one distinct tile content and the number of grid cells
// holding it.
type TileCount[T Component] struct {
	// Tile is an owned copy of the first tile seen with this content.
	Tile *Buffer[T]
	// Count is the number of tiles with this content, at least 1.
	Count int
	// First is the grid position (X column, Y row) of Tile.
	First image.Point
}

// TileIndex maps every cell of a tile grid to one of a set of distinct
// tile contents.
type TileIndex[T Component] struct {
	// Entries are the distinct tiles in order of first occurrence.
	Entries []TileCount[T]
	// Cells holds the Entries index of every grid cell, row-major.
	Cells []int

	rows     int
	cols     int
	tileSize image.Point
	format   Format
}

// tileKey returns the exact bit pattern of pix. Two tiles share a key iff
// their component sequences are bit-identical, which also gives a stable
// answer for floating-point NaN and signed zero.
func tileKey[T Component](pix []T) string {
	if len(pix) == 0 {
		return ""
	}
	var zero T
	n := len(pix) * int(unsafe.Sizeof(zero))
	return string(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(pix))), n))
}

// Index splits the buffer into tiles and groups them by content.
// Entries are ordered by first occurrence in a row-major walk of the grid.
func (b *Buffer[T]) Index(tileSize image.Point) *TileIndex[T] {
	g := b.Tiles(tileSize)
	idx := &TileIndex[T]{
		Cells:    make([]int, 0, g.Len()),
		rows:     g.rows,
		cols:     g.cols,
		tileSize: tileSize,
		format:   b.format,
	}

	seen := make(map[string]int)
	for pos, t := range g.All() {
		key := tileKey(t.pix)
		id, ok := seen[key]
		if ok {
			idx.Entries[id].Count++
		} else {
			id = len(idx.Entries)
			seen[key] = id
			idx.Entries = append(idx.Entries, TileCount[T]{Tile: t, Count: 1, First: pos})
		}
		idx.Cells = append(idx.Cells, id)
	}
	return idx
}

// UniqueTiles returns each distinct tile with its frequency, in order of
// first occurrence. The counts sum to the number of grid cells.
func (b *Buffer[T]) UniqueTiles(tileSize image.Point) []TileCount[T] {
	return b.Index(tileSize).Entries
}

// Rows returns the number of tile rows in the indexed grid.
func (x *TileIndex[T]) Rows() int {
	return x.rows
}

// Cols returns the number of tile columns in the indexed grid.
func (x *TileIndex[T]) Cols() int {
	return x.cols
}

// TileSize returns the size of every tile.
func (x *TileIndex[T]) TileSize() image.Point {
	return x.tileSize
}

// EntryAt returns the Entries index of the tile at the given grid cell.
func (x *TileIndex[T]) EntryAt(row, col int) int {
	if row < 0 || col < 0 || row >= x.rows || col >= x.cols {
		violation(ErrOutOfBounds, "tile (%d,%d) not in %dx%d grid", row, col, x.rows, x.cols)
	}
	return x.Cells[row*x.cols+col]
}

// Rebuild reassembles the indexed image from its distinct tiles.
func (x *TileIndex[T]) Rebuild() *Buffer[T] {
	out := Empty[T](x.format, x.cols*x.tileSize.X, x.rows*x.tileSize.Y)
	for i, id := range x.Cells {
		v := out.ViewTileMut(x.tileSize, image.Pt(i%x.cols, i/x.cols))
		v.CopyFrom(x.Entries[id].Tile)
		v.Release()
	}
	return out
}
