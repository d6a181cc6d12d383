package tileset

import (
	"encoding/csv"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"pixgrid/raster"
)

// Atlas packs the distinct tiles of idx left to right, top to bottom,
// columns tiles per row. Unused cells of the last row stay zero.
func Atlas[T raster.Component](idx *raster.TileIndex[T], columns int) *raster.Buffer[T] {
	n := len(idx.Entries)
	cols := min(columns, n)
	rows := (n + cols - 1) / cols
	tile := idx.TileSize()
	format := idx.Entries[0].Tile.Format()

	atlas := raster.Filled(format, cols*tile.X, rows*tile.Y, make([]T, format.Channels()))
	for i, e := range idx.Entries {
		v := atlas.ViewTileMut(tile, image.Pt(i%cols, i/cols))
		v.CopyFrom(e.Tile)
		v.Release()
	}
	return atlas
}

// writeMap writes one CSV record per grid row holding the atlas id of
// every cell.
func writeMap[T raster.Component](w io.Writer, idx *raster.TileIndex[T]) error {
	cw := csv.NewWriter(w)
	record := make([]string, idx.Cols())
	for row := range idx.Rows() {
		for col := range record {
			record[col] = strconv.Itoa(idx.EntryAt(row, col))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeFreq writes the id, use count and first grid cell of every tile.
func writeFreq[T raster.Component](w io.Writer, entries []raster.TileCount[T]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "count", "col", "row"}); err != nil {
		return err
	}
	for id, e := range entries {
		record := []string{
			strconv.Itoa(id),
			strconv.Itoa(e.Count),
			strconv.Itoa(e.First.X),
			strconv.Itoa(e.First.Y),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// saveCSV writes destDir/destName through a temporary file, like
// imgio.Save does for pictures.
func saveCSV(destDir, destName string, write func(io.Writer) error) (err error) {
	out, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, closeErr)
		}
		if err == nil {
			if err = os.Rename(out.Name(), filepath.Join(destDir, destName)); err != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, err)
			}
		}
		if err != nil {
			if rmErr := os.Remove(out.Name()); rmErr != nil {
				slog.Error("could not remove temporary destination", "name", out.Name(), "error", rmErr)
			}
		}
	}()

	if err = write(out); err != nil {
		return fmt.Errorf("could not write %q: %w", destName, err)
	}
	return out.Sync()
}
