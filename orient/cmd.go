package orient

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"pixgrid/imgio"
	"pixgrid/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	imgio.Dirs
	Op     string `help:"Transform to apply" enum:"transpose,flip-v,flip-h,cw,ccw,180,portrait,landscape" default:"portrait"`
	Move   bool   `help:"Remove source pictures once processed" default:"false"`
	Format string `help:"Output format of transformed image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if err := c.Resolve("oriented"); err != nil {
		return err
	}
	if c.Dest == c.Scan {
		return fmt.Errorf("destination must differ from scan folder %q", c.Scan)
	}
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	files, err := c.Prepare()
	if err != nil {
		return err
	}

	var rotated, kept uint64
	results := make(chan bool, len(files))
	for _, name := range files {
		pool.Do(func() error {
			changed, err := c.process(name)
			if err == nil {
				results <- changed
			}
			return err
		})
	}

	stats := pool.Wait()
	close(results)
	for changed := range results {
		if changed {
			rotated++
		} else {
			kept++
		}
	}

	slog.Info("stats", "op", c.Op, "transformed", rotated, "unchanged", kept, "errors", stats.Failed,
		"total", stats.Total())
	return stats.Err()
}

// process transforms one picture and reports whether its pixels moved.
// Pictures the transform leaves alone are copied or moved verbatim.
func (c *CLICmd) process(name string) (bool, error) {
	src := filepath.Join(c.Scan, name)
	logger := slog.Default().With("file", src)

	img, imgType, err := imgio.Load(src)
	if err != nil {
		logger.Error("could not load image", "error", err)
		return false, err
	}

	buf := imgio.FromImage(img, imgio.FormatOf(img))
	outType := imgio.OutputType(imgType, c.Format)
	if !Apply(Op(c.Op), buf) && outType == imgType {
		if err := place(src, filepath.Join(c.Dest, name), c.Move); err != nil {
			logger.Error("could not place image", "to", c.Dest, "error", err)
			return false, err
		}
		return false, nil
	}

	logger.Debug("transformed", "op", c.Op, "width", buf.Width(), "height", buf.Height())
	if err := imgio.Save(imgio.ToImage(buf), outType, c.Dest, imgio.ReplaceExt(name, outType)); err != nil {
		logger.Error("could not save image", "dir", c.Dest, "error", err)
		return false, err
	}

	if c.Move {
		if err := os.Remove(src); err != nil {
			logger.Error("could not remove source", "error", err)
			return true, err
		}
	}
	return true, nil
}
