package orient

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// place puts an untouched picture at dest, renaming it when move is set
// and copying it otherwise. An existing dest is never overwritten.
func place(src, dest string, move bool) error {
	if err := checkDest(src, dest); err != nil {
		return err
	}

	if move {
		slog.Debug("moving", "from", src, "to", dest)
		if err := os.Rename(src, dest); err != nil {
			return fmt.Errorf("could not move %q: %w", src, err)
		}
		return nil
	}

	slog.Debug("copying", "from", src, "to", dest)
	return copyFile(src, dest)
}

func copyFile(src, dest string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("could not open source file %q: %w", src, err)
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			slog.Error("could not close source file", "name", src, "error", closeErr)
		}
	}()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("could not open destination file %q: %w", dest, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close destination file %q: %w", dest, closeErr)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("could not copy from %q to %q: %w", src, dest, err)
	}
	if err = out.Sync(); err != nil {
		return fmt.Errorf("could not flush destination file %q: %w", dest, err)
	}
	return nil
}

func checkDest(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("cannot stat source file %q: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot place non-regular file %q: %s", info.Name(), info.Mode())
	}

	switch _, err = os.Stat(dest); {
	case err == nil:
		return fmt.Errorf("destination file already exists: %q", dest)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
	}
	return nil
}
