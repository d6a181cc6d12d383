package imgio

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dirs are the source and destination folders shared by every command.
type Dirs struct {
	Scan string `help:"Source folder to scan" default:"."`
	Dest string `help:"Destination folder for processed pictures. Relative to scan dir if not absolute."`
}

// Resolve makes Scan absolute, checks that it is a directory, and
// resolves Dest against it, using defaultDest when Dest is empty.
func (d *Dirs) Resolve(defaultDest string) error {
	scanDir, err := filepath.Abs(d.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", d.Scan, err)
	}
	d.Scan = scanDir

	if d.Dest == "" {
		d.Dest = defaultDest
	}
	if !filepath.IsAbs(d.Dest) {
		d.Dest = filepath.Join(scanDir, d.Dest)
	}
	return nil
}

// Prepare creates Dest and lists the regular files in Scan.
func (d *Dirs) Prepare() ([]string, error) {
	if err := os.MkdirAll(d.Dest, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create destination folder %q: %w", d.Dest, err)
	}

	entries, err := os.ReadDir(d.Scan)
	if err != nil {
		return nil, fmt.Errorf("unable to read folder %q: %w", d.Scan, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
