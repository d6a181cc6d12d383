// Package palette provides the built-in palettes and loads Microsoft RIFF
// palette (.pal) files.
package palette

import (
	"fmt"
	"image/color"
	"image/color/palette"
	"log/slog"
	"os"
	"slices"
	"sort"
)

var builtin = map[string]color.Palette{
	"bw": {
		color.RGBA{0x00, 0x00, 0x00, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
	},
	// six-colour e-paper panels
	"spectra6": {
		color.RGBA{0x00, 0x00, 0x00, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
		color.RGBA{0xff, 0x00, 0x00, 0xff},
		color.RGBA{0x00, 0xff, 0x00, 0xff},
		color.RGBA{0x00, 0x00, 0xff, 0xff},
		color.RGBA{0xff, 0xff, 0x00, 0xff},
	},
	"vga16": {
		color.RGBA{0x00, 0x00, 0x00, 0xff},
		color.RGBA{0x00, 0x00, 0xaa, 0xff},
		color.RGBA{0x00, 0xaa, 0x00, 0xff},
		color.RGBA{0x00, 0xaa, 0xaa, 0xff},
		color.RGBA{0xaa, 0x00, 0x00, 0xff},
		color.RGBA{0xaa, 0x00, 0xaa, 0xff},
		color.RGBA{0xaa, 0x55, 0x00, 0xff},
		color.RGBA{0xaa, 0xaa, 0xaa, 0xff},
		color.RGBA{0x55, 0x55, 0x55, 0xff},
		color.RGBA{0x55, 0x55, 0xff, 0xff},
		color.RGBA{0x55, 0xff, 0x55, 0xff},
		color.RGBA{0x55, 0xff, 0xff, 0xff},
		color.RGBA{0xff, 0x55, 0x55, 0xff},
		color.RGBA{0xff, 0x55, 0xff, 0xff},
		color.RGBA{0xff, 0xff, 0x55, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
	},
	"gray4":   grays(4),
	"gray16":  grays(16),
	"websafe": palette.WebSafe,
	"plan9":   palette.Plan9,
}

func grays(n int) color.Palette {
	p := make(color.Palette, n)
	for i := range n {
		p[i] = color.Gray{Y: uint8(i * 0xff / (n - 1))}
	}
	return p
}

// Names returns the names of the built-in palettes, sorted.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadPalette returns the built-in palette called name, or reads name as
// a RIFF palette file. Every palette stored in the file is concatenated.
// The returned palette is a copy and may be modified.
func LoadPalette(name string) (color.Palette, error) {
	if p, ok := builtin[name]; ok {
		return slices.Clone(p), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", name, err)
	}

	var res color.Palette
	for _, p := range pals {
		res = append(res, p...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette %q has no colors", name)
	}
	return res, nil
}
