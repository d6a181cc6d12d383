package palette

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestRIFFRoundTrip(t *testing.T) {
	pals := []color.Palette{
		{color.RGBA{1, 2, 3, 0xff}, color.RGBA{250, 128, 0, 0xff}},
		{color.Gray{Y: 77}},
	}

	var buf bytes.Buffer
	n, err := WriteTo(&buf, pals)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != 3 {
		t.Errorf("WriteTo() wrote %d colors, want 3", n)
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	if len(got) != 2 || len(got[0]) != 2 || len(got[1]) != 1 {
		t.Fatalf("ReadFrom() shape = %v", got)
	}
	if got[0][1] != (color.RGBA{250, 128, 0, 0xff}) {
		t.Errorf("color = %v", got[0][1])
	}
	if got[1][0] != (color.RGBA{77, 77, 77, 0xff}) {
		t.Errorf("gray color = %v", got[1][0])
	}
}

func TestReadFromRejectsOtherForms(t *testing.T) {
	data := []byte("RIFF\x04\x00\x00\x00WAVE")
	if _, err := ReadFrom(bytes.NewReader(data)); err == nil {
		t.Fatal("ReadFrom() accepted a WAVE stream")
	}
}

func TestLoadPalette(t *testing.T) {
	for _, name := range Names() {
		p, err := LoadPalette(name)
		if err != nil {
			t.Fatalf("LoadPalette(%q) error = %v", name, err)
		}
		if len(p) < 2 {
			t.Errorf("LoadPalette(%q) has %d colors", name, len(p))
		}
	}

	gray, _ := LoadPalette("gray4")
	if gray[3] != (color.Gray{Y: 0xff}) || gray[1] != (color.Gray{Y: 0x55}) {
		t.Errorf("gray4 = %v", gray)
	}

	gray[0] = color.White
	again, _ := LoadPalette("gray4")
	if again[0] != (color.Gray{}) {
		t.Error("LoadPalette() returned shared built-in storage")
	}
}

func TestLoadPaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sunset.pal")
	var buf bytes.Buffer
	if _, err := WriteTo(&buf, []color.Palette{{color.Black}, {color.White}}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPalette(path)
	if err != nil {
		t.Fatalf("LoadPalette() error = %v", err)
	}
	if len(p) != 2 {
		t.Errorf("LoadPalette() = %d colors, want 2", len(p))
	}

	if _, err := LoadPalette(filepath.Join(t.TempDir(), "missing.pal")); err == nil {
		t.Error("LoadPalette() accepted a missing file")
	}
}
