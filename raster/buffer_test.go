package raster

import (
	"errors"
	"image"
	"math"
	"slices"
	"testing"
)

// expectViolation runs fn and fails unless it panics with an error
// wrapping want.
func expectViolation(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", want)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		if !errors.Is(err, want) {
			t.Fatalf("panic = %v, want %v", err, want)
		}
	}()
	fn()
}

// sequential returns a buffer whose components count up from zero.
func sequential(format Format, width, height int) *Buffer[int] {
	pix := make([]int, width*height*format.Channels())
	for i := range pix {
		pix[i] = i
	}
	return New(format, width, height, pix)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		width   int
		height  int
		n       int
		wantErr error
	}{
		{"valid GA", FormatGA, 3, 2, 12, nil},
		{"valid RGB", FormatRGB, 3, 2, 18, nil},
		{"valid RGBA", FormatRGBA, 1, 1, 4, nil},
		{"zero width", FormatRGB, 0, 2, 0, ErrInvalidDimensions},
		{"negative height", FormatRGB, 2, -1, 0, ErrInvalidDimensions},
		{"wrong channel depth", FormatRGBA, 2, 2, 12, ErrDataSize},
		{"invalid format", Format(9), 2, 2, 8, ErrInvalidFormat},
		{"size overflows", FormatGA, math.MaxInt / 2, 4, 0, ErrInvalidDimensions},
		{"size overflows by channels", FormatRGBA, math.MaxInt / 4, 2, 0, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pix := make([]uint8, tt.n)
			if tt.wantErr != nil {
				expectViolation(t, tt.wantErr, func() { New(tt.format, tt.width, tt.height, pix) })
				return
			}
			b := New(tt.format, tt.width, tt.height, pix)
			if b.Width() != tt.width || b.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", b.Width(), b.Height(), tt.width, tt.height)
			}
			if b.Channels() != tt.format.Channels() {
				t.Errorf("Channels() = %d, want %d", b.Channels(), tt.format.Channels())
			}
			if len(b.Pix()) != tt.width*tt.height*b.Channels() {
				t.Errorf("len(Pix()) = %d", len(b.Pix()))
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	tests := []struct {
		format Format
		want   []float32
	}{
		{FormatGA, []float32{0, 1}},
		{FormatRGB, []float32{0, 0, 0}},
		{FormatRGBA, []float32{0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			b := Empty[float32](tt.format, 3, 2)
			for y := range 2 {
				for x := range 3 {
					if got := b.Pixel(image.Pt(x, y)); !slices.Equal(got, tt.want) {
						t.Fatalf("Pixel(%d,%d) = %v, want %v", x, y, got, tt.want)
					}
				}
			}
		})
	}
}

func TestFilled(t *testing.T) {
	px := []uint16{10, 20, 30}
	b := Filled(FormatRGB, 4, 3, px)
	for i := 0; i < len(b.Pix()); i += 3 {
		if !slices.Equal(b.Pix()[i:i+3], px) {
			t.Fatalf("pixel at %d = %v, want %v", i/3, b.Pix()[i:i+3], px)
		}
	}

	expectViolation(t, ErrDataSize, func() { Filled(FormatRGBA, 2, 2, px) })
}

func TestFromLayers(t *testing.T) {
	gray := NewLayer[uint8](3, 2)
	alpha := NewLayer[uint8](3, 2)
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i)
		alpha.Pix[i] = uint8(100 + i)
	}

	b := FromLayers(FormatGA, gray, alpha)
	if b.Width() != 3 || b.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", b.Width(), b.Height())
	}
	if got := b.Pixel(image.Pt(2, 1)); !slices.Equal(got, []uint8{5, 105}) {
		t.Errorf("Pixel(2,1) = %v, want [5 105]", got)
	}
	if !slices.Equal(b.Layer(0).Pix, gray.Pix) || !slices.Equal(b.Layer(1).Pix, alpha.Pix) {
		t.Error("Layer() does not round-trip FromLayers()")
	}

	t.Run("shape mismatch", func(t *testing.T) {
		expectViolation(t, ErrLayerMismatch, func() {
			FromLayers(FormatGA, gray, NewLayer[uint8](2, 3))
		})
	})
	t.Run("wrong layer count", func(t *testing.T) {
		expectViolation(t, ErrLayerMismatch, func() {
			FromLayers(FormatRGB, gray, alpha)
		})
	})
	t.Run("nil layer", func(t *testing.T) {
		expectViolation(t, ErrLayerMismatch, func() {
			FromLayers(FormatGA, gray, nil)
		})
	})
}

func TestPixelRoundTrip(t *testing.T) {
	b := Empty[int](FormatRGBA, 5, 4)
	for y := range 4 {
		for x := range 5 {
			b.SetPixel(image.Pt(x, y), []int{x, y, x * y, x + y})
		}
	}
	for y := range 4 {
		for x := range 5 {
			want := []int{x, y, x * y, x + y}
			if got := b.Pixel(image.Pt(x, y)); !slices.Equal(got, want) {
				t.Fatalf("Pixel(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestComponentAccess(t *testing.T) {
	b := sequential(FormatRGB, 4, 3)
	p := image.Pt(3, 1)
	// (1*4 + 3) * 3 = 21
	if got := b.Component(p, 2); got != 23 {
		t.Errorf("Component(%v, 2) = %d, want 23", p, got)
	}
	b.SetComponent(p, 0, -1)
	if got := b.Pixel(p); !slices.Equal(got, []int{-1, 22, 23}) {
		t.Errorf("Pixel(%v) = %v", p, got)
	}

	tests := []struct {
		name string
		want error
		fn   func()
	}{
		{"component index", ErrInvalidComponent, func() { b.Component(p, 3) }},
		{"negative component", ErrInvalidComponent, func() { b.SetComponent(p, -1, 0) }},
		{"x past width", ErrOutOfBounds, func() { b.Pixel(image.Pt(4, 0)) }},
		{"y past height", ErrOutOfBounds, func() { b.SetPixel(image.Pt(0, 3), []int{1, 2, 3}) }},
		{"short pixel", ErrDataSize, func() { b.SetPixel(p, []int{1, 2}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectViolation(t, tt.want, tt.fn)
		})
	}
}

func TestPixelIsCopy(t *testing.T) {
	b := sequential(FormatGA, 2, 2)
	px := b.Pixel(image.Pt(1, 1))
	px[0] = 999
	if b.Component(image.Pt(1, 1), 0) == 999 {
		t.Error("Pixel() aliases storage")
	}

	l := b.Layer(1)
	l.Set(image.Pt(0, 0), 999)
	if b.Component(image.Pt(0, 0), 1) == 999 {
		t.Error("Layer() aliases storage")
	}
}

func TestCloneAndConvert(t *testing.T) {
	b := sequential(FormatRGB, 3, 3)
	c := b.Clone()
	if !c.Equal(b) {
		t.Fatal("Clone() differs from source")
	}
	c.SetComponent(image.Pt(0, 0), 0, 42)
	if b.Component(image.Pt(0, 0), 0) == 42 {
		t.Error("Clone() shares storage")
	}

	f := Convert(b, func(v int) float64 { return float64(v) / 2 })
	if f.Format() != FormatRGB || f.Width() != 3 || f.Height() != 3 {
		t.Fatalf("Convert() changed shape: %v %dx%d", f.Format(), f.Width(), f.Height())
	}
	if got := f.Component(image.Pt(2, 2), 2); got != 13 {
		t.Errorf("converted component = %v, want 13", got)
	}
}

func TestFormatInfo(t *testing.T) {
	tests := []struct {
		format   Format
		channels int
		alpha    int
	}{
		{FormatGA, 2, 1},
		{FormatRGB, 3, -1},
		{FormatRGBA, 4, 3},
	}
	for _, tt := range tests {
		if tt.format.Channels() != tt.channels || tt.format.AlphaIndex() != tt.alpha {
			t.Errorf("%v: channels=%d alpha=%d", tt.format, tt.format.Channels(), tt.format.AlphaIndex())
		}
	}
	if Format(7).IsValid() {
		t.Error("Format(7) should be invalid")
	}
}
