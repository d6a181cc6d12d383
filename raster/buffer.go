package raster

import (
	"image"
	"math"
	"slices"
)

// Component is the set of scalar types a Buffer can hold. Every member
// copies by value, is ordered, and has T(0) as additive identity and T(1)
// as multiplicative identity.
type Component interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~float32 | ~float64
}

// Buffer is a dense, row-major, channel-interleaved pixel buffer.
//
// The pixel at (x, y) occupies Pix()[y*Width*C + x*C : y*Width*C + x*C + C]
// where C is Format().Channels(). A Buffer owns its storage; views borrow
// it through a region lock (see View and MutView).
//
// Buffers must not be copied by value.
type Buffer[T Component] struct {
	pix      []T
	width    int
	height   int
	channels int
	format   Format

	lock regionLock
}

// New creates a buffer adopting pix as storage without copying.
// pix must hold exactly width*height*channels components.
func New[T Component](format Format, width, height int, pix []T) *Buffer[T] {
	checkShape(format, width, height)
	c := format.Channels()
	if len(pix) != width*height*c {
		violation(ErrDataSize, "%d components for %dx%d %v", len(pix), width, height, format)
	}
	return &Buffer[T]{
		pix:      pix,
		width:    width,
		height:   height,
		channels: c,
		format:   format,
	}
}

// Empty creates a buffer with every component zero. For formats with an
// alpha channel the alpha component is set to T(1), fully opaque.
func Empty[T Component](format Format, width, height int) *Buffer[T] {
	checkShape(format, width, height)
	b := New(format, width, height, make([]T, width*height*format.Channels()))
	if a := format.AlphaIndex(); a >= 0 {
		for i := a; i < len(b.pix); i += b.channels {
			b.pix[i] = T(1)
		}
	}
	return b
}

// Filled creates a buffer with every pixel set to pixel.
func Filled[T Component](format Format, width, height int, pixel []T) *Buffer[T] {
	checkShape(format, width, height)
	c := format.Channels()
	if len(pixel) != c {
		violation(ErrDataSize, "pixel of %d components for %v", len(pixel), format)
	}
	pix := make([]T, width*height*c)
	for i := 0; i < len(pix); i += c {
		copy(pix[i:i+c], pixel)
	}
	return New(format, width, height, pix)
}

// FromLayers interleaves one layer per channel into a new buffer.
// Exactly format.Channels() layers of identical size are required.
func FromLayers[T Component](format Format, layers ...*Layer[T]) *Buffer[T] {
	if !format.IsValid() {
		violation(ErrInvalidFormat, "%d", format)
	}
	c := format.Channels()
	if len(layers) != c {
		violation(ErrLayerMismatch, "%d layers for %v", len(layers), format)
	}
	for i, l := range layers {
		if l == nil {
			violation(ErrLayerMismatch, "layer %d is nil", i)
		}
	}
	w, h := layers[0].Width, layers[0].Height
	for i, l := range layers {
		if l.Width != w || l.Height != h || len(l.Pix) != w*h {
			violation(ErrLayerMismatch, "layer %d is %dx%d, want %dx%d", i, l.Width, l.Height, w, h)
		}
	}
	checkShape(format, w, h)

	pix := make([]T, w*h*c)
	for ch, l := range layers {
		for i, v := range l.Pix {
			pix[i*c+ch] = v
		}
	}
	return New(format, w, h, pix)
}

func checkShape(format Format, width, height int) {
	if !format.IsValid() {
		violation(ErrInvalidFormat, "%d", format)
	}
	if width <= 0 || height <= 0 {
		violation(ErrInvalidDimensions, "%dx%d", width, height)
	}
	if width > math.MaxInt/height/format.Channels() {
		violation(ErrInvalidDimensions, "%dx%d %v overflows storage size", width, height, format)
	}
}

// Clone returns an independent deep copy. Live views are not carried over.
func (b *Buffer[T]) Clone() *Buffer[T] {
	return New(b.format, b.width, b.height, slices.Clone(b.pix))
}

// Equal reports whether both buffers have the same format, size and
// component values.
func (b *Buffer[T]) Equal(o *Buffer[T]) bool {
	return b.format == o.format && b.width == o.width && b.height == o.height &&
		slices.Equal(b.pix, o.pix)
}

// Width returns the number of columns.
func (b *Buffer[T]) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Buffer[T]) Height() int {
	return b.height
}

// Channels returns the number of components per pixel.
func (b *Buffer[T]) Channels() int {
	return b.channels
}

// Format returns the pixel layout.
func (b *Buffer[T]) Format() Format {
	return b.format
}

// Bounds returns the buffer rectangle, anchored at the origin.
func (b *Buffer[T]) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Size returns the dimensions as image.Point{X: width, Y: height}.
func (b *Buffer[T]) Size() image.Point {
	return image.Pt(b.width, b.height)
}

// Pix returns the underlying storage. Callers must treat it as read-only
// and must not hold on to it across transforms, which reallocate.
func (b *Buffer[T]) Pix() []T {
	return b.pix
}

func (b *Buffer[T]) offset(p image.Point) int {
	if !p.In(b.Bounds()) {
		violation(ErrOutOfBounds, "%v not in %v", p, b.Bounds())
	}
	return (p.Y*b.width + p.X) * b.channels
}

func (b *Buffer[T]) checkComponent(c int) {
	if c < 0 || c >= b.channels {
		violation(ErrInvalidComponent, "%d for %v", c, b.format)
	}
}

func pixelRect(p image.Point) image.Rectangle {
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}
}

// Component returns component c of the pixel at p.
func (b *Buffer[T]) Component(p image.Point, c int) T {
	b.checkComponent(c)
	off := b.offset(p)
	b.lock.check(pixelRect(p), false)
	return b.pix[off+c]
}

// SetComponent sets component c of the pixel at p.
func (b *Buffer[T]) SetComponent(p image.Point, c int, v T) {
	b.checkComponent(c)
	off := b.offset(p)
	b.lock.check(pixelRect(p), true)
	b.pix[off+c] = v
}

// Pixel returns a copy of the components of the pixel at p.
func (b *Buffer[T]) Pixel(p image.Point) []T {
	off := b.offset(p)
	b.lock.check(pixelRect(p), false)
	return slices.Clone(b.pix[off : off+b.channels])
}

// SetPixel sets all components of the pixel at p.
func (b *Buffer[T]) SetPixel(p image.Point, px []T) {
	if len(px) != b.channels {
		violation(ErrDataSize, "pixel of %d components for %v", len(px), b.format)
	}
	off := b.offset(p)
	b.lock.check(pixelRect(p), true)
	copy(b.pix[off:off+b.channels], px)
}

// Layer returns an owned copy of channel c across the whole buffer.
func (b *Buffer[T]) Layer(c int) *Layer[T] {
	b.checkComponent(c)
	b.lock.check(b.Bounds(), false)
	l := NewLayer[T](b.width, b.height)
	for i := range l.Pix {
		l.Pix[i] = b.pix[i*b.channels+c]
	}
	return l
}

// Convert applies fn to every component, producing a buffer of another
// component type with the same format and dimensions.
func Convert[T1, T2 Component](b *Buffer[T1], fn func(T1) T2) *Buffer[T2] {
	b.lock.check(b.Bounds(), false)
	pix := make([]T2, len(b.pix))
	for i, v := range b.pix {
		pix[i] = fn(v)
	}
	return New(b.format, b.width, b.height, pix)
}
