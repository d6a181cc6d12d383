package raster

import (
	"image"
	"slices"
)

// View is a read-only window into a Buffer's storage. It does not copy.
//
// A View holds a shared lease on its rectangle: other Views may overlap
// it, but no MutView may be taken over any of its pixels, and the parent
// cannot be written there or transformed, until Release is called.
type View[T Component] struct {
	buf  *Buffer[T]
	rect image.Rectangle
	id   uint64
}

// MutView is a window with exclusive write access to its rectangle.
// While it is live no other view may overlap it and the parent buffer
// may not read or write the covered pixels directly.
type MutView[T Component] struct {
	View[T]
}

func (b *Buffer[T]) window(start, size image.Point) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		violation(ErrInvalidDimensions, "window size %v", size)
	}
	r := image.Rectangle{Min: start, Max: start.Add(size)}
	if start.X < 0 || start.Y < 0 || !r.In(b.Bounds()) {
		violation(ErrOutOfBounds, "window %v not in %v", r, b.Bounds())
	}
	return r
}

// View returns a read-only window of the given size whose top-left pixel
// is start.
func (b *Buffer[T]) View(start, size image.Point) *View[T] {
	r := b.window(start, size)
	return &View[T]{buf: b, rect: r, id: b.lock.acquire(r, false)}
}

// ViewMut returns an exclusive, writable window of the given size whose
// top-left pixel is start. Overlapping any live view is a contract
// violation.
func (b *Buffer[T]) ViewMut(start, size image.Point) *MutView[T] {
	r := b.window(start, size)
	return &MutView[T]{View[T]{buf: b, rect: r, id: b.lock.acquire(r, true)}}
}

// Extract copies a window into a new, independent buffer.
func (b *Buffer[T]) Extract(start, size image.Point) *Buffer[T] {
	r := b.window(start, size)
	b.lock.check(r, false)
	return b.copyRect(r)
}

func (b *Buffer[T]) copyRect(r image.Rectangle) *Buffer[T] {
	c := b.channels
	w, h := r.Dx(), r.Dy()
	row := w * c
	pix := make([]T, row*h)
	for y := range h {
		src := ((r.Min.Y+y)*b.width + r.Min.X) * c
		copy(pix[y*row:(y+1)*row], b.pix[src:src+row])
	}
	return New(b.format, w, h, pix)
}

// Release ends the view's lease. The view must not be used afterwards.
// Calling Release more than once is harmless.
func (v *View[T]) Release() {
	if v.id != 0 {
		v.buf.lock.release(v.id)
		v.id = 0
	}
}

func (v *View[T]) live() {
	if v.id == 0 {
		violation(ErrRegionBusy, "use of released view %v", v.rect)
	}
}

// Width returns the number of columns in the window.
func (v *View[T]) Width() int {
	return v.rect.Dx()
}

// Height returns the number of rows in the window.
func (v *View[T]) Height() int {
	return v.rect.Dy()
}

// Bounds returns the window rectangle in parent coordinates.
func (v *View[T]) Bounds() image.Rectangle {
	return v.rect
}

// Format returns the parent's pixel layout.
func (v *View[T]) Format() Format {
	return v.buf.format
}

// offset maps a window-local point to a storage index.
func (v *View[T]) offset(p image.Point) int {
	v.live()
	if p.X < 0 || p.Y < 0 || p.X >= v.rect.Dx() || p.Y >= v.rect.Dy() {
		violation(ErrOutOfBounds, "%v not in %dx%d view", p, v.rect.Dx(), v.rect.Dy())
	}
	q := p.Add(v.rect.Min)
	return (q.Y*v.buf.width + q.X) * v.buf.channels
}

// Component returns component c of the window-local pixel p.
func (v *View[T]) Component(p image.Point, c int) T {
	v.buf.checkComponent(c)
	return v.buf.pix[v.offset(p)+c]
}

// Pixel returns a copy of the window-local pixel p.
func (v *View[T]) Pixel(p image.Point) []T {
	off := v.offset(p)
	return slices.Clone(v.buf.pix[off : off+v.buf.channels])
}

// Row returns a copy of the components of window row y.
func (v *View[T]) Row(y int) []T {
	return slices.Clone(v.row(y))
}

// row aliases the parent's storage for window row y.
func (v *View[T]) row(y int) []T {
	off := v.offset(image.Pt(0, y))
	return v.buf.pix[off : off+v.rect.Dx()*v.buf.channels]
}

// Extract copies the window into a new, independent buffer.
func (v *View[T]) Extract() *Buffer[T] {
	v.live()
	return v.buf.copyRect(v.rect)
}

// Equal reports whether the window holds exactly the same pixels as o.
func (v *View[T]) Equal(o *Buffer[T]) bool {
	if v.buf.format != o.format || v.Width() != o.width || v.Height() != o.height {
		return false
	}
	row := o.width * o.channels
	for y := range v.Height() {
		if !slices.Equal(v.row(y), o.pix[y*row:(y+1)*row]) {
			return false
		}
	}
	return true
}

// SetComponent sets component c of the window-local pixel p.
func (m *MutView[T]) SetComponent(p image.Point, c int, val T) {
	m.buf.checkComponent(c)
	m.buf.pix[m.offset(p)+c] = val
}

// SetPixel sets all components of the window-local pixel p.
func (m *MutView[T]) SetPixel(p image.Point, px []T) {
	if len(px) != m.buf.channels {
		violation(ErrDataSize, "pixel of %d components for %v", len(px), m.buf.format)
	}
	off := m.offset(p)
	copy(m.buf.pix[off:off+m.buf.channels], px)
}

// Fill sets every pixel of the window to px.
func (m *MutView[T]) Fill(px []T) {
	c := m.buf.channels
	if len(px) != c {
		violation(ErrDataSize, "pixel of %d components for %v", len(px), m.buf.format)
	}
	for y := range m.Height() {
		row := m.row(y)
		for i := 0; i < len(row); i += c {
			copy(row[i:i+c], px)
		}
	}
}

// CopyFrom writes src into the window. src must have the window's size
// and the parent's format.
func (m *MutView[T]) CopyFrom(src *Buffer[T]) {
	if src.format != m.buf.format {
		violation(ErrInvalidFormat, "copy %v into %v view", src.format, m.buf.format)
	}
	if src.width != m.Width() || src.height != m.Height() {
		violation(ErrDataSize, "copy %dx%d into %dx%d view", src.width, src.height, m.Width(), m.Height())
	}
	src.lock.check(src.Bounds(), false)
	row := src.width * src.channels
	for y := range m.Height() {
		copy(m.row(y), src.pix[y*row:(y+1)*row])
	}
}
