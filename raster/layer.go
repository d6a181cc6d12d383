package raster

import "image"

// Layer is a single channel across a whole image: Width*Height values in
// row-major order.
type Layer[T Component] struct {
	Pix    []T
	Width  int
	Height int
}

// NewLayer allocates a zeroed layer.
func NewLayer[T Component](width, height int) *Layer[T] {
	if width <= 0 || height <= 0 {
		violation(ErrInvalidDimensions, "%dx%d", width, height)
	}
	return &Layer[T]{
		Pix:    make([]T, width*height),
		Width:  width,
		Height: height,
	}
}

func (l *Layer[T]) index(p image.Point) int {
	if p.X < 0 || p.Y < 0 || p.X >= l.Width || p.Y >= l.Height {
		violation(ErrOutOfBounds, "%v not in %dx%d layer", p, l.Width, l.Height)
	}
	return p.Y*l.Width + p.X
}

// At returns the value at p.
func (l *Layer[T]) At(p image.Point) T {
	return l.Pix[l.index(p)]
}

// Set stores v at p.
func (l *Layer[T]) Set(p image.Point, v T) {
	l.Pix[l.index(p)] = v
}
