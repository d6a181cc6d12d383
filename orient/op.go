package orient

import "pixgrid/raster"

// Op names a geometric transform.
type Op string

const (
	Transpose      Op = "transpose"
	FlipVertical   Op = "flip-v"
	FlipHorizontal Op = "flip-h"
	Clockwise      Op = "cw"
	Anticlockwise  Op = "ccw"
	HalfTurn       Op = "180"
	// Portrait rotates landscape pictures clockwise and leaves others.
	Portrait Op = "portrait"
	// Landscape rotates portrait pictures anticlockwise and leaves others.
	Landscape Op = "landscape"
)

// Apply transforms b in place and reports whether anything moved.
func Apply[T raster.Component](op Op, b *raster.Buffer[T]) bool {
	switch op {
	case Transpose:
		b.Transpose()
	case FlipVertical:
		b.FlipVertical()
	case FlipHorizontal:
		b.FlipHorizontal()
	case Clockwise:
		b.RotateClockwise()
	case Anticlockwise:
		b.RotateAnticlockwise()
	case HalfTurn:
		b.Rotate180()
	case Portrait:
		if b.Width() <= b.Height() {
			return false
		}
		b.RotateClockwise()
	case Landscape:
		if b.Height() <= b.Width() {
			return false
		}
		b.RotateAnticlockwise()
	default:
		return false
	}
	return true
}
