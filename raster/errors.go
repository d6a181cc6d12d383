package raster

import (
	"errors"
	"fmt"
)

// Contract violations. Operations panic with an error wrapping one of
// these before touching any storage; callers are expected to validate
// geometry up front (see Buffer.TileableBy and Format.IsValid).
var (
	// ErrInvalidDimensions is raised when a width, height or size is not positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrInvalidFormat is raised for an unknown Format.
	ErrInvalidFormat = errors.New("raster: invalid format")

	// ErrDataSize is raised when storage or a pixel has the wrong length.
	ErrDataSize = errors.New("raster: data size does not match shape")

	// ErrOutOfBounds is raised when coordinates or windows leave the buffer.
	ErrOutOfBounds = errors.New("raster: coordinates out of bounds")

	// ErrInvalidComponent is raised when a component index is >= channels.
	ErrInvalidComponent = errors.New("raster: component index out of range")

	// ErrNotTileable is raised when dimensions are not a multiple of the tile size.
	ErrNotTileable = errors.New("raster: dimensions not divisible by tile size")

	// ErrLayerMismatch is raised when layers passed to FromLayers disagree.
	ErrLayerMismatch = errors.New("raster: layer shape mismatch")

	// ErrRegionBusy is raised when storage is accessed against a live view lease.
	ErrRegionBusy = errors.New("raster: region held by another view")
)

func violation(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}
