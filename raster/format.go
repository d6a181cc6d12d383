// Package raster provides generic, dense, row-major pixel buffers with
// fixed channel layouts, zero-copy windows, exact tiling, geometric
// transforms and content-addressed tile deduplication.
//
// Coordinates are image.Point values with X as the column and Y as the
// row. Sizes use the same type, X being the width and Y the height. Every
// accessor, window and tile operation follows this convention.
package raster

// Format identifies a pixel layout: the number of components per pixel
// and whether the last component is an alpha (coverage) channel.
type Format uint8

const (
	// FormatGA is grayscale plus alpha (2 components per pixel).
	FormatGA Format = iota

	// FormatRGB is opaque colour (3 components per pixel).
	FormatRGB

	// FormatRGBA is colour plus alpha (4 components per pixel).
	FormatRGBA

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Channels is the number of components per pixel.
	Channels int

	// HasAlpha reports whether the last component is coverage.
	HasAlpha bool

	// Name is a short human-readable name.
	Name string
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGA:   {Channels: 2, HasAlpha: true, Name: "GA"},
	FormatRGB:  {Channels: 3, HasAlpha: false, Name: "RGB"},
	FormatRGBA: {Channels: 4, HasAlpha: true, Name: "RGBA"},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Channels returns the number of components per pixel.
func (f Format) Channels() int {
	return f.Info().Channels
}

// HasAlpha reports whether the last component is an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// AlphaIndex returns the component index of the alpha channel, or -1.
func (f Format) AlphaIndex() int {
	if !f.HasAlpha() {
		return -1
	}
	return f.Channels() - 1
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return f.Info().Name
}
