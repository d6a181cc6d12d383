// Package colourmap maps scalar positions to colours by linear
// interpolation between sorted anchors.
package colourmap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"sort"

	"pixgrid/raster"
)

// Colour is a non-premultiplied RGBA colour with components in [0, 1].
type Colour [4]float64

// Anchor pins a colour to a position on the map's domain.
type Anchor struct {
	Pos    float64
	Colour Colour
}

// ErrNoAnchors is returned when a map would have no anchors.
var ErrNoAnchors = errors.New("colourmap: no anchors")

// Map is an immutable table of anchors sorted by position.
// It is safe for concurrent use.
type Map struct {
	anchors []Anchor
}

// New builds a map from anchors in any order.
func New(anchors []Anchor) (*Map, error) {
	if len(anchors) == 0 {
		return nil, ErrNoAnchors
	}
	a := slices.Clone(anchors)
	sort.SliceStable(a, func(i, j int) bool { return a[i].Pos < a[j].Pos })
	return &Map{anchors: a}, nil
}

// Even places colours at evenly spaced positions over [0, 1]. A single
// colour yields a constant map.
func Even(colours ...Colour) (*Map, error) {
	anchors := make([]Anchor, len(colours))
	for i, c := range colours {
		pos := 0.0
		if len(colours) > 1 {
			pos = float64(i) / float64(len(colours)-1)
		}
		anchors[i] = Anchor{Pos: pos, Colour: c}
	}
	return New(anchors)
}

// FromHex spaces hex colour codes (#RGB, #RGBA, #RRGGBB, #RRGGBBAA)
// evenly over [0, 1].
func FromHex(codes ...string) (*Map, error) {
	colours := make([]Colour, len(codes))
	for i, code := range codes {
		c, err := ParseHex(code)
		if err != nil {
			return nil, err
		}
		colours[i] = FromColor(c)
	}
	return Even(colours...)
}

// FromPalette spaces the palette's colours evenly over [0, 1].
func FromPalette(p color.Palette) (*Map, error) {
	colours := make([]Colour, len(p))
	for i, c := range p {
		colours[i] = FromColor(c)
	}
	return Even(colours...)
}

// FromColor converts any color.Color to a normalized Colour.
func FromColor(c color.Color) Colour {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Colour{
		float64(n.R) / 0xffff,
		float64(n.G) / 0xffff,
		float64(n.B) / 0xffff,
		float64(n.A) / 0xffff,
	}
}

// Anchors returns a copy of the sorted anchor table.
func (m *Map) Anchors() []Anchor {
	return slices.Clone(m.anchors)
}

// Sample returns the colour at x. Between two anchors the colour is
// interpolated linearly; outside the anchors it is clamped to the nearest
// end. NaN maps to the first anchor.
func (m *Map) Sample(x float64) Colour {
	a := m.anchors
	if x <= a[0].Pos || math.IsNaN(x) {
		return a[0].Colour
	}
	if x >= a[len(a)-1].Pos {
		return a[len(a)-1].Colour
	}

	// first anchor strictly after x; a[i-1].Pos <= x < a[i].Pos
	i := sort.Search(len(a), func(i int) bool { return a[i].Pos > x })
	lo, hi := a[i-1], a[i]
	t := (x - lo.Pos) / (hi.Pos - lo.Pos)

	var c Colour
	for k := range c {
		c[k] = lo.Colour[k] + t*(hi.Colour[k]-lo.Colour[k])
	}
	return c
}

// Apply maps every value of layer through the map into an RGBA buffer.
func (m *Map) Apply(layer *raster.Layer[float64]) *raster.Buffer[float64] {
	c := raster.FormatRGBA.Channels()
	pix := make([]float64, len(layer.Pix)*c)
	for i, v := range layer.Pix {
		col := m.Sample(v)
		copy(pix[i*c:i*c+c], col[:])
	}
	return raster.New(raster.FormatRGBA, layer.Width, layer.Height, pix)
}

// ParseHex parses #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (color.NRGBA, error) {
	var c color.NRGBA
	var n int
	var err error

	switch len(s) {
	case 4:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A = 0xff
	case 5:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		c.A = 0xff
	case 9:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		return c, fmt.Errorf("invalid colour %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	if err != nil {
		return c, fmt.Errorf("could not read colour %q: %w", s, err)
	} else if n < 3 {
		return c, fmt.Errorf("insufficient colour fields in %q: %d", s, n)
	}
	return c, nil
}
