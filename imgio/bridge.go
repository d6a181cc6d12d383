// Package imgio moves pixels between image files, image.Image values and
// raster buffers.
//
// Buffers produced here hold float32 components normalized to [0, 1], so
// alpha follows the raster convention: 0 is no coverage, 1 is opaque.
package imgio

import (
	"image"
	"image/color"

	"pixgrid/raster"

	"golang.org/x/image/draw"
)

const maxChannel = 0xffff

// FromImage converts img into a buffer of the given format. Colour is
// reduced to luma for FormatGA and alpha is dropped for FormatRGB.
func FromImage(img image.Image, format raster.Format) *raster.Buffer[float32] {
	sr := img.Bounds()
	w, h := sr.Dx(), sr.Dy()

	src := image.NewNRGBA64(image.Rect(0, 0, w, h))
	draw.Draw(src, src.Bounds(), img, sr.Min, draw.Src)

	c := format.Channels()
	pix := make([]float32, w*h*c)
	for i := range w * h {
		s := src.Pix[i*8 : i*8+8]
		r := uint32(s[0])<<8 | uint32(s[1])
		g := uint32(s[2])<<8 | uint32(s[3])
		b := uint32(s[4])<<8 | uint32(s[5])
		a := uint32(s[6])<<8 | uint32(s[7])

		d := pix[i*c : i*c+c]
		switch format {
		case raster.FormatGA:
			d[0] = norm(luma(r, g, b))
			d[1] = norm(a)
		case raster.FormatRGB:
			d[0], d[1], d[2] = norm(r), norm(g), norm(b)
		case raster.FormatRGBA:
			d[0], d[1], d[2], d[3] = norm(r), norm(g), norm(b), norm(a)
		}
	}
	return raster.New(format, w, h, pix)
}

// ToImage converts a normalized buffer to a non-premultiplied image.
// Components outside [0, 1] are clamped.
func ToImage(b *raster.Buffer[float32]) *image.NRGBA64 {
	w, h := b.Width(), b.Height()
	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	c := b.Channels()
	pix := b.Pix()

	for i := range w * h {
		s := pix[i*c : i*c+c]
		var px color.NRGBA64
		switch b.Format() {
		case raster.FormatGA:
			v := denorm(s[0])
			px = color.NRGBA64{R: v, G: v, B: v, A: denorm(s[1])}
		case raster.FormatRGB:
			px = color.NRGBA64{R: denorm(s[0]), G: denorm(s[1]), B: denorm(s[2]), A: maxChannel}
		case raster.FormatRGBA:
			px = color.NRGBA64{R: denorm(s[0]), G: denorm(s[1]), B: denorm(s[2]), A: denorm(s[3])}
		}
		dst.SetNRGBA64(i%w, i/w, px)
	}
	return dst
}

// FormatOf picks the raster format that keeps everything img's colour
// model can express.
func FormatOf(img image.Image) raster.Format {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return raster.FormatGA
	case color.YCbCrModel, color.CMYKModel:
		return raster.FormatRGB
	}
	return raster.FormatRGBA
}

// luma uses the same weights as color.GrayModel.
func luma(r, g, b uint32) uint32 {
	return (19595*r + 38470*g + 7471*b + 1<<15) >> 16
}

func norm(v uint32) float32 {
	return float32(v) / maxChannel
}

func denorm(v float32) uint16 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return maxChannel
	}
	return uint16(v*maxChannel + 0.5)
}
