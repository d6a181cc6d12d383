package raster

// Transforms reorder pixels in place. Each one rebuilds the storage slice,
// so no view may be live while it runs.

// Transpose swaps rows and columns: the new buffer is Height x Width and
// its pixel (x, y) is the old pixel (y, x).
func (b *Buffer[T]) Transpose() {
	b.lock.idle("transpose")
	c := b.channels
	pix := make([]T, len(b.pix))
	for y := range b.height {
		for x := range b.width {
			src := (y*b.width + x) * c
			dst := (x*b.height + y) * c
			copy(pix[dst:dst+c], b.pix[src:src+c])
		}
	}
	b.pix = pix
	b.width, b.height = b.height, b.width
}

// FlipVertical reverses the order of rows.
func (b *Buffer[T]) FlipVertical() {
	b.lock.idle("vertical flip")
	row := b.width * b.channels
	pix := make([]T, len(b.pix))
	for y := range b.height {
		dst := (b.height - 1 - y) * row
		copy(pix[dst:dst+row], b.pix[y*row:(y+1)*row])
	}
	b.pix = pix
}

// FlipHorizontal reverses the order of columns in every row.
func (b *Buffer[T]) FlipHorizontal() {
	b.lock.idle("horizontal flip")
	c := b.channels
	pix := make([]T, len(b.pix))
	for y := range b.height {
		base := y * b.width * c
		for x := range b.width {
			src := base + x*c
			dst := base + (b.width-1-x)*c
			copy(pix[dst:dst+c], b.pix[src:src+c])
		}
	}
	b.pix = pix
}

// RotateClockwise rotates by 90 degrees clockwise: transpose, then flip
// along the new column axis.
func (b *Buffer[T]) RotateClockwise() {
	b.Transpose()
	b.FlipHorizontal()
}

// RotateAnticlockwise rotates by 90 degrees anticlockwise: transpose, then
// flip along the new row axis.
func (b *Buffer[T]) RotateAnticlockwise() {
	b.Transpose()
	b.FlipVertical()
}

// Rotate180 rotates by 180 degrees.
func (b *Buffer[T]) Rotate180() {
	b.lock.idle("rotation")
	c := b.channels
	n := len(b.pix)
	pix := make([]T, n)
	for i := 0; i < n; i += c {
		copy(pix[n-i-c:n-i], b.pix[i:i+c])
	}
	b.pix = pix
}
