package geometry

import (
	"image"
	"image/color"
	"image/draw"
)

// Mask is a binary pixel grid. It is mutated in place by callers that erase
// regions between contouring passes.
type Mask struct {
	img *image.Gray
}

// NewMask creates an empty (all unset) mask of the given size.
func NewMask(width, height int) *Mask {
	return &Mask{img: image.NewGray(image.Rect(0, 0, width, height))}
}

// MaskFromImage builds a mask from any image. A pixel is set when its gray
// value is nonzero. The result always has its origin at (0, 0).
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if g.Y != 0 {
				m.img.Pix[y*m.img.Stride+x] = 255
			}
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.img.Rect.Dx() }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.img.Rect.Dy() }

// Area returns the total pixel count of the mask.
func (m *Mask) Area() int { return m.Width() * m.Height() }

// At reports whether the pixel at (x, y) is set. Out-of-range pixels are unset.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width() || y >= m.Height() {
		return false
	}
	return m.img.Pix[y*m.img.Stride+x] != 0
}

// Set sets or clears the pixel at (x, y). Out-of-range writes are ignored.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.Width() || y >= m.Height() {
		return
	}
	var v uint8
	if on {
		v = 255
	}
	m.img.Pix[y*m.img.Stride+x] = v
}

// Fill sets or clears every pixel inside r, clipped to the mask.
func (m *Mask) Fill(r image.Rectangle, on bool) {
	c := color.Gray{}
	if on {
		c.Y = 255
	}
	draw.Draw(m.img, r.Intersect(m.img.Rect), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.img.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Gray exposes the backing image. Writes through it change the mask.
func (m *Mask) Gray() *image.Gray { return m.img }

// Replace swaps the mask contents for img, re-binarizing it so that any
// nonzero pixel becomes set. img must have the same size as the mask.
func (m *Mask) Replace(img *image.Gray) {
	for y := 0; y < m.Height(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+m.Width()]
		dst := m.img.Pix[y*m.img.Stride : y*m.img.Stride+m.Width()]
		for x, v := range src {
			if v != 0 {
				dst[x] = 255
			} else {
				dst[x] = 0
			}
		}
	}
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.Width(), m.Height())
	copy(c.img.Pix, m.img.Pix)
	return c
}

// Equal reports whether two masks have identical size and pixels.
func (m *Mask) Equal(o *Mask) bool {
	if m.Width() != o.Width() || m.Height() != o.Height() {
		return false
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y) != o.At(x, y) {
				return false
			}
		}
	}
	return true
}
