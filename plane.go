package skel

import (
	"image"

	"github.com/gogpu/skel/internal/filter"
	intImage "github.com/gogpu/skel/internal/image"
)

// Blur defaults used by Plane.GaussianBlur when given zero values.
const (
	DefaultBlurSigma = 1.4
	DefaultBlurSize  = 5
)

// Plane is a single-channel 8-bit intensity image stored row-major:
// the pixel at (row, col) lives at index row*Width()+col.
//
// Plane is not safe for concurrent mutation. Distinct planes may be
// processed from different goroutines.
type Plane struct {
	buf *intImage.ImageBuf
	pix []byte
}

// NewPlane creates a zeroed plane.
// Returns ErrInvalidDimensions if width or height is not positive.
func NewPlane(width, height int) (*Plane, error) {
	buf, err := intImage.NewImageBuf(width, height, intImage.FormatGray8)
	if err != nil {
		return nil, err
	}
	return planeFromBuf(buf), nil
}

// NewPlaneFromPix wraps pix as a width×height plane without copying.
// pix must hold at least width*height bytes; extra bytes are ignored.
func NewPlaneFromPix(pix []byte, width, height int) (*Plane, error) {
	buf, err := intImage.FromRaw(pix, width, height, intImage.FormatGray8, width)
	if err != nil {
		return nil, err
	}
	return planeFromBuf(buf), nil
}

// PlaneFromImage converts img to a plane using the luminance weights
// 0.299 R + 0.587 G + 0.114 B. Alpha is ignored.
func PlaneFromImage(img image.Image) (*Plane, error) {
	if img.Bounds().Empty() {
		return nil, ErrInvalidDimensions
	}
	return planeFromBuf(intImage.FromStdImage(img).ToGray8()), nil
}

// PlaneFromBuf converts a decoded buffer of any format to a plane.
func PlaneFromBuf(b *ImageBuf) *Plane {
	return planeFromBuf(b.ToGray8())
}

// planeFromBuf wraps a tightly packed Gray8 buffer.
func planeFromBuf(buf *intImage.ImageBuf) *Plane {
	return &Plane{buf: buf, pix: buf.Data()}
}

// Width returns the number of columns.
func (p *Plane) Width() int {
	return p.buf.Width()
}

// Height returns the number of rows.
func (p *Plane) Height() int {
	return p.buf.Height()
}

// Len returns Width()*Height().
func (p *Plane) Len() int {
	return len(p.pix)
}

// Pix returns the underlying pixel slice. Writes are visible to the plane.
func (p *Plane) Pix() []byte {
	return p.pix
}

// Get returns the value at (row, col), or 0 outside the plane.
func (p *Plane) Get(row, col int) uint8 {
	if !p.contains(row, col) {
		return 0
	}
	return p.pix[row*p.Width()+col]
}

// Set stores v at (row, col). Out-of-range coordinates are ignored.
func (p *Plane) Set(row, col int, v uint8) {
	if !p.contains(row, col) {
		return
	}
	p.pix[row*p.Width()+col] = v
}

// GetIndex returns the value at linear index i.
func (p *Plane) GetIndex(i int) uint8 {
	return p.pix[i]
}

// SetIndex stores v at linear index i.
func (p *Plane) SetIndex(i int, v uint8) {
	p.pix[i] = v
}

func (p *Plane) contains(row, col int) bool {
	return row >= 0 && row < p.Height() && col >= 0 && col < p.Width()
}

// Fill sets every pixel to v.
func (p *Plane) Fill(v uint8) {
	p.buf.FillGray(v)
}

// Clone returns a deep copy of the plane.
func (p *Plane) Clone() *Plane {
	return planeFromBuf(p.buf.Clone())
}

// Invert replaces every value v with 255-v.
func (p *Plane) Invert() {
	for i, v := range p.pix {
		p.pix[i] = 255 - v
	}
}

// GaussianBlur smooths the plane with a size×size Gaussian kernel.
// Edges are clamped and results rounded to the nearest value.
// A sigma or size of zero selects DefaultBlurSigma or DefaultBlurSize.
func (p *Plane) GaussianBlur(sigma float64, size int) {
	if sigma <= 0 {
		sigma = DefaultBlurSigma
	}
	if size <= 0 {
		size = DefaultBlurSize
	}

	w, h := p.Width(), p.Height()
	src := intImage.GetFromDefault(w, h, intImage.FormatGray8)
	defer intImage.PutToDefault(src)
	copy(src.Data(), p.pix)

	filter.Convolve(src.Data(), p.pix, w, h, filter.CachedGaussianKernel2D(sigma, size))
}

// Blur smooths the plane with a separable Gaussian whose kernel spans
// three standard deviations on each side. It is a no-op for sigma <= 0.
func (p *Plane) Blur(sigma float64) {
	filter.GaussianBlur(p.pix, p.Width(), p.Height(), sigma, 0)
}

// BoxBlur replaces every pixel with the mean of its (2*radius+1)²
// neighborhood, clamping at the edges. It is a no-op for radius <= 0.
func (p *Plane) BoxBlur(radius int) {
	filter.BoxBlur(p.pix, p.Width(), p.Height(), radius)
}

// ToImage returns a copy of the plane as an *image.Gray.
func (p *Plane) ToImage() *image.Gray {
	return p.buf.ToStdImage().(*image.Gray)
}

// SavePNG writes the plane as an 8-bit grayscale PNG.
func (p *Plane) SavePNG(path string) error {
	return p.buf.SavePNG(path)
}

// SaveBMP writes the plane as a BMP file.
func (p *Plane) SaveBMP(path string) error {
	return p.buf.SaveBMP(path)
}
