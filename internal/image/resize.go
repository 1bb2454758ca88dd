package image

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales b down so that its width does not exceed maxWidth,
// keeping the aspect ratio. Catmull-Rom resampling is used.
// If b already fits, or maxWidth is not positive, b is returned unchanged.
func Resize(b *ImageBuf, maxWidth int) *ImageBuf {
	if maxWidth <= 0 || b.width <= maxWidth {
		return b
	}

	height := b.height * maxWidth / b.width
	if height < 1 {
		height = 1
	}

	src := b.ToStdImage()
	rect := image.Rect(0, 0, maxWidth, height)

	var dst draw.Image
	if b.format == FormatGray8 {
		dst = image.NewGray(rect)
	} else {
		dst = image.NewNRGBA(rect)
	}
	draw.CatmullRom.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)

	return FromStdImage(dst)
}
