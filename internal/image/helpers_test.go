package image

// rgbaAt decodes the pixel at (x, y), or returns zeros outside the buffer.
func rgbaAt(b *ImageBuf, x, y int) (r, g, bl, a uint8) {
	px := b.PixelBytes(x, y)
	if px == nil {
		return 0, 0, 0, 0
	}
	return converters[b.format].ToRGBA(px)
}
