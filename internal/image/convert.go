package image

// Converter translates single pixels of one Format to and from RGBA.
// Every Format has exactly one Converter in the converters table.
type Converter interface {
	// ToRGBA decodes the pixel stored in px.
	ToRGBA(px []byte) (r, g, b, a uint8)

	// FromRGBA encodes a color into px.
	// Grayscale converters store the luminance and drop alpha.
	FromRGBA(px []byte, r, g, b, a uint8)
}

// Luminance returns the 8-bit luma of an sRGB color using the
// 0.299/0.587/0.114 weights. Pure white maps to 255 exactly.
func Luminance(r, g, b uint8) uint8 {
	return uint8((int(r)*299 + int(g)*587 + int(b)*114) / 1000)
}

type grayConverter struct{}

func (grayConverter) ToRGBA(px []byte) (r, g, b, a uint8) {
	v := px[0]
	return v, v, v, 255
}

func (grayConverter) FromRGBA(px []byte, r, g, b, _ uint8) {
	px[0] = Luminance(r, g, b)
}

type rgbConverter struct{}

func (rgbConverter) ToRGBA(px []byte) (r, g, b, a uint8) {
	return px[0], px[1], px[2], 255
}

func (rgbConverter) FromRGBA(px []byte, r, g, b, _ uint8) {
	px[0], px[1], px[2] = r, g, b
}

type rgbaConverter struct{}

func (rgbaConverter) ToRGBA(px []byte) (r, g, b, a uint8) {
	return px[0], px[1], px[2], px[3]
}

func (rgbaConverter) FromRGBA(px []byte, r, g, b, a uint8) {
	px[0], px[1], px[2], px[3] = r, g, b, a
}

type bgraConverter struct{}

func (bgraConverter) ToRGBA(px []byte) (r, g, b, a uint8) {
	return px[2], px[1], px[0], px[3]
}

func (bgraConverter) FromRGBA(px []byte, r, g, b, a uint8) {
	px[0], px[1], px[2], px[3] = b, g, r, a
}

var converters = [formatCount]Converter{
	FormatGray8: grayConverter{},
	FormatRGB8:  rgbConverter{},
	FormatRGBA8: rgbaConverter{},
	FormatBGRA8: bgraConverter{},
}
