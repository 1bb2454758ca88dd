package skel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/makeworld-the-better-one/dither/v2"
)

// ErrUnknownDither is returned for a DitherMethod outside the defined set.
var ErrUnknownDither = errors.New("skel: unknown dither method")

// DitherMethod selects the algorithm used by Dither.
type DitherMethod int

// Dither methods.
const (
	// DitherFloydSteinberg diffuses error to four neighbors.
	DitherFloydSteinberg DitherMethod = iota

	// DitherAtkinson diffuses 3/4 of the error, keeping highlights crisp.
	DitherAtkinson

	// DitherStucki diffuses error over a wider 12-pixel window.
	DitherStucki

	// DitherBayer applies a 4×4 ordered threshold map. It is stable under
	// small input changes but leaves a visible cross-hatch.
	DitherBayer
)

var ditherNames = [...]string{
	DitherFloydSteinberg: "floyd-steinberg",
	DitherAtkinson:       "atkinson",
	DitherStucki:         "stucki",
	DitherBayer:          "bayer",
}

// String returns the method's flag name.
func (m DitherMethod) String() string {
	if m < 0 || int(m) >= len(ditherNames) {
		return fmt.Sprintf("DitherMethod(%d)", int(m))
	}
	return ditherNames[m]
}

// ParseDitherMethod returns the method named s, as printed by String.
func ParseDitherMethod(s string) (DitherMethod, error) {
	for m, name := range ditherNames {
		if strings.EqualFold(s, name) {
			return DitherMethod(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDither, s)
}

// bilevelPalette is indexed by the dithered output: 0 black, 1 white.
var bilevelPalette = []color.Color{color.Black, color.White}

// Threshold binarizes p in place: values at or above level become the
// foreground value, everything else the background value.
func Threshold(p *Plane, level uint8, opts ...Option) {
	o := resolveOptions(opts)
	for i, v := range p.pix {
		if v >= level {
			p.pix[i] = o.foreground
		} else {
			p.pix[i] = o.background
		}
	}
}

// Dither reduces img to two levels and returns it as a plane in which
// white becomes the foreground value and black the background value.
func Dither(img image.Image, method DitherMethod, opts ...Option) (*Plane, error) {
	d := dither.NewDitherer(bilevelPalette)
	switch method {
	case DitherFloydSteinberg:
		d.Matrix = dither.FloydSteinberg
		d.Serpentine = true
	case DitherAtkinson:
		d.Matrix = dither.Atkinson
	case DitherStucki:
		d.Matrix = dither.Stucki
		d.Serpentine = true
	case DitherBayer:
		d.Mapper = dither.Bayer(4, 4, 1.0)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownDither, method)
	}

	bounds := img.Bounds()
	p, err := NewPlane(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	o := resolveOptions(opts)
	pal := d.DitherPaletted(img)
	w := p.Width()
	for y := range p.Height() {
		for x := range w {
			if pal.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y) == 1 {
				p.pix[y*w+x] = o.foreground
			} else {
				p.pix[y*w+x] = o.background
			}
		}
	}
	return p, nil
}
