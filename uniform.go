package skel

import intImage "github.com/gogpu/skel/internal/image"

// RemoveUniformBlocks rewrites to replacedPixel the center of every
// interior 3×3 block whose nine pixels all equal frontPixel. Blocks are
// judged on the plane as it was before any rewrite. It returns the number
// of pixels rewritten.
//
// Applied to a filled region with replacedPixel set to the background, this
// leaves only the region's one-pixel outline.
func RemoveUniformBlocks(p *Plane, frontPixel, replacedPixel uint8) int {
	w, h := p.Width(), p.Height()
	if w < 3 || h < 3 {
		return 0
	}

	mask := intImage.GetFromDefault(w, h, intImage.FormatGray8)
	defer intImage.PutToDefault(mask)
	marks := mask.Data()

	pix := p.pix
	offsets := neighborOffsets(w)
	count := 0
	for row := 1; row < h-1; row++ {
		for col := 1; col < w-1; col++ {
			i := row*w + col
			if pix[i] != frontPixel || !uniformAround(pix, offsets, i, frontPixel) {
				continue
			}
			marks[i] = 1
			count++
		}
	}

	for i, m := range marks {
		if m == 1 {
			pix[i] = replacedPixel
		}
	}

	Logger().Debug("skel: uniform blocks removed", "count", count)
	return count
}

func uniformAround(pix []byte, offsets [8]int, i int, v uint8) bool {
	for _, off := range offsets {
		if pix[i+off] != v {
			return false
		}
	}
	return true
}
