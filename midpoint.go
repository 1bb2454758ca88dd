package skel

import intImage "github.com/gogpu/skel/internal/image"

// SkeletonizeByMidpoint approximates a skeleton by keeping the midpoint of
// every maximal foreground run, first along each row and then along each
// column. All other pixels, including non-binary ones, are rewritten to the
// background value.
//
// The result is cheap to compute but, unlike Thin, does not preserve
// connectivity.
func SkeletonizeByMidpoint(p *Plane, opts ...Option) {
	o := resolveOptions(opts)
	w, h := p.Width(), p.Height()

	mask := intImage.GetFromDefault(w, h, intImage.FormatGray8)
	defer intImage.PutToDefault(mask)
	marks := mask.Data()

	pix := p.pix
	for row := range h {
		markRunMidpoints(pix, marks, row*w, 1, w, o.foreground)
	}
	for col := range w {
		markRunMidpoints(pix, marks, col, w, h, o.foreground)
	}

	for i, m := range marks {
		if m == 1 {
			pix[i] = o.foreground
		} else {
			pix[i] = o.background
		}
	}
}

// markRunMidpoints scans n pixels starting at index start and advancing by
// step. For every run of fg values it marks the index (first+end)/2, where
// end is the first position past the run. A run still open at the end of
// the line is closed there.
func markRunMidpoints(pix, marks []byte, start, step, n int, fg uint8) {
	first := -1
	for k := 0; k <= n; k++ {
		if k < n && pix[start+k*step] == fg {
			if first < 0 {
				first = k
			}
			continue
		}
		if first >= 0 {
			marks[start+(first+k)/2*step] = 1
			first = -1
		}
	}
}
