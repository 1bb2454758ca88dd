package skel

import intImage "github.com/gogpu/skel/internal/image"

// ThinStats summarizes a Thin call.
type ThinStats struct {
	// Passes is the number of full scans, including the final scan that
	// found nothing to delete.
	Passes int

	// Deleted is the total number of pixels turned into background.
	Deleted int
}

// Thin reduces the foreground of p to a one-pixel-wide skeleton with
// Hilditch's algorithm, mutating p in place.
//
// Each pass scans the interior in raster order and marks a foreground pixel
// for deletion when it is not 4-surrounded by foreground, has at least two
// foreground neighbors, has connectivity 1, and stays at connectivity 1
// if its marked north and west neighbors are assumed deleted. The marks
// are applied once the scan completes. Passes repeat until one marks
// nothing. The outermost rows and columns are never modified.
//
// The deletion mask is zeroed once per call and accumulates across passes,
// so marks from earlier passes still take part in the north and west
// checks. This keeps solid blocks of even size from eroding away.
//
// Planes smaller than 3×3 are left untouched.
func Thin(p *Plane, opts ...Option) ThinStats {
	o := resolveOptions(opts)
	w, h := p.Width(), p.Height()

	var stats ThinStats
	if w < 3 || h < 3 {
		return stats
	}

	// Pooled buffers come back zeroed.
	mask := intImage.GetFromDefault(w, h, intImage.FormatGray8)
	defer intImage.PutToDefault(mask)
	marks := mask.Data()

	pix := p.pix
	log := Logger()
	for {
		stats.Passes++

		deleted := markDeletable(pix, marks, w, h, o.foreground)
		log.Debug("skel: thinning pass", "pass", stats.Passes, "deleted", deleted)
		if deleted == 0 {
			break
		}

		for i, m := range marks {
			if m == 1 {
				pix[i] = o.background
			}
		}
		stats.Deleted += deleted
	}

	log.Debug("skel: thinning done", "passes", stats.Passes, "deleted", stats.Deleted)
	return stats
}

// markDeletable runs one scan over the interior of pix and sets marks[i]
// for every deletable pixel. It returns the number of new marks.
func markDeletable(pix, marks []byte, w, h int, fg uint8) int {
	offsets := neighborOffsets(w)
	var n Neighbors

	deleted := 0
	for row := 1; row < h-1; row++ {
		for col := 1; col < w-1; col++ {
			i := row*w + col
			if pix[i] != fg {
				continue
			}

			sampleInto(&n, pix, offsets, i, fg)

			// Interior of a 4-connected region.
			if n[East] == 0 && n[North] == 0 && n[West] == 0 && n[South] == 0 {
				continue
			}
			// End points and isolated pixels stay.
			if n.Sum() > 6 {
				continue
			}
			if n.Connectivity() != 1 {
				continue
			}

			if marks[i-w] == 1 {
				n[North] = 1
				if n.Connectivity() != 1 {
					continue
				}
				n[North] = 0
			}

			// Unlike north, the west entry is not restored afterwards.
			if marks[i-1] == 1 {
				n[West] = 1
				if n.Connectivity() != 1 {
					continue
				}
			}

			marks[i] = 1
			deleted++
		}
	}
	return deleted
}
