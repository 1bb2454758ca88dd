package skel

import intImage "github.com/gogpu/skel/internal/image"

// CountForeground returns the number of pixels equal to fg.
func CountForeground(p *Plane, fg uint8) int {
	n := 0
	for _, v := range p.pix {
		if v == fg {
			n++
		}
	}
	return n
}

// CountComponents returns the number of 8-connected regions of pixels
// equal to fg. Border pixels take part like any other.
func CountComponents(p *Plane, fg uint8) int {
	w, h := p.Width(), p.Height()
	pix := p.pix

	mask := intImage.GetFromDefault(w, h, intImage.FormatGray8)
	defer intImage.PutToDefault(mask)
	visited := mask.Data()

	var queue []int
	count := 0
	for start, v := range pix {
		if v != fg || visited[start] == 1 {
			continue
		}
		count++

		visited[start] = 1
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			row, col := i/w, i%w
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					r, c := row+dr, col+dc
					if r < 0 || r >= h || c < 0 || c >= w {
						continue
					}
					j := r*w + c
					if pix[j] == fg && visited[j] == 0 {
						visited[j] = 1
						queue = append(queue, j)
					}
				}
			}
		}
	}
	return count
}
