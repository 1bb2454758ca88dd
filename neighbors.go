package skel

// Neighbor positions within a Neighbors array, counter-clockwise from east.
const (
	East = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast
)

// Neighbors is the 8-neighborhood of a pixel in complement encoding:
// an entry is 0 when that neighbor is foreground and 1 otherwise.
// Entries are ordered East, NorthEast, North, NorthWest, West, SouthWest,
// South, SouthEast.
type Neighbors [8]uint8

// neighborOffsets returns the linear offsets of the eight neighbors for a
// plane of the given width, in Neighbors order.
func neighborOffsets(width int) [8]int {
	return [8]int{
		1,
		1 - width,
		-width,
		-1 - width,
		-1,
		-1 + width,
		width,
		1 + width,
	}
}

// SampleNeighbors encodes the neighbors of the pixel at linear index i.
// i must be an interior index: not on the first or last row or column.
func SampleNeighbors(pix []byte, width, i int, fg uint8) Neighbors {
	var n Neighbors
	sampleInto(&n, pix, neighborOffsets(width), i, fg)
	return n
}

// sampleInto fills n using precomputed offsets.
func sampleInto(n *Neighbors, pix []byte, offsets [8]int, i int, fg uint8) {
	for k, off := range offsets {
		if pix[i+off] == fg {
			n[k] = 0
		} else {
			n[k] = 1
		}
	}
}

// Sum returns the number of non-foreground neighbors.
func (n *Neighbors) Sum() int {
	s := 0
	for _, v := range n {
		s += int(v)
	}
	return s
}
