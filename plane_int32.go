package skel

// Int32Plane is a widened copy of a Plane for arithmetic that overflows
// a byte, such as gradient sums.
type Int32Plane struct {
	width  int
	height int
	pix    []int32
}

// ToInt32 returns a widened copy of p.
func (p *Plane) ToInt32() *Int32Plane {
	pix := make([]int32, len(p.pix))
	for i, v := range p.pix {
		pix[i] = int32(v)
	}
	return &Int32Plane{width: p.Width(), height: p.Height(), pix: pix}
}

// Width returns the number of columns.
func (q *Int32Plane) Width() int { return q.width }

// Height returns the number of rows.
func (q *Int32Plane) Height() int { return q.height }

// Pix returns the underlying values, row-major.
func (q *Int32Plane) Pix() []int32 { return q.pix }

// At returns the value at (row, col), or 0 outside the plane.
func (q *Int32Plane) At(row, col int) int32 {
	if row < 0 || row >= q.height || col < 0 || col >= q.width {
		return 0
	}
	return q.pix[row*q.width+col]
}
