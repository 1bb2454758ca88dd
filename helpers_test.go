package skel

import (
	"math/rand"
	"strings"
	"testing"
)

// planeFromRows builds a plane from ASCII art: '#' is 255, '.' is 0.
func planeFromRows(t testing.TB, rows ...string) *Plane {
	t.Helper()
	p, err := NewPlane(len(rows[0]), len(rows))
	if err != nil {
		t.Fatalf("NewPlane(%d, %d) = %v", len(rows[0]), len(rows), err)
	}
	for r, line := range rows {
		for c, ch := range line {
			if ch == '#' {
				p.Set(r, c, 255)
			}
		}
	}
	return p
}

// rowsOf renders p as ASCII art: '#' for 255, '.' for 0, '?' otherwise.
func rowsOf(p *Plane) []string {
	rows := make([]string, p.Height())
	var sb strings.Builder
	for r := range p.Height() {
		sb.Reset()
		for c := range p.Width() {
			switch p.Get(r, c) {
			case 255:
				sb.WriteByte('#')
			case 0:
				sb.WriteByte('.')
			default:
				sb.WriteByte('?')
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

func assertRows(t *testing.T, p *Plane, want ...string) {
	t.Helper()
	got := rowsOf(p)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("plane =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

// squarePlane returns an n×n plane with a 255 square spanning rows and
// columns lo..hi on a 0 background.
func squarePlane(n, lo, hi int) *Plane {
	p, _ := NewPlane(n, n)
	for r := lo; r <= hi; r++ {
		for c := lo; c <= hi; c++ {
			p.Set(r, c, 255)
		}
	}
	return p
}

// randomBlobs returns a plane of overlapping random rectangles, with
// scattered noise when noisy is set.
func randomBlobs(rng *rand.Rand, noisy bool) *Plane {
	w, h := 3+rng.Intn(22), 3+rng.Intn(22)
	p, _ := NewPlane(w, h)
	for range 1 + rng.Intn(6) {
		r0, c0 := rng.Intn(h), rng.Intn(w)
		r1, c1 := min(h-1, r0+rng.Intn(8)), min(w-1, c0+rng.Intn(8))
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				p.Set(r, c, 255)
			}
		}
	}
	if noisy {
		for i := range p.Len() {
			if rng.Float64() < 0.3 {
				p.SetIndex(i, 255)
			}
		}
	}
	return p
}

// borderOf returns the values of the outermost rows and columns.
func borderOf(p *Plane) []uint8 {
	w, h := p.Width(), p.Height()
	var out []uint8
	for c := range w {
		out = append(out, p.Get(0, c), p.Get(h-1, c))
	}
	for r := range h {
		out = append(out, p.Get(r, 0), p.Get(r, w-1))
	}
	return out
}
