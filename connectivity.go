package skel

// Connectivity returns the connectivity number of the center pixel: the
// count of distinct foreground 4-components among its neighbors that the
// pixel joins. Removing a pixel with connectivity 1 does not change the
// local topology.
//
// With the complement encoding of Neighbors the count is
//
//	N6 - N6·N7·N0 + N0 - N0·N1·N2 + N2 - N2·N3·N4 + N4 - N4·N5·N6
func (n *Neighbors) Connectivity() int {
	n0, n1, n2, n3 := int(n[0]), int(n[1]), int(n[2]), int(n[3])
	n4, n5, n6, n7 := int(n[4]), int(n[5]), int(n[6]), int(n[7])

	return n6 - n6*n7*n0 +
		n0 - n0*n1*n2 +
		n2 - n2*n3*n4 +
		n4 - n4*n5*n6
}
