// Package filter provides convolution kernels and the convolution passes
// used to smooth grayscale planes before binarization.
//
// All passes operate on row-major 8-bit buffers, clamp samples at the
// image edge and round results to the nearest integer.
package filter
