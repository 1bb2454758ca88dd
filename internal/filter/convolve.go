package filter

import "sync"

// tempPool holds float32 scratch rows for the separable passes.
var tempPool = sync.Pool{
	New: func() any {
		buf := make([]float32, 0, 1024)
		return &buf
	},
}

func getTempBuffer(n int) *[]float32 {
	bufPtr := tempPool.Get().(*[]float32)
	if cap(*bufPtr) < n {
		*bufPtr = make([]float32, n)
	}
	*bufPtr = (*bufPtr)[:n]
	return bufPtr
}

func putTempBuffer(bufPtr *[]float32) {
	tempPool.Put(bufPtr)
}

// Convolve applies a square kernel to an 8-bit row-major buffer and writes
// the result to dst. Samples outside the image are clamped to the nearest
// edge pixel. src and dst must not overlap.
func Convolve(src, dst []byte, width, height int, k Kernel2D) {
	half := k.Size / 2
	for y := range height {
		for x := range width {
			var acc float32
			for ky := range k.Size {
				sy := clampInt(y+ky-half, 0, height-1)
				row := src[sy*width:]
				for kx := range k.Size {
					sx := clampInt(x+kx-half, 0, width-1)
					acc += float32(row[sx]) * k.Weights[ky*k.Size+kx]
				}
			}
			dst[y*width+x] = toByte(acc)
		}
	}
}

// ConvolveSeparable applies a horizontal then a vertical 1D kernel.
// The intermediate result is kept at float precision, so dst may be src.
func ConvolveSeparable(src, dst []byte, width, height int, kx, ky []float32) {
	tempPtr := getTempBuffer(width * height)
	defer putTempBuffer(tempPtr)
	temp := *tempPtr

	halfX := len(kx) / 2
	for y := range height {
		row := src[y*width : (y+1)*width]
		for x := range width {
			var acc float32
			for k, w := range kx {
				acc += float32(row[clampInt(x+k-halfX, 0, width-1)]) * w
			}
			temp[y*width+x] = acc
		}
	}

	halfY := len(ky) / 2
	for y := range height {
		for x := range width {
			var acc float32
			for k, w := range ky {
				acc += temp[clampInt(y+k-halfY, 0, height-1)*width+x] * w
			}
			dst[y*width+x] = toByte(acc)
		}
	}
}

// GaussianBlur blurs pix in place.
// A size <= 0 derives the kernel size from sigma (see GaussianKernel).
func GaussianBlur(pix []byte, width, height int, sigma float64, size int) {
	if sigma <= 0 {
		return
	}
	var kernel []float32
	if size <= 0 {
		kernel = CachedGaussianKernel(sigma)
	} else {
		kernel = GaussianKernelSized(sigma, size)
	}
	ConvolveSeparable(pix, pix, width, height, kernel, kernel)
}

// BoxBlur replaces every pixel of pix by the mean of its
// (2*radius+1)² neighborhood.
func BoxBlur(pix []byte, width, height, radius int) {
	if radius <= 0 {
		return
	}
	kernel := BoxKernel(radius)
	ConvolveSeparable(pix, pix, width, height, kernel, kernel)
}

// toByte rounds and clamps a filtered value to 0-255.
func toByte(v float32) byte {
	v += 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

// clampInt restricts v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
