package filter

import "math"

// GaussianKernel generates a 1D Gaussian kernel for the given radius.
// The kernel is normalized so all values sum to 1.0.
//
// The kernel size is computed as 2 * ceil(radius * 3) + 1, which covers
// 99.7% of the Gaussian distribution (3 standard deviations).
//
// For radius <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}
	return GaussianKernelSized(radius, OptimalKernelSize(radius))
}

// GaussianKernelSized generates a normalized 1D Gaussian kernel with an
// explicit number of taps. Even sizes are rounded up to the next odd size.
// For sigma <= 0 or size <= 1, returns the identity kernel.
func GaussianKernelSized(sigma float64, size int) []float32 {
	if sigma <= 0 || size <= 1 {
		return []float32{1.0}
	}
	if size%2 == 0 {
		size++
	}
	halfSize := size / 2

	kernel := make([]float32, size)

	// G(x) = exp(-x²/(2σ²)); the constant factor cancels in normalization
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := range size {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	invSum := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= invSum
	}
	return kernel
}

// BoxKernel generates a 1D box (uniform) kernel for the given radius.
// All values are equal: 1/(2*radius+1).
func BoxKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	size := radius*2 + 1
	kernel := make([]float32, size)
	val := float32(1.0) / float32(size)
	for i := range kernel {
		kernel[i] = val
	}
	return kernel
}

// Kernel2D is a square convolution kernel stored row-major.
type Kernel2D struct {
	Size    int
	Weights []float32
}

// GaussianKernel2D builds a normalized size×size Gaussian kernel as the
// outer product of two GaussianKernelSized vectors.
func GaussianKernel2D(sigma float64, size int) Kernel2D {
	k1 := GaussianKernelSized(sigma, size)
	n := len(k1)
	weights := make([]float32, n*n)
	for r := range n {
		for c := range n {
			weights[r*n+c] = k1[r] * k1[c]
		}
	}
	return Kernel2D{Size: n, Weights: weights}
}

// Shared kernel caches. Cached slices are read-only.
var (
	gaussian1D = newKernelLRU[int, []float32](64)
	gaussian2D = newKernelLRU[kernel2DKey, Kernel2D](32)
)

// kernel2DKey identifies a square Gaussian kernel. Sigma is quantized to
// hundredths.
type kernel2DKey struct {
	sigma int
	size  int
}

// CachedGaussianKernel returns a cached Gaussian kernel for the radius.
// The returned slice is shared and must not be modified.
func CachedGaussianKernel(radius float64) []float32 {
	return gaussian1D.getOrCreate(int(radius*100), func() []float32 {
		return GaussianKernel(radius)
	})
}

// CachedGaussianKernel2D is GaussianKernel2D backed by a shared cache.
// The returned weights must not be modified.
func CachedGaussianKernel2D(sigma float64, size int) Kernel2D {
	key := kernel2DKey{sigma: int(sigma * 100), size: size}
	return gaussian2D.getOrCreate(key, func() Kernel2D {
		return GaussianKernel2D(sigma, size)
	})
}

// OptimalKernelSize returns the kernel size GaussianKernel uses for a radius.
func OptimalKernelSize(radius float64) int {
	if radius <= 0 {
		return 1
	}
	halfSize := int(math.Ceil(radius * 3))
	return halfSize*2 + 1
}
