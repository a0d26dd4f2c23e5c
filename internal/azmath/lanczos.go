package azmath

import "math"

// LanczosKernel is a tabulated windowed-sinc kernel shared by the dynamic
// delay line for sub-sample resampling. It is built once at init and is
// read-only afterward.
type LanczosKernel struct {
	Symmetrical bool
	Length      int // support radius in samples on each side of center
	Scale       float64
	size        int
	table       []float64
}

// NewLanczosKernel tabulates a kernel with the given support length (taps on
// each side of center) and table resolution (samples per unit distance).
func NewLanczosKernel(length int, resolution int) *LanczosKernel {
	if length < 1 {
		length = 1
	}
	if resolution < 1 {
		resolution = 1
	}
	size := length*resolution + 1
	k := &LanczosKernel{
		Symmetrical: true,
		Length:      length,
		Scale:       float64(resolution),
		size:        size,
		table:       make([]float64, size),
	}
	for i := 0; i < size; i++ {
		x := float64(i) / k.Scale
		k.table[i] = sinc(x) * sinc(x/float64(length))
	}
	return k
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// Sample evaluates the kernel at signed distance x from the tap center. The
// table only covers [0, length]; the kernel is symmetrical so negative x is
// mirrored.
func (k *LanczosKernel) Sample(x float64) float64 {
	if x < 0 {
		x = -x
	}
	if x > float64(k.Length) {
		return 0
	}
	idx := x * k.Scale
	lo := int(idx)
	if lo >= k.size-1 {
		return k.table[k.size-1]
	}
	frac := idx - float64(lo)
	return k.table[lo]*(1-frac) + k.table[lo+1]*frac
}

// DefaultLanczosKernel is the process-wide kernel instance referenced by the
// dynamic delay line unless a caller supplies its own (gathered
// process-wide state, initialized by init() and read-only thereafter).
var DefaultLanczosKernel = NewLanczosKernel(3, 64)
