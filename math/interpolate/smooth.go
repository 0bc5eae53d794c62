package interpolate

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// A Kernel is a symmetric smoothing window. Its weights multiply the
// samples centered on the point being smoothed.
type Kernel struct {
	weights []float64
	radius  int
}

// A BoundaryCondition is the rule used to read samples when the
// smoothing window hangs past an end of the data. Extension repeats the
// end value, Reflection mirrors the data about its ends, and ZeroPad
// reads zeros.
type BoundaryCondition int

const (
	Extension BoundaryCondition = iota
	Reflection
	ZeroPad
)

// sample reads xs at i, which may be out of range on either side.
func (b BoundaryCondition) sample(xs []float64, i int) float64 {
	n := len(xs)
	if i >= 0 && i < n { return xs[i] }

	switch b {
	case ZeroPad:
		return 0
	case Reflection:
		if i < 0 { return xs[-1-i] }
		return xs[2*n-1-i]
	}
	if i < 0 { return xs[0] }
	return xs[n-1]
}

// Convolve smooths xs with the kernel and returns the result. Points
// within a window radius of either end are completed with b.
func (k *Kernel) Convolve(xs []float64, b BoundaryCondition) []float64 {
	n, r := len(xs), k.radius
	out := make([]float64, n)

	for i := range out {
		sum := 0.0
		if i >= r && i+r < n {
			for j, w := range k.weights {
				sum += w * xs[i+j-r]
			}
		} else {
			for j, w := range k.weights {
				sum += w * b.sample(xs, i+j-r)
			}
		}
		out[i] = sum
	}
	return out
}

func newKernel(width int) *Kernel {
	if width%2 != 1 { panic("Kernel width must be odd.") }
	return &Kernel{weights: make([]float64, width), radius: width / 2}
}

func (k *Kernel) normalize() {
	sum := 0.0
	for _, w := range k.weights { sum += w }
	for i := range k.weights { k.weights[i] /= sum }
}

// NewTophatKernel creates a flat smoothing kernel of the given width.
func NewTophatKernel(width int) *Kernel {
	k := newKernel(width)
	for i := range k.weights { k.weights[i] = 1 }
	k.normalize()
	return k
}

// NewGaussianKernel creates a Gaussian smoothing kernel with the given
// window width, standard deviation sigma, and point separation dx.
func NewGaussianKernel(width int, sigma, dx float64) *Kernel {
	k := newKernel(width)
	for i := range k.weights {
		x := float64(i-k.radius) * dx
		k.weights[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	k.normalize()
	return k
}

// NewSavGolKernel creates a Savitzky-Golay smoothing kernel. Convolving
// with it is equivalent to fitting a polynomial of the given order over
// each window of the data and reading the fit at the window's center,
// so it preserves polynomial features up to that order where a tophat
// or Gaussian would flatten them.
func NewSavGolKernel(order, width int) *Kernel {
	k := newKernel(width)
	if width <= order {
		panic("Kernel width must be larger than the polynomial order.")
	}
	k.weights = savGolWeights(order, width)
	return k
}

// savGolWeights solves the least squares normal equations for the
// polynomial fit over one window. The returned weights express the
// fit's value at the window center as a linear combination of the
// samples, which is what makes the fit a convolution.
func savGolWeights(order, width int) []float64 {
	r := width / 2

	// norm[a][b] = sum over the window offsets i of i^(a+b).
	norm := mat.NewDense(order+1, order+1, nil)
	for a := 0; a <= order; a++ {
		for b := 0; b <= order; b++ {
			sum := 0.0
			for i := -r; i <= r; i++ {
				sum += math.Pow(float64(i), float64(a+b))
			}
			norm.Set(a, b, sum)
		}
	}

	var lu mat.LU
	lu.Factorize(norm)
	rhs := mat.NewVecDense(order+1, nil)
	rhs.SetVec(0, 1)
	coef := mat.NewVecDense(order+1, nil)
	if err := lu.SolveVecTo(coef, false, rhs); err != nil {
		panic("The Savitzky-Golay normal equations are singular.")
	}

	ws := make([]float64, width)
	for i := -r; i <= r; i++ {
		pow, sum := 1.0, 0.0
		for a := 0; a <= order; a++ {
			sum += coef.AtVec(a) * pow
			pow *= float64(i)
		}
		ws[i+r] = sum
	}
	return ws
}

// SmoothPositive smooths xs with a Savitzky-Golay kernel of the given
// polynomial order and window width, then floors non-positive values to
// the smallest positive float64. The result is safe to pass to a
// logarithm.
func SmoothPositive(xs []float64, order, width int) []float64 {
	k := NewSavGolKernel(order, width)
	out := k.Convolve(xs, Extension)
	for i := range out {
		if out[i] <= 0 { out[i] = math.SmallestNonzeroFloat64 }
	}
	return out
}
