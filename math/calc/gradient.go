// Package calc provides the numerical calculus the analysis modes need.
package calc

// Gradient computes the derivative dy/dx of a sequence of (x, y) points
// with second order differences. The points do not need to be uniformly
// spaced, and the one-sided edge stencils are exact for quadratics just
// like the interior ones.
func Gradient(xs, ys []float64) []float64 {
	n := len(xs)
	if len(ys) != n {
		panic("Length of ys and xs are not the same.")
	}
	if n < 2 {
		panic("Gradient needs at least two points.")
	}

	out := make([]float64, n)
	if n == 2 {
		out[0] = (ys[1] - ys[0]) / (xs[1] - xs[0])
		out[1] = out[0]
		return out
	}

	for i := 1; i < n-1; i++ {
		hl := xs[i] - xs[i-1]
		hr := xs[i+1] - xs[i]
		out[i] = (hl*hl*ys[i+1] + (hr*hr-hl*hl)*ys[i] - hr*hr*ys[i-1]) /
			(hl * hr * (hl + hr))
	}

	h1, h2 := xs[1]-xs[0], xs[2]-xs[1]
	out[0] = -(2*h1+h2)/(h1*(h1+h2))*ys[0] +
		(h1+h2)/(h1*h2)*ys[1] - h1/(h2*(h1+h2))*ys[2]

	h1, h2 = xs[n-2]-xs[n-3], xs[n-1]-xs[n-2]
	out[n-1] = h2/(h1*(h1+h2))*ys[n-3] -
		(h1+h2)/(h1*h2)*ys[n-2] + (2*h2+h1)/(h2*(h1+h2))*ys[n-1]

	return out
}
