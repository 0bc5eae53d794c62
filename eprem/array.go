package eprem

import (
	"fmt"
)

// Array2 is a dense row-major array indexed as (time, shell).
type Array2 struct {
	N0, N1 int
	Vals   []float64
}

// NewArray2 wraps vals in an Array2. Panics if the lengths are inconsistent.
func NewArray2(n0, n1 int, vals []float64) *Array2 {
	if n0*n1 != len(vals) {
		panic(fmt.Sprintf("Array2 with shape (%d, %d) cannot hold %d values.",
			n0, n1, len(vals)))
	}
	return &Array2{n0, n1, vals}
}

// At returns the element at (i, j).
func (a *Array2) At(i, j int) float64 {
	return a.Vals[i*a.N1 + j]
}

// Row returns the contiguous row i. The returned slice aliases the array.
func (a *Array2) Row(i int) []float64 {
	return a.Vals[i*a.N1 : (i+1)*a.N1]
}

// Array4 is a dense row-major array indexed as (time, shell, species,
// energy).
type Array4 struct {
	N0, N1, N2, N3 int
	Vals           []float64
}

// NewArray4 wraps vals in an Array4. Panics if the lengths are inconsistent.
func NewArray4(n0, n1, n2, n3 int, vals []float64) *Array4 {
	if n0*n1*n2*n3 != len(vals) {
		panic(fmt.Sprintf(
			"Array4 with shape (%d, %d, %d, %d) cannot hold %d values.",
			n0, n1, n2, n3, len(vals)))
	}
	return &Array4{n0, n1, n2, n3, vals}
}

// At returns the element at (i, j, k, l).
func (a *Array4) At(i, j, k, l int) float64 {
	return a.Vals[((i*a.N1+j)*a.N2+k)*a.N3 + l]
}

// Slice returns the contiguous innermost axis at (i, j, k). The returned
// slice aliases the array.
func (a *Array4) Slice(i, j, k int) []float64 {
	base := ((i*a.N1+j)*a.N2 + k) * a.N3
	return a.Vals[base : base+a.N3]
}
