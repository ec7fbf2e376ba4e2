package internal

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// epsMachine is the float64 machine epsilon.
const epsMachine = 0x1p-52

// sqrtm computes the principal square root of a real square matrix through
// its eigendecomposition: A = V·diag(λ)·V⁻¹ gives √A = V·diag(√λ)·V⁻¹.
//
// Products of covariance matrices are similar to symmetric positive
// semi-definite matrices, so their spectra are real and non-negative up to
// rounding noise. Rounding can still leave small negative eigenvalues whose
// roots land on the imaginary axis, which is why the result is complex and
// callers decide how much imaginary residue to accept. Singular inputs have
// no well-defined principal root and are rejected so that callers can fall
// back to a regularized product.
func sqrtm(a *mat.Dense) ([]complex128, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("matrix square root needs a square matrix, got %dx%d", r, c)
	}
	n := r

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenRight); !ok {
		return nil, fmt.Errorf("eigendecomposition failed")
	}

	values := eig.Values(nil)

	var maxAbs float64
	for _, v := range values {
		if abs := cmplx.Abs(v); abs > maxAbs {
			maxAbs = abs
		}
	}
	if maxAbs == 0 {
		return nil, fmt.Errorf("matrix is singular")
	}
	tol := float64(n) * epsMachine * maxAbs
	for _, v := range values {
		if cmplx.Abs(v) <= tol {
			return nil, fmt.Errorf("matrix is singular to working precision")
		}
	}

	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	// Build Vᵀ and Bᵀ with B = V·diag(√λ), then recover √A = B·V⁻¹ from
	// Vᵀ·X = Bᵀ as √A = Xᵀ, avoiding an explicit inverse.
	vt := make([]complex128, n*n)
	bt := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := vecs.At(i, j)
			vt[j*n+i] = v
			bt[j*n+i] = v * cmplx.Sqrt(values[j])
		}
	}

	x, err := solveComplex(vt, bt, n)
	if err != nil {
		return nil, fmt.Errorf("invert eigenvector basis: %w", err)
	}

	out := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i*n+j] = x[j*n+i]
		}
	}
	return out, nil
}

// solveComplex solves A·X = B by Gaussian elimination with partial pivoting.
// A and B are n×n in row-major order and are both consumed.
func solveComplex(a, b []complex128, n int) ([]complex128, error) {
	for col := 0; col < n; col++ {
		pivot := col
		max := cmplx.Abs(a[col*n+col])
		for row := col + 1; row < n; row++ {
			if abs := cmplx.Abs(a[row*n+col]); abs > max {
				max, pivot = abs, row
			}
		}
		if max == 0 {
			return nil, fmt.Errorf("singular system")
		}
		if pivot != col {
			swapRows(a, n, col, pivot)
			swapRows(b, n, col, pivot)
		}

		inv := 1 / a[col*n+col]
		for row := col + 1; row < n; row++ {
			factor := a[row*n+col] * inv
			if factor == 0 {
				continue
			}
			for k := col; k < n; k++ {
				a[row*n+k] -= factor * a[col*n+k]
			}
			for k := 0; k < n; k++ {
				b[row*n+k] -= factor * b[col*n+k]
			}
		}
	}

	x := make([]complex128, n*n)
	for col := n - 1; col >= 0; col-- {
		for k := 0; k < n; k++ {
			sum := b[col*n+k]
			for row := col + 1; row < n; row++ {
				sum -= a[col*n+row] * x[row*n+k]
			}
			x[col*n+k] = sum / a[col*n+col]
		}
	}
	return x, nil
}

func swapRows(m []complex128, n, i, j int) {
	for k := 0; k < n; k++ {
		m[i*n+k], m[j*n+k] = m[j*n+k], m[i*n+k]
	}
}
