package internal

import (
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultEpsilon is added to the covariance diagonals when the product of
	// the two covariances is too ill-conditioned for a matrix square root.
	DefaultEpsilon = 1e-6

	// imagTolerance bounds the imaginary residue tolerated on the diagonal of
	// the matrix square root before the inputs are considered broken.
	imagTolerance = 1e-3
)

// Evaluator computes the squared Fréchet distance between two Gaussians:
//
//	d² = ||μ1 − μ2||² + Tr(Σ1) + Tr(Σ2) − 2·Tr(√(Σ1·Σ2))
//
// the closed form the FID score is defined by.
type Evaluator struct {
	eps  float64
	diag io.Writer
}

type EvaluatorOption func(*Evaluator)

// WithEpsilon overrides the diagonal offset used by the singular-product
// fallback.
func WithEpsilon(eps float64) EvaluatorOption {
	return func(e *Evaluator) { e.eps = eps }
}

// WithDiagnostics redirects fallback warnings, which go to stdout by default.
func WithDiagnostics(w io.Writer) EvaluatorOption {
	return func(e *Evaluator) { e.diag = w }
}

func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		eps:  DefaultEpsilon,
		diag: os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Distance returns the squared Fréchet distance between two Gaussian
// summaries of matching width. When the covariance product is singular the
// evaluator retries once with a small offset added to both diagonals;
// traces of the unmodified covariances still enter the final sum, so the
// regularization only stabilizes the square root. Numerical noise may leave
// the result marginally below zero for near-identical inputs.
func (e *Evaluator) Distance(a, b *GaussianSummary) (float64, error) {
	if err := a.validate(); err != nil {
		return 0, err
	}
	if err := b.validate(); err != nil {
		return 0, err
	}
	if a.Dim() != b.Dim() {
		return 0, fmt.Errorf("dimension mismatch: %d vs %d", a.Dim(), b.Dim())
	}

	var prod mat.Dense
	prod.Mul(a.Cov, b.Cov)

	root, err := sqrtm(&prod)
	if err != nil || !finiteComplex(root) {
		fmt.Fprintf(e.diag, "fid calculation produces singular product; adding %g to diagonal of cov estimates\n", e.eps)

		var reg mat.Dense
		reg.Mul(offsetDiag(a.Cov, e.eps), offsetDiag(b.Cov, e.eps))

		root, err = sqrtm(&reg)
		if err != nil {
			return 0, fmt.Errorf("matrix square root after regularization: %w", err)
		}
		if !finiteComplex(root) {
			return 0, fmt.Errorf("matrix square root not finite after adding %g to covariance diagonals", e.eps)
		}
	}

	n := a.Dim()

	var maxDiagImag float64
	for i := 0; i < n; i++ {
		if im := math.Abs(imag(root[i*n+i])); im > maxDiagImag {
			maxDiagImag = im
		}
	}
	if maxDiagImag > imagTolerance {
		var maxImag float64
		for _, v := range root {
			if im := math.Abs(imag(v)); im > maxImag {
				maxImag = im
			}
		}
		return 0, fmt.Errorf("imaginary component %g", maxImag)
	}

	var trRoot float64
	for i := 0; i < n; i++ {
		trRoot += real(root[i*n+i])
	}

	diff := make([]float64, n)
	floats.SubTo(diff, a.Mean, b.Mean)

	return floats.Dot(diff, diff) + mat.Trace(a.Cov) + mat.Trace(b.Cov) - 2*trRoot, nil
}

func offsetDiag(m *mat.Dense, eps float64) *mat.Dense {
	n, _ := m.Dims()
	out := mat.NewDense(n, n, nil)
	out.Copy(m)
	for i := 0; i < n; i++ {
		out.Set(i, i, out.At(i, i)+eps)
	}
	return out
}

func finiteComplex(vals []complex128) bool {
	for _, v := range vals {
		if math.IsNaN(real(v)) || math.IsInf(real(v), 0) {
			return false
		}
		if math.IsNaN(imag(v)) || math.IsInf(imag(v), 0) {
			return false
		}
	}
	return true
}
