package internal

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// GaussianSummary holds the first two moments of an activation set: the
// column means and the unbiased sample covariance.
type GaussianSummary struct {
	Mean []float64
	Cov  *mat.Dense
}

// Dim returns the feature width the summary was fitted on.
func (g *GaussianSummary) Dim() int {
	return len(g.Mean)
}

func (g *GaussianSummary) validate() error {
	if g == nil || g.Cov == nil || len(g.Mean) == 0 {
		return fmt.Errorf("incomplete gaussian summary")
	}
	r, c := g.Cov.Dims()
	if r != c {
		return fmt.Errorf("covariance must be square, got %dx%d", r, c)
	}
	if r != len(g.Mean) {
		return fmt.Errorf("mean has %d entries but covariance is %dx%d", len(g.Mean), r, c)
	}
	return nil
}

// FitGaussian estimates mean and covariance of an activation matrix with one
// observation per row. The covariance uses the unbiased N-1 normalization,
// so at least two observations are required.
func FitGaussian(acts mat.Matrix) (*GaussianSummary, error) {
	n, d := acts.Dims()
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 activations to fit a covariance, got %d", n)
	}

	mean := make([]float64, d)
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, acts)
		mean[j] = stat.Mean(col, nil)
	}

	var sym mat.SymDense
	stat.CovarianceMatrix(&sym, acts, nil)

	cov := mat.NewDense(d, d, nil)
	cov.Copy(&sym)

	return &GaussianSummary{Mean: mean, Cov: cov}, nil
}
