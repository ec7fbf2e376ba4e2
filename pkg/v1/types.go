package v1

// Stats holds the Gaussian summary of a feature distribution: the
// per-dimension mean and the covariance matrix in row-major order.
type Stats struct {
	Mean []float64   `json:"mean"`
	Cov  [][]float64 `json:"cov"`
}

// Dim returns the feature dimensionality of the summary.
func (s Stats) Dim() int {
	return len(s.Mean)
}
