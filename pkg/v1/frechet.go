package v1

import (
	"fmt"
	"io"

	"github.com/4thel00z/fid/internal"
	"gonum.org/v1/gonum/mat"
)

// Distance computes the Fréchet distance between two Gaussian summaries
// without touching a network, for callers that already have activation
// statistics.
func Distance(a, b Stats) (float64, error) {
	ga, err := toSummary(a)
	if err != nil {
		return 0, err
	}
	gb, err := toSummary(b)
	if err != nil {
		return 0, err
	}

	eval := internal.NewEvaluator(internal.WithDiagnostics(io.Discard))
	return eval.Distance(ga, gb)
}

func toSummary(s Stats) (*internal.GaussianSummary, error) {
	d := len(s.Mean)
	if d == 0 {
		return nil, fmt.Errorf("empty mean vector")
	}
	if len(s.Cov) != d {
		return nil, fmt.Errorf("covariance has %d rows, want %d", len(s.Cov), d)
	}

	flat := make([]float64, 0, d*d)
	for i, row := range s.Cov {
		if len(row) != d {
			return nil, fmt.Errorf("covariance row %d has %d columns, want %d", i, len(row), d)
		}
		flat = append(flat, row...)
	}

	return &internal.GaussianSummary{
		Mean: append([]float64(nil), s.Mean...),
		Cov:  mat.NewDense(d, d, flat),
	}, nil
}

func fromSummary(g *internal.GaussianSummary) Stats {
	d := g.Dim()
	cov := make([][]float64, d)
	for i := 0; i < d; i++ {
		cov[i] = make([]float64, d)
		for j := 0; j < d; j++ {
			cov[i][j] = g.Cov.At(i, j)
		}
	}
	return Stats{
		Mean: append([]float64(nil), g.Mean...),
		Cov:  cov,
	}
}
