package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSqrtmDiagonal(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		4, 0,
		0, 9,
	})

	root, err := sqrtm(a)
	require.NoError(t, err)

	want := []float64{2, 0, 0, 3}
	for i, w := range want {
		assert.InDelta(t, w, real(root[i]), 1e-10)
		assert.InDelta(t, 0, imag(root[i]), 1e-10)
	}
}

func TestSqrtmRoundTrip(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})

	root, err := sqrtm(a)
	require.NoError(t, err)

	// root·root must reproduce a.
	n := 3
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum complex128
			for k := 0; k < n; k++ {
				sum += root[i*n+k] * root[k*n+j]
			}
			assert.InDelta(t, a.At(i, j), real(sum), 1e-9)
			assert.InDelta(t, 0, imag(sum), 1e-9)
		}
	}
}

func TestSqrtmNegativeEigenvalue(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		-1, 0,
		0, 4,
	})

	root, err := sqrtm(a)
	require.NoError(t, err)

	// sqrt(-1) lands on the imaginary axis.
	assert.InDelta(t, 0, real(root[0]), 1e-10)
	assert.InDelta(t, 1, imag(root[0]), 1e-10)
	assert.InDelta(t, 2, real(root[3]), 1e-10)
}

func TestSqrtmSingular(t *testing.T) {
	zero := mat.NewDense(2, 2, nil)

	_, err := sqrtm(zero)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "singular")
}

func TestSqrtmRankDeficient(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{
		1, 1,
		1, 1,
	})

	_, err := sqrtm(a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "singular")
}

func TestSqrtmRejectsNonSquare(t *testing.T) {
	a := mat.NewDense(2, 3, nil)

	_, err := sqrtm(a)
	require.Error(t, err)
}

func TestSolveComplexIdentity(t *testing.T) {
	a := []complex128{
		1, 0,
		0, 1,
	}
	b := []complex128{
		3, 1i,
		2, 5,
	}

	x, err := solveComplex(a, b, 2)
	require.NoError(t, err)

	assert.InDelta(t, 3, real(x[0]), 1e-12)
	assert.InDelta(t, 1, imag(x[1]), 1e-12)
	assert.InDelta(t, 2, real(x[2]), 1e-12)
	assert.InDelta(t, 5, real(x[3]), 1e-12)
}

func TestSolveComplexPivots(t *testing.T) {
	// Leading zero forces a row swap.
	a := []complex128{
		0, 1,
		2, 0,
	}
	b := []complex128{
		1, 0,
		0, 1,
	}

	x, err := solveComplex(a, b, 2)
	require.NoError(t, err)

	// Inverse of [[0,1],[2,0]] is [[0,0.5],[1,0]].
	assert.InDelta(t, 0, real(x[0]), 1e-12)
	assert.InDelta(t, 0.5, real(x[1]), 1e-12)
	assert.InDelta(t, 1, real(x[2]), 1e-12)
	assert.InDelta(t, 0, real(x[3]), 1e-12)
}
