package v1

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresModelPath(t *testing.T) {
	_, err := New(WithStats("ref.npz"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model path")
}

func TestNewRequiresStats(t *testing.T) {
	_, err := New(WithModelPath("model.onnx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statistics path")
}

func TestNewRejectsBadDims(t *testing.T) {
	_, err := New(
		WithModelPath("model.onnx"),
		WithStats("ref.npz"),
		WithDims(100),
	)
	require.Error(t, err)
}

func TestNewMissingWeights(t *testing.T) {
	_, err := New(
		WithModelPath(filepath.Join(t.TempDir(), "absent.onnx")),
		WithStats("ref.npz"),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load feature network")
}
