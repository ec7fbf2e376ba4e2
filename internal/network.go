package internal

import (
	"context"
	"errors"
	"fmt"

	"gorgonia.org/tensor"
)

var (
	ErrStatsNotFound   = errors.New("could not find precomputed statistics")
	ErrUnsupportedDims = errors.New("unsupported feature dimensionality")
)

// Feature widths of the InceptionV3 extraction points used for FID.
const (
	DimFirstMaxPool  = 64
	DimSecondMaxPool = 192
	DimPreAux        = 768
	DimFinalPool     = 2048
)

// BlockIndexByDim maps a feature width to the index of the network output
// that produces it.
var BlockIndexByDim = map[int]int{
	DimFirstMaxPool:  0,
	DimSecondMaxPool: 1,
	DimPreAux:        2,
	DimFinalPool:     3,
}

// ValidDims returns the supported feature widths in ascending order.
func ValidDims() []int {
	return []int{DimFirstMaxPool, DimSecondMaxPool, DimPreAux, DimFinalPool}
}

// ValidateDims rejects feature widths that no extraction point provides.
func ValidateDims(dims int) error {
	if _, ok := BlockIndexByDim[dims]; !ok {
		return fmt.Errorf("%w: %d (valid: %v)", ErrUnsupportedDims, dims, ValidDims())
	}
	return nil
}

// Network turns image batches into feature activations.
type Network interface {
	// Forward runs one batch of shape (n, c, h, w) through the network and
	// returns activations of shape (n, d) or (n, d, h', w').
	Forward(ctx context.Context, batch *tensor.Dense) (*tensor.Dense, error)
	Dims() int
	Device() Device
	Close() error
}

// NetworkFactory builds the feature network for one run.
type NetworkFactory func(ctx context.Context, cfg ModelConfig, dims int, device Device) (Network, error)
