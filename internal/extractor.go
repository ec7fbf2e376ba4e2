package internal

import (
	"context"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// DefaultBatchSize is how many images go through the network per forward
// pass when nothing else is configured.
const DefaultBatchSize = 50

// Extractor collects per-image feature activations from a Network.
type Extractor struct {
	net       Network
	batchSize int
	out       io.Writer
}

type ExtractorOption func(*Extractor)

// WithBatchSize sets how many images are propagated per forward pass.
func WithBatchSize(n int) ExtractorOption {
	return func(e *Extractor) { e.batchSize = n }
}

// WithProgress streams batch progress and warnings to w.
func WithProgress(w io.Writer) ExtractorOption {
	return func(e *Extractor) { e.out = w }
}

func NewExtractor(net Network, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		net:       net,
		batchSize: DefaultBatchSize,
		out:       io.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Activations runs images through the network in fixed-size chunks and
// returns one feature vector per processed image, one row each, in input
// order. When the image count is not a multiple of the batch size the
// trailing partial chunk is dropped, matching the reference implementations
// so scores stay comparable with published numbers.
func (e *Extractor) Activations(ctx context.Context, images *tensor.Dense) (*mat.Dense, error) {
	shape := images.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("images must have shape (n, c, h, w), got %v", shape)
	}

	n := shape[0]
	if n == 0 {
		return nil, fmt.Errorf("no images to propagate")
	}

	data, ok := images.Data().([]float32)
	if !ok {
		return nil, fmt.Errorf("images must be float32, got %T", images.Data())
	}

	batchSize := e.batchSize
	if batchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if batchSize > n {
		fmt.Fprintln(e.out, "Warning: batch size is bigger than the data size. Setting batch size to data size")
		batchSize = n
	}

	stride := shape[1] * shape[2] * shape[3]
	nBatches := n / batchSize
	dims := e.net.Dims()

	acts := mat.NewDense(nBatches*batchSize, dims, nil)

	for b := 0; b < nBatches; b++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fmt.Fprintf(e.out, "Propagating batch %d/%d\n", b+1, nBatches)

		start := b * batchSize
		chunk := tensor.New(
			tensor.WithShape(batchSize, shape[1], shape[2], shape[3]),
			tensor.WithBacking(data[start*stride:(start+batchSize)*stride]),
		)

		out, err := e.net.Forward(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("forward batch %d: %w", b+1, err)
		}

		vecs, err := poolFeatures(out)
		if err != nil {
			return nil, fmt.Errorf("pool batch %d: %w", b+1, err)
		}
		if len(vecs) != batchSize {
			return nil, fmt.Errorf("network returned %d feature vectors for a batch of %d", len(vecs), batchSize)
		}

		for i, vec := range vecs {
			if len(vec) != dims {
				return nil, fmt.Errorf("dimension mismatch: network produced %d features, requested %d", len(vec), dims)
			}
			acts.SetRow(start+i, vec)
		}
	}

	return acts, nil
}

// poolFeatures reduces a network output to one vector per image. Outputs
// that still carry a spatial extent are collapsed by global average pooling.
func poolFeatures(t *tensor.Dense) ([][]float64, error) {
	raw, err := tensorFloats(t)
	if err != nil {
		return nil, err
	}

	shape := t.Shape()
	switch len(shape) {
	case 2:
		n, d := shape[0], shape[1]
		vecs := make([][]float64, n)
		for i := 0; i < n; i++ {
			vecs[i] = raw[i*d : (i+1)*d]
		}
		return vecs, nil
	case 4:
		n, d, cells := shape[0], shape[1], shape[2]*shape[3]
		vecs := make([][]float64, n)
		for i := 0; i < n; i++ {
			vec := make([]float64, d)
			for j := 0; j < d; j++ {
				base := (i*d + j) * cells
				var sum float64
				for k := 0; k < cells; k++ {
					sum += raw[base+k]
				}
				vec[j] = sum / float64(cells)
			}
			vecs[i] = vec
		}
		return vecs, nil
	default:
		return nil, fmt.Errorf("unexpected activation shape %v", shape)
	}
}

func tensorFloats(t *tensor.Dense) ([]float64, error) {
	switch data := t.Data().(type) {
	case []float64:
		return data, nil
	case []float32:
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported activation type %T", t.Data())
	}
}
