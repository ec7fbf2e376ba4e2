package internal

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/owulveryck/onnx-go"
	"github.com/owulveryck/onnx-go/backend/x/gorgonnx"
	"gorgonia.org/tensor"
)

var _ Network = (*InceptionV3)(nil)

// InceptionV3 runs a pretrained Inception graph through the pure-Go gorgonnx
// backend. The graph is expected to expose one output per extraction block,
// ordered from the first max pooling (64 features) to the final average
// pooling (2048 features); BlockIndexByDim picks the output matching the
// requested width.
type InceptionV3 struct {
	mu        sync.Mutex
	backend   *gorgonnx.Graph
	model     *onnx.Model
	dims      int
	block     int
	device    Device
	modelPath string
}

func NewInceptionV3(modelPath string, dims int, device Device) (*InceptionV3, error) {
	if err := ValidateDims(dims); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	backend := gorgonnx.NewGraph()
	model := onnx.NewModel(backend)
	if err := model.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	if device == "" {
		device = DetectDevice()
	}

	return &InceptionV3{
		backend:   backend,
		model:     model,
		dims:      dims,
		block:     BlockIndexByDim[dims],
		device:    device,
		modelPath: modelPath,
	}, nil
}

func (n *InceptionV3) Forward(ctx context.Context, batch *tensor.Dense) (*tensor.Dense, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := n.model.SetInput(0, batch); err != nil {
		return nil, fmt.Errorf("set input: %w", err)
	}

	if err := n.backend.Run(); err != nil {
		return nil, fmt.Errorf("run graph: %w", err)
	}

	outputs, err := n.model.GetOutputTensors()
	if err != nil {
		return nil, fmt.Errorf("collect outputs: %w", err)
	}
	if n.block >= len(outputs) {
		return nil, fmt.Errorf("model exposes %d outputs, block %d requested", len(outputs), n.block)
	}

	out, ok := outputs[n.block].(*tensor.Dense)
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type %T", outputs[n.block])
	}

	return out, nil
}

func (n *InceptionV3) Dims() int {
	return n.dims
}

func (n *InceptionV3) Device() Device {
	return n.device
}

func (n *InceptionV3) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.model = nil
	n.backend = nil

	return nil
}
