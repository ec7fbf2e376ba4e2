package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/sbinet/npyio"
	"gorgonia.org/tensor"
)

// LoadSamples reads a stack of images from a NumPy .npy dump. The array must
// be 4-dimensional (n, c, h, w); float32 and float64 payloads are accepted
// and come back as a float32 tensor.
func LoadSamples(path string) (*tensor.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samples: %w", err)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse samples header: %w", err)
	}

	if r.Header.Descr.Fortran {
		return nil, fmt.Errorf("fortran-ordered samples are not supported")
	}

	shape := r.Header.Descr.Shape
	if len(shape) != 4 {
		return nil, fmt.Errorf("samples must have shape (n, c, h, w), got %v", shape)
	}

	var data []float32
	switch descr := r.Header.Descr.Type; {
	case strings.HasSuffix(descr, "f4"):
		if err := r.Read(&data); err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
	case strings.HasSuffix(descr, "f8"):
		var wide []float64
		if err := r.Read(&wide); err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
		data = make([]float32, len(wide))
		for i, v := range wide {
			data[i] = float32(v)
		}
	default:
		return nil, fmt.Errorf("unsupported sample dtype %q (want float32 or float64)", descr)
	}

	want := shape[0] * shape[1] * shape[2] * shape[3]
	if len(data) != want {
		return nil, fmt.Errorf("samples hold %d values, shape %v needs %d", len(data), shape, want)
	}

	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data)), nil
}

// RescaleToUnit maps samples from the generator's tanh range [-1, 1] onto
// [0, 1], the range the feature network was trained on. The tensor is
// modified in place.
func RescaleToUnit(images *tensor.Dense) error {
	data, ok := images.Data().([]float32)
	if !ok {
		return fmt.Errorf("images must be float32, got %T", images.Data())
	}
	for i, v := range data {
		data[i] = v*0.5 + 0.5
	}
	return nil
}

// MinMax returns the smallest and largest value in the tensor.
func MinMax(images *tensor.Dense) (float32, float32, error) {
	data, ok := images.Data().([]float32)
	if !ok {
		return 0, 0, fmt.Errorf("images must be float32, got %T", images.Data())
	}
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("empty tensor")
	}

	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, nil
}
