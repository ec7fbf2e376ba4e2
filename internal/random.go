package internal

import (
	"math/rand"
	"time"

	"gorgonia.org/tensor"
)

// UniformBatch draws an image batch with entries uniform in [0, 1), the
// control distribution used to sanity-check a score: random noise should sit
// far from any real reference. A zero seed derives one from the clock so
// repeated control runs stay independent; pass a fixed seed to reproduce a
// control score.
func UniformBatch(shape []int, seed int64) *tensor.Dense {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	n := 1
	for _, d := range shape {
		n *= d
	}

	data := make([]float32, n)
	for i := range data {
		data[i] = rng.Float32()
	}

	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data))
}
