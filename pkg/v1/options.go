package v1

import "io"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	modelPath string
	statsPath string
	dims      int
	batchSize int
	device    string
	raw       bool
	progress  io.Writer
}

// WithModelPath sets the ONNX weight file to load.
func WithModelPath(path string) Option {
	return func(c *clientConfig) {
		c.modelPath = path
	}
}

// WithStats sets the reference statistics archive to score against.
func WithStats(path string) Option {
	return func(c *clientConfig) {
		c.statsPath = path
	}
}

// WithDims sets the feature width: 64, 192, 768 or 2048.
func WithDims(dims int) Option {
	return func(c *clientConfig) {
		c.dims = dims
	}
}

// WithBatchSize sets the number of images per forward pass.
func WithBatchSize(n int) Option {
	return func(c *clientConfig) {
		c.batchSize = n
	}
}

// WithDevice forces a compute device mask (blank runs CPU only).
func WithDevice(device string) Option {
	return func(c *clientConfig) {
		c.device = device
	}
}

// WithRawSamples marks sample dumps as already scaled to [0, 1].
func WithRawSamples() Option {
	return func(c *clientConfig) {
		c.raw = true
	}
}

// WithProgress directs batch progress output to w.
func WithProgress(w io.Writer) Option {
	return func(c *clientConfig) {
		c.progress = w
	}
}
