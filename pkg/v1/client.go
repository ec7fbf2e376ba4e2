package v1

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/4thel00z/fid/internal"
)

// Client scores sample dumps against a fixed reference distribution.
type Client struct {
	net       internal.Network
	scores    *internal.ScoreService
	stats     *internal.StatsService
	statsPath string
	raw       bool
}

// New creates a new Client with the given options. A model path and a
// reference statistics archive are required.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		dims:      internal.DimFinalPool,
		batchSize: internal.DefaultBatchSize,
		progress:  io.Discard,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.modelPath == "" {
		return nil, errors.New("model path is required (use WithModelPath)")
	}
	if cfg.statsPath == "" {
		return nil, errors.New("statistics path is required (use WithStats)")
	}
	if err := internal.ValidateDims(cfg.dims); err != nil {
		return nil, err
	}

	net, err := internal.NewInceptionV3(cfg.modelPath, cfg.dims, internal.SelectDevice(cfg.device))
	if err != nil {
		return nil, fmt.Errorf("load feature network: %w", err)
	}

	return &Client{
		net:       net,
		scores:    internal.NewScoreService(net, cfg.batchSize, cfg.progress),
		stats:     internal.NewStatsService(net, cfg.batchSize, cfg.progress),
		statsPath: cfg.statsPath,
		raw:       cfg.raw,
	}, nil
}

// Score computes the Fréchet distance between the sample dump at path and
// the reference statistics.
func (c *Client) Score(ctx context.Context, path string) (float64, error) {
	out, err := c.scores.Score(ctx, internal.ScoreInput{
		SamplesPath: path,
		StatsPath:   c.statsPath,
		Raw:         c.raw,
	})
	if err != nil {
		return 0, fmt.Errorf("score: %w", err)
	}
	return out.FID, nil
}

// Fit computes activation statistics for the sample dump at samplesPath and
// writes them to outPath as a reusable reference archive.
func (c *Client) Fit(ctx context.Context, samplesPath, outPath string) (Stats, error) {
	g, err := c.stats.Fit(ctx, internal.FitStatsInput{
		SamplesPath: samplesPath,
		OutPath:     outPath,
		Raw:         c.raw,
	})
	if err != nil {
		return Stats{}, fmt.Errorf("fit: %w", err)
	}
	return fromSummary(g), nil
}

// Close releases the loaded network.
func (c *Client) Close() error {
	return c.net.Close()
}
