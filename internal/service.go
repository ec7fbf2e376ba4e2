package internal

import (
	"context"
	"fmt"
	"io"

	"gorgonia.org/tensor"
)

// ScoreService wires sample loading, activation extraction and the distance
// evaluation together for one network.
type ScoreService struct {
	net       Network
	eval      *Evaluator
	batchSize int
	out       io.Writer
}

func NewScoreService(net Network, batchSize int, out io.Writer) *ScoreService {
	if out == nil {
		out = io.Discard
	}
	return &ScoreService{
		net:       net,
		eval:      NewEvaluator(WithDiagnostics(out)),
		batchSize: batchSize,
		out:       out,
	}
}

type ScoreInput struct {
	SamplesPath string
	StatsPath   string
	// Raw marks samples that already live in [0, 1]; everything else is
	// treated as tanh output and rescaled.
	Raw      bool
	RandData bool
	Seed     int64
}

type ScoreOutput struct {
	FID     float64
	RandFID float64
	HasRand bool
}

func (s *ScoreService) Score(ctx context.Context, input ScoreInput) (*ScoreOutput, error) {
	ref, err := LoadStats(input.StatsPath)
	if err != nil {
		return nil, err
	}

	images, err := LoadSamples(input.SamplesPath)
	if err != nil {
		return nil, err
	}

	if !input.Raw {
		if err := RescaleToUnit(images); err != nil {
			return nil, err
		}
	}

	shape := images.Shape()
	fmt.Fprintf(s.out, "%v\n", shape)
	fmt.Fprintf(s.out, "len %d\n", shape[0])

	lo, hi, err := MinMax(images)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "min %f  max %f\n", lo, hi)

	cand, err := s.fit(ctx, images)
	if err != nil {
		return nil, err
	}

	fid, err := s.eval.Distance(ref, cand)
	if err != nil {
		return nil, err
	}

	out := &ScoreOutput{FID: fid}

	if input.RandData {
		control, err := s.fit(ctx, UniformBatch(shape, input.Seed))
		if err != nil {
			return nil, fmt.Errorf("score control batch: %w", err)
		}
		randFID, err := s.eval.Distance(ref, control)
		if err != nil {
			return nil, fmt.Errorf("score control batch: %w", err)
		}
		out.RandFID = randFID
		out.HasRand = true
	}

	return out, nil
}

func (s *ScoreService) fit(ctx context.Context, images *tensor.Dense) (*GaussianSummary, error) {
	ex := NewExtractor(s.net, WithBatchSize(s.batchSize), WithProgress(s.out))
	acts, err := ex.Activations(ctx, images)
	if err != nil {
		return nil, fmt.Errorf("extract activations: %w", err)
	}
	return FitGaussian(acts)
}

// StatsService fits reference moments from a sample dump and persists them
// for later scoring runs.
type StatsService struct {
	net       Network
	batchSize int
	out       io.Writer
}

func NewStatsService(net Network, batchSize int, out io.Writer) *StatsService {
	if out == nil {
		out = io.Discard
	}
	return &StatsService{
		net:       net,
		batchSize: batchSize,
		out:       out,
	}
}

type FitStatsInput struct {
	SamplesPath string
	OutPath     string
	Raw         bool
}

func (s *StatsService) Fit(ctx context.Context, input FitStatsInput) (*GaussianSummary, error) {
	images, err := LoadSamples(input.SamplesPath)
	if err != nil {
		return nil, err
	}

	if !input.Raw {
		if err := RescaleToUnit(images); err != nil {
			return nil, err
		}
	}

	ex := NewExtractor(s.net, WithBatchSize(s.batchSize), WithProgress(s.out))
	acts, err := ex.Activations(ctx, images)
	if err != nil {
		return nil, fmt.Errorf("extract activations: %w", err)
	}

	g, err := FitGaussian(acts)
	if err != nil {
		return nil, err
	}

	if err := SaveStats(input.OutPath, g); err != nil {
		return nil, fmt.Errorf("save statistics: %w", err)
	}

	return g, nil
}
