package main

import (
	"fmt"

	"github.com/4thel00z/fid/internal"
	"github.com/spf13/cobra"
)

func NewScoreCmd(netFor internal.NetworkFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <samples.npy>",
		Short: "Score a sample batch against reference statistics",
		Long:  `Propagate a NumPy image dump through the feature network, fit a Gaussian to the activations and report the Fréchet distance to the precomputed reference.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeScoreRunner(netFor),
	}

	cmd.Flags().Int("batch-size", 0, "Images per forward pass (0 uses the config value)")
	cmd.Flags().Int("dims", 0, "Feature width to compare on: 64, 192, 768 or 2048 (0 uses the config value)")
	cmd.Flags().StringP("gpu", "c", "", "CUDA device mask to export (blank runs CPU only)")
	cmd.Flags().String("ref", "", "Reference statistics archive (.npz)")
	cmd.Flags().Bool("raw", false, "Samples are already in [0, 1]; skip the tanh rescale")
	cmd.Flags().Bool("rand-data", false, "Also score a uniform-noise batch of the same shape")
	cmd.Flags().Int64("seed", 0, "Seed for the noise batch (0 draws a fresh one)")

	return cmd
}

func makeScoreRunner(netFor internal.NetworkFactory) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		settings, err := resolveSettings(cmd, cfg)
		if err != nil {
			return err
		}

		if err := requireStats(settings.statsPath); err != nil {
			return err
		}

		randData, _ := cmd.Flags().GetBool("rand-data")
		seed, _ := cmd.Flags().GetInt64("seed")

		net, err := netFor(cmd.Context(), cfg.Model, settings.dims, settings.device)
		if err != nil {
			return fmt.Errorf("load feature network: %w", err)
		}
		defer net.Close()

		svc := internal.NewScoreService(net, settings.batchSize, cmd.OutOrStdout())

		out, err := svc.Score(cmd.Context(), internal.ScoreInput{
			SamplesPath: args[0],
			StatsPath:   settings.statsPath,
			Raw:         settings.raw,
			RandData:    randData,
			Seed:        seed,
		})
		if err != nil {
			return fmt.Errorf("score: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "FID: %g\n", out.FID)
		if out.HasRand {
			fmt.Fprintf(cmd.OutOrStdout(), "FID rand data: %g\n", out.RandFID)
		}
		return nil
	}
}
