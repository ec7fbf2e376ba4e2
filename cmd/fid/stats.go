package main

import (
	"fmt"

	"github.com/4thel00z/fid/internal"
	"github.com/spf13/cobra"
)

func NewStatsCmd(netFor internal.NetworkFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <samples.npy>",
		Short: "Fit reference statistics from a sample dump",
		Long:  `Propagate a NumPy image dump through the feature network and persist the activation mean and covariance as an .npz archive for later scoring.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeStatsRunner(netFor),
	}

	cmd.Flags().StringP("out", "o", internal.DefaultStatsFilename, "Where to write the statistics archive")
	cmd.Flags().Int("batch-size", 0, "Images per forward pass (0 uses the config value)")
	cmd.Flags().Int("dims", 0, "Feature width to fit on: 64, 192, 768 or 2048 (0 uses the config value)")
	cmd.Flags().StringP("gpu", "c", "", "CUDA device mask to export (blank runs CPU only)")
	cmd.Flags().Bool("raw", false, "Samples are already in [0, 1]; skip the tanh rescale")

	return cmd
}

func makeStatsRunner(netFor internal.NetworkFactory) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		settings, err := resolveSettings(cmd, cfg)
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")

		net, err := netFor(cmd.Context(), cfg.Model, settings.dims, settings.device)
		if err != nil {
			return fmt.Errorf("load feature network: %w", err)
		}
		defer net.Close()

		svc := internal.NewStatsService(net, settings.batchSize, cmd.OutOrStdout())

		g, err := svc.Fit(cmd.Context(), internal.FitStatsInput{
			SamplesPath: args[0],
			OutPath:     outPath,
			Raw:         settings.raw,
		})
		if err != nil {
			return fmt.Errorf("fit statistics: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "saved %d-dimensional statistics to %s\n", g.Dim(), outPath)
		return nil
	}
}
