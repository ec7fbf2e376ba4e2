package main

import (
	"fmt"

	"github.com/4thel00z/fid/internal"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <stats.npz>",
		Short: "Summarize a statistics archive",
		Long:  `Print the feature width and basic moments of a reference statistics archive.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeInspectRunner(),
	}

	return cmd
}

func makeInspectRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		g, err := internal.LoadStats(args[0])
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "dims: %d\n", g.Dim())
		fmt.Fprintf(cmd.OutOrStdout(), "mean norm: %g\n", floats.Norm(g.Mean, 2))
		fmt.Fprintf(cmd.OutOrStdout(), "cov trace: %g\n", mat.Trace(g.Cov))
		return nil
	}
}
