package main

import (
	"fmt"
	"os"

	"github.com/4thel00z/fid/internal"
	"github.com/spf13/cobra"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fid",
		Short:         "Fréchet Inception Distance for generated image batches",
		Long:          `Score NumPy image dumps against precomputed activation statistics using the closed-form Fréchet distance.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)

	if a != nil {
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file (defaults to the user config dir)")
}

func addSubcommands(root *cobra.Command, a *app) {
	root.AddCommand(
		NewScoreCmd(a.netFor),
		NewStatsCmd(a.netFor),
		NewInspectCmd(),
		NewWatchCmd(a.netFor),
		NewFetchCmd(),
	)
}

func loadConfig(cmd *cobra.Command) (*internal.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		defaultPath, err := internal.DefaultConfigPath()
		if err != nil {
			return internal.DefaultConfig(), nil
		}
		path = defaultPath
	}
	return internal.LoadConfig(path)
}

// runSettings carries the flag/config resolution shared by the scoring
// commands. Flags win over config values.
type runSettings struct {
	batchSize int
	dims      int
	statsPath string
	raw       bool
	device    internal.Device
}

func resolveSettings(cmd *cobra.Command, cfg *internal.Config) (runSettings, error) {
	s := runSettings{device: internal.DeviceCPU}

	s.batchSize, _ = cmd.Flags().GetInt("batch-size")
	if s.batchSize == 0 {
		s.batchSize = cfg.BatchSize
	}

	s.dims, _ = cmd.Flags().GetInt("dims")
	if s.dims == 0 {
		s.dims = cfg.Dims
	}
	if err := internal.ValidateDims(s.dims); err != nil {
		return s, err
	}

	if cmd.Flags().Lookup("gpu") != nil {
		gpu, _ := cmd.Flags().GetString("gpu")
		s.device = internal.SelectDevice(gpu)
		if s.device != internal.DeviceCPU {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s requested; the bundled backend runs on the CPU\n", s.device)
		}
	}

	if cmd.Flags().Lookup("ref") != nil {
		s.statsPath, _ = cmd.Flags().GetString("ref")
		if s.statsPath == "" {
			s.statsPath = cfg.Stats
		}
		if s.statsPath == "" {
			s.statsPath = internal.DefaultStatsFilename
		}
	}

	s.raw, _ = cmd.Flags().GetBool("raw")

	return s, nil
}

func requireStats(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", internal.ErrStatsNotFound, path)
	}
	return nil
}
