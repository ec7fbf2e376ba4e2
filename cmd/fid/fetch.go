package main

import (
	"fmt"

	"github.com/4thel00z/fid/internal"
	"github.com/spf13/cobra"
)

func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the feature network weights",
		Long:  `Fetch the configured ONNX feature network into the local cache so scoring runs can start offline.`,
		RunE:  makeFetchRunner(),
	}

	cmd.Flags().String("cache", "", "Cache directory (defaults to the user cache dir)")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress progress output")

	return cmd
}

func makeFetchRunner() func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		cacheDir, _ := cmd.Flags().GetString("cache")
		if cacheDir == "" {
			cacheDir, err = internal.DefaultCacheDir()
			if err != nil {
				return fmt.Errorf("resolve cache dir: %w", err)
			}
		}

		rawURL := cfg.Model.URL
		if rawURL == "" {
			rawURL = internal.DefaultModelURL
		}
		filename := internal.ModelFilename(rawURL)

		quiet, _ := cmd.Flags().GetBool("quiet")
		var onProgress func(written, total int64)
		if !quiet {
			onProgress = func(written, total int64) {
				if total > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "\rfetching %s: %3d%%", filename, written*100/total)
				}
			}
		}

		d := internal.NewDownloader(cacheDir)
		path, err := d.EnsureModel(cmd.Context(), rawURL, filename, onProgress)
		if err != nil {
			return fmt.Errorf("fetch model: %w", err)
		}

		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}
}
