package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/4thel00z/fid/internal"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func NewWatchCmd(netFor internal.NetworkFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Score sample dumps as they land in a directory",
		Long:  `Watch a directory for fresh .npy sample dumps, typically written between training epochs, and score each one against the reference statistics.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeWatchRunner(netFor),
	}

	cmd.Flags().Int("batch-size", 0, "Images per forward pass (0 uses the config value)")
	cmd.Flags().Int("dims", 0, "Feature width to compare on: 64, 192, 768 or 2048 (0 uses the config value)")
	cmd.Flags().String("ref", "", "Reference statistics archive (.npz)")
	cmd.Flags().Bool("raw", false, "Samples are already in [0, 1]; skip the tanh rescale")
	cmd.Flags().Duration("debounce", 2*time.Second, "Settle window before scoring a fresh dump")

	return cmd
}

func makeWatchRunner(netFor internal.NetworkFactory) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		settings, err := resolveSettings(cmd, cfg)
		if err != nil {
			return err
		}
		debounce, _ := cmd.Flags().GetDuration("debounce")

		if err := requireStats(settings.statsPath); err != nil {
			return err
		}

		net, err := netFor(cmd.Context(), cfg.Model, settings.dims, settings.device)
		if err != nil {
			return fmt.Errorf("load feature network: %w", err)
		}
		defer net.Close()

		svc := internal.NewScoreService(net, settings.batchSize, cmd.OutOrStdout())

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(args[0]); err != nil {
			return fmt.Errorf("watch %s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for sample dumps...\n", args[0])

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := make(map[string]struct{})

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !isSampleEvent(event) {
					continue
				}
				pending[event.Name] = struct{}{}
				timer.Reset(debounce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			case <-timer.C:
				paths := make([]string, 0, len(pending))
				for p := range pending {
					paths = append(paths, p)
				}
				sort.Strings(paths)
				clear(pending)

				for _, p := range paths {
					out, scoreErr := svc.Score(cmd.Context(), internal.ScoreInput{
						SamplesPath: p,
						StatsPath:   settings.statsPath,
						Raw:         settings.raw,
					})
					if scoreErr != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "score %s: %v\n", p, scoreErr)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s FID: %g\n", p, out.FID)
				}
			}
		}
	}
}

func isSampleEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), ".npy")
}
