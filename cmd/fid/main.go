package main

import (
	"context"
	"fmt"
	"os"

	"github.com/4thel00z/fid/internal"
	"github.com/charmbracelet/fang"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	app := newApp()
	rootCmd := NewRootCmd(version, app)
	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

type app struct {
	netFor internal.NetworkFactory
}

func newApp() *app {
	return &app{netFor: loadNetwork}
}

// loadNetwork resolves weights from config, pulling them into the cache when
// the configured path is empty, and builds the feature network on top.
func loadNetwork(ctx context.Context, cfg internal.ModelConfig, dims int, device internal.Device) (internal.Network, error) {
	path := cfg.Path
	if path == "" {
		cacheDir, err := internal.DefaultCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}

		rawURL := cfg.URL
		if rawURL == "" {
			rawURL = internal.DefaultModelURL
		}

		d := internal.NewDownloader(cacheDir)
		path, err = d.EnsureModel(ctx, rawURL, internal.ModelFilename(rawURL), nil)
		if err != nil {
			return nil, fmt.Errorf("ensure model: %w", err)
		}
	}

	return internal.NewInceptionV3(path, dims, device)
}
