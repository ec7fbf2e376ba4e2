package v1

import (
	"fmt"

	"github.com/4thel00z/fid/internal"
)

// LoadStats reads a reference statistics archive (.npz).
func LoadStats(path string) (Stats, error) {
	g, err := internal.LoadStats(path)
	if err != nil {
		return Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return fromSummary(g), nil
}

// SaveStats writes a reference statistics archive (.npz).
func SaveStats(path string, s Stats) error {
	g, err := toSummary(s)
	if err != nil {
		return err
	}
	if err := internal.SaveStats(path, g); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}
