package internal

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// DefaultStatsFilename is where commands look for reference statistics when
// neither the flag nor the config names an archive.
const DefaultStatsFilename = "fid_stats.npz"

const (
	statsMeanKey = "mu"
	statsCovKey  = "sigma"
)

// LoadStats reads a reference statistics archive: a NumPy .npz file holding
// the activation mean under "mu" and the covariance under "sigma". Archives
// produced by numpy.savez and by SaveStats both work.
func LoadStats(path string) (*GaussianSummary, error) {
	r, err := zip.OpenReader(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrStatsNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open stats archive: %w", err)
	}
	defer r.Close()

	var mean []float64
	var cov *mat.Dense

	for _, f := range r.File {
		switch strings.TrimSuffix(f.Name, ".npy") {
		case statsMeanKey:
			if err := readNpyEntry(f, &mean); err != nil {
				return nil, err
			}
		case statsCovKey:
			var m mat.Dense
			if err := readNpyEntry(f, &m); err != nil {
				return nil, err
			}
			cov = &m
		}
	}

	if mean == nil || cov == nil {
		return nil, fmt.Errorf("stats archive %s must contain %q and %q arrays", path, statsMeanKey, statsCovKey)
	}

	g := &GaussianSummary{Mean: mean, Cov: cov}
	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("stats archive %s: %w", path, err)
	}
	return g, nil
}

// SaveStats writes a Gaussian summary as an .npz archive that numpy.load can
// open.
func SaveStats(path string, g *GaussianSummary) error {
	if err := g.validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create stats archive: %w", err)
	}

	zw := zip.NewWriter(f)

	if err := writeNpyEntry(zw, statsMeanKey+".npy", g.Mean); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := writeNpyEntry(zw, statsCovKey+".npy", g.Cov); err != nil {
		zw.Close()
		f.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finish stats archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close stats archive: %w", err)
	}
	return nil
}

func readNpyEntry(f *zip.File, ptr any) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	if err := npyio.Read(rc, ptr); err != nil {
		return fmt.Errorf("read %s: %w", f.Name, err)
	}
	return nil
}

func writeNpyEntry(zw *zip.Writer, name string, val any) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := npyio.Write(w, val); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
