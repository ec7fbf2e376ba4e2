package main

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/4thel00z/fid/internal"
)

func TestStatsCmd(t *testing.T) {
	tmpDir := t.TempDir()
	samples := sampleFixture(t, tmpDir, 8)
	outPath := filepath.Join(tmpDir, "ref.npz")

	root := NewRootCmd("test", &app{netFor: newStubFactory()})
	root.SetArgs([]string{
		"stats", samples,
		"--out", outPath,
		"--dims", "64",
		"--batch-size", "4",
		"--config", filepath.Join(tmpDir, "config.yaml"),
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "saved 64-dimensional statistics") {
		t.Errorf("output missing summary line:\n%s", out.String())
	}

	g, err := internal.LoadStats(outPath)
	if err != nil {
		t.Fatalf("load fitted stats: %v", err)
	}
	if g.Dim() != 64 {
		t.Errorf("dim = %d, want 64", g.Dim())
	}
	for i, v := range g.Mean {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("mean[%d] = %v", i, v)
		}
	}
}

func TestStatsCmdMissingSamples(t *testing.T) {
	tmpDir := t.TempDir()

	root := NewRootCmd("test", &app{netFor: newStubFactory()})
	root.SetArgs([]string{
		"stats", filepath.Join(tmpDir, "absent.npy"),
		"--out", filepath.Join(tmpDir, "ref.npz"),
		"--config", filepath.Join(tmpDir, "config.yaml"),
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing samples")
	}
}
