package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/4thel00z/fid/internal"
)

func TestInspectCmd(t *testing.T) {
	tmpDir := t.TempDir()
	ref := filepath.Join(tmpDir, "ref.npz")
	writeRefStats(t, ref, 3)

	root := NewRootCmd("test", &app{netFor: newStubFactory()})
	root.SetArgs([]string{"inspect", ref})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "dims: 3") {
		t.Errorf("output missing dims:\n%s", text)
	}
	if !strings.Contains(text, "mean norm: 0") {
		t.Errorf("output missing mean norm:\n%s", text)
	}
	if !strings.Contains(text, "cov trace: 3") {
		t.Errorf("output missing trace:\n%s", text)
	}
}

func TestInspectCmdMissingArchive(t *testing.T) {
	root := NewRootCmd("test", &app{netFor: newStubFactory()})
	root.SetArgs([]string{"inspect", filepath.Join(t.TempDir(), "absent.npz")})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	if !errors.Is(err, internal.ErrStatsNotFound) {
		t.Fatalf("err = %v, want ErrStatsNotFound", err)
	}
}
