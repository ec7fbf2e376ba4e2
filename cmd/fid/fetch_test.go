package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/4thel00z/fid/internal"
)

func TestFetchCmd(t *testing.T) {
	payload := []byte("not a real network, but bytes enough")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	cfg := internal.DefaultConfig()
	cfg.Model.URL = srv.URL + "/tiny.onnx"
	if err := internal.SaveConfig(cfgPath, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	cacheDir := filepath.Join(tmpDir, "cache")

	root := NewRootCmd("test", &app{netFor: newStubFactory()})
	root.SetArgs([]string{
		"fetch",
		"--config", cfgPath,
		"--cache", cacheDir,
		"--quiet",
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(cacheDir, "tiny.onnx"))
	if err != nil {
		t.Fatalf("read cached model: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("cached bytes = %q, want %q", got, payload)
	}
	if !strings.Contains(out.String(), "tiny.onnx") {
		t.Errorf("output missing cached path:\n%s", out.String())
	}
}

func TestFetchCmdUnreachable(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	cfg := internal.DefaultConfig()
	cfg.Model.URL = "http://127.0.0.1:1/never.onnx"
	if err := internal.SaveConfig(cfgPath, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	root := NewRootCmd("test", &app{netFor: newStubFactory()})
	root.SetArgs([]string{
		"fetch",
		"--config", cfgPath,
		"--cache", filepath.Join(tmpDir, "cache"),
		"--quiet",
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "fetch model") {
		t.Fatalf("err = %v, want fetch failure", err)
	}
}
