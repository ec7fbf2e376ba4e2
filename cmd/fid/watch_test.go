package main

import (
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestIsSampleEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "created dump",
			event: fsnotify.Event{Name: "samples.npy", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "written dump",
			event: fsnotify.Event{Name: "run/batch-04.npy", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "renamed dump",
			event: fsnotify.Event{Name: "final.npy", Op: fsnotify.Rename},
			want:  true,
		},
		{
			name:  "upper-case extension",
			event: fsnotify.Event{Name: "SAMPLES.NPY", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "chmod only",
			event: fsnotify.Event{Name: "samples.npy", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "removed dump",
			event: fsnotify.Event{Name: "samples.npy", Op: fsnotify.Remove},
			want:  false,
		},
		{
			name:  "unrelated file",
			event: fsnotify.Event{Name: "notes.txt", Op: fsnotify.Create},
			want:  false,
		},
		{
			name:  "stats archive",
			event: fsnotify.Event{Name: "fid_stats.npz", Op: fsnotify.Create},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSampleEvent(tt.event); got != tt.want {
				t.Errorf("isSampleEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}
