package internal

import (
	"errors"
	"testing"
)

func TestValidateDims(t *testing.T) {
	tests := []struct {
		dims    int
		wantErr bool
	}{
		{64, false},
		{192, false},
		{768, false},
		{2048, false},
		{0, true},
		{-1, true},
		{100, true},
		{1024, true},
	}

	for _, tt := range tests {
		err := ValidateDims(tt.dims)
		if tt.wantErr && !errors.Is(err, ErrUnsupportedDims) {
			t.Errorf("ValidateDims(%d) = %v, want ErrUnsupportedDims", tt.dims, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ValidateDims(%d) = %v, want nil", tt.dims, err)
		}
	}
}

func TestValidDimsMatchBlockTable(t *testing.T) {
	dims := ValidDims()
	if len(dims) != len(BlockIndexByDim) {
		t.Fatalf("ValidDims lists %d widths, block table has %d", len(dims), len(BlockIndexByDim))
	}
	for i, d := range dims {
		block, ok := BlockIndexByDim[d]
		if !ok {
			t.Errorf("width %d missing from block table", d)
		}
		if block != i {
			t.Errorf("width %d maps to block %d, want %d", d, block, i)
		}
	}
}
