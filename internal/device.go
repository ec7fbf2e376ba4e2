package internal

import (
	"os"
	"os/exec"
	"runtime"
)

type Device string

const (
	DeviceMPS  Device = "mps"
	DeviceCUDA Device = "cuda"
	DeviceCPU  Device = "cpu"
)

func DetectDevice() Device {
	if isMPS() {
		return DeviceMPS
	}
	if isCUDA() {
		return DeviceCUDA
	}
	return DeviceCPU
}

// SelectDevice maps the --gpu flag onto a Device. A blank id means CPU only;
// anything else exports the CUDA device mask for external runtimes and
// selects CUDA.
func SelectDevice(gpuID string) Device {
	if gpuID == "" {
		return DeviceCPU
	}
	os.Setenv("CUDA_VISIBLE_DEVICES", gpuID)
	return DeviceCUDA
}

func isMPS() bool {
	return runtime.GOOS == "darwin" && runtime.GOARCH == "arm64"
}

func isCUDA() bool {
	if _, err := os.Stat("/dev/nvidia0"); err == nil {
		return true
	}
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return true
	}
	return false
}
