package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewKernelFixedPointTaps(t *testing.T) {
	k, err := NewKernel[int64](1.0)
	if err != nil {
		t.Fatalf("NewKernel(1) error: %v", err)
	}

	if k.Dim != 3 {
		t.Errorf("Dim = %d, want 3", k.Dim)
	}
	want := []int64{1, 13, 61, 102, 61, 13, 1}
	if diff := cmp.Diff(want, k.Taps); diff != "" {
		t.Errorf("taps mismatch (-want +got):\n%s", diff)
	}
}

func TestNewKernelFloatTaps(t *testing.T) {
	k, err := NewKernel[float32](1.0)
	if err != nil {
		t.Fatalf("NewKernel(1) error: %v", err)
	}

	center := 1 / math.Sqrt(2*math.Pi)
	if math.Abs(float64(k.At(0))-center) > 1e-6 {
		t.Errorf("center tap = %v, want %v", k.At(0), center)
	}
	// Product of two taps is the 2D density exp(-(x²+y²)/σ²)/(2πσ²).
	got := float64(k.At(1) * k.At(2))
	want := math.Exp(-5) / (2 * math.Pi)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("At(1)*At(2) = %v, want %v", got, want)
	}
}

func TestNewKernelDim(t *testing.T) {
	tests := []struct {
		sigma   float64
		wantDim int
	}{
		{0.01, 0},
		{0.33, 0},
		{0.34, 1},
		{1.0, 3},
		{2.0, 6},
		{2.5, 7},
		{10, 30},
	}

	for _, tt := range tests {
		k, err := NewKernel[int64](tt.sigma)
		if err != nil {
			t.Fatalf("NewKernel(%v) error: %v", tt.sigma, err)
		}
		if k.Dim != tt.wantDim {
			t.Errorf("NewKernel(%v).Dim = %d, want %d", tt.sigma, k.Dim, tt.wantDim)
		}
		if k.Width() != 2*tt.wantDim+1 {
			t.Errorf("NewKernel(%v).Width() = %d, want %d", tt.sigma, k.Width(), 2*tt.wantDim+1)
		}
	}
}

func TestNewKernelSymmetric(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2, 3.7, 8} {
		k, err := NewKernel[int64](sigma)
		if err != nil {
			t.Fatalf("NewKernel(%v) error: %v", sigma, err)
		}
		for x := -k.Dim; x <= k.Dim; x++ {
			if k.At(x) != k.At(-x) {
				t.Errorf("sigma %v: At(%d) = %d != At(%d) = %d", sigma, x, k.At(x), -x, k.At(-x))
			}
		}
	}
}

func TestNewKernelPeakAtCenter(t *testing.T) {
	k, err := NewKernel[float32](4)
	if err != nil {
		t.Fatalf("NewKernel(4) error: %v", err)
	}
	for x := 1; x <= k.Dim; x++ {
		if k.At(x) > k.At(x-1) {
			t.Errorf("At(%d) = %v > At(%d) = %v", x, k.At(x), x-1, k.At(x-1))
		}
	}
}

func TestNewKernelInvalidSigma(t *testing.T) {
	for _, sigma := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewKernel[int64](sigma)
		if !errors.Is(err, ErrInvalidSigma) {
			t.Errorf("NewKernel(%v) error = %v, want ErrInvalidSigma", sigma, err)
		}
	}
}

func TestNewKernelZeroFixedPoint(t *testing.T) {
	if _, err := NewKernel[int64](200); !errors.Is(err, ErrZeroKernel) {
		t.Errorf("NewKernel[int64](200) error = %v, want ErrZeroKernel", err)
	}
	if _, err := NewKernel[int64](100); err != nil {
		t.Errorf("NewKernel[int64](100) error = %v", err)
	}
	if _, err := NewKernel[float32](200); err != nil {
		t.Errorf("NewKernel[float32](200) error = %v", err)
	}
}

func TestKernelSumClips(t *testing.T) {
	k, _ := NewKernel[int64](1.0)

	if got := k.Sum(-10, 10); got != 252 {
		t.Errorf("Sum(-10, 10) = %d, want 252", got)
	}
	if got := k.Sum(0, 3); got != 177 {
		t.Errorf("Sum(0, 3) = %d, want 177", got)
	}
	if got := k.Sum(2, 1); got != 0 {
		t.Errorf("Sum(2, 1) = %d, want 0", got)
	}
}
