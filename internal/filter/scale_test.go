package filter

import "testing"

func TestBuildScaleMapCorners(t *testing.T) {
	k, _ := NewKernel[int64](1.0)
	m := BuildScaleMap(k, 4, 4, false)

	// Column weights use the reference bound pitch-col+1; line weights
	// stop at the last line.
	wx := []int64{177, 238, 251, 251}
	wy := []int64{177, 237, 237, 177}
	for line := 0; line < 4; line++ {
		for col := 0; col < 4; col++ {
			if got, want := m.At(line, col), wy[line]*wx[col]; got != want {
				t.Errorf("At(%d, %d) = %d, want %d", line, col, got, want)
			}
		}
	}
}

func TestBuildScaleMapExactIsSymmetric(t *testing.T) {
	k, _ := NewKernel[int64](1.0)
	m := BuildScaleMap(k, 5, 7, true)

	for line := 0; line < m.Lines; line++ {
		for col := 0; col < m.Pitch; col++ {
			mirror := m.At(m.Lines-1-line, m.Pitch-1-col)
			if m.At(line, col) != mirror {
				t.Errorf("At(%d, %d) = %d, mirrored = %d", line, col, m.At(line, col), mirror)
			}
		}
	}
}

func TestBuildScaleMapPositive(t *testing.T) {
	tests := []struct {
		name         string
		sigma        float64
		lines, pitch int
	}{
		{"tiny sigma", 0.01, 3, 5},
		{"unit sigma", 1, 8, 8},
		{"wide kernel", 6, 6, 10},
		{"single pixel", 2, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ki, _ := NewKernel[int64](tt.sigma)
			kf, _ := NewKernel[float32](tt.sigma)
			mi := BuildScaleMap(ki, tt.lines, tt.pitch, false)
			mf := BuildScaleMap(kf, tt.lines, tt.pitch, false)

			for i := range mi.Values {
				if mi.Values[i] <= 0 {
					t.Fatalf("fixed entry %d = %d, want > 0", i, mi.Values[i])
				}
				if mf.Values[i] <= 0 {
					t.Fatalf("float entry %d = %v, want > 0", i, mf.Values[i])
				}
			}
		})
	}
}

func TestBuildScaleMapFloatMatchesProduct(t *testing.T) {
	k, _ := NewKernel[float32](1.5)
	m := BuildScaleMap(k, 6, 9, false)

	for line := 0; line < m.Lines; line++ {
		for col := 0; col < m.Pitch; col++ {
			xlo, xhi := scaleWindowX(k.Dim, col, m.Pitch, false)
			want := k.Sum(-line, m.Lines-line-1) * k.Sum(xlo, xhi)
			got := m.At(line, col)
			if d := got - want; d > 1e-5 || d < -1e-5 {
				t.Errorf("At(%d, %d) = %v, want ~%v", line, col, got, want)
			}
		}
	}
}
