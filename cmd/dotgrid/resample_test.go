package dotgrid

import (
	"errors"
	"math"
	"testing"
)

func constantSeries(v float64) []float64 {
	s := make([]float64, HoursPerDay)
	for i := range s {
		s[i] = v
	}
	return s
}

func identity(v float64) float64 { return v }

func TestResampleConstantSeries(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		n      int
	}{
		{"upsample", Window{Start: 6, End: 18}, 24},
		{"downsample", Window{Start: 6, End: 18}, 6},
		{"odd target", Window{Start: 6, End: 18}, 17},
		{"same length", Window{Start: 0, End: 24}, 24},
		{"single sample", Window{Start: 6, End: 18}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resample(constantSeries(1.5), identity, tt.window, tt.n)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}
			if len(got) != tt.n {
				t.Fatalf("len = %d, want %d", len(got), tt.n)
			}
			for i, v := range got {
				if math.Abs(v-1.5) > 1e-9 {
					t.Errorf("got[%d] = %v, want 1.5", i, v)
				}
			}
		})
	}
}

func TestResampleLength(t *testing.T) {
	series := make([]float64, HoursPerDay)
	for i := range series {
		series[i] = math.Sin(float64(i) / 3)
	}
	for n := 1; n <= 40; n++ {
		got, err := Resample(series, identity, Window{Start: 6, End: 18}, n)
		if err != nil {
			t.Fatalf("n=%d: Resample() error = %v", n, err)
		}
		if len(got) != n {
			t.Errorf("n=%d: len = %d", n, len(got))
		}
	}
}

func TestResampleKeepsOriginalSamplesWhenDoubling(t *testing.T) {
	series := []float64{
		0, 0, 0, 0, 0, 0,
		0.5, 0.9, 1.2, 2.4, 1.1, 0.3, 2.5, 0, 0.7, 1.9, 0.2, 1.4,
		0, 0, 0, 0, 0, 0,
	}
	got, err := Resample(series, identity, Window{Start: 6, End: 18}, 24)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	for i := 0; i < 12; i++ {
		if want := series[6+i]; math.Abs(got[2*i]-want) > 1e-9 {
			t.Errorf("got[%d] = %v, want %v", 2*i, got[2*i], want)
		}
	}
}

func TestResampleSameLengthCopies(t *testing.T) {
	series := constantSeries(0)
	series[3] = 7
	got, err := Resample(series, identity, Window{Start: 0, End: 24}, 24)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	got[3] = 1
	if series[3] != 7 {
		t.Error("Resample() aliased its input")
	}
}

func TestResampleErrors(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		window Window
		n      int
	}{
		{"short series", make([]float64, 23), Window{Start: 6, End: 18}, 24},
		{"long series", make([]float64, 25), Window{Start: 6, End: 18}, 24},
		{"empty window", constantSeries(1), Window{Start: 6, End: 6}, 24},
		{"reversed window", constantSeries(1), Window{Start: 18, End: 6}, 24},
		{"window past midnight", constantSeries(1), Window{Start: 6, End: 25}, 24},
		{"negative start", constantSeries(1), Window{Start: -1, End: 6}, 24},
		{"zero target", constantSeries(1), Window{Start: 6, End: 18}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resample(tt.series, identity, tt.window, tt.n)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Resample() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestMapRangeExtrapolates(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0, 2},
		{3, 24},
		{1.5, 13},
		{6, 46},
		{-3, -20},
	}
	for _, tt := range tests {
		if got := mapRange(tt.x, 0, 3, 2, 24); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("mapRange(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}
