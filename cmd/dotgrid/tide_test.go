package dotgrid

import (
	"errors"
	"testing"
	"time"
)

func TestHourIndex(t *testing.T) {
	tests := []struct {
		clock string
		want  int
	}{
		{"00:10", 0},
		{"06:29", 6},
		{"06:30", 7},
		{"12:45", 13},
		{"23:20", 23},
		{"23:30", 23},
		{"23:59", 23},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			ts, err := time.Parse("15:04", tt.clock)
			if err != nil {
				t.Fatal(err)
			}
			if got := HourIndex(ts); got != tt.want {
				t.Errorf("HourIndex(%s) = %d, want %d", tt.clock, got, tt.want)
			}
		})
	}
}

func TestReconstructInterpolationBoundary(t *testing.T) {
	curve, err := Reconstruct([]TideEvent{
		{Hour: 6, Height: 1.0, Kind: TideLow},
		{Hour: 12, Height: 2.0, Kind: TideHigh},
	})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}

	for k := 0; k < HoursPerDay; k++ {
		if k >= 6 && k <= 12 {
			continue
		}
		if curve[k] != (TideCell{}) {
			t.Errorf("curve[%d] = %+v, want zero cell", k, curve[k])
		}
	}

	if curve[6].Height != 1.0 || curve[6].Kind != TideLow {
		t.Errorf("curve[6] = %+v", curve[6])
	}
	if curve[12].Height != 2.0 || curve[12].Kind != TideHigh {
		t.Errorf("curve[12] = %+v", curve[12])
	}

	step := (2.0 - 1.0) / 6
	for k := 7; k < 12; k++ {
		c := curve[k]
		if c.Direction != DirectionIncreasing {
			t.Errorf("curve[%d].Direction = %v, want increasing", k, c.Direction)
		}
		if c.Kind != "" {
			t.Errorf("curve[%d].Kind = %q, want empty", k, c.Kind)
		}
		if c.Height <= curve[k-1].Height || c.Height >= 2.0 {
			t.Errorf("curve[%d].Height = %v, not strictly between %v and 2.0", k, c.Height, curve[k-1].Height)
		}
		// Each hour accumulates from the previous cell.
		if want := curve[k-1].Height + step; c.Height != want {
			t.Errorf("curve[%d].Height = %v, want %v", k, c.Height, want)
		}
	}
}

func TestReconstructFallingTide(t *testing.T) {
	curve, err := Reconstruct([]TideEvent{
		{Hour: 9, Height: 0.5, Kind: TideLow},
		{Hour: 3, Height: 2.0, Kind: TideHigh},
	})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	for k := 4; k < 9; k++ {
		if curve[k].Direction != DirectionDecreasing {
			t.Errorf("curve[%d].Direction = %v, want decreasing", k, curve[k].Direction)
		}
		if curve[k].Height >= curve[k-1].Height {
			t.Errorf("curve[%d].Height = %v, want below %v", k, curve[k].Height, curve[k-1].Height)
		}
	}
}

func TestReconstructFoldsMidnight(t *testing.T) {
	curve, err := Reconstruct([]TideEvent{
		{Hour: 18, Height: 0.4, Kind: TideLow},
		{Hour: 24, Height: 1.6, Kind: TideHigh},
	})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if curve[23].Height != 1.6 || curve[23].Kind != TideHigh {
		t.Errorf("curve[23] = %+v, want the folded high tide", curve[23])
	}
	for k := 19; k < 23; k++ {
		if curve[k].Direction != DirectionIncreasing {
			t.Errorf("curve[%d].Direction = %v", k, curve[k].Direction)
		}
	}
}

func TestReconstructSingleEvent(t *testing.T) {
	curve, err := Reconstruct([]TideEvent{{Hour: 10, Height: 1.2, Kind: TideHigh}})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	for k, c := range curve {
		if k == 10 {
			continue
		}
		if c != (TideCell{}) {
			t.Errorf("curve[%d] = %+v, want zero cell", k, c)
		}
	}
}

func TestReconstructErrors(t *testing.T) {
	tests := []struct {
		name       string
		events     []TideEvent
		degenerate bool
	}{
		{"same hour", []TideEvent{{Hour: 5, Height: 1}, {Hour: 5, Height: 2}}, true},
		{"collides after fold", []TideEvent{{Hour: 23, Height: 1}, {Hour: 24, Height: 2}}, true},
		{"negative hour", []TideEvent{{Hour: -1, Height: 1}}, false},
		{"hour past midnight", []TideEvent{{Hour: 25, Height: 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reconstruct(tt.events)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Reconstruct() error = %v, want ErrInvalidInput", err)
			}
			if got := errors.Is(err, ErrDegenerateInterval); got != tt.degenerate {
				t.Errorf("errors.Is(err, ErrDegenerateInterval) = %v, want %v", got, tt.degenerate)
			}
		})
	}
}

func TestParseTideKind(t *testing.T) {
	for _, s := range []string{"high", "low"} {
		if got, err := ParseTideKind(s); err != nil || string(got) != s {
			t.Errorf("ParseTideKind(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseTideKind("slack"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseTideKind(slack) error = %v, want ErrInvalidInput", err)
	}
}
