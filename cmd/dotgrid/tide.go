package dotgrid

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// TideKind is the type of a known tide turning point.
type TideKind string

const (
	TideHigh TideKind = "high"
	TideLow  TideKind = "low"
)

// ParseTideKind accepts the "high"/"low" strings used by forecast payloads.
func ParseTideKind(s string) (TideKind, error) {
	switch TideKind(s) {
	case TideHigh, TideLow:
		return TideKind(s), nil
	}
	return "", invalidInput("unknown tide type %q", s)
}

// TideDirection is the flow of the tide through an interpolated hour.
type TideDirection int

const (
	DirectionUnknown TideDirection = iota
	DirectionIncreasing
	DirectionDecreasing
)

func (d TideDirection) String() string {
	switch d {
	case DirectionIncreasing:
		return "increasing"
	case DirectionDecreasing:
		return "decreasing"
	}
	return "unknown"
}

// TideEvent is a known high or low tide tagged to its nearest hour.
type TideEvent struct {
	Hour   int
	Height float64
	Kind   TideKind
}

// TideCell is one hour of a reconstructed tide curve. Kind is only set on
// the hours holding a known event; Direction only on interpolated hours.
type TideCell struct {
	Height    float64
	Direction TideDirection
	Kind      TideKind
}

// TideCurve is the dense hourly tide curve for one day.
type TideCurve [HoursPerDay]TideCell

// Heights returns the curve as a plain 24-entry height series.
func (c TideCurve) Heights() []float64 {
	out := make([]float64, len(c))
	for i, cell := range c {
		out[i] = cell.Height
	}
	return out
}

// HourIndex rounds a timestamp to the nearest hour of its day. Anything that
// rounds up to midnight of the following day is kept on hour 23.
func HourIndex(t time.Time) int {
	fraction := float64(t.Hour()) + float64(t.Minute())/60
	return foldHour(int(math.Round(fraction)))
}

func foldHour(h int) int {
	if h == HoursPerDay {
		return HoursPerDay - 1
	}
	return h
}

// Reconstruct builds the hourly tide curve from sparse high/low events by
// walking each interval between consecutive events one hour at a time.
// Hours before the first and after the last event stay at height zero with
// an unknown direction.
func Reconstruct(events []TideEvent) (TideCurve, error) {
	var curve TideCurve

	known := make([]TideEvent, len(events))
	for i, e := range events {
		if e.Hour < 0 || e.Hour > HoursPerDay {
			return curve, invalidInput("tide event hour %d outside the day", e.Hour)
		}
		e.Hour = foldHour(e.Hour)
		known[i] = e
	}
	sort.SliceStable(known, func(i, j int) bool { return known[i].Hour < known[j].Hour })

	for _, e := range known {
		curve[e.Hour] = TideCell{Height: e.Height, Kind: e.Kind}
	}

	for i := 0; i+1 < len(known); i++ {
		from, to := known[i], known[i+1]
		span := to.Hour - from.Hour
		if span == 0 {
			return curve, fmt.Errorf("%w: two tide events at hour %d", ErrDegenerateInterval, from.Hour)
		}
		step := (to.Height - from.Height) / float64(span)
		direction := DirectionDecreasing
		if step > 0 {
			direction = DirectionIncreasing
		}
		for k := from.Hour + 1; k < to.Hour; k++ {
			curve[k] = TideCell{Height: curve[k-1].Height + step, Direction: direction}
		}
	}
	return curve, nil
}
