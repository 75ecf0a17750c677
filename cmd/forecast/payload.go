package forecast

import (
	"fmt"
	"time"

	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
)

// TimeLayout is the timestamp format of every forecast entry.
const TimeLayout = "2006-01-02 15:04:05"

// Payload mirrors the weather.json document of the WillyWeather API, limited
// to the forecasts a render uses. Every source produces one.
type Payload struct {
	Location  Location  `json:"location"`
	Forecasts Forecasts `json:"forecasts"`
}

type Location struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type Forecasts struct {
	Tides *Forecast[TideEntry]  `json:"tides,omitempty"`
	Swell *Forecast[SwellEntry] `json:"swell,omitempty"`
	Wind  *Forecast[WindEntry]  `json:"wind,omitempty"`
}

type Forecast[T any] struct {
	Days []ForecastDay[T] `json:"days"`
}

type ForecastDay[T any] struct {
	DateTime string `json:"dateTime"`
	Entries  []T    `json:"entries"`
}

type TideEntry struct {
	DateTime string  `json:"dateTime"`
	Height   float64 `json:"height"`
	Type     string  `json:"type"`
}

type SwellEntry struct {
	DateTime      string  `json:"dateTime"`
	Height        float64 `json:"height"`
	Period        float64 `json:"period"`
	Direction     float64 `json:"direction"`
	DirectionText string  `json:"directionText"`
}

type WindEntry struct {
	DateTime      string  `json:"dateTime"`
	Speed         float64 `json:"speed"`
	Direction     float64 `json:"direction"`
	DirectionText string  `json:"directionText"`
}

func firstDay[T any](name string, f *Forecast[T]) ([]T, error) {
	if f == nil || len(f.Days) == 0 {
		return nil, fmt.Errorf("%w: payload has no %s forecast", dotgrid.ErrInvalidInput, name)
	}
	return f.Days[0].Entries, nil
}

// Day converts the first forecast day into pipeline input. Tide timestamps are
// snapped to their nearest hour.
func (p *Payload) Day() (dotgrid.Day, error) {
	tides, err := firstDay("tides", p.Forecasts.Tides)
	if err != nil {
		return dotgrid.Day{}, err
	}
	swell, err := firstDay("swell", p.Forecasts.Swell)
	if err != nil {
		return dotgrid.Day{}, err
	}
	wind, err := firstDay("wind", p.Forecasts.Wind)
	if err != nil {
		return dotgrid.Day{}, err
	}

	day := dotgrid.Day{
		Swell: make([]dotgrid.SwellReading, len(swell)),
		Wind:  make([]dotgrid.WindReading, len(wind)),
		Tides: make([]dotgrid.TideEvent, 0, len(tides)),
	}
	for i, s := range swell {
		day.Swell[i] = dotgrid.SwellReading{Height: s.Height}
	}
	for i, w := range wind {
		day.Wind[i] = dotgrid.WindReading{Speed: w.Speed, Direction: w.Direction}
	}
	for _, t := range tides {
		ts, err := time.Parse(TimeLayout, t.DateTime)
		if err != nil {
			return dotgrid.Day{}, fmt.Errorf("%w: tide time %q: %v", dotgrid.ErrInvalidInput, t.DateTime, err)
		}
		kind, err := dotgrid.ParseTideKind(t.Type)
		if err != nil {
			return dotgrid.Day{}, err
		}
		day.Tides = append(day.Tides, dotgrid.TideEvent{
			Hour:   dotgrid.HourIndex(ts),
			Height: t.Height,
			Kind:   kind,
		})
	}
	return day, nil
}
