package dotgrid

import "math"

// Share of the maximum active dot size each condition can contribute.
const (
	swellShare          = 0.7
	windSpeedShare      = 0.3
	windBestShare       = 0.4
	windAcceptableShare = 0.2
)

// WindClass ranks a wind direction against the location's preferred band.
type WindClass int

const (
	WindUnfavorable WindClass = iota
	WindAcceptable
	WindBest
)

func (c WindClass) String() string {
	switch c {
	case WindBest:
		return "best"
	case WindAcceptable:
		return "acceptable"
	}
	return "unfavorable"
}

// ClassifyWind places a direction in the best band, the buffer on either side
// of it, or outside both. Degrees are compared as plain numbers.
func (c Config) ClassifyWind(direction float64) WindClass {
	start, end, buffer := c.WindDirRangeStart, c.WindDirRangeEnd, c.WindDirRangeBuffer
	switch {
	case direction >= start && direction <= end:
		return WindBest
	case direction >= start-buffer && direction < start:
		return WindAcceptable
	case direction > end && direction <= end+buffer:
		return WindAcceptable
	}
	return WindUnfavorable
}

// Scores holds the per-column condition scores of one render.
type Scores struct {
	Swell []int
	Wind  []int
	Total []int
}

// Score fuses swell height with wind speed and direction for each column.
// A total below the minimum active dot size is replaced by that minimum.
func Score(swell, windSpeed, windDir []float64, cfg Config) (Scores, error) {
	n := len(swell)
	if len(windSpeed) != n || len(windDir) != n {
		return Scores{}, invalidInput("column series lengths differ: swell %d, wind speed %d, wind direction %d",
			len(swell), len(windSpeed), len(windDir))
	}

	s := Scores{
		Swell: make([]int, n),
		Wind:  make([]int, n),
		Total: make([]int, n),
	}
	for i := range swell {
		s.Swell[i] = cfg.swellScore(swell[i])
		s.Wind[i] = cfg.windScore(windSpeed[i], windDir[i])

		total := s.Swell[i] + s.Wind[i]
		if total < cfg.MinDotSizeActive {
			total = cfg.MinDotSizeActive
		}
		s.Total[i] = total
	}
	return s, nil
}

func (c Config) swellScore(height float64) int {
	return round(mapRange(height, 0, c.MaxSwellHeight, 0, c.MaxDotSizeActive*swellShare))
}

func (c Config) windScore(speed, direction float64) int {
	speedTerm := round(mapRange(speed, 0, c.WindSpeedCeiling, 0, c.MaxDotSizeActive*windSpeedShare))
	switch c.ClassifyWind(direction) {
	case WindBest:
		return round(c.MaxDotSizeActive*windBestShare) + speedTerm
	case WindAcceptable:
		return round(c.MaxDotSizeActive*windAcceptableShare) + speedTerm
	}
	// Stronger wind from the wrong quarter drags the score down.
	return -speedTerm
}

func round(x float64) int {
	return int(math.Round(x))
}
