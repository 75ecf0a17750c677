package dotgrid

// SwellReading is one hourly swell forecast entry.
type SwellReading struct {
	Height float64
}

// WindReading is one hourly wind forecast entry. Direction is in degrees.
type WindReading struct {
	Speed     float64
	Direction float64
}

// Day is the input to a render: 24 hourly swell and wind readings and the
// sparse tide turning points of the same day.
type Day struct {
	Swell []SwellReading
	Wind  []WindReading
	Tides []TideEvent
}

// Result holds every intermediate series of a render.
type Result struct {
	Swell         []float64
	WindSpeed     []float64
	WindDirection []float64
	Tide          []float64

	Curve    TideCurve
	Scores   Scores
	TideRows []int
}

// Run computes the per-column series of a day without drawing anything.
func Run(day Day, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	curve, err := Reconstruct(day.Tides)
	if err != nil {
		return nil, err
	}

	res := &Result{Curve: curve}
	if res.Swell, err = Resample(day.Swell, func(r SwellReading) float64 { return r.Height }, cfg.Window, cfg.Cols); err != nil {
		return nil, err
	}
	if res.WindSpeed, err = Resample(day.Wind, func(r WindReading) float64 { return r.Speed }, cfg.Window, cfg.Cols); err != nil {
		return nil, err
	}
	if res.WindDirection, err = Resample(day.Wind, func(r WindReading) float64 { return r.Direction }, cfg.Window, cfg.Cols); err != nil {
		return nil, err
	}
	if res.Tide, err = Resample(curve[:], func(c TideCell) float64 { return c.Height }, cfg.Window, cfg.Cols); err != nil {
		return nil, err
	}

	if res.Scores, err = Score(res.Swell, res.WindSpeed, res.WindDirection, cfg); err != nil {
		return nil, err
	}
	res.TideRows = TideRows(res.Tide, cfg)
	return res, nil
}

// Render runs the pipeline and replays the grid onto s. Nothing is drawn
// unless every stage succeeds.
func Render(day Day, cfg Config, s Surface, layout Layout) (*Result, error) {
	res, err := Run(day, cfg)
	if err != nil {
		return nil, err
	}
	cmds, err := Compose(res.TideRows, res.Scores.Total, res.WindDirection, cfg, layout)
	if err != nil {
		return nil, err
	}
	Replay(cmds, s)
	return res, nil
}
