package dotgrid

// HoursPerDay is the length of every raw hourly series.
const HoursPerDay = 24

// Config is the explicit render configuration threaded through every stage.
// It is built once per render and never mutated by the pipeline.
type Config struct {
	MaxTideHeight  float64
	MaxSwellHeight float64

	// Wind directions in degrees. The bands are compared linearly; a band
	// crossing 0/360 is not wrapped.
	WindDirRangeStart  float64
	WindDirRangeEnd    float64
	WindDirRangeBuffer float64
	// WindSpeedCeiling is the speed mapped onto the full wind speed term.
	WindSpeedCeiling float64

	Window Window

	Cols     int
	Rows     int
	CellSize float64

	MaxDotSizeActive   float64
	MinDotSizeActive   int
	MinDotSizeInactive int

	ShowWindTail bool
}

// DefaultConfig returns the Coolum Beach settings the grid was tuned against.
func DefaultConfig() Config {
	const containerSize = 324.0
	cols := 24
	cellSize := containerSize / float64(cols)
	return Config{
		MaxTideHeight:      3,
		MaxSwellHeight:     3,
		WindDirRangeStart:  225,
		WindDirRangeEnd:    315,
		WindDirRangeBuffer: 45,
		WindSpeedCeiling:   30,
		Window:             Window{Start: 6, End: 18},
		Cols:               cols,
		Rows:               cols,
		CellSize:           cellSize,
		MaxDotSizeActive:   cellSize * 2,
		MinDotSizeActive:   4,
		MinDotSizeInactive: 2,
	}
}

// Validate reports degenerate ranges before any computation starts.
func (c Config) Validate() error {
	if err := c.Window.validate(); err != nil {
		return invalidConfig("window: %v", err)
	}
	if c.MaxTideHeight <= 0 {
		return invalidConfig("max tide height must be positive, got %v", c.MaxTideHeight)
	}
	if c.MaxSwellHeight <= 0 {
		return invalidConfig("max swell height must be positive, got %v", c.MaxSwellHeight)
	}
	if c.WindSpeedCeiling <= 0 {
		return invalidConfig("wind speed ceiling must be positive, got %v", c.WindSpeedCeiling)
	}
	if c.WindDirRangeBuffer < 0 {
		return invalidConfig("wind direction buffer must not be negative, got %v", c.WindDirRangeBuffer)
	}
	if c.Cols < 1 {
		return invalidConfig("cols must be at least 1, got %d", c.Cols)
	}
	// The decay maps rows onto [startRow, rows-1], so a single row has no span.
	if c.Rows < 2 {
		return invalidConfig("rows must be at least 2, got %d", c.Rows)
	}
	if c.CellSize <= 0 {
		return invalidConfig("cell size must be positive, got %v", c.CellSize)
	}
	if c.MinDotSizeInactive < 0 {
		return invalidConfig("min inactive dot size must not be negative, got %d", c.MinDotSizeInactive)
	}
	if c.MinDotSizeActive <= c.MinDotSizeInactive {
		return invalidConfig("min active dot size %d must exceed min inactive dot size %d",
			c.MinDotSizeActive, c.MinDotSizeInactive)
	}
	if c.MaxDotSizeActive < float64(c.MinDotSizeActive) {
		return invalidConfig("max active dot size %v is below min active dot size %d",
			c.MaxDotSizeActive, c.MinDotSizeActive)
	}
	return nil
}
