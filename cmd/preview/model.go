// Package preview is the left pane of the interactive viewer: the day's dot
// grid drawn in the terminal, the reconstructed tide and a score table.
package preview

import (
	"context"
	"time"

	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
	"github.com/sumwatshade/surfgrid/cmd/forecast"
	"github.com/sumwatshade/surfgrid/cmd/logger"
)

// Data is the outcome of one fetch and render. Err is set when either failed.
type Data struct {
	Location string
	Date     time.Time
	Config   dotgrid.Config
	Result   *dotgrid.Result
	Err      error
}

// Loader fetches a day's forecast and runs it through the pipeline.
type Loader struct {
	Service  forecast.Service
	Date     time.Time
	Config   dotgrid.Config
	Location string
	Timeout  time.Duration
}

// Load never returns nil; failures are carried in Data.Err.
func (l Loader) Load(ctx context.Context) *Data {
	d := &Data{Location: l.Location, Date: l.Date, Config: l.Config}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	p, err := l.Service.Fetch(ctx, l.Date)
	if err != nil {
		logger.Warn("preview fetch failed: %v", err)
		d.Err = err
		return d
	}
	if d.Location == "" {
		d.Location = p.Location.Name
	}
	day, err := p.Day()
	if err != nil {
		d.Err = err
		return d
	}
	d.Result, d.Err = dotgrid.Run(day, l.Config)
	return d
}

// columnTime is the clock time, as minutes after midnight, at the left edge
// of column j.
func columnTime(cfg dotgrid.Config, j int) int {
	return cfg.Window.Start*60 + j*cfg.Window.Len()*60/cfg.Cols
}
