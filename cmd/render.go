package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sumwatshade/surfgrid/cmd/archive"
	"github.com/sumwatshade/surfgrid/cmd/canvas"
	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
	"github.com/sumwatshade/surfgrid/cmd/logger"
	"github.com/sumwatshade/surfgrid/cmd/notify"
	"github.com/sumwatshade/surfgrid/cmd/settings"
)

var outputFlag string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the day's grid to the configured display",
	Long: `Fetches the forecast, scores every column and paints the grid to
display.target: a PNG file, the e-paper HAT or this terminal. Successful
renders can be archived and posted to Telegram.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if outputFlag != "" {
			cfg.Display.Output = outputFlag
		}
		date, err := renderDate()
		if err != nil {
			return err
		}
		return runRender(cmd.Context(), cfg, date)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "PNG file to write (overrides display.output)")
	rootCmd.AddCommand(renderCmd)
}

// fetchDay fetches the forecast for date and converts it to pipeline input.
func fetchDay(ctx context.Context, cfg *settings.Config, date time.Time) (dotgrid.Day, string, error) {
	svc, closer, err := newForecastService(cfg)
	if err != nil {
		return dotgrid.Day{}, "", err
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Source.Timeout)
	defer cancel()
	p, err := svc.Fetch(ctx, date)
	if err != nil {
		return dotgrid.Day{}, "", fmt.Errorf("fetching forecast: %w", err)
	}
	day, err := p.Day()
	if err != nil {
		return dotgrid.Day{}, "", err
	}
	name := cfg.Location.Name
	if name == "" {
		name = p.Location.Name
	}
	return day, name, nil
}

func runRender(ctx context.Context, cfg *settings.Config, date time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	day, location, err := fetchDay(ctx, cfg, date)
	if err != nil {
		return err
	}

	// Run every stage before any surface exists, so a bad day is rejected
	// without touching the display.
	grid := cfg.DotGrid()
	res, err := dotgrid.Run(day, grid)
	if err != nil {
		return err
	}
	paint := func(s dotgrid.Surface, layout dotgrid.Layout) error {
		cmds, err := dotgrid.Compose(res.TideRows, res.Scores.Total, res.WindDirection, grid, layout)
		if err != nil {
			return err
		}
		dotgrid.Replay(cmds, s)
		return nil
	}

	var png []byte
	switch cfg.Display.Target {
	case settings.TargetTerminal:
		term := canvas.NewTerminal(grid)
		if err := paint(term, canvas.TerminalLayout(grid)); err != nil {
			return err
		}
		fmt.Println(term.View())

	case settings.TargetEPaper:
		panel, err := canvas.OpenEPaper("")
		if err != nil {
			return err
		}
		defer panel.Close()
		b := panel.Image().Bounds()
		layout := dotgrid.NewLayout(b.Dx(), b.Dy(), dotgrid.Point{X: cfg.Display.OffsetX, Y: cfg.Display.OffsetY}, grid)
		if err := paint(panel, layout); err != nil {
			return err
		}
		if cfg.Display.Caption {
			panel.Caption(caption(location, date))
		}
		if err := panel.Flush(); err != nil {
			return err
		}
		if png, err = encodePNG(panel.Raster); err != nil {
			return err
		}

	default:
		raster := canvas.NewRaster(cfg.Display.Width, cfg.Display.Height)
		if err := paint(raster, cfg.Layout()); err != nil {
			return err
		}
		if cfg.Display.Caption {
			raster.Caption(caption(location, date))
		}
		if png, err = encodePNG(raster); err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Display.Output, png, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.Display.Output, err)
		}
		logger.Info("wrote %s", cfg.Display.Output)
	}

	logger.Info("swell scores: %v", res.Scores.Swell)
	logger.Info("wind scores: %v", res.Scores.Wind)
	logger.Info("total scores: %v", res.Scores.Total)
	logger.Info("tide rows: %v", res.TideRows)

	record := archive.NewRecord(date, location, cfg.Source.Kind, grid.Window, res)
	if cfg.Archive.Enabled {
		svc, err := archive.NewFileService(cfg.Archive.Dir)
		if err != nil {
			return err
		}
		if record, err = svc.Create(record, png); err != nil {
			return fmt.Errorf("archiving render: %w", err)
		}
		logger.Info("archived render %s", record.ID)
	}

	if cfg.Telegram.Enabled {
		t := cfg.Telegram
		client, err := notify.NewClient(t.BotToken, t.ChatID, t.MaxRetries, t.RetryDelayBase)
		if err != nil {
			// The render itself succeeded.
			logger.Error("telegram: %v", err)
			return nil
		}
		if err := client.Send(ctx, record, png); err != nil {
			logger.Error("telegram: %v", err)
		}
	}
	return nil
}

func encodePNG(r *canvas.Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

func caption(location string, date time.Time) string {
	return fmt.Sprintf("%s  %s", location, date.Format("Mon 2 Jan"))
}
