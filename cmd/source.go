package cmd

import (
	"fmt"
	"io"

	"github.com/sumwatshade/surfgrid/cmd/forecast"
	"github.com/sumwatshade/surfgrid/cmd/logger"
	"github.com/sumwatshade/surfgrid/cmd/settings"
)

// newForecastService builds the configured source, wrapped in the SQLite
// cache when one is configured. Fixtures are read straight from disk. The
// returned closer is nil when there is nothing to close.
func newForecastService(cfg *settings.Config) (forecast.Service, io.Closer, error) {
	src := cfg.Source
	willy := func() forecast.Service {
		return forecast.NewWillyWeather(forecast.WillyWeatherOptions{
			BaseURL:    src.BaseURL,
			APIKey:     src.APIKey,
			LocationID: cfg.Location.ID,
			UserAgent:  src.UserAgent,
			From:       src.From,
			Timeout:    src.Timeout,
		})
	}

	var svc forecast.Service
	var key string
	switch src.Kind {
	case settings.SourceWillyWeather:
		svc = willy()
		key = fmt.Sprintf("%s:%d", src.Kind, cfg.Location.ID)
	case settings.SourceFixture:
		return forecast.NewFixture(src.FixturePath), nil, nil
	case settings.SourceERA5:
		var tides forecast.Service
		switch src.ERA5Tides {
		case settings.SourceFixture:
			tides = forecast.NewFixture(src.FixturePath)
		default:
			tides = willy()
		}
		svc = forecast.NewERA5(src.ERA5Path, cfg.Location.Latitude, cfg.Location.Longitude, tides)
		key = fmt.Sprintf("%s:%.2f,%.2f", src.Kind, cfg.Location.Latitude, cfg.Location.Longitude)
	default:
		return nil, nil, fmt.Errorf("unknown source %q", src.Kind)
	}

	if src.CachePath == "" || src.CacheTTL <= 0 {
		return svc, nil, nil
	}
	cache, err := forecast.OpenCache(src.CachePath, key, src.CacheTTL, svc)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("forecast cache %s keyed %s", src.CachePath, key)
	return cache, cache, nil
}
