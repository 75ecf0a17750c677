package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Save writes the location, window and source sections of c to path. The file
// type follows the extension; other sections keep their defaults on reload.
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.Set("location.id", c.Location.ID)
	v.Set("location.name", c.Location.Name)
	v.Set("location.latitude", c.Location.Latitude)
	v.Set("location.longitude", c.Location.Longitude)
	v.Set("location.max_tide_height", c.Location.MaxTideHeight)
	v.Set("location.max_swell_height", c.Location.MaxSwellHeight)
	v.Set("location.wind_dir_range_start", c.Location.WindDirRangeStart)
	v.Set("location.wind_dir_range_end", c.Location.WindDirRangeEnd)
	v.Set("location.wind_dir_range_buffer", c.Location.WindDirRangeBuffer)

	v.Set("window.hour_start", c.Window.HourStart)
	v.Set("window.hour_end", c.Window.HourEnd)

	v.Set("source.kind", c.Source.Kind)
	if c.Source.APIKey != "" {
		v.Set("source.api_key", c.Source.APIKey)
	}
	if c.Source.FixturePath != "" {
		v.Set("source.fixture_path", c.Source.FixturePath)
	}
	if c.Source.ERA5Path != "" {
		v.Set("source.era5_path", c.Source.ERA5Path)
	}

	v.Set("display.target", c.Display.Target)
	v.Set("grid.show_wind_tail", c.Grid.ShowWindTail)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
