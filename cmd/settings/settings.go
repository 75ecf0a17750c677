// Package settings loads the surfgrid configuration file and turns it into
// the values each stage of a render needs.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
)

// EnvPrefix is prepended to every environment override, e.g.
// SURFGRID_SOURCE_API_KEY.
const EnvPrefix = "SURFGRID"

// Config represents the complete application configuration
type Config struct {
	Location LocationConfig `mapstructure:"location"`
	Window   WindowConfig   `mapstructure:"window"`
	Grid     GridConfig     `mapstructure:"grid"`
	Display  DisplayConfig  `mapstructure:"display"`
	Source   SourceConfig   `mapstructure:"source"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LocationConfig describes the surf spot being forecast.
type LocationConfig struct {
	ID                 int     `mapstructure:"id"`
	Name               string  `mapstructure:"name"`
	Latitude           float64 `mapstructure:"latitude"`
	Longitude          float64 `mapstructure:"longitude"`
	MaxTideHeight      float64 `mapstructure:"max_tide_height"`
	MaxSwellHeight     float64 `mapstructure:"max_swell_height"`
	WindDirRangeStart  float64 `mapstructure:"wind_dir_range_start"`
	WindDirRangeEnd    float64 `mapstructure:"wind_dir_range_end"`
	WindDirRangeBuffer float64 `mapstructure:"wind_dir_range_buffer"`
}

// WindowConfig is the range of clock hours drawn across the grid.
type WindowConfig struct {
	HourStart int `mapstructure:"hour_start"`
	HourEnd   int `mapstructure:"hour_end"`
}

// GridConfig sizes the dot grid.
type GridConfig struct {
	Cols          int     `mapstructure:"cols"`
	Rows          int     `mapstructure:"rows"`
	ContainerSize float64 `mapstructure:"container_size"`
	// MaxDotSizeActive of zero means twice the cell size.
	MaxDotSizeActive   float64 `mapstructure:"max_dot_size_active"`
	MinDotSizeActive   int     `mapstructure:"min_dot_size_active"`
	MinDotSizeInactive int     `mapstructure:"min_dot_size_inactive"`
	WindSpeedCeiling   float64 `mapstructure:"wind_speed_ceiling"`
	ShowWindTail       bool    `mapstructure:"show_wind_tail"`
}

// DisplayConfig selects where a render is painted.
type DisplayConfig struct {
	Target  string  `mapstructure:"target"`
	Width   int     `mapstructure:"width"`
	Height  int     `mapstructure:"height"`
	OffsetX float64 `mapstructure:"offset_x"`
	OffsetY float64 `mapstructure:"offset_y"`
	Output  string  `mapstructure:"output"`
	Caption bool    `mapstructure:"caption"`
}

// SourceConfig selects and configures the forecast source.
type SourceConfig struct {
	Kind        string        `mapstructure:"kind"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	UserAgent   string        `mapstructure:"user_agent"`
	From        string        `mapstructure:"from"`
	Timeout     time.Duration `mapstructure:"timeout"`
	FixturePath string        `mapstructure:"fixture_path"`
	ERA5Path    string        `mapstructure:"era5_path"`
	// ERA5Tides names the source the ERA5 reader takes tides from.
	ERA5Tides string        `mapstructure:"era5_tides"`
	CachePath string        `mapstructure:"cache_path"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// ArchiveConfig controls the on-disk history of renders.
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Source kinds.
const (
	SourceWillyWeather = "willyweather"
	SourceFixture      = "fixture"
	SourceERA5         = "era5"
)

// Display targets.
const (
	TargetPNG      = "png"
	TargetEPaper   = "epaper"
	TargetTerminal = "terminal"
)

// Configure registers defaults and environment overrides on v.
func Configure(v *viper.Viper) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// FromViper unmarshals an already configured viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".surfgrid")

	// Coolum Beach
	v.SetDefault("location.id", 6833)
	v.SetDefault("location.name", "Coolum Beach")
	v.SetDefault("location.latitude", -26.53)
	v.SetDefault("location.longitude", 153.09)
	v.SetDefault("location.max_tide_height", 3.0)
	v.SetDefault("location.max_swell_height", 3.0)
	v.SetDefault("location.wind_dir_range_start", 225.0)
	v.SetDefault("location.wind_dir_range_end", 315.0)
	v.SetDefault("location.wind_dir_range_buffer", 45.0)

	v.SetDefault("window.hour_start", 6)
	v.SetDefault("window.hour_end", 18)

	v.SetDefault("grid.cols", 24)
	v.SetDefault("grid.rows", 24)
	v.SetDefault("grid.container_size", 324.0)
	v.SetDefault("grid.max_dot_size_active", 0.0)
	v.SetDefault("grid.min_dot_size_active", 4)
	v.SetDefault("grid.min_dot_size_inactive", 2)
	v.SetDefault("grid.wind_speed_ceiling", 30.0)
	v.SetDefault("grid.show_wind_tail", false)

	v.SetDefault("display.target", TargetPNG)
	v.SetDefault("display.width", 648)
	v.SetDefault("display.height", 480)
	v.SetDefault("display.offset_x", 0.0)
	v.SetDefault("display.offset_y", 16.0)
	v.SetDefault("display.output", "surfgrid.png")
	v.SetDefault("display.caption", true)

	v.SetDefault("source.kind", SourceWillyWeather)
	v.SetDefault("source.base_url", "https://api.willyweather.com.au")
	v.SetDefault("source.api_key", "")
	v.SetDefault("source.user_agent", "Surf Grid")
	v.SetDefault("source.from", "")
	v.SetDefault("source.timeout", "10s")
	v.SetDefault("source.fixture_path", "")
	v.SetDefault("source.era5_path", "")
	v.SetDefault("source.era5_tides", SourceWillyWeather)
	v.SetDefault("source.cache_path", filepath.Join(dataDir, "forecast.db"))
	v.SetDefault("source.cache_ttl", "3h")

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.dir", filepath.Join(dataDir, "archive"))

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid. Degenerate grid
// and location ranges wrap dotgrid.ErrConfiguration.
func (c *Config) Validate() error {
	if err := c.DotGrid().Validate(); err != nil {
		return err
	}
	if c.Grid.ContainerSize <= 0 {
		return fmt.Errorf("%w: grid.container_size must be positive", dotgrid.ErrConfiguration)
	}

	switch c.Display.Target {
	case TargetPNG, TargetEPaper, TargetTerminal:
	default:
		return fmt.Errorf("display.target must be one of: png, epaper, terminal")
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display.width and display.height must be positive")
	}

	switch c.Source.Kind {
	case SourceWillyWeather:
		if err := c.Source.validateWillyWeather(c.Location.ID); err != nil {
			return err
		}
	case SourceFixture:
		if c.Source.FixturePath == "" {
			return fmt.Errorf("source.fixture_path is required for the fixture source")
		}
	case SourceERA5:
		if c.Source.ERA5Path == "" {
			return fmt.Errorf("source.era5_path is required for the era5 source")
		}
		switch c.Source.ERA5Tides {
		case SourceWillyWeather:
			if err := c.Source.validateWillyWeather(c.Location.ID); err != nil {
				return err
			}
		case SourceFixture:
			if c.Source.FixturePath == "" {
				return fmt.Errorf("source.fixture_path is required for fixture tides")
			}
		default:
			return fmt.Errorf("source.era5_tides must be one of: willyweather, fixture")
		}
	default:
		return fmt.Errorf("source.kind must be one of: willyweather, fixture, era5")
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive")
	}

	if c.Archive.Enabled && c.Archive.Dir == "" {
		return fmt.Errorf("archive.dir is required when the archive is enabled")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	return nil
}

func (s SourceConfig) validateWillyWeather(locationID int) error {
	if s.APIKey == "" {
		return fmt.Errorf("source.api_key is required for the willyweather source")
	}
	if s.BaseURL == "" {
		return fmt.Errorf("source.base_url is required for the willyweather source")
	}
	if locationID <= 0 {
		return fmt.Errorf("location.id is required for the willyweather source")
	}
	return nil
}

// Warnings reports settings that are accepted but probably not intended.
func (c *Config) Warnings() []string {
	var w []string
	l := c.Location
	if l.WindDirRangeStart > l.WindDirRangeEnd {
		w = append(w, fmt.Sprintf("wind band %v-%v starts after it ends; directions are not wrapped past north",
			l.WindDirRangeStart, l.WindDirRangeEnd))
	}
	if l.WindDirRangeStart-l.WindDirRangeBuffer < 0 || l.WindDirRangeEnd+l.WindDirRangeBuffer > 360 {
		w = append(w, "wind band buffer crosses north; the part past 0/360 never matches")
	}
	if c.Grid.Cols != c.Grid.Rows {
		w = append(w, fmt.Sprintf("grid is %dx%d, cells stay square", c.Grid.Cols, c.Grid.Rows))
	}
	return w
}

// DotGrid builds the render configuration.
func (c *Config) DotGrid() dotgrid.Config {
	cellSize := 0.0
	if c.Grid.Cols > 0 {
		cellSize = c.Grid.ContainerSize / float64(c.Grid.Cols)
	}
	maxDot := c.Grid.MaxDotSizeActive
	if maxDot == 0 {
		maxDot = cellSize * 2
	}
	return dotgrid.Config{
		MaxTideHeight:      c.Location.MaxTideHeight,
		MaxSwellHeight:     c.Location.MaxSwellHeight,
		WindDirRangeStart:  c.Location.WindDirRangeStart,
		WindDirRangeEnd:    c.Location.WindDirRangeEnd,
		WindDirRangeBuffer: c.Location.WindDirRangeBuffer,
		WindSpeedCeiling:   c.Grid.WindSpeedCeiling,
		Window:             dotgrid.Window{Start: c.Window.HourStart, End: c.Window.HourEnd},
		Cols:               c.Grid.Cols,
		Rows:               c.Grid.Rows,
		CellSize:           cellSize,
		MaxDotSizeActive:   maxDot,
		MinDotSizeActive:   c.Grid.MinDotSizeActive,
		MinDotSizeInactive: c.Grid.MinDotSizeInactive,
		ShowWindTail:       c.Grid.ShowWindTail,
	}
}

// Layout centers the grid on the configured display.
func (c *Config) Layout() dotgrid.Layout {
	return dotgrid.NewLayout(c.Display.Width, c.Display.Height,
		dotgrid.Point{X: c.Display.OffsetX, Y: c.Display.OffsetY}, c.DotGrid())
}
