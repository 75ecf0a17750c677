/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sumwatshade/surfgrid/cmd/archive"
	"github.com/sumwatshade/surfgrid/cmd/forecast"
	"github.com/sumwatshade/surfgrid/cmd/logger"
	"github.com/sumwatshade/surfgrid/cmd/preview"
	"github.com/sumwatshade/surfgrid/cmd/settings"
)

var (
	cfgFile    string
	dateFlag   string
	sourceFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "surfgrid",
	Short: "Draw a day of surf conditions as a grid of dots",
	Long: `Fetches a day of swell, wind and tide forecasts for a surf spot and
draws them as a dot grid: one column per slice of the day, dot size for how
good the conditions are, the filled band for the height of the tide.

Run without a subcommand for an interactive preview.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		date, err := renderDate()
		if err != nil {
			return err
		}

		// The TUI owns the terminal, so logs go to a file.
		path := logPath(cfg)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				defer f.Close()
				logger.InitWriter(f, cfg.Logging.Level, cfg.Logging.Format)
			}
		}

		svc, closer, err := newForecastService(cfg)
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer.Close()
		}

		var history archive.Service
		if cfg.Archive.Enabled {
			if history, err = archive.NewFileService(cfg.Archive.Dir); err != nil {
				return err
			}
		}

		loader := preview.Loader{
			Service:  svc,
			Date:     date,
			Config:   cfg.DotGrid(),
			Location: cfg.Location.Name,
			Timeout:  cfg.Source.Timeout,
		}
		p := tea.NewProgram(initialModel(loader, history), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.surfgrid.yaml)")
	rootCmd.PersistentFlags().StringVar(&dateFlag, "date", "", "day to render as YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "forecast source: willyweather, fixture or era5 (overrides source.kind)")
	cobra.CheckErr(viper.BindPFlag("source.kind", rootCmd.PersistentFlags().Lookup("source")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	settings.Configure(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".surfgrid" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".surfgrid")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	logger.Init(viper.GetString("logging.level"), viper.GetString("logging.format"))
}

// configPath is where init writes and the other commands read the config.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".surfgrid.yaml"), nil
}

// logPath puts the TUI log next to the forecast cache, else in the archive
// directory, else in ~/.surfgrid.
func logPath(cfg *settings.Config) string {
	const name = "surfgrid.log"
	switch {
	case cfg.Source.CachePath != "":
		return filepath.Join(filepath.Dir(cfg.Source.CachePath), name)
	case cfg.Archive.Dir != "":
		return filepath.Join(cfg.Archive.Dir, name)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), name)
	}
	return filepath.Join(home, ".surfgrid", name)
}

// loadConfig unmarshals and validates the global viper state.
func loadConfig() (*settings.Config, error) {
	cfg, err := settings.FromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run `surfgrid init` to create one)", err)
	}
	for _, w := range cfg.Warnings() {
		logger.Warn("%s", w)
	}
	return cfg, nil
}

// renderDate parses --date in local time, defaulting to today.
func renderDate() (time.Time, error) {
	if dateFlag == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	d, err := time.ParseInLocation(forecast.DateLayout, dateFlag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD", dateFlag)
	}
	return d, nil
}
