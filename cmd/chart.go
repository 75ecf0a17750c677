package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sumwatshade/surfgrid/cmd/canvas"
	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
	"github.com/sumwatshade/surfgrid/cmd/logger"
)

var (
	chartOutput string
	chartWidth  int
	chartHeight int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Chart the resampled swell, wind, tide and scores of a day",
	Long: `Runs the same pipeline as render but, instead of the dot grid, writes a
line chart of every column's swell height, wind speed and tide height with the
total score on a second axis. Useful when tuning the wind band and ceilings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		date, err := renderDate()
		if err != nil {
			return err
		}
		day, _, err := fetchDay(cmd.Context(), cfg, date)
		if err != nil {
			return err
		}
		res, err := dotgrid.Run(day, cfg.DotGrid())
		if err != nil {
			return err
		}

		f, err := os.Create(chartOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := canvas.WriteSeriesChart(f, res, chartWidth, chartHeight); err != nil {
			return err
		}
		logger.Info("wrote %s", chartOutput)
		fmt.Fprintln(cmd.OutOrStdout(), chartOutput)
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "surfgrid-chart.png", "PNG file to write")
	chartCmd.Flags().IntVar(&chartWidth, "width", 960, "chart width in pixels")
	chartCmd.Flags().IntVar(&chartHeight, "height", 480, "chart height in pixels")
	rootCmd.AddCommand(chartCmd)
}
