package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sumwatshade/surfgrid/cmd/archive"
	"github.com/sumwatshade/surfgrid/cmd/forecast"
	"github.com/sumwatshade/surfgrid/cmd/settings"
)

var historyCache bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived renders",
	Long: `Lists archived renders, newest first. With --cache, lists the forecast
days held in the local cache instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		defer w.Flush()

		if historyCache {
			return listCache(cmd, cfg, w)
		}

		svc, err := archive.NewFileService(cfg.Archive.Dir)
		if err != nil {
			return err
		}
		records, err := svc.List()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "DATE\tLOCATION\tSOURCE\tPEAK\tID")
		for _, r := range records {
			peak := "-"
			if score, at, ok := r.Peak(); ok {
				peak = fmt.Sprintf("%d at %s", score, at)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Date, r.Location, r.Source, peak, r.ID)
		}
		return nil
	},
}

func listCache(cmd *cobra.Command, cfg *settings.Config, w *tabwriter.Writer) error {
	_, closer, err := newForecastService(cfg)
	if err != nil {
		return err
	}
	cache, ok := closer.(*forecast.Cache)
	if !ok {
		return fmt.Errorf("source %s is not cached", cfg.Source.Kind)
	}
	defer cache.Close()

	entries, err := cache.Entries(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "DATE\tSOURCE\tFETCHED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Date, e.Source, time.Unix(e.FetchedAt, 0).Format(time.DateTime))
	}
	return nil
}

func init() {
	historyCmd.Flags().BoolVar(&historyCache, "cache", false, "list cached forecast days instead of renders")
	rootCmd.AddCommand(historyCmd)
}
