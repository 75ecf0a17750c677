package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sumwatshade/surfgrid/cmd/settings"
	"github.com/sumwatshade/surfgrid/cmd/setup"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the config file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := settings.FromViper(viper.GetViper())
		if err != nil {
			return err
		}
		cfg, err := setup.Run(base)
		if err != nil {
			return err
		}
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing written.")
			return nil
		}

		path, err := configPath()
		if err != nil {
			return err
		}
		if err := settings.Save(path, cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
