package cmd

import (
	"fmt"

	"github.com/encodeous/dvnode/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validates the network config and prints it with defaults filled in",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := state.ReadNetworkConfig(configPath)
		if err != nil {
			return err
		}

		cfgYaml, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Config is valid")
		fmt.Fprintln(out, string(cfgYaml))
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
