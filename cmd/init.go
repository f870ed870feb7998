package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/encodeous/dvnode/state"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample network config",
	Long:  `Writes a small network of three routers and two clients. With --failure, the cheapest link fails partway through.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		failure, _ := cmd.Flags().GetBool("failure")

		if _, err := os.Stat(configPath); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite it", configPath)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		cfg := state.SampleNetwork(failure)
		if err := state.WriteNetworkConfig(configPath, &cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample network to %s\n", configPath)
		return nil
	},
	GroupID: "init",
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
	initCmd.Flags().Bool("failure", false, "Include a link failure in the sample")
}
