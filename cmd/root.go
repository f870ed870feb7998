package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

const DefaultConfigPath = "network.yaml"

var configPath = DefaultConfigPath

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dvnode",
	Short: "Distance-vector routing simulator",
	Long: `dvnode runs distance-vector routers on a simulated network of routers, clients and links.
Clients trace routes to each other, and the routes they observe are checked against the expected ones.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(exitCode(rootCmd.Execute()))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrRoutesIncorrect):
		return 2
	}
	return 1
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "init",
		Title: "Create Networks",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "sim",
		Title: "Simulation Commands",
	})
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configPath, "network config")
}
