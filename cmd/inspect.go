package cmd

import (
	"fmt"

	"github.com/encodeous/dvnode/state"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect [router...]",
	Aliases: []string{"i"},
	Short:   "Simulate the network and dump the final state of its routers",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, rep, err := simulate(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		routers := state.SortedAddrs(n.Routers)
		if len(args) != 0 {
			routers = make([]state.Addr, 0, len(args))
			for _, arg := range args {
				if _, ok := n.Routers[state.Addr(arg)]; !ok {
					return fmt.Errorf("router %s not found", arg)
				}
				routers = append(routers, state.Addr(arg))
			}
		}
		for _, id := range routers {
			fmt.Fprintln(out, n.Routers[id].Inspect())
		}
		fmt.Fprint(out, rep.String())
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addSimFlags(inspectCmd)
}
