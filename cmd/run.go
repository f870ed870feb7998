package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/encodeous/dvnode/sim"
	"github.com/encodeous/dvnode/state"
	"github.com/spf13/cobra"
)

// ErrRoutesIncorrect is returned by run when an observed route is wrong or missing
var ErrRoutesIncorrect = errors.New("not all routes are correct")

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the network and print the observed routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, rep, err := simulate(cmd)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rep.String())
		if !rep.AllCorrect {
			cmd.SilenceUsage = true
			return ErrRoutesIncorrect
		}
		return nil
	},
	GroupID: "sim",
}

// simulate loads the network config, then runs it until completion or until interrupted
func simulate(cmd *cobra.Command) (*sim.Network, *sim.Report, error) {
	cfg, err := state.ReadNetworkConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if ok, _ := cmd.Flags().GetBool("verbose"); ok {
		level = slog.LevelDebug
	}
	logPath, _ := cmd.Flags().GetString("log-path")
	logger, closeLog, err := sim.NewLogger(os.Stderr, "dvnode", level, logPath)
	if err != nil {
		return nil, nil, err
	}
	defer closeLog()

	if addr, _ := cmd.Flags().GetString("debug-addr"); addr != "" {
		go func() {
			logger.Warn("debug server stopped", "err", http.ListenAndServe(addr, nil))
		}()
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(context.Canceled)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		select {
		case _ = <-c:
			cancel(errors.New("received shutdown signal"))
		case <-ctx.Done():
			return
		}
	}()

	n := sim.New(*cfg, logger)
	n.Realtime, _ = cmd.Flags().GetBool("realtime")
	logger.Info("simulating network", "config", configPath, "routers", len(cfg.Routers), "clients", len(cfg.Clients), "until", n.StopTime())
	rep, err := n.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return n, rep, nil
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	cmd.Flags().BoolP("realtime", "r", false, "Pace the simulation against the wall clock")
	cmd.Flags().StringP("log-path", "l", "", "Also write logs to this file")
	cmd.Flags().String("debug-addr", "", "Serve expvar and metrics on this address, e.g. 127.0.0.1:6060")
}

func init() {
	rootCmd.AddCommand(runCmd)
	addSimFlags(runCmd)
}
