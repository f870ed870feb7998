//go:build integration

package integration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/encodeous/dvnode/sim"
	"github.com/encodeous/dvnode/state"
)

type Signal chan bool

func NewSignal() Signal {
	return make(chan bool)
}
func (s Signal) Trigger() {
	select {
	case <-s:
	default:
		close(s)
	}
}
func (s Signal) Triggered() bool {
	select {
	case <-s:
		return true
	default:
		return false
	}
}
func (s Signal) Wait() {
	<-s
}

type Result struct {
	Report *sim.Report
	Err    error
}

// VirtualHarness builds a network and runs it against the wall clock on its own goroutine.
// Handlers run on the network's dispatch loop.
type VirtualHarness struct {
	Cfg     state.NetworkCfg
	Net     *sim.Network
	Context context.Context
	Cancel  context.CancelCauseFunc
	Verbose bool
	done    chan Result
}

func (v *VirtualHarness) NewRouter(ids ...state.Addr) {
	v.Cfg.Routers = append(v.Cfg.Routers, ids...)
}

func (v *VirtualHarness) NewClient(ids ...state.Addr) {
	v.Cfg.Clients = append(v.Cfg.Clients, ids...)
}

// AddLink connects a and b with the same cost in both directions
func (v *VirtualHarness) AddLink(a, b state.Addr, portA, portB state.Port, cost uint32) state.LinkCfg {
	link := state.LinkCfg{A: a, B: b, PortA: portA, PortB: portB, CostAB: cost, CostBA: cost}
	v.Cfg.Links = append(v.Cfg.Links, link)
	return link
}

func (v *VirtualHarness) At(units int, op state.ChangeOp, link state.LinkCfg) {
	v.Cfg.Changes = append(v.Cfg.Changes, state.ChangeCfg{At: units, Op: op, LinkCfg: link})
}

func (v *VirtualHarness) Expect(routes ...[]state.Addr) {
	v.Cfg.CorrectRoutes = append(v.Cfg.CorrectRoutes, routes...)
}

// Build validates the config and creates the network, so that handlers can be attached before Start
func (v *VirtualHarness) Build() error {
	if v.Cfg.TimeUnitMs == 0 {
		v.Cfg.TimeUnitMs = 2
	}
	state.ExpandNetworkConfig(&v.Cfg)
	if err := state.NetworkConfigValidator(&v.Cfg); err != nil {
		return err
	}
	var w io.Writer = io.Discard
	if v.Verbose {
		w = os.Stderr
	}
	logger, _, err := sim.NewLogger(w, "harness", slog.LevelDebug, "")
	if err != nil {
		return err
	}
	v.Net = sim.New(v.Cfg, logger)
	v.Net.Realtime = true
	return nil
}

func (v *VirtualHarness) Start() <-chan Result {
	ctx, cancel := context.WithCancelCause(context.Background())
	v.Context = ctx
	v.Cancel = cancel
	v.done = make(chan Result, 1)
	go func() {
		rep, err := v.Net.Run(ctx)
		v.done <- Result{Report: rep, Err: err}
	}()
	return v.done
}

// Stop cancels the run and waits for the dispatch loop to exit
func (v *VirtualHarness) Stop() {
	v.Cancel(errors.New("stopping harness"))
	select {
	case <-v.done:
	case <-time.After(10 * time.Second):
		panic("harness did not stop")
	}
}
