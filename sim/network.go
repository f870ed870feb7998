package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"time"

	"github.com/encodeous/dvnode/perf"
	"github.com/encodeous/dvnode/state"
	"github.com/jellydator/ttlcache/v3"
)

type linkKey = state.Pair[state.Addr, state.Addr]

// Network is an in-memory network of routers, clients and links, driven by a single
// dispatch loop over a logical clock. Nothing in it is safe for concurrent use.
type Network struct {
	Cfg state.NetworkCfg
	Log *slog.Logger
	// Realtime paces the clock against the wall clock instead of running as fast as possible
	Realtime bool
	// Now is the current logical time
	Now time.Duration

	Routers map[state.Addr]*RouterNode
	Clients map[state.Addr]*Client
	// Observations holds the latest route seen for each (src, dst) client pair
	Observations *ttlcache.Cache[linkKey, []state.Addr]
	// ObservationTTL is how long an observed route stays in the report without being seen again.
	// It only applies to realtime runs, since the cache ages entries by the wall clock.
	ObservationTTL time.Duration
	// TransitHandler, if set, sees every packet as it arrives at a node, before the node does
	TransitHandler func(node state.Addr, pkt *state.Packet)

	links map[linkKey]*Link
	queue eventQueue
	seq   uint64
}

func New(cfg state.NetworkCfg, log *slog.Logger) *Network {
	if log == nil {
		log = slog.Default()
	}
	n := &Network{
		Cfg:     cfg,
		Log:     log,
		Routers: make(map[state.Addr]*RouterNode),
		Clients: make(map[state.Addr]*Client),
		Observations: ttlcache.New[linkKey, []state.Addr](
			ttlcache.WithTTL[linkKey, []state.Addr](ttlcache.NoTTL),
			ttlcache.WithDisableTouchOnHit[linkKey, []state.Addr](),
		),
		ObservationTTL: cfg.Units(state.ObservationWindow * cfg.ClientSendRate),
		links:          make(map[linkKey]*Link),
	}
	for _, id := range cfg.Routers {
		n.Routers[id] = n.newRouterNode(id)
	}
	for _, id := range cfg.Clients {
		n.Clients[id] = n.newClient(id)
	}
	return n
}

// EndTime is when the final traceroute batch is sent
func (n *Network) EndTime() time.Duration {
	return n.Cfg.Units(n.Cfg.EndTime)
}

// StopTime is when the simulation stops, leaving the final batch time to arrive
func (n *Network) StopTime() time.Duration {
	return n.EndTime() + n.Cfg.Units(state.FinalBatchWindow*n.Cfg.ClientSendRate)
}

func (n *Network) schedule() {
	n.Dispatch(0, func(n *Network) error {
		for _, link := range n.Cfg.Links {
			if err := n.AddLink(link); err != nil {
				return err
			}
		}
		return nil
	})

	for _, id := range state.SortedAddrs(n.Routers) {
		r := n.Routers[id]
		n.RepeatedTask(0, n.Cfg.Units(n.Cfg.Tick), func(n *Network) error {
			r.OnTick(n.Now)
			return nil
		})
	}

	sendRate := n.Cfg.Units(n.Cfg.ClientSendRate)
	for _, id := range state.SortedAddrs(n.Clients) {
		c := n.Clients[id]
		n.RepeatedTask(sendRate, sendRate, func(n *Network) error {
			if n.Now < n.EndTime() {
				c.SendTraceroutes()
			}
			return nil
		})
	}

	for _, change := range n.Cfg.Changes {
		n.Dispatch(n.Cfg.Units(change.At), func(n *Network) error {
			return n.ApplyChange(change)
		})
	}

	n.Dispatch(n.EndTime(), func(n *Network) error {
		n.Log.Info("sending final traceroute batch", "at", n.Now)
		n.Observations.DeleteAll()
		for _, id := range state.SortedAddrs(n.Clients) {
			n.Clients[id].SendTraceroutes()
		}
		return nil
	})
}

// Run drives the network until its stop time and returns the route report. It returns
// early with the cause if ctx is cancelled, or with the first error an event returns.
func (n *Network) Run(ctx context.Context) (*Report, error) {
	n.schedule()
	stop := n.StopTime()
	start := time.Now()
	n.Log.Debug("started network", "routers", len(n.Routers), "clients", len(n.Clients), "stop", stop)

	for {
		if ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		ev := n.peek()
		if ev == nil || ev.At > stop {
			break
		}
		if n.Realtime {
			if err := sleepUntil(ctx, start.Add(ev.At)); err != nil {
				return nil, err
			}
		}
		n.next()
		n.Now = ev.At
		if err := n.dispatch(ev); err != nil {
			n.Log.Error("error occurred during dispatch", "error", err)
			return nil, err
		}
	}
	n.Now = stop
	n.Log.Debug("stopped network", "at", n.Now)
	return n.Report(), nil
}

func (n *Network) dispatch(ev *Event) error {
	start := time.Now()
	err := ev.Fun(n)
	elapsed := time.Since(start)
	perf.DispatchLatency.Add(float64(elapsed.Microseconds()))
	if elapsed > state.SlowDispatchThreshold {
		n.Log.Warn("dispatch took a long time!", "fun", runtime.FuncForPC(reflect.ValueOf(ev.Fun).Pointer()).Name(), "elapsed", elapsed, "len", n.queue.Len())
	}
	return err
}

func sleepUntil(ctx context.Context, deadline time.Time) error {
	wait := time.Until(deadline)
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-t.C:
		return nil
	}
}

func keyOf(a, b state.Addr) linkKey {
	if b < a {
		a, b = b, a
	}
	return linkKey{V1: a, V2: b}
}

// AddLink connects two nodes. An existing link between the same nodes, or on either of
// the ports used, is taken down first.
func (n *Network) AddLink(cfg state.LinkCfg) error {
	pa, err := n.portsOf(cfg.A)
	if err != nil {
		return fmt.Errorf("link %s: %w", cfg, err)
	}
	pb, err := n.portsOf(cfg.B)
	if err != nil {
		return fmt.Errorf("link %s: %w", cfg, err)
	}

	if old, ok := n.links[keyOf(cfg.A, cfg.B)]; ok {
		n.RemoveLink(old)
	}
	for _, side := range []state.Pair[*Ports, state.Port]{{V1: pa, V2: cfg.PortA}, {V1: pb, V2: cfg.PortB}} {
		if old, ok := side.V1.Get(side.V2); ok {
			n.Log.Debug("port already in use, removing old link", "node", side.V1.owner, "port", side.V2, "old", old.LinkCfg)
			n.RemoveLink(old)
		}
	}

	link := &Link{LinkCfg: cfg, up: true}
	n.links[keyOf(cfg.A, cfg.B)] = link
	pa.links[cfg.PortA] = link
	pb.links[cfg.PortB] = link
	n.Log.Debug("link up", "link", cfg)

	if r, ok := n.Routers[cfg.A]; ok {
		r.OnLinkUp(cfg.PortA, cfg.B, cfg.CostAB)
	}
	if r, ok := n.Routers[cfg.B]; ok {
		r.OnLinkUp(cfg.PortB, cfg.A, cfg.CostBA)
	}
	return nil
}

// RemoveLink takes a link down, dropping anything still in flight on it
func (n *Network) RemoveLink(link *Link) {
	if !link.up {
		return
	}
	link.up = false
	if n.links[keyOf(link.A, link.B)] == link {
		delete(n.links, keyOf(link.A, link.B))
	}
	n.Log.Debug("link down", "link", link.LinkCfg)

	for _, addr := range []state.Addr{link.A, link.B} {
		ports, err := n.portsOf(addr)
		if err != nil {
			continue
		}
		port, _ := link.Near(addr)
		if ports.links[port] != link {
			continue
		}
		delete(ports.links, port)
		if r, ok := n.Routers[addr]; ok {
			r.OnLinkDown(port)
		}
	}
}

// FindLink returns the up link between a and b
func (n *Network) FindLink(a, b state.Addr) (*Link, bool) {
	l, ok := n.links[keyOf(a, b)]
	return l, ok
}

var ErrNoSuchLink = errors.New("no such link")

func (n *Network) ApplyChange(change state.ChangeCfg) error {
	switch change.Op {
	case state.LinkUp:
		return n.AddLink(change.LinkCfg)
	case state.LinkDown:
		link, ok := n.FindLink(change.A, change.B)
		if !ok {
			n.Log.Warn("ignoring down change", "at", change.At, "a", change.A, "b", change.B, "err", ErrNoSuchLink)
			return nil
		}
		n.RemoveLink(link)
		return nil
	}
	return fmt.Errorf("change at %d: unknown op %q", change.At, change.Op)
}

func (n *Network) observe(src, dst state.Addr, route []state.Addr) {
	ttl := ttlcache.NoTTL
	if n.Realtime {
		ttl = n.ObservationTTL
	}
	n.Observations.Set(linkKey{V1: src, V2: dst}, route, ttl)
}
