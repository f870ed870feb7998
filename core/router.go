package core

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/encodeous/dvnode/perf"
	"github.com/encodeous/dvnode/protocol"
	"github.com/encodeous/dvnode/state"
)

// Transport is the link layer a DVRouter sits on. Send is fire-and-forget.
type Transport interface {
	Send(port state.Port, pkt *state.Packet)
	Links() []state.Port
}

// DVRouter is a distance-vector node. It never starts timers or does I/O of its own:
// the substrate calls OnPacket, OnLinkUp, OnLinkDown and OnTick, one at a time.
type DVRouter struct {
	*state.RouterState
	Transport Transport
	Logger    *slog.Logger
}

func NewRouter(self state.Addr, heartbeat time.Duration, t Transport, log *slog.Logger) *DVRouter {
	if log == nil {
		log = slog.Default()
	}
	return &DVRouter{
		RouterState: state.NewRouterState(self, heartbeat),
		Transport:   t,
		Logger:      log.With("router", self),
	}
}

func (r *DVRouter) SendAdvertisement(port state.Port, vec state.Vector) {
	perf.Broadcasts.Add(1)
	r.Transport.Send(port, &state.Packet{
		Src: r.Id,
		Body: &state.Advertisement{
			Content: protocol.EncodeVector(vec),
		},
	})
}

func (r *DVRouter) Forward(port state.Port, pkt *state.Packet) {
	perf.ForwardedPackets.Add(1)
	r.Transport.Send(port, pkt)
}

func (r *DVRouter) Links() []state.Port {
	return r.Transport.Links()
}

func (r *DVRouter) Log(event RouterEvent, desc string, args ...any) {
	if event >= UnknownNeighbour {
		r.Logger.Warn(fmt.Sprintf("%s %s", event.String(), desc), args...)
		return
	}
	r.Logger.Debug(fmt.Sprintf("%s %s", event.String(), desc), args...)
}

// packet handlers

func (r *DVRouter) OnPacket(port state.Port, pkt *state.Packet) {
	switch body := pkt.Body.(type) {
	case *state.Traceroute:
		HandleData(r.RouterState, r, pkt)
	case *state.Advertisement:
		vec, err := protocol.DecodeVector(body.Content)
		if err != nil {
			// the previously stored vector stays in place
			r.Log(MalformedVector, "dropped malformed advertisement", "from", pkt.Src, "port", port, "err", err)
			return
		}
		HandleAdvertisement(r.RouterState, r, pkt.Src, vec)
	default:
		r.Logger.Warn("dropped packet of unknown kind", "from", pkt.Src, "port", port, "kind", pkt.Kind())
	}
}

func (r *DVRouter) OnLinkUp(port state.Port, neigh state.Addr, cost uint32) {
	HandleLinkUp(r.RouterState, r, port, neigh, cost)
}

func (r *DVRouter) OnLinkDown(port state.Port) {
	HandleLinkDown(r.RouterState, r, port)
}

func (r *DVRouter) OnTick(now time.Duration) {
	HandleTick(r.RouterState, r, now)
}

func (r *DVRouter) String() string {
	active := make([]string, 0)
	for _, dest := range state.SortedAddrs(r.Routes) {
		route := r.Routes[dest]
		if route.Cost < state.INF {
			active = append(active, fmt.Sprintf("%s: %s", dest, route))
		}
	}
	return fmt.Sprintf("DVRouter(addr=%s, table={%s})", r.Id, strings.Join(active, ", "))
}

// Inspect dumps the router's neighbours, their vectors and the routing table
func (r *DVRouter) Inspect() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Router %s:\n", r.Id))

	// print neighbours
	sb.WriteString("Neighbours:\n")
	if len(r.Neighbours) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, id := range state.SortedAddrs(r.Neighbours) {
		n := r.Neighbours[id]
		sb.WriteString(fmt.Sprintf(" - %s\n", id))
		sb.WriteString(fmt.Sprintf("   Port: %s, Cost: %d\n", n.Port, n.Cost))
		sb.WriteString(fmt.Sprintf("   Advertised: %s\n", r.Vectors[id]))
	}

	// print up ports
	ports := slices.Clone(r.Links())
	slices.Sort(ports)
	sb.WriteString(fmt.Sprintf("\nLinks: %v\n", ports))

	// print route table
	sb.WriteString("\nRoute Table:\n")
	for _, dest := range state.SortedAddrs(r.Routes) {
		sb.WriteString(fmt.Sprintf(" - %s via %s\n", dest, r.Routes[dest]))
	}
	return sb.String()
}
