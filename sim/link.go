package sim

import (
	"maps"
	"slices"

	"github.com/encodeous/dvnode/core"
	"github.com/encodeous/dvnode/perf"
	"github.com/encodeous/dvnode/state"
)

// Link is a bidirectional cable between two nodes. Once taken down it never comes back,
// a later up change attaches a new Link.
type Link struct {
	state.LinkCfg
	up bool
}

// Far returns the node, port and cost on the other side of the link from addr
func (l *Link) Far(from state.Addr) (state.Addr, state.Port, uint32) {
	if from == l.A {
		return l.B, l.PortB, l.CostAB
	}
	return l.A, l.PortA, l.CostBA
}

// Near returns the port and cost addr uses for this link
func (l *Link) Near(addr state.Addr) (state.Port, uint32) {
	if addr == l.A {
		return l.PortA, l.CostAB
	}
	return l.PortB, l.CostBA
}

func (l *Link) Up() bool {
	return l.up
}

// Ports is a node's port table. It is the transport a router is bound to.
type Ports struct {
	owner state.Addr
	net   *Network
	links map[state.Port]*Link
}

var _ core.Transport = (*Ports)(nil)

func newPorts(owner state.Addr, n *Network) *Ports {
	return &Ports{
		owner: owner,
		net:   n,
		links: make(map[state.Port]*Link),
	}
}

// Send transmits a copy of pkt over the link on port. Sending on a port with no link does nothing.
func (p *Ports) Send(port state.Port, pkt *state.Packet) {
	link, ok := p.links[port]
	if !ok {
		return
	}
	p.net.transmit(p.owner, link, pkt.Clone())
}

func (p *Ports) Links() []state.Port {
	return slices.Sorted(maps.Keys(p.links))
}

func (p *Ports) Get(port state.Port) (*Link, bool) {
	l, ok := p.links[port]
	return l, ok
}

func (n *Network) transmit(from state.Addr, link *Link, pkt *state.Packet) {
	to, port, cost := link.Far(from)
	perf.SentPackets.Add(1)
	n.After(n.Cfg.Units(int(cost)), func(n *Network) error {
		if !link.up {
			perf.DroppedPackets.Add(1)
			n.Log.Debug("packet lost on a link that went down", "link", link.LinkCfg, "kind", pkt.Kind())
			return nil
		}
		perf.DeliveredPackets.Add(1)
		if tr, ok := pkt.Body.(*state.Traceroute); ok {
			tr.Route = append(tr.Route, to)
		}
		if n.TransitHandler != nil {
			n.TransitHandler(to, pkt)
		}
		return n.deliver(to, port, pkt)
	})
}
