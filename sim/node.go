package sim

import (
	"fmt"

	"github.com/encodeous/dvnode/core"
	"github.com/encodeous/dvnode/state"
)

// RouterNode is a distance-vector router plugged into the simulated network
type RouterNode struct {
	*core.DVRouter
	Ports *Ports
}

func (n *Network) newRouterNode(id state.Addr) *RouterNode {
	ports := newPorts(id, n)
	return &RouterNode{
		DVRouter: core.NewRouter(id, n.Cfg.Units(n.Cfg.Heartbeat), ports, n.Log),
		Ports:    ports,
	}
}

// Client is an end host with a single link. It sends traceroutes to every other client
// and records the routes of the ones addressed to it.
type Client struct {
	Addr  state.Addr
	Ports *Ports
	peers []state.Addr
}

func (n *Network) newClient(id state.Addr) *Client {
	c := &Client{
		Addr:  id,
		Ports: newPorts(id, n),
	}
	for _, peer := range n.Cfg.Clients {
		if peer != id {
			c.peers = append(c.peers, peer)
		}
	}
	return c
}

// SendTraceroutes sends one traceroute to every other client
func (c *Client) SendTraceroutes() {
	ports := c.Ports.Links()
	if len(ports) == 0 {
		return
	}
	for _, dst := range c.peers {
		c.Ports.Send(ports[0], state.NewTraceroute(c.Addr, dst))
	}
}

func (c *Client) receive(n *Network, pkt *state.Packet) {
	tr, ok := pkt.Body.(*state.Traceroute)
	if !ok || pkt.Dst != c.Addr {
		return
	}
	n.observe(pkt.Src, pkt.Dst, tr.Route)
}

func (n *Network) portsOf(addr state.Addr) (*Ports, error) {
	if r, ok := n.Routers[addr]; ok {
		return r.Ports, nil
	}
	if c, ok := n.Clients[addr]; ok {
		return c.Ports, nil
	}
	return nil, fmt.Errorf("node %s not found", addr)
}

func (n *Network) deliver(to state.Addr, port state.Port, pkt *state.Packet) error {
	if r, ok := n.Routers[to]; ok {
		r.OnPacket(port, pkt)
		return nil
	}
	if c, ok := n.Clients[to]; ok {
		c.receive(n, pkt)
		return nil
	}
	return fmt.Errorf("cannot deliver packet to unknown node %s", to)
}
