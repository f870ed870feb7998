package state

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Addr identifies a node (router or client) on the network
type Addr string

// Port identifies one of a node's physical ports
type Port int

func (p Port) Valid() bool {
	return p >= 0
}

func (p Port) String() string {
	if !p.Valid() {
		return "none"
	}
	return fmt.Sprintf("%d", int(p))
}

type RoutingEntry struct {
	Cost uint32
	Nh   Port // next hop port
}

func (e RoutingEntry) String() string {
	return fmt.Sprintf("(cost: %d, nh: %s)", e.Cost, e.Nh)
}

// Reachable reports whether traffic may be forwarded along this entry
func (e RoutingEntry) Reachable() bool {
	return e.Nh.Valid() && e.Cost < INF
}

type RoutingTable map[Addr]RoutingEntry

// Equal is a structural comparison: same destinations, same cost and next hop for each.
func (t RoutingTable) Equal(o RoutingTable) bool {
	return maps.Equal(t, o)
}

func (t RoutingTable) String() string {
	rt := make([]string, 0, len(t))
	for _, dest := range SortedAddrs(t) {
		rt = append(rt, fmt.Sprintf("%s via %s", dest, t[dest]))
	}
	return strings.Join(rt, "\n")
}

// Neighbour is a directly attached node reachable over an up link
type Neighbour struct {
	Cost uint32
	Port Port
}

// Vector is a distance vector: destination -> advertised cost
type Vector map[Addr]uint32

func (v Vector) Equal(o Vector) bool {
	return maps.Equal(v, o)
}

func (v Vector) Clone() Vector {
	if v == nil {
		return Vector{}
	}
	return maps.Clone(v)
}

func (v Vector) String() string {
	rt := make([]string, 0, len(v))
	for _, dest := range SortedAddrs(v) {
		rt = append(rt, fmt.Sprintf("%s: %d", dest, v[dest]))
	}
	return "{" + strings.Join(rt, ", ") + "}"
}

// SortedAddrs returns the keys of an address-keyed map in ascending order
func SortedAddrs[V any](m map[Addr]V) []Addr {
	return slices.Sorted(maps.Keys(m))
}
