package core

import (
	"slices"
	"time"

	"github.com/encodeous/dvnode/state"
)

type RouterEvent int

// trace events

const (
	RouteChanged RouterEvent = iota
	RoutePoisoned
	NeighbourUp
	NeighbourDown
	PeriodicUpdate
	TriggeredUpdate
	Unreachable
)

// warn events

const (
	UnknownNeighbour RouterEvent = iota + 1000
	MalformedVector
)

func (e RouterEvent) String() string {
	switch e {
	case RouteChanged:
		return "RouteChanged"
	case RoutePoisoned:
		return "RoutePoisoned"
	case NeighbourUp:
		return "NeighbourUp"
	case NeighbourDown:
		return "NeighbourDown"
	case PeriodicUpdate:
		return "PeriodicUpdate"
	case TriggeredUpdate:
		return "TriggeredUpdate"
	case Unreachable:
		return "Unreachable"
	case UnknownNeighbour:
		return "UnknownNeighbour"
	case MalformedVector:
		return "MalformedVector"
	}
	return "RouterEvent(?)"
}

// Router is an interface that defines the underlying router operations
type Router interface {
	SendAdvertisement(port state.Port, vec state.Vector)
	Forward(port state.Port, pkt *state.Packet)
	// Links lists the ports whose links are currently up
	Links() []state.Port
	Log(event RouterEvent, desc string, args ...any)
}

// ComputeRoutes runs a single Bellman-Ford relaxation pass over the neighbour vectors
// and replaces the routing table if the result differs. It reports whether it did.
func ComputeRoutes(s *state.RouterState, r Router) bool {
	newTable := state.RoutingTable{
		s.Id: {Cost: 0, Nh: state.NoPort},
	}

	// direct links take priority over anything learned from a vector
	for id, neigh := range s.Neighbours {
		newTable[id] = state.RoutingEntry{Cost: neigh.Cost, Nh: neigh.Port}
	}

	for _, id := range state.SortedAddrs(s.Vectors) {
		neigh, ok := s.Neighbours[id]
		if !ok {
			continue
		}
		vec := s.Vectors[id]
		for _, dest := range state.SortedAddrs(vec) {
			if dest == s.Id {
				continue // skip self routes
			}
			// not clamped to INF here, advertisements are capped at INF when sent
			total := AddCost(neigh.Cost, vec[dest])
			cur, exists := newTable[dest]

			// A fresh cost from the current next hop is always taken, even when worse,
			// so that increases propagate instead of sticking to a stale cheaper value.
			if !exists || total < cur.Cost || cur.Nh == neigh.Port {
				newTable[dest] = state.RoutingEntry{Cost: total, Nh: neigh.Port}
			}
		}
	}

	// entries are never deleted, only driven to unreachable
	for dest := range s.Routes {
		if _, ok := newTable[dest]; !ok {
			newTable[dest] = state.RoutingEntry{Cost: state.INF, Nh: state.NoPort}
		}
	}

	if newTable.Equal(s.Routes) {
		return false
	}
	for _, dest := range state.SortedAddrs(newTable) {
		old, ok := s.Routes[dest]
		if !ok || old != newTable[dest] {
			r.Log(RouteChanged, "route changed", "dest", dest, "old", old, "new", newTable[dest])
		}
	}
	s.Routes = newTable
	return true
}

// HandleAdvertisement stores the vector advertised by a neighbour and recomputes if it changed
func HandleAdvertisement(s *state.RouterState, r Router, from state.Addr, vec state.Vector) {
	// vectors are only kept for neighbours with an up link. One that arrives before the
	// link up event is dropped, and the neighbour starts from an empty vector until it
	// advertises again.
	if _, ok := s.Neighbours[from]; !ok {
		r.Log(UnknownNeighbour, "received advertisement from unknown neighbour", "from", from)
		return
	}
	if s.Vectors[from].Equal(vec) {
		return
	}
	s.Vectors[from] = vec
	if ComputeRoutes(s, r) {
		s.PendingUpdate = true
	}
}

// HandleData forwards a traceroute packet along the routing table, dropping it when
// the destination is unknown or unreachable.
func HandleData(s *state.RouterState, r Router, pkt *state.Packet) {
	route, ok := s.Routes[pkt.Dst]
	if !ok || !route.Reachable() {
		r.Log(Unreachable, "dropped packet for unreachable destination", "src", pkt.Src, "dst", pkt.Dst)
		return
	}
	r.Forward(route.Nh, pkt)
}

func HandleLinkUp(s *state.RouterState, r Router, port state.Port, neigh state.Addr, cost uint32) {
	s.Neighbours[neigh] = state.Neighbour{Cost: cost, Port: port}
	if _, ok := s.Vectors[neigh]; !ok {
		s.Vectors[neigh] = state.Vector{}
	}
	r.Log(NeighbourUp, "link up", "neigh", neigh, "port", port, "cost", cost)
	if ComputeRoutes(s, r) {
		s.PendingUpdate = true
	}
}

func HandleLinkDown(s *state.RouterState, r Router, port state.Port) {
	if neigh, ok := s.NeighbourOnPort(port); ok {
		delete(s.Neighbours, neigh)
		delete(s.Vectors, neigh)
		r.Log(NeighbourDown, "link down", "neigh", neigh, "port", port)
	}

	// poison everything routed over the dead port right away instead of waiting for
	// the neighbours to advertise it away
	poisoned := false
	for _, dest := range state.SortedAddrs(s.Routes) {
		route := s.Routes[dest]
		if dest == s.Id || route.Nh != port {
			continue
		}
		s.Routes[dest] = state.RoutingEntry{Cost: state.INF, Nh: state.NoPort}
		r.Log(RoutePoisoned, "route poisoned", "dest", dest, "port", port)
		poisoned = true
	}

	if ComputeRoutes(s, r) || poisoned {
		s.PendingUpdate = true
	}
}

// HandleTick sends a periodic advertisement every heartbeat, and a triggered one when
// routes changed since the last tick. Both may happen on the same tick.
func HandleTick(s *state.RouterState, r Router, now time.Duration) {
	if now-s.LastBroadcast >= s.Heartbeat {
		s.LastBroadcast = now
		r.Log(PeriodicUpdate, "periodic update", "now", now)
		Broadcast(s, r)
	}
	if s.PendingUpdate {
		r.Log(TriggeredUpdate, "triggered update", "now", now)
		Broadcast(s, r)
		s.PendingUpdate = false
	}
}

// Broadcast advertises the routing table out of every up port, with split horizon
// and poison reverse: a destination routed through a port is advertised as INF on it.
func Broadcast(s *state.RouterState, r Router) {
	ports := slices.Clone(r.Links())
	slices.Sort(ports)
	for _, port := range ports {
		r.SendAdvertisement(port, AdvertisedVector(s, port))
	}
}

// AdvertisedVector is the vector sent out of port
func AdvertisedVector(s *state.RouterState, port state.Port) state.Vector {
	vec := make(state.Vector, len(s.Routes))
	for dest, route := range s.Routes {
		if route.Nh == port && dest != s.Id {
			vec[dest] = state.INF
		} else {
			vec[dest] = min(route.Cost, state.INF)
		}
	}
	return vec
}
