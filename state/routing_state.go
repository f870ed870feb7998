package state

import "time"

// RouterState is everything one distance-vector node knows. It is owned by a single
// node and must only be accessed from the goroutine that delivers that node's events.
type RouterState struct {
	Id        Addr
	Heartbeat time.Duration
	// Routes is the current routing table, always containing Id -> (0, NoPort)
	Routes RoutingTable
	// Neighbours has one entry per up link
	Neighbours map[Addr]Neighbour
	// Vectors holds the last vector advertised by each neighbour
	Vectors map[Addr]Vector
	// PendingUpdate is set when routes changed since the last triggered advertisement
	PendingUpdate bool
	LastBroadcast time.Duration
}

func NewRouterState(id Addr, heartbeat time.Duration) *RouterState {
	return &RouterState{
		Id:        id,
		Heartbeat: heartbeat,
		Routes: RoutingTable{
			id: {Cost: 0, Nh: NoPort},
		},
		Neighbours: make(map[Addr]Neighbour),
		Vectors:    make(map[Addr]Vector),
	}
}

// NeighbourOnPort finds the neighbour whose link uses port
func (s *RouterState) NeighbourOnPort(port Port) (Addr, bool) {
	for _, id := range SortedAddrs(s.Neighbours) {
		if s.Neighbours[id].Port == port {
			return id, true
		}
	}
	return "", false
}

func (s *RouterState) StringRoutes() string {
	return s.Routes.String()
}
