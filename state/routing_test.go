package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRouterStateSelfRoute(t *testing.T) {
	s := NewRouterState("1", 0)
	assert.Equal(t, RoutingTable{"1": {Cost: 0, Nh: NoPort}}, s.Routes)
	assert.Empty(t, s.Neighbours)
	assert.Empty(t, s.Vectors)
	assert.False(t, s.PendingUpdate)
}

func TestNeighbourOnPort(t *testing.T) {
	s := NewRouterState("1", 0)
	s.Neighbours["2"] = Neighbour{Cost: 3, Port: 0}
	s.Neighbours["3"] = Neighbour{Cost: 1, Port: 4}

	id, ok := s.NeighbourOnPort(4)
	assert.True(t, ok)
	assert.Equal(t, Addr("3"), id)

	_, ok = s.NeighbourOnPort(1)
	assert.False(t, ok)
}

func TestRoutingTableEqual(t *testing.T) {
	a := RoutingTable{"1": {0, NoPort}, "2": {1, 0}}
	b := RoutingTable{"2": {1, 0}, "1": {0, NoPort}}
	assert.True(t, a.Equal(b))

	b["2"] = RoutingEntry{Cost: 1, Nh: 1}
	assert.False(t, a.Equal(b))

	delete(b, "2")
	assert.False(t, a.Equal(b))
}

func TestRoutingEntryReachable(t *testing.T) {
	assert.True(t, RoutingEntry{Cost: 15, Nh: 2}.Reachable())
	assert.False(t, RoutingEntry{Cost: INF, Nh: 2}.Reachable())
	assert.False(t, RoutingEntry{Cost: 0, Nh: NoPort}.Reachable())
}

func TestVectorCloneAndEqual(t *testing.T) {
	var nilVec Vector
	assert.True(t, nilVec.Equal(Vector{}))
	assert.NotNil(t, nilVec.Clone())

	v := Vector{"2": 0, "3": 1}
	c := v.Clone()
	c["3"] = 5
	assert.Equal(t, uint32(1), v["3"])
	assert.False(t, v.Equal(c))
	assert.Equal(t, "{2: 0, 3: 1}", v.String())
}

func TestStringRoutes(t *testing.T) {
	s := NewRouterState("1", 0)
	s.Routes["3"] = RoutingEntry{Cost: 2, Nh: 0}
	s.Routes["2"] = RoutingEntry{Cost: INF, Nh: NoPort}
	assert.Equal(t, `1 via (cost: 0, nh: none)
2 via (cost: 16, nh: none)
3 via (cost: 2, nh: 0)`, s.StringRoutes())
}

func TestPacketClone(t *testing.T) {
	p := NewTraceroute("A", "B")
	c := p.Clone()
	c.Body.(*Traceroute).Route = append(c.Body.(*Traceroute).Route, "1")
	assert.Equal(t, []Addr{"A"}, p.Body.(*Traceroute).Route)
	assert.True(t, c.IsTraceroute())

	adv := &Packet{Src: "1", Body: &Advertisement{Content: []byte{1, 2}}}
	ac := adv.Clone()
	ac.Body.(*Advertisement).Content[0] = 9
	assert.Equal(t, byte(1), adv.Body.(*Advertisement).Content[0])
	assert.Equal(t, KindRouting, ac.Kind())
	assert.False(t, ac.IsTraceroute())
	assert.Equal(t, "ROUTING", ac.Kind().String())
}
