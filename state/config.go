package state

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// LinkCfg describes a bidirectional link. Each side has its own port and cost.
type LinkCfg struct {
	A      Addr   `yaml:"a"`
	B      Addr   `yaml:"b"`
	PortA  Port   `yaml:"port_a"`
	PortB  Port   `yaml:"port_b"`
	CostAB uint32 `yaml:"cost_ab"` // cost seen by A when sending to B
	CostBA uint32 `yaml:"cost_ba"` // cost seen by B when sending to A
}

func (l LinkCfg) String() string {
	return fmt.Sprintf("%s:%d <-> %s:%d", l.A, l.PortA, l.B, l.PortB)
}

// Connects reports whether the link joins a and b, in either direction
func (l LinkCfg) Connects(a, b Addr) bool {
	return l.A == a && l.B == b || l.A == b && l.B == a
}

type ChangeOp string

const (
	LinkUp   ChangeOp = "up"
	LinkDown ChangeOp = "down"
)

// ChangeCfg schedules a link coming up or going down. A down change only needs a and b.
type ChangeCfg struct {
	At      int      `yaml:"at"` // time units since start
	Op      ChangeOp `yaml:"op"`
	LinkCfg `yaml:",inline"`
}

// NetworkCfg describes a simulated network. All times are in time units.
type NetworkCfg struct {
	TimeUnitMs     int         `yaml:"time_unit_ms,omitempty"`
	EndTime        int         `yaml:"end_time,omitempty"`
	Heartbeat      int         `yaml:"heartbeat,omitempty"`
	Tick           int         `yaml:"tick,omitempty"`
	ClientSendRate int         `yaml:"client_send_rate,omitempty"`
	Routers        []Addr      `yaml:"routers"`
	Clients        []Addr      `yaml:"clients"`
	Links          []LinkCfg   `yaml:"links"`
	Changes        []ChangeCfg `yaml:"changes,omitempty"`
	CorrectRoutes  [][]Addr    `yaml:"correct_routes,omitempty"`
}

// ExpandNetworkConfig fills in defaults and orders the change schedule
func ExpandNetworkConfig(cfg *NetworkCfg) {
	if cfg.TimeUnitMs == 0 {
		cfg.TimeUnitMs = int(DefaultTimeUnit / time.Millisecond)
	}
	if cfg.EndTime == 0 {
		cfg.EndTime = DefaultEndTime
	}
	if cfg.Heartbeat == 0 {
		cfg.Heartbeat = DefaultHeartbeat
	}
	if cfg.Tick == 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.ClientSendRate == 0 {
		cfg.ClientSendRate = DefaultClientSendRate
	}
	slices.SortStableFunc(cfg.Changes, func(a, b ChangeCfg) int {
		return a.At - b.At
	})
}

// Units converts a number of time units to a clock duration
func (c *NetworkCfg) Units(n int) time.Duration {
	return time.Duration(n) * time.Duration(c.TimeUnitMs) * time.Millisecond
}

func (c *NetworkCfg) IsRouter(addr Addr) bool {
	return slices.Contains(c.Routers, addr)
}

func (c *NetworkCfg) IsClient(addr Addr) bool {
	return slices.Contains(c.Clients, addr)
}

func (c *NetworkCfg) GetNodes() []Addr {
	nodes := make([]Addr, 0, len(c.Routers)+len(c.Clients))
	nodes = append(nodes, c.Routers...)
	nodes = append(nodes, c.Clients...)
	return nodes
}

// IsCorrectRoute reports whether route is one of the expected routes for its endpoints
func (c *NetworkCfg) IsCorrectRoute(route []Addr) bool {
	return slices.ContainsFunc(c.CorrectRoutes, func(r []Addr) bool {
		return slices.Equal(r, route)
	})
}

func FormatRoute(route []Addr) string {
	parts := make([]string, 0, len(route))
	for _, a := range route {
		parts = append(parts, string(a))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
