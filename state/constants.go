package state

import (
	"math"
	"time"
)

const (
	// INF is the cost advertised for an unreachable destination. No transmitted cost exceeds it.
	INF = uint32(16)
	// NoPort is the next hop of the self route and of unreachable destinations.
	NoPort = Port(-1)
	// MaxLinkCost is the largest configurable link cost, so that a link cost plus an advertised INF never overflows
	MaxLinkCost = math.MaxUint32 - INF
)

var (
	DefaultHeartbeat      = 10 // time units between periodic advertisements
	DefaultTick           = 1  // time units between clock ticks delivered to routers
	DefaultClientSendRate = 5  // time units between traceroute batches
	DefaultEndTime        = 100
	DefaultTimeUnit       = 100 * time.Millisecond

	// FinalBatchWindow is how many send intervals the final traceroute batch may take to arrive.
	FinalBatchWindow = 4
	// ObservationWindow is how many send intervals an observed route is kept without being refreshed.
	ObservationWindow = 2 * FinalBatchWindow

	// SlowDispatchThreshold is the wall-clock time after which a dispatched event is reported.
	SlowDispatchThreshold = 4 * time.Millisecond
)
