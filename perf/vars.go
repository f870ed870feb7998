package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	DispatchLatency  = metric.NewHistogram("1m1s")
	Broadcasts       = metric.NewCounter("10s1s")
	ForwardedPackets = metric.NewCounter("10s1s")
	SentPackets      = metric.NewCounter("10s1s")
	DeliveredPackets = metric.NewCounter("10s1s")
	DroppedPackets   = metric.NewCounter("10s1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("dvnode:Broadcasts/s", Broadcasts)
	expvar.Publish("dvnode:ForwardedPackets/s", ForwardedPackets)
	expvar.Publish("dvnode:SentPackets/s", SentPackets)
	expvar.Publish("dvnode:DeliveredPackets/s", DeliveredPackets)
	expvar.Publish("dvnode:DroppedPackets/s", DroppedPackets)
	expvar.Publish("dvnode:DispatchLatency (µs)", DispatchLatency)
}
