package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	SolveLatency        = metric.NewHistogram("1m1s")
	RecvPacketPerSecond = metric.NewCounter("10s1s")
	SentPacketPerSecond = metric.NewCounter("10s1s")
	SendErrorPerSecond  = metric.NewCounter("10s1s")
	MalformedPerSecond  = metric.NewCounter("10s1s")
	AdmittedVectors     = metric.NewCounter("1m1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("lsr:SolveLatency (µs)", SolveLatency)
	expvar.Publish("lsr:RecvPacket/s", RecvPacketPerSecond)
	expvar.Publish("lsr:SentPacket/s", SentPacketPerSecond)
	expvar.Publish("lsr:SendError/s", SendErrorPerSecond)
	expvar.Publish("lsr:Malformed/s", MalformedPerSecond)
	expvar.Publish("lsr:AdmittedVectors", AdmittedVectors)
}
