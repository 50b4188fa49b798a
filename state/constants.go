package state

import "time"

const (
	// Unreachable is the sentinel cost for "no link" / "no known path"
	Unreachable int32 = 999
	// NoPredecessor marks a router that has no predecessor on a shortest path
	NoPredecessor NodeId = -1
)

var (
	NeighbourUpdateDelay = time.Second * 1
	RouteUpdateDelay     = time.Second * 10
	SendErrorLogTTL      = time.Second * 30

	// all routers are assumed to run on the same host
	DefaultPeerAddr = "127.0.0.1"
)
