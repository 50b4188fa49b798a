package core

import (
	"context"
	"fmt"
	"io"
	"net/netip"
	"os"
	"sync"
	"time"

	"github.com/encodeous/lsr/perf"
	"github.com/encodeous/lsr/protocol"
	"github.com/encodeous/lsr/state"
	"github.com/jellydator/ttlcache/v3"
)

// Router floods its own cost vector, collects everyone else's and computes shortest paths once it has a
// vector from every router in the network.
type Router struct {
	*state.Env
	Transport Transport
	// Output receives the routing table after every computation
	Output io.Writer

	peerAddr netip.Addr
	flood    *FloodState
	sendErrs *ttlcache.Cache[state.NodeId, string]
	// sources whose vector was forwarded recently, only used with ForwardOnlyNew
	forwarded *ttlcache.Cache[state.NodeId, struct{}]

	mu     sync.RWMutex
	routes *Routes
}

func NewRouter(env *state.Env, transport Transport) (*Router, error) {
	if env.RouterCount > protocol.MaxVectorLength {
		return nil, fmt.Errorf("%w: %d routers do not fit in a %d byte message", protocol.ErrMessageTooLarge, env.RouterCount, protocol.MaxSize)
	}
	own, err := state.BuildCostVector(&env.Topology, env.Id)
	if err != nil {
		return nil, err
	}
	peerAddr, err := netip.ParseAddr(env.PeerAddr)
	if err != nil {
		return nil, fmt.Errorf("peer_addr is invalid: %w", err)
	}
	return &Router{
		Env:       env,
		Transport: transport,
		Output:    os.Stdout,
		peerAddr:  peerAddr,
		flood:     NewFloodState(own, env.RouterCount),
		sendErrs: ttlcache.New[state.NodeId, string](
			ttlcache.WithTTL[state.NodeId, string](state.SendErrorLogTTL),
			ttlcache.WithDisableTouchOnHit[state.NodeId, string](),
		),
		forwarded: ttlcache.New[state.NodeId, struct{}](
			ttlcache.WithTTL[state.NodeId, struct{}](env.NeighbourUpdate),
			ttlcache.WithDisableTouchOnHit[state.NodeId, struct{}](),
		),
	}, nil
}

// Run announces this router, starts the periodic tasks and serves the receive loop until the context is
// cancelled or the transport fails.
func (r *Router) Run() error {
	r.Log.Info("router started", "id", r.Id, "port", r.Port, "routers", r.RouterCount, "neighbours", len(r.Neighbours))

	// our own vector only comes back to us through a neighbour, routers without neighbours would
	// never complete
	own := r.flood.SnapshotForBroadcast()
	r.flood.AdmitAndForward(protocol.LinkState{Source: r.Id, Destination: r.Id, Vector: own}, nil)

	r.Broadcast()
	if err := r.ComputeRoutes(); err != nil {
		r.Log.Error("failed to compute routes", "error", err)
	}

	r.RepeatTask(func() error {
		r.Broadcast()
		return nil
	}, r.NeighbourUpdate)
	r.RepeatTask(r.ComputeRoutes, r.RouteUpdate)

	err := r.receiveLoop()
	if err != nil {
		r.Cancel(err)
	}
	r.WaitTasks()
	r.Log.Info("router stopped", "reason", context.Cause(r.Context))
	return err
}

// Broadcast sends our own cost vector to every neighbour
func (r *Router) Broadcast() int {
	vec := r.flood.SnapshotForBroadcast()
	sent := r.send(fanOut(r.Id, vec, r.Neighbours))
	r.sendErrs.DeleteExpired()
	r.forwarded.DeleteExpired()
	return sent
}

// ComputeRoutes recomputes the routing table when the network view is complete and does nothing
// otherwise.
func (r *Router) ComputeRoutes() error {
	if !r.flood.IsComplete() {
		r.Log.Debug("network view incomplete, skipping route computation", "have", r.flood.Len(), "routers", r.RouterCount)
		return nil
	}
	matrix, err := r.flood.AssembleMatrix()
	if err != nil {
		return err
	}
	start := time.Now()
	routes, err := ShortestPaths(matrix, r.Id)
	if err != nil {
		return err
	}
	perf.SolveLatency.Add(float64(time.Since(start).Microseconds()))

	r.Log.Info("computed routes", "distance", routes.Distance)
	_, err = io.WriteString(r.Output, FormatRoutes(routes))

	r.mu.Lock()
	r.routes = routes
	r.mu.Unlock()
	return err
}

// Routes returns the latest routing table, nil until the first computation succeeded
func (r *Router) Routes() *Routes {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.routes
}

// View returns a copy of the collected cost vectors
func (r *Router) View() []state.CostVector {
	return r.flood.Vectors()
}
