//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/netip"
	"slices"
	"sync"
	"time"

	"github.com/encodeous/lsr/core"
	"github.com/encodeous/lsr/mock"
	"github.com/encodeous/lsr/state"
)

var peerAddr = netip.MustParseAddr("127.0.0.1")

const basePort = 20000

// VirtualHarness runs a whole network of routers on an in-memory datagram network
type VirtualHarness struct {
	Context    context.Context
	Cancel     context.CancelCauseFunc
	Net        *mock.Network
	Routers    []*core.Router
	Topologies []state.Topology
	// ForwardOnlyNew is applied to every router
	ForwardOnlyNew bool
	// PacketLoss is the probability a datagram is dropped
	PacketLoss float64

	wg sync.WaitGroup
}

func NewHarness(routers int) *VirtualHarness {
	vh := &VirtualHarness{
		Net:        mock.NewNetwork(),
		Topologies: make([]state.Topology, routers),
	}
	for i := range vh.Topologies {
		vh.Topologies[i].RouterCount = routers
	}
	return vh
}

func PortOf(id state.NodeId) uint16 {
	return uint16(basePort + int(id))
}

// AddLink connects a and b in both directions
func (v *VirtualHarness) AddLink(a, b state.NodeId, cost int32) {
	v.addNeighbour(a, b, cost)
	v.addNeighbour(b, a, cost)
}

func (v *VirtualHarness) addNeighbour(from, to state.NodeId, cost int32) {
	v.Topologies[from].Neighbours = append(v.Topologies[from].Neighbours, state.NeighbourEntry{
		Label: string(rune('A' + to)),
		Id:    to,
		Cost:  cost,
		Port:  PortOf(to),
	})
}

// Start launches every router, the returned channel reports errors from routers that stopped
func (v *VirtualHarness) Start() <-chan error {
	v.Context, v.Cancel = context.WithCancelCause(context.Background())
	if v.PacketLoss > 0 {
		v.Net.AddFilter(func(from, to netip.AddrPort, data []byte) bool {
			return rand.Float64() >= v.PacketLoss
		})
	}
	errs := make(chan error, len(v.Topologies))
	for i, topo := range v.Topologies {
		id := state.NodeId(i)
		ctx, cancel := context.WithCancelCause(v.Context)
		env := &state.Env{
			LocalCfg: state.LocalCfg{
				Id:              id,
				Port:            PortOf(id),
				PeerAddr:        peerAddr.String(),
				NeighbourUpdate: 10 * time.Millisecond,
				RouteUpdate:     20 * time.Millisecond,
				ForwardOnlyNew:  v.ForwardOnlyNew,
			},
			Topology: topo,
			Context:  ctx,
			Cancel:   cancel,
			Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		}
		if err := state.NodeConfigValidator(&env.LocalCfg, &env.Topology); err != nil {
			errs <- err
			continue
		}
		ep, err := v.Net.Listen(netip.AddrPortFrom(peerAddr, PortOf(id)))
		if err != nil {
			errs <- err
			continue
		}
		r, err := core.NewRouter(env, ep)
		if err != nil {
			errs <- err
			continue
		}
		r.Output = io.Discard
		v.Routers = append(v.Routers, r)
		v.wg.Add(1)
		go func() {
			defer v.wg.Done()
			defer ep.Close()
			err := r.Run()
			if err != nil {
				errs <- err
			}
		}()
	}
	return errs
}

// Distances returns the latest distance table of every router, nil for routers that have not computed one
func (v *VirtualHarness) Distances() [][]int32 {
	out := make([][]int32, len(v.Routers))
	for i, r := range v.Routers {
		if routes := r.Routes(); routes != nil {
			out[i] = slices.Clone(routes.Distance)
		}
	}
	return out
}

// Converged reports whether every router computed the expected distance table
func (v *VirtualHarness) Converged(expected [][]int32) bool {
	got := v.Distances()
	if len(got) != len(expected) {
		return false
	}
	for i := range expected {
		if !slices.Equal(got[i], expected[i]) {
			return false
		}
	}
	return true
}

func (v *VirtualHarness) Stop() {
	v.Cancel(context.Canceled)
	v.wg.Wait()
}
