package core

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"github.com/encodeous/lsr/perf"
	"github.com/encodeous/lsr/protocol"
	"github.com/encodeous/lsr/state"
	"github.com/jellydator/ttlcache/v3"
)

var ErrTransportFailure = errors.New("transport failure")

// Transport is the datagram socket a router sends and receives link state messages on
type Transport interface {
	Send(ctx context.Context, data []byte, to netip.AddrPort) error
	// Receive blocks until a datagram arrives, the context is done or the transport is closed
	Receive(ctx context.Context) ([]byte, netip.AddrPort, error)
	Close() error
}

// send delivers every message, a failure for one neighbour does not stop the others. It returns the number
// of messages sent.
func (r *Router) send(outs []Outbound) int {
	sent := 0
	for _, out := range outs {
		data, err := protocol.Encode(out.Message)
		if err != nil {
			r.Log.Error("failed to encode link state", "neighbour", out.Neighbour.Id, "error", err)
			continue
		}
		to := netip.AddrPortFrom(r.peerAddr, out.Neighbour.Port)
		err = r.Transport.Send(r.Context, data, to)
		if err != nil {
			r.logSendError(out.Neighbour, err)
			continue
		}
		perf.SentPacketPerSecond.Add(1)
		sent++
	}
	return sent
}

// logSendError warns once per neighbour and error until the entry expires
func (r *Router) logSendError(neigh state.NeighbourEntry, err error) {
	perf.SendErrorPerSecond.Add(1)
	msg := err.Error()
	if item := r.sendErrs.Get(neigh.Id); item != nil && item.Value() == msg {
		r.Log.Debug("failed to send link state", "neighbour", neigh.Id, "error", err)
		return
	}
	r.sendErrs.Set(neigh.Id, msg, ttlcache.DefaultTTL)
	r.Log.Warn("failed to send link state", "neighbour", neigh.Id, "port", neigh.Port, "error", err)
}

func (r *Router) receiveLoop() error {
	for {
		data, from, err := r.Transport.Receive(r.Context)
		if err != nil {
			if r.Context.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %w", ErrTransportFailure, err)
		}
		perf.RecvPacketPerSecond.Add(1)
		r.handlePacket(data, from)
	}
}

func (r *Router) handlePacket(data []byte, from netip.AddrPort) {
	ls, err := protocol.Decode(data)
	if err == nil {
		err = r.checkLinkState(ls)
	}
	if err != nil {
		perf.MalformedPerSecond.Add(1)
		r.Log.Warn("dropped malformed link state", "from", from, "error", err)
		return
	}
	admitted, outs := r.flood.AdmitAndForward(ls, r.Neighbours)
	if admitted {
		perf.AdmittedVectors.Add(1)
		r.Log.Debug("admitted link state", "source", ls.Source, "vector", ls.Vector, "from", from)
	}
	if r.ForwardOnlyNew && !r.shouldForward(ls.Source, admitted) {
		return
	}
	r.send(outs)
}

// shouldForward passes new vectors and at most one duplicate per source every NeighbourUpdate, so a
// lost forward is repaired by the owner's next broadcast.
func (r *Router) shouldForward(source state.NodeId, admitted bool) bool {
	if !admitted && r.forwarded.Get(source) != nil {
		return false
	}
	r.forwarded.Set(source, struct{}{}, ttlcache.DefaultTTL)
	return true
}

// checkLinkState rejects messages that cannot belong to this network
func (r *Router) checkLinkState(ls protocol.LinkState) error {
	if len(ls.Vector) != r.RouterCount {
		return fmt.Errorf("%w: vector has %d entries, network has %d routers", protocol.ErrMalformedMessage, len(ls.Vector), r.RouterCount)
	}
	if ls.Source < 0 || int(ls.Source) >= r.RouterCount {
		return fmt.Errorf("%w: source %d is outside [0, %d)", protocol.ErrMalformedMessage, ls.Source, r.RouterCount)
	}
	// a stored vector must map to exactly one matrix row, its source's
	zeros := 0
	for i, cost := range ls.Vector {
		if cost < 0 || cost > state.Unreachable {
			return fmt.Errorf("%w: cost %d at %d is outside [0, %d]", protocol.ErrMalformedMessage, cost, i, state.Unreachable)
		}
		if cost == 0 {
			zeros++
		}
	}
	if zeros != 1 || ls.Vector[ls.Source] != 0 {
		return fmt.Errorf("%w: %v does not have a single zero entry at source %d", protocol.ErrMalformedMessage, ls.Vector, ls.Source)
	}
	return nil
}
