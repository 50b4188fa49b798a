package mock

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"slices"
	"sync"
	"sync/atomic"
)

// InboxSize is the number of datagrams an endpoint buffers before dropping, like a socket receive buffer
var InboxSize = 256

var ErrNoListener = errors.New("no listener")

type Packet struct {
	Data []byte
	From netip.AddrPort
}

// Network is an in-memory datagram network. Delivery is best effort, packets to a full inbox are dropped.
type Network struct {
	mu        sync.RWMutex
	endpoints map[netip.AddrPort]*Endpoint
	filter    func(from, to netip.AddrPort, data []byte) bool
}

func NewNetwork() *Network {
	return &Network{
		endpoints: make(map[netip.AddrPort]*Endpoint),
	}
}

func (n *Network) Listen(addr netip.AddrPort) (*Endpoint, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.endpoints[addr]; ok {
		return nil, fmt.Errorf("address %s already in use", addr)
	}
	ep := &Endpoint{
		network: n,
		addr:    addr,
		inbox:   make(chan Packet, InboxSize),
		closed:  make(chan struct{}),
	}
	n.endpoints[addr] = ep
	return ep, nil
}

// SetFilter installs a function deciding whether a packet is delivered, nil delivers everything
func (n *Network) SetFilter(filter func(from, to netip.AddrPort, data []byte) bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.filter = filter
}

// AddFilter combines filter with the installed one, a packet is delivered only if both accept it
func (n *Network) AddFilter(filter func(from, to netip.AddrPort, data []byte) bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	prev := n.filter
	if prev == nil {
		n.filter = filter
		return
	}
	n.filter = func(from, to netip.AddrPort, data []byte) bool {
		return prev(from, to, data) && filter(from, to, data)
	}
}

func (n *Network) deliver(from, to netip.AddrPort, data []byte) error {
	n.mu.RLock()
	dst, ok := n.endpoints[to]
	filter := n.filter
	n.mu.RUnlock()
	if !ok {
		return fmt.Errorf("send to %s: %w", to, ErrNoListener)
	}
	if filter != nil && !filter(from, to, data) {
		return nil
	}
	select {
	case dst.inbox <- Packet{Data: slices.Clone(data), From: from}:
		dst.Received.Add(1)
	case <-dst.closed:
	default:
		dst.Dropped.Add(1)
	}
	return nil
}

// Endpoint is one bound address on a Network. It satisfies core.Transport.
type Endpoint struct {
	network *Network
	addr    netip.AddrPort
	inbox   chan Packet
	closed  chan struct{}
	once    sync.Once

	Sent     atomic.Int64
	Received atomic.Int64
	Dropped  atomic.Int64
}

func (e *Endpoint) Addr() netip.AddrPort {
	return e.addr
}

func (e *Endpoint) Send(ctx context.Context, data []byte, to netip.AddrPort) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-e.closed:
		return net.ErrClosed
	default:
	}
	err := e.network.deliver(e.addr, to, data)
	if err == nil {
		e.Sent.Add(1)
	}
	return err
}

func (e *Endpoint) Receive(ctx context.Context) ([]byte, netip.AddrPort, error) {
	select {
	case pkt := <-e.inbox:
		return pkt.Data, pkt.From, nil
	case <-e.closed:
		return nil, netip.AddrPort{}, net.ErrClosed
	case <-ctx.Done():
		return nil, netip.AddrPort{}, ctx.Err()
	}
}

func (e *Endpoint) Close() error {
	e.once.Do(func() {
		close(e.closed)
		e.network.mu.Lock()
		delete(e.network.endpoints, e.addr)
		e.network.mu.Unlock()
	})
	return nil
}
