package transport

import (
	"context"
	"net"
	"net/netip"
	"slices"
	"time"

	"github.com/encodeous/lsr/protocol"
)

// UDPTransport sends and receives link state datagrams on a single bound socket
type UDPTransport struct {
	conn *net.UDPConn
	// receive buffer, Receive must only be called from one goroutine
	buf []byte
}

func ListenUDP(ctx context.Context, addr netip.AddrPort) (*UDPTransport, error) {
	lc := net.ListenConfig{Control: control}
	pc, err := lc.ListenPacket(ctx, "udp", addr.String())
	if err != nil {
		return nil, err
	}
	return &UDPTransport{
		conn: pc.(*net.UDPConn),
		// one extra byte so oversized datagrams fail to decode instead of being silently truncated
		buf: make([]byte, protocol.MaxSize+1),
	}, nil
}

func (t *UDPTransport) LocalAddr() netip.AddrPort {
	addr := t.conn.LocalAddr().(*net.UDPAddr).AddrPort()
	return netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port())
}

func (t *UDPTransport) Send(ctx context.Context, data []byte, to netip.AddrPort) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := t.conn.WriteToUDPAddrPort(data, to)
	return err
}

func (t *UDPTransport) Receive(ctx context.Context) ([]byte, netip.AddrPort, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = t.conn.SetReadDeadline(time.Now())
	})
	defer stop()
	n, from, err := t.conn.ReadFromUDPAddrPort(t.buf)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, netip.AddrPort{}, ctxErr
		}
		return nil, netip.AddrPort{}, err
	}
	return slices.Clone(t.buf[:n]), netip.AddrPortFrom(from.Addr().Unmap(), from.Port()), nil
}

func (t *UDPTransport) Close() error {
	return t.conn.Close()
}
