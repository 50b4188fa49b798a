package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/encodeous/lsr/state"
)

const (
	// HeaderSize is the fixed {source, destination, length} prefix, three big-endian int32s
	HeaderSize = 12
	// MaxSize is the largest payload a router will send or accept
	MaxSize = 1024
	// MaxVectorLength is the largest cost vector that fits in MaxSize
	MaxVectorLength = (MaxSize - HeaderSize) / 4
)

var (
	ErrMalformedMessage = errors.New("malformed link state message")
	ErrMessageTooLarge  = errors.New("link state message too large")
)

// LinkState is a snapshot of one router's cost vector on its way through the network. Destination is
// informational, flooding sends to every neighbour regardless.
type LinkState struct {
	Source      state.NodeId
	Destination state.NodeId
	Vector      state.CostVector
}

func Encode(ls LinkState) ([]byte, error) {
	if len(ls.Vector) > MaxVectorLength {
		return nil, fmt.Errorf("%w: %d entries, at most %d fit in %d bytes", ErrMessageTooLarge, len(ls.Vector), MaxVectorLength, MaxSize)
	}
	buf := make([]byte, 0, HeaderSize+4*len(ls.Vector))
	buf = binary.BigEndian.AppendUint32(buf, uint32(int32(ls.Source)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(int32(ls.Destination)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(ls.Vector)))
	for _, cost := range ls.Vector {
		buf = binary.BigEndian.AppendUint32(buf, uint32(cost))
	}
	return buf, nil
}

// Decode parses a payload produced by Encode. The returned vector never aliases data.
func Decode(data []byte) (LinkState, error) {
	if len(data) < HeaderSize {
		return LinkState{}, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrMalformedMessage, len(data), HeaderSize)
	}
	ls := LinkState{
		Source:      state.NodeId(int32(binary.BigEndian.Uint32(data[0:4]))),
		Destination: state.NodeId(int32(binary.BigEndian.Uint32(data[4:8]))),
	}
	length := int32(binary.BigEndian.Uint32(data[8:12]))
	body := data[HeaderSize:]
	if length < 0 || int(length)*4 != len(body) {
		return LinkState{}, fmt.Errorf("%w: declared %d entries but carries %d bytes", ErrMalformedMessage, length, len(body))
	}
	if length > 0 {
		ls.Vector = make(state.CostVector, length)
		for i := range ls.Vector {
			ls.Vector[i] = int32(binary.BigEndian.Uint32(body[i*4:]))
		}
	}
	return ls, nil
}
