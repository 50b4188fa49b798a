package protocol

import (
	"encoding/binary"
	"testing"

	"github.com/encodeous/lsr/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	msgs := []LinkState{
		{Source: 0, Destination: 1, Vector: state.CostVector{0, 1, state.Unreachable}},
		{Source: 2, Destination: 0, Vector: state.CostVector{4, 1, 0, 3, state.Unreachable}},
		{Source: 0, Destination: 0, Vector: state.CostVector{0}},
		{Source: 1, Destination: 2},
	}
	for _, m := range msgs {
		data, err := Encode(m)
		require.NoError(t, err)
		assert.Len(t, data, HeaderSize+4*len(m.Vector))
		decoded, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, m, decoded)
	}
}

func TestRoundTripMaxVector(t *testing.T) {
	vec := make(state.CostVector, MaxVectorLength)
	for i := range vec {
		vec[i] = int32(i)
	}
	data, err := Encode(LinkState{Source: 5, Destination: 6, Vector: vec})
	require.NoError(t, err)
	assert.Len(t, data, MaxSize)
	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, vec, decoded.Vector)
}

func TestEncodeLayout(t *testing.T) {
	data, err := Encode(LinkState{Source: 3, Destination: 1, Vector: state.CostVector{7, 0}})
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 0, 0, 3,
		0, 0, 0, 1,
		0, 0, 0, 2,
		0, 0, 0, 7,
		0, 0, 0, 0,
	}, data)
}

func TestEncodeTooLarge(t *testing.T) {
	_, err := Encode(LinkState{Vector: make(state.CostVector, MaxVectorLength+1)})
	assert.ErrorIs(t, err, ErrMessageTooLarge)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrMalformedMessage)

	_, err = Decode(make([]byte, HeaderSize-1))
	assert.ErrorIs(t, err, ErrMalformedMessage)

	data, err := Encode(LinkState{Source: 1, Vector: state.CostVector{1, 0, 2}})
	require.NoError(t, err)

	_, err = Decode(data[:len(data)-2])
	assert.ErrorIs(t, err, ErrMalformedMessage)

	_, err = Decode(append(data, 0, 0, 0, 9))
	assert.ErrorContains(t, err, "declared 3 entries but carries 16 bytes")

	negative := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(negative[8:], 0xffffffff)
	_, err = Decode(negative)
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestDecodeDoesNotAlias(t *testing.T) {
	data, err := Encode(LinkState{Vector: state.CostVector{1, 2}})
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	data[HeaderSize+3] = 99
	assert.Equal(t, state.CostVector{1, 2}, decoded.Vector)
}
