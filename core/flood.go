package core

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/encodeous/lsr/protocol"
	"github.com/encodeous/lsr/state"
)

var (
	ErrIncompleteView  = errors.New("network view is incomplete")
	ErrAmbiguousVector = errors.New("cannot place cost vector in matrix")
)

// Outbound is a message ready to be sent to one neighbour. Message is never modified after creation.
type Outbound struct {
	Neighbour state.NeighbourEntry
	Message   protocol.LinkState
}

// FloodState holds the cost vectors collected from the network. It is safe for concurrent use, every
// method runs under a single lock and nothing it returns aliases its internal storage.
type FloodState struct {
	mu          sync.Mutex
	own         state.CostVector
	received    []state.CostVector
	routerCount int
}

func NewFloodState(own state.CostVector, routerCount int) *FloodState {
	return &FloodState{
		own:         slices.Clone(own),
		received:    make([]state.CostVector, 0, routerCount),
		routerCount: routerCount,
	}
}

// admit stores vec unless the view is already complete or an equal vector is held.
// Vectors are compared by value, so two routers announcing identical vectors collapse to one entry.
func (f *FloodState) admit(vec state.CostVector) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.received) >= f.routerCount {
		return false
	}
	if slices.ContainsFunc(f.received, func(v state.CostVector) bool {
		return slices.Equal(v, vec)
	}) {
		return false
	}
	f.received = append(f.received, slices.Clone(vec))
	return true
}

// AdmitAndForward records the received vector and returns one message per neighbour carrying it on.
// The vector is forwarded to every neighbour whether or not it was admitted, including the one it came
// from.
func (f *FloodState) AdmitAndForward(ls protocol.LinkState, neighbours []state.NeighbourEntry) (bool, []Outbound) {
	admitted := f.admit(ls.Vector)
	return admitted, fanOut(ls.Source, ls.Vector, neighbours)
}

// fanOut addresses a copy of vec to every neighbour
func fanOut(source state.NodeId, vec state.CostVector, neighbours []state.NeighbourEntry) []Outbound {
	sends := make([]Outbound, 0, len(neighbours))
	for _, neigh := range neighbours {
		sends = append(sends, Outbound{
			Neighbour: neigh,
			Message: protocol.LinkState{
				Source:      source,
				Destination: neigh.Id,
				Vector:      slices.Clone(vec),
			},
		})
	}
	return sends
}

func (f *FloodState) SnapshotForBroadcast() state.CostVector {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.own)
}

func (f *FloodState) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.received) == f.routerCount
}

func (f *FloodState) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.received)
}

// Vectors returns a deep copy of the collected vectors in arrival order
func (f *FloodState) Vectors() []state.CostVector {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]state.CostVector, len(f.received))
	for i, v := range f.received {
		out[i] = slices.Clone(v)
	}
	return out
}

// AssembleMatrix orders the collected vectors into a cost matrix. A vector's row is the index of its
// single zero entry, the slot each router holds for itself.
func (f *FloodState) AssembleMatrix() ([][]int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.received) != f.routerCount {
		return nil, fmt.Errorf("%w: have %d of %d vectors", ErrIncompleteView, len(f.received), f.routerCount)
	}
	matrix := make([][]int32, f.routerCount)
	for _, vec := range f.received {
		row, err := ownerOf(vec, f.routerCount)
		if err != nil {
			return nil, err
		}
		if matrix[row] != nil {
			return nil, fmt.Errorf("%w: two vectors claim row %d", ErrAmbiguousVector, row)
		}
		matrix[row] = slices.Clone(vec)
	}
	return matrix, nil
}

func ownerOf(vec state.CostVector, routerCount int) (state.NodeId, error) {
	if len(vec) != routerCount {
		return 0, fmt.Errorf("%w: vector has %d entries, expected %d", ErrAmbiguousVector, len(vec), routerCount)
	}
	owner := -1
	for i, cost := range vec {
		if cost != 0 {
			continue
		}
		if owner != -1 {
			return 0, fmt.Errorf("%w: %v has more than one zero entry", ErrAmbiguousVector, vec)
		}
		owner = i
	}
	if owner == -1 {
		return 0, fmt.Errorf("%w: %v has no zero entry", ErrAmbiguousVector, vec)
	}
	return state.NodeId(owner), nil
}
