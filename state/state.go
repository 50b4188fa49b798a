package state

import (
	"context"
	"log/slog"
	"sync"
)

// NodeId identifies a router, in [0, RouterCount)
type NodeId int

// CostVector holds one cost per router in the network, indexed by NodeId
type CostVector []int32

// NeighbourEntry is a directly connected peer as declared in the topology file
type NeighbourEntry struct {
	Label string
	Id    NodeId
	Cost  int32
	Port  uint16
}

type Topology struct {
	RouterCount int
	Neighbours  []NeighbourEntry
}

func (t *Topology) GetNeighbour(id NodeId) *NeighbourEntry {
	for i := range t.Neighbours {
		if t.Neighbours[i].Id == id {
			return &t.Neighbours[i]
		}
	}
	return nil
}

// Env can be read from any Goroutine
type Env struct {
	LocalCfg
	Topology
	Context context.Context
	Cancel  context.CancelCauseFunc
	Log     *slog.Logger

	tasks sync.WaitGroup
}
