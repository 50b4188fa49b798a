package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleTopology() *Topology {
	return &Topology{
		RouterCount: 4,
		Neighbours: []NeighbourEntry{
			{Label: "B", Id: 1, Cost: 1, Port: 2001},
			{Label: "D", Id: 3, Cost: 5, Port: 2003},
		},
	}
}

func TestTopologyValidator_Valid(t *testing.T) {
	assert.NoError(t, TopologyValidator(sampleTopology()))
	assert.NoError(t, TopologyValidator(&Topology{RouterCount: 1}))
}

func TestTopologyValidator_Invalid(t *testing.T) {
	topo := sampleTopology()
	topo.RouterCount = 0
	assert.ErrorIs(t, TopologyValidator(topo), ErrInvalidTopology)

	topo = sampleTopology()
	topo.Neighbours[1].Id = 4
	assert.ErrorContains(t, TopologyValidator(topo), "router id 4 is outside [0, 4)")

	topo = sampleTopology()
	topo.Neighbours[0].Id = -1
	assert.ErrorIs(t, TopologyValidator(topo), ErrInvalidTopology)

	topo = sampleTopology()
	topo.Neighbours[1].Id = 1
	assert.ErrorContains(t, TopologyValidator(topo), "duplicate neighbour 1")

	topo = sampleTopology()
	topo.Neighbours[0].Cost = 0
	assert.ErrorIs(t, TopologyValidator(topo), ErrInvalidTopology)

	topo = sampleTopology()
	topo.Neighbours[0].Cost = Unreachable
	assert.ErrorIs(t, TopologyValidator(topo), ErrInvalidTopology)

	topo = sampleTopology()
	topo.Neighbours[0].Port = 0
	assert.ErrorContains(t, TopologyValidator(topo), "neighbour 1 has no port")
}

func TestNodeConfigValidator(t *testing.T) {
	topo := sampleTopology()
	cfg := &LocalCfg{Id: 0, Port: 2000}
	cfg.ApplyDefaults()
	assert.NoError(t, NodeConfigValidator(cfg, topo))

	bad := *cfg
	bad.Id = 7
	assert.ErrorIs(t, NodeConfigValidator(&bad, topo), ErrInvalidTopology)

	bad = *cfg
	bad.Id = 1
	assert.ErrorContains(t, NodeConfigValidator(&bad, topo), "lists itself as a neighbour")

	bad = *cfg
	bad.Port = 0
	assert.Error(t, NodeConfigValidator(&bad, topo))

	bad = *cfg
	bad.PeerAddr = "not-an-ip"
	assert.ErrorContains(t, NodeConfigValidator(&bad, topo), "peer_addr is invalid")

	bad = *cfg
	bad.RouteUpdate = -time.Second
	assert.ErrorContains(t, NodeConfigValidator(&bad, topo), "route_update must be positive")
}
