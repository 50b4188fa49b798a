package state

import (
	"errors"
	"fmt"
	"net/netip"
)

var ErrInvalidTopology = errors.New("invalid topology")

func NodeIdValidator(id NodeId, routerCount int) error {
	if id < 0 || int(id) >= routerCount {
		return fmt.Errorf("%w: router id %d is outside [0, %d)", ErrInvalidTopology, id, routerCount)
	}
	return nil
}

// TopologyValidator checks the neighbour table. Costs must be positive so that every cost vector has
// exactly one zero entry, its owner's slot.
func TopologyValidator(topo *Topology) error {
	if topo.RouterCount <= 0 {
		return fmt.Errorf("%w: router count must be positive, got %d", ErrInvalidTopology, topo.RouterCount)
	}
	seen := make(map[NodeId]struct{})
	for _, neigh := range topo.Neighbours {
		err := NodeIdValidator(neigh.Id, topo.RouterCount)
		if err != nil {
			return err
		}
		if _, ok := seen[neigh.Id]; ok {
			return fmt.Errorf("%w: duplicate neighbour %d", ErrInvalidTopology, neigh.Id)
		}
		seen[neigh.Id] = struct{}{}
		if neigh.Cost <= 0 || neigh.Cost >= Unreachable {
			return fmt.Errorf("%w: cost to neighbour %d must be in [1, %d), got %d", ErrInvalidTopology, neigh.Id, Unreachable, neigh.Cost)
		}
		if neigh.Port == 0 {
			return fmt.Errorf("%w: neighbour %d has no port", ErrInvalidTopology, neigh.Id)
		}
	}
	return nil
}

func NodeConfigValidator(cfg *LocalCfg, topo *Topology) error {
	err := NodeIdValidator(cfg.Id, topo.RouterCount)
	if err != nil {
		return err
	}
	if topo.GetNeighbour(cfg.Id) != nil {
		return fmt.Errorf("%w: router %d lists itself as a neighbour", ErrInvalidTopology, cfg.Id)
	}
	if cfg.Port == 0 {
		return fmt.Errorf("port must not be 0")
	}
	if _, err := netip.ParseAddr(cfg.PeerAddr); err != nil {
		return fmt.Errorf("peer_addr is invalid: %w", err)
	}
	if cfg.NeighbourUpdate <= 0 {
		return fmt.Errorf("neighbour_update must be positive, got %s", cfg.NeighbourUpdate)
	}
	if cfg.RouteUpdate <= 0 {
		return fmt.Errorf("route_update must be positive, got %s", cfg.RouteUpdate)
	}
	return nil
}
