package state

// BuildCostVector derives the local cost vector of self from its neighbour table: direct cost for
// neighbours, Unreachable for everyone else and zero for self.
func BuildCostVector(topo *Topology, self NodeId) (CostVector, error) {
	if err := NodeIdValidator(self, topo.RouterCount); err != nil {
		return nil, err
	}
	costs := make(CostVector, topo.RouterCount)
	for i := range costs {
		costs[i] = Unreachable
	}
	for _, neigh := range topo.Neighbours {
		if err := NodeIdValidator(neigh.Id, topo.RouterCount); err != nil {
			return nil, err
		}
		costs[neigh.Id] = neigh.Cost
	}
	costs[self] = 0
	return costs, nil
}
