package core

import (
	"fmt"
	"slices"

	"github.com/encodeous/lsr/state"
)

// Routes is the result of one shortest path computation from Source
type Routes struct {
	Source   state.NodeId
	Distance []int32
	// Prev is the predecessor of each router on its shortest path, NoPredecessor when unreachable
	Prev []state.NodeId
	// Order lists routers in the order they were settled
	Order []state.NodeId
}

// ShortestPaths runs Dijkstra's algorithm over a square cost matrix. A cost of zero (self) or
// state.Unreachable is not an edge. Routers without a finite path keep state.Unreachable as their
// distance.
func ShortestPaths(matrix [][]int32, source state.NodeId) (*Routes, error) {
	n := len(matrix)
	for i, row := range matrix {
		if len(row) != n {
			return nil, fmt.Errorf("cost matrix is not square: row %d has %d entries, expected %d", i, len(row), n)
		}
	}
	if source < 0 || int(source) >= n {
		return nil, fmt.Errorf("source %d is outside [0, %d)", source, n)
	}

	r := &Routes{
		Source:   source,
		Distance: make([]int32, n),
		Prev:     make([]state.NodeId, n),
		Order:    make([]state.NodeId, 0, n),
	}
	visited := make([]bool, n)
	for i := range n {
		r.Distance[i] = state.Unreachable
		r.Prev[i] = state.NoPredecessor
	}
	r.Distance[source] = 0
	r.Prev[source] = source

	for range n {
		u, ok := closestUnvisited(r.Distance, visited)
		if !ok {
			break
		}
		visited[u] = true
		r.Order = append(r.Order, u)
		for v, cost := range matrix[u] {
			if visited[v] || cost == 0 || cost >= state.Unreachable {
				continue
			}
			if alt := r.Distance[u] + cost; alt < r.Distance[v] {
				r.Distance[v] = alt
				r.Prev[v] = u
			}
		}
	}
	return r, nil
}

// closestUnvisited scans in index order, so ties go to the lowest index
func closestUnvisited(distance []int32, visited []bool) (state.NodeId, bool) {
	best := -1
	minimum := state.Unreachable
	for i, d := range distance {
		if !visited[i] && d < minimum {
			minimum = d
			best = i
		}
	}
	return state.NodeId(best), best != -1
}

// Path returns the routers on the shortest path from Source to dst, both ends included. It is nil when
// dst is unreachable.
func (r *Routes) Path(dst state.NodeId) []state.NodeId {
	if dst < 0 || int(dst) >= len(r.Distance) || r.Prev[dst] == state.NoPredecessor {
		return nil
	}
	path := []state.NodeId{dst}
	for cur := dst; cur != r.Source; {
		cur = r.Prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// NextHop returns the neighbour traffic towards dst should be sent to
func (r *Routes) NextHop(dst state.NodeId) (state.NodeId, bool) {
	path := r.Path(dst)
	switch len(path) {
	case 0:
		return state.NoPredecessor, false
	case 1:
		return r.Source, true
	default:
		return path[1], true
	}
}
