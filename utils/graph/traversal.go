package graph

import W "github.com/cs-au-dk/absint/utils/worklist"

type traversalFunc[T any] func(node T) (stop bool)

// Performs a breadth-first search from the provided start nodes, calling the
// provided function (f) for every reachable node, stopping early if f returns
// true.
// Returns whether the search stopped early (as a result of f returning true).
func (G Graph[T]) BFSV(f traversalFunc[T], starts ...T) bool {
	// Nodes are only required to be usable with the map factory, so the
	// worklist operates on discovery indices.
	index := G.mapFactory()
	nodes := []T{}
	discover := func(node T) (int, bool) {
		if i, found := index.Get(node); found {
			return i.(int), false
		}
		index.Set(node, len(nodes))
		nodes = append(nodes, node)
		return len(nodes) - 1, true
	}

	initial := []int{}
	for _, start := range starts {
		if i, isNew := discover(start); isNew {
			initial = append(initial, i)
		}
	}

	done := false
	W.StartV(initial, func(i int, add func(int)) {
		if done || f(nodes[i]) {
			done = true
			return
		}

		for _, next := range G.Edges(nodes[i]) {
			if j, isNew := discover(next); isNew {
				add(j)
			}
		}
	})

	return done
}

// Reachable returns all nodes reachable from the start nodes, in BFS order.
func (G Graph[T]) Reachable(starts ...T) (res []T) {
	G.BFSV(func(node T) bool {
		res = append(res, node)
		return false
	}, starts...)
	return
}
