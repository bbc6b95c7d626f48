package graph

import "fmt"

// Dominators is the dominator tree of the nodes reachable from a root.
type Dominators[T any] struct {
	postorderTime Mapper[T]
	order         []T
	doms          []int
}

// Source: https://www.cs.rice.edu/~keith/EMBED/dom.pdf

func (G Graph[T]) DominatorTree(root T) Dominators[T] {
	postorderTime := G.mapFactory()
	pred := G.mapFactory()

	// Compute DFS post-order ordering
	time := 0
	order := []T{}

	var dfs func(T)
	dfs = func(node T) {
		if _, seen := postorderTime.Get(node); seen {
			return
		}

		postorderTime.Set(node, -1)

		for _, e := range G.Edges(node) {
			var preds []T
			if predsItf, found := pred.Get(e); found {
				preds = predsItf.([]T)
			}

			pred.Set(e, append(preds, node))

			dfs(e)
		}

		postorderTime.Set(node, time)
		order = append(order, node)
		time++
	}

	dfs(root)

	// Initialize doms to "Undefined"
	doms := make([]int, time)
	for i := 0; i < time; i++ {
		doms[i] = -1
	}
	doms[time-1] = time - 1

	intersect := func(a, b int) int {
		for a != b {
			if a < b {
				a = doms[a]
			} else {
				b = doms[b]
			}
		}
		return a
	}

	for {
		changed := false

		// Process nodes in reverse post-order (except for root)
		for i := time - 2; i >= 0; i-- {
			node := order[i]

			newIdom := -1
			predsItf, _ := pred.Get(node)

			for _, predecessor := range predsItf.([]T) {
				jItf, _ := postorderTime.Get(predecessor)
				j := jItf.(int)

				if doms[j] != -1 {
					if newIdom == -1 {
						newIdom = j
					} else {
						newIdom = intersect(j, newIdom)
					}
				}
			}

			if newIdom != doms[i] {
				doms[i] = newIdom
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return Dominators[T]{postorderTime, order, doms}
}

func (D Dominators[T]) intersect(a, b int) int {
	for a != b {
		if a < b {
			a = D.doms[a]
		} else {
			b = D.doms[b]
		}
	}
	return a
}

func (D Dominators[T]) time(node T) int {
	iItf, found := D.postorderTime.Get(node)
	if !found {
		panic(fmt.Errorf("%v was not reachable when computing the dominator tree", node))
	}
	return iItf.(int)
}

// Reachable reports whether node was reachable from the root.
func (D Dominators[T]) Reachable(node T) bool {
	_, found := D.postorderTime.Get(node)
	return found
}

// Dominates reports whether every path from the root to b passes through a.
// Every node dominates itself.
func (D Dominators[T]) Dominates(a, b T) bool {
	ia, ib := D.time(a), D.time(b)
	return D.intersect(ia, ib) == ia
}

// RPONumber returns the position of node in the reverse post-order.
func (D Dominators[T]) RPONumber(node T) int {
	return len(D.order) - 1 - D.time(node)
}
