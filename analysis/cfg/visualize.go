package cfg

import (
	"strconv"

	"github.com/cs-au-dk/absint/analysis/absint"
	"github.com/cs-au-dk/absint/utils/dot"
)

// ToDot draws the dependency graph of the system with the variables of
// every unit grouped in a cluster labelled by the unit.
func (r *Result[N, S]) ToDot(title string) *dot.Graph {
	dg := r.System.ToDot(title)

	nodes := make(map[string]*dot.Node, len(dg.Nodes))
	for _, n := range dg.Nodes {
		nodes[n.ID] = n
	}

	clustered := map[*dot.Node]bool{}
	for i, n := range r.order {
		cl := dot.NewCluster(strconv.Itoa(i))
		cl.Attrs["label"] = r.descs[n]

		for _, vars := range [...]map[N]*absint.Var[S]{r.Join, r.Box, r.Out, r.False} {
			v, found := vars[n]
			if !found {
				continue
			}
			if dn, found := nodes[v.Name()]; found && !clustered[dn] {
				clustered[dn] = true
				cl.Nodes = append(cl.Nodes, dn)
			}
		}

		if len(cl.Nodes) > 0 {
			dg.Clusters = append(dg.Clusters, cl)
		}
	}

	rest := dg.Nodes[:0]
	for _, n := range dg.Nodes {
		if !clustered[n] {
			rest = append(rest, n)
		}
	}
	dg.Nodes = rest
	return dg
}
