package graph

import (
	"fmt"

	"github.com/cs-au-dk/absint/utils/dot"
)

type VisualizationConfig[T any] struct {
	// Provides the ID and attributes for dot nodes.
	// If not provided, the ID is the stringified node.
	NodeAttrs func(node T) (string, dot.Attrs)
	// Provides the attributes of the edge between two nodes.
	EdgeAttrs func(from, to T) dot.Attrs
	// Graph level options (rankdir, nodesep, minlen).
	Options map[string]string
}

// ToDotGraph draws the subgraph induced by nodes. Edges to nodes outside
// the list are omitted.
func (G Graph[T]) ToDotGraph(nodes []T, cfg *VisualizationConfig[T]) *dot.Graph {
	if cfg == nil {
		cfg = &VisualizationConfig[T]{}
	}

	dg := &dot.Graph{Options: map[string]string{"rankdir": "TB"}}
	for k, v := range cfg.Options {
		dg.Options[k] = v
	}

	dotNodes := G.mapFactory()
	for _, node := range nodes {
		dn := &dot.Node{ID: fmt.Sprint(node)}
		if cfg.NodeAttrs != nil {
			dn.ID, dn.Attrs = cfg.NodeAttrs(node)
		}
		dotNodes.Set(node, dn)
		dg.Nodes = append(dg.Nodes, dn)
	}

	for _, node := range nodes {
		from, _ := dotNodes.Get(node)
		for _, succ := range G.Edges(node) {
			to, found := dotNodes.Get(succ)
			if !found {
				continue
			}

			e := &dot.Edge{From: from.(*dot.Node), To: to.(*dot.Node)}
			if cfg.EdgeAttrs != nil {
				e.Attrs = cfg.EdgeAttrs(node, succ)
			}
			dg.Edges = append(dg.Edges, e)
		}
	}

	return dg
}
