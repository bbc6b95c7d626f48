package absint

import (
	"fmt"

	"github.com/cs-au-dk/absint/utils/dot"
	"github.com/cs-au-dk/absint/utils/graph"
)

// ToDot renders the dependency graph of the system. Edges are labelled with
// the operation of the equation defining their target. Variables defined by
// equations without arguments are drawn as ellipses.
func (sys *System[S]) ToDot(title string) *dot.Graph {
	dg := sys.Graph().ToDotGraph(sys.vars, &graph.VisualizationConfig[*Var[S]]{
		NodeAttrs: func(v *Var[S]) (string, dot.Attrs) {
			attrs := dot.Attrs{"label": v.name}
			if v.initialized {
				attrs["label"] = fmt.Sprintf("%s\n%v", v.name, v.value)
			}
			if eq, found := sys.defs[v]; found && len(eq.args) == 0 {
				attrs["shape"] = "ellipse"
			} else if !found {
				attrs["color"] = "red"
			}
			return v.name, attrs
		},
		EdgeAttrs: func(from, to *Var[S]) dot.Attrs {
			return dot.Attrs{"label": sys.defs[to].op.String()}
		},
	})
	dg.Title = title
	return dg
}
