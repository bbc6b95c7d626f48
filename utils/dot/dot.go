// Package dot builds graphviz documents and renders them with go-graphviz.
package dot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-graphviz"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Attrs are the attributes of a node, edge or cluster.
type Attrs map[string]string

// List renders the attributes sorted by key.
func (a Attrs) List() []string {
	keys := maps.Keys(a)
	slices.Sort(keys)

	l := make([]string, 0, len(keys))
	for _, k := range keys {
		l = append(l, fmt.Sprintf("%s=%q;", k, a[k]))
	}
	return l
}

func (a Attrs) String() string {
	return strings.Join(a.List(), " ")
}

type Node struct {
	ID    string
	Attrs Attrs
}

func (n *Node) String() string { return n.ID }

type Edge struct {
	From, To *Node
	Attrs    Attrs
}

// Cluster groups nodes in a subgraph. Graphviz only draws a box around
// subgraphs whose name starts with "cluster_".
type Cluster struct {
	ID    string
	Nodes []*Node
	Attrs Attrs
}

func NewCluster(id string) *Cluster {
	return &Cluster{ID: id, Attrs: make(Attrs)}
}

func (c *Cluster) String() string { return "cluster_" + c.ID }

// Graph is a directed graph. Options holds the graph level settings
// rankdir, nodesep and minlen.
type Graph struct {
	Title    string
	Clusters []*Cluster
	Nodes    []*Node
	Edges    []*Edge
	Options  map[string]string
}

func (g *Graph) option(key, def string) string {
	if v, ok := g.Options[key]; ok && v != "" {
		return v
	}
	return def
}

// WriteDot writes the graph in the dot language.
func (g *Graph) WriteDot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	p := func(indent int, format string, args ...any) {
		bw.WriteString(strings.Repeat("\t", indent))
		fmt.Fprintf(bw, format, args...)
		bw.WriteByte('\n')
	}

	title := g.Title
	if title == "" {
		title = "G"
	}
	p(0, "digraph %q {", title)
	p(1, "label=%q;", g.Title)
	p(1, `labeljust="l";`)
	p(1, `fontname="Arial";`)
	p(1, `fontsize="14";`)
	p(1, "rankdir=%q;", g.option("rankdir", "LR"))
	p(1, "nodesep=%q;", g.option("nodesep", "0.3"))
	p(1, `node [shape="box" style="rounded" fontname="Verdana" penwidth="1.0" margin="0.05,0.0"];`)
	p(1, `edge [minlen=%q fontname="Verdana" fontsize="10"];`, g.option("minlen", "1"))

	for _, c := range g.Clusters {
		p(1, "subgraph %q {", c.String())
		for _, a := range c.Attrs.List() {
			p(2, "%s", a)
		}
		for _, n := range c.Nodes {
			p(2, "%q [ %s ]", n.ID, n.Attrs)
		}
		p(1, "}")
	}
	for _, n := range g.Nodes {
		p(1, "%q [ %s ]", n.ID, n.Attrs)
	}
	for _, e := range g.Edges {
		p(1, "%q -> %q [ %s ]", e.From.ID, e.To.ID, e.Attrs)
	}
	p(0, "}")

	return bw.Flush()
}

// Render lays out the graph with graphviz and writes the image in the given
// format (e.g. "svg" or "png") to w.
func (g *Graph) Render(format string, w io.Writer) (err error) {
	var buf bytes.Buffer
	if err := g.WriteDot(&buf); err != nil {
		return err
	}

	gv := graphviz.New()
	defer gv.Close()

	parsed, err := graphviz.ParseBytes(buf.Bytes())
	if err != nil {
		return fmt.Errorf("parsing dot graph: %w", err)
	}
	defer func() {
		if cerr := parsed.Close(); err == nil {
			err = cerr
		}
	}()

	if err := gv.Render(parsed, graphviz.Format(format), w); err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	return nil
}
