package dot

import (
	"bytes"
	"strings"
	"testing"
)

func sample() *Graph {
	a := &Node{ID: "a", Attrs: Attrs{"label": "A", "color": "red"}}
	b := &Node{ID: "b"}
	cl := NewCluster("loop")
	cl.Attrs["label"] = "loop"
	cl.Nodes = append(cl.Nodes, b)

	return &Graph{
		Title:    "sample",
		Nodes:    []*Node{a},
		Clusters: []*Cluster{cl},
		Edges:    []*Edge{{From: a, To: b, Attrs: Attrs{"label": "f"}}},
	}
}

func TestAttrsSorted(t *testing.T) {
	attrs := Attrs{"z": "1", "a": "2", "m": "3"}
	if s := attrs.String(); s != `a="2"; m="3"; z="1";` {
		t.Errorf("Unexpected attribute rendering: %s", s)
	}
}

func TestWriteDot(t *testing.T) {
	var buf bytes.Buffer
	if err := sample().WriteDot(&buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, frag := range []string{
		`digraph "sample" {`,
		`subgraph "cluster_loop" {`,
		`"a" [ color="red"; label="A"; ]`,
		`"a" -> "b" [ label="f"; ]`,
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("Expected %q in output:\n%s", frag, out)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := sample().Render("svg", &buf); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("Expected SVG output")
	}
}
