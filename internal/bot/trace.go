package bot

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

const traceGraph = "search"

// Tracer records the root of the last search as a DOT graph: one node per
// root action labelled with its score, the chosen action highlighted.
type Tracer struct {
	graph *gographviz.Graph
	nodes map[string]string
}

func NewTracer() *Tracer {
	t := &Tracer{}
	t.reset()
	return t
}

func (t *Tracer) reset() {
	if t == nil {
		return
	}
	g := gographviz.NewGraph()
	mustGraph(g.SetName(traceGraph))
	mustGraph(g.SetDir(true))
	mustGraph(g.AddNode(traceGraph, "root", map[string]string{
		"label": strconv.Quote("root"),
		"shape": "box",
	}))
	t.graph = g
	t.nodes = make(map[string]string)
}

func (t *Tracer) add(m Move, score float64) {
	if t == nil {
		return
	}
	name := "n" + strconv.Itoa(len(t.nodes))
	t.nodes[m.String()] = name
	mustGraph(t.graph.AddNode(traceGraph, name, map[string]string{
		"label": strconv.Quote(fmt.Sprintf("%s\n%.2f", m, score)),
	}))
	mustGraph(t.graph.AddEdge("root", name, true, nil))
}

func (t *Tracer) choose(m Move) {
	if t == nil {
		return
	}
	name, ok := t.nodes[m.String()]
	if !ok {
		return
	}
	mustGraph(t.graph.AddNode(traceGraph, name, map[string]string{
		"color": "red",
		"style": "bold",
	}))
}

// String renders the graph in DOT syntax.
func (t *Tracer) String() string {
	if t == nil || t.graph == nil {
		return ""
	}
	return t.graph.String()
}

func mustGraph(err error) {
	if err != nil {
		panic(fmt.Sprintf("search trace: %v", err))
	}
}
