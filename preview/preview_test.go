package preview

import (
	"fmt"
	"testing"

	"github.com/awantoch/kwanixflow/model"
	"github.com/stretchr/testify/assert"
)

func node(id, label string) model.Node {
	return model.Node{ID: id, Data: model.NodeData{Label: label}}
}

func edge(source, target string) model.Edge {
	return model.Edge{ID: fmt.Sprintf("e%s-%s", source, target), Source: source, Target: target}
}

func TestGenerate_Scenarios(t *testing.T) {
	abc := []model.Node{node("n1", "A"), node("n2", "B"), node("n3", "C")}
	tests := []struct {
		name  string
		nodes []model.Node
		edges []model.Edge
		want  string
	}{
		{"no edges", abc, nil, ""},
		{"single edge keeps input order", abc[:2], []model.Edge{edge("n1", "n2")}, "A B"},
		{"hub first", abc, []model.Edge{edge("n1", "n2"), edge("n1", "n3")}, "A B C"},
		{"hub last in input", abc, []model.Edge{edge("n1", "n3"), edge("n2", "n3")}, "C A B"},
		{"unconnected node skipped", abc, []model.Edge{edge("n3", "n1")}, "A C"},
		{"no nodes", nil, []model.Edge{edge("n1", "n2")}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.nodes, tt.edges))
		})
	}
}

func TestGenerate_SelfLoopCountsTwice(t *testing.T) {
	nodes := []model.Node{node("n1", "A"), node("n2", "B"), node("n3", "C")}
	edges := []model.Edge{edge("n1", "n2"), edge("n3", "n3")}
	assert.Equal(t, 2, Degrees(edges)["n3"])
	assert.Equal(t, "C A B", Generate(nodes, edges))
}

func TestGenerate_MissingNodesIgnored(t *testing.T) {
	nodes := []model.Node{node("n1", "A"), node("n2", "B")}
	edges := []model.Edge{edge("n1", "ghost"), edge("ghost", "n2"), edge("ghost", "other")}
	assert.Equal(t, "A B", Generate(nodes, edges))
}

func TestGenerate_Stability(t *testing.T) {
	// All nodes share degree 1; output must mirror input order exactly.
	var nodes []model.Node
	var edges []model.Edge
	for i := 0; i < 20; i += 2 {
		a, b := fmt.Sprintf("n%02d", i), fmt.Sprintf("n%02d", i+1)
		nodes = append(nodes, node(a, a), node(b, b))
		edges = append(edges, edge(b, a))
	}
	var want []string
	for _, n := range nodes {
		want = append(want, n.Label())
	}
	ordered := Order(nodes, edges)
	got := make([]string, len(ordered))
	for i, n := range ordered {
		got[i] = n.Label()
	}
	assert.Equal(t, want, got)
}

func TestGenerate_Deterministic(t *testing.T) {
	nodes := []model.Node{node("a", "x"), node("b", "y"), node("c", "z"), node("d", "w")}
	edges := []model.Edge{edge("a", "b"), edge("c", "b"), edge("d", "c"), edge("a", "d"), edge("b", "c")}
	first := Generate(nodes, edges)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Generate(nodes, edges))
	}
	assert.Equal(t, "y z x w", first)
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	nodes := []model.Node{node("n1", "A"), node("n2", "B"), node("n3", "C")}
	edges := []model.Edge{edge("n3", "n2"), edge("n3", "n1")}
	_ = Generate(nodes, edges)
	assert.Equal(t, "n1", nodes[0].ID)
	assert.Equal(t, "n3", nodes[2].ID)
}

func TestDegrees(t *testing.T) {
	edges := []model.Edge{edge("n1", "n2"), edge("n1", "n3"), edge("n2", "n1")}
	d := Degrees(edges)
	assert.Equal(t, 3, d["n1"])
	assert.Equal(t, 2, d["n2"])
	assert.Equal(t, 1, d["n3"])
	assert.Zero(t, d["n4"])
}
