package graph

import (
	"fmt"
	"strings"

	"github.com/awantoch/kwanixflow/model"
)

// Node is a placed diagram node.
type Node struct {
	ID    string
	Label string
}

// Edge connects two node ids.
type Edge struct {
	From string
	To   string
}

type Graph struct {
	Nodes []*Node
	Edges []*Edge
}

// Renderer turns a Graph into text.
type Renderer interface {
	Render(g *Graph) (string, error)
}

// MermaidRenderer emits a top-down Mermaid flowchart.
type MermaidRenderer struct{}

// NewGraph builds a Graph of every placed node and edge, in placement order.
// Unlike the preview, unconnected nodes are included.
func NewGraph(nodes []model.Node, edges []model.Edge) *Graph {
	g := &Graph{}
	for _, n := range nodes {
		g.Nodes = append(g.Nodes, &Node{ID: n.ID, Label: n.Label()})
	}
	for _, e := range edges {
		g.Edges = append(g.Edges, &Edge{From: e.Source, To: e.Target})
	}
	return g
}

// FromSnapshot builds a Graph from a session snapshot.
func FromSnapshot(snap model.Snapshot) *Graph {
	return NewGraph(snap.Nodes, snap.Edges)
}

// Render lists node declarations, then edges. An empty graph renders as "".
// Node ids are rewritten to Mermaid-safe identifiers; edge endpoints that
// name no node are declared with their raw id as the label.
func (r *MermaidRenderer) Render(g *Graph) (string, error) {
	if g == nil || len(g.Nodes) == 0 {
		return "", nil
	}
	ids := newIDMap()
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for _, node := range g.Nodes {
		fmt.Fprintf(&sb, "%s[\"%s\"]\n", ids.alias(node.ID), escapeLabel(node.Label))
	}
	for _, edge := range g.Edges {
		for _, end := range []string{edge.From, edge.To} {
			if !ids.known(end) {
				fmt.Fprintf(&sb, "%s[\"%s\"]\n", ids.alias(end), escapeLabel(end))
			}
		}
	}
	for _, edge := range g.Edges {
		fmt.Fprintf(&sb, "%s --> %s\n", ids.alias(edge.From), ids.alias(edge.To))
	}
	return sb.String(), nil
}

// Mermaid renders a snapshot as a Mermaid flowchart.
func Mermaid(snap model.Snapshot) (string, error) {
	renderer := &MermaidRenderer{}
	return renderer.Render(FromSnapshot(snap))
}

var labelEscaper = strings.NewReplacer(`"`, "#quot;", "\r\n", "<br/>", "\n", "<br/>", "\r", "<br/>")

// Mermaid labels are quoted: quotes use the entity form, line breaks become <br/>.
func escapeLabel(s string) string {
	return labelEscaper.Replace(s)
}

// idMap assigns each diagram id a distinct identifier made of
// [A-Za-z0-9_-]. Ids that are already safe keep their spelling.
type idMap struct {
	byID  map[string]string
	taken map[string]bool
}

func newIDMap() *idMap {
	return &idMap{byID: map[string]string{}, taken: map[string]bool{}}
}

func (m *idMap) known(id string) bool {
	_, ok := m.byID[id]
	return ok
}

func (m *idMap) alias(id string) string {
	if a, ok := m.byID[id]; ok {
		return a
	}
	base := sanitizeID(id)
	a := base
	for n := 2; m.taken[a]; n++ {
		a = fmt.Sprintf("%s_%d", base, n)
	}
	m.byID[id] = a
	m.taken[a] = true
	return a
}

func sanitizeID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	// "end" closes a subgraph in Mermaid.
	if strings.EqualFold(sb.String(), "end") {
		return sb.String() + "_"
	}
	return sb.String()
}
