// Package preview turns a diagram into its connectivity-ordered text form.
package preview

import (
	"sort"
	"strings"

	"github.com/awantoch/kwanixflow/model"
)

// Separator joins labels in the preview.
const Separator = " "

// Generate returns the labels of every node touched by at least one edge,
// ordered by degree descending and joined by a single space. Nodes of equal
// degree keep their relative order from nodes. Unconnected nodes are left out;
// with no connected nodes the result is "".
func Generate(nodes []model.Node, edges []model.Edge) string {
	ordered := Order(nodes, edges)
	labels := make([]string, len(ordered))
	for i, n := range ordered {
		labels[i] = n.Label()
	}
	return strings.Join(labels, Separator)
}

// Order returns the connected nodes in preview order.
func Order(nodes []model.Node, edges []model.Edge) []model.Node {
	degrees := Degrees(edges)
	connected := make([]model.Node, 0, len(nodes))
	for _, n := range nodes {
		if degrees[n.ID] > 0 {
			connected = append(connected, n)
		}
	}
	sort.SliceStable(connected, func(i, j int) bool {
		return degrees[connected[i].ID] > degrees[connected[j].ID]
	})
	return connected
}

// Degrees counts, for every id referenced by edges, the edges it is the
// source or target of. A self-loop counts twice.
func Degrees(edges []model.Edge) map[string]int {
	degrees := make(map[string]int, len(edges)*2)
	for _, e := range edges {
		degrees[e.Source]++
		degrees[e.Target]++
	}
	return degrees
}
