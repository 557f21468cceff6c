// Package diagram reads diagram documents from disk for the command line tools.
//
// A document lists nodes and the edges between them:
//
//	nodes:
//	  - id: fetch
//	    label: Fetch data
//	edges:
//	  - source: fetch
//	    target: parse
//
// YAML, JSON and Jsonnet are accepted.
package diagram

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/awantoch/kwanixflow/model"
	"github.com/awantoch/kwanixflow/session"
)

// Document is a diagram as written in a file.
type Document struct {
	Nodes []NodeSpec `json:"nodes" yaml:"nodes"`
	Edges []EdgeSpec `json:"edges" yaml:"edges"`
}

type NodeSpec struct {
	ID       string         `json:"id" yaml:"id"`
	Label    string         `json:"label" yaml:"label"`
	Position model.Position `json:"position" yaml:"position"`
}

type EdgeSpec struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Load reads, parses and validates a diagram file in one step.
func Load(path string) (*Document, error) {
	var doc *Document
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonnet", ".libsonnet":
		doc, err = EvaluateJsonnet(path)
	case ".json":
		doc, err = readWith(path, ParseJSON)
	default:
		doc, err = readWith(path, ParseYAML)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid diagram %s: %w", path, err)
	}
	return doc, nil
}

func readWith(path string, parse func([]byte) (*Document, error)) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(raw)
}

// ModelNodes converts the document nodes into canvas nodes.
func (d *Document) ModelNodes() []model.Node {
	nodes := make([]model.Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes = append(nodes, model.Node{
			ID:       n.ID,
			Type:     session.NodeType,
			Position: n.Position,
			Data:     model.NodeData{Label: n.Label},
		})
	}
	return nodes
}

// ModelEdges converts the document edges, naming unnamed ones the way the
// editor does.
func (d *Document) ModelEdges() []model.Edge {
	edges := make([]model.Edge, 0, len(d.Edges))
	for _, e := range d.Edges {
		id := e.ID
		if id == "" {
			id = session.EdgeID(e.Source, e.Target)
		}
		edges = append(edges, model.Edge{ID: id, Source: e.Source, Target: e.Target})
	}
	return edges
}
