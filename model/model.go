package model

import "time"

// Position is a 2D coordinate in canvas space.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NodeData carries the display payload of a node, in the shape the canvas
// widget expects under node.data.
type NodeData struct {
	Label string `json:"label" yaml:"label"`
}

// Node is a placed, labeled point in the diagram.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Type     string   `json:"type,omitempty" yaml:"type,omitempty"`
	Position Position `json:"position" yaml:"position"`
	Data     NodeData `json:"data" yaml:"data"`
}

// Label returns the node's display text.
func (n Node) Label() string {
	return n.Data.Label
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Item is a text snippet awaiting placement on the canvas.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// DropResult is the pointer position at the end of a drag gesture, relative
// to the canvas wrapper, in screen pixels.
type DropResult struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the canvas pan/zoom transform.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultViewport is the identity transform.
var DefaultViewport = Viewport{Zoom: 1}

// Project converts a wrapper-relative screen point into canvas coordinates.
// A non-positive zoom is treated as 1.
func (v Viewport) Project(p DropResult) Position {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return Position{
		X: (p.X - v.X) / zoom,
		Y: (p.Y - v.Y) / zoom,
	}
}

// Snapshot is a point-in-time copy of a session's state.
type Snapshot struct {
	ID          string   `json:"id"`
	Nodes       []Node   `json:"nodes"`
	Edges       []Edge   `json:"edges"`
	Items       []Item   `json:"items"`
	NextItemID  int      `json:"next_item_id"`
	CanvasReady bool     `json:"canvas_ready"`
	Viewport    Viewport `json:"viewport"`
	Extension   string   `json:"extension"`
}

// ExportRecord is one entry of the export ledger.
type ExportRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Filename  string    `json:"filename"`
	Extension string    `json:"extension"`
	Size      int       `json:"size"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
