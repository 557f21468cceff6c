// Package session holds the per-browser-session diagram state: items awaiting
// placement, placed nodes, edges, the item counter and the canvas viewport.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/awantoch/kwanixflow/export"
	"github.com/awantoch/kwanixflow/model"
	"github.com/awantoch/kwanixflow/preview"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrNodeNotFound    = errors.New("node not found")
)

// NodeType is the canvas node type assigned to dropped items.
const NodeType = "default"

const firstItemID = 1

// Session is the state behind one diagram editor. All methods are safe for
// concurrent use; mutations are applied one at a time.
type Session struct {
	id string

	mu          sync.Mutex
	nodes       []model.Node
	edges       []model.Edge
	items       []model.Item
	nextItemID  int
	canvasReady bool
	viewport    model.Viewport
	extension   string
}

// New returns an empty session. ext is the preselected export extension; an
// empty or unsupported value falls back to export.DefaultExtension.
func New(id, ext string) *Session {
	if !export.Supported(ext) {
		ext = export.DefaultExtension
	}
	return &Session{
		id:         id,
		nextItemID: firstItemID,
		viewport:   model.DefaultViewport,
		extension:  ext,
	}
}

func (s *Session) ID() string { return s.id }

// CreateItem appends an item holding the trimmed text. Blank text is ignored
// and reported with ok=false; the counter only advances on success.
func (s *Session) CreateItem(text string) (item model.Item, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item = model.Item{ID: fmt.Sprintf("item-%d", s.nextItemID), Text: text}
	s.items = append(s.items, item)
	s.nextItemID++
	return item, true
}

func (s *Session) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// NextItemID is the number the next created item will carry.
func (s *Session) NextItemID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextItemID
}

// InitCanvas marks the canvas as ready and records its viewport. Later calls
// update the viewport after a pan or zoom.
func (s *Session) InitCanvas(vp model.Viewport) {
	if vp.Zoom <= 0 {
		vp.Zoom = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvasReady = true
	s.viewport = vp
}

// Drop places the item as a node at the projected drop position. The drop is
// ignored (ok=false) while the canvas is not initialized or when the item is
// already on the canvas.
func (s *Session) Drop(itemID string, at model.DropResult) (node model.Node, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canvasReady {
		return model.Node{}, false, nil
	}
	idx := slices.IndexFunc(s.items, func(it model.Item) bool { return it.ID == itemID })
	if idx < 0 {
		return model.Node{}, false, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if s.nodeIndex(itemID) >= 0 {
		return model.Node{}, false, nil
	}
	node = model.Node{
		ID:       itemID,
		Type:     NodeType,
		Position: s.viewport.Project(at),
		Data:     model.NodeData{Label: s.items[idx].Text},
	}
	s.nodes = append(s.nodes, node)
	return node, true, nil
}

// MoveNode records a new canvas position for a node.
func (s *Session) MoveNode(id string, pos model.Position) (model.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.nodeIndex(id)
	if idx < 0 {
		return model.Node{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	s.nodes[idx].Position = pos
	return s.nodes[idx], nil
}

// Connect adds an edge from source to target. Both nodes must exist. A second
// connect of the same pair leaves the edges unchanged and returns the existing
// edge with created=false.
func (s *Session) Connect(source, target string) (edge model.Edge, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range []string{source, target} {
		if s.nodeIndex(id) < 0 {
			return model.Edge{}, false, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
	}
	for _, e := range s.edges {
		if e.Source == source && e.Target == target {
			return e, false, nil
		}
	}
	edge = model.Edge{ID: EdgeID(source, target), Source: source, Target: target}
	s.edges = append(s.edges, edge)
	return edge, true, nil
}

// EdgeID names the edge between source and target.
func EdgeID(source, target string) string {
	return "e" + source + "-" + target
}

// UndoEdge removes the most recently added edge, if any.
func (s *Session) UndoEdge() (removed model.Edge, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.edges) == 0 {
		return model.Edge{}, false
	}
	removed = s.edges[len(s.edges)-1]
	s.edges = s.edges[:len(s.edges)-1]
	return removed, true
}

// Reset drops every node, edge and item and restarts item numbering. The
// canvas stays initialized and the selected extension is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = nil
	s.edges = nil
	s.items = nil
	s.nextItemID = firstItemID
}

// SetExtension selects the export extension.
func (s *Session) SetExtension(ext string) error {
	if err := export.Validate(ext); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extension = ext
	return nil
}

func (s *Session) Extension() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extension
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Snapshot{
		ID:          s.id,
		Nodes:       slices.Clone(s.nodes),
		Edges:       slices.Clone(s.edges),
		Items:       slices.Clone(s.items),
		NextItemID:  s.nextItemID,
		CanvasReady: s.canvasReady,
		Viewport:    s.viewport,
		Extension:   s.extension,
	}
}

// Preview returns the connectivity-ordered label text of the current diagram.
func (s *Session) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return preview.Generate(s.nodes, s.edges)
}

func (s *Session) nodeIndex(id string) int {
	return slices.IndexFunc(s.nodes, func(n model.Node) bool { return n.ID == id })
}
