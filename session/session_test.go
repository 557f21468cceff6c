package session

import (
	"sync"
	"testing"

	"github.com/awantoch/kwanixflow/export"
	"github.com/awantoch/kwanixflow/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCanvasSession returns a session with an identity viewport and the given
// items already dropped at the origin.
func newCanvasSession(t *testing.T, texts ...string) *Session {
	t.Helper()
	s := New("test", "")
	s.InitCanvas(model.DefaultViewport)
	for _, text := range texts {
		item, ok := s.CreateItem(text)
		require.True(t, ok)
		_, ok, err := s.Drop(item.ID, model.DropResult{})
		require.NoError(t, err)
		require.True(t, ok)
	}
	return s
}

func TestCreateItem_SequentialIDs(t *testing.T) {
	s := New("test", "")
	first, ok := s.CreateItem("Start")
	require.True(t, ok)
	second, ok := s.CreateItem("  End  ")
	require.True(t, ok)

	assert.Equal(t, model.Item{ID: "item-1", Text: "Start"}, first)
	assert.Equal(t, model.Item{ID: "item-2", Text: "End"}, second)
	assert.Equal(t, 3, s.NextItemID())
	assert.Equal(t, []model.Item{first, second}, s.Items())
}

func TestCreateItem_BlankIgnored(t *testing.T) {
	s := New("test", "")
	for _, text := range []string{"", "   ", "\t\n"} {
		_, ok := s.CreateItem(text)
		assert.False(t, ok, "%q", text)
	}
	assert.Equal(t, 1, s.NextItemID())
	assert.Empty(t, s.Items())
}

func TestDrop_IgnoredBeforeCanvasInit(t *testing.T) {
	s := New("test", "")
	item, _ := s.CreateItem("A")
	_, ok, err := s.Drop(item.ID, model.DropResult{X: 10, Y: 10})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, s.Snapshot().Nodes)
}

func TestDrop_ProjectsThroughViewport(t *testing.T) {
	s := New("test", "")
	s.InitCanvas(model.Viewport{X: 50, Y: 20, Zoom: 2})
	item, _ := s.CreateItem("A")
	node, ok, err := s.Drop(item.ID, model.DropResult{X: 150, Y: 120})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.Node{
		ID:       "item-1",
		Type:     NodeType,
		Position: model.Position{X: 50, Y: 50},
		Data:     model.NodeData{Label: "A"},
	}, node)
}

func TestDrop_UnknownItem(t *testing.T) {
	s := newCanvasSession(t)
	_, ok, err := s.Drop("item-9", model.DropResult{})
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.False(t, ok)
}

func TestDrop_SameItemTwiceKeepsIDsUnique(t *testing.T) {
	s := newCanvasSession(t, "A")
	_, ok, err := s.Drop("item-1", model.DropResult{X: 5, Y: 5})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, s.Snapshot().Nodes, 1)
}

func TestInitCanvas_NonPositiveZoom(t *testing.T) {
	s := New("test", "")
	s.InitCanvas(model.Viewport{X: 1, Y: 2})
	snap := s.Snapshot()
	assert.True(t, snap.CanvasReady)
	assert.Equal(t, model.Viewport{X: 1, Y: 2, Zoom: 1}, snap.Viewport)
}

func TestMoveNode(t *testing.T) {
	s := newCanvasSession(t, "A")
	node, err := s.MoveNode("item-1", model.Position{X: 3, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, model.Position{X: 3, Y: 4}, node.Position)
	assert.Equal(t, model.Position{X: 3, Y: 4}, s.Snapshot().Nodes[0].Position)

	_, err = s.MoveNode("item-7", model.Position{})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestConnect(t *testing.T) {
	s := newCanvasSession(t, "A", "B")
	edge, created, err := s.Connect("item-1", "item-2")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.Edge{ID: "eitem-1-item-2", Source: "item-1", Target: "item-2"}, edge)

	again, created, err := s.Connect("item-1", "item-2")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, edge, again)

	_, _, err = s.Connect("item-1", "item-3")
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, _, err = s.Connect("ghost", "item-1")
	assert.ErrorIs(t, err, ErrNodeNotFound)

	assert.Len(t, s.Snapshot().Edges, 1)
}

func TestConnect_ReverseDirectionIsDistinct(t *testing.T) {
	s := newCanvasSession(t, "A", "B")
	_, _, err := s.Connect("item-1", "item-2")
	require.NoError(t, err)
	_, created, err := s.Connect("item-2", "item-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "A B", s.Preview())
}

func TestUndoEdge(t *testing.T) {
	s := newCanvasSession(t, "A", "B", "C")
	_, ok := s.UndoEdge()
	assert.False(t, ok)

	_, _, _ = s.Connect("item-1", "item-2")
	last, _, _ := s.Connect("item-2", "item-3")
	removed, ok := s.UndoEdge()
	require.True(t, ok)
	assert.Equal(t, last, removed)
	assert.Equal(t, "A B", s.Preview())
	// nodes are untouched by undo
	assert.Len(t, s.Snapshot().Nodes, 3)
}

func TestReset(t *testing.T) {
	s := newCanvasSession(t, "A", "B")
	_, _, _ = s.Connect("item-1", "item-2")
	require.NoError(t, s.SetExtension(".ts"))

	s.Reset()
	snap := s.Snapshot()
	assert.Empty(t, snap.Nodes)
	assert.Empty(t, snap.Edges)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 1, snap.NextItemID)
	assert.True(t, snap.CanvasReady)
	assert.Equal(t, ".ts", snap.Extension)

	item, ok := s.CreateItem("again")
	require.True(t, ok)
	assert.Equal(t, "item-1", item.ID)
}

func TestExtension(t *testing.T) {
	s := New("test", "")
	assert.Equal(t, export.DefaultExtension, s.Extension())
	assert.Equal(t, ".java", New("test", ".java").Extension())
	assert.Equal(t, export.DefaultExtension, New("test", ".go").Extension())

	require.NoError(t, s.SetExtension(".cpp"))
	assert.Equal(t, ".cpp", s.Extension())
	assert.ErrorIs(t, s.SetExtension(".rs"), export.ErrUnsupportedExtension)
	assert.Equal(t, ".cpp", s.Extension())
}

func TestPreview_Scenarios(t *testing.T) {
	s := newCanvasSession(t, "A", "B", "C")
	assert.Equal(t, "", s.Preview())

	_, _, _ = s.Connect("item-1", "item-2")
	assert.Equal(t, "A B", s.Preview())

	_, _, _ = s.Connect("item-1", "item-3")
	assert.Equal(t, "A B C", s.Preview())
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := newCanvasSession(t, "A", "B")
	snap := s.Snapshot()
	snap.Nodes[0].Data.Label = "changed"
	snap.Items = append(snap.Items, model.Item{ID: "x"})
	fresh := s.Snapshot()
	assert.Equal(t, "A", fresh.Nodes[0].Data.Label)
	assert.Len(t, fresh.Items, 2)
}

func TestSession_ConcurrentItems(t *testing.T) {
	s := New("test", "")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.CreateItem("x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 51, s.NextItemID())
	seen := make(map[string]bool)
	for _, it := range s.Items() {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}
