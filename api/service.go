package api

import (
	"context"

	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/event"
	"github.com/awantoch/kwanixflow/export"
	"github.com/awantoch/kwanixflow/graph"
	"github.com/awantoch/kwanixflow/model"
	"github.com/awantoch/kwanixflow/session"
	"github.com/awantoch/kwanixflow/telemetry"
	"github.com/awantoch/kwanixflow/utils"
)

// DiagramService defines the full API surface for diagram sessions. HTTP, MCP
// and the CLI all go through it.
type DiagramService interface {
	CreateSession(ctx context.Context) (model.Snapshot, error)
	ListSessions(ctx context.Context) ([]string, error)
	GetSession(ctx context.Context, id string) (model.Snapshot, error)
	DeleteSession(ctx context.Context, id string) error

	CreateItem(ctx context.Context, id, text string) (model.Item, bool, error)
	ListItems(ctx context.Context, id string) ([]model.Item, error)
	InitCanvas(ctx context.Context, id string, vp model.Viewport) error
	DropItem(ctx context.Context, id, itemID string, at model.DropResult) (model.Node, bool, error)
	MoveNode(ctx context.Context, id, nodeID string, pos model.Position) (model.Node, error)
	Connect(ctx context.Context, id, source, target string) (model.Edge, bool, error)
	Undo(ctx context.Context, id string) (model.Edge, bool, error)
	Reset(ctx context.Context, id string) error

	SetExtension(ctx context.Context, id, ext string) error
	Preview(ctx context.Context, id string) (string, error)
	Graph(ctx context.Context, id string) (string, error)
	Export(ctx context.Context, id, ext string) (export.Artifact, *model.ExportRecord, error)
	Exports(ctx context.Context, id string) ([]*model.ExportRecord, error)
}

type diagramService struct {
	sessions *session.Manager
	exporter *export.Exporter
	bus      event.EventBus
}

// Compile-time check.
var _ DiagramService = (*diagramService)(nil)

// NewDiagramService returns the default DiagramService. exporter and bus may be nil.
func NewDiagramService(sessions *session.Manager, exporter *export.Exporter, bus event.EventBus) DiagramService {
	if exporter == nil {
		exporter = export.NewExporter(nil, nil, bus)
	}
	return &diagramService{sessions: sessions, exporter: exporter, bus: bus}
}

func (s *diagramService) CreateSession(ctx context.Context) (model.Snapshot, error) {
	sess := s.sessions.Create()
	utils.InfoCtx(ctx, "session created", "session", sess.ID())
	s.publish(ctx, constants.TopicSessionCreated, map[string]any{"session_id": sess.ID()})
	return sess.Snapshot(), nil
}

func (s *diagramService) ListSessions(ctx context.Context) ([]string, error) {
	return s.sessions.List(), nil
}

func (s *diagramService) GetSession(ctx context.Context, id string) (model.Snapshot, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return model.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// DeleteSession discards the session and its export history.
func (s *diagramService) DeleteSession(ctx context.Context, id string) error {
	if err := s.sessions.Delete(id); err != nil {
		return err
	}
	if err := s.exporter.Forget(ctx, id); err != nil {
		utils.WarnCtx(ctx, "forget exports failed", "session", id, "error", err)
	}
	utils.InfoCtx(ctx, "session deleted", "session", id)
	s.publish(ctx, constants.TopicSessionDeleted, map[string]any{"session_id": id})
	return nil
}

func (s *diagramService) CreateItem(ctx context.Context, id, text string) (model.Item, bool, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return model.Item{}, false, err
	}
	item, ok := sess.CreateItem(text)
	if !ok {
		utils.DebugCtx(ctx, "blank item ignored", "session", id)
		return model.Item{}, false, nil
	}
	s.publish(ctx, constants.TopicItemCreated, map[string]any{"session_id": id, "item_id": item.ID})
	return item, true, nil
}

func (s *diagramService) ListItems(ctx context.Context, id string) ([]model.Item, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return sess.Items(), nil
}

func (s *diagramService) InitCanvas(ctx context.Context, id string, vp model.Viewport) error {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	sess.InitCanvas(vp)
	s.publish(ctx, constants.TopicCanvasReady, map[string]any{"session_id": id, "zoom": vp.Zoom})
	return nil
}

func (s *diagramService) DropItem(ctx context.Context, id, itemID string, at model.DropResult) (model.Node, bool, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return model.Node{}, false, err
	}
	node, ok, err := sess.Drop(itemID, at)
	if err != nil || !ok {
		return node, ok, err
	}
	s.publish(ctx, constants.TopicNodeDropped, map[string]any{"session_id": id, "node_id": node.ID})
	return node, true, nil
}

func (s *diagramService) MoveNode(ctx context.Context, id, nodeID string, pos model.Position) (model.Node, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return model.Node{}, err
	}
	node, err := sess.MoveNode(nodeID, pos)
	if err != nil {
		return model.Node{}, err
	}
	s.publish(ctx, constants.TopicNodeMoved, map[string]any{"session_id": id, "node_id": nodeID})
	return node, nil
}

func (s *diagramService) Connect(ctx context.Context, id, source, target string) (model.Edge, bool, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return model.Edge{}, false, err
	}
	edge, created, err := sess.Connect(source, target)
	if err != nil || !created {
		return edge, created, err
	}
	s.publish(ctx, constants.TopicEdgeConnected, map[string]any{"session_id": id, "edge_id": edge.ID})
	return edge, true, nil
}

func (s *diagramService) Undo(ctx context.Context, id string) (model.Edge, bool, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return model.Edge{}, false, err
	}
	edge, ok := sess.UndoEdge()
	if ok {
		s.publish(ctx, constants.TopicEdgeUndone, map[string]any{"session_id": id, "edge_id": edge.ID})
	}
	return edge, ok, nil
}

func (s *diagramService) Reset(ctx context.Context, id string) error {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	sess.Reset()
	utils.InfoCtx(ctx, "session reset", "session", id)
	s.publish(ctx, constants.TopicSessionReset, map[string]any{"session_id": id})
	return nil
}

func (s *diagramService) SetExtension(ctx context.Context, id, ext string) error {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	return sess.SetExtension(ext)
}

func (s *diagramService) Preview(ctx context.Context, id string) (string, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return "", err
	}
	telemetry.RecordPreview()
	return sess.Preview(), nil
}

func (s *diagramService) Graph(ctx context.Context, id string) (string, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return "", err
	}
	return graph.Mermaid(sess.Snapshot())
}

// Export builds the download for the session's preview. An empty ext uses the
// session's selected extension.
func (s *diagramService) Export(ctx context.Context, id, ext string) (export.Artifact, *model.ExportRecord, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return export.Artifact{}, nil, err
	}
	if ext == "" {
		ext = sess.Extension()
	}
	telemetry.RecordPreview()
	art, rec, err := s.exporter.Export(ctx, id, sess.Preview(), ext)
	if err != nil {
		return export.Artifact{}, nil, err
	}
	utils.InfoCtx(ctx, "diagram exported", "session", id, "file", art.Filename, "bytes", len(art.Data))
	return art, rec, nil
}

func (s *diagramService) Exports(ctx context.Context, id string) ([]*model.ExportRecord, error) {
	if _, err := s.sessions.Get(id); err != nil {
		return nil, err
	}
	return s.exporter.History(ctx, id)
}

func (s *diagramService) publish(ctx context.Context, topic string, payload map[string]any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(topic, payload); err != nil {
		utils.WarnCtx(ctx, constants.LogFailedPublish, "topic", topic, "error", err)
	}
}
