package mcp

import (
	"context"

	"github.com/awantoch/kwanixflow/api"
	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/model"
	"github.com/awantoch/kwanixflow/utils"
	mcp "github.com/metoro-io/mcp-golang"
)

// Argument types for the diagram tools.

type EmptyArgs struct{}

type SessionArgs struct {
	SessionID string `json:"session_id" jsonschema:"required,description=Diagram session id"`
}

type CreateItemArgs struct {
	SessionID string `json:"session_id" jsonschema:"required,description=Diagram session id"`
	Text      string `json:"text" jsonschema:"required,description=Item text; blank text is ignored"`
}

type InitCanvasArgs struct {
	SessionID string  `json:"session_id" jsonschema:"required,description=Diagram session id"`
	X         float64 `json:"x" jsonschema:"description=Viewport x offset"`
	Y         float64 `json:"y" jsonschema:"description=Viewport y offset"`
	Zoom      float64 `json:"zoom" jsonschema:"description=Viewport zoom; defaults to 1"`
}

type DropItemArgs struct {
	SessionID string  `json:"session_id" jsonschema:"required,description=Diagram session id"`
	ItemID    string  `json:"item_id" jsonschema:"required,description=Item to place"`
	X         float64 `json:"x" jsonschema:"description=Drop x relative to the canvas"`
	Y         float64 `json:"y" jsonschema:"description=Drop y relative to the canvas"`
}

type ConnectArgs struct {
	SessionID string `json:"session_id" jsonschema:"required,description=Diagram session id"`
	Source    string `json:"source" jsonschema:"required,description=Source node id"`
	Target    string `json:"target" jsonschema:"required,description=Target node id"`
}

type ExportArgs struct {
	SessionID string `json:"session_id" jsonschema:"required,description=Diagram session id"`
	Extension string `json:"extension" jsonschema:"description=File extension such as .py; defaults to the session selection"`
}

func textResponse(s string) *mcp.ToolResponse {
	return mcp.NewToolResponse(mcp.NewTextContent(s))
}

func jsonResponse(v any) (*mcp.ToolResponse, error) {
	out, err := utils.MarshalIndent(v)
	if err != nil {
		return nil, err
	}
	return textResponse(out), nil
}

// DiagramTools exposes svc as MCP tools.
func DiagramTools(svc api.DiagramService) []ToolRegistration {
	return []ToolRegistration{
		{
			Name:        constants.MCPToolCreateSession,
			Description: "Start a new diagram session",
			Handler: func(ctx context.Context, args EmptyArgs) (*mcp.ToolResponse, error) {
				snap, err := svc.CreateSession(ctx)
				if err != nil {
					return nil, err
				}
				return jsonResponse(snap)
			},
		},
		{
			Name:        constants.MCPToolCreateItem,
			Description: "Create a draggable item from text",
			Handler: func(ctx context.Context, args CreateItemArgs) (*mcp.ToolResponse, error) {
				item, ok, err := svc.CreateItem(ctx, args.SessionID, args.Text)
				if err != nil {
					return nil, err
				}
				return jsonResponse(map[string]any{"created": ok, "item": item})
			},
		},
		{
			Name:        constants.MCPToolInitCanvas,
			Description: "Initialize the canvas and record its viewport",
			Handler: func(ctx context.Context, args InitCanvasArgs) (*mcp.ToolResponse, error) {
				vp := model.Viewport{X: args.X, Y: args.Y, Zoom: args.Zoom}
				if err := svc.InitCanvas(ctx, args.SessionID, vp); err != nil {
					return nil, err
				}
				snap, err := svc.GetSession(ctx, args.SessionID)
				if err != nil {
					return nil, err
				}
				return jsonResponse(snap.Viewport)
			},
		},
		{
			Name:        constants.MCPToolDropItem,
			Description: "Place an item on the canvas as a node",
			Handler: func(ctx context.Context, args DropItemArgs) (*mcp.ToolResponse, error) {
				node, placed, err := svc.DropItem(ctx, args.SessionID, args.ItemID, model.DropResult{X: args.X, Y: args.Y})
				if err != nil {
					return nil, err
				}
				return jsonResponse(map[string]any{"placed": placed, "node": node})
			},
		},
		{
			Name:        constants.MCPToolConnect,
			Description: "Connect two nodes with an edge",
			Handler: func(ctx context.Context, args ConnectArgs) (*mcp.ToolResponse, error) {
				edge, created, err := svc.Connect(ctx, args.SessionID, args.Source, args.Target)
				if err != nil {
					return nil, err
				}
				return jsonResponse(map[string]any{"created": created, "edge": edge})
			},
		},
		{
			Name:        constants.MCPToolUndo,
			Description: "Remove the most recently added edge",
			Handler: func(ctx context.Context, args SessionArgs) (*mcp.ToolResponse, error) {
				edge, removed, err := svc.Undo(ctx, args.SessionID)
				if err != nil {
					return nil, err
				}
				return jsonResponse(map[string]any{"removed": removed, "edge": edge})
			},
		},
		{
			Name:        constants.MCPToolReset,
			Description: "Clear all nodes, edges and items",
			Handler: func(ctx context.Context, args SessionArgs) (*mcp.ToolResponse, error) {
				if err := svc.Reset(ctx, args.SessionID); err != nil {
					return nil, err
				}
				return textResponse("reset"), nil
			},
		},
		{
			Name:        constants.MCPToolPreview,
			Description: "Connected node labels ordered by degree",
			Handler: func(ctx context.Context, args SessionArgs) (*mcp.ToolResponse, error) {
				text, err := svc.Preview(ctx, args.SessionID)
				if err != nil {
					return nil, err
				}
				return textResponse(text), nil
			},
		},
		{
			Name:        constants.MCPToolGraph,
			Description: "Render the diagram as a Mermaid flowchart",
			Handler: func(ctx context.Context, args SessionArgs) (*mcp.ToolResponse, error) {
				text, err := svc.Graph(ctx, args.SessionID)
				if err != nil {
					return nil, err
				}
				return textResponse(text), nil
			},
		},
		{
			Name:        constants.MCPToolExport,
			Description: "Build the flow-diagram file for download",
			Handler: func(ctx context.Context, args ExportArgs) (*mcp.ToolResponse, error) {
				art, rec, err := svc.Export(ctx, args.SessionID, args.Extension)
				if err != nil {
					return nil, err
				}
				return jsonResponse(map[string]any{
					"filename": art.Filename,
					"content":  string(art.Data),
					"url":      rec.URL,
				})
			},
		},
	}
}
