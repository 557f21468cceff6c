package constants

// ============================================================================
// CONFIGURATION
// ============================================================================

// Configuration Files
const (
	ConfigFileName  = "flow.config.json"
	DiagramSchemaID = "diagram.schema.json"
)

// Storage Drivers
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// Blob Drivers
const (
	BlobDriverNone       = "none"
	BlobDriverFilesystem = "filesystem"
	BlobDriverS3         = "s3"
)

// Event Drivers
const (
	EventDriverMemory = "memory"
	EventDriverNATS   = "nats"
)

// Tracing Exporters
const (
	TracingExporterNone   = "none"
	TracingExporterStdout = "stdout"
	TracingExporterOTLP   = "otlp"
)

// Environment Variables
const (
	EnvDebug      = "FLOW_DEBUG"
	EnvConfigPath = "FLOW_CONFIG"
	EnvHTTPPort   = "FLOW_HTTP_PORT"
)

// Service identity
const (
	ServiceName = "kwanixflow"
	AppTitle    = "KwaniX Flow"
)

// ============================================================================
// EVENTS
// ============================================================================

// Event topics published by the diagram service.
const (
	TopicSessionCreated = "session.created"
	TopicSessionDeleted = "session.deleted"
	TopicSessionReset   = "session.reset"
	TopicItemCreated    = "item.created"
	TopicCanvasReady    = "canvas.ready"
	TopicNodeDropped    = "node.dropped"
	TopicNodeMoved      = "node.moved"
	TopicEdgeConnected  = "edge.connected"
	TopicEdgeUndone     = "edge.undone"
	TopicExportCreated  = "export.created"
)

// AllTopics lists every topic the service publishes, in a stable order.
var AllTopics = []string{
	TopicSessionCreated,
	TopicSessionDeleted,
	TopicSessionReset,
	TopicItemCreated,
	TopicCanvasReady,
	TopicNodeDropped,
	TopicNodeMoved,
	TopicEdgeConnected,
	TopicEdgeUndone,
	TopicExportCreated,
}

// ============================================================================
// CLI COMMANDS & DESCRIPTIONS
// ============================================================================

// Command names
const (
	CmdServe      = "serve"
	CmdPreview    = "preview"
	CmdGraph      = "graph"
	CmdExport     = "export"
	CmdExtensions = "extensions"
	CmdMCP        = "mcp"
)

// Command descriptions
const (
	DescServe      = "Start the flow diagram HTTP server"
	DescPreview    = "Print the connectivity-ordered preview of a diagram file"
	DescGraph      = "Render a diagram file as a Mermaid flowchart"
	DescExport     = "Write the preview of a diagram file to flow-diagram<ext>"
	DescExtensions = "List the selectable export extensions"
	DescMCP        = "Serve diagram tools over the Model Context Protocol"
)

// ============================================================================
// MCP TOOLS
// ============================================================================

// MCP tool names
const (
	MCPToolCreateSession = "create_session"
	MCPToolCreateItem    = "create_item"
	MCPToolInitCanvas    = "init_canvas"
	MCPToolDropItem      = "drop_item"
	MCPToolConnect       = "connect"
	MCPToolUndo          = "undo"
	MCPToolReset         = "reset"
	MCPToolPreview       = "preview"
	MCPToolGraph         = "graph"
	MCPToolExport        = "export"
)

// JSON output
const (
	JSONIndent = "  "
)
