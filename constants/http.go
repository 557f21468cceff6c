package constants

// Content Types
const (
	ContentTypeJSON           = "application/json"
	ContentTypeText           = "text/plain"
	ContentTypeTextUTF8       = "text/plain; charset=utf-8"
	ContentTypeHTML           = "text/html; charset=utf-8"
	ContentTypeTextVndMermaid = "text/vnd.mermaid"
)

// HTTP Headers
const (
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderRequestID          = "X-Request-ID"
)

// Routes
const (
	RouteHealth     = "/healthz"
	RouteMetrics    = "/metrics"
	RouteExtensions = "/extensions"
	RouteSessions   = "/sessions"
)

// URL parameters
const (
	ParamSessionID = "sessionID"
	ParamNodeID    = "nodeID"
	QueryExtension = "ext"
)

// Default Values
const (
	DefaultHTTPHost = "localhost"
	DefaultHTTPPort = 8080
	HealthyResponse = `{"status":"healthy"}`
)
