package constants

// HTTP Response Messages
const (
	ResponseInvalidRequestBody = "invalid request body"
	ResponseInternalError      = "internal error"
)

// Log Messages
const (
	LogFailedEncodeJSON = "Failed to encode JSON response"
	LogFailedWriteText  = "Failed to write text response"
	LogFailedPublish    = "Failed to publish event"
	LogFailedArchive    = "Failed to archive export"
)

// Validation Messages
const (
	ValidationFailed = "validation failed: %v"
)
