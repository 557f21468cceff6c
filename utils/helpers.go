package utils

import (
	"encoding/json"
	"net/http"

	"github.com/awantoch/kwanixflow/constants"
)

// ============================================================================
// HTTP HELPERS
// ============================================================================

// HTTPErrorResponse is the body written for every failed request.
type HTTPErrorResponse struct {
	Error string `json:"error"`
}

// WriteHTTPError writes a JSON error body with the given status code.
func WriteHTTPError(w http.ResponseWriter, message string, code int) {
	WriteHTTPJSON(w, code, HTTPErrorResponse{Error: message})
}

// WriteHTTPJSON writes v as JSON with the given status code.
func WriteHTTPJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		Error("%s: %v", constants.LogFailedEncodeJSON, err)
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + constants.ResponseInternalError + `"}`))
		return
	}
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		Error("%s: %v", constants.LogFailedEncodeJSON, err)
	}
}

// WriteHTTPText writes a plain-text body with the given content type.
func WriteHTTPText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set(constants.HeaderContentType, contentType)
	if _, err := w.Write([]byte(body)); err != nil {
		Error("%s: %v", constants.LogFailedWriteText, err)
	}
}

// ============================================================================
// JSON HELPERS
// ============================================================================

// MarshalIndent renders v as indented JSON, the format the CLI and MCP tools print.
func MarshalIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", constants.JSONIndent)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
