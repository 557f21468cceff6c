package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/awantoch/kwanixflow/api"
	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/export"
	"github.com/awantoch/kwanixflow/model"
	"github.com/awantoch/kwanixflow/session"
	"github.com/awantoch/kwanixflow/utils"
	"github.com/go-chi/chi/v5"
)

type handlers struct {
	svc api.DiagramService
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, constants.ParamSessionID)
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validationError
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrItemNotFound),
		errors.Is(err, session.ErrNodeNotFound):
		utils.WriteHTTPError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, export.ErrUnsupportedExtension),
		errors.Is(err, errInvalidBody),
		errors.As(err, &verr):
		utils.WriteHTTPError(w, err.Error(), http.StatusBadRequest)
	default:
		utils.ErrorCtx(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		utils.WriteHTTPError(w, constants.ResponseInternalError, http.StatusInternalServerError)
	}
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteHTTPText(w, constants.ContentTypeJSON, constants.HealthyResponse)
}

func (h *handlers) extensions(w http.ResponseWriter, r *http.Request) {
	utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{
		"extensions": export.Extensions,
		"default":    export.DefaultExtension,
	})
}

func (h *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.CreateSession(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPJSON(w, http.StatusCreated, snap)
}

func (h *handlers) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.ListSessions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

func (h *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.GetSession(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPJSON(w, http.StatusOK, snap)
}

func (h *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSession(r.Context(), sessionID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /sessions/{id}/items {"text": "..."}
func (h *handlers) createItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	item, ok, err := h.svc.CreateItem(r.Context(), sessionID(r), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{"created": false})
		return
	}
	utils.WriteHTTPJSON(w, http.StatusCreated, map[string]any{"created": true, "item": item})
}

func (h *handlers) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{"items": items})
}

// PUT /sessions/{id}/canvas {"x": 0, "y": 0, "zoom": 1}
func (h *handlers) initCanvas(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := sessionID(r)
	if err := h.svc.InitCanvas(r.Context(), id, model.Viewport{X: req.X, Y: req.Y, Zoom: req.Zoom}); err != nil {
		writeError(w, r, err)
		return
	}
	h.getSession(w, r)
}

// POST /sessions/{id}/drops {"item_id": "item-1", "x": 10, "y": 20}
func (h *handlers) dropItem(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	node, placed, err := h.svc.DropItem(r.Context(), sessionID(r), req.ItemID, model.DropResult{X: req.X, Y: req.Y})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !placed {
		utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{"placed": false})
		return
	}
	utils.WriteHTTPJSON(w, http.StatusCreated, map[string]any{"placed": true, "node": node})
}

// PATCH /sessions/{id}/nodes/{nodeID} {"x": 1, "y": 2}
func (h *handlers) moveNode(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	nodeID := chi.URLParam(r, constants.ParamNodeID)
	node, err := h.svc.MoveNode(r.Context(), sessionID(r), nodeID, model.Position{X: *req.X, Y: *req.Y})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPJSON(w, http.StatusOK, node)
}

// POST /sessions/{id}/edges {"source": "item-1", "target": "item-2"}
func (h *handlers) connect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	edge, created, err := h.svc.Connect(r.Context(), sessionID(r), req.Source, req.Target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	utils.WriteHTTPJSON(w, code, map[string]any{"created": created, "edge": edge})
}

func (h *handlers) undo(w http.ResponseWriter, r *http.Request) {
	edge, removed, err := h.svc.Undo(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := map[string]any{"removed": removed}
	if removed {
		resp["edge"] = edge
	}
	utils.WriteHTTPJSON(w, http.StatusOK, resp)
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context(), sessionID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	h.getSession(w, r)
}

// PUT /sessions/{id}/extension {"extension": ".ts"}
func (h *handlers) setExtension(w http.ResponseWriter, r *http.Request) {
	var req extensionRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.SetExtension(r.Context(), sessionID(r), req.Extension); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{"extension": req.Extension})
}

func (h *handlers) preview(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.Preview(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPText(w, constants.ContentTypeTextUTF8, text)
}

func (h *handlers) graph(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.Graph(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPText(w, constants.ContentTypeTextVndMermaid, text)
}

// GET /sessions/{id}/export?ext=.ts downloads flow-diagram<ext>. Without ext
// the session's selected extension is used.
func (h *handlers) export(w http.ResponseWriter, r *http.Request) {
	ext := r.URL.Query().Get(constants.QueryExtension)
	art, _, err := h.svc.Export(r.Context(), sessionID(r), ext)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set(constants.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", art.Filename))
	w.Header().Set(constants.HeaderContentType, art.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(art.Data); err != nil {
		utils.ErrorCtx(r.Context(), constants.LogFailedWriteText, "error", err)
	}
}

func (h *handlers) exports(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.Exports(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPJSON(w, http.StatusOK, map[string]any{"exports": records})
}
