package http

import (
	_ "embed"
	"net/http"

	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/export"
	"github.com/awantoch/kwanixflow/model"
	"github.com/awantoch/kwanixflow/utils"
	pongo2 "github.com/flosch/pongo2/v6"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = pongo2.Must(pongo2.FromString(indexHTML))

// GET / lists live sessions.
func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.ListSessions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	sessions := make([]model.Snapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := h.svc.GetSession(r.Context(), id)
		if err != nil {
			// deleted since List
			continue
		}
		sessions = append(sessions, snap)
	}
	out, err := indexTemplate.Execute(pongo2.Context{
		"title":             constants.AppTitle,
		"sessions":          sessions,
		"extensions":        export.Extensions,
		"default_extension": export.DefaultExtension,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteHTTPText(w, constants.ContentTypeHTML, out)
}
