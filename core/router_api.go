package core

import (
	"errors"
	"net/http"
	"strings"

	"github.com/segmentio/encoding/json"
)

// serveAPI navigates like a page request but answers with the view as JSON,
// e.g. GET /api/subway/?line=F.
func (r *Router) serveAPI(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	path := strings.TrimPrefix(req.URL.Path, "/api")
	view, err := r.app.Navigate(req.Context(), Fragment(path, req.URL.RawQuery))
	if err != nil && !errors.Is(err, ErrStale) {
		var fetchErr *FetchError
		switch {
		case IsNotFoundError(err):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		case errors.As(err, &fetchErr):
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": fetchErr.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}

	if r.config.DebugHeaders {
		w.Header().Set("X-Vista-View", view.Name)
	}
	writeJSON(w, http.StatusOK, view)
}

func (r *Router) serveState(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, r.app.State.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Server error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
