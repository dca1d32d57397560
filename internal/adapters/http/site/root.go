// Package site serves the embedded page for ranking a pasted grid.
package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register attaches the embedded site to r at /.
func Register(r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Get("/", NewRootHandler().HandleRoot)
}

// RootHandler handles root path requests.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

// HandleRoot handles GET / requests and serves the index page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.files.ServeHTTP(w, r)
}
