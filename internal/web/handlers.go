package web

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/avelis/repoview/internal/config"
	"github.com/avelis/repoview/internal/db"
	"github.com/avelis/repoview/internal/errors"
	"github.com/avelis/repoview/internal/mirror"
	"github.com/avelis/repoview/internal/ops"
)

// Handlers contains HTTP route handlers for the status server.
type Handlers struct {
	mirror   *mirror.Mirror
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// healthResponse is the liveness payload.
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth handles GET /healthz — a plain liveness check with no
// relation to tool logic.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleStatus handles GET / — mirror state, recent syncs, and the
// mirror's README when it has one.
func (h *Handlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	var syncs []db.SyncRecord
	if h.db != nil {
		hist, err := ops.History(h.db, ops.HistoryInput{})
		if err != nil {
			h.renderer.renderError(w, err)
			return
		}
		syncs = hist.Syncs
	}

	data := StatusPageData{
		PageData: PageData{
			Title:   "repoview",
			Version: h.renderer.version,
		},
		RemoteURL: h.mirror.Remote(),
		Branch:    h.mirror.Branch(),
		Root:      h.mirror.Root(),
		Synced:    h.mirror.Synced(),
		Syncs:     syncs,
	}

	// README is optional; anything but a clean read leaves the section out.
	if readme, err := h.mirror.ReadFile("README.md"); err == nil {
		data.ReadmeHTML = h.renderer.renderMarkdown(readme)
	} else if !errors.Is(err, errors.ErrNotFound) {
		h.renderer.renderError(w, err)
		return
	}

	h.renderer.renderPage(w, "status", data)
}
