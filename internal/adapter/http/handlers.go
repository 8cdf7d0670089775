package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/couchcryptid/gps-points-dashboard/internal/adapter/render"
	"github.com/couchcryptid/gps-points-dashboard/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// selectionFromQuery reads region, zone and woreda. Missing values are wildcards.
func selectionFromQuery(r *http.Request) domain.Selection {
	q := r.URL.Query()
	return domain.Selection{
		Region: q.Get("region"),
		Zone:   q.Get("zone"),
		Woreda: q.Get("woreda"),
	}
}

// handlePage renders the dashboard. The "changed" parameter names the control
// the user just changed so downstream choices can be reset.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	changed := domain.ParseLevel(r.URL.Query().Get("changed"))
	view := s.dashboard.View(r.Context(), selectionFromQuery(r), changed)

	var buf bytes.Buffer
	err := s.pages.Render(&buf, render.PageData{
		Selection: view.Selection,
		Regions:   view.Regions,
		Zones:     view.Zones,
		Woredas:   view.Woredas,
		Summary:   view.Summary,
	})
	if err != nil {
		s.logger.Error("dashboard page render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, s.dashboard.Map(selectionFromQuery(r))) //nolint:errcheck // client went away
}

func (s *Server) handleChart(draw func(io.Writer, domain.Selection) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := draw(&buf, selectionFromQuery(r)); err != nil {
			s.logger.Error("chart render failed", "path", r.URL.Path, "error", err)
			sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "chart render failed"})
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(buf.Bytes()) //nolint:errcheck // client went away
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.dashboard.Options(selectionFromQuery(r)))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.dashboard.Summary(selectionFromQuery(r)))
}
