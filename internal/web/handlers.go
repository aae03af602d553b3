package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/onkofaze/internal/core"
	"github.com/JonMunkholm/onkofaze/internal/logging"
	"github.com/JonMunkholm/onkofaze/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// ============================================================================
// Pages
// ============================================================================

// handlePicker renders the department picker.
func (s *Server) handlePicker(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	snap := s.service.Snapshot()

	params := templates.PickerParams{
		Query:     query,
		Groups:    s.service.Departments(query),
		EmptyData: snap.Result.Empty(),
		Revision:  snap.Revision,
	}

	if isHTMX(r) {
		s.render(w, r, templates.PickerContent(params))
		return
	}
	s.render(w, r, templates.Picker(params))
}

// handleDepartment renders the timeline of one department.
func (s *Server) handleDepartment(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Department(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.render(w, r, templates.DepartmentPage(view))
}

// handlePhase renders phase detail. HTMX requests get the fragment only.
func (s *Server) handlePhase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := pathIndex(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	rec, entry, err := s.service.Phase(id, index)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.WithFields(r.Context(), "department", id, "phase", index).Debug("phase detail",
		"status", entry.Status,
		"has_note", entry.Note != "",
	)

	if isHTMX(r) {
		s.render(w, r, templates.PhaseDetail(rec, entry))
		return
	}
	s.render(w, r, templates.PhasePage(rec, entry))
}

// ============================================================================
// API
// ============================================================================

type healthResponse struct {
	Status   string    `json:"status"`
	Revision string    `json:"revision"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`
}

// handleHealth reports liveness and the loaded revision.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Snapshot()
	writeJSON(w, healthResponse{
		Status:   "ok",
		Revision: snap.Revision,
		Source:   snap.Source,
		LoadedAt: snap.LoadedAt,
	})
}

type scheduleResponse struct {
	Revision string        `json:"revision"`
	Source   string        `json:"source"`
	LoadedAt time.Time     `json:"loadedAt"`
	Headers  []string      `json:"headers"`
	Rows     []core.Record `json:"rows"`
	Notes    []core.Record `json:"notes"`
}

// handleSchedule returns the full parsed document.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Snapshot()
	writeJSON(w, scheduleResponse{
		Revision: snap.Revision,
		Source:   snap.Source,
		LoadedAt: snap.LoadedAt,
		Headers:  snap.Result.Headers,
		Rows:     snap.Result.Rows,
		Notes:    snap.Result.Notes,
	})
}

type departmentsResponse struct {
	Query  string               `json:"query"`
	Groups []core.CategoryGroup `json:"groups"`
}

// handleListDepartments returns the grouped department directory.
func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	writeJSON(w, departmentsResponse{
		Query:  query,
		Groups: s.service.Departments(query),
	})
}

// handleTimeline returns the timeline view of one department.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Department(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, view)
}

type noteResponse struct {
	Index  int    `json:"index"`
	Header string `json:"header"`
	Note   string `json:"note"`
}

// handleNotes returns the aggregated construction notes of one phase.
func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	note, err := s.service.Note(index)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	// The document may have been reloaded since Note returned.
	var header string
	if headers := s.service.Snapshot().Result.Headers; index < len(headers) {
		header = headers[index]
	}

	writeJSON(w, noteResponse{
		Index:  index,
		Header: header,
		Note:   note,
	})
}

type classifyResponse struct {
	Text   string          `json:"text"`
	Status core.CellStatus `json:"status"`
	Label  string          `json:"label"`
	Style  core.StyleToken `json:"style"`
}

// handleClassify runs the status classifier on ?text=.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	status := core.Classify(text)
	writeJSON(w, classifyResponse{
		Text:   text,
		Status: status,
		Label:  status.Label(),
		Style:  status.StyleToken(),
	})
}

type legendEntry struct {
	Status core.CellStatus `json:"status"`
	Label  string          `json:"label"`
	Style  core.StyleToken `json:"style"`
}

// handleLegend lists every status with its label and style token.
func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	statuses := core.AllStatuses()
	entries := make([]legendEntry, len(statuses))
	for i, st := range statuses {
		entries[i] = legendEntry{Status: st, Label: st.Label(), Style: st.StyleToken()}
	}
	writeJSON(w, entries)
}

type reloadResponse struct {
	Revision string    `json:"revision"`
	LoadedAt time.Time `json:"loadedAt"`
	Headers  int       `json:"headers"`
	Rows     int       `json:"rows"`
	Notes    int       `json:"notes"`
}

// handleReload re-reads the schedule document.
// A failed reload keeps serving the previous snapshot.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reload(r.Context()); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	snap := s.service.Snapshot()
	writeJSON(w, reloadResponse{
		Revision: snap.Revision,
		LoadedAt: snap.LoadedAt,
		Headers:  len(snap.Result.Headers),
		Rows:     len(snap.Result.Rows),
		Notes:    len(snap.Result.Notes),
	})
}

// ============================================================================
// Helpers
// ============================================================================

// pathIndex parses the {index} URL parameter.
func pathIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", errInvalidParam, raw)
	}
	return index, nil
}

// render writes an HTML component.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}
