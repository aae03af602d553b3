package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/onkofaze/internal/config"
	"github.com/JonMunkholm/onkofaze/internal/core"
)

func testConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	if err != nil {
		t.Fatalf("config.LoadFrom() error = %v", err)
	}
	return cfg
}

func newTestServer(t *testing.T, src core.Source, env map[string]string) (*Server, *core.Service) {
	t.Helper()
	svc := core.NewService(src)
	if err := svc.Reload(t.Context()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	srv := NewServer(svc, testConfig(t, env))
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv, svc
}

func do(t *testing.T, srv *Server, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Content-Type = %q, want JSON", ct)
	}
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestPages(t *testing.T) {
	srv, _ := newTestServer(t, core.DefaultSource(), nil)

	tests := []struct {
		name       string
		target     string
		headers    map[string]string
		wantStatus int
		contains   []string
		excludes   []string
	}{
		{
			name:       "picker",
			target:     "/",
			wantStatus: http.StatusOK,
			contains:   []string{"<!doctype html>", "Ambulance", "Radiologie", `href="/department/row-4"`},
		},
		{
			name:       "picker search ignores diacritics",
			target:     "/?q=ozarovny",
			wantStatus: http.StatusOK,
			contains:   []string{"Ozařovny"},
			excludes:   []string{"Hematologie"},
		},
		{
			name:       "picker search without match",
			target:     "/?q=kardiologie",
			wantStatus: http.StatusOK,
			contains:   []string{"Hledání neodpovídá žádné oddělení"},
		},
		{
			name:       "department timeline",
			target:     "/department/row-2",
			wantStatus: http.StatusOK,
			contains:   []string{"Ozařovny", "Fáze 4", "status-construction", "Upozornění stavby"},
		},
		{
			name:       "unknown department",
			target:     "/department/row-99",
			wantStatus: http.StatusNotFound,
			contains:   []string{"SCH001", "<!doctype html>"},
		},
		{
			name:       "phase page",
			target:     "/department/row-2/phase/3",
			wantStatus: http.StatusOK,
			contains:   []string{"<!doctype html>", "LINAC 3", "Dokončení stavebních úprav ve Fázi 2"},
		},
		{
			name:       "phase fragment for htmx",
			target:     "/department/row-1/phase/2",
			headers:    map[string]string{"HX-Request": "true"},
			wantStatus: http.StatusOK,
			contains:   []string{"Přestěhování do dočasných prostor", "status-moving", "Stavba jeřábové dráhy"},
			excludes:   []string{"<!doctype html>"},
		},
		{
			name:       "department with empty phases",
			target:     "/department/row-4",
			wantStatus: http.StatusOK,
			contains:   []string{"Denní stacionář", `href="/department/row-4/phase/0"`, "phase-empty"},
			excludes:   []string{`href="/department/row-4/phase/3"`, `href="/department/row-4/phase/4"`},
		},
		{
			name:       "empty phase has no detail",
			target:     "/department/row-4/phase/3",
			wantStatus: http.StatusNotFound,
			contains:   []string{"SCH002"},
		},
		{
			name:       "phase out of range",
			target:     "/department/row-2/phase/9",
			wantStatus: http.StatusNotFound,
			contains:   []string{"SCH002"},
		},
		{
			name:       "phase index not a number",
			target:     "/department/row-2/phase/abc",
			headers:    map[string]string{"HX-Request": "true"},
			wantStatus: http.StatusBadRequest,
			contains:   []string{"REQ001", `role="alert"`},
			excludes:   []string{"<!doctype html>"},
		},
		{
			name:       "stylesheet",
			target:     "/static/style.css",
			wantStatus: http.StatusOK,
			contains:   []string{".badge.status-construction"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.target, tt.headers)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := rec.Body.String()
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(body, unwanted) {
					t.Errorf("body unexpectedly contains %q", unwanted)
				}
			}
		})
	}
}

func TestPicker_EmptyDocument(t *testing.T) {
	srv, _ := newTestServer(t, core.StaticSource{Label: "empty", Text: ",,Fáze 0\n,,Jen poznámka\n"}, nil)

	rec := do(t, srv, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Žádná data") {
		t.Error("empty document should render the empty state")
	}
}

func TestAPI_Schedule(t *testing.T) {
	srv, svc := newTestServer(t, core.DefaultSource(), nil)

	var got scheduleResponse
	decodeJSON(t, do(t, srv, http.MethodGet, "/api/schedule", nil), &got)

	if got.Revision != svc.Snapshot().Revision {
		t.Errorf("revision = %q, want %q", got.Revision, svc.Snapshot().Revision)
	}
	if len(got.Headers) != 5 || len(got.Rows) != 8 || len(got.Notes) != 2 {
		t.Errorf("headers=%d rows=%d notes=%d, want 5/8/2", len(got.Headers), len(got.Rows), len(got.Notes))
	}
	if got.Rows[1].ID != "row-2" || got.Rows[1].Phases[3] != `Instalace technologie "LINAC 3"` {
		t.Errorf("row[1] = %+v", got.Rows[1])
	}
}

func TestAPI_Departments(t *testing.T) {
	srv, _ := newTestServer(t, core.DefaultSource(), nil)

	var got departmentsResponse
	decodeJSON(t, do(t, srv, http.MethodGet, "/api/departments?q=LABORATORE", nil), &got)

	if len(got.Groups) != 1 || got.Groups[0].Category != "Laboratoře" || len(got.Groups[0].Rows) != 2 {
		t.Errorf("groups = %+v", got.Groups)
	}
}

func TestAPI_Timeline(t *testing.T) {
	srv, _ := newTestServer(t, core.DefaultSource(), nil)

	var view core.DepartmentView
	decodeJSON(t, do(t, srv, http.MethodGet, "/api/departments/row-3/timeline", nil), &view)

	if len(view.Timeline) != 5 {
		t.Fatalf("timeline length = %d, want 5", len(view.Timeline))
	}
	wantStatuses := []core.CellStatus{
		core.StatusOK,
		core.StatusOK,
		core.StatusRestriction,
		core.StatusMoving,
		core.StatusConstruction,
	}
	for i, want := range wantStatuses {
		if view.Timeline[i].Status != want {
			t.Errorf("phase %d status = %s, want %s", i, view.Timeline[i].Status, want)
		}
	}

	rec := do(t, srv, http.MethodGet, "/api/departments/row-99/timeline", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var errResp ErrorResponse
	decodeJSON(t, rec, &errResp)
	if errResp.Code != "SCH001" {
		t.Errorf("code = %q, want SCH001", errResp.Code)
	}
}

func TestAPI_Notes(t *testing.T) {
	srv, _ := newTestServer(t, core.DefaultSource(), nil)

	var got noteResponse
	decodeJSON(t, do(t, srv, http.MethodGet, "/api/notes/2", nil), &got)
	if got.Header != "Fáze 2" || got.Note != "Stavba jeřábové dráhy" {
		t.Errorf("notes = %+v", got)
	}

	var empty noteResponse
	decodeJSON(t, do(t, srv, http.MethodGet, "/api/notes/4", nil), &empty)
	if empty.Note != "" {
		t.Errorf("note for phase 4 = %q, want empty", empty.Note)
	}

	for target, want := range map[string]int{
		"/api/notes/5": http.StatusNotFound,
		"/api/notes/x": http.StatusBadRequest,
	} {
		if rec := do(t, srv, http.MethodGet, target, nil); rec.Code != want {
			t.Errorf("%s status = %d, want %d", target, rec.Code, want)
		}
	}
}

func TestAPI_ClassifyAndLegend(t *testing.T) {
	srv, _ := newTestServer(t, core.DefaultSource(), nil)

	var got classifyResponse
	decodeJSON(t, do(t, srv, http.MethodGet, "/api/classify?text=Hluk+z+bour%C3%A1n%C3%AD", nil), &got)
	if got.Status != core.StatusRestriction || got.Label != "Omezení provozu" || got.Style != core.StyleRestriction {
		t.Errorf("classify = %+v", got)
	}

	var blank classifyResponse
	decodeJSON(t, do(t, srv, http.MethodGet, "/api/classify", nil), &blank)
	if blank.Status != core.StatusEmpty {
		t.Errorf("blank classify status = %s, want EMPTY", blank.Status)
	}

	var legend []legendEntry
	decodeJSON(t, do(t, srv, http.MethodGet, "/api/legend", nil), &legend)
	if len(legend) != len(core.AllStatuses()) {
		t.Fatalf("legend entries = %d", len(legend))
	}
	if legend[0].Status != core.StatusOK || legend[0].Style != core.StyleOK {
		t.Errorf("legend[0] = %+v", legend[0])
	}
}

func TestHealth(t *testing.T) {
	srv, svc := newTestServer(t, core.DefaultSource(), nil)

	var got healthResponse
	decodeJSON(t, do(t, srv, http.MethodGet, "/healthz", nil), &got)
	if got.Status != "ok" || got.Revision != svc.Snapshot().Revision {
		t.Errorf("health = %+v", got)
	}
}

func TestReload_RequiresAPIKey(t *testing.T) {
	srv, svc := newTestServer(t, core.DefaultSource(), map[string]string{
		"REQUIRE_API_KEY": "true",
		"API_KEYS":        "secret",
	})
	before := svc.Snapshot().Revision

	if rec := do(t, srv, http.MethodPost, "/api/reload", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without key = %d, want 401", rec.Code)
	}

	rec := do(t, srv, http.MethodPost, "/api/reload", map[string]string{"X-API-Key": "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status with key = %d, want 200", rec.Code)
	}
	var got reloadResponse
	decodeJSON(t, rec, &got)
	if got.Revision == before || got.Rows != 8 {
		t.Errorf("reload = %+v", got)
	}
}

func TestReload_FailureKeepsSnapshot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")
	svc := core.NewService(core.FileSource{Path: missing})
	srv := NewServer(svc, testConfig(t, nil))
	t.Cleanup(func() { srv.Shutdown(context.Background()) })

	rec := do(t, srv, http.MethodPost, "/api/reload", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var errResp ErrorResponse
	decodeJSON(t, rec, &errResp)
	if errResp.Code != "DOC003" {
		t.Errorf("code = %q, want DOC003", errResp.Code)
	}
	if strings.Contains(errResp.Message, missing) {
		t.Error("error message leaks the file path")
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t, core.DefaultSource(), nil)
	rec := do(t, srv, http.MethodGet, "/", nil)
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("missing Content-Security-Policy")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}

	noCSP, _ := newTestServer(t, core.DefaultSource(), map[string]string{"SECURITY_ENABLE_CSP": "false"})
	rec = do(t, noCSP, http.MethodGet, "/", nil)
	if rec.Header().Get("Content-Security-Policy") != "" {
		t.Error("CSP set although disabled")
	}
}

func TestRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, core.DefaultSource(), map[string]string{"RATE_LIMIT_REQUESTS_PER_MINUTE": "2"})

	for i := 0; i < 2; i++ {
		if rec := do(t, srv, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}

	rec := do(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	var errResp ErrorResponse
	decodeJSON(t, rec, &errResp)
	if errResp.Code != "RATE001" {
		t.Errorf("code = %q, want RATE001", errResp.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}

	disabled, _ := newTestServer(t, core.DefaultSource(), map[string]string{
		"RATE_LIMIT_ENABLED":             "false",
		"RATE_LIMIT_REQUESTS_PER_MINUTE": "1",
	})
	for i := 0; i < 3; i++ {
		if rec := do(t, disabled, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
			t.Fatalf("disabled limiter request %d status = %d", i, rec.Code)
		}
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	defer rl.stop()

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.allow("10.0.0.1") {
		t.Fatal("first request denied")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("second request allowed within window")
	}
	if !rl.allow("10.0.0.2") {
		t.Fatal("other client denied")
	}

	now = now.Add(61 * time.Second)
	if !rl.allow("10.0.0.1") {
		t.Error("request denied after window reset")
	}

	rl.stop()
	rl.stop()
}
