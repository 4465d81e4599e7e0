// Package backendtest provides an in-memory stand-in for the scheduling
// backend, serving the same routes and wire shapes over httptest.
package backendtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viralit/client/internal/model"
)

// Request is a request as received by the fake backend.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type override struct {
	status int
	body   string
}

// Server is a fake backend. Seed it with accounts and uploads, then point a
// client at URL.
type Server struct {
	URL string

	srv    *httptest.Server
	router chi.Router

	mu        sync.Mutex
	accounts  []model.Account
	uploads   []model.Upload
	quota     model.Quota
	metrics   *model.DashboardMetrics
	overrides map[string]override
	requests  []Request
}

// New starts a fake backend that is closed when t finishes.
func New(t testing.TB) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		overrides: make(map[string]override),
	}
	s.setupRoutes()
	s.srv = httptest.NewServer(s.router)
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) setupRoutes() {
	s.handle(http.MethodGet, "/dashboard/metrics", s.handleMetrics)
	s.handle(http.MethodGet, "/quota/status", s.handleQuota)
	s.handle(http.MethodGet, "/accounts", s.handleListAccounts)
	s.handle(http.MethodGet, "/accounts/{id}", s.handleGetAccount)
	s.handle(http.MethodPatch, "/accounts/{id}/status", s.handleUpdateAccountStatus)
	s.handle(http.MethodGet, "/uploads", s.handleListUploads)
}

func (s *Server) handle(method, pattern string, h http.HandlerFunc) {
	key := method + " " + pattern
	s.router.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		ov, ok := s.overrides[key]
		s.mu.Unlock()

		if ok {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(ov.status)
			io.WriteString(w, ov.body)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		h(w, r)
	}))
}

// Override makes every request to method+pattern answer with status and the
// raw body, bypassing the in-memory state. pattern is the route template,
// e.g. "/accounts/{id}/status".
func (s *Server) Override(method, pattern string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+pattern] = override{status: status, body: body}
}

// AddAccount stores a, assigning an ID if it has none.
func (s *Server) AddAccount(a model.Account) model.Account {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, a)
	return a
}

// AddUpload stores u, assigning an ID if it has none.
func (s *Server) AddUpload(u model.Upload) model.Upload {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, u)
	return u
}

func (s *Server) SetQuota(q model.Quota) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quota = q
}

// SetMetrics pins the dashboard metrics instead of deriving them from the
// stored accounts and uploads.
func (s *Server) SetMetrics(m model.DashboardMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = &m
}

// Requests returns every request received so far, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.metrics != nil {
		writeJSON(w, http.StatusOK, s.metrics)
		return
	}

	m := model.DashboardMetrics{
		UploadsToday:  len(s.uploads),
		TotalAccounts: len(s.accounts),
		Quota:         s.quota,
	}
	for _, u := range s.uploads {
		switch u.Status {
		case model.UploadDone:
			m.UploadsDone++
		case model.UploadFailed:
			m.UploadsFailed++
		case model.UploadScheduled:
			m.UploadsScheduled++
		}
	}
	for _, a := range s.accounts {
		if a.Active {
			m.ActiveAccounts++
		}
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleQuota(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.quota)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts := make([]model.Account, len(s.accounts))
	copy(accounts, s.accounts)
	writeJSON(w, http.StatusOK, model.AccountList{Accounts: accounts})
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	http.Error(w, "Account not found", http.StatusNotFound)
}

// handleUpdateAccountStatus reports success even for unknown IDs, the same
// as an UPDATE that matches no rows.
func (s *Server) handleUpdateAccountStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		http.Error(w, "body must be {\"active\": bool}", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts[i].Active = *req.Active
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, model.StatusUpdateResult{Success: true})
}

func (s *Server) handleListUploads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	accountID := q.Get("account_id")
	status := q.Get("status")

	limit := 100
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			http.Error(w, fmt.Sprintf("limit must be between 1 and 500, got %q", v), http.StatusUnprocessableEntity)
			return
		}
		limit = n
	}

	s.mu.Lock()
	var out []model.Upload
	for _, u := range s.uploads {
		if accountID != "" && u.AccountID != accountID {
			continue
		}
		if status != "" && string(u.Status) != status {
			continue
		}
		out = append(out, u)
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledFor.After(out[j].ScheduledFor.Time)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []model.Upload{}
	}
	writeJSON(w, http.StatusOK, model.UploadList{Uploads: out, Count: len(out)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
