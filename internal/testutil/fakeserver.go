package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"todoctl/internal/service"
)

// FakeServer is an in-memory to-do REST API for client tests.
type FakeServer struct {
	*httptest.Server

	mu    sync.Mutex
	tasks []service.Task

	// FailWith, if non-zero, makes every request return this status.
	FailWith int

	// RawList, if set, is written verbatim as the GET /todos body.
	RawList string
}

// NewFakeServer starts a FakeServer. Callers must Close it.
func NewFakeServer() *FakeServer {
	s := &FakeServer{}
	s.Server = httptest.NewServer(s.router())
	return s
}

// Seed adds a task with a fresh id and returns it.
func (s *FakeServer) Seed(title string, completed bool) service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := timestamp()
	task := service.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks = append(s.tasks, task)
	return task
}

// Tasks returns a copy of the server's tasks.
func (s *FakeServer) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *FakeServer) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.failureInjector)
	r.Get("/todos", s.listHandler)
	r.Post("/todos", s.createHandler)
	r.Get("/todos/{id}", s.getHandler)
	r.Put("/todos/{id}", s.updateHandler)
	r.Delete("/todos/{id}", s.deleteHandler)
	return r
}

func (s *FakeServer) failureInjector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		code := s.FailWith
		s.mu.Unlock()
		if code != 0 {
			writeDetail(w, code, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *FakeServer) listHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RawList != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(s.RawList))
		return
	}
	tasks := s.tasks
	if tasks == nil {
		tasks = []service.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *FakeServer) getHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(chi.URLParam(r, "id"))
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, s.tasks[i])
}

func (s *FakeServer) createHandler(w http.ResponseWriter, r *http.Request) {
	var req service.NewTask
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Title) == "" {
		writeDetail(w, http.StatusBadRequest, "title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := timestamp()
	task := service.Task{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append(s.tasks, task)
	writeJSON(w, http.StatusOK, task)
}

func (s *FakeServer) updateHandler(w http.ResponseWriter, r *http.Request) {
	var patch service.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	defer r.Body.Close()

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		writeDetail(w, http.StatusBadRequest, "title cannot be empty")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(chi.URLParam(r, "id"))
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "task not found")
		return
	}
	task := s.tasks[i]
	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	task.UpdatedAt = timestamp()
	s.tasks[i] = task
	writeJSON(w, http.StatusOK, task)
}

func (s *FakeServer) deleteHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(chi.URLParam(r, "id"))
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "task not found")
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func (s *FakeServer) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// timestamp mimics servers that emit naive local timestamps.
func timestamp() string {
	return time.Now().Format("2006-01-02T15:04:05.000000")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}
