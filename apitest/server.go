// Copyright (c) 2025 BVK Chaitanya

// Package apitest provides an in-process fake of the trading API for tests.
//
// Routes are registered with gorilla/mux patterns, so path variables like
// "/trading/contracts/{id}" work as they do on the real server. Every request
// is recorded for later inspection.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// Request is a recorded request.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte

	// Vars holds the mux path variables, if the request matched a route.
	Vars map[string]string
}

type Server struct {
	srv    *httptest.Server
	router *mux.Router

	mu       sync.Mutex
	requests []*Request
}

// NewServer starts a fake server. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		router: mux.NewRouter(),
	}
	s.router.Use(s.recordVars)
	s.srv = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	return s
}

// URL returns the base url of the server.
func (s *Server) URL() string {
	return s.srv.URL
}

// Client returns an http client configured for the server.
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// Close shuts down the server, closing any open streams.
func (s *Server) Close() {
	s.srv.CloseClientConnections()
	s.srv.Close()
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	req := &Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	}
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	s.router.ServeHTTP(w, r)
}

func (s *Server) recordVars(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if vars := mux.Vars(r); len(vars) > 0 {
			s.mu.Lock()
			for i := len(s.requests) - 1; i >= 0; i-- {
				if s.requests[i].Path == r.URL.Path && s.requests[i].Vars == nil {
					s.requests[i].Vars = vars
					break
				}
			}
			s.mu.Unlock()
		}
		next.ServeHTTP(w, r)
	})
}

// Requests returns all recorded requests in arrival order.
func (s *Server) Requests() []*Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Request(nil), s.requests...)
}

// LastRequest returns the most recent request for the path.
func (s *Server) LastRequest(path string) (*Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Path == path {
			return s.requests[i], true
		}
	}
	return nil, false
}

// HandleFunc registers a handler for the method and mux path pattern.
func (s *Server) HandleFunc(method, pattern string, fn http.HandlerFunc) {
	s.router.HandleFunc(pattern, fn).Methods(method)
}

// HandleRaw responds with the body verbatim.
func (s *Server) HandleRaw(method, pattern string, status int, body string) {
	s.HandleFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

// HandleJSON responds with the JSON encoding of v.
func (s *Server) HandleJSON(method, pattern string, status int, v any) {
	js, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("apitest: could not marshal response for %s: %v", pattern, err))
	}
	s.HandleRaw(method, pattern, status, string(js))
}

// HandleData responds with v wrapped in a {"data": ...} envelope.
func (s *Server) HandleData(method, pattern string, v any) {
	s.HandleJSON(method, pattern, http.StatusOK, map[string]any{"data": v})
}

// HandleError responds with a structured error body.
func (s *Server) HandleError(method, pattern string, status int, code, message string) {
	s.HandleJSON(method, pattern, status, map[string]any{
		"errors": []map[string]string{{"code": code, "message": message}},
	})
}

// Stream describes the frames written by an event-stream route.
type Stream struct {
	// Lines are written verbatim, each followed by a newline.
	Lines []string

	// Interval is the delay between lines.
	Interval time.Duration

	// Hold keeps the connection open after the last line until the client
	// goes away.
	Hold bool

	// Disconnected is closed when the handler returns. Optional; a stream with
	// this channel set must only be requested once.
	Disconnected chan struct{}
}

// DataLine returns a `data: ` line holding the JSON encoding of v.
func DataLine(v any) string {
	js, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("apitest: could not marshal event: %v", err))
	}
	return "data: " + string(js)
}

// HandleStream registers an event-stream GET route.
func (s *Server) HandleStream(pattern string, st *Stream) {
	s.HandleFunc(http.MethodGet, pattern, func(w http.ResponseWriter, r *http.Request) {
		if st.Disconnected != nil {
			defer close(st.Disconnected)
		}

		flusher, _ := w.(http.Flusher)
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		if flusher != nil {
			flusher.Flush()
		}

		for i, line := range st.Lines {
			if i > 0 && st.Interval > 0 {
				select {
				case <-r.Context().Done():
					return
				case <-time.After(st.Interval):
				}
			}
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}

		if st.Hold {
			<-r.Context().Done()
		}
	})
}
