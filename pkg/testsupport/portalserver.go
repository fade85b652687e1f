package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Response is what a fake route answers with.
type Response struct {
	Status int
	Body   map[string]any
}

// Success builds a success envelope with the payload under payloadKey.
func Success(payloadKey string, payload any) Response {
	return Response{
		Status: http.StatusOK,
		Body:   map[string]any{"success": true, payloadKey: payload},
	}
}

// Failure builds a success=false envelope carrying a business rejection.
func Failure(message string) Response {
	return Response{
		Status: http.StatusOK,
		Body:   map[string]any{"success": false, "message": message},
	}
}

// ServerError builds a non-2xx response carrying a message.
func ServerError(status int, message string) Response {
	return Response{
		Status: status,
		Body:   map[string]any{"success": false, "message": message},
	}
}

// Server is a fake portal backend. Routes are keyed by "METHOD /path" and
// call counts are recorded so tests can assert exactly how often the client
// hit the network.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]func(r *http.Request) Response
	calls  map[string]int
}

// NewServer starts a fake portal backend. Close it when done.
func NewServer() *Server {
	s := &Server{
		routes: make(map[string]func(r *http.Request) Response),
		calls:  make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle registers a dynamic route.
func (s *Server) Handle(method, path string, fn func(r *http.Request) Response) {
	s.mu.Lock()
	s.routes[method+" "+path] = fn
	s.mu.Unlock()
}

// Respond registers a fixed response for a route.
func (s *Server) Respond(method, path string, res Response) {
	s.Handle(method, path, func(*http.Request) Response { return res })
}

// Calls returns how many times a route was hit.
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	s.mu.Lock()
	fn, ok := s.routes[key]
	if ok {
		s.calls[key]++
	}
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "not found: " + key})
		return
	}

	res := fn(r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Status)
	_ = json.NewEncoder(w).Encode(res.Body)
}
