// Package mockapi serves an in-memory imitation of the platform backend. It
// backs the "mock-server" command used for demos and the HTTP tests of the
// api and cli packages.
package mockapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/os2iot/iotconsole/internal/api"
)

// BasePath is where the API is mounted.
const BasePath = "/api/v1"

// Server is an http.Handler backed by in-memory fixtures.
type Server struct {
	router chi.Router
	logger zerolog.Logger

	mu       sync.Mutex
	data     Fixtures
	requests []url.URL
	failures map[string]int
	delay    func(r *http.Request) time.Duration
}

// New returns a server seeded with fixtures.
func New(fixtures Fixtures, logger zerolog.Logger) *Server {
	s := &Server{
		logger:   logger,
		data:     fixtures.clone(),
		failures: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Route(BasePath, func(r chi.Router) {
		r.Get("/health", s.health)

		r.Get("/user", s.listUsers)
		r.Delete("/user/{id}", s.deleteUser)

		r.Get("/chirpstack/gateway", s.listGateways)
		r.Get("/chirpstack/gateway/{id}", s.getGateway)
		r.Delete("/chirpstack/gateway/{id}", s.deleteGateway)

		r.Get("/chirpstack/device-profiles", s.listDeviceProfiles)
		r.Delete("/chirpstack/device-profiles/{id}", s.deleteDeviceProfile)

		r.Get("/payload-decoder", s.listPayloadDecoders)
		r.Delete("/payload-decoder/{id}", s.deletePayloadDecoder)

		r.Get("/data-target", s.listDataTargets)
		r.Delete("/data-target/{id}", s.deleteDataTarget)

		r.Get("/device-model", s.listDeviceModels)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// FailNext makes the next request whose path ends with suffix answer with status.
func (s *Server) FailNext(suffix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[suffix] = status
}

// SetDelay installs a per-request delay function.
func (s *Server) SetDelay(fn func(r *http.Request) time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = fn
}

// Requests returns the URLs received so far.
func (s *Server) Requests() []url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]url.URL, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request URL.
func (s *Server) LastRequest() (url.URL, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return url.URL{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, *r.URL)
		delay := s.delay
		status := 0
		for suffix, code := range s.failures {
			if strings.HasSuffix(r.URL.Path, suffix) {
				status = code
				delete(s.failures, suffix)
				break
			}
		}
		s.mu.Unlock()

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Msg("mock request")

		if delay != nil {
			if d := delay(r); d > 0 {
				select {
				case <-time.After(d):
				case <-r.Context().Done():
					return
				}
			}
		}
		if status != 0 {
			writeError(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	version := s.data.Version
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, api.HealthStatus{Status: "ok", Version: version})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"statusCode": status, "message": msg})
}

// listParams is the decoded pagination query.
type listParams struct {
	limit   int
	offset  int
	orderOn string
	desc    bool
}

func parseListParams(r *http.Request) listParams {
	q := r.URL.Query()
	p := listParams{limit: -1}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v >= 0 {
		p.limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		p.offset = v
	}
	p.orderOn = q.Get("orderOn")
	p.desc = strings.EqualFold(q.Get("sort"), "DESC")
	return p
}

// page sorts and slices items according to p. Sorting uses the JSON field
// named by orderOn so every entity type can share one implementation.
func page[T any](items []T, p listParams) ([]T, int) {
	sorted := make([]T, len(items))
	copy(sorted, items)

	if p.orderOn != "" {
		keys := make([]any, len(sorted))
		for i, it := range sorted {
			keys[i] = fieldValue(it, p.orderOn)
		}
		idx := make([]int, len(sorted))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			if p.desc {
				return less(keys[idx[b]], keys[idx[a]])
			}
			return less(keys[idx[a]], keys[idx[b]])
		})
		reordered := make([]T, len(sorted))
		for i, j := range idx {
			reordered[i] = sorted[j]
		}
		sorted = reordered
	}

	total := len(sorted)
	if p.offset >= total {
		return []T{}, total
	}
	end := total
	if p.limit >= 0 && p.offset+p.limit < total {
		end = p.offset + p.limit
	}
	return sorted[p.offset:end], total
}

func fieldValue(item any, field string) any {
	data, err := json.Marshal(item)
	if err != nil {
		return nil
	}
	var m map[string]any
	if json.Unmarshal(data, &m) != nil {
		return nil
	}
	return m[field]
}

func less(a, b any) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av < bv
	case string:
		bv, ok := b.(string)
		return ok && strings.ToLower(av) < strings.ToLower(bv)
	case bool:
		bv, ok := b.(bool)
		return ok && !av && bv
	case nil:
		return b != nil
	default:
		return false
	}
}
