package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mstfugurlu/inventory/internal/inventory"
)

type HostView interface {
	List(ctx context.Context, f inventory.Filter) ([]inventory.Host, error)
	Groups(ctx context.Context, useIP, onlyActive bool) (map[string][]string, error)
}

type StatsSource interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (map[string]int, error)
}

type WebServer struct {
	view  HostView
	stats StatsSource
	addr  string
	log   zerolog.Logger
}

func NewWebServer(view HostView, stats StatsSource, addr string, log zerolog.Logger) *WebServer {
	return &WebServer{
		view:  view,
		stats: stats,
		addr:  addr,
		log:   log.With().Str("component", "http").Logger(),
	}
}

func (s *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// group listing consumed by configuration management
	mux.HandleFunc("GET /{$}", s.handleGroups)

	mux.HandleFunc("GET /healthz", s.handleHealth)

	// API
	mux.HandleFunc("GET /api/hosts", s.apiHosts)
	mux.HandleFunc("GET /api/stats", s.apiStats)

	return s.requestID(mux)
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *WebServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *WebServer) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("web server listening")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// Handlers

func (s *WebServer) handleGroups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	useIP := q.Get("format") == "ip"
	onlyActive := q.Get("active") == "true"

	groups, err := s.view.Groups(r.Context(), useIP, onlyActive)
	if err != nil {
		s.log.Error().Err(err).Str("request_id", requestIDFrom(r)).Msg("group listing failed")
		textError(w, err)
		return
	}
	jsonResponse(w, groups)
}

func (s *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.stats.Ping(r.Context()); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"})
}

type hostResponse struct {
	inventory.Host
	Known      bool     `json:"known"`
	Active     bool     `json:"active"`
	Conformant bool     `json:"conformant"`
	GroupList  []string `json:"group_list"`
	Intended   *target  `json:"intended,omitempty"`
}

type target struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
}

func (s *WebServer) apiHosts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	hosts, err := s.view.List(r.Context(), filter)
	if err != nil {
		s.log.Error().Err(err).Str("request_id", requestIDFrom(r)).Msg("host listing failed")
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]hostResponse, 0, len(hosts))
	for _, h := range hosts {
		resp := hostResponse{
			Host:       h,
			Known:      h.Known(),
			Active:     h.Active(),
			Conformant: h.Conformant(),
			GroupList:  h.GroupSet().Sorted(),
		}
		if ip, hostname, ok := h.Remediation(); ok {
			resp.Intended = &target{IP: ip, Hostname: hostname}
		}
		out = append(out, resp)
	}
	jsonResponse(w, out)
}

func (s *WebServer) apiStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Stats(r.Context())
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(w, stats)
}

// parseFilter reads list filters from the query string. A flag given without
// a value counts as true; group may repeat or hold a comma separated list.
func parseFilter(r *http.Request) (inventory.Filter, error) {
	q := r.URL.Query()
	var f inventory.Filter

	flags := []struct {
		name string
		dst  *bool
	}{
		{"active", &f.Active},
		{"inactive", &f.Inactive},
		{"known", &f.Known},
		{"unknown", &f.Unknown},
		{"conformant", &f.Conformant},
		{"nonconformant", &f.Nonconformant},
	}
	for _, flag := range flags {
		if !q.Has(flag.name) {
			continue
		}
		v := q.Get(flag.name)
		if v == "" {
			*flag.dst = true
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return inventory.Filter{}, fmt.Errorf("invalid value %q for %s", v, flag.name)
		}
		*flag.dst = b
	}

	for _, g := range q["group"] {
		f.Groups = append(f.Groups, strings.Split(g, ",")...)
	}
	return f, nil
}

// middleware

type requestIDKey struct{}

func (s *WebServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.log.Debug().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func requestIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

// helpers

func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func textError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, "Error: %s", err)
}
