package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/XJIeI5/flatcalc/internal/config"
	queue "github.com/XJIeI5/flatcalc/internal/datastructs"
	"github.com/XJIeI5/flatcalc/internal/storage"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HistoryStore is the part of *storage.Store the server needs.
type HistoryStore interface {
	Save(ctx context.Context, rec storage.Record) (int64, error)
	Get(ctx context.Context, id int64) (storage.Record, error)
	List(ctx context.Context, limit int) ([]storage.Record, error)
}

type Options struct {
	// Store may be nil; history endpoints then answer 503.
	Store            HistoryStore
	Logger           *slog.Logger
	RateLimit        config.RateLimitConfig
	HistoryQueueSize int
}

type Server struct {
	handler http.Handler
	store   HistoryStore
	history *queue.Queue[storage.Record]
	limiter *rateLimiter
	metrics *metrics
	log     *slog.Logger
}

func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	reg := prometheus.NewRegistry()

	history := queue.NewQueue[storage.Record](opts.HistoryQueueSize)
	s := &Server{
		store:   opts.Store,
		history: history,
		limiter: newRateLimiter(opts.RateLimit),
		metrics: newMetrics(reg, history),
		log:     log.With("component", "server"),
	}

	r := mux.NewRouter()
	// expr handle
	r.HandleFunc("/calculate", s.handleCalculate).Methods(http.MethodPost)
	// history handle
	r.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	r.HandleFunc("/history/{id:[0-9]+}", s.handleHistoryRecord).Methods(http.MethodGet)
	// service handle
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Wrapped outside the router so 404 and 405 answers are logged too.
	s.handler = s.logRequests(s.limitRequests(r))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// GetServer binds to all interfaces when addr names the local host.
func GetServer(addr string, port int, handler http.Handler) *http.Server {
	var _addr string
	if strings.Contains(addr, "localhost") || strings.Contains(addr, "127.0.0.1") {
		_addr = fmt.Sprintf(":%d", port)
	} else {
		_addr = fmt.Sprintf("%s:%d", strings.TrimPrefix(strings.TrimPrefix(addr, "http://"), "https://"), port)
	}
	return &http.Server{
		Addr:    _addr,
		Handler: handler,
	}
}
