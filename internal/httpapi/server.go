// Package httpapi exposes the classifier over HTTP: a JSON
// classification endpoint plus health and metrics endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/codelayers/strata/internal/observability"
	"github.com/codelayers/strata/pkg/cache"
	"github.com/codelayers/strata/pkg/classify"
	"github.com/codelayers/strata/pkg/layer"
	"github.com/codelayers/strata/pkg/render"
)

// shutdownHeaderTimeout bounds slow-client header reads.
const shutdownHeaderTimeout = 10 * time.Second

// ErrEmptyBody indicates a classification request without source code.
var ErrEmptyBody = errors.New("httpapi: request body is empty")

// ClassifyRequest is the POST /classify request body.
type ClassifyRequest struct {
	Code string `json:"code"`
	Path string `json:"path,omitempty"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// Options configures the handler.
type Options struct {
	// MaxRequestSize bounds the request body in bytes; 0 disables the
	// limit.
	MaxRequestSize int64
	// Metrics is the optional instrument set; nil disables recording.
	Metrics *observability.Metrics
	// Store is the optional region cache; nil disables caching.
	Store *cache.Store
	// Logger receives request logs; nil uses slog.Default.
	Logger *slog.Logger
}

// API serves classification requests.
type API struct {
	engine  *classify.Engine
	opts    Options
	log     *slog.Logger
	metrics *observability.Metrics
	store   *cache.Store
}

// NewAPI creates an API around the given engine.
func NewAPI(engine *classify.Engine, opts Options) *API {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &API{engine: engine, opts: opts, log: log, metrics: opts.Metrics, store: opts.Store}
}

// Handler returns the route table.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /classify", a.handleClassify)
	mux.HandleFunc("GET /healthz", a.handleHealth)

	if a.metrics != nil {
		mux.Handle("GET /metrics", a.metrics.Handler())
	}

	return mux
}

// NewServer builds an http.Server for addr around the route table.
func (a *API) NewServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: shutdownHeaderTimeout,
	}
}

func (a *API) handleClassify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body := r.Body
	if a.opts.MaxRequestSize > 0 {
		body = http.MaxBytesReader(w, r.Body, a.opts.MaxRequestSize)
	}

	var req ClassifyRequest

	if err := json.NewDecoder(body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, fmt.Errorf("httpapi: decode request: %w", err), start)

		return
	}

	if req.Code == "" {
		a.fail(w, http.StatusBadRequest, ErrEmptyBody, start)

		return
	}

	src := []byte(req.Code)

	var (
		regions   []layer.Region
		fromCache bool
	)

	if a.store != nil {
		regions, fromCache = a.store.Get(src)
	}

	if !fromCache {
		var classifyErr error

		regions, classifyErr = a.engine.Classify(r.Context(), src)
		if classifyErr != nil {
			a.fail(w, http.StatusInternalServerError, classifyErr, start)

			return
		}

		if a.store != nil {
			if putErr := a.store.Put(src, regions); putErr != nil {
				a.log.Warn("cache write failed", "error", putErr)
			}
		}
	}

	doc := render.NewDocument(req.Path, len(src), regions)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		a.log.Warn("response write failed", "error", err)
	}

	if a.metrics != nil {
		a.metrics.RecordRequest("http.classify", nil, time.Since(start))

		if fromCache {
			a.metrics.RecordCacheHit()
		}

		counts := make(map[string]int, len(doc.Summary))
		for _, stat := range doc.Summary {
			counts[stat.Layer] = stat.Regions
		}

		a.metrics.RecordRegions(counts, len(src))
	}
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (a *API) fail(w http.ResponseWriter, status int, err error, start time.Time) {
	a.log.Warn("classification request failed", "status", status, "error", err)

	if a.metrics != nil {
		a.metrics.RecordRequest("http.classify", err, time.Since(start))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
